// Package ioutils provides file system and image processing utilities.
//
// # Lyrics Files
//
// Store writes one UTF-8 text file per song into a fixed directory:
//
//	store := ioutils.NewStore("songs")
//	path, err := store.Save(`AC/DC Thunder\struck`, lyrics)
//	// path ends in "songs/AC_DC_Thunder_struck.txt"
//
// Saving the same title twice overwrites the file; the returned path is
// the same both times.
//
// # Image Processing
//
// The ImageService prepares cover art before it is embedded in MP3 tags:
//
//	svc := ioutils.NewImageService()
//	resized, _ := svc.ResizeImage(imageData, 500, 500)
package ioutils
