// Package model defines the core data structures used throughout
// the genius-lyrics application.
//
// # SongRequest
//
// SongRequest identifies a song by title and optional artist:
//
//	req, err := model.NewSongRequest("Imagine", "John Lennon")
//
// # Batch lists
//
// ParseBatchEntry turns one "title|artist" line into a SongRequest:
//
//	req, ok, err := model.ParseBatchEntry("Imagine|John Lennon")
//	// req.Title == "Imagine", req.Artist == "John Lennon"
//
// # Results
//
// LyricsResult tags a lookup as found, missed or failed. Failed lookups are
// reported but handled exactly like misses by the callers.
//
//	if res := client.Fetch(ctx, req); res.Found() {
//	    store.Save(req.Title, res.Text)
//	}
package model
