package audio

import (
	"fmt"

	"github.com/bogem/id3v2"
	"github.com/handiism/genius-lyrics/internal/model"
)

// TagEditAction defines how to handle individual ID3 tags.
type TagEditAction int

const (
	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify TagEditAction = iota

	// TagModify updates the tag with the value from Genius.
	TagModify

	// TagEmpty clears the tag value.
	TagEmpty
)

// lyricsFrameID is the common name of the USLT frame.
const lyricsFrameID = "Unsynchronised lyrics/text transcription"

// TagConfig holds tagging configuration for each ID3 field.
//
// Example:
//
//	cfg := &TagConfig{
//	    Lyrics:     TagModify,      // Replace the USLT frame
//	    TrackTitle: TagDoNotModify, // Keep the file's own title
//	    Artist:     TagDoNotModify,
//	    Artwork:    true,           // Embed cover art when provided
//	}
type TagConfig struct {
	// Lyrics controls the USLT (Unsynchronized lyrics) frame.
	Lyrics TagEditAction

	// TrackTitle controls the TIT2 (Title) frame.
	TrackTitle TagEditAction

	// Artist controls the TPE1 (Lead artist) frame.
	Artist TagEditAction

	// Artwork enables replacing the front cover APIC frame.
	Artwork bool

	// Language is the ISO-639-2 code written into the USLT frame.
	Language string
}

// DefaultTagConfig returns the default tag configuration.
//
// Lyrics and artwork are written; title and artist already in the file are
// left alone.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		Lyrics:     TagModify,
		TrackTitle: TagDoNotModify,
		Artist:     TagDoNotModify,
		Artwork:    true,
		Language:   "eng",
	}
}

// Tagger writes fetched lyrics into MP3 files.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	if err := tagger.SaveTags("song.mp3", result, artworkBytes); err != nil {
//	    log.Printf("Failed to tag song.mp3: %v", err)
//	}
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	if config.Language == "" {
		config.Language = "eng"
	}
	return &Tagger{config: config}
}

// SaveTags writes the lyrics result into the ID3 tag of the MP3 at path.
//
// The file must exist. Existing tags are parsed and kept; only the frames
// selected by TagConfig are changed. artwork is JPEG data for the front
// cover, or nil to leave pictures untouched.
func (t *Tagger) SaveTags(path string, result model.LyricsResult, artwork []byte) error {
	if !result.Found() {
		return fmt.Errorf("no lyrics to embed in %s", path)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer tag.Close()

	t.updateStringTags(tag, result)

	if t.config.Artwork && artwork != nil {
		t.updateArtwork(tag, artwork)
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save tags to %s: %w", path, err)
	}
	return nil
}

// updateStringTags updates text-based ID3 frames based on configuration.
func (t *Tagger) updateStringTags(tag *id3v2.Tag, result model.LyricsResult) {
	// Track Title (TIT2)
	switch t.config.TrackTitle {
	case TagEmpty:
		tag.SetTitle("")
	case TagModify:
		if result.Title != "" {
			tag.SetTitle(result.Title)
		}
	}

	// Artist (TPE1)
	switch t.config.Artist {
	case TagEmpty:
		tag.SetArtist("")
	case TagModify:
		if result.Artist != "" {
			tag.SetArtist(result.Artist)
		}
	}

	// Lyrics (USLT)
	switch t.config.Lyrics {
	case TagEmpty:
		tag.DeleteFrames(tag.CommonID(lyricsFrameID))
	case TagModify:
		tag.DeleteFrames(tag.CommonID(lyricsFrameID))
		tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
			Encoding:          id3v2.EncodingUTF8,
			Language:          t.config.Language,
			ContentDescriptor: "",
			Lyrics:            result.Text,
		})
	}
}

// updateArtwork embeds cover art as an attached picture frame.
func (t *Tagger) updateArtwork(tag *id3v2.Tag, artwork []byte) {
	// Remove any existing cover pictures
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	})
}
