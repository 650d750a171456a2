package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrEmptyTitle is returned when a SongRequest has no title.
var ErrEmptyTitle = errors.New("song title must not be empty")

var validate = validator.New()

// SongRequest identifies a song to look up.
//
// Title is required. An empty Artist means the search is not scoped to an
// artist.
//
// Example:
//
//	req, err := model.NewSongRequest("Hey Jude", "The Beatles")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(req) // Hey Jude by The Beatles
type SongRequest struct {
	// Title is the song title as typed by the user.
	Title string `validate:"required"`

	// Artist optionally narrows the search.
	Artist string
}

// NewSongRequest trims both fields and validates the result.
func NewSongRequest(title, artist string) (SongRequest, error) {
	req := SongRequest{
		Title:  strings.TrimSpace(title),
		Artist: strings.TrimSpace(artist),
	}
	if err := req.Validate(); err != nil {
		return SongRequest{}, err
	}
	return req, nil
}

// Validate reports ErrEmptyTitle if the request has no title.
func (r SongRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return ErrEmptyTitle
		}
		return err
	}
	return nil
}

// HasArtist returns true if the request is scoped to an artist.
func (r SongRequest) HasArtist() bool {
	return r.Artist != ""
}

// Query returns the free-text search term: the title, followed by the
// artist when one is set.
func (r SongRequest) Query() string {
	return strings.TrimSpace(r.Title + " " + r.Artist)
}

// String renders "title" or "title by artist".
func (r SongRequest) String() string {
	if r.HasArtist() {
		return fmt.Sprintf("%s by %s", r.Title, r.Artist)
	}
	return r.Title
}

// ParseBatchEntry converts one line of a batch list into a SongRequest.
//
// The line format is "title" or "title|artist". Each segment is trimmed and
// only the first two segments are used, so "a|b|c" yields title "a" and
// artist "b".
//
// The boolean result is false for blank lines, which are skipped by the
// batch runner. A line with an empty title segment (e.g. "|Artist") returns
// true together with ErrEmptyTitle.
func ParseBatchEntry(line string) (SongRequest, bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return SongRequest{}, false, nil
	}

	parts := strings.Split(line, "|")
	title := strings.TrimSpace(parts[0])
	artist := ""
	if len(parts) > 1 {
		artist = strings.TrimSpace(parts[1])
	}

	req, err := NewSongRequest(title, artist)
	if err != nil {
		return SongRequest{Title: title, Artist: artist}, true, err
	}
	return req, true, nil
}
