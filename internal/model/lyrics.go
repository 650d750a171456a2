package model

import "fmt"

// Outcome classifies the result of a lyrics lookup.
type Outcome int

const (
	// OutcomeMiss means the search completed but no lyrics were found.
	OutcomeMiss Outcome = iota

	// OutcomeFound means complete lyrics were retrieved.
	OutcomeFound

	// OutcomeFailed means the lookup could not complete (network error,
	// bad status, malformed response). Callers treat it like a miss.
	OutcomeFailed
)

// String returns a short lowercase name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeFailed:
		return "failed"
	default:
		return "miss"
	}
}

// LyricsResult is the result of a single lookup.
//
// Only Found results carry Text. Failed results carry the underlying error
// in Err so it can be reported, but they never abort the caller.
type LyricsResult struct {
	Outcome Outcome

	// Text is the complete lyrics text.
	Text string

	// Err is set when Outcome is OutcomeFailed.
	Err error

	// Title, Artist and URL describe the matched song page.
	Title  string
	Artist string
	URL    string

	// ArtworkURL points at the song's cover image, if any.
	ArtworkURL string
}

// Found returns true if the result carries lyrics.
func (r LyricsResult) Found() bool {
	return r.Outcome == OutcomeFound && r.Text != ""
}

// Found constructs a successful result.
func Found(text string) LyricsResult {
	return LyricsResult{Outcome: OutcomeFound, Text: text}
}

// Miss constructs a not-found result.
func Miss() LyricsResult {
	return LyricsResult{Outcome: OutcomeMiss}
}

// Failed constructs a result for a lookup that errored.
func Failed(err error) LyricsResult {
	return LyricsResult{Outcome: OutcomeFailed, Err: err}
}

// BatchSummary accumulates counts over a batch run.
//
// Total is the number of lines in the list file, blank lines included.
// Successful is the number of songs whose lyrics were saved.
type BatchSummary struct {
	Total      int
	Successful int
	Missed     int
	Failed     int
	Skipped    int
}

// String renders the summary as "successful/total".
func (s BatchSummary) String() string {
	return fmt.Sprintf("%d/%d", s.Successful, s.Total)
}
