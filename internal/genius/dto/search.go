// Package dto contains the JSON payloads returned by the Genius API.
package dto

// SearchResponse is the body of GET /search.
//
// Example:
//
//	{
//	  "meta": {"status": 200},
//	  "response": {
//	    "hits": [
//	      {"type": "song", "result": {"title": "Hey Jude", "url": "https://genius.com/..."}}
//	    ]
//	  }
//	}
type SearchResponse struct {
	Meta     Meta `json:"meta"`
	Response struct {
		Hits []Hit `json:"hits"`
	} `json:"response"`
}

// Meta carries the API status and an optional error message.
type Meta struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
}

// Hit is one search result.
type Hit struct {
	Type   string `json:"type"`
	Result Song   `json:"result"`
}

// Song is the song summary embedded in a search hit.
type Song struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	FullTitle       string `json:"full_title"`
	ArtistNames     string `json:"artist_names"`
	Path            string `json:"path"`
	URL             string `json:"url"`
	LyricsState     string `json:"lyrics_state"`
	Instrumental    bool   `json:"instrumental"`
	SongArtImageURL string `json:"song_art_image_url"`
	PrimaryArtist   Artist `json:"primary_artist"`
}

// Artist is the primary artist of a song.
type Artist struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ArtistName returns the primary artist, falling back to ArtistNames.
func (s Song) ArtistName() string {
	if s.PrimaryArtist.Name != "" {
		return s.PrimaryArtist.Name
	}
	return s.ArtistNames
}

// HasCompleteLyrics returns true if Genius marks the lyrics as complete.
func (s Song) HasCompleteLyrics() bool {
	return s.LyricsState == "complete"
}
