package genius

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/handiism/genius-lyrics/internal/genius/dto"
	"github.com/handiism/genius-lyrics/internal/model"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// nonSongTitle matches Genius pages that are not song lyrics, such as
// tracklists and liner notes.
var nonSongTitle = regexp.MustCompile(`(?i)track\s?list|album art(work)?|liner notes|booklet|credits|interview|skit|instrumental|setlist`)

// isLyricsPage reports whether a selected hit is worth scraping: its lyrics
// are complete, it is not an instrumental and its title does not name a
// non-song page.
func isLyricsPage(s dto.Song) bool {
	if !s.HasCompleteLyrics() || s.Instrumental {
		return false
	}
	return !nonSongTitle.MatchString(s.Title)
}

// selectHit picks the song that best answers req from a list of search hits.
//
// Candidates are the hits of type "song". They are tried in this order:
//  1. the first hit whose normalized title equals the requested title
//     (and whose artist matches, when an artist was requested)
//  2. the closest fuzzy title match among artist-matching hits
//  3. the first hit with complete lyrics
//  4. the first hit
//
// The boolean result is false when there are no song hits at all.
func selectHit(hits []dto.Hit, req model.SongRequest) (dto.Song, bool) {
	var songs []dto.Song
	for _, h := range hits {
		if h.Type == "song" {
			songs = append(songs, h.Result)
		}
	}
	if len(songs) == 0 {
		return dto.Song{}, false
	}

	var candidates []dto.Song
	for _, s := range songs {
		if !req.HasArtist() || artistMatches(req.Artist, s.ArtistName()) {
			candidates = append(candidates, s)
		}
	}

	want := normalize(req.Title)
	for _, s := range candidates {
		if normalize(s.Title) == want {
			return s, true
		}
	}

	if s, ok := closestTitle(req.Title, candidates); ok {
		return s, true
	}

	for _, s := range songs {
		if s.HasCompleteLyrics() {
			return s, true
		}
	}

	return songs[0], true
}

// closestTitle returns the candidate whose title fuzzy-matches title with
// the smallest edit distance.
func closestTitle(title string, candidates []dto.Song) (dto.Song, bool) {
	if len(candidates) == 0 {
		return dto.Song{}, false
	}

	titles := make([]string, len(candidates))
	for i, s := range candidates {
		titles[i] = s.Title
	}

	ranks := fuzzy.RankFindNormalizedFold(title, titles)
	if len(ranks) == 0 {
		return dto.Song{}, false
	}
	sort.Sort(ranks)
	return candidates[ranks[0].OriginalIndex], true
}

func artistMatches(want, got string) bool {
	if got == "" {
		return false
	}
	return fuzzy.MatchNormalizedFold(want, got) || fuzzy.MatchNormalizedFold(got, want)
}

// normalize lowercases s, drops punctuation and collapses whitespace.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
