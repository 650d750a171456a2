// Package genius implements lyrics lookup against genius.com.
//
// # Lookup
//
// Client.Fetch takes a title and optional artist and returns a tagged
// model.LyricsResult:
//
//  1. Query the search API with the title (and artist, if given)
//  2. Pick the best song hit (exact title, fuzzy title, complete lyrics)
//  3. Download the song page
//  4. Extract the lyrics containers with goquery
//
// # Failures
//
// Fetch does not return errors. No hits or an empty lyrics page produce a
// miss; network, status and decoding errors produce a failed result whose
// Err explains what went wrong. Callers report the error and move on.
//
// # Basic Usage
//
//	client := genius.NewClient(token, genius.WithLogger(logger))
//	res := client.Fetch(ctx, req)
package genius
