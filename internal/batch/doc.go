// Package batch drives lyrics lookups for a single song or a list file.
//
// # Runner
//
// The Runner combines a Fetcher (the Genius client) with a Saver (the lyrics
// file store):
//
//	runner := batch.NewRunner(client, store, batch.WithProgress(func(e batch.ProgressEvent) {
//	    fmt.Println(e.Message)
//	}))
//
//	summary, err := runner.Run(ctx, "songs.txt")
//	if errors.Is(err, batch.ErrListNotFound) {
//	    // already reported as "Error: Could not find file songs.txt"
//	}
//
// # List Format
//
// One song per line, either "title" or "title|artist". Blank lines are
// skipped but still counted in the total, so a five-line file with two blank
// lines reports "Found 5 songs to process".
//
// # Rate Limiting
//
// Songs are fetched sequentially with a fixed pause (one second by default)
// after every processed entry, whether or not lyrics were found. There is
// no retry.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
package batch
