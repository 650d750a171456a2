package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/handiism/genius-lyrics/internal/logging"
	"github.com/handiism/genius-lyrics/internal/model"
)

var (
	// ErrListNotFound is returned when the batch list file does not exist.
	ErrListNotFound = errors.New("list file not found")

	// ErrBatchAborted is returned when a batch stops before the last line
	// because the list could not be read or a lyrics file could not be written.
	ErrBatchAborted = errors.New("batch aborted")
)

// DefaultDelay is the pause after each processed batch entry.
const DefaultDelay = time.Second

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a user-facing progress line.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Fetcher looks up lyrics for a single song.
type Fetcher interface {
	Fetch(ctx context.Context, req model.SongRequest) model.LyricsResult
}

// Saver persists lyrics under a name derived from the song title.
type Saver interface {
	Path(title string) (string, error)
	Save(title, lyrics string) (string, error)
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Runner processes songs one at a time, either a single request or a list
// file, saving every lyrics text it finds.
type Runner struct {
	fetcher Fetcher
	saver   Saver

	delay      time.Duration
	sleep      SleepFunc
	onProgress func(ProgressEvent)
	logger     *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithDelay sets the pause after each batch entry. Negative values are
// treated as zero.
func WithDelay(d time.Duration) Option {
	return func(r *Runner) {
		if d < 0 {
			d = 0
		}
		r.delay = d
	}
}

// WithSleep replaces the function used to wait between batch entries.
func WithSleep(sleep SleepFunc) Option {
	return func(r *Runner) {
		if sleep != nil {
			r.sleep = sleep
		}
	}
}

// WithProgress sets the callback receiving progress lines.
func WithProgress(fn func(ProgressEvent)) Option {
	return func(r *Runner) { r.onProgress = fn }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a Runner that looks songs up with fetcher and writes
// them with saver.
func NewRunner(fetcher Fetcher, saver Saver, opts ...Option) *Runner {
	r := &Runner{
		fetcher: fetcher,
		saver:   saver,
		delay:   DefaultDelay,
		sleep:   sleepContext,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Single is the outcome of FetchOne.
type Single struct {
	// Path is the absolute path of the written lyrics file, empty on a miss.
	Path string

	// Lyrics is the lookup result.
	Lyrics model.LyricsResult
}

// Found returns true if lyrics were found and saved.
func (s Single) Found() bool {
	return s.Path != ""
}

// FetchOne looks up a single song and saves its lyrics.
//
// A miss or a failed lookup is reported through the progress callback and
// is not an error. An error is returned only when the lyrics file cannot be
// written. No delay is applied.
func (r *Runner) FetchOne(ctx context.Context, req model.SongRequest) (Single, error) {
	res := r.lookup(ctx, req)
	if !res.Found() {
		r.progress(LevelWarning, "Could not find lyrics for the specified song")
		return Single{Lyrics: res}, nil
	}

	path, err := r.save(req.Title, res.Text)
	if err != nil {
		return Single{Lyrics: res}, err
	}

	r.progress(LevelSuccess, "Lyrics saved to %s", path)
	return Single{Path: path, Lyrics: res}, nil
}

// Run processes every line of the list file at listPath.
//
// Each non-blank line is "title" or "title|artist". Lines are handled in
// order with the configured delay after each one. Misses and failed lookups
// are reported and skipped. The summary's Total counts every line of the
// file, blank ones included.
//
// A missing file yields ErrListNotFound with nothing written. A read or
// write failure stops the batch with ErrBatchAborted and the partial
// summary. Cancelling ctx stops the batch with ctx.Err().
func (r *Runner) Run(ctx context.Context, listPath string) (model.BatchSummary, error) {
	var summary model.BatchSummary

	lines, err := readLines(listPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.progress(LevelError, "Error: Could not find file %s", listPath)
			return summary, fmt.Errorf("%w: %s", ErrListNotFound, listPath)
		}
		r.progress(LevelError, "Error processing song list: %v", err)
		return summary, fmt.Errorf("%w: %w", ErrBatchAborted, err)
	}

	summary.Total = len(lines)
	r.progress(LevelInfo, "Found %d songs to process", summary.Total)

	for i, line := range lines {
		req, ok, parseErr := model.ParseBatchEntry(line)
		if !ok {
			summary.Skipped++
			continue
		}

		if err := ctx.Err(); err != nil {
			return summary, err
		}

		r.progress(LevelInfo, "\nProcessing %d/%d: %s", i+1, summary.Total, req)

		var res model.LyricsResult
		if parseErr != nil {
			res = model.Failed(parseErr)
			r.progress(LevelError, "Error fetching lyrics: %v", parseErr)
		} else {
			res = r.lookup(ctx, req)
		}

		if res.Found() {
			path, err := r.save(req.Title, res.Text)
			if err != nil {
				r.progress(LevelError, "Error processing song list: %v", err)
				return summary, fmt.Errorf("%w: %w", ErrBatchAborted, err)
			}
			r.progress(LevelSuccess, "✓ Saved lyrics to %s", path)
			summary.Successful++
		} else {
			if res.Outcome == model.OutcomeFailed {
				summary.Failed++
			} else {
				summary.Missed++
			}
			r.progress(LevelWarning, "✗ Could not find lyrics for %s", req.Title)
		}

		if err := r.sleep(ctx, r.delay); err != nil {
			return summary, err
		}
	}

	r.progress(LevelInfo, "\nProcessing complete! Successfully fetched %s songs", summary)
	r.logger.Debug("batch finished",
		"list", listPath,
		"total", summary.Total,
		"successful", summary.Successful,
		"missed", summary.Missed,
		"failed", summary.Failed,
		"skipped", summary.Skipped)

	return summary, nil
}

// lookup fetches lyrics and reports a failed lookup. The result of a failed
// lookup is otherwise handled like a miss.
func (r *Runner) lookup(ctx context.Context, req model.SongRequest) model.LyricsResult {
	res := r.fetcher.Fetch(ctx, req)
	r.logger.Debug("lookup finished", "song", req.String(), "outcome", res.Outcome.String(), "url", res.URL)
	if res.Outcome == model.OutcomeFailed {
		r.progress(LevelError, "Error fetching lyrics: %v", res.Err)
	}
	return res
}

func (r *Runner) save(title, lyrics string) (string, error) {
	if path, err := r.saver.Path(title); err == nil {
		r.progress(LevelVerbose, "Saving lyrics to: %s", path)
	}
	return r.saver.Save(title, lyrics)
}

func (r *Runner) progress(level ProgressLevel, format string, args ...any) {
	if r.onProgress != nil {
		r.onProgress(ProgressEvent{Message: fmt.Sprintf(format, args...), Level: level})
	}
}

// readLines returns every line of the file with line endings removed.
// A trailing newline does not produce an extra empty line and lines have
// no length limit.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	reader := bufio.NewReader(f)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
