package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	ioutils "github.com/handiism/genius-lyrics/internal/io"
	"github.com/handiism/genius-lyrics/internal/model"
)

type fakeFetcher struct {
	results map[string]model.LyricsResult
	calls   []model.SongRequest
}

func (f *fakeFetcher) Fetch(_ context.Context, req model.SongRequest) model.LyricsResult {
	f.calls = append(f.calls, req)
	if res, ok := f.results[req.Title]; ok {
		return res
	}
	return model.Miss()
}

// failingSaver wraps a Store and fails for one title.
type failingSaver struct {
	*ioutils.Store
	failOn string
}

func (s failingSaver) Save(title, lyrics string) (string, error) {
	if title == s.failOn {
		return "", errors.New("disk full")
	}
	return s.Store.Save(title, lyrics)
}

type recorder struct {
	events []ProgressEvent
	sleeps []time.Duration
}

func (r *recorder) progress(e ProgressEvent) { r.events = append(r.events, e) }

func (r *recorder) sleep(_ context.Context, d time.Duration) error {
	r.sleeps = append(r.sleeps, d)
	return nil
}

func (r *recorder) messages() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Message
	}
	return out
}

func (r *recorder) has(msg string) bool {
	return slices.Contains(r.messages(), msg)
}

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "songs.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestRunner(f Fetcher, s Saver, rec *recorder) *Runner {
	return NewRunner(f, s, WithProgress(rec.progress), WithSleep(rec.sleep))
}

func TestRun_CountsBlankLines(t *testing.T) {
	list := writeList(t, "Hey Jude|The Beatles\n\nImagine\n   \nBohemian Rhapsody|Queen\n")
	fetcher := &fakeFetcher{results: map[string]model.LyricsResult{
		"Hey Jude":          model.Found("Hey Jude lyrics"),
		"Imagine":           model.Found("Imagine lyrics"),
		"Bohemian Rhapsody": model.Found("Is this the real life"),
	}}
	rec := &recorder{}
	store := ioutils.NewStore(t.TempDir())

	summary, err := newTestRunner(fetcher, store, rec).Run(context.Background(), list)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Total != 5 || summary.Successful != 3 || summary.Skipped != 2 {
		t.Errorf("summary = %+v", summary)
	}
	for _, want := range []string{
		"Found 5 songs to process",
		"\nProcessing 1/5: Hey Jude by The Beatles",
		"\nProcessing 3/5: Imagine",
		"\nProcessing 5/5: Bohemian Rhapsody by Queen",
		"\nProcessing complete! Successfully fetched 3/5 songs",
	} {
		if !rec.has(want) {
			t.Errorf("missing progress %q in %q", want, rec.messages())
		}
	}
	if len(fetcher.calls) != 3 {
		t.Errorf("fetch calls = %d, want 3", len(fetcher.calls))
	}
	if len(rec.sleeps) != 3 || rec.sleeps[0] != DefaultDelay {
		t.Errorf("sleeps = %v, want 3 x %v", rec.sleeps, DefaultDelay)
	}
}

func TestRun_HitAndMiss(t *testing.T) {
	dir := t.TempDir()
	list := writeList(t, "Hey Jude|The Beatles\nNoSuchSong123\n")
	fetcher := &fakeFetcher{results: map[string]model.LyricsResult{
		"Hey Jude": model.Found("Hey Jude, don't make it bad"),
	}}
	rec := &recorder{}

	summary, err := newTestRunner(fetcher, ioutils.NewStore(dir), rec).Run(context.Background(), list)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.String() != "1/2" || summary.Missed != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if !rec.has("✗ Could not find lyrics for NoSuchSong123") {
		t.Errorf("miss not reported: %q", rec.messages())
	}
	if !rec.has("✓ Saved lyrics to " + filepath.Join(dir, "Hey_Jude.txt")) {
		t.Errorf("save not reported: %q", rec.messages())
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || entries[0].Name() != "Hey_Jude.txt" {
		t.Errorf("files = %v, want only Hey_Jude.txt", entries)
	}
	if len(rec.sleeps) != 2 {
		t.Errorf("sleeps = %d, want 2 (delay applies to misses too)", len(rec.sleeps))
	}
	if fetcher.calls[0].Artist != "The Beatles" || fetcher.calls[1].HasArtist() {
		t.Errorf("calls = %+v", fetcher.calls)
	}
}

func TestRun_MissingFile(t *testing.T) {
	fetcher := &fakeFetcher{}
	rec := &recorder{}
	dir := t.TempDir()
	missing := filepath.Join(dir, "nope.txt")

	summary, err := newTestRunner(fetcher, ioutils.NewStore(dir), rec).Run(context.Background(), missing)
	if !errors.Is(err, ErrListNotFound) {
		t.Fatalf("err = %v, want ErrListNotFound", err)
	}
	if summary.Total != 0 || len(fetcher.calls) != 0 {
		t.Errorf("nothing should be processed: %+v, %d calls", summary, len(fetcher.calls))
	}
	if !rec.has("Error: Could not find file " + missing) {
		t.Errorf("messages = %q", rec.messages())
	}
}

func TestRun_WriteFailureAborts(t *testing.T) {
	list := writeList(t, "One\nTwo\nThree\n")
	fetcher := &fakeFetcher{results: map[string]model.LyricsResult{
		"One":   model.Found("1"),
		"Two":   model.Found("2"),
		"Three": model.Found("3"),
	}}
	rec := &recorder{}
	saver := failingSaver{Store: ioutils.NewStore(t.TempDir()), failOn: "Two"}

	summary, err := newTestRunner(fetcher, saver, rec).Run(context.Background(), list)
	if !errors.Is(err, ErrBatchAborted) {
		t.Fatalf("err = %v, want ErrBatchAborted", err)
	}
	if summary.Successful != 1 {
		t.Errorf("Successful = %d, want 1", summary.Successful)
	}
	if len(fetcher.calls) != 2 {
		t.Errorf("fetch calls = %d, want 2", len(fetcher.calls))
	}
	if !rec.has("Error processing song list: disk full") {
		t.Errorf("messages = %q", rec.messages())
	}
}

func TestRun_FailedLookupIsReported(t *testing.T) {
	list := writeList(t, "Broken\n")
	fetcher := &fakeFetcher{results: map[string]model.LyricsResult{
		"Broken": model.Failed(errors.New("status 500")),
	}}
	rec := &recorder{}

	summary, err := newTestRunner(fetcher, ioutils.NewStore(t.TempDir()), rec).Run(context.Background(), list)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Failed != 1 || summary.Successful != 0 {
		t.Errorf("summary = %+v", summary)
	}

	msgs := rec.messages()
	i := slices.Index(msgs, "Error fetching lyrics: status 500")
	j := slices.Index(msgs, "✗ Could not find lyrics for Broken")
	if i < 0 || j < 0 || i > j {
		t.Errorf("expected error then miss line, got %q", msgs)
	}
}

func TestRun_EntryParsing(t *testing.T) {
	list := writeList(t, "|Nobody\n  Song A  |  Band  |extra\r\nSong B\r\n")
	fetcher := &fakeFetcher{}
	rec := &recorder{}

	summary, err := newTestRunner(fetcher, ioutils.NewStore(t.TempDir()), rec).Run(context.Background(), list)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Total != 3 || summary.Failed != 1 || summary.Missed != 2 {
		t.Errorf("summary = %+v", summary)
	}
	want := []model.SongRequest{{Title: "Song A", Artist: "Band"}, {Title: "Song B"}}
	if !slices.Equal(fetcher.calls, want) {
		t.Errorf("calls = %+v, want %+v", fetcher.calls, want)
	}
	if !rec.has("\nProcessing 1/3:  by Nobody") {
		t.Errorf("messages = %q", rec.messages())
	}
}

func TestRun_CancelStopsLoop(t *testing.T) {
	list := writeList(t, "One\nTwo\n")
	fetcher := &fakeFetcher{}
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())

	runner := NewRunner(fetcher, ioutils.NewStore(t.TempDir()),
		WithProgress(rec.progress),
		WithSleep(func(ctx context.Context, d time.Duration) error {
			cancel()
			return ctx.Err()
		}))

	_, err := runner.Run(ctx, list)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(fetcher.calls) != 1 {
		t.Errorf("fetch calls = %d, want 1", len(fetcher.calls))
	}
	for _, m := range rec.messages() {
		if strings.HasPrefix(m, "\nProcessing complete!") {
			t.Error("completion should not be reported after cancel")
		}
	}
}

func TestFetchOne(t *testing.T) {
	dir := t.TempDir()
	fetcher := &fakeFetcher{results: map[string]model.LyricsResult{
		"Hey Jude": model.Found("Hey Jude, don't make it bad"),
	}}
	rec := &recorder{}
	runner := newTestRunner(fetcher, ioutils.NewStore(dir), rec)

	single, err := runner.FetchOne(context.Background(), model.SongRequest{Title: "Hey Jude", Artist: "The Beatles"})
	if err != nil {
		t.Fatalf("FetchOne: %v", err)
	}
	wantPath := filepath.Join(dir, "Hey_Jude.txt")
	if !single.Found() || single.Path != wantPath {
		t.Errorf("single = %+v", single)
	}
	data, _ := os.ReadFile(wantPath)
	if string(data) != "Hey Jude, don't make it bad" {
		t.Errorf("content = %q", data)
	}
	if !rec.has("Saving lyrics to: "+wantPath) || !rec.has("Lyrics saved to "+wantPath) {
		t.Errorf("messages = %q", rec.messages())
	}
	if len(rec.sleeps) != 0 {
		t.Error("single fetch should not sleep")
	}
}

func TestFetchOne_MissWritesNothing(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	runner := newTestRunner(&fakeFetcher{}, ioutils.NewStore(dir), rec)

	single, err := runner.FetchOne(context.Background(), model.SongRequest{Title: "NoSuchSong123"})
	if err != nil {
		t.Fatalf("FetchOne: %v", err)
	}
	if single.Found() {
		t.Error("expected miss")
	}
	if !rec.has("Could not find lyrics for the specified song") {
		t.Errorf("messages = %q", rec.messages())
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("files = %v, want none", entries)
	}
}

func TestFetchOne_WriteError(t *testing.T) {
	fetcher := &fakeFetcher{results: map[string]model.LyricsResult{"X": model.Found("x")}}
	saver := failingSaver{Store: ioutils.NewStore(t.TempDir()), failOn: "X"}

	if _, err := newTestRunner(fetcher, saver, &recorder{}).FetchOne(context.Background(), model.SongRequest{Title: "X"}); err == nil {
		t.Error("expected write error")
	}
}

func TestSleepContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if err := sleepContext(context.Background(), 0); err != nil {
		t.Errorf("err = %v, want nil", err)
	}
}

func TestRun_LongLine(t *testing.T) {
	long := strings.Repeat("la", 1<<20) // 2 MiB title
	list := writeList(t, long+"\nHey Jude")
	fetcher := &fakeFetcher{}
	rec := &recorder{}

	summary, err := newTestRunner(fetcher, ioutils.NewStore(t.TempDir()), rec).Run(context.Background(), list)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Total != 2 || summary.Missed != 2 {
		t.Errorf("summary = %+v", summary)
	}
	if len(fetcher.calls) != 2 || fetcher.calls[0].Title != long || fetcher.calls[1].Title != "Hey Jude" {
		t.Errorf("unexpected calls (%d)", len(fetcher.calls))
	}
}

func TestReadLines(t *testing.T) {
	tests := []struct {
		content string
		want    []string
	}{
		{"a\nb\n", []string{"a", "b"}},
		{"a\r\nb", []string{"a", "b"}},
		{"a\n\n\n", []string{"a", "", ""}},
		{"", nil},
	}
	for _, tt := range tests {
		got, err := readLines(writeList(t, tt.content))
		if err != nil {
			t.Fatalf("readLines(%q): %v", tt.content, err)
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("readLines(%q) = %q, want %q", tt.content, got, tt.want)
		}
	}
}
