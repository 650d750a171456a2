package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/genius-lyrics/internal/audio"
	"github.com/handiism/genius-lyrics/internal/batch"
	"github.com/handiism/genius-lyrics/internal/config"
	"github.com/handiism/genius-lyrics/internal/genius"
	"github.com/handiism/genius-lyrics/internal/http"
	ioutils "github.com/handiism/genius-lyrics/internal/io"
	"github.com/handiism/genius-lyrics/internal/logging"
	"github.com/handiism/genius-lyrics/internal/model"
	"golang.org/x/sync/errgroup"
)

// Exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

var errInterrupted = errors.New("interrupted")

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	verboseStyle = lipgloss.NewStyle().Faint(true)
)

// options holds the parsed command line.
type options struct {
	song    string
	artist  string
	file    string
	embed   string
	output  string
	config  string
	env     string
	delay   float64
	verbose bool
}

func main() {
	os.Exit(run())
}

func run() int {
	// Command line flags
	var opts options
	flag.StringVar(&opts.song, "song", "", "Name of the song")
	flag.StringVar(&opts.file, "file", "", "Path to text file containing list of songs (title or title|artist per line)")
	flag.StringVar(&opts.artist, "artist", "", "Name of the artist (optional, single song only)")
	flag.StringVar(&opts.embed, "embed", "", "MP3 file to embed the lyrics into (single song only)")
	flag.StringVar(&opts.output, "output", "", "Output directory (overrides config)")
	flag.StringVar(&opts.config, "config", "", "Path to config file")
	flag.StringVar(&opts.env, "env", "", "Path to .env file (default ./.env)")
	flag.Float64Var(&opts.delay, "delay", -1, "Seconds to wait between songs in a list (overrides config)")
	flag.BoolVar(&opts.verbose, "verbose", false, "Show verbose output")

	flag.Usage = usage
	flag.Parse()

	if err := opts.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		usage()
		return exitUsage
	}

	// Load config
	settings := config.DefaultSettings()
	if opts.config != "" {
		var err error
		settings, err = config.Load(opts.config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			return exitFailure
		}
	}

	// Apply flags
	if opts.output != "" {
		settings.OutputDir = opts.output
	}
	if opts.delay >= 0 {
		settings.RequestDelay = opts.delay
	}
	if opts.verbose {
		settings.LogLevel = "debug"
	}

	var envFiles []string
	if opts.env != "" {
		envFiles = append(envFiles, opts.env)
	}
	token, err := config.LoadToken(envFiles...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}

	logger := logging.Setup(settings.LogLevel, settings.LogFormat, os.Stderr)

	client := genius.NewClientFromSettings(token, settings, logger)
	store := ioutils.NewStore(settings.OutputDir)
	runner := batch.NewRunner(client, store,
		batch.WithDelay(settings.Delay()),
		batch.WithLogger(logger),
		batch.WithProgress(printer(opts.verbose)),
	)

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case <-sigCh:
			fmt.Println("\nInterrupted, cancelling...")
			return errInterrupted
		case <-gctx.Done():
			return nil
		}
	})
	g.Go(func() error {
		defer cancel()
		if opts.file != "" {
			_, err := runner.Run(gctx, opts.file)
			return err
		}
		return fetchSingle(gctx, runner, settings, logger, opts)
	})

	err = g.Wait()
	switch {
	case err == nil, errors.Is(err, batch.ErrListNotFound):
		return exitOK
	case errors.Is(err, errInterrupted), errors.Is(err, context.Canceled):
		fmt.Println("Cancelled.")
		return exitInterrupted
	case errors.Is(err, batch.ErrBatchAborted):
		// already reported through the progress callback
		return exitFailure
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}
}

func (o options) validate() error {
	switch {
	case o.song == "" && o.file == "":
		return errors.New("one of --song or --file is required")
	case o.song != "" && o.file != "":
		return errors.New("--song and --file cannot be used together")
	case o.file != "" && o.artist != "":
		return errors.New("--artist can only be used with --song")
	case o.file != "" && o.embed != "":
		return errors.New("--embed can only be used with --song")
	case flag.NArg() > 0:
		return fmt.Errorf("unexpected arguments: %v", flag.Args())
	}
	if o.embed != "" {
		if _, err := os.Stat(o.embed); err != nil {
			return fmt.Errorf("cannot embed into %s: %w", o.embed, err)
		}
	}
	return nil
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "Genius Lyrics - Fetch song lyrics and save them to files")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  lyrics-dl --song <title> [--artist <name>] [--embed <file.mp3>] [options]")
	fmt.Fprintln(out, "  lyrics-dl --file <list.txt> [options]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "For interactive mode, use: lyrics-tui")
	fmt.Fprintln(out)
	flag.PrintDefaults()
}

// printer returns the progress callback writing user-facing lines to stdout.
func printer(verbose bool) func(batch.ProgressEvent) {
	return func(event batch.ProgressEvent) {
		if event.Level == batch.LevelVerbose && !verbose {
			return
		}

		switch event.Level {
		case batch.LevelError:
			fmt.Println(errorStyle.Render(event.Message))
		case batch.LevelWarning:
			fmt.Println(warningStyle.Render(event.Message))
		case batch.LevelSuccess:
			fmt.Println(successStyle.Render(event.Message))
		case batch.LevelVerbose:
			fmt.Println(verboseStyle.Render(event.Message))
		default:
			fmt.Println(event.Message)
		}
	}
}

// fetchSingle fetches one song and optionally embeds it into an MP3.
// Only a failure to write the lyrics file is returned as an error.
func fetchSingle(ctx context.Context, runner *batch.Runner, settings *config.Settings, logger *slog.Logger, opts options) error {
	req, err := model.NewSongRequest(opts.song, opts.artist)
	if err != nil {
		return err
	}

	single, err := runner.FetchOne(ctx, req)
	if err != nil {
		return err
	}
	if !single.Found() || opts.embed == "" {
		return nil
	}

	report := printer(opts.verbose)
	tagger := audio.NewTagger(&audio.TagConfig{
		Lyrics:  audio.TagModify,
		Artwork: settings.EmbedArtwork,
	})

	var artwork []byte
	if settings.EmbedArtwork && single.Lyrics.ArtworkURL != "" {
		artwork, err = downloadArtwork(ctx, single.Lyrics.ArtworkURL, settings)
		if err != nil {
			logger.Warn("artwork download failed", "url", single.Lyrics.ArtworkURL, "err", err)
			report(batch.ProgressEvent{Message: fmt.Sprintf("Could not download artwork: %v", err), Level: batch.LevelWarning})
		}
	}

	if err := tagger.SaveTags(opts.embed, single.Lyrics, artwork); err != nil {
		report(batch.ProgressEvent{Message: fmt.Sprintf("Could not embed lyrics in %s: %v", opts.embed, err), Level: batch.LevelWarning})
		return nil
	}
	report(batch.ProgressEvent{Message: fmt.Sprintf("Embedded lyrics in %s", opts.embed), Level: batch.LevelSuccess})
	return nil
}

// downloadArtwork fetches cover art and prepares it for an APIC frame.
// A non-positive artwork_max_size disables resizing.
func downloadArtwork(ctx context.Context, url string, settings *config.Settings) ([]byte, error) {
	client := http.NewClient(http.WithUserAgent(settings.UserAgent), http.WithTimeout(settings.Timeout()))
	data, err := client.DownloadBytes(ctx, url)
	if err != nil {
		return nil, err
	}

	images := ioutils.NewImageService()
	if settings.ArtworkMaxSize <= 0 {
		// keep the original size; APIC frames are written as JPEG
		return images.ConvertToJPEG(data)
	}
	return images.ResizeImage(data, settings.ArtworkMaxSize, settings.ArtworkMaxSize)
}
