package genius

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/handiism/genius-lyrics/internal/config"
	"github.com/handiism/genius-lyrics/internal/genius/dto"
	lhttp "github.com/handiism/genius-lyrics/internal/http"
	"github.com/handiism/genius-lyrics/internal/logging"
	"github.com/handiism/genius-lyrics/internal/model"
)

const (
	DefaultAPIBaseURL = "https://api.genius.com"
	DefaultWebBaseURL = "https://genius.com"
)

// Client looks up song lyrics on Genius.
//
// A lookup is two requests: an authenticated call to the search API to find
// the song page, then a plain GET of that page to scrape the lyrics. The API
// token is only sent to the API host.
//
// Example usage:
//
//	client := genius.NewClient(token)
//	res := client.Fetch(ctx, model.SongRequest{Title: "Hey Jude", Artist: "The Beatles"})
//	if res.Found() {
//	    fmt.Println(res.Text)
//	}
type Client struct {
	api *lhttp.Client
	web *lhttp.Client

	apiBase              string
	webBase              string
	removeSectionHeaders bool
	logger               *slog.Logger
}

type options struct {
	apiBase              string
	webBase              string
	userAgent            string
	timeout              time.Duration
	removeSectionHeaders bool
	logger               *slog.Logger
	httpOpts             []lhttp.Option
}

// Option configures a Client.
type Option func(*options)

// WithAPIBaseURL overrides the API root (default https://api.genius.com).
func WithAPIBaseURL(u string) Option {
	return func(o *options) { o.apiBase = u }
}

// WithWebBaseURL overrides the site root used for relative song paths.
func WithWebBaseURL(u string) Option {
	return func(o *options) { o.webBase = u }
}

// WithUserAgent sets the User-Agent of both underlying clients.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithRemoveSectionHeaders strips "[Verse 1]" style lines from the lyrics.
func WithRemoveSectionHeaders(remove bool) Option {
	return func(o *options) { o.removeSectionHeaders = remove }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithHTTPOptions passes extra options to both underlying HTTP clients.
func WithHTTPOptions(opts ...lhttp.Option) Option {
	return func(o *options) { o.httpOpts = append(o.httpOpts, opts...) }
}

// NewClient creates a Client authenticated with token.
func NewClient(token string, opts ...Option) *Client {
	o := &options{
		apiBase: DefaultAPIBaseURL,
		webBase: DefaultWebBaseURL,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}

	common := []lhttp.Option{lhttp.WithUserAgent(o.userAgent), lhttp.WithTimeout(o.timeout)}
	common = append(common, o.httpOpts...)

	return &Client{
		api:                  lhttp.NewClient(append([]lhttp.Option{lhttp.WithToken(token)}, common...)...),
		web:                  lhttp.NewClient(common...),
		apiBase:              strings.TrimRight(o.apiBase, "/"),
		webBase:              strings.TrimRight(o.webBase, "/"),
		removeSectionHeaders: o.removeSectionHeaders,
		logger:               o.logger,
	}
}

// NewClientFromSettings creates a Client using the request settings.
func NewClientFromSettings(token string, s *config.Settings, logger *slog.Logger) *Client {
	return NewClient(token,
		WithAPIBaseURL(s.APIBaseURL),
		WithWebBaseURL(s.WebBaseURL),
		WithUserAgent(s.UserAgent),
		WithTimeout(s.Timeout()),
		WithRemoveSectionHeaders(s.RemoveSectionHeaders),
		WithLogger(logger),
	)
}

// Fetch searches for req and returns its lyrics.
//
// Fetch never returns an error: a search without a usable hit is a Miss and
// any transport or decoding problem is a Failed result carrying the error.
// Exactly one search request is made; the song page is fetched only when a
// hit was selected. A selected hit whose lyrics are incomplete, that is
// marked instrumental, or whose title names a tracklist, credits or similar
// page is a Miss.
func (c *Client) Fetch(ctx context.Context, req model.SongRequest) model.LyricsResult {
	if err := req.Validate(); err != nil {
		return model.Failed(err)
	}

	song, ok, err := c.search(ctx, req)
	if err != nil {
		c.logger.Warn("search failed", "song", req.String(), "err", err)
		return model.Failed(err)
	}
	if !ok {
		c.logger.Debug("no search hits", "song", req.String())
		return model.Miss()
	}

	if !isLyricsPage(song) {
		c.logger.Debug("hit is not a lyrics page", "song", req.String(), "title", song.Title,
			"lyrics_state", song.LyricsState, "instrumental", song.Instrumental)
		return model.Miss()
	}

	pageURL := c.songURL(song)
	if pageURL == "" {
		c.logger.Debug("hit has no page URL", "song", req.String(), "id", song.ID)
		return model.Miss()
	}
	c.logger.Debug("selected hit", "song", req.String(), "title", song.Title, "artist", song.ArtistName(), "url", pageURL)

	html, err := c.web.GetString(ctx, pageURL)
	if err != nil {
		c.logger.Warn("lyrics page request failed", "url", pageURL, "err", err)
		return model.Failed(fmt.Errorf("failed to fetch lyrics page: %w", err))
	}

	lyrics, err := extractLyrics(html, c.removeSectionHeaders)
	if err != nil {
		return model.Failed(fmt.Errorf("failed to extract lyrics: %w", err))
	}

	res := model.Miss()
	if lyrics != "" {
		res = model.Found(lyrics)
	}
	res.Title = song.Title
	res.Artist = song.ArtistName()
	res.URL = pageURL
	res.ArtworkURL = song.SongArtImageURL
	return res
}

func (c *Client) search(ctx context.Context, req model.SongRequest) (dto.Song, bool, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s", c.apiBase, url.QueryEscape(req.Query()))
	c.logger.Debug("searching", "query", req.Query())

	var resp dto.SearchResponse
	if err := c.api.GetJSON(ctx, searchURL, &resp); err != nil {
		return dto.Song{}, false, fmt.Errorf("failed to search song: %w", err)
	}
	if resp.Meta.Status != 0 && resp.Meta.Status != 200 {
		return dto.Song{}, false, fmt.Errorf("genius API returned status %d: %s", resp.Meta.Status, resp.Meta.Message)
	}

	song, ok := selectHit(resp.Response.Hits, req)
	return song, ok, nil
}

func (c *Client) songURL(song dto.Song) string {
	if song.URL != "" {
		return song.URL
	}
	if song.Path != "" {
		return c.webBase + "/" + strings.TrimLeft(song.Path, "/")
	}
	return ""
}
