package ingestion

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/resumix/resumix/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the posting fetch fails
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

// LooksLikeURL reports whether a job description field is a posting URL
// rather than pasted text.
func LooksLikeURL(s string) bool {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, " \n\t") {
		return false
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// Posting is a fetched job posting reduced to text.
type Posting struct {
	Text      string
	SourceURL string
	Platform  fetch.Platform
	FromCache bool
}

// URLOptions configures posting fetches.
type URLOptions struct {
	// Fetcher caches fetched postings; nil fetches directly.
	Fetcher *fetch.CachedFetcher
	// SkipCache forces a fresh fetch even when a Fetcher is set.
	SkipCache bool
	// ChromePath selects the browser binary for SPA fallback. Empty
	// disables the browser fallback entirely.
	ChromePath string
	UseBrowser bool
}

// FromURL fetches a posting URL, extracts the main text with
// platform-specific selectors, and cleans it.
func FromURL(ctx context.Context, urlStr string, opts URLOptions) (*Posting, error) {
	platform := fetch.DetectPlatform(urlStr)

	var html string
	fromCache := false
	if opts.Fetcher != nil {
		result, err := opts.Fetcher.Fetch(ctx, urlStr, opts.SkipCache)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
		}
		html = result.HTML
		fromCache = result.FromCache
	} else {
		result, err := fetch.URL(ctx, urlStr, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
		}
		html = result.HTML
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	// SPA fallback: re-render in a browser when the static HTML was
	// nearly empty. A browser failure keeps the HTTP content.
	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		if browserHTML, browserErr := fetch.WithBrowser(ctx, urlStr, opts.ChromePath, fetch.DefaultTimeout); browserErr == nil {
			if rendered, extractErr := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...); extractErr == nil {
				text = rendered
			}
		}
	}

	return &Posting{
		Text:      CleanText(text),
		SourceURL: urlStr,
		Platform:  platform,
		FromCache: fromCache,
	}, nil
}
