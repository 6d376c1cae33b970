// Package fetch retrieves job postings from the web and reduces them to plain
// text for analysis. Fetching is tiered: a plain HTTP GET with platform-aware
// extraction first, then a headless-browser render when the page turns out to
// be a JavaScript shell.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the default HTTP request timeout
const DefaultTimeout = 30 * time.Second

// defaultUserAgent identifies the fetcher to job boards
const defaultUserAgent = "Mozilla/5.0 (compatible; ProfileTailor/1.0)"

// Posting is a fetched job posting reduced to text
type Posting struct {
	URL         string
	Platform    Platform
	Text        string
	UsedBrowser bool
}

// Error represents a failure to retrieve or extract a posting
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures posting retrieval
type Options struct {
	Timeout time.Duration
	// AllowBrowser enables the headless-browser fallback tier
	AllowBrowser bool
	Verbose      bool
}

// DefaultOptions returns sensible defaults
func DefaultOptions() *Options {
	return &Options{
		Timeout:      DefaultTimeout,
		AllowBrowser: true,
	}
}

// JobPosting fetches a job posting URL and extracts its text. When the HTTP
// tier yields too little text and the browser tier is enabled, the page is
// re-rendered headlessly before extraction runs again.
func JobPosting(ctx context.Context, urlStr string, opts *Options) (*Posting, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	platform := DetectPlatform(urlStr)
	posting := &Posting{URL: urlStr, Platform: platform}

	html, err := fetchHTML(ctx, urlStr, opts.Timeout)
	if err != nil {
		return nil, err
	}

	text, err := extractPostingText(html, platform)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to extract text", Cause: err}
	}

	if tooShort(text) && opts.AllowBrowser {
		rendered, browserErr := renderWithBrowser(ctx, urlStr, opts.Timeout, opts.Verbose)
		if browserErr == nil {
			if renderedText, extractErr := extractPostingText(rendered, platform); extractErr == nil && len(renderedText) > len(text) {
				text = renderedText
				posting.UsedBrowser = true
			}
		}
	}

	if strings.TrimSpace(text) == "" {
		return nil, &Error{URL: urlStr, Message: "no text content found"}
	}

	posting.Text = text
	return posting, nil
}

func fetchHTML(ctx context.Context, urlStr string, timeout time.Duration) (string, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}
	return string(body), nil
}

// extractPostingText strips noise from the HTML and returns the text of the
// best-matching content region for the detected platform.
func extractPostingText(html string, platform Platform) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, form, .cookie-banner, .social-share").Remove()
	if noise := platform.NoiseSelectors(); len(noise) > 0 {
		doc.Find(strings.Join(noise, ", ")).Remove()
	}

	var content *goquery.Selection
	for _, selector := range platform.ContentSelectors() {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	return normalizeWhitespace(content.Text()), nil
}

func normalizeWhitespace(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n")
}
