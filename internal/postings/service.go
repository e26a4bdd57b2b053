// Package postings fetches a job posting page and extracts its structured
// fields with the AI extractor.
package postings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobtrack-backend/internal/ai"
)

const (
	userAgent    = "Mozilla/5.0 (compatible; JobTrack/1.0)"
	fetchTimeout = 30 * time.Second
	// maxBodyBytes bounds how much of the page is read.
	maxBodyBytes = 2 << 20
)

var (
	ErrInvalidURL  = errors.New("invalid url")
	ErrFetchFailed = errors.New("failed to fetch url")
)

// Extractor pulls structured posting fields out of page text.
type Extractor interface {
	ExtractPosting(ctx context.Context, pageText string) (ai.PostingExtract, error)
}

// Service fetches and parses job postings.
type Service struct {
	Extractor  Extractor
	HTTPClient *http.Client
}

// NewService constructs a Service.
func NewService(extractor Extractor) *Service {
	return &Service{
		Extractor:  extractor,
		HTTPClient: &http.Client{Timeout: fetchTimeout},
	}
}

// Fetch downloads the posting page, strips it to text and extracts the
// posting fields. The extract's SourceURL and rawText fallback are set here.
func (s *Service) Fetch(ctx context.Context, rawURL string) (ai.PostingExtract, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ai.PostingExtract{}, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ai.PostingExtract{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, parsed.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return ai.PostingExtract{}, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return ai.PostingExtract{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ai.PostingExtract{}, fmt.Errorf("%w: HTTP status %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return ai.PostingExtract{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	pageText, err := htmlToText(string(body))
	if err != nil {
		return ai.PostingExtract{}, err
	}

	result, err := s.Extractor.ExtractPosting(ctx, pageText)
	if err != nil {
		return ai.PostingExtract{}, err
	}
	if strings.TrimSpace(result.RawText) == "" {
		result.RawText = pageText
	}
	return result, nil
}

var whitespaceRun = regexp.MustCompile(`[ \t]+`)
var blankLines = regexp.MustCompile(`\n{3,}`)

// htmlToText strips a posting page down to readable text, dropping chrome
// elements first.
func htmlToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, iframe, .ad, .ads, .sidebar, .cookie-banner").Remove()

	content := doc.Find("main, article, .job-description, #job-description")
	var text string
	if content.Length() > 0 {
		text = content.First().Text()
	} else {
		text = doc.Find("body").Text()
	}

	text = whitespaceRun.ReplaceAllString(text, " ")
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	text = strings.Join(lines, "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text), nil
}
