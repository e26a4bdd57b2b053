package postings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobtrack-backend/internal/ai"
)

type mockExtractor struct {
	result   ai.PostingExtract
	err      error
	pageText string
}

func (m *mockExtractor) ExtractPosting(ctx context.Context, pageText string) (ai.PostingExtract, error) {
	m.pageText = pageText
	return m.result, m.err
}

const postingHTML = `<!doctype html>
<html>
<head><title>Job</title><script>track();</script></head>
<body>
<nav>Home | Jobs</nav>
<main>
<h1>Senior Engineer</h1>
<p>Initech is hiring a Senior Engineer.</p>
<p>Requirements: Go, Postgres.</p>
</main>
<footer>(c) Initech</footer>
</body>
</html>`

func TestFetchStripsHTMLAndExtracts(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer server.Close()

	extractor := &mockExtractor{result: ai.PostingExtract{
		Title:   "Senior Engineer",
		Company: "Initech",
		RawText: "Senior Engineer at Initech",
	}}
	svc := NewService(extractor)

	result, err := svc.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if result.Title != "Senior Engineer" {
		t.Fatalf("Title = %q", result.Title)
	}
	if gotUA == "" || !strings.Contains(gotUA, "JobTrack") {
		t.Fatalf("User-Agent = %q", gotUA)
	}
	if strings.Contains(extractor.pageText, "track()") || strings.Contains(extractor.pageText, "Home | Jobs") {
		t.Fatalf("chrome not stripped: %q", extractor.pageText)
	}
	if !strings.Contains(extractor.pageText, "Initech is hiring") {
		t.Fatalf("content missing: %q", extractor.pageText)
	}
}

func TestFetchFallsBackToPageText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer server.Close()

	extractor := &mockExtractor{result: ai.PostingExtract{Title: "Senior Engineer"}}
	svc := NewService(extractor)

	result, err := svc.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(result.RawText, "Initech is hiring") {
		t.Fatalf("RawText fallback missing: %q", result.RawText)
	}
}

func TestFetchRejectsBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	svc := NewService(&mockExtractor{})
	if _, err := svc.Fetch(context.Background(), server.URL); !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("err = %v, want ErrFetchFailed", err)
	}
}

func TestFetchRejectsInvalidURL(t *testing.T) {
	svc := NewService(&mockExtractor{})
	for _, bad := range []string{"", "not a url", "ftp://example.com/file"} {
		if _, err := svc.Fetch(context.Background(), bad); !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("Fetch(%q) err = %v, want ErrInvalidURL", bad, err)
		}
	}
}

func TestFetchPropagatesExtractorError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer server.Close()

	svc := NewService(&mockExtractor{err: ai.ErrInvalidLLMOutput})
	if _, err := svc.Fetch(context.Background(), server.URL); !errors.Is(err, ai.ErrInvalidLLMOutput) {
		t.Fatalf("err = %v, want ErrInvalidLLMOutput", err)
	}
}
