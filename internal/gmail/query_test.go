package gmail

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	gmailapi "google.golang.org/api/gmail/v1"
)

func TestBuildQueryFull(t *testing.T) {
	after := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	got := BuildQuery(
		[]string{"@initech.com", "@initech.io"},
		[]string{"interview", "offer"},
		after,
	)
	want := `(from:@initech.com OR from:@initech.io) ("interview" OR "offer") after:2026/03/15 -in:sent -in:drafts -in:spam`
	if got != want {
		t.Fatalf("query = %q\nwant    %q", got, want)
	}
}

func TestBuildQueryNoDomainsNoDate(t *testing.T) {
	got := BuildQuery(nil, []string{"resume"}, time.Time{})
	want := `("resume") -in:sent -in:drafts -in:spam`
	if got != want {
		t.Fatalf("query = %q, want %q", got, want)
	}
}

func TestCompanyDomainsSlugsAndDedupes(t *testing.T) {
	got := CompanyDomains([]string{"Initech, Inc.", "initech", "  "})
	want := []string{"@initechinc.com", "@initechinc.io", "@initechinc.co", "@initech.com", "@initech.io", "@initech.co"}
	if len(got) != len(want) {
		t.Fatalf("domains = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("domains[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCompanyDomainsCapsSlugLength(t *testing.T) {
	long := strings.Repeat("a", 40)
	got := CompanyDomains([]string{long})
	if got[0] != "@"+strings.Repeat("a", 30)+".com" {
		t.Fatalf("domain = %q", got[0])
	}
}

func TestDecodeBase64URLVariants(t *testing.T) {
	plain := "Hello, candidate!"
	raw := base64.RawURLEncoding.EncodeToString([]byte(plain))
	padded := base64.URLEncoding.EncodeToString([]byte(plain))

	if got := decodeBase64URL(raw); got != plain {
		t.Fatalf("raw decode = %q", got)
	}
	if got := decodeBase64URL(padded); got != plain {
		t.Fatalf("padded decode = %q", got)
	}
	if got := decodeBase64URL("!!!not base64!!!"); got != "!!!not base64!!!" {
		t.Fatalf("invalid input = %q, want passthrough", got)
	}
}

func TestParseMessageHeadersAndBody(t *testing.T) {
	body := base64.RawURLEncoding.EncodeToString([]byte("We would like to interview you."))
	msg := &gmailapi.Message{
		Id:       "m1",
		ThreadId: "t1",
		Snippet:  "We would like...",
		Payload: &gmailapi.MessagePart{
			Headers: []*gmailapi.MessagePartHeader{
				{Name: "Subject", Value: "Interview invitation"},
				{Name: "From", Value: "recruiter@initech.com"},
				{Name: "To", Value: "me@example.com"},
				{Name: "Date", Value: "Mon, 16 Mar 2026 09:00:00 -0700"},
			},
			Body: &gmailapi.MessagePartBody{Data: body},
		},
	}

	parsed := parseMessage(msg)
	if parsed.Subject != "Interview invitation" || parsed.From != "recruiter@initech.com" {
		t.Fatalf("parsed = %+v", parsed)
	}
	if parsed.Body != "We would like to interview you." {
		t.Fatalf("Body = %q", parsed.Body)
	}
}

func TestParseMessagePrefersTextPartAndStripsHTML(t *testing.T) {
	html := `<html><body><p>Offer attached.</p><script>x()</script></body></html>`
	data := base64.RawURLEncoding.EncodeToString([]byte(html))
	msg := &gmailapi.Message{
		Id: "m2",
		Payload: &gmailapi.MessagePart{
			Parts: []*gmailapi.MessagePart{
				{MimeType: "application/pdf", Body: &gmailapi.MessagePartBody{Data: "ignored"}},
				{MimeType: "text/html", Body: &gmailapi.MessagePartBody{Data: data}},
			},
		},
	}

	parsed := parseMessage(msg)
	if parsed.Body != "Offer attached." {
		t.Fatalf("Body = %q", parsed.Body)
	}
}

func TestParseMessageTruncatesBody(t *testing.T) {
	long := strings.Repeat("x", bodyLimit+100)
	data := base64.RawURLEncoding.EncodeToString([]byte(long))
	msg := &gmailapi.Message{
		Id:      "m3",
		Payload: &gmailapi.MessagePart{Body: &gmailapi.MessagePartBody{Data: data}},
	}

	parsed := parseMessage(msg)
	if len(parsed.Body) != bodyLimit {
		t.Fatalf("len = %d, want %d", len(parsed.Body), bodyLimit)
	}
}
