package gmail

import (
	"encoding/base64"
	"strings"

	"github.com/PuerkitoBio/goquery"
	gmailapi "google.golang.org/api/gmail/v1"
)

// bodyLimit caps the decoded message body.
const bodyLimit = 5000

// Message is a fetched Gmail message in the shape the email parser expects.
type Message struct {
	ID       string `json:"id"`
	ThreadID string `json:"threadId"`
	Snippet  string `json:"snippet"`
	Subject  string `json:"subject"`
	From     string `json:"from"`
	To       string `json:"to"`
	Date     string `json:"date"`
	Body     string `json:"body"`
}

// parseMessage converts an API message: headers by name, base64url body
// (top-level or first text part), HTML stripped, body capped.
func parseMessage(msg *gmailapi.Message) Message {
	var headers []*gmailapi.MessagePartHeader
	if msg.Payload != nil {
		headers = msg.Payload.Headers
	}
	header := func(name string) string {
		for _, h := range headers {
			if strings.EqualFold(h.Name, name) {
				return h.Value
			}
		}
		return ""
	}

	body := ""
	if msg.Payload != nil {
		if msg.Payload.Body != nil && msg.Payload.Body.Data != "" {
			body = decodeBase64URL(msg.Payload.Body.Data)
		} else {
			for _, part := range msg.Payload.Parts {
				if part.MimeType != "text/plain" && part.MimeType != "text/html" {
					continue
				}
				if part.Body != nil && part.Body.Data != "" {
					body = decodeBase64URL(part.Body.Data)
				}
				break
			}
		}
	}

	if strings.Contains(body, "<html") || strings.Contains(body, "<body") {
		body = stripHTML(body)
	}
	if len(body) > bodyLimit {
		body = body[:bodyLimit]
	}

	return Message{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Snippet:  msg.Snippet,
		Subject:  header("Subject"),
		From:     header("From"),
		To:       header("To"),
		Date:     header("Date"),
		Body:     body,
	}
}

// decodeBase64URL decodes Gmail's base64url payloads, tolerating both padded
// and unpadded forms. Undecodable input is returned as-is.
func decodeBase64URL(data string) string {
	if decoded, err := base64.RawURLEncoding.DecodeString(data); err == nil {
		return string(decoded)
	}
	if decoded, err := base64.URLEncoding.DecodeString(data); err == nil {
		return string(decoded)
	}
	return data
}

func stripHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	doc.Find("script, style").Remove()
	return strings.TrimSpace(doc.Find("body").Text())
}
