package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type mockClient struct {
	responses []string
	err       error
	prompts   []string
}

func (m *mockClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", errors.New("no mock response")
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, nil
}

func TestCustomizeParsesAndStamps(t *testing.T) {
	client := &mockClient{responses: []string{
		"Here is the result:\n" + `{
			"customizedResume": "ADA LOVELACE\nEngineer",
			"structuredResume": {
				"contactInfo": {"name": "Ada Lovelace"},
				"experience": [{"company": "Acme", "title": "Engineer"}]
			},
			"keyMatches": ["Go"],
			"summary": "Adjusted the summary.",
			"matchScore": 82,
			"matchAnalysis": "Strong match."
		}`,
	}}
	svc := NewService(client)

	result, err := svc.Customize(context.Background(), CustomizeRequest{
		MasterResume: "Ada Lovelace\nEngineer at Acme",
		JobTitle:     "Engineer",
		Company:      "Initech",
		Description:  "Build things",
	})
	if err != nil {
		t.Fatalf("Customize: %v", err)
	}
	if result.MatchScore != 82 {
		t.Fatalf("MatchScore = %v, want 82", result.MatchScore)
	}
	if result.StructuredResume == nil {
		t.Fatal("StructuredResume is nil")
	}
	if result.StructuredResume.ID == "" || result.StructuredResume.Version != 1 {
		t.Fatalf("structured resume not stamped: id=%q version=%d", result.StructuredResume.ID, result.StructuredResume.Version)
	}
	if result.StructuredResume.Experience[0].ID == "" {
		t.Fatal("experience item id not stamped")
	}
}

func TestCustomizeRequiresResume(t *testing.T) {
	svc := NewService(&mockClient{})
	_, err := svc.Customize(context.Background(), CustomizeRequest{JobTitle: "Engineer"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestCustomizeRejectsNonJSONOutput(t *testing.T) {
	svc := NewService(&mockClient{responses: []string{"I cannot help with that."}})
	_, err := svc.Customize(context.Background(), CustomizeRequest{
		MasterResume: "resume",
		JobTitle:     "Engineer",
	})
	if !errors.Is(err, ErrInvalidLLMOutput) {
		t.Fatalf("err = %v, want ErrInvalidLLMOutput", err)
	}
}

func TestCustomizePromptIncludesSkills(t *testing.T) {
	client := &mockClient{responses: []string{`{"customizedResume": "x"}`}}
	svc := NewService(client)
	_, err := svc.Customize(context.Background(), CustomizeRequest{
		MasterResume: "resume",
		JobTitle:     "Engineer",
		Skills:       []string{"Go", "Postgres"},
	})
	if err != nil {
		t.Fatalf("Customize: %v", err)
	}
	if !strings.Contains(client.prompts[0], "CANDIDATE'S KEY SKILLS & TECHNOLOGIES:\nGo, Postgres") {
		t.Fatal("prompt missing skills section")
	}
}

func TestResearchParsesResult(t *testing.T) {
	client := &mockClient{responses: []string{`{
		"companyInfo": "Initech makes TPS reports.",
		"hiringManager": "Director of Engineering",
		"orgStructure": "Reports to platform team",
		"sources": ["LinkedIn"]
	}`}}
	svc := NewService(client)

	result, err := svc.Research(context.Background(), "Initech", "Engineer")
	if err != nil {
		t.Fatalf("Research: %v", err)
	}
	if result.HiringManager == nil || *result.HiringManager != "Director of Engineering" {
		t.Fatalf("HiringManager = %v", result.HiringManager)
	}
}

func TestResearchRequiresCompanyAndTitle(t *testing.T) {
	svc := NewService(&mockClient{})
	if _, err := svc.Research(context.Background(), "Initech", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestRefineParsesResult(t *testing.T) {
	client := &mockClient{responses: []string{`{"updatedResume": "new text", "changesSummary": "reworded summary"}`}}
	svc := NewService(client)

	result, err := svc.Refine(context.Background(), RefineRequest{
		CurrentResume: "old text",
		Request:       "reword the summary",
	})
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	if result.UpdatedResume != "new text" {
		t.Fatalf("UpdatedResume = %q", result.UpdatedResume)
	}
}

func TestParseEmailsDegradesPerEmail(t *testing.T) {
	client := &mockClient{responses: []string{
		`{"company": "Initech", "emailType": "interview_request", "summary": "Interview invite", "actionRequired": true, "confidence": "high"}`,
		"sorry, not json",
	}}
	svc := NewService(client)

	parsed, err := svc.ParseEmails(context.Background(), []EmailInput{
		{Subject: "Interview", From: "recruiter@initech.com", Body: "Please schedule."},
		{Subject: "Newsletter", From: "news@example.com", Body: "Weekly digest."},
	})
	if err != nil {
		t.Fatalf("ParseEmails: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("len = %d, want 2", len(parsed))
	}
	if parsed[0].EmailType != "interview_request" {
		t.Fatalf("parsed[0].EmailType = %q", parsed[0].EmailType)
	}
	if parsed[1].EmailType != "other" || parsed[1].Confidence != "low" {
		t.Fatalf("parsed[1] not degraded to default: %+v", parsed[1])
	}
}

func TestParseEmailsFailsOnTransportError(t *testing.T) {
	svc := NewService(&mockClient{err: errors.New("boom")})
	if _, err := svc.ParseEmails(context.Background(), []EmailInput{{Subject: "x"}}); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestParseEmailsRequiresEmails(t *testing.T) {
	svc := NewService(&mockClient{})
	if _, err := svc.ParseEmails(context.Background(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestParseEmailPromptTruncatesBody(t *testing.T) {
	client := &mockClient{responses: []string{`{"emailType": "other", "summary": "ok", "confidence": "low"}`}}
	svc := NewService(client)

	long := strings.Repeat("a", emailBodyLimit+500)
	if _, err := svc.ParseEmails(context.Background(), []EmailInput{{Subject: "x", Body: long}}); err != nil {
		t.Fatalf("ParseEmails: %v", err)
	}
	if strings.Count(client.prompts[0], "a") > emailBodyLimit+100 {
		t.Fatal("email body not truncated in prompt")
	}
}
