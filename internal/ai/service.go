package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"jobtrack-backend/resume/model"
)

// Max completion tokens per operation.
const (
	customizeMaxTokens  = 10000
	researchMaxTokens   = 3000
	refineMaxTokens     = 6000
	parseEmailMaxTokens = 1024
)

// CustomizeRequest carries the inputs for resume customization.
type CustomizeRequest struct {
	MasterResume string   `json:"resume"`
	Skills       []string `json:"skills"`
	JobTitle     string   `json:"jobTitle"`
	Company      string   `json:"company"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
}

// CustomizeResult is the customization output.
type CustomizeResult struct {
	CustomizedResume string                  `json:"customizedResume"`
	StructuredResume *model.StructuredResume `json:"structuredResume"`
	KeyMatches       []string                `json:"keyMatches"`
	Summary          string                  `json:"summary"`
	MatchScore       float64                 `json:"matchScore"`
	MatchAnalysis    string                  `json:"matchAnalysis"`
}

// ResearchResult is the company briefing output.
type ResearchResult struct {
	CompanyInfo   string   `json:"companyInfo"`
	HiringManager *string  `json:"hiringManager"`
	OrgStructure  string   `json:"orgStructure"`
	Sources       []string `json:"sources"`
}

// RefineRequest carries a targeted edit request against a customized resume.
type RefineRequest struct {
	CurrentResume  string `json:"currentResume"`
	OriginalResume string `json:"originalResume"`
	Request        string `json:"request"`
}

// RefineResult is the refinement output.
type RefineResult struct {
	UpdatedResume  string `json:"updatedResume"`
	ChangesSummary string `json:"changesSummary"`
}

// EmailInput is one inbound email to classify.
type EmailInput struct {
	Subject string `json:"subject"`
	From    string `json:"from"`
	To      string `json:"to"`
	Date    string `json:"date"`
	Body    string `json:"body"`
	Snippet string `json:"snippet,omitempty"`
}

// ParsedEmail is the structured classification of one email.
type ParsedEmail struct {
	Company           *string `json:"company"`
	JobTitle          *string `json:"jobTitle"`
	EmailType         string  `json:"emailType"`
	Summary           string  `json:"summary"`
	ActionRequired    bool    `json:"actionRequired"`
	ActionDescription *string `json:"actionDescription"`
	ScheduledDate     *string `json:"scheduledDate"`
	SenderName        *string `json:"senderName"`
	SenderRole        *string `json:"senderRole"`
	Confidence        string  `json:"confidence"`
}

// Service implements the model-backed operations on top of a completion client.
type Service struct {
	Client Client
}

// NewService constructs a Service.
func NewService(client Client) *Service {
	return &Service{Client: client}
}

// Customize tailors the master resume to a job posting and scores the match.
// The returned structured resume is stamped with fresh metadata; nothing is
// persisted here.
func (s *Service) Customize(ctx context.Context, req CustomizeRequest) (CustomizeResult, error) {
	if strings.TrimSpace(req.MasterResume) == "" {
		return CustomizeResult{}, fmt.Errorf("%w: resume is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.JobTitle) == "" && strings.TrimSpace(req.Description) == "" {
		return CustomizeResult{}, fmt.Errorf("%w: job posting is required", ErrInvalidInput)
	}

	text, err := s.Client.Complete(ctx, buildCustomizePrompt(req), customizeMaxTokens)
	if err != nil {
		return CustomizeResult{}, err
	}

	raw, ok := extractJSONObject(text)
	if !ok {
		return CustomizeResult{}, fmt.Errorf("%w: no JSON object in customize response", ErrInvalidLLMOutput)
	}
	var result CustomizeResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return CustomizeResult{}, fmt.Errorf("%w: %v", ErrInvalidLLMOutput, err)
	}
	if result.StructuredResume != nil {
		result.StructuredResume.Stamp()
	}
	return result, nil
}

// Research produces a company briefing for the given role.
func (s *Service) Research(ctx context.Context, company, jobTitle string) (ResearchResult, error) {
	if strings.TrimSpace(company) == "" || strings.TrimSpace(jobTitle) == "" {
		return ResearchResult{}, fmt.Errorf("%w: company and job title are required", ErrInvalidInput)
	}

	text, err := s.Client.Complete(ctx, buildResearchPrompt(company, jobTitle), researchMaxTokens)
	if err != nil {
		return ResearchResult{}, err
	}

	raw, ok := extractJSONObject(text)
	if !ok {
		return ResearchResult{}, fmt.Errorf("%w: no JSON object in research response", ErrInvalidLLMOutput)
	}
	var result ResearchResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return ResearchResult{}, fmt.Errorf("%w: %v", ErrInvalidLLMOutput, err)
	}
	return result, nil
}

// Refine applies a minimal user-requested edit to a customized resume.
func (s *Service) Refine(ctx context.Context, req RefineRequest) (RefineResult, error) {
	if strings.TrimSpace(req.CurrentResume) == "" || strings.TrimSpace(req.Request) == "" {
		return RefineResult{}, fmt.Errorf("%w: current resume and request are required", ErrInvalidInput)
	}

	text, err := s.Client.Complete(ctx, buildRefinePrompt(req), refineMaxTokens)
	if err != nil {
		return RefineResult{}, err
	}

	raw, ok := extractJSONObject(text)
	if !ok {
		return RefineResult{}, fmt.Errorf("%w: no JSON object in refine response", ErrInvalidLLMOutput)
	}
	var result RefineResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return RefineResult{}, fmt.Errorf("%w: %v", ErrInvalidLLMOutput, err)
	}
	return result, nil
}

// defaultParsedEmail is returned when a single email cannot be classified.
func defaultParsedEmail() ParsedEmail {
	return ParsedEmail{
		EmailType:  "other",
		Summary:    "Could not parse email content",
		Confidence: "low",
	}
}

// ParseEmails classifies each email independently. A malformed model response
// degrades that one email to the low-confidence default instead of failing
// the batch; transport errors still fail it.
func (s *Service) ParseEmails(ctx context.Context, emails []EmailInput) ([]ParsedEmail, error) {
	if len(emails) == 0 {
		return nil, fmt.Errorf("%w: emails array is required", ErrInvalidInput)
	}

	parsed := make([]ParsedEmail, 0, len(emails))
	for _, email := range emails {
		text, err := s.Client.Complete(ctx, buildParseEmailPrompt(email), parseEmailMaxTokens)
		if err != nil {
			return nil, err
		}
		raw, ok := extractJSONObject(text)
		if !ok {
			parsed = append(parsed, defaultParsedEmail())
			continue
		}
		var p ParsedEmail
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			parsed = append(parsed, defaultParsedEmail())
			continue
		}
		parsed = append(parsed, p)
	}
	return parsed, nil
}
