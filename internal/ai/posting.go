package ai

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed prompts/extract_posting.txt
var promptExtractPosting string

const (
	extractPostingMaxTokens = 2000
	// pageTextLimit caps how much page text goes into the prompt.
	pageTextLimit = 50000
)

// PostingExtract is the structured job posting pulled out of a page.
type PostingExtract struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	SalaryRange  *string  `json:"salaryRange"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	RawText      string   `json:"rawText"`
}

// ExtractPosting pulls job posting fields out of cleaned page text.
func (s *Service) ExtractPosting(ctx context.Context, pageText string) (PostingExtract, error) {
	if strings.TrimSpace(pageText) == "" {
		return PostingExtract{}, fmt.Errorf("%w: page content is required", ErrInvalidInput)
	}
	if len(pageText) > pageTextLimit {
		pageText = pageText[:pageTextLimit]
	}

	prompt := strings.Replace(promptExtractPosting, "{{PAGE}}", pageText, 1)
	text, err := s.Client.Complete(ctx, prompt, extractPostingMaxTokens)
	if err != nil {
		return PostingExtract{}, err
	}

	raw, ok := extractJSONObject(text)
	if !ok {
		return PostingExtract{}, fmt.Errorf("%w: no JSON object in posting response", ErrInvalidLLMOutput)
	}
	var result PostingExtract
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return PostingExtract{}, fmt.Errorf("%w: %v", ErrInvalidLLMOutput, err)
	}
	return result, nil
}
