package ai

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/customize.txt
	promptCustomize string
	//go:embed prompts/research.txt
	promptResearch string
	//go:embed prompts/refine.txt
	promptRefine string
	//go:embed prompts/parse_email.txt
	promptParseEmail string
)

// emailBodyLimit caps how much of the email body goes into the prompt.
const emailBodyLimit = 3000

func buildCustomizePrompt(req CustomizeRequest) string {
	skillsSection := ""
	if len(req.Skills) > 0 {
		skillsSection = "\nCANDIDATE'S KEY SKILLS & TECHNOLOGIES:\n" + strings.Join(req.Skills, ", ") + "\n"
	}
	requirementsLine := ""
	if len(req.Requirements) > 0 {
		requirementsLine = "Requirements: " + strings.Join(req.Requirements, ", ")
	}
	return strings.NewReplacer(
		"{{RESUME}}", req.MasterResume,
		"{{SKILLS_SECTION}}", skillsSection,
		"{{JOB_TITLE}}", req.JobTitle,
		"{{COMPANY}}", req.Company,
		"{{DESCRIPTION}}", req.Description,
		"{{REQUIREMENTS_LINE}}", requirementsLine,
	).Replace(promptCustomize)
}

func buildResearchPrompt(company, jobTitle string) string {
	return strings.NewReplacer(
		"{{COMPANY}}", company,
		"{{JOB_TITLE}}", jobTitle,
	).Replace(promptResearch)
}

func buildRefinePrompt(req RefineRequest) string {
	original := req.OriginalResume
	if strings.TrimSpace(original) == "" {
		original = "Not provided"
	}
	return strings.NewReplacer(
		"{{CURRENT_RESUME}}", req.CurrentResume,
		"{{ORIGINAL_RESUME}}", original,
		"{{REQUEST}}", req.Request,
	).Replace(promptRefine)
}

func buildParseEmailPrompt(email EmailInput) string {
	body := email.Body
	if len(body) > emailBodyLimit {
		body = body[:emailBodyLimit]
	}
	return strings.NewReplacer(
		"{{FROM}}", email.From,
		"{{TO}}", email.To,
		"{{DATE}}", email.Date,
		"{{SUBJECT}}", email.Subject,
		"{{BODY}}", body,
	).Replace(promptParseEmail)
}
