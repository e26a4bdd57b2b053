package template

import (
	"strings"

	"jobtrack-backend/resume/model"
)

// ModernTemplate is the built-in ATS-optimized template: single column,
// standard section headings, ATS-safe fonts, no tables or multi-column
// layout, contact info in the body.
type ModernTemplate struct{}

// NewModernTemplate returns the built-in modern template.
func NewModernTemplate() ModernTemplate { return ModernTemplate{} }

func (ModernTemplate) ID() string   { return "modern" }
func (ModernTemplate) Name() string { return "Modern (ATS-Optimized)" }
func (ModernTemplate) Description() string {
	return "A clean, ATS-friendly template with standard formatting. Optimized for Applicant Tracking Systems."
}

// RenderMarkdown assembles the fixed section order, emitting each block only
// when its underlying data is non-empty.
func (ModernTemplate) RenderMarkdown(resume model.StructuredResume) string {
	var lines []string
	push := func(s string) { lines = append(lines, s) }

	contact := resume.ContactInfo
	push("# " + contact.Name)
	push("")

	if contactLine := joinNonEmpty(" | ", contact.Email, contact.Phone, contact.Location); contactLine != "" {
		push(contactLine)
	}
	if linkLine := joinNonEmpty(" | ", contact.LinkedIn, contact.GitHub, contact.Website); linkLine != "" {
		push(linkLine)
	}
	push("")

	if resume.Summary != "" {
		push("## SUMMARY")
		push("")
		push(resume.Summary)
		push("")
	}

	if len(resume.Experience) > 0 {
		push("## EXPERIENCE")
		push("")
		for _, exp := range resume.Experience {
			push("### " + exp.Title)
			meta := exp.Company
			if exp.Location != "" {
				meta += " | " + exp.Location
			}
			meta += " | " + exp.DateRange()
			push(meta)
			push("")
			if len(exp.Bullets) > 0 {
				for _, bullet := range exp.Bullets {
					push("- " + bullet)
				}
				push("")
			}
			if len(exp.Technologies) > 0 {
				push("Technologies: " + strings.Join(exp.Technologies, ", "))
				push("")
			}
		}
	}

	// Skills come before education: ATS keyword scanners read top-down.
	if resume.HasTechnicalSkills() {
		push("## SKILLS")
		push("")
		for _, cat := range resume.TechnicalSkills {
			push(cat.Name + ": " + strings.Join(cat.Skills, ", "))
		}
		push("")
	} else if len(resume.Skills) > 0 {
		push("## SKILLS")
		push("")
		push(strings.Join(resume.Skills, ", "))
		push("")
	}

	if len(resume.Education) > 0 {
		push("## EDUCATION")
		push("")
		for _, edu := range resume.Education {
			degree := edu.Degree
			if edu.Field != "" {
				degree += " in " + edu.Field
			}
			push(degree)
			institution := edu.Institution
			if edu.GraduationDate != "" {
				institution += " | " + edu.GraduationDate
			}
			push(institution)
			if edu.GPA != "" {
				push("GPA: " + edu.GPA)
			}
			if len(edu.Honors) > 0 {
				push(strings.Join(edu.Honors, ", "))
			}
			push("")
		}
	}

	if len(resume.Certifications) > 0 {
		push("## CERTIFICATIONS")
		push("")
		for _, cert := range resume.Certifications {
			line := "- " + cert.Name
			if cert.Issuer != "" {
				line += " - " + cert.Issuer
			}
			if cert.Date != "" {
				line += " (" + cert.Date + ")"
			}
			push(line)
		}
		push("")
	}

	if len(resume.Projects) > 0 {
		push("## PROJECTS")
		push("")
		for _, project := range resume.Projects {
			push("### " + project.Name)
			push(project.Description)
			if len(project.Technologies) > 0 {
				push("Technologies: " + strings.Join(project.Technologies, ", "))
			}
			if len(project.Bullets) > 0 {
				push("")
				for _, bullet := range project.Bullets {
					push("- " + bullet)
				}
			}
			push("")
		}
	}

	return strings.Join(lines, "\n")
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
