package template

import (
	"strings"

	"jobtrack-backend/resume/model"
)

// escapeHTML escapes the five HTML-special characters. Every user-supplied
// string is untrusted for HTML embedding (model output and user input alike)
// and must pass through here before interpolation.
var escapeHTML = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
).Replace

const modernCSS = `    /* ATS-friendly styles: simple, single-column, standard fonts */
    * {
      margin: 0;
      padding: 0;
      box-sizing: border-box;
    }
    body {
      font-family: Arial, Calibri, Helvetica, sans-serif;
      font-size: 11pt;
      line-height: 1.4;
      color: #000;
      max-width: 8.5in;
      margin: 0 auto;
      padding: 0.5in;
      background: #fff;
    }
    h1 {
      font-size: 18pt;
      font-weight: bold;
      margin-bottom: 4px;
      text-align: center;
    }
    h2 {
      font-size: 12pt;
      font-weight: bold;
      text-transform: uppercase;
      border-bottom: 1px solid #000;
      padding-bottom: 2px;
      margin-top: 16px;
      margin-bottom: 8px;
    }
    h3 {
      font-size: 11pt;
      font-weight: bold;
      margin-bottom: 0;
    }
    .contact-info {
      text-align: center;
      font-size: 10pt;
      margin-bottom: 2px;
    }
    .summary {
      font-size: 11pt;
      margin-bottom: 8px;
    }
    .experience-item, .education-item, .project-item {
      margin-bottom: 12px;
    }
    .job-meta {
      font-size: 11pt;
      margin-bottom: 4px;
    }
    .company-name {
      font-weight: bold;
    }
    ul {
      margin-left: 18px;
      margin-top: 4px;
    }
    li {
      font-size: 11pt;
      margin-bottom: 2px;
    }
    .technologies {
      font-size: 10pt;
      color: #333;
      margin-top: 4px;
    }
    .skills-list {
      font-size: 11pt;
      margin-bottom: 4px;
    }
    .certification-item {
      font-size: 11pt;
      margin-bottom: 2px;
    }
    @media print {
      body {
        padding: 0.25in;
      }
      h2 {
        page-break-after: avoid;
      }
      .experience-item, .education-item {
        page-break-inside: avoid;
      }
    }
`

// RenderHTML produces one self-contained document (inline CSS, no external
// resources) with the same section ordering and omission rules as the
// Markdown renderer, targeting print/PDF fidelity on a letter-sized page.
func (ModernTemplate) RenderHTML(resume model.StructuredResume) string {
	var b strings.Builder
	contact := resume.ContactInfo

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("  <meta charset=\"UTF-8\">\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	b.WriteString("  <title>" + escapeHTML(contact.Name) + " - Resume</title>\n")
	b.WriteString("  <style>\n" + modernCSS + "  </style>\n</head>\n<body>\n")

	b.WriteString("  <header>\n")
	b.WriteString("    <h1>" + escapeHTML(contact.Name) + "</h1>\n")
	if contactLine := joinEscaped(" | ", contact.Email, contact.Phone, contact.Location); contactLine != "" {
		b.WriteString("    <div class=\"contact-info\">" + contactLine + "</div>\n")
	}
	if linkLine := joinEscaped(" | ", contact.LinkedIn, contact.GitHub, contact.Website); linkLine != "" {
		b.WriteString("    <div class=\"contact-info\">" + linkLine + "</div>\n")
	}
	b.WriteString("  </header>\n")

	if resume.Summary != "" {
		b.WriteString("  <section>\n    <h2>Summary</h2>\n")
		b.WriteString("    <p class=\"summary\">" + escapeHTML(resume.Summary) + "</p>\n")
		b.WriteString("  </section>\n")
	}

	if len(resume.Experience) > 0 {
		b.WriteString("  <section>\n    <h2>Experience</h2>\n")
		for _, exp := range resume.Experience {
			b.WriteString("    <div class=\"experience-item\">\n")
			b.WriteString("      <h3>" + escapeHTML(exp.Title) + "</h3>\n")
			b.WriteString("      <div class=\"job-meta\"><span class=\"company-name\">" + escapeHTML(exp.Company) + "</span>")
			if exp.Location != "" {
				b.WriteString(" | " + escapeHTML(exp.Location))
			}
			b.WriteString(" | " + escapeHTML(exp.DateRange()) + "</div>\n")
			writeBullets(&b, exp.Bullets)
			writeTechnologies(&b, exp.Technologies)
			b.WriteString("    </div>\n")
		}
		b.WriteString("  </section>\n")
	}

	if resume.HasTechnicalSkills() {
		b.WriteString("  <section>\n    <h2>Skills</h2>\n")
		for _, cat := range resume.TechnicalSkills {
			b.WriteString("    <div class=\"skills-list\"><strong>" + escapeHTML(cat.Name) + ":</strong> " + joinEscaped(", ", cat.Skills...) + "</div>\n")
		}
		b.WriteString("  </section>\n")
	} else if len(resume.Skills) > 0 {
		b.WriteString("  <section>\n    <h2>Skills</h2>\n")
		b.WriteString("    <p class=\"skills-list\">" + joinEscaped(", ", resume.Skills...) + "</p>\n")
		b.WriteString("  </section>\n")
	}

	if len(resume.Education) > 0 {
		b.WriteString("  <section>\n    <h2>Education</h2>\n")
		for _, edu := range resume.Education {
			b.WriteString("    <div class=\"education-item\">\n")
			degree := escapeHTML(edu.Degree)
			if edu.Field != "" {
				degree += " in " + escapeHTML(edu.Field)
			}
			b.WriteString("      <h3>" + degree + "</h3>\n")
			b.WriteString("      <div class=\"job-meta\"><span class=\"company-name\">" + escapeHTML(edu.Institution) + "</span>")
			if edu.GraduationDate != "" {
				b.WriteString(" | " + escapeHTML(edu.GraduationDate))
			}
			b.WriteString("</div>\n")
			if edu.GPA != "" {
				b.WriteString("      <div>GPA: " + escapeHTML(edu.GPA) + "</div>\n")
			}
			if len(edu.Honors) > 0 {
				b.WriteString("      <div>" + joinEscaped(", ", edu.Honors...) + "</div>\n")
			}
			b.WriteString("    </div>\n")
		}
		b.WriteString("  </section>\n")
	}

	if len(resume.Certifications) > 0 {
		b.WriteString("  <section>\n    <h2>Certifications</h2>\n")
		for _, cert := range resume.Certifications {
			line := escapeHTML(cert.Name)
			if cert.Issuer != "" {
				line += " - " + escapeHTML(cert.Issuer)
			}
			if cert.Date != "" {
				line += " (" + escapeHTML(cert.Date) + ")"
			}
			b.WriteString("    <div class=\"certification-item\">" + line + "</div>\n")
		}
		b.WriteString("  </section>\n")
	}

	if len(resume.Projects) > 0 {
		b.WriteString("  <section>\n    <h2>Projects</h2>\n")
		for _, project := range resume.Projects {
			b.WriteString("    <div class=\"project-item\">\n")
			b.WriteString("      <h3>" + escapeHTML(project.Name) + "</h3>\n")
			b.WriteString("      <p>" + escapeHTML(project.Description) + "</p>\n")
			writeTechnologies(&b, project.Technologies)
			writeBullets(&b, project.Bullets)
			b.WriteString("    </div>\n")
		}
		b.WriteString("  </section>\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func writeBullets(b *strings.Builder, bullets []string) {
	if len(bullets) == 0 {
		return
	}
	b.WriteString("      <ul>\n")
	for _, bullet := range bullets {
		b.WriteString("        <li>" + escapeHTML(bullet) + "</li>\n")
	}
	b.WriteString("      </ul>\n")
}

func writeTechnologies(b *strings.Builder, technologies []string) {
	if len(technologies) == 0 {
		return
	}
	b.WriteString("      <div class=\"technologies\">Technologies: " + joinEscaped(", ", technologies...) + "</div>\n")
}

func joinEscaped(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, escapeHTML(p))
		}
	}
	return strings.Join(kept, sep)
}
