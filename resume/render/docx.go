// Package render encodes structured resumes into binary document formats.
// Templates handle the structurally renderable formats (markdown, html);
// this package handles the downstream encodings (docx, pdf).
package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"strings"

	"jobtrack-backend/resume/model"
)

// BuildDocx renders a resume as a Word document built directly from the
// structured model, not from the markdown/html template output: the word
// processor's structural model is a flat paragraph sequence, so the section
// ordering and field-omission rules are kept in sync with the templates by
// convention rather than shared code.
func BuildDocx(resume model.StructuredResume) ([]byte, error) {
	if strings.TrimSpace(resume.ContactInfo.Name) == "" {
		return nil, errors.New("contact name is required")
	}

	paragraphs := buildParagraphs(resume)

	var out bytes.Buffer
	writer := zip.NewWriter(&out)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
		{"word/numbering.xml", numberingXML},
		{"word/document.xml", documentXML(paragraphs)},
	}
	for _, part := range parts {
		f, err := writer.Create(part.name)
		if err != nil {
			return nil, err
		}
		if _, err := f.Write([]byte(part.content)); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

type run struct {
	text   string
	bold   bool
	italic bool
}

type paragraph struct {
	style    string // Title, Heading1, or empty for body text
	centered bool
	bullet   bool
	runs     []run
}

func text(s string) paragraph          { return paragraph{runs: []run{{text: s}}} }
func blank() paragraph                 { return paragraph{} }
func bulletText(s string) paragraph    { return paragraph{bullet: true, runs: []run{{text: s}}} }
func heading(title string) paragraph   { return paragraph{style: "Heading1", runs: []run{{text: title}}} }
func centered(runs ...run) paragraph   { return paragraph{centered: true, runs: runs} }
func italicLine(runs ...run) paragraph { return paragraph{runs: runs} }

// buildParagraphs mirrors the template section order: title, contact, links,
// summary, experience, skills, education, certifications, projects.
func buildParagraphs(resume model.StructuredResume) []paragraph {
	contact := resume.ContactInfo
	var out []paragraph

	out = append(out, paragraph{style: "Title", centered: true, runs: []run{{text: contact.Name}}})

	if line := joinPresent(" | ", contact.Email, contact.Phone, contact.Location); line != "" {
		out = append(out, centered(run{text: line}))
	}
	var links []string
	if contact.LinkedIn != "" {
		links = append(links, "LinkedIn: "+contact.LinkedIn)
	}
	if contact.GitHub != "" {
		links = append(links, "GitHub: "+contact.GitHub)
	}
	if contact.Website != "" {
		links = append(links, "Website: "+contact.Website)
	}
	if len(links) > 0 {
		out = append(out, centered(run{text: strings.Join(links, " | ")}))
	}
	out = append(out, blank())

	if resume.Summary != "" {
		out = append(out, heading("SUMMARY"), text(resume.Summary), blank())
	}

	if len(resume.Experience) > 0 {
		out = append(out, heading("EXPERIENCE"))
		for _, exp := range resume.Experience {
			out = append(out, paragraph{runs: []run{{text: exp.Title, bold: true}}})
			meta := []run{{text: exp.Company, bold: true}}
			if exp.Location != "" {
				meta = append(meta, run{text: " | " + exp.Location})
			}
			meta = append(meta, run{text: " | " + exp.DateRange()})
			out = append(out, paragraph{runs: meta})
			for _, bullet := range exp.Bullets {
				out = append(out, bulletText(bullet))
			}
			if len(exp.Technologies) > 0 {
				out = append(out, italicLine(
					run{text: "Technologies: ", italic: true},
					run{text: strings.Join(exp.Technologies, ", "), italic: true},
				))
			}
			out = append(out, blank())
		}
	}

	if resume.HasTechnicalSkills() {
		out = append(out, heading("TECHNICAL SKILLS"))
		for _, cat := range resume.TechnicalSkills {
			out = append(out, paragraph{runs: []run{
				{text: cat.Name + ": ", bold: true},
				{text: strings.Join(cat.Skills, ", ")},
			}})
		}
		out = append(out, blank())
	} else if len(resume.Skills) > 0 {
		out = append(out, heading("SKILLS"), text(strings.Join(resume.Skills, ", ")), blank())
	}

	if len(resume.Education) > 0 {
		out = append(out, heading("EDUCATION"))
		for _, edu := range resume.Education {
			degree := []run{{text: edu.Degree, bold: true}}
			if edu.Field != "" {
				degree = append(degree, run{text: " in " + edu.Field})
			}
			out = append(out, paragraph{runs: degree})
			institution := []run{{text: edu.Institution, bold: true}}
			if edu.GraduationDate != "" {
				institution = append(institution, run{text: " | " + edu.GraduationDate})
			}
			out = append(out, paragraph{runs: institution})
			if edu.GPA != "" {
				out = append(out, text("GPA: "+edu.GPA))
			}
			if len(edu.Honors) > 0 {
				out = append(out, italicLine(run{text: strings.Join(edu.Honors, ", "), italic: true}))
			}
			out = append(out, blank())
		}
	}

	if len(resume.Certifications) > 0 {
		out = append(out, heading("CERTIFICATIONS"))
		for _, cert := range resume.Certifications {
			runs := []run{{text: cert.Name, bold: true}}
			if cert.Issuer != "" {
				runs = append(runs, run{text: " - " + cert.Issuer})
			}
			if cert.Date != "" {
				runs = append(runs, run{text: " (" + cert.Date + ")"})
			}
			out = append(out, paragraph{runs: runs})
		}
		out = append(out, blank())
	}

	if len(resume.Projects) > 0 {
		out = append(out, heading("PROJECTS"))
		for _, project := range resume.Projects {
			out = append(out, paragraph{runs: []run{{text: project.Name, bold: true}}})
			out = append(out, text(project.Description))
			if len(project.Technologies) > 0 {
				out = append(out, italicLine(
					run{text: "Technologies: ", italic: true},
					run{text: strings.Join(project.Technologies, ", "), italic: true},
				))
			}
			for _, bullet := range project.Bullets {
				out = append(out, bulletText(bullet))
			}
			out = append(out, blank())
		}
	}

	return out
}

func documentXML(paragraphs []paragraph) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		writeParagraphXML(&b, p)
	}
	b.WriteString(`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/><w:pgMar w:top="720" w:right="720" w:bottom="720" w:left="720"/></w:sectPr>`)
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

func writeParagraphXML(b *strings.Builder, p paragraph) {
	b.WriteString("<w:p>")
	if p.style != "" || p.centered || p.bullet {
		b.WriteString("<w:pPr>")
		if p.style != "" {
			b.WriteString(`<w:pStyle w:val="` + p.style + `"/>`)
		}
		if p.bullet {
			b.WriteString(`<w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr>`)
		}
		if p.centered {
			b.WriteString(`<w:jc w:val="center"/>`)
		}
		b.WriteString("</w:pPr>")
	}
	for _, r := range p.runs {
		b.WriteString("<w:r>")
		if r.bold || r.italic {
			b.WriteString("<w:rPr>")
			if r.bold {
				b.WriteString("<w:b/>")
			}
			if r.italic {
				b.WriteString("<w:i/>")
			}
			b.WriteString("</w:rPr>")
		}
		b.WriteString(`<w:t xml:space="preserve">` + escapeXML(r.text) + `</w:t>`)
		b.WriteString("</w:r>")
	}
	b.WriteString("</w:p>")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	// EscapeText only fails on a failing writer; bytes.Buffer never does.
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func joinPresent(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
