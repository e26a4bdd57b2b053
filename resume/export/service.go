// Package export orchestrates rendering a structured resume into a
// downloadable file in any supported format.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"jobtrack-backend/internal/shared/storage/object"
	"jobtrack-backend/internal/shared/telemetry"
	"jobtrack-backend/resume/model"
	"jobtrack-backend/resume/render"
	"jobtrack-backend/resume/template"
)

// Format is an export target.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// File is a rendered artifact ready for download.
type File struct {
	Name string
	MIME string
	Data []byte
}

// Service renders resumes through the template registry and the downstream
// encoders. Store is optional; when present every export is archived there.
type Service struct {
	Registry *template.Registry
	PDF      render.PDFRenderer
	Store    object.ObjectStore
}

// Export renders the resume in the requested format. An empty templateID
// selects the registry default. On any renderer failure no file is produced.
func (s *Service) Export(ctx context.Context, resume model.StructuredResume, format Format, templateID string) (File, error) {
	if templateID == "" {
		def, err := s.Registry.Default()
		if err != nil {
			return File{}, err
		}
		templateID = def.ID()
	}

	name := Filename(resume.ContactInfo.Name, format)

	var (
		data []byte
		mime string
	)
	switch format {
	case FormatMarkdown:
		content, err := s.Registry.Render(resume, templateID, template.FormatMarkdown)
		if err != nil {
			return File{}, err
		}
		data, mime = []byte(content), "text/markdown; charset=utf-8"
	case FormatHTML:
		content, err := s.Registry.Render(resume, templateID, template.FormatHTML)
		if err != nil {
			return File{}, err
		}
		data, mime = []byte(content), "text/html; charset=utf-8"
	case FormatPDF:
		htmlContent, err := s.Registry.Render(resume, templateID, template.FormatHTML)
		if err != nil {
			return File{}, err
		}
		if s.PDF == nil {
			return File{}, errors.New("pdf renderer not configured")
		}
		data, err = s.PDF.RenderHTML(ctx, htmlContent)
		if err != nil {
			return File{}, fmt.Errorf("rasterize pdf: %w", err)
		}
		mime = "application/pdf"
	case FormatDOCX:
		var err error
		data, err = render.BuildDocx(resume)
		if err != nil {
			return File{}, err
		}
		mime = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return File{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	file := File{Name: name, MIME: mime, Data: data}
	s.archive(ctx, file)
	return file, nil
}

// archive keeps a best-effort copy of the export; failures never fail the
// export itself.
func (s *Service) archive(ctx context.Context, file File) {
	if s.Store == nil {
		return
	}
	if _, _, _, err := s.Store.Save(ctx, "exports", file.Name, bytes.NewReader(file.Data)); err != nil {
		telemetry.Error("export.archive_failed", map[string]any{
			"file":  file.Name,
			"error": err.Error(),
		})
	}
}

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Filename derives the download name: lowercase the contact name, collapse
// every run of non-alphanumerics to a single hyphen, trim edge hyphens, and
// append -resume with the format's extension.
func Filename(name string, format Format) string {
	slug := nonSlugRun.ReplaceAllString(strings.ToLower(name), "-")
	slug = strings.Trim(slug, "-")
	return slug + "-resume." + Extension(format)
}

// Extension maps a format to its file extension.
func Extension(format Format) string {
	if format == FormatDOCX {
		return "docx"
	}
	return string(format)
}
