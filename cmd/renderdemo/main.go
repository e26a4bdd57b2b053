package main

// Render the sample resume through every offline export format:
//   go run ./cmd/renderdemo -out ./out
// Pass -pdf to also exercise the headless Chrome renderer.

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"jobtrack-backend/resume/export"
	"jobtrack-backend/resume/model"
	"jobtrack-backend/resume/render"
	"jobtrack-backend/resume/template"
)

func main() {
	outDir := flag.String("out", "./out", "output directory for rendered files")
	withPDF := flag.Bool("pdf", false, "also render a PDF (requires Chrome)")
	flag.Parse()

	resume := sampleResume()
	svc := &export.Service{Registry: template.NewRegistry()}
	if *withPDF {
		svc.PDF = &render.ChromePDFRenderer{ExecPath: os.Getenv("CHROME_PATH")}
	}

	formats := []export.Format{export.FormatMarkdown, export.FormatHTML, export.FormatDOCX}
	if *withPDF {
		formats = append(formats, export.FormatPDF)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir failed: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	for _, format := range formats {
		file, err := svc.Export(ctx, resume, format, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "export %s failed: %v\n", format, err)
			os.Exit(1)
		}
		path := filepath.Join(*outDir, file.Name)
		if err := os.WriteFile(path, file.Data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write %s failed: %v\n", path, err)
			os.Exit(1)
		}
		if format == export.FormatDOCX {
			if err := validateDocx(file.Data); err != nil {
				fmt.Fprintf(os.Stderr, "docx validation failed: %v\n", err)
				os.Exit(1)
			}
		}
		fmt.Printf("OK: wrote %s\n", path)
	}

	modelPath := filepath.Join(*outDir, "sample_resume_model.json")
	payload, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode model failed: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(modelPath, payload, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s failed: %v\n", modelPath, err)
		os.Exit(1)
	}
	fmt.Printf("OK: wrote %s\n", modelPath)
}

func validateDocx(data []byte) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return err
	}
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			return nil
		}
	}
	return fmt.Errorf("word/document.xml missing from archive")
}

func sampleResume() model.StructuredResume {
	resume := model.StructuredResume{
		ContactInfo: model.ContactInfo{
			Name:     "Ada Lovelace",
			Email:    "ada@example.com",
			Phone:    "+1 555 0100",
			Location: "London, UK",
			LinkedIn: "linkedin.com/in/adalovelace",
			GitHub:   "github.com/adalovelace",
		},
		Summary: "Pioneering engineer with a decade of experience turning analytical engines into production systems.",
		Experience: []model.ExperienceItem{
			{
				Company:   "Analytical Engines Ltd",
				Title:     "Principal Engineer",
				Location:  "London, UK",
				StartDate: "2019-03",
				Bullets: []string{
					"Designed the first general-purpose computation pipeline, cutting batch latency by 40%",
					"Led a team of 6 engineers across two product lines",
				},
				Technologies: []string{"Go", "PostgreSQL", "Kubernetes"},
			},
			{
				Company:   "Babbage & Co",
				Title:     "Software Engineer",
				StartDate: "2014-06",
				EndDate:   "2019-02",
				Bullets: []string{
					"Built the difference-engine billing service handling 2M events/day",
				},
			},
		},
		Education: []model.EducationItem{
			{
				Institution:    "University of London",
				Degree:         "BSc",
				Field:          "Mathematics",
				GraduationDate: "2014",
			},
		},
		TechnicalSkills: model.TechnicalSkills{
			{Name: "Languages", Skills: []string{"Go", "Python", "SQL"}},
			{Name: "Infrastructure", Skills: []string{"Kubernetes", "Terraform"}},
		},
		Certifications: []model.CertificationItem{
			{Name: "CKA", Issuer: "CNCF", Date: "2022"},
		},
		Projects: []model.ProjectItem{
			{
				Name:         "Notes on the Analytical Engine",
				Description:  "Open-source annotations and tooling",
				Technologies: []string{"Go"},
				URL:          "https://example.com/notes",
			},
		},
	}
	resume.Stamp()
	return resume
}
