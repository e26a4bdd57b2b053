package profile

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"jobtrack-backend/internal/extract"
	"jobtrack-backend/internal/shared/storage/object"
	"jobtrack-backend/internal/shared/telemetry"
)

const uploadCategory = "resumes"

// Service owns profile reads and writes. Resume uploads keep the original
// file in the object store and persist the extracted text.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
}

// NewService constructs a Service. Store may be nil; uploads are then
// extracted without retaining the original file.
func NewService(repo Repo, store object.ObjectStore) *Service {
	return &Service{Repo: repo, Store: store}
}

// Get returns the stored profile, or ErrNotFound when none has been saved.
func (s *Service) Get(ctx context.Context) (Profile, error) {
	return s.Repo.Get(ctx)
}

// SaveSkills replaces the skill list, keeping the resume text.
func (s *Service) SaveSkills(ctx context.Context, skills []string) (Profile, error) {
	return s.mutate(ctx, func(p *Profile) {
		p.Skills = normalizeSkills(skills)
	})
}

// SaveResume replaces the master resume text, keeping the skills.
func (s *Service) SaveResume(ctx context.Context, content string) (Profile, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Profile{}, fmt.Errorf("%w: resume content is required", ErrInvalidInput)
	}
	return s.mutate(ctx, func(p *Profile) {
		p.ResumeText = content
	})
}

// UploadResume extracts text from an uploaded file and stores it as the
// master resume. The original file is retained in the object store when one
// is configured.
func (s *Service) UploadResume(ctx context.Context, fileName string, mimeType string, data []byte) (Profile, error) {
	text, err := extract.Text(ctx, data, mimeType, fileName)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if strings.TrimSpace(text) == "" {
		return Profile{}, fmt.Errorf("%w: no text could be extracted from %s", ErrInvalidInput, fileName)
	}

	if s.Store != nil {
		key, size, _, err := s.Store.Save(ctx, uploadCategory, fileName, bytes.NewReader(data))
		if err != nil {
			telemetry.Warn("profile.upload.store_failed", map[string]any{"file": fileName, "error": err.Error()})
		} else {
			telemetry.Info("profile.upload.stored", map[string]any{"key": key, "sizeBytes": size})
		}
	}

	return s.SaveResume(ctx, text)
}

// Clear deletes the stored profile.
func (s *Service) Clear(ctx context.Context) error {
	return s.Repo.Clear(ctx)
}

func (s *Service) mutate(ctx context.Context, apply func(*Profile)) (Profile, error) {
	p, err := s.Repo.Get(ctx)
	if err != nil && err != ErrNotFound {
		return Profile{}, err
	}
	apply(&p)
	p.LastUpdated = time.Now().UTC()
	if err := s.Repo.Save(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, skill)
	}
	return out
}
