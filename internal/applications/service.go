package applications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"jobtrack-backend/internal/ai"
	"jobtrack-backend/internal/shared/telemetry"
)

func newID() string {
	return uuid.NewString()
}

// Customizer produces tailored resume artifacts for a job posting.
type Customizer interface {
	Customize(ctx context.Context, req ai.CustomizeRequest) (ai.CustomizeResult, error)
}

// Researcher produces a company briefing for a job posting.
type Researcher interface {
	Research(ctx context.Context, company, jobTitle string) (ai.ResearchResult, error)
}

// Service implements the application lifecycle.
type Service struct {
	Repo       Repo
	Customizer Customizer
	Researcher Researcher
}

// NewService constructs a Service.
func NewService(repo Repo, customizer Customizer, researcher Researcher) *Service {
	return &Service{Repo: repo, Customizer: customizer, Researcher: researcher}
}

// List returns all applications, newest first.
func (s *Service) List(ctx context.Context) ([]Application, error) {
	return s.Repo.List(ctx)
}

// Get returns one application.
func (s *Service) Get(ctx context.Context, id string) (Application, error) {
	return s.Repo.Get(ctx, id)
}

// Add creates a new application for the given posting. The posting's ID and
// CreatedAt are assigned here; the application starts pending / not_applied
// with a seeded "created" activity.
func (s *Service) Add(ctx context.Context, posting JobPosting) (Application, error) {
	if strings.TrimSpace(posting.Title) == "" || strings.TrimSpace(posting.Company) == "" {
		return Application{}, fmt.Errorf("%w: job posting requires title and company", ErrInvalidInput)
	}
	now := time.Now().UTC()
	posting.ID = newID()
	posting.CreatedAt = now
	if posting.Source == "" {
		posting.Source = "text"
	}

	app := Application{
		ID:         newID(),
		JobPosting: posting,
		Status:     StatusPending,
		Stage:      StageNotApplied,
		Activities: []Activity{{
			ID:        newID(),
			Date:      now,
			Type:      ActivityCreated,
			Title:     "Application created",
			CreatedAt: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, app); err != nil {
		return Application{}, err
	}
	return app, nil
}

// Update applies the non-nil fields of upd to an application.
func (s *Service) Update(ctx context.Context, id string, upd UpdateRequest) (Application, error) {
	app, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if upd.CustomizedResume != nil {
		app.CustomizedResume = upd.CustomizedResume
	}
	if upd.StructuredResume != nil {
		app.StructuredResume = upd.StructuredResume
	}
	if upd.CustomizationSummary != nil {
		app.CustomizationSummary = upd.CustomizationSummary
	}
	if upd.Status != nil {
		switch *upd.Status {
		case StatusPending, StatusProcessing, StatusReady, StatusArchived:
		default:
			return Application{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *upd.Status)
		}
		app.Status = *upd.Status
	}
	if upd.Stage != nil {
		if !ValidStage(*upd.Stage) {
			return Application{}, fmt.Errorf("%w: unknown stage %q", ErrInvalidInput, *upd.Stage)
		}
		app.Stage = *upd.Stage
	}
	app.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, app); err != nil {
		return Application{}, err
	}
	return app, nil
}

// Delete removes an application entirely.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// Archive marks an application archived. Archiving is terminal but
// non-destructive; archived applications keep their artifacts.
func (s *Service) Archive(ctx context.Context, id string) (Application, error) {
	app, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Application{}, err
	}
	app.Status = StatusArchived
	app.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, app); err != nil {
		return Application{}, err
	}
	return app, nil
}

// SetStage moves an application to a pipeline stage.
func (s *Service) SetStage(ctx context.Context, id string, stage Stage) (Application, error) {
	if !ValidStage(stage) {
		return Application{}, fmt.Errorf("%w: unknown stage %q", ErrInvalidInput, stage)
	}
	app, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Application{}, err
	}
	app.Stage = stage
	app.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, app); err != nil {
		return Application{}, err
	}
	return app, nil
}

// AddActivity appends a timeline activity to an application.
func (s *Service) AddActivity(ctx context.Context, id string, input ActivityInput) (Activity, error) {
	if !ValidActivityType(input.Type) {
		return Activity{}, fmt.Errorf("%w: unknown activity type %q", ErrInvalidInput, input.Type)
	}
	if strings.TrimSpace(input.Title) == "" {
		return Activity{}, fmt.Errorf("%w: activity title is required", ErrInvalidInput)
	}
	app, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Activity{}, err
	}
	now := time.Now().UTC()
	date := input.Date
	if date.IsZero() {
		date = now
	}
	activity := Activity{
		ID:        newID(),
		Date:      date,
		Type:      input.Type,
		Title:     input.Title,
		Notes:     input.Notes,
		CreatedAt: now,
	}
	app.Activities = append(app.Activities, activity)
	app.UpdatedAt = now
	if err := s.Repo.Update(ctx, app); err != nil {
		return Activity{}, err
	}
	return activity, nil
}

// DeleteActivity removes one activity from an application's timeline.
func (s *Service) DeleteActivity(ctx context.Context, id, activityID string) error {
	app, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	kept := make([]Activity, 0, len(app.Activities))
	found := false
	for _, act := range app.Activities {
		if act.ID == activityID {
			found = true
			continue
		}
		kept = append(kept, act)
	}
	if !found {
		return ErrNotFound
	}
	app.Activities = kept
	app.UpdatedAt = time.Now().UTC()
	return s.Repo.Update(ctx, app)
}

// UpdateJobPosting edits the tracked posting's headline fields.
func (s *Service) UpdateJobPosting(ctx context.Context, id string, upd JobPostingUpdate) (Application, error) {
	app, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if upd.Title != nil {
		app.JobPosting.Title = *upd.Title
	}
	if upd.Company != nil {
		app.JobPosting.Company = *upd.Company
	}
	if upd.SalaryRange != nil {
		app.JobPosting.SalaryRange = upd.SalaryRange
	}
	app.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, app); err != nil {
		return Application{}, err
	}
	return app, nil
}

// Process runs customization and company research for a pending application.
// Both calls run concurrently and are joined: if either fails, nothing from
// the round is persisted and the application reverts to pending. There is no
// automatic retry; the caller can process again.
func (s *Service) Process(ctx context.Context, id, masterResume string, skills []string) (Application, error) {
	if strings.TrimSpace(masterResume) == "" {
		return Application{}, fmt.Errorf("%w: master resume is required", ErrInvalidInput)
	}
	app, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if app.Status != StatusPending {
		return Application{}, fmt.Errorf("%w: status is %q", ErrNotPending, app.Status)
	}

	app.Status = StatusProcessing
	app.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, app); err != nil {
		return Application{}, err
	}

	var (
		customized ai.CustomizeResult
		research   ai.ResearchResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		customized, err = s.Customizer.Customize(gctx, ai.CustomizeRequest{
			MasterResume: masterResume,
			Skills:       skills,
			JobTitle:     app.JobPosting.Title,
			Company:      app.JobPosting.Company,
			Description:  app.JobPosting.Description,
			Requirements: app.JobPosting.Requirements,
		})
		if err != nil {
			return fmt.Errorf("customize: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		research, err = s.Researcher.Research(gctx, app.JobPosting.Company, app.JobPosting.Title)
		if err != nil {
			return fmt.Errorf("research: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		telemetry.Error("applications.process_failed", map[string]any{
			"application_id": id,
			"error":          err.Error(),
		})
		app.Status = StatusPending
		app.UpdatedAt = time.Now().UTC()
		if revertErr := s.Repo.Update(context.WithoutCancel(ctx), app); revertErr != nil {
			telemetry.Error("applications.revert_failed", map[string]any{
				"application_id": id,
				"error":          revertErr.Error(),
			})
		}
		return Application{}, err
	}

	now := time.Now().UTC()
	app.CustomizedResume = &customized.CustomizedResume
	app.StructuredResume = customized.StructuredResume
	if customized.Summary != "" {
		app.CustomizationSummary = &customized.Summary
	}
	score := customized.MatchScore
	app.MatchScore = &score
	if customized.MatchAnalysis != "" {
		app.MatchAnalysis = &customized.MatchAnalysis
	}
	app.Research = &CompanyResearch{
		CompanyInfo:   research.CompanyInfo,
		HiringManager: research.HiringManager,
		OrgStructure:  research.OrgStructure,
		Sources:       research.Sources,
		CreatedAt:     now,
	}
	app.Status = StatusReady
	app.UpdatedAt = now
	if err := s.Repo.Update(ctx, app); err != nil {
		return Application{}, err
	}
	return app, nil
}

// emailActivityTypes maps parsed email types to timeline activity types.
var emailActivityTypes = map[string]ActivityType{
	"application_received": ActivityEmailReceived,
	"interview_request":    ActivityInterview,
	"rejection":            ActivityRejection,
	"offer":                ActivityOffer,
	"follow_up":            ActivityFollowUp,
	"other":                ActivityEmailReceived,
}

// MatchEmail links a parsed email to an application by company name and
// records a timeline activity of the mapped type. Returns false when no
// active application matches.
func (s *Service) MatchEmail(ctx context.Context, email EmailMatch) (Application, bool, error) {
	company := strings.ToLower(strings.TrimSpace(email.Company))
	if company == "" {
		return Application{}, false, nil
	}
	apps, err := s.Repo.List(ctx)
	if err != nil {
		return Application{}, false, err
	}
	for _, app := range apps {
		if app.Archived() {
			continue
		}
		appCompany := strings.ToLower(app.JobPosting.Company)
		if appCompany == "" {
			continue
		}
		if !strings.Contains(appCompany, company) && !strings.Contains(company, appCompany) {
			continue
		}
		actType, ok := emailActivityTypes[email.EmailType]
		if !ok {
			actType = ActivityEmailReceived
		}
		title := email.Subject
		if title == "" {
			title = ActivityTypeLabels[actType]
		}
		if _, err := s.AddActivity(ctx, app.ID, ActivityInput{
			Date:  email.Date,
			Type:  actType,
			Title: title,
		}); err != nil {
			return Application{}, false, err
		}
		updated, err := s.Repo.Get(ctx, app.ID)
		if err != nil {
			return Application{}, false, err
		}
		return updated, true, nil
	}
	return Application{}, false, nil
}
