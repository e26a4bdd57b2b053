package applications

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobtrack-backend/internal/ai"
)

type mockCustomizer struct {
	result ai.CustomizeResult
	err    error
	delay  time.Duration
	calls  int
}

func (m *mockCustomizer) Customize(ctx context.Context, req ai.CustomizeRequest) (ai.CustomizeResult, error) {
	m.calls++
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return ai.CustomizeResult{}, ctx.Err()
		}
	}
	return m.result, m.err
}

type mockResearcher struct {
	result ai.ResearchResult
	err    error
	calls  int
}

func (m *mockResearcher) Research(ctx context.Context, company, jobTitle string) (ai.ResearchResult, error) {
	m.calls++
	return m.result, m.err
}

func newTestService(customizer Customizer, researcher Researcher) *Service {
	return NewService(NewMemoryRepo(), customizer, researcher)
}

func addTestApplication(t *testing.T, svc *Service) Application {
	t.Helper()
	app, err := svc.Add(context.Background(), JobPosting{
		Title:       "Engineer",
		Company:     "Initech",
		Description: "Build things",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	return app
}

func TestAddSeedsLifecycle(t *testing.T) {
	svc := newTestService(nil, nil)
	app := addTestApplication(t, svc)

	if app.Status != StatusPending {
		t.Fatalf("Status = %q, want pending", app.Status)
	}
	if app.Stage != StageNotApplied {
		t.Fatalf("Stage = %q, want not_applied", app.Stage)
	}
	if len(app.Activities) != 1 || app.Activities[0].Type != ActivityCreated {
		t.Fatalf("Activities = %+v, want one created activity", app.Activities)
	}
	if app.JobPosting.ID == "" || app.ID == "" {
		t.Fatal("ids not assigned")
	}
}

func TestAddRequiresTitleAndCompany(t *testing.T) {
	svc := newTestService(nil, nil)
	if _, err := svc.Add(context.Background(), JobPosting{Title: "Engineer"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestProcessSuccessPersistsBothResults(t *testing.T) {
	summary := "Adjusted wording."
	customizer := &mockCustomizer{result: ai.CustomizeResult{
		CustomizedResume: "tailored text",
		Summary:          summary,
		MatchScore:       80,
		MatchAnalysis:    "Good fit.",
	}}
	researcher := &mockResearcher{result: ai.ResearchResult{
		CompanyInfo:  "Initech overview",
		OrgStructure: "Platform team",
		Sources:      []string{"LinkedIn"},
	}}
	svc := newTestService(customizer, researcher)
	app := addTestApplication(t, svc)

	processed, err := svc.Process(context.Background(), app.ID, "master resume", []string{"Go"})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if processed.Status != StatusReady {
		t.Fatalf("Status = %q, want ready", processed.Status)
	}
	if processed.CustomizedResume == nil || *processed.CustomizedResume != "tailored text" {
		t.Fatalf("CustomizedResume = %v", processed.CustomizedResume)
	}
	if processed.Research == nil || processed.Research.CompanyInfo != "Initech overview" {
		t.Fatalf("Research = %+v", processed.Research)
	}
	if processed.MatchScore == nil || *processed.MatchScore != 80 {
		t.Fatalf("MatchScore = %v", processed.MatchScore)
	}
	if customizer.calls != 1 || researcher.calls != 1 {
		t.Fatalf("calls customize=%d research=%d, want 1/1", customizer.calls, researcher.calls)
	}
}

func TestProcessRevertsToPendingWhenResearchFails(t *testing.T) {
	customizer := &mockCustomizer{result: ai.CustomizeResult{CustomizedResume: "tailored text"}}
	researcher := &mockResearcher{err: errors.New("upstream down")}
	svc := newTestService(customizer, researcher)
	app := addTestApplication(t, svc)

	if _, err := svc.Process(context.Background(), app.ID, "master resume", nil); err == nil {
		t.Fatal("expected process error")
	}

	stored, err := svc.Get(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Status != StatusPending {
		t.Fatalf("Status = %q, want pending after failed round", stored.Status)
	}
	if stored.CustomizedResume != nil {
		t.Fatal("customize result persisted despite failed join")
	}
	if stored.Research != nil {
		t.Fatal("research persisted despite failed join")
	}
}

func TestProcessRevertsToPendingWhenCustomizeFails(t *testing.T) {
	customizer := &mockCustomizer{err: errors.New("bad output")}
	researcher := &mockResearcher{result: ai.ResearchResult{CompanyInfo: "info"}}
	svc := newTestService(customizer, researcher)
	app := addTestApplication(t, svc)

	if _, err := svc.Process(context.Background(), app.ID, "master resume", nil); err == nil {
		t.Fatal("expected process error")
	}

	stored, _ := svc.Get(context.Background(), app.ID)
	if stored.Status != StatusPending || stored.Research != nil {
		t.Fatalf("got status=%q research=%v, want pending/nil", stored.Status, stored.Research)
	}
}

func TestProcessRejectsNonPending(t *testing.T) {
	svc := newTestService(&mockCustomizer{}, &mockResearcher{})
	app := addTestApplication(t, svc)
	if _, err := svc.Archive(context.Background(), app.ID); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	_, err := svc.Process(context.Background(), app.ID, "master resume", nil)
	if !errors.Is(err, ErrNotPending) {
		t.Fatalf("err = %v, want ErrNotPending", err)
	}
}

func TestProcessRequiresMasterResume(t *testing.T) {
	svc := newTestService(&mockCustomizer{}, &mockResearcher{})
	app := addTestApplication(t, svc)
	if _, err := svc.Process(context.Background(), app.ID, "  ", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestSetStageValidates(t *testing.T) {
	svc := newTestService(nil, nil)
	app := addTestApplication(t, svc)

	updated, err := svc.SetStage(context.Background(), app.ID, StageApplied)
	if err != nil {
		t.Fatalf("SetStage: %v", err)
	}
	if updated.Stage != StageApplied {
		t.Fatalf("Stage = %q, want applied", updated.Stage)
	}

	if _, err := svc.SetStage(context.Background(), app.ID, Stage("ghosted")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestActivityLifecycle(t *testing.T) {
	svc := newTestService(nil, nil)
	app := addTestApplication(t, svc)

	activity, err := svc.AddActivity(context.Background(), app.ID, ActivityInput{
		Type:  ActivityInterview,
		Title: "Onsite with platform team",
	})
	if err != nil {
		t.Fatalf("AddActivity: %v", err)
	}
	if activity.ID == "" || activity.Date.IsZero() {
		t.Fatalf("activity not stamped: %+v", activity)
	}

	stored, _ := svc.Get(context.Background(), app.ID)
	if len(stored.Activities) != 2 {
		t.Fatalf("activities = %d, want 2", len(stored.Activities))
	}

	if err := svc.DeleteActivity(context.Background(), app.ID, activity.ID); err != nil {
		t.Fatalf("DeleteActivity: %v", err)
	}
	stored, _ = svc.Get(context.Background(), app.ID)
	if len(stored.Activities) != 1 {
		t.Fatalf("activities = %d after delete, want 1", len(stored.Activities))
	}

	if err := svc.DeleteActivity(context.Background(), app.ID, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteActivityLeavesEarlierReadsIntact(t *testing.T) {
	svc := newTestService(nil, nil)
	app := addTestApplication(t, svc)

	for _, title := range []string{"Recruiter screen", "Onsite"} {
		if _, err := svc.AddActivity(context.Background(), app.ID, ActivityInput{
			Type:  ActivityInterview,
			Title: title,
		}); err != nil {
			t.Fatalf("AddActivity: %v", err)
		}
	}

	before, _ := svc.Get(context.Background(), app.ID)
	wantIDs := make([]string, len(before.Activities))
	for i, act := range before.Activities {
		wantIDs[i] = act.ID
	}

	if err := svc.DeleteActivity(context.Background(), app.ID, before.Activities[0].ID); err != nil {
		t.Fatalf("DeleteActivity: %v", err)
	}

	for i, act := range before.Activities {
		if act.ID != wantIDs[i] {
			t.Fatalf("earlier read mutated: activities[%d] = %q, want %q", i, act.ID, wantIDs[i])
		}
	}

	after, _ := svc.Get(context.Background(), app.ID)
	if len(after.Activities) != len(wantIDs)-1 {
		t.Fatalf("activities = %d after delete, want %d", len(after.Activities), len(wantIDs)-1)
	}
}

func TestAddActivityValidatesType(t *testing.T) {
	svc := newTestService(nil, nil)
	app := addTestApplication(t, svc)
	_, err := svc.AddActivity(context.Background(), app.ID, ActivityInput{Type: "coffee", Title: "Chat"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestUpdateJobPostingPartial(t *testing.T) {
	svc := newTestService(nil, nil)
	app := addTestApplication(t, svc)

	salary := "$150k-$180k"
	updated, err := svc.UpdateJobPosting(context.Background(), app.ID, JobPostingUpdate{SalaryRange: &salary})
	if err != nil {
		t.Fatalf("UpdateJobPosting: %v", err)
	}
	if updated.JobPosting.SalaryRange == nil || *updated.JobPosting.SalaryRange != salary {
		t.Fatalf("SalaryRange = %v", updated.JobPosting.SalaryRange)
	}
	if updated.JobPosting.Title != "Engineer" {
		t.Fatalf("Title changed: %q", updated.JobPosting.Title)
	}
}

func TestMatchEmailRecordsActivity(t *testing.T) {
	svc := newTestService(nil, nil)
	app := addTestApplication(t, svc)

	matched, ok, err := svc.MatchEmail(context.Background(), EmailMatch{
		Company:   "initech",
		EmailType: "interview_request",
		Subject:   "Interview invitation",
		Date:      time.Now(),
	})
	if err != nil {
		t.Fatalf("MatchEmail: %v", err)
	}
	if !ok {
		t.Fatal("expected a match")
	}
	if matched.ID != app.ID {
		t.Fatalf("matched %q, want %q", matched.ID, app.ID)
	}
	last := matched.Activities[len(matched.Activities)-1]
	if last.Type != ActivityInterview || last.Title != "Interview invitation" {
		t.Fatalf("activity = %+v", last)
	}
}

func TestMatchEmailSkipsArchivedAndUnknown(t *testing.T) {
	svc := newTestService(nil, nil)
	app := addTestApplication(t, svc)
	if _, err := svc.Archive(context.Background(), app.ID); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	if _, ok, _ := svc.MatchEmail(context.Background(), EmailMatch{Company: "Initech"}); ok {
		t.Fatal("archived application should not match")
	}
	if _, ok, _ := svc.MatchEmail(context.Background(), EmailMatch{Company: "Globex"}); ok {
		t.Fatal("unknown company should not match")
	}
}

func TestUpdateValidatesStatusAndStage(t *testing.T) {
	svc := newTestService(nil, nil)
	app := addTestApplication(t, svc)

	bad := "lost"
	if _, err := svc.Update(context.Background(), app.ID, UpdateRequest{Status: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}

	ready := StatusReady
	stage := StageOffer
	updated, err := svc.Update(context.Background(), app.ID, UpdateRequest{Status: &ready, Stage: &stage})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != StatusReady || updated.Stage != StageOffer {
		t.Fatalf("got status=%q stage=%q", updated.Status, updated.Stage)
	}
}
