package applications_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/ai"
	"jobtrack-backend/internal/applications"
	"jobtrack-backend/resume/export"
	"jobtrack-backend/resume/model"
	"jobtrack-backend/resume/template"
)

type stubAI struct{}

func (stubAI) Customize(ctx context.Context, req ai.CustomizeRequest) (ai.CustomizeResult, error) {
	return ai.CustomizeResult{CustomizedResume: "tailored"}, nil
}

func (stubAI) Research(ctx context.Context, company, jobTitle string) (ai.ResearchResult, error) {
	return ai.ResearchResult{CompanyInfo: "info"}, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *applications.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := applications.NewService(applications.NewMemoryRepo(), stubAI{}, stubAI{})
	exporter := &export.Service{Registry: template.NewRegistry()}
	handler := applications.NewHandler(svc, exporter)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router, svc
}

func createViaAPI(t *testing.T, router *gin.Engine) applications.Application {
	t.Helper()
	body := `{"title":"Engineer","company":"Initech","description":"Build things","rawText":"posting text"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var app applications.Application
	if err := json.Unmarshal(rec.Body.Bytes(), &app); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return app
}

func TestCreateAndGetApplication(t *testing.T) {
	router, _ := newTestRouter(t)
	app := createViaAPI(t, router)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications/"+app.ID, nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var got applications.Application
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.JobPosting.Company != "Initech" || got.Status != applications.StatusPending {
		t.Fatalf("got = %+v", got)
	}
}

func TestCreateRejectsMissingCompany(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", bytes.NewReader([]byte(`{"title":"Engineer"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetUnknownApplicationIs404(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications/nope", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestProcessEndpointHappyPath(t *testing.T) {
	router, _ := newTestRouter(t)
	app := createViaAPI(t, router)

	body := `{"masterResume":"master text","skills":["Go"]}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications/"+app.ID+"/process", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("process status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got applications.Application
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != applications.StatusReady {
		t.Fatalf("Status = %q, want ready", got.Status)
	}
}

func TestStageAndActivityEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)
	app := createViaAPI(t, router)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/applications/"+app.ID+"/stage", bytes.NewReader([]byte(`{"stage":"applied"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("stage status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/applications/"+app.ID+"/activities",
		bytes.NewReader([]byte(`{"type":"follow_up","title":"Sent follow-up email"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("activity status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var activity applications.Activity
	if err := json.Unmarshal(rec.Body.Bytes(), &activity); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/applications/"+app.ID+"/activities/"+activity.ID, nil)
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete activity status = %d", rec.Code)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	router, svc := newTestRouter(t)
	app := createViaAPI(t, router)
	createViaAPI(t, router)
	if _, err := svc.Archive(context.Background(), app.ID); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications?status=active", nil)
	router.ServeHTTP(rec, req)
	var active []applications.Application
	if err := json.Unmarshal(rec.Body.Bytes(), &active); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("active = %d, want 1", len(active))
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/applications?status=archived", nil)
	router.ServeHTTP(rec, req)
	var archived []applications.Application
	if err := json.Unmarshal(rec.Body.Bytes(), &archived); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(archived) != 1 || archived[0].ID != app.ID {
		t.Fatalf("archived = %+v", archived)
	}
}

func TestExportEndpointMarkdown(t *testing.T) {
	router, svc := newTestRouter(t)
	app := createViaAPI(t, router)

	resume := &model.StructuredResume{
		ContactInfo: model.ContactInfo{Name: "Ada Lovelace", Email: "ada@example.com"},
		Summary:     "Engineer.",
	}
	if _, err := svc.Update(context.Background(), app.ID, applications.UpdateRequest{StructuredResume: resume}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications/"+app.ID+"/export",
		bytes.NewReader([]byte(`{"format":"markdown"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="ada-lovelace-resume.markdown"` {
		t.Fatalf("Content-Disposition = %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("# Ada Lovelace")) {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestExportWithoutStructuredResumeIsConflict(t *testing.T) {
	router, _ := newTestRouter(t)
	app := createViaAPI(t, router)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications/"+app.ID+"/export",
		bytes.NewReader([]byte(`{"format":"markdown"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}
