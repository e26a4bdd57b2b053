package applications

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTempFileRepo(t *testing.T) *FileRepo {
	t.Helper()
	return NewFileRepo(filepath.Join(t.TempDir(), "applications.json"))
}

func TestFileRepoRoundTrip(t *testing.T) {
	repo := newTempFileRepo(t)
	ctx := context.Background()
	app := testApplication()

	if err := repo.Create(ctx, app); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.Get(ctx, app.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.JobPosting.Company != "Initech" {
		t.Fatalf("Company = %q", got.JobPosting.Company)
	}

	got.Status = StatusReady
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	updated, _ := repo.Get(ctx, app.ID)
	if updated.Status != StatusReady {
		t.Fatalf("Status = %q after update", updated.Status)
	}

	if err := repo.Delete(ctx, app.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, app.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFileRepoEmptyWhenFileMissing(t *testing.T) {
	repo := newTempFileRepo(t)
	apps, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(apps) != 0 {
		t.Fatalf("len = %d, want 0", len(apps))
	}
}

func TestFileRepoListNewestFirst(t *testing.T) {
	repo := newTempFileRepo(t)
	ctx := context.Background()

	older := testApplication()
	older.ID = "app-old"
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := testApplication()
	newer.ID = "app-new"
	newer.CreatedAt = time.Now().UTC()

	if err := repo.Create(ctx, older); err != nil {
		t.Fatalf("Create older: %v", err)
	}
	if err := repo.Create(ctx, newer); err != nil {
		t.Fatalf("Create newer: %v", err)
	}

	apps, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if apps[0].ID != "app-new" || apps[1].ID != "app-old" {
		t.Fatalf("order = %q, %q", apps[0].ID, apps[1].ID)
	}
}

func TestFileRepoMigratesLegacyRecords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "applications.json")

	legacy := testApplication()
	legacy.Stage = ""
	legacy.Activities = nil
	data, _ := json.Marshal([]Application{legacy})
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	repo := NewFileRepo(path)
	got, err := repo.Get(context.Background(), legacy.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Stage != StageNotApplied || len(got.Activities) != 1 {
		t.Fatalf("legacy record not migrated: stage=%q activities=%d", got.Stage, len(got.Activities))
	}
}
