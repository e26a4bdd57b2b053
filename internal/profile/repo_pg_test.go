package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoGetDecodesSkills(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC().Truncate(time.Second)
	rows := sqlmock.NewRows([]string{"resume_text", "skills", "last_updated"}).
		AddRow("John Doe", []byte(`["Go","Postgres"]`), now)
	mock.ExpectQuery("SELECT resume_text, skills, last_updated FROM profile").WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	p, err := repo.Get(context.Background())
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p.ResumeText != "John Doe" {
		t.Fatalf("unexpected resume text: %q", p.ResumeText)
	}
	if len(p.Skills) != 2 || p.Skills[1] != "Postgres" {
		t.Fatalf("unexpected skills: %v", p.Skills)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGRepoGetMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT resume_text, skills, last_updated FROM profile").
		WillReturnRows(sqlmock.NewRows([]string{"resume_text", "skills", "last_updated"}))

	repo := &PGRepo{DB: db}
	if _, err := repo.Get(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoSaveUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("INSERT INTO profile").
		WithArgs("John Doe", []byte(`["Go"]`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &PGRepo{DB: db}
	err = repo.Save(context.Background(), Profile{ResumeText: "John Doe", Skills: []string{"Go"}})
	if err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
