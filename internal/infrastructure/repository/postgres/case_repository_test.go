package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/lexhub/legal-case-assistant/internal/core/domain"
)

func newCaseRepoWithMock(t *testing.T) (*CaseRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &CaseRepository{db: db}, mock, func() { _ = db.Close() }
}

func TestCaseGetByIDReturnsDomainNotFound(t *testing.T) {
	repo, mock, done := newCaseRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT id, title, case_number").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrCaseNotFound) {
		t.Fatalf("expected ErrCaseNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSaveCaseSummarySeedsThesis(t *testing.T) {
	repo, mock, done := newCaseRepoWithMock(t)
	defer done()

	mock.ExpectExec("UPDATE cases").
		WithArgs("case-1", sqlmock.AnyArg(), "Tese sugerida", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveSummary(context.Background(), "case-1",
		domain.CaseSummary{Overview: "ok", SuggestedThesis: "Tese sugerida"}, "Tese sugerida")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSaveCaseSummaryUnknownCase(t *testing.T) {
	repo, mock, done := newCaseRepoWithMock(t)
	defer done()

	mock.ExpectExec("UPDATE cases").
		WithArgs("missing", sqlmock.AnyArg(), "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SaveSummary(context.Background(), "missing", domain.CaseSummary{}, "")
	if !domain.IsKind(err, domain.ErrCaseNotFound) {
		t.Fatalf("expected ErrCaseNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
