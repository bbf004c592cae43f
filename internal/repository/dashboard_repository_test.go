package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"talentbridge/internal/database"
	"talentbridge/internal/domain/application"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDashboard(t *testing.T) (*PostgresDashboardRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return newDashboardRepository(sqlx.NewDb(mockDB, "pgx"), nil), mock
}

func TestDashboardCounts(t *testing.T) {
	repo, mock := newMockDashboard(t)
	employer := uuid.New()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT\s+\(SELECT count\(\*\) FROM jobs`).
		WithArgs(employer.String(), now).
		WillReturnRows(sqlmock.NewRows([]string{"open_jobs", "closed_jobs", "upcoming_interviews", "pending_offers"}).
			AddRow(3, 1, 2, 1))

	got, err := repo.Counts(context.Background(), employer, now)
	require.NoError(t, err)
	assert.Equal(t, DashboardCounts{OpenJobs: 3, ClosedJobs: 1, UpcomingInterviews: 2, PendingOffers: 1}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardCounts_WrapsError(t *testing.T) {
	repo, mock := newMockDashboard(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery(`SELECT`).WillReturnError(boom)

	_, err := repo.Counts(context.Background(), uuid.New(), time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "dashboard counts")
}

func TestDashboardApplicantsByStatus_FillsMissingStatuses(t *testing.T) {
	repo, mock := newMockDashboard(t)
	employer := uuid.New()

	mock.ExpectQuery(`GROUP BY a.status`).
		WithArgs(employer.String()).
		WillReturnRows(sqlmock.NewRows([]string{"status", "total"}).
			AddRow("applied", 4).
			AddRow("interviewing", 2))

	got, err := repo.ApplicantsByStatus(context.Background(), employer)
	require.NoError(t, err)

	assert.Len(t, got, len(application.Statuses))
	assert.Equal(t, 4, got[application.StatusApplied])
	assert.Equal(t, 2, got[application.StatusInterviewing])
	assert.Equal(t, 0, got[application.StatusHired])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboard_NilHandles(t *testing.T) {
	repo := NewPostgresDashboardRepository(nil)

	_, err := repo.Counts(context.Background(), uuid.New(), time.Now())
	assert.ErrorIs(t, err, database.ErrNilDB)

	_, err = repo.ApplicantsByStatus(context.Background(), uuid.New())
	assert.ErrorIs(t, err, database.ErrNilDB)

	_, err = repo.ActiveApplicantSkills(context.Background(), uuid.New())
	assert.ErrorIs(t, err, database.ErrNilDB)
}
