package prescription

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rxID = "9a3e5c1b-2f4d-4e6a-8b7c-0d1e2f3a4b5c"

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	p := &Prescription{ID: rxID, UserID: 3, Filename: rxID + ".pdf", ContentType: "application/pdf", Status: StatusPending}

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("INSERT INTO prescriptions").
			WithArgs(rxID, 3, rxID+".pdf", "application/pdf", "pending").
			WillReturnRows(sqlmock.NewRows([]string{"uploaded_at"}).AddRow(now))

		require.NoError(t, repo.Create(context.Background(), p))
		assert.True(t, now.Equal(p.UploadedAt))
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO prescriptions").
			WillReturnError(errors.New("db error"))

		assert.ErrorIs(t, repo.Create(context.Background(), p), ErrFailedSave)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	cols := []string{"id", "user_id", "filename", "content_type", "status", "uploaded_at"}

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery("FROM prescriptions WHERE id = \\$1").
			WithArgs(rxID).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(rxID, 3, "a.pdf", "application/pdf", "verified", time.Now()))

		p, err := repo.GetByID(context.Background(), rxID)
		require.NoError(t, err)
		assert.Equal(t, StatusVerified, p.Status)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery("FROM prescriptions").
			WithArgs(rxID).
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := repo.GetByID(context.Background(), rxID)
		assert.ErrorIs(t, err, ErrPrescriptionNotFound)
	})
}

func TestRepository_Lists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("ListForUser", func(t *testing.T) {
		mock.ExpectQuery("FROM prescriptions WHERE user_id = \\$1 ORDER BY uploaded_at DESC").
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "filename", "content_type", "status", "uploaded_at"}).
				AddRow(rxID, 3, "a.pdf", "application/pdf", "pending", now))

		list, err := repo.ListForUser(context.Background(), 3)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Empty(t, list[0].UserName)
	})

	t.Run("ListAll joins user name", func(t *testing.T) {
		mock.ExpectQuery("FROM prescriptions p JOIN users u ON u.id = p.user_id").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "filename", "content_type", "status", "uploaded_at"}).
				AddRow(rxID, 3, "Jane Roe", "a.pdf", "application/pdf", "pending", now))

		list, err := repo.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Jane Roe", list[0].UserName)
	})

	t.Run("ListAll error", func(t *testing.T) {
		mock.ExpectQuery("FROM prescriptions p").
			WillReturnError(errors.New("db error"))

		_, err := repo.ListAll(context.Background())
		assert.Error(t, err)
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE prescriptions SET status = \\$1 WHERE id = \\$2").
			WithArgs("rejected", rxID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(context.Background(), rxID, StatusRejected))
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec("UPDATE prescriptions").
			WithArgs("verified", rxID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateStatus(context.Background(), rxID, StatusVerified), ErrPrescriptionNotFound)
	})
}
