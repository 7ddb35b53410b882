package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// TestStorageErrorsPropagate verifies that a failing driver surfaces through
// the repository instead of being swallowed as a zero value.
func TestStorageErrorsPropagate(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	repo := NewPointsRepository(db)

	driverErr := errors.New("storage offline")
	mock.ExpectQuery("SELECT COALESCE").WillReturnError(driverErr)

	total, err := repo.SumForUser(1, 35, 2026)
	assert.ErrorIs(t, err, driverErr)
	assert.Equal(t, 0, total)

	assert.NoError(t, mock.ExpectationsWereMet())
}
