package repository_test

import (
	"context"
	"testing"

	"oeeboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestContextRepository_Get_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	contextRepo := repository.NewContextRepository(gormDB)

	userID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "viewing_contexts" WHERE user_id = .* LIMIT 1`).
		WithArgs(userID).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	vc, err := contextRepo.Get(context.Background(), userID)

	// Assert: never switched means no row, and that is fine
	assert.NoError(t, err)
	assert.Nil(t, vc)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContextRepository_Upsert(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	contextRepo := repository.NewContextRepository(gormDB)

	userID := uuid.New()
	targetID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "viewing_contexts" .* ON CONFLICT \("user_id"\) DO UPDATE`).
		WithArgs(userID, targetID, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	// Act
	err := contextRepo.Upsert(context.Background(), userID, targetID)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
