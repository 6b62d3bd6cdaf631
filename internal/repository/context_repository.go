package repository

import (
	"context"
	"errors"

	"oeeboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContextRepository struct {
	db *gorm.DB
}

func NewContextRepository(db *gorm.DB) *ContextRepository {
	return &ContextRepository{db: db}
}

// Get returns the persisted viewing context for a user, or nil when the
// user has never switched dashboards.
func (r *ContextRepository) Get(ctx context.Context, userID uuid.UUID) (*model.ViewingContext, error) {
	var vc model.ViewingContext
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&vc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vc, nil
}

// Upsert creates or overwrites the viewing context row for a user.
func (r *ContextRepository) Upsert(ctx context.Context, userID, viewingAsID uuid.UUID) error {
	vc := model.ViewingContext{
		UserID:      userID,
		ViewingAsID: viewingAsID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"viewing_as_id", "updated_at"}),
		}).
		Create(&vc).Error
}
