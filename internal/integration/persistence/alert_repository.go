package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	"github.com/personal-ledger/backend/internal/integration/persistence/model"
)

// alertRepository implements the adapter.AlertRepository interface.
type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new alert repository instance.
func NewAlertRepository(db *gorm.DB) adapter.AlertRepository {
	return &alertRepository{
		db: db,
	}
}

// Create creates a new alert in the database.
func (r *alertRepository) Create(ctx context.Context, alert *entity.Alert) error {
	alertModel := model.AlertFromEntity(alert)
	result := r.db.WithContext(ctx).Create(alertModel)
	return result.Error
}

// ExistsCategoryAlert checks whether an alert already exists for the
// (user, category, year, month, kind) uniqueness key.
func (r *alertRepository) ExistsCategoryAlert(ctx context.Context, userID, categoryID uuid.UUID, year, month int, kind entity.AlertKind) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.AlertModel{}).
		Where("user_id = ? AND category_id = ? AND year = ? AND month = ? AND kind = ?",
			userID, categoryID, year, month, string(kind)).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// FindByUser retrieves a user's alerts, newest first.
func (r *alertRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Alert, error) {
	var alertModels []model.AlertModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&alertModels)
	if result.Error != nil {
		return nil, result.Error
	}

	alerts := make([]*entity.Alert, len(alertModels))
	for i, am := range alertModels {
		alerts[i] = am.ToEntity()
	}
	return alerts, nil
}
