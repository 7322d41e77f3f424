package plan

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=plan_repo.go -destination=mock/plan_repo_mock.go -package=mock
type Repository interface {
	FindActive(ctx context.Context) ([]Plan, error)
	FindActiveByID(ctx context.Context, id string) (*Plan, error)
	Seed(ctx context.Context, plans []Plan) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindActive(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC, price_clp ASC").
		Find(&plans).Error
	return plans, err
}

func (r *repository) FindActiveByID(ctx context.Context, id string) (*Plan, error) {
	var p Plan
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Seed inserts the plans that do not exist yet. Existing rows keep any
// edits made after the first run.
func (r *repository) Seed(ctx context.Context, plans []Plan) error {
	if len(plans) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&plans).Error
}
