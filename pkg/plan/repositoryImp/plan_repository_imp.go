package repositoryImp

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lessonplan/entities"
	"lessonplan/pkg/apperr"
	"lessonplan/pkg/plan/repository"
)

type planRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlanRepository { return &planRepo{db} }

func (r *planRepo) Create(p *entities.PlanRecord) error {
	if p.PublicID == "" {
		p.PublicID = uuid.NewString()
	}
	return r.db.Create(p).Error
}

func (r *planRepo) FindByPublicID(id string) (*entities.PlanRecord, error) {
	var p entities.PlanRecord
	if err := r.db.Where("public_id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "plan", id, nil)
		}
		return nil, err
	}
	return &p, nil
}

func (r *planRepo) ListRecent(limit int) ([]entities.PlanRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var ps []entities.PlanRecord
	if err := r.db.Order("created_at DESC, id DESC").Limit(limit).Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}
