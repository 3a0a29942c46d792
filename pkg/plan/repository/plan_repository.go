package repository

import "lessonplan/entities"

type PlanRepository interface {
	Create(r *entities.PlanRecord) error
	FindByPublicID(id string) (*entities.PlanRecord, error)
	ListRecent(limit int) ([]entities.PlanRecord, error)
}
