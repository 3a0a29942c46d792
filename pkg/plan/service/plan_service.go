package service

import (
	"context"

	"lessonplan/entities"
)

// GenerateInput is the pipeline request. Callers guarantee a non-empty
// transcript and at least one skill; the pipeline does not re-check.
type GenerateInput struct {
	Transcript string
	Skills     []string
}

type PlanService interface {
	Generate(ctx context.Context, in GenerateInput) (*entities.LessonPlan, error)
	Model() string
}
