package serviceImp

import (
	"context"
	"fmt"
	"time"

	"lessonplan/entities"
	"lessonplan/pkg/ai"
	"lessonplan/pkg/apperr"
	"lessonplan/pkg/logger"
	"lessonplan/pkg/plan/service"
	"lessonplan/pkg/refdata"
)

// FailurePrefix opens every error the pipeline returns; the UI shows the
// message verbatim.
const FailurePrefix = "falha ao gerar o plano de aula"

// PlanSvc holds only read-only collaborators, so one instance serves
// concurrent requests.
type PlanSvc struct {
	refs refdata.Store
	llm  ai.Client
	log  *logger.Logger
}

var _ service.PlanService = (*PlanSvc)(nil)

func NewPlanService(refs refdata.Store, llm ai.Client, log *logger.Logger) *PlanSvc {
	if log == nil {
		log = logger.NewNop()
	}
	return &PlanSvc{refs: refs, llm: llm, log: log}
}

func (s *PlanSvc) Model() string { return s.llm.Model() }

// Generate runs prompt -> completion -> normalization. On any failure no plan
// is returned.
func (s *PlanSvc) Generate(ctx context.Context, in service.GenerateInput) (*entities.LessonPlan, error) {
	p := BuildPrompt(s.refs, in.Transcript, in.Skills)
	log := s.log.With("model", s.llm.Model(), "skills", len(in.Skills))

	start := time.Now()
	raw, err := s.llm.GenerateJSON(ctx, p.Text, p.Schema)
	latency := time.Since(start)
	if err != nil {
		log.Error("completion failed", "latency_ms", latency.Milliseconds(), "error", err)
		return nil, fmt.Errorf("%s: %w", FailurePrefix, apperr.Wrap(apperr.ErrInvocation, s.llm.Model(), "", err))
	}

	plan, err := Normalize(raw, in.Skills, s.refs)
	if err != nil {
		log.Error("unparseable completion", "latency_ms", latency.Milliseconds(), "response_chars", len(raw), "error", err)
		return nil, fmt.Errorf("%s: %w", FailurePrefix, err)
	}

	log.Info("lesson plan generated",
		"prompt_chars", len(p.Text),
		"latency_ms", latency.Milliseconds(),
		"lessons", len(plan.Aulas),
	)
	return plan, nil
}
