package serviceImp

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lessonplan/pkg/ai"
	"lessonplan/pkg/apperr"
	"lessonplan/pkg/plan/service"
)

func TestGenerateTwoLessons(t *testing.T) {
	llm := &fakeClient{raw: `{
		"unidadeConteudo": "Nesta unidade o estudante monta circuitos.",
		"unidadeObjetivos": ["Montar circuitos simples."],
		"aulas": [
			{"aula": 1, "titulo": "CIRCUITOS", "tituloVideo": "o caminho da energia", "objetivos": ["a","b","c"], "conteudos": ["x","y","z"], "descritores": [{"id":"D1","description":"desc one"}]},
			{"aula": 2, "titulo": "leds", "tituloVideo": "polaridade", "objetivos": ["a","b","c"], "conteudos": ["x","y","z"], "descritores": [{"id":"D1","description":"desc one"}]}
		],
		"sitesFerramentas": {"ferramentas": ["https://www.tinkercad.com"], "sitesSugeridos": []}
	}`}
	svc := NewPlanService(newFakeRefs(), llm, nil)

	plan, err := svc.Generate(context.Background(), service.GenerateInput{
		Transcript: "Aula 1\nCircuitos\n\nAula 2\nLEDs",
		Skills:     []string{"S1"},
	})
	require.NoError(t, err)

	require.Len(t, plan.Aulas, 2)
	assert.Equal(t, 1, plan.Aulas[0].Aula)
	assert.Equal(t, 2, plan.Aulas[1].Aula)
	assert.Equal(t, "Circuitos", plan.Aulas[0].Titulo)
	assert.Equal(t, []string{"(S1) Skill one"}, plan.Habilidades)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "D1: desc one")
	assert.Contains(t, llm.prompts[0], "Aula 1\nCircuitos")
	require.NotNil(t, llm.schemas[0])
	assert.Equal(t, "fake-model", svc.Model())
}

func TestGenerateKeepsModelOrder(t *testing.T) {
	llm := &fakeClient{raw: `{"aulas":[{"aula":2},{"aula":1}]}`}
	plan, err := NewPlanService(newFakeRefs(), llm, nil).Generate(context.Background(), service.GenerateInput{Transcript: "t", Skills: []string{"S1"}})
	require.NoError(t, err)
	assert.Equal(t, 2, plan.Aulas[0].Aula)
	assert.Equal(t, 1, plan.Aulas[1].Aula)
}

func TestGenerateInvocationError(t *testing.T) {
	cause := errors.New("quota exceeded")
	llm := &fakeClient{err: cause}

	plan, err := NewPlanService(newFakeRefs(), llm, nil).Generate(context.Background(), service.GenerateInput{Transcript: "t", Skills: []string{"S1"}})
	assert.Nil(t, plan)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInvocation)
	assert.ErrorIs(t, err, cause)
	assert.True(t, strings.HasPrefix(err.Error(), FailurePrefix+": "), err.Error())
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Len(t, llm.prompts, 1, "no retry")
}

func TestGenerateMalformedResponse(t *testing.T) {
	llm := &fakeClient{raw: "desculpe, não consegui"}

	plan, err := NewPlanService(newFakeRefs(), llm, nil).Generate(context.Background(), service.GenerateInput{Transcript: "t", Skills: []string{"S1"}})
	assert.Nil(t, plan)
	assert.ErrorIs(t, err, apperr.ErrMalformedResponse)
	assert.NotErrorIs(t, err, apperr.ErrInvocation)
	assert.True(t, strings.HasPrefix(err.Error(), FailurePrefix+": "), err.Error())
}

func TestGenerateConcurrentWithMock(t *testing.T) {
	svc := NewPlanService(newFakeRefs(), ai.NewMock(), nil)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			skills := []string{"S1"}
			if i%2 == 1 {
				skills = []string{"S2", "S1"}
			}
			plan, err := svc.Generate(context.Background(), service.GenerateInput{Transcript: "Aula 1 ... Aula 2 ... Aula 3", Skills: skills})
			if err != nil {
				errs <- err
				return
			}
			if len(plan.Aulas) != 3 || len(plan.Habilidades) != len(skills) {
				errs <- errors.New("unexpected plan shape")
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
