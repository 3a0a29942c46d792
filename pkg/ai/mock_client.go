// pkg/ai/mock_client.go

package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"lessonplan/pkg/plan/types"
)

type mockClient struct{}

// NewMock returns an offline backend for development: it answers with a
// schema-shaped plan containing one lesson per "Aula N" marker in the
// transcript section of the prompt.
func NewMock() Client { return &mockClient{} }

func (m *mockClient) Model() string { return "mock" }

var (
	lessonMarkerRX = regexp.MustCompile(`(?i)\b(?:aula|encontro)\s+(\d{1,3})\b`)
	descriptorRX   = regexp.MustCompile(`(?m)^\s*(D\d+):\s*(.+?)\s*$`)
)

func (m *mockClient) GenerateJSON(ctx context.Context, prompt string, _ *types.Schema) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type descriptor struct {
		ID          string `json:"id"`
		Description string `json:"description"`
	}
	type lesson struct {
		Aula        int          `json:"aula"`
		Titulo      string       `json:"titulo"`
		TituloVideo string       `json:"tituloVideo"`
		Objetivos   []string     `json:"objetivos"`
		Conteudos   []string     `json:"conteudos"`
		Descritores []descriptor `json:"descritores"`
	}

	var picked []descriptor
	if mm := descriptorRX.FindStringSubmatch(prompt); mm != nil {
		picked = []descriptor{{ID: mm[1], Description: mm[2]}}
	}

	// lesson markers only count inside the transcript, never in skill or
	// descriptor text
	transcript := prompt
	if i := strings.Index(prompt, types.TranscriptHeading); i >= 0 {
		transcript = prompt[i+len(types.TranscriptHeading):]
	}

	seen := map[int]bool{}
	lessons := []lesson{}
	for _, mm := range lessonMarkerRX.FindAllStringSubmatch(transcript, -1) {
		n, err := strconv.Atoi(mm[1])
		if err != nil || n < 1 || seen[n] {
			continue
		}
		seen[n] = true
		lessons = append(lessons, lesson{
			Aula:        n,
			Titulo:      fmt.Sprintf("aula %d (mock)", n),
			TituloVideo: fmt.Sprintf("vídeo da aula %d", n),
			Objetivos:   []string{"Identificar o tema da aula.", "Aplicar o conceito em uma atividade.", "Explicar o resultado obtido."},
			Conteudos:   []string{"Conceito principal", "Atividade prática", "Revisão"},
			Descritores: picked,
		})
	}

	payload := map[string]any{
		"sitesFerramentas": map[string]any{"ferramentas": []string{}, "sitesSugeridos": []any{}},
		"unidadeConteudo":  "Plano gerado em modo de desenvolvimento (mock).",
		"unidadeObjetivos": []string{"Revisar o roteiro com um modelo real antes de publicar."},
		"aulas":            lessons,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
