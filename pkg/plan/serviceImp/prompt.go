package serviceImp

import (
	"fmt"
	"strings"

	"lessonplan/pkg/plan/types"
	"lessonplan/pkg/refdata"
)

// NoDescriptorsMarker replaces the descriptor block when none of the selected
// skills has descriptors.
const NoDescriptorsMarker = "Nenhum descritor fornecido."

// Prompt is handed to the completion client as a unit: the schema is what
// makes the answer parseable.
type Prompt struct {
	Text   string
	Schema *types.Schema
}

// DescriptorBlock lists "<id>: <description>" for every descriptor of every
// selected skill, in selection order.
func DescriptorBlock(refs refdata.Store, skills []string) string {
	var lines []string
	for _, code := range skills {
		for _, d := range refs.DescriptorsForSkill(code) {
			lines = append(lines, d.ID+": "+d.Description)
		}
	}
	if len(lines) == 0 {
		return NoDescriptorsMarker
	}
	return strings.Join(lines, "\n")
}

func BuildPrompt(refs refdata.Store, transcript string, skills []string) Prompt {
	return Prompt{
		Text:   renderExtractionPrompt(transcript, skills, DescriptorBlock(refs, skills)),
		Schema: types.LessonPlanSchema(),
	}
}

func renderExtractionPrompt(transcript string, skills []string, descriptors string) string {
	return fmt.Sprintf(`
Você é especialista em extrair e estruturar conteúdo pedagógico. Analise o roteiro de gravação abaixo e extraia as informações pedidas.

PRIORIDADE MÁXIMA: a lista 'aulas'. Se o roteiro tiver marcadores de aula (por exemplo 'Aula' ou 'Encontro' seguidos de um número), a lista 'aulas' NUNCA pode ficar vazia. Se o texto for complexo demais, simplifique os demais campos, mas entregue todas as aulas.

1. SITES E FERRAMENTAS
   - Ferramentas: liste os URLs base das plataformas, softwares ou sites essenciais para executar as aulas (ex: "www.tinkercad.com").
   - Sites sugeridos ("Para Saber Mais"): no máximo 5 links para a unidade inteira, de fontes confiáveis e ativas (documentação oficial, universidades, domínios .org ou .gov). Qualidade acima de quantidade; não é preciso um link por aula. Associe cada link ao número da aula mais relevante.

2. AULAS (CRÍTICO). Para cada aula encontrada, extraia:
   - Título da aula: conciso e informativo.
   - Título do vídeo: diferente do título da aula.
   - Objetivos: exatamente 3, cada um começando com um verbo. Se houver mais, sintetize os principais; se houver menos, elabore objetivos coerentes com a aula.
   - Conteúdos: exatamente 3 conceitos técnicos. Se houver mais, agrupe ou selecione; se houver menos, detalhe conceitos relacionados até chegar a 3.
   - Descritores:
     - Se o roteiro citar códigos de descritores para a aula, use esses códigos com a descrição exata da lista abaixo.
     - Caso contrário, escolha exatamente 1 descritor da lista abaixo que melhor corresponda ao conteúdo e aos objetivos da aula. Use somente descritores EXISTENTES na lista; NÃO invente códigos nem descrições. O mesmo descritor pode se repetir em aulas diferentes.

3. CONTEÚDO DA UNIDADE: um parágrafo breve, comercial e coeso, destinado a docentes, apresentando o que o estudante fará na unidade.

4. OBJETIVOS DA UNIDADE: até 5 objetivos que sintetizem o conteúdo prático e as metas das aulas, descrevendo o que o estudante vai FAZER, com ações concretas no contexto das aulas. Não repita de forma abstrata o texto das habilidades.

Se não conseguir extrair algum campo de uma aula, deixe-o como lista vazia ou texto vazio, mas mantenha a aula na lista.

Habilidades selecionadas: %s

Descritores associados a estas habilidades:
---
%s
---

%s
---
%s
---

Responda estritamente no formato do JSON schema definido. A prioridade é preencher a lista 'aulas'.
`, strings.Join(skills, ", "), descriptors, types.TranscriptHeading, transcript)
}
