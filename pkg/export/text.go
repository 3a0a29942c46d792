package export

import (
	"fmt"
	"strings"

	"lessonplan/entities"
)

// Item trims s and makes sure it ends with a period.
func Item(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasSuffix(s, ".") {
		return s
	}
	return s + "."
}

func ToolsBlock(t entities.ToolsAndSites) string {
	var b strings.Builder
	b.WriteString("Ferramentas:\n")
	b.WriteString(strings.Join(t.Ferramentas, "\n"))
	b.WriteString("\n\nSites sugeridos:\n")
	sites := make([]string, 0, len(t.SitesSugeridos))
	for _, s := range t.SitesSugeridos {
		sites = append(sites, fmt.Sprintf("%s - para a aula %d", s.URL, s.Aula))
	}
	b.WriteString(strings.Join(sites, "\n"))
	return strings.TrimSpace(b.String())
}

// LessonBlock renders objectives then contents, one item per line.
func LessonBlock(l entities.Lesson) string {
	lines := make([]string, 0, len(l.Objetivos)+len(l.Conteudos))
	for _, o := range l.Objetivos {
		lines = append(lines, Item(o))
	}
	for _, c := range l.Conteudos {
		lines = append(lines, Item(c))
	}
	return strings.Join(lines, "\n")
}

func DescriptorBlock(ds []entities.Descriptor) string {
	lines := make([]string, 0, len(ds))
	for _, d := range ds {
		lines = append(lines, fmt.Sprintf("%s, %s", d.ID, Item(d.Description)))
	}
	return strings.Join(lines, "\n")
}

// Text renders the whole plan as plain text, sections separated by a blank line.
func Text(p *entities.LessonPlan) string {
	sections := []string{
		ToolsBlock(p.SitesFerramentas),
		p.UnidadeConteudo,
		strings.Join(p.Habilidades, "\n"),
		strings.Join(p.UnidadeObjetivos, "\n"),
	}
	for _, l := range p.Aulas {
		head := fmt.Sprintf("Aula %d\nTítulo: %s\nTítulo do Vídeo: %s", l.Aula, l.Titulo, l.TituloVideo)
		sections = append(sections, head)
		if body := LessonBlock(l); body != "" {
			sections = append(sections, body)
		}
		if len(l.Descritores) > 0 {
			sections = append(sections, DescriptorBlock(l.Descritores))
		}
	}

	out := sections[:0]
	for _, s := range sections {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n\n") + "\n"
}
