package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"lessonplan/entities"
)

const (
	SheetUnit        = "Unidade"
	SheetLessons     = "Aulas"
	SheetDescriptors = "Descritores"
	SheetSites       = "Sites"
)

// Workbook lays the plan out over four sheets. Callers own the returned
// file and must Close it.
func Workbook(p *entities.LessonPlan) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetUnit); err != nil {
		f.Close()
		return nil, err
	}
	for _, s := range []string{SheetLessons, SheetDescriptors, SheetSites} {
		if _, err := f.NewSheet(s); err != nil {
			f.Close()
			return nil, err
		}
	}

	unit := [][]any{
		{"Unidade de conteúdo", p.UnidadeConteudo},
		{"Habilidades", strings.Join(p.Habilidades, "\n")},
		{"Objetivos da unidade", strings.Join(p.UnidadeObjetivos, "\n")},
		{"Ferramentas", strings.Join(p.SitesFerramentas.Ferramentas, "\n")},
	}
	lessons := [][]any{{"Aula", "Título", "Título do vídeo", "Objetivos", "Conteúdos"}}
	descs := [][]any{{"Aula", "Descritor", "Descrição"}}
	for _, l := range p.Aulas {
		lessons = append(lessons, []any{
			l.Aula, l.Titulo, l.TituloVideo,
			strings.Join(l.Objetivos, "\n"), strings.Join(l.Conteudos, "\n"),
		})
		for _, d := range l.Descritores {
			descs = append(descs, []any{l.Aula, d.ID, d.Description})
		}
	}
	sites := [][]any{{"URL", "Aula"}}
	for _, s := range p.SitesFerramentas.SitesSugeridos {
		sites = append(sites, []any{s.URL, s.Aula})
	}

	for sheet, rows := range map[string][][]any{
		SheetUnit: unit, SheetLessons: lessons, SheetDescriptors: descs, SheetSites: sites,
	} {
		if err := writeRows(f, sheet, rows); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
