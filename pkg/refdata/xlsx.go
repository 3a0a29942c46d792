package refdata

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	SheetSkills      = "Habilidades"
	SheetDescriptors = "Descritores"
)

func (s *store) loadWorkbook(path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	skills, err := f.GetRows(SheetSkills)
	if err != nil {
		return fmt.Errorf("sheet %s: %w", SheetSkills, err)
	}
	if err := s.loadSkillRows(skills); err != nil {
		return err
	}

	// descriptors sheet is optional: a workbook may only carry the skill list
	if idx, _ := f.GetSheetIndex(SheetDescriptors); idx == -1 {
		return nil
	}
	descs, err := f.GetRows(SheetDescriptors)
	if err != nil {
		return fmt.Errorf("sheet %s: %w", SheetDescriptors, err)
	}
	return s.loadDescriptorRows(descs)
}
