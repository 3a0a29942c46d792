package refdata

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

//go:embed seed/*.csv
var seedFS embed.FS

type Sources struct {
	SkillsCSV      string
	DescriptorsCSV string
	XLSX           string
}

// Load builds the store from the workbook when given, otherwise from the CSV
// paths, falling back to the embedded seed tables for whichever is unset.
func Load(src Sources) (Store, error) {
	s := newStore()

	if src.XLSX != "" {
		if err := s.loadWorkbook(src.XLSX); err != nil {
			return nil, err
		}
	} else {
		skills, err := readCSV(src.SkillsCSV, "seed/skills.csv")
		if err != nil {
			return nil, fmt.Errorf("skills table: %w", err)
		}
		if err := s.loadSkillRows(skills); err != nil {
			return nil, err
		}
		descs, err := readCSV(src.DescriptorsCSV, "seed/descriptors.csv")
		if err != nil {
			return nil, fmt.Errorf("descriptors table: %w", err)
		}
		if err := s.loadDescriptorRows(descs); err != nil {
			return nil, err
		}
	}

	if len(s.descriptions) == 0 {
		return nil, errors.New("no skills loaded")
	}
	return s, nil
}

// LoadSeed returns the embedded tables.
func LoadSeed() (Store, error) { return Load(Sources{}) }

func readCSV(path, seed string) ([][]string, error) {
	var r io.Reader
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		f, err := seedFS.Open(seed)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	return cr.ReadAll()
}

func normHeader(s string) string {
	// fold accents so "Código" matches "codigo"
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "/", "")
	return s
}

type header map[string]int

func newHeader(row []string) header {
	h := header{}
	for i, c := range row {
		h[normHeader(c)] = i
	}
	return h
}

// find returns the first column matching any alias, or -1.
func (h header) find(aliases ...string) int {
	for _, a := range aliases {
		if idx, ok := h[normHeader(a)]; ok {
			return idx
		}
	}
	return -1
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func (s *store) loadSkillRows(rows [][]string) error {
	if len(rows) == 0 {
		return errors.New("skills table is empty")
	}
	h := newHeader(rows[0])
	cGrade := h.find("grade", "ano", "serie", "anoserie")
	cCode := h.find("code", "codigo", "skill", "habilidade")
	cDesc := h.find("description", "descricao", "texto")
	if cCode == -1 || cDesc == -1 {
		return fmt.Errorf("skills table missing required columns. Found headers: %v\nNeed at least: code, description", rows[0])
	}
	for _, rec := range rows[1:] {
		s.addSkill(cell(rec, cGrade), cell(rec, cCode), cell(rec, cDesc))
	}
	return nil
}

func (s *store) loadDescriptorRows(rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	h := newHeader(rows[0])
	cSkill := h.find("skill", "habilidade", "skills", "habilidades", "code")
	cID := h.find("id", "descriptor", "descritor", "codigodescritor")
	cDesc := h.find("description", "descricao", "texto")
	if cSkill == -1 || cID == -1 || cDesc == -1 {
		return fmt.Errorf("descriptors table missing required columns. Found headers: %v\nNeed: skill, id, description", rows[0])
	}
	for _, rec := range rows[1:] {
		// one descriptor may serve several skills: "EF07CO05;EF08CO01"
		for _, skill := range strings.Split(cell(rec, cSkill), ";") {
			s.addDescriptor(skill, cell(rec, cID), cell(rec, cDesc))
		}
	}
	return nil
}
