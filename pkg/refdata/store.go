package refdata

import (
	"strings"

	"lessonplan/entities"
)

// DescriptionNotFound is returned for skill codes missing from the tables so a
// stale code degrades the output instead of aborting generation.
const DescriptionNotFound = "Descrição não encontrada."

// Store is the read-only curriculum reference data. Implementations are loaded
// once and shared by every request.
type Store interface {
	DescriptorsForSkill(code string) []entities.Descriptor
	DescriptionForSkill(code string) string
	Grades() []string
	SkillsForGrade(grade string) []string
	Stats() Stats
}

type Stats struct {
	Grades      int `json:"grades"`
	Skills      int `json:"skills"`
	Descriptors int `json:"descriptors"`
}

type store struct {
	grades       []string
	skillsByGr   map[string][]string
	descriptions map[string]string
	descriptors  map[string][]entities.Descriptor
	descCount    int
}

func newStore() *store {
	return &store{
		skillsByGr:   map[string][]string{},
		descriptions: map[string]string{},
		descriptors:  map[string][]entities.Descriptor{},
	}
}

// NormalizeCode trims and upper-cases a skill code the way it is stored.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeCodes accepts repeated values and comma separated lists, normalizes
// each code and drops blanks and repeats, keeping first occurrences in order.
func NormalizeCodes(raw []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range raw {
		for _, c := range strings.Split(r, ",") {
			code := NormalizeCode(c)
			if code == "" || seen[code] {
				continue
			}
			seen[code] = true
			out = append(out, code)
		}
	}
	return out
}

func (s *store) addSkill(grade, code, description string) {
	code = NormalizeCode(code)
	if code == "" {
		return
	}
	grade = strings.TrimSpace(grade)
	if _, seen := s.descriptions[code]; !seen && grade != "" {
		if _, ok := s.skillsByGr[grade]; !ok {
			s.grades = append(s.grades, grade)
		}
		s.skillsByGr[grade] = append(s.skillsByGr[grade], code)
	}
	s.descriptions[code] = strings.TrimSpace(description)
}

func (s *store) addDescriptor(skill, id, description string) {
	skill = NormalizeCode(skill)
	id = strings.TrimSpace(id)
	if skill == "" || id == "" {
		return
	}
	for _, d := range s.descriptors[skill] {
		if d.ID == id {
			return
		}
	}
	s.descriptors[skill] = append(s.descriptors[skill], entities.Descriptor{ID: id, Description: strings.TrimSpace(description)})
	s.descCount++
}

func (s *store) DescriptorsForSkill(code string) []entities.Descriptor {
	ds := s.descriptors[NormalizeCode(code)]
	out := make([]entities.Descriptor, len(ds))
	copy(out, ds)
	return out
}

func (s *store) DescriptionForSkill(code string) string {
	if d, ok := s.descriptions[NormalizeCode(code)]; ok && d != "" {
		return d
	}
	return DescriptionNotFound
}

func (s *store) Grades() []string {
	return append([]string(nil), s.grades...)
}

func (s *store) SkillsForGrade(grade string) []string {
	return append([]string(nil), s.skillsByGr[strings.TrimSpace(grade)]...)
}

func (s *store) Stats() Stats {
	return Stats{Grades: len(s.grades), Skills: len(s.descriptions), Descriptors: s.descCount}
}
