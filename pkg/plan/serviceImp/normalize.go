package serviceImp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"lessonplan/entities"
	"lessonplan/pkg/apperr"
	"lessonplan/pkg/refdata"
)

// Normalize projects the raw model answer onto entities.LessonPlan. Absent or
// mistyped fields fall back to empty values; only unparseable text fails.
// habilidades is always rebuilt from refs, whatever the model sent.
func Normalize(raw string, skills []string, refs refdata.Store) (*entities.LessonPlan, error) {
	root, err := parseObject(raw)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrMalformedResponse, "parse response", "", err)
	}

	return &entities.LessonPlan{
		SitesFerramentas: toolsAndSites(root["sitesFerramentas"]),
		UnidadeConteudo:  asString(root["unidadeConteudo"]),
		Habilidades:      SkillLines(skills, refs),
		UnidadeObjetivos: asStringList(root["unidadeObjetivos"]),
		Aulas:            lessons(root["aulas"]),
	}, nil
}

// SkillLines renders "(<code>) <description>" for each selected code in order.
func SkillLines(skills []string, refs refdata.Store) []string {
	out := make([]string, 0, len(skills))
	for _, code := range skills {
		out = append(out, fmt.Sprintf("(%s) %s", code, refs.DescriptionForSkill(code)))
	}
	return out
}

func parseObject(raw string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON value")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %s", kindOf(v))
	}
	return obj, nil
}

func toolsAndSites(v any) entities.ToolsAndSites {
	obj, _ := v.(map[string]any)
	out := entities.ToolsAndSites{
		Ferramentas:    asStringList(obj["ferramentas"]),
		SitesSugeridos: []entities.SuggestedSite{},
	}
	list, _ := obj["sitesSugeridos"].([]any)
	for _, item := range list {
		site, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out.SitesSugeridos = append(out.SitesSugeridos, entities.SuggestedSite{
			URL:  asString(site["url"]),
			Aula: asInt(site["aula"]),
		})
	}
	return out
}

func lessons(v any) []entities.Lesson {
	list, _ := v.([]any)
	out := make([]entities.Lesson, 0, len(list))
	// order kept as sent; duplicate aula numbers are not merged
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, entities.Lesson{
			Aula:        asInt(obj["aula"]),
			Titulo:      FormatTitle(asString(obj["titulo"])),
			TituloVideo: FormatTitle(asString(obj["tituloVideo"])),
			Objetivos:   asStringList(obj["objetivos"]),
			Conteudos:   asStringList(obj["conteudos"]),
			Descritores: descriptors(obj["descritores"]),
		})
	}
	return out
}

// descriptors are accepted as sent, even when absent from the reference data.
func descriptors(v any) []entities.Descriptor {
	list, _ := v.([]any)
	out := make([]entities.Descriptor, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, entities.Descriptor{
			ID:          asString(obj["id"]),
			Description: asString(obj["description"]),
		})
	}
	return out
}

// FormatTitle upper-cases the first character and lower-cases the whole rest
// of the string ("lIGHT sensors" -> "Light sensors"). Surrounding whitespace is
// trimmed first, so " lIGHT" becomes "Light" rather than " light".
func FormatTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(title)
	upper := cases.Upper(language.BrazilianPortuguese)
	lower := cases.Lower(language.BrazilianPortuguese)
	return upper.String(title[:size]) + lower.String(title[size:])
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// asStringList keeps scalar entries in order. A lone string becomes a
// one-element list.
func asStringList(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			switch item.(type) {
			case string, json.Number, bool:
				out = append(out, asString(item))
			}
		}
		return out
	case string:
		if strings.TrimSpace(t) != "" {
			return []string{t}
		}
	}
	return []string{}
}

func asInt(v any) int {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
		if f, err := t.Float64(); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return int(f)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return 0
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
