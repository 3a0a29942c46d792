package controllerImp

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"lessonplan/entities"
	"lessonplan/pkg/refdata"
)

type SkillCtrl struct{ refs refdata.Store }

func NewSkillCtrl(refs refdata.Store) *SkillCtrl { return &SkillCtrl{refs: refs} }

type skillOut struct {
	Code        string                `json:"code"`
	Description string                `json:"description"`
	Descriptors []entities.Descriptor `json:"descriptors,omitempty"`
}

func (h *SkillCtrl) Grades(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"grades": h.refs.Grades()})
}

func (h *SkillCtrl) SkillsForGrade(c echo.Context) error {
	grade, err := url.PathUnescape(c.Param("grade"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad grade"})
	}
	codes := h.refs.SkillsForGrade(grade)
	if len(codes) == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "grade not found"})
	}
	out := make([]skillOut, 0, len(codes))
	for _, code := range codes {
		out = append(out, skillOut{Code: code, Description: h.refs.DescriptionForSkill(code)})
	}
	return c.JSON(http.StatusOK, map[string]any{"grade": grade, "skills": out})
}

func (h *SkillCtrl) Skill(c echo.Context) error {
	code := refdata.NormalizeCode(c.Param("code"))
	desc := h.refs.DescriptionForSkill(code)
	ds := h.refs.DescriptorsForSkill(code)
	if desc == refdata.DescriptionNotFound && len(ds) == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "skill not found"})
	}
	return c.JSON(http.StatusOK, skillOut{Code: code, Description: desc, Descriptors: ds})
}
