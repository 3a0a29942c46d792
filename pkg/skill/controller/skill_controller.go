package controller

import "github.com/labstack/echo/v4"

type SkillController interface {
	Grades(c echo.Context) error
	SkillsForGrade(c echo.Context) error
	Skill(c echo.Context) error
}
