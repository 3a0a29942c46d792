package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"lessonplan/pkg/logger"
	"lessonplan/pkg/middleware"
	planctl "lessonplan/pkg/plan/controller"
	skillctl "lessonplan/pkg/skill/controller"
)

func New(
	e *echo.Echo,
	log *logger.Logger,
	planCtrl planctl.PlanController,
	skillCtrl skillctl.SkillController,
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLog(log))

	e.GET("/health", healthCtrl.Health)

	e.GET("/grades", skillCtrl.Grades)
	e.GET("/grades/:grade/skills", skillCtrl.SkillsForGrade)
	e.GET("/skills/:code", skillCtrl.Skill)

	g := e.Group("/plans")
	g.POST("", planCtrl.Generate)
	g.GET("", planCtrl.List)
	g.GET("/:id", planCtrl.Get)
	g.GET("/:id/export", planCtrl.Export)
	return e
}
