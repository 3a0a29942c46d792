package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"lessonplan/pkg/refdata"
)

var appStart = time.Now()

type HealthCtrl struct {
	db       *gorm.DB
	refs     refdata.Store
	provider string
	model    string
}

func NewHealthCtrl(db *gorm.DB, refs refdata.Store, provider, model string) *HealthCtrl {
	return &HealthCtrl{db: db, refs: refs, provider: provider, model: model}
}

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := check{OK: true}
	if h.db == nil {
		db = check{Err: "gorm db is nil"}
	} else if sqlDB, err := h.db.DB(); err != nil {
		db = check{Err: "db.DB(): " + err.Error()}
	} else if err := sqlDB.PingContext(ctx); err != nil {
		db = check{Err: "ping: " + err.Error()}
	}

	refs := check{OK: true}
	var stats refdata.Stats
	if h.refs == nil {
		refs = check{Err: "reference data not loaded"}
	} else if stats = h.refs.Stats(); stats.Skills == 0 {
		refs = check{Err: "no skills loaded"}
	}

	allOK := db.OK && refs.OK
	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": allOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database":  db,
			"reference": refs,
		},
		"reference": stats,
		"llm":       map[string]string{"provider": h.provider, "model": h.model},
		"time":      time.Now().Format(time.RFC3339),
	})
}
