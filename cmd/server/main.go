package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"lessonplan/config"
	"lessonplan/database"
	"lessonplan/pkg/ai"
	"lessonplan/pkg/document"
	"lessonplan/pkg/logger"
	"lessonplan/pkg/refdata"
	"lessonplan/router"

	// Plan
	planCtrlImp "lessonplan/pkg/plan/controllerImp"
	planRepoImp "lessonplan/pkg/plan/repositoryImp"
	planSvcImp "lessonplan/pkg/plan/serviceImp"

	// Skills + Health
	healthCtrlImp "lessonplan/pkg/health/controllerImp"
	skillCtrlImp "lessonplan/pkg/skill/controllerImp"
)

func main() {
	// 1) Config + logger
	cfg := config.Load()
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// missing credentials stop the process here, never per request
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2) Reference data
	refs, err := refdata.Load(refdata.Sources{
		SkillsCSV:      cfg.SkillsCSV,
		DescriptorsCSV: cfg.DescriptorsCSV,
		XLSX:           cfg.RefDataXLSX,
	})
	if err != nil {
		log.Fatal("reference data", "error", err)
	}
	st := refs.Stats()
	log.Info("reference data loaded", "grades", st.Grades, "skills", st.Skills, "descriptors", st.Descriptors)

	// 3) Completion backend
	llm, err := ai.New(ctx, cfg)
	if err != nil {
		log.Fatal("completion backend", "error", err)
	}
	log.Info("completion backend", "provider", cfg.LLMProvider, "model", llm.Model())

	// 4) DB (sqlite) + automigrate
	db, err := database.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal("database", "error", err)
	}

	// 5) Services/Controllers
	var fetch *document.Fetcher
	if len(cfg.FetchAllowedDomains) > 0 {
		fetch = document.NewFetcher(cfg.FetchAllowedDomains, cfg.FetchMaxBytes)
	}
	pSvc := planSvcImp.NewPlanService(refs, llm, log)
	plCtrl := planCtrlImp.NewPlanCtrl(pSvc, planRepoImp.New(db), fetch, cfg.MaxUploadBytes, log)
	skCtrl := skillCtrlImp.NewSkillCtrl(refs)
	hCtrl := healthCtrlImp.NewHealthCtrl(db, refs, cfg.LLMProvider, llm.Model())

	// 6) Router
	e := echo.New()
	e.HideBanner = true
	r := router.New(e, log, plCtrl, skCtrl, hCtrl)

	// 7) Start
	go func() {
		log.Info("listening", "port", cfg.Port)
		if err := r.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
	}
}
