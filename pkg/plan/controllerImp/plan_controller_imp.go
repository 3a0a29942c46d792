package controllerImp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"lessonplan/entities"
	"lessonplan/pkg/apperr"
	"lessonplan/pkg/document"
	"lessonplan/pkg/export"
	"lessonplan/pkg/logger"
	"lessonplan/pkg/middleware"
	"lessonplan/pkg/plan/repository"
	"lessonplan/pkg/plan/service"
	"lessonplan/pkg/refdata"
)

const (
	SourceText = "text"
	SourceFile = "file"
	SourceURL  = "url"
)

type PlanCtrl struct {
	svc       service.PlanService
	repo      repository.PlanRepository
	fetch     *document.Fetcher
	maxUpload int64
	log       *logger.Logger
}

// NewPlanCtrl wires the plan endpoints. fetch may be nil, in which case
// source_url requests are rejected.
func NewPlanCtrl(svc service.PlanService, repo repository.PlanRepository, fetch *document.Fetcher, maxUpload int64, log *logger.Logger) *PlanCtrl {
	if log == nil {
		log = logger.NewNop()
	}
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}
	return &PlanCtrl{svc: svc, repo: repo, fetch: fetch, maxUpload: maxUpload, log: log}
}

type generateReq struct {
	Transcript string   `json:"transcript"`
	Skills     []string `json:"skills"`
	SourceURL  string   `json:"source_url"`
}

type planInput struct {
	transcript string
	skills     []string
	source     string
	sourceName string
}

func (h *PlanCtrl) Generate(c echo.Context) error {
	in, err := h.readInput(c)
	if err != nil {
		return h.fail(c, err)
	}
	if strings.TrimSpace(in.transcript) == "" {
		return h.fail(c, apperr.Wrap(apperr.ErrValidation, "plan", "transcript is required", nil))
	}
	if len(in.skills) == 0 {
		return h.fail(c, apperr.Wrap(apperr.ErrValidation, "plan", "select at least one skill", nil))
	}

	plan, err := h.svc.Generate(c.Request().Context(), service.GenerateInput{
		Transcript: in.transcript,
		Skills:     in.skills,
	})
	if err != nil {
		return h.fail(c, err)
	}

	rec := &entities.PlanRecord{
		Skills:          in.skills,
		Source:          in.source,
		SourceName:      in.sourceName,
		TranscriptChars: len([]rune(in.transcript)),
		Model:           h.svc.Model(),
		Plan:            *plan,
	}
	if err := h.repo.Create(rec); err != nil {
		// the plan is still good; the caller just gets no history id
		h.log.Warn("plan save failed", "request_id", middleware.GetRequestID(c), "error", err)
		rec.PublicID = ""
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": rec.PublicID, "model": rec.Model, "plan": plan})
}

func (h *PlanCtrl) readInput(c echo.Context) (planInput, error) {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ct, echo.MIMEMultipartForm) {
		return h.readMultipart(c)
	}

	var req generateReq
	if err := c.Bind(&req); err != nil {
		return planInput{}, apperr.Wrap(apperr.ErrValidation, "plan", "invalid json", err)
	}
	in := planInput{transcript: req.Transcript, skills: refdata.NormalizeCodes(req.Skills), source: SourceText}
	if strings.TrimSpace(in.transcript) == "" && strings.TrimSpace(req.SourceURL) != "" {
		text, err := h.fetchURL(c.Request().Context(), req.SourceURL)
		if err != nil {
			return planInput{}, err
		}
		in.transcript, in.source, in.sourceName = text, SourceURL, req.SourceURL
	}
	return in, nil
}

func (h *PlanCtrl) readMultipart(c echo.Context) (planInput, error) {
	c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, h.maxUpload+1<<20)
	form, err := c.MultipartForm()
	if err != nil {
		return planInput{}, apperr.Wrap(apperr.ErrValidation, "plan", "invalid multipart form", err)
	}
	in := planInput{
		transcript: first(form.Value["transcript"]),
		skills:     refdata.NormalizeCodes(form.Value["skills"]),
		source:     SourceText,
	}

	files := form.File["file"]
	if len(files) == 0 {
		return in, nil
	}
	fh := files[0]
	if fh.Size > h.maxUpload {
		return planInput{}, apperr.Wrap(apperr.ErrValidation, "plan", fmt.Sprintf("file larger than %d bytes", h.maxUpload), nil)
	}
	f, err := fh.Open()
	if err != nil {
		return planInput{}, err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, h.maxUpload))
	if err != nil {
		return planInput{}, err
	}
	text, err := document.Extract(fh.Filename, data)
	if err != nil {
		return planInput{}, err
	}
	in.transcript, in.source, in.sourceName = text, SourceFile, fh.Filename
	return in, nil
}

func (h *PlanCtrl) fetchURL(ctx context.Context, u string) (string, error) {
	if h.fetch == nil {
		return "", apperr.Wrap(apperr.ErrValidation, "plan", "url sources are disabled", nil)
	}
	return h.fetch.Fetch(ctx, strings.TrimSpace(u))
}

func (h *PlanCtrl) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	recs, err := h.repo.ListRecent(limit)
	if err != nil {
		return h.fail(c, err)
	}

	type item struct {
		ID              string   `json:"id"`
		Skills          []string `json:"skills"`
		Source          string   `json:"source"`
		SourceName      string   `json:"source_name,omitempty"`
		UnidadeConteudo string   `json:"unidadeConteudo"`
		Lessons         int      `json:"lessons"`
		Model           string   `json:"model"`
		CreatedAt       string   `json:"created_at"`
	}
	out := make([]item, 0, len(recs))
	for _, r := range recs {
		out = append(out, item{
			ID: r.PublicID, Skills: r.Skills, Source: r.Source, SourceName: r.SourceName,
			UnidadeConteudo: r.Plan.UnidadeConteudo, Lessons: len(r.Plan.Aulas),
			Model: r.Model, CreatedAt: r.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PlanCtrl) Get(c echo.Context) error {
	rec, err := h.repo.FindByPublicID(c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *PlanCtrl) Export(c echo.Context) error {
	rec, err := h.repo.FindByPublicID(c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}

	switch format := strings.ToLower(c.QueryParam("format")); format {
	case "", "txt":
		return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(export.Text(&rec.Plan)))
	case "xlsx":
		f, err := export.Workbook(&rec.Plan)
		if err != nil {
			return h.fail(c, err)
		}
		defer f.Close()
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "plano-"+rec.PublicID+".xlsx"))
		c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Response().WriteHeader(http.StatusOK)
		return f.Write(c.Response())
	default:
		return h.fail(c, apperr.Wrap(apperr.ErrValidation, "export", "unknown format "+format, nil))
	}
}

func (h *PlanCtrl) fail(c echo.Context, err error) error {
	status := apperr.HTTPStatus(err)
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		status = http.StatusRequestEntityTooLarge
	}
	if status >= 500 {
		h.log.Error("plan request failed", "request_id", middleware.GetRequestID(c), "status", status, "error", err)
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}

func first(vs []string) string {
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}
