package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lessonplan/database"
	"lessonplan/pkg/ai"
	healthCtrlImp "lessonplan/pkg/health/controllerImp"
	"lessonplan/pkg/logger"
	"lessonplan/pkg/middleware"
	planCtrlImp "lessonplan/pkg/plan/controllerImp"
	planRepoImp "lessonplan/pkg/plan/repositoryImp"
	planSvcImp "lessonplan/pkg/plan/serviceImp"
	"lessonplan/pkg/refdata"
	skillCtrlImp "lessonplan/pkg/skill/controllerImp"
)

func TestRoutesEndToEnd(t *testing.T) {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	refs, err := refdata.LoadSeed()
	require.NoError(t, err)
	log := logger.NewNop()
	llm := ai.NewMock()

	svc := planSvcImp.NewPlanService(refs, llm, log)
	e := New(echo.New(), log,
		planCtrlImp.NewPlanCtrl(svc, planRepoImp.New(db), nil, 0, log),
		skillCtrlImp.NewSkillCtrl(refs),
		healthCtrlImp.NewHealthCtrl(db, refs, "mock", llm.Model()),
	)

	for _, path := range []string{"/health", "/grades", "/skills/EF06CO01", "/plans"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotEmpty(t, rec.Header().Get(middleware.HeaderRequestID), path)
	}

	req := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(`{"transcript":"Aula 1","skills":["EF06CO01"]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
