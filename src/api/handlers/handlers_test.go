package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dashboard/src/api/handlers"
	"dashboard/src/schemas"
	"dashboard/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type controllerMock struct {
	funds        []string
	summary      *schemas.FundSummaryResponse
	page         string
	pdf          []byte
	err          error
	cacheCleared bool
}

func (m *controllerMock) ListFunds(ctx context.Context) ([]string, error) {
	return m.funds, m.err
}

func (m *controllerMock) GetFundSummary(ctx context.Context, fund string) (*schemas.FundSummaryResponse, error) {
	return m.summary, m.err
}

func (m *controllerMock) GetReturnSeries(ctx context.Context, fund string) ([]schemas.ReturnPoint, error) {
	return nil, m.err
}

func (m *controllerMock) GetDelinquencySeries(ctx context.Context, fund string) ([]schemas.BucketPoint, error) {
	return nil, m.err
}

func (m *controllerMock) GetAgingSeries(ctx context.Context, fund string) ([]schemas.BucketPoint, error) {
	return nil, m.err
}

func (m *controllerMock) GetCovenants(ctx context.Context, fund string) ([]schemas.CovenantRecord, error) {
	return nil, m.err
}

func (m *controllerMock) GetMacroSeries(ctx context.Context) ([]schemas.MacroPoint, error) {
	return nil, m.err
}

func (m *controllerMock) RenderFundDashboard(ctx context.Context, fund string) (string, error) {
	return m.page, m.err
}

func (m *controllerMock) GenerateXLSXReport(ctx context.Context, fund string) (*excelize.File, error) {
	if m.err != nil {
		return nil, m.err
	}
	return excelize.NewFile(), nil
}

func (m *controllerMock) GeneratePDFReport(ctx context.Context, fund string) ([]byte, error) {
	return m.pdf, m.err
}

func (m *controllerMock) ClearCache(ctx context.Context) {
	m.cacheCleared = true
}

func setupRouter(mock *controllerMock) *chi.Mux {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	h := &handlers.Handler{Controller: mock, Logger: logger}

	router := chi.NewRouter()
	router.Get("/api/funds", h.GetAllFunds)
	router.Get("/api/funds/{fund}/summary", h.GetFundSummary)
	router.Get("/api/funds/{fund}/dashboard", h.GetFundDashboard)
	router.Get("/api/funds/{fund}/report", h.GetFundReportFile)
	router.Delete("/api/cache", h.ClearCache)
	return router
}

func TestGetAllFunds(t *testing.T) {
	mock := &controllerMock{funds: []string{"Alpha", "Beta"}}
	router := setupRouter(mock)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/funds", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var funds []string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &funds))
	assert.Equal(t, []string{"Alpha", "Beta"}, funds)
}

func TestGetFundSummary(t *testing.T) {
	netWorth := 12345678.90
	mock := &controllerMock{summary: &schemas.FundSummaryResponse{
		Fund:          "Alpha",
		ReferenceDate: "2024-03-31",
		NetWorth:      &netWorth,
		Statuses:      map[string]string{"Concentracao Cedente": "OK"},
	}}
	router := setupRouter(mock)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/funds/Alpha/summary", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var summary schemas.FundSummaryResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &summary))
	assert.Equal(t, "Alpha", summary.Fund)
	require.NotNil(t, summary.NetWorth)
	assert.InDelta(t, netWorth, *summary.NetWorth, 1e-6)
}

func TestGetFundSummaryNotFound(t *testing.T) {
	mock := &controllerMock{err: utils.NotFound("fund not found: Gamma")}
	router := setupRouter(mock)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/funds/Gamma/summary", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetAllFundsUnavailable(t *testing.T) {
	mock := &controllerMock{err: utils.ServiceUnavailable("portfolio data unavailable")}
	router := setupRouter(mock)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/funds", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

func TestGetFundDashboard(t *testing.T) {
	mock := &controllerMock{page: "<html><body>Fund: Alpha</body></html>"}
	router := setupRouter(mock)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/funds/Alpha/dashboard", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/html; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.Contains(t, recorder.Body.String(), "Fund: Alpha")
}

func TestGetFundReportFileXLSX(t *testing.T) {
	mock := &controllerMock{}
	router := setupRouter(mock)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/funds/Alpha/report", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		recorder.Header().Get("Content-Type"),
	)
	assert.Contains(t, recorder.Header().Get("Content-Disposition"), "Alpha.xlsx")
	assert.NotEmpty(t, recorder.Body.Bytes())
}

func TestGetFundReportFilePDF(t *testing.T) {
	mock := &controllerMock{pdf: []byte("%PDF-1.4")}
	router := setupRouter(mock)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/funds/Alpha/report?format=PDF", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/pdf", recorder.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4", recorder.Body.String())
}

func TestGetFundReportFileUnsupportedFormat(t *testing.T) {
	mock := &controllerMock{}
	router := setupRouter(mock)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/funds/Alpha/report?format=DOCX", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}

func TestClearCache(t *testing.T) {
	mock := &controllerMock{}
	router := setupRouter(mock)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/api/cache", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, mock.cacheCleared)
}

func TestHealthcheck(t *testing.T) {
	recorder := httptest.NewRecorder()
	handlers.Healthcheck(recorder, httptest.NewRequest(http.MethodGet, "/alive", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "OK", recorder.Body.String())
}
