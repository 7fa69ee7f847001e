package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/bfhl/internal/config"
	"github.com/deppfellow/bfhl/internal/errs"
	"github.com/deppfellow/bfhl/internal/middleware"
	"github.com/deppfellow/bfhl/internal/server"
	"github.com/deppfellow/bfhl/internal/service"
	"github.com/deppfellow/bfhl/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Identity.OfficialEmail = "tester@chitkara.edu.in"

	logger := zerolog.Nop()
	s, err := server.New(cfg, &logger, nil)
	require.NoError(t, err)
	return s
}

type echoRequest struct {
	Tags []string `json:"tags" validate:"required,min=1"`
}

func (r *echoRequest) Validate() error {
	return validation.Struct(r)
}

func post(c *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, req)
	return rec
}

func TestHandle_FreshPayloadPerRequest(t *testing.T) {
	s := newTestServer(t)
	h := NewHandler(s)

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler
	e.POST("/", Handle(h, func(c echo.Context, req *echoRequest) ([]string, error) {
		return req.Tags, nil
	}, http.StatusOK, func() *echoRequest { return &echoRequest{} }))

	rec := post(e, `{"tags": ["a", "b"]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["a","b"]`, rec.Body.String())

	// A shared payload would keep ["a","b"] and pass validation here.
	rec = post(e, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ReturnsErrorsToErrorHandler(t *testing.T) {
	h := NewHandler(newTestServer(t))

	var got error
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		got = err
		_ = c.NoContent(http.StatusTeapot)
	}
	e.POST("/", Handle(h, func(c echo.Context, req *echoRequest) ([]string, error) {
		return nil, errors.New("boom")
	}, http.StatusOK, func() *echoRequest { return &echoRequest{} }))

	rec := post(e, `{"tags": ["a"]}`)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.EqualError(t, got, "boom")

	rec = post(e, `{"tags": []}`)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	var httpErr *errs.HTTPError
	require.True(t, errors.As(got, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestBFHLHandler_Process(t *testing.T) {
	s := newTestServer(t)
	services, err := service.NewServices(s)
	require.NoError(t, err)
	h := NewBFHLHandler(s, services.BFHL)

	e := echo.New()
	e.POST("/bfhl", func(c echo.Context) error {
		err := Handle(h.Handler, h.Process, http.StatusOK, h.NewRequest)(c)
		assert.Equal(t, "hcf", c.Get(middleware.OperationKey))
		return err
	})

	req := httptest.NewRequest(http.MethodPost, "/bfhl", strings.NewReader(`{"hcf": [8, 12]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"is_success":true,"official_email":"tester@chitkara.edu.in","data":4}`, rec.Body.String())
}

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler(newTestServer(t))

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	require.NoError(t, h.CheckHealth(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"is_success":true,"official_email":"tester@chitkara.edu.in"}`, rec.Body.String())
}
