package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"tomato-harvest/internal/catalog"
	"tomato-harvest/internal/checkout"
	"tomato-harvest/internal/logx"
	"tomato-harvest/internal/metrics"
	"tomato-harvest/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const testCookie = "th_session"

type acceptingSubmitter struct{}

func (acceptingSubmitter) Submit(_ context.Context, o checkout.Order) (checkout.Receipt, error) {
	return checkout.Receipt{OrderID: o.ID, ItemCount: o.ItemCount, Total: o.Total, SubmittedAt: time.Now()}, nil
}

type testEnv struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func newTestDeps(t *testing.T, submitter checkout.OrderSubmitter) Deps {
	t.Helper()
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg, reg)
	if submitter == nil {
		submitter = checkout.NewPlaceholder(logx.Discard())
	}
	cat := catalog.Default()
	return Deps{
		Catalog:     cat,
		Sessions:    session.NewManager(session.NewMemory(time.Hour), cat, logx.Discard()),
		Checkout:    checkout.NewService(submitter, m, logx.Discard()),
		Metrics:     m,
		CookieName:  testCookie,
		CORSOrigins: []string{"*"},
	}
}

func newTestEnv(t *testing.T, submitter checkout.OrderSubmitter) *testEnv {
	t.Helper()
	router, err := buildRouter(logx.Discard(), newTestDeps(t, submitter))
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return &testEnv{t: t, router: router}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	e.t.Helper()
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookie {
			e.cookie = c
		}
	}
	return rec
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (e *testEnv) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

func (e *testEnv) sendJSON(method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return e.do(req)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

type cartBody struct {
	Lines []struct {
		ID        string `json:"id"`
		Quantity  int    `json:"quantity"`
		Price     string `json:"price"`
		LineTotal string `json:"lineTotal"`
	} `json:"lines"`
	ItemCount int    `json:"itemCount"`
	Subtotal  string `json:"subtotal"`
	Total     string `json:"total"`
	PanelOpen bool   `json:"panelOpen"`
}
