package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"juris_control_go/middleware"
	"juris_control_go/services/tablestore"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testToday = time.Date(2024, time.January, 20, 10, 0, 0, 0, time.UTC)

func setupAPI(t *testing.T, store tablestore.Store) (*echo.Echo, *Handler) {
	t.Helper()
	if store == nil {
		store = tablestore.NewMemoryStore()
	}

	h := New(store, zap.NewNop(), time.UTC).WithClock(func() time.Time { return testToday })

	e := echo.New()
	e.Use(middleware.RequestContext(zap.NewNop()))
	h.Register(e.Group("/api"), nil)
	return e, h
}

func doRequest(e *echo.Echo, method, path string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func seed(t *testing.T, store tablestore.Store, table string, rows ...tablestore.Row) {
	t.Helper()
	require.NoError(t, store.ReplaceAll(context.Background(), table, rows))
}
