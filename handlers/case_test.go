package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"juris_control_go/models"
	"juris_control_go/services/tablestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedClientAndCase(t *testing.T, store tablestore.Store) {
	t.Helper()
	seed(t, store, tablestore.TableClients,
		tablestore.Row{models.ClientColID: "1", models.ClientColName: "Maria Lima"},
	)
	seed(t, store, tablestore.TableCases,
		tablestore.Row{
			models.CaseColID:         "1",
			models.CaseColNumber:     "0801234-56.2024",
			models.CaseColClient:     "Maria Lima",
			models.CaseColClientID:   "1",
			models.CaseColStatus:     models.CaseStatusActive,
			models.CaseColLastUpdate: "05/01/2024",
		},
	)
}

func TestCreateCase(t *testing.T) {
	store := tablestore.NewMemoryStore()
	seedClientAndCase(t, store)
	e, _ := setupAPI(t, store)

	t.Run("Success", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/cases", url.Values{
			"number":    {"0009999-11.2024"},
			"client_id": {"1"},
			"role":      {models.CaseRolePlaintiff},
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var got models.Case
		decode(t, rec, &got)
		assert.Equal(t, int64(2), got.ID)
		assert.Equal(t, models.CaseStatusActive, got.Status)
		assert.Equal(t, "20/01/2024", got.LastUpdate)
		assert.Equal(t, "Maria Lima", got.Client)
	})

	t.Run("ClientByLabel", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/cases", url.Values{
			"number": {"0008888-11.2024"},
			"client": {"1 - Maria Lima ()"},
		})
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("UnknownClient", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/cases", url.Values{
			"number":    {"x"},
			"client_id": {"99"},
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("MissingNumber", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/cases", url.Values{"client_id": {"1"}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetCases(t *testing.T) {
	store := tablestore.NewMemoryStore()
	seedClientAndCase(t, store)
	e, _ := setupAPI(t, store)

	rec := doRequest(e, http.MethodGet, "/api/cases", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []struct {
			ID    int64  `json:"id"`
			Label string `json:"label"`
		} `json:"data"`
	}
	decode(t, rec, &body)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "1 - 0801234-56.2024 (Maria Lima)", body.Data[0].Label)

	rec = doRequest(e, http.MethodGet, "/api/cases?status=Archived", nil)
	decode(t, rec, &body)
	assert.Empty(t, body.Data)

	rec = doRequest(e, http.MethodGet, "/api/cases?status=Closed", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCaseLifecycleEndpoints(t *testing.T) {
	store := tablestore.NewMemoryStore()
	seedClientAndCase(t, store)
	e, _ := setupAPI(t, store)

	rec := doRequest(e, http.MethodPost, "/api/cases/1/archive", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Case
	decode(t, rec, &got)
	assert.Equal(t, models.CaseStatusArchived, got.Status)
	assert.Equal(t, "05/01/2024", got.LastUpdate)

	rec = doRequest(e, http.MethodPost, "/api/cases/1/reactivate", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &got)
	assert.Equal(t, models.CaseStatusActive, got.Status)
	assert.Equal(t, "05/01/2024", got.LastUpdate)

	rec = doRequest(e, http.MethodPost, "/api/cases/1/review", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &got)
	assert.Equal(t, "20/01/2024", got.LastUpdate)

	rec = doRequest(e, http.MethodPut, "/api/cases/1/status", url.Values{"status": {models.CaseStatusOnAppeal}})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &got)
	assert.Equal(t, models.CaseStatusOnAppeal, got.Status)

	rec = doRequest(e, http.MethodPut, "/api/cases/1/status", url.Values{"status": {"Closed"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/cases/42/archive", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/cases/abc/archive", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCaseHistoryEndpoints(t *testing.T) {
	store := tablestore.NewMemoryStore()
	seedClientAndCase(t, store)
	e, _ := setupAPI(t, store)

	rec := doRequest(e, http.MethodPost, "/api/cases/1/history", url.Values{
		"date":        {"2024-02-10"},
		"description": {"Petition filed"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/cases/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		Case    models.Case               `json:"case"`
		History []models.CaseHistoryEntry `json:"history"`
	}
	decode(t, rec, &detail)
	assert.Equal(t, "10/02/2024", detail.Case.LastUpdate)
	require.Len(t, detail.History, 1)
	assert.Equal(t, "Petition filed", detail.History[0].Description)

	rec = doRequest(e, http.MethodGet, "/api/cases/1/history", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/cases/1/history", url.Values{
		"date":        {"not a date"},
		"description": {"x"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/cases/7/history", url.Values{"description": {"x"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/cases/7/history", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCaseOptions(t *testing.T) {
	store := tablestore.NewMemoryStore()
	seedClientAndCase(t, store)
	e, _ := setupAPI(t, store)

	rec := doRequest(e, http.MethodGet, "/api/cases/options", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Choices []string `json:"choices"`
	}
	decode(t, rec, &body)
	assert.Equal(t, []string{"None selected", "1 - 0801234-56.2024 (Maria Lima)"}, body.Choices)
}
