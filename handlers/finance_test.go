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

func TestFinanceEndpoints(t *testing.T) {
	store := tablestore.NewMemoryStore()
	e, _ := setupAPI(t, store)

	rec := doRequest(e, http.MethodPost, "/api/finance/installments", url.Values{
		"description": {"Fees"},
		"total":       {"100"},
		"count":       {"3"},
		"first_due":   {"2024-01-10"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var launched struct {
		Data []models.Installment `json:"data"`
	}
	decode(t, rec, &launched)
	require.Len(t, launched.Data, 3)
	assert.Equal(t, "Fees (2/3)", launched.Data[1].Description)
	assert.Equal(t, "09/02/2024", launched.Data[1].DueDate)

	rec = doRequest(e, http.MethodPost, "/api/finance/installments/2/settle", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/finance/installments/2/settle", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/finance/installments/999/settle", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var open struct {
		Data       []models.Installment `json:"data"`
		Receivable float64              `json:"receivable"`
	}
	rec = doRequest(e, http.MethodGet, "/api/finance/installments?open=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &open)
	assert.Len(t, open.Data, 2)
	assert.InDelta(t, 66.6666, open.Receivable, 0.001)

	rows, err := store.ReadAll(t.Context(), tablestore.TableInstallments)
	require.NoError(t, err)
	assert.Equal(t, "TRUE", rows[1][models.InstallmentColPaid])
}

func TestLaunchChargeValidation(t *testing.T) {
	e, _ := setupAPI(t, nil)

	tests := []struct {
		name string
		form url.Values
	}{
		{name: "Bad total", form: url.Values{"description": {"x"}, "total": {"abc"}}},
		{name: "Bad count", form: url.Values{"description": {"x"}, "total": {"10"}, "count": {"two"}}},
		{name: "Too many", form: url.Values{"description": {"x"}, "total": {"10"}, "count": {"13"}}},
		{name: "Bad date", form: url.Values{"description": {"x"}, "total": {"10"}, "first_due": {"later"}}},
		{name: "No description", form: url.Values{"total": {"10"}}},
		{name: "NaN total", form: url.Values{"description": {"x"}, "total": {"NaN"}}},
		{name: "Infinite total", form: url.Values{"description": {"x"}, "total": {"+Inf"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(e, http.MethodPost, "/api/finance/installments", tt.form)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCancelInstallment(t *testing.T) {
	store := tablestore.NewMemoryStore()
	seed(t, store, tablestore.TableInstallments,
		tablestore.Row{models.InstallmentColID: "1", models.InstallmentColAmount: "10", models.InstallmentColPaid: "TRUE"},
		tablestore.Row{models.InstallmentColID: "2", models.InstallmentColAmount: "10", models.InstallmentColPaid: "FALSE"},
	)
	e, _ := setupAPI(t, store)

	rec := doRequest(e, http.MethodDelete, "/api/finance/installments/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodDelete, "/api/finance/installments/2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodDelete, "/api/finance/installments/1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rows, err := store.ReadAll(t.Context(), tablestore.TableInstallments)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0][models.InstallmentColID])
}
