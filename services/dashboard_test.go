package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"juris_control_go/models"
	"juris_control_go/services/tablestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDashboard(store tablestore.Store) *DashboardService {
	logger := zap.NewNop()
	clients := NewClientService(store, logger)
	return NewDashboardService(
		clients,
		NewCaseService(store, clients, logger),
		NewFinanceService(store, logger),
		NewInactivityMonitor(store, logger),
		logger,
	)
}

func TestDashboardService_Overview(t *testing.T) {
	store := tablestore.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.ReplaceAll(ctx, tablestore.TableClients, []tablestore.Row{
		{models.ClientColID: "1", models.ClientColName: "A"},
		{models.ClientColID: "2", models.ClientColName: "B"},
	}))
	require.NoError(t, store.ReplaceAll(ctx, tablestore.TableCases, []tablestore.Row{
		{models.CaseColID: "1", models.CaseColNumber: "stale", models.CaseColStatus: models.CaseStatusActive, models.CaseColLastUpdate: "01/01/2024"},
		{models.CaseColID: "2", models.CaseColNumber: "old", models.CaseColStatus: models.CaseStatusArchived, models.CaseColLastUpdate: "01/01/2023"},
	}))
	require.NoError(t, store.ReplaceAll(ctx, tablestore.TableInstallments, []tablestore.Row{
		{models.InstallmentColID: "1", models.InstallmentColAmount: "40", models.InstallmentColPaid: "FALSE"},
		{models.InstallmentColID: "2", models.InstallmentColAmount: "60", models.InstallmentColPaid: "TRUE"},
	}))

	ov, err := newDashboard(store).Overview(ctx, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, ov.Clients)
	assert.Equal(t, 1, ov.ActiveCases)
	assert.InDelta(t, 40.0, ov.Receivable, 0.0001)
	require.Len(t, ov.Alerts, 1)
	assert.Equal(t, "stale", ov.Alerts[0].Reference)
	assert.False(t, ov.Degraded)
}

func TestDashboardService_DegradesWhenUnavailable(t *testing.T) {
	ov, err := newDashboard(failingStore{err: errors.New("timeout")}).Overview(context.Background(), time.Now())
	require.NoError(t, err)
	assert.True(t, ov.Degraded)
	assert.Zero(t, ov.Clients)
	assert.Empty(t, ov.Alerts)
}

func TestDashboardService_PropagatesCancellation(t *testing.T) {
	_, err := newDashboard(failingStore{err: context.Canceled}).Overview(context.Background(), time.Now())
	assert.ErrorIs(t, err, context.Canceled)
}
