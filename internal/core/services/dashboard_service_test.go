package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/ports/porttest"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/stores"
)

func TestDashboardService_Overview(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 8, 25, 10, 0, 0, 0, time.UTC)
	customer := int64(7)

	sales := stores.NewSales(porttest.NewTable[domain.Sale, string](porttest.AssignSale,
		domain.Sale{ID: "s1", CustomerID: &customer, TotalAmount: 10.1, Date: now.Add(-time.Hour), Items: []domain.SaleLine{{Product: "A"}}},
		domain.Sale{ID: "s2", TotalAmount: 0.2, Date: now.Add(-30 * time.Minute)},
		domain.Sale{ID: "s3", TotalAmount: 5, Date: now.AddDate(0, 0, -2)},
	))
	require.NoError(t, sales.FetchAll(ctx))

	prescriptions := stores.NewPrescriptions(porttest.NewTable[domain.Prescription, string](porttest.AssignPrescription))
	ePrescriptions := stores.NewEPrescriptions(porttest.NewTable[domain.EPrescription, string](porttest.AssignEPrescription), prescriptions)
	_, err := ePrescriptions.Create(ctx, domain.EPrescription{PatientName: "Ali"})
	require.NoError(t, err)

	returns := stores.NewReturns(porttest.NewTable[domain.Return, string](porttest.AssignReturn))
	_, err = returns.Create(ctx, domain.Return{Product: "Ibuprofen 400mg", Quantity: 1})
	require.NoError(t, err)

	svc := NewDashboardService(
		stores.NewInventory(porttest.NewTable[domain.InventoryItem, int64](porttest.AssignInventory), nil),
		sales,
		stores.NewCustomers(porttest.NewTable[domain.Customer, int64](porttest.AssignCustomer)),
		prescriptions,
		ePrescriptions,
		returns,
		stores.NewNotifications(nil),
		30,
	)
	svc.now = func() time.Time { return now }

	data := svc.Overview()

	assert.Equal(t, 10.3, data.Sales.TodayTotal)
	assert.Equal(t, 15.3, data.Sales.MonthTotal)
	assert.Equal(t, 3, data.Sales.TotalSales)
	assert.Equal(t, 1, data.Sales.UniqueCustomers)
	assert.Equal(t, len(stores.BootstrapInventory()), data.InventoryItems)
	assert.Equal(t, 1, data.PendingEPrescription)
	assert.Equal(t, 1, data.PendingReturns)
	require.Len(t, data.RecentSales, 3)
	assert.Equal(t, "s2", data.RecentSales[0].ID)
	assert.Equal(t, 1, data.RecentSales[1].Items)
}
