package services

import (
	"sort"
	"time"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/stores"
)

// DashboardService summarizes the loaded stores for the home screen
type DashboardService struct {
	inventory      *stores.InventoryStore
	sales          *stores.SaleStore
	customers      *stores.CustomerStore
	prescriptions  *stores.PrescriptionStore
	ePrescriptions *stores.EPrescriptionStore
	returns        *stores.ReturnStore
	notifications  *stores.NotificationStore
	expiryDays     int
	now            func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	inventory *stores.InventoryStore,
	sales *stores.SaleStore,
	customers *stores.CustomerStore,
	prescriptions *stores.PrescriptionStore,
	ePrescriptions *stores.EPrescriptionStore,
	returns *stores.ReturnStore,
	notifications *stores.NotificationStore,
	expiryDays int,
) *DashboardService {
	if expiryDays <= 0 {
		expiryDays = 30
	}
	return &DashboardService{
		inventory:      inventory,
		sales:          sales,
		customers:      customers,
		prescriptions:  prescriptions,
		ePrescriptions: ePrescriptions,
		returns:        returns,
		notifications:  notifications,
		expiryDays:     expiryDays,
		now:            time.Now,
	}
}

// ============================================================
// Sales
// ============================================================

// SalesStats represents the sales figures shown on the sales screen
type SalesStats struct {
	TodayTotal      float64 `json:"today_total"`
	MonthTotal      float64 `json:"month_total"`
	TotalSales      int     `json:"total_sales"`
	UniqueCustomers int     `json:"unique_customers"`
}

// SalesStats returns the sales figures as of now
func (s *DashboardService) SalesStats() SalesStats {
	now := s.now()
	return SalesStats{
		TodayTotal:      s.sales.TodayTotal(now),
		MonthTotal:      s.sales.MonthTotal(now),
		TotalSales:      s.sales.Len(),
		UniqueCustomers: s.sales.UniqueCustomerCount(),
	}
}

// ============================================================
// Overview
// ============================================================

// DashboardData represents the home screen figures
type DashboardData struct {
	Sales SalesStats `json:"sales"`

	// Stock
	InventoryItems int `json:"inventory_items"`
	LowStock       int `json:"low_stock"`
	ExpiringSoon   int `json:"expiring_soon"`

	// Counter
	Customers            int `json:"customers"`
	ActivePrescriptions  int `json:"active_prescriptions"`
	PendingEPrescription int `json:"pending_e_prescriptions"`
	PendingReturns       int `json:"pending_returns"`
	UnreadNotifications  int `json:"unread_notifications"`

	// Recent Activity
	RecentSales []SaleSummary `json:"recent_sales"`
}

// SaleSummary represents one row of the recent sales list
type SaleSummary struct {
	ID            string    `json:"id"`
	Items         int       `json:"items"`
	TotalAmount   float64   `json:"total_amount"`
	PaymentMethod string    `json:"payment_method"`
	Date          time.Time `json:"date"`
}

// Overview returns the home screen figures
func (s *DashboardService) Overview() *DashboardData {
	data := &DashboardData{
		Sales:                s.SalesStats(),
		InventoryItems:       s.inventory.Len(),
		LowStock:             len(s.inventory.LowStock()),
		ExpiringSoon:         len(s.inventory.ExpiringWithin(s.expiryDays, s.now())),
		Customers:            s.customers.Len(),
		ActivePrescriptions:  s.prescriptions.ActiveCount(),
		PendingEPrescription: s.ePrescriptions.PendingCount(),
		PendingReturns:       s.returns.PendingCount(),
		UnreadNotifications:  s.notifications.UnreadCount(),
	}

	// Recent sales, newest first
	sales := s.sales.All()
	sort.SliceStable(sales, func(i, j int) bool { return sales[i].Date.After(sales[j].Date) })
	if len(sales) > 5 {
		sales = sales[:5]
	}
	data.RecentSales = make([]SaleSummary, len(sales))
	for i, sale := range sales {
		data.RecentSales[i] = SaleSummary{
			ID:            sale.ID,
			Items:         len(sale.Items),
			TotalAmount:   sale.TotalAmount,
			PaymentMethod: sale.PaymentMethod,
			Date:          sale.Date,
		}
	}

	return data
}
