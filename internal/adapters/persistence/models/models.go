package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
)

// ============================================================
// Catalogue tables
// ============================================================

// InventoryItem represents inventory_items table
type InventoryItem struct {
	ID              int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string     `gorm:"size:150;not null;index" json:"name"`
	SKU             string     `gorm:"column:sku;size:50;index" json:"sku"`
	Category        string     `gorm:"size:100;index" json:"category"`
	Manufacturer    string     `gorm:"size:100" json:"manufacturer"`
	Stock           int        `gorm:"not null;default:0" json:"stock"`
	ReorderLevel    int        `gorm:"not null;default:0" json:"reorder_level"`
	UnitPrice       float64    `gorm:"type:decimal(10,2);not null;default:0" json:"unit_price"`
	MedicineType    string     `gorm:"size:20" json:"medicine_type"`
	TabletsPerStrip int        `gorm:"default:0" json:"tablets_per_strip"`
	StripPrice      float64    `gorm:"type:decimal(10,2);default:0" json:"strip_price"`
	ExpiryDate      *time.Time `gorm:"type:date" json:"expiry_date"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

func (m *InventoryItem) ToDomain() domain.InventoryItem {
	return domain.InventoryItem{
		ID:              m.ID,
		Name:            m.Name,
		SKU:             m.SKU,
		Category:        m.Category,
		Manufacturer:    m.Manufacturer,
		Stock:           m.Stock,
		ReorderLevel:    m.ReorderLevel,
		UnitPrice:       m.UnitPrice,
		MedicineType:    m.MedicineType,
		TabletsPerStrip: m.TabletsPerStrip,
		StripPrice:      m.StripPrice,
		ExpiryDate:      datePtr(m.ExpiryDate),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func InventoryItemFromDomain(d domain.InventoryItem) *InventoryItem {
	return &InventoryItem{
		ID:              d.ID,
		Name:            d.Name,
		SKU:             d.SKU,
		Category:        d.Category,
		Manufacturer:    d.Manufacturer,
		Stock:           d.Stock,
		ReorderLevel:    d.ReorderLevel,
		UnitPrice:       d.UnitPrice,
		MedicineType:    d.MedicineType,
		TabletsPerStrip: d.TabletsPerStrip,
		StripPrice:      d.StripPrice,
		ExpiryDate:      timePtr(d.ExpiryDate),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// Customer represents customers table
type Customer struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"size:150;not null" json:"name"`
	Email          string    `gorm:"size:100" json:"email"`
	Phone          string    `gorm:"size:20;index" json:"phone"`
	Address        string    `gorm:"type:text" json:"address"`
	DateRegistered time.Time `gorm:"type:date" json:"date_registered"`
	Prescriptions  int       `gorm:"default:0" json:"prescriptions"`
	LastVisit      time.Time `gorm:"type:date" json:"last_visit"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Customer) TableName() string {
	return "customers"
}

func (m *Customer) ToDomain() domain.Customer {
	return domain.Customer{
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email,
		Phone:          m.Phone,
		Address:        m.Address,
		DateRegistered: domain.NewDate(m.DateRegistered),
		Prescriptions:  m.Prescriptions,
		LastVisit:      domain.NewDate(m.LastVisit),
		CreatedAt:      m.CreatedAt,
	}
}

func CustomerFromDomain(d domain.Customer) *Customer {
	return &Customer{
		ID:             d.ID,
		Name:           d.Name,
		Email:          d.Email,
		Phone:          d.Phone,
		Address:        d.Address,
		DateRegistered: d.DateRegistered.Time,
		Prescriptions:  d.Prescriptions,
		LastVisit:      d.LastVisit.Time,
		CreatedAt:      d.CreatedAt,
	}
}

// Supplier represents suppliers table
type Supplier struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Contact   string    `gorm:"size:100" json:"contact"`
	Email     string    `gorm:"size:100" json:"email"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

func (m *Supplier) ToDomain() domain.Supplier {
	return domain.Supplier{
		ID:        m.ID,
		Name:      m.Name,
		Contact:   m.Contact,
		Email:     m.Email,
		Phone:     m.Phone,
		Address:   m.Address,
		CreatedAt: m.CreatedAt,
	}
}

func SupplierFromDomain(d domain.Supplier) *Supplier {
	return &Supplier{
		ID:        d.ID,
		Name:      d.Name,
		Contact:   d.Contact,
		Email:     d.Email,
		Phone:     d.Phone,
		Address:   d.Address,
		CreatedAt: d.CreatedAt,
	}
}

// ============================================================
// Dispensing tables
// ============================================================

// Prescription represents prescriptions table
type Prescription struct {
	ID          string              `gorm:"primaryKey;size:36" json:"id"`
	PatientName string              `gorm:"size:150;not null" json:"patient_name"`
	PatientID   *int64              `gorm:"index" json:"patient_id"`
	DoctorName  string              `gorm:"size:150" json:"doctor_name"`
	Date        time.Time           `gorm:"type:date" json:"date"`
	Status      string              `gorm:"size:20;default:'active';index" json:"status"`
	Medications []domain.Medication `gorm:"serializer:json;type:text" json:"medications"`
	Notes       string              `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time           `gorm:"autoCreateTime" json:"created_at"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

func (m *Prescription) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *Prescription) ToDomain() domain.Prescription {
	return domain.Prescription{
		ID:          m.ID,
		PatientName: m.PatientName,
		PatientID:   m.PatientID,
		DoctorName:  m.DoctorName,
		Date:        domain.NewDate(m.Date),
		Status:      m.Status,
		Medications: nonNil(m.Medications),
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
	}
}

func PrescriptionFromDomain(d domain.Prescription) *Prescription {
	return &Prescription{
		ID:          d.ID,
		PatientName: d.PatientName,
		PatientID:   d.PatientID,
		DoctorName:  d.DoctorName,
		Date:        d.Date.Time,
		Status:      d.Status,
		Medications: d.Medications,
		Notes:       d.Notes,
		CreatedAt:   d.CreatedAt,
	}
}

// EPrescription represents e_prescriptions table
type EPrescription struct {
	ID           string              `gorm:"primaryKey;size:36" json:"id"`
	PatientName  string              `gorm:"size:150;not null" json:"patient_name"`
	PatientID    *int64              `gorm:"index" json:"patient_id"`
	DoctorName   string              `gorm:"size:150" json:"doctor_name"`
	HospitalName string              `gorm:"size:150" json:"hospital_name"`
	Date         time.Time           `gorm:"type:date" json:"date"`
	Status       string              `gorm:"size:20;default:'pending';index" json:"status"`
	Medications  []domain.Medication `gorm:"serializer:json;type:text" json:"medications"`
	Notes        string              `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time           `gorm:"autoCreateTime" json:"created_at"`
}

func (EPrescription) TableName() string {
	return "e_prescriptions"
}

func (m *EPrescription) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *EPrescription) ToDomain() domain.EPrescription {
	return domain.EPrescription{
		ID:           m.ID,
		PatientName:  m.PatientName,
		PatientID:    m.PatientID,
		DoctorName:   m.DoctorName,
		HospitalName: m.HospitalName,
		Date:         domain.NewDate(m.Date),
		Status:       m.Status,
		Medications:  nonNil(m.Medications),
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
	}
}

func EPrescriptionFromDomain(d domain.EPrescription) *EPrescription {
	return &EPrescription{
		ID:           d.ID,
		PatientName:  d.PatientName,
		PatientID:    d.PatientID,
		DoctorName:   d.DoctorName,
		HospitalName: d.HospitalName,
		Date:         d.Date.Time,
		Status:       d.Status,
		Medications:  d.Medications,
		Notes:        d.Notes,
		CreatedAt:    d.CreatedAt,
	}
}

// Return represents returns table
type Return struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Product      string    `gorm:"size:150;not null" json:"product"`
	Customer     string    `gorm:"size:150;index" json:"customer"`
	Quantity     int       `gorm:"not null;default:1" json:"quantity"`
	Reason       string    `gorm:"type:text" json:"reason"`
	Date         time.Time `gorm:"type:date" json:"date"`
	Status       string    `gorm:"size:20;default:'pending';index" json:"status"`
	RefundAmount float64   `gorm:"type:decimal(10,2);default:0" json:"refund_amount"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Return) TableName() string {
	return "returns"
}

func (m *Return) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *Return) ToDomain() domain.Return {
	return domain.Return{
		ID:           m.ID,
		Product:      m.Product,
		Customer:     m.Customer,
		Quantity:     m.Quantity,
		Reason:       m.Reason,
		Date:         domain.NewDate(m.Date),
		Status:       m.Status,
		RefundAmount: m.RefundAmount,
		CreatedAt:    m.CreatedAt,
	}
}

func ReturnFromDomain(d domain.Return) *Return {
	return &Return{
		ID:           d.ID,
		Product:      d.Product,
		Customer:     d.Customer,
		Quantity:     d.Quantity,
		Reason:       d.Reason,
		Date:         d.Date.Time,
		Status:       d.Status,
		RefundAmount: d.RefundAmount,
		CreatedAt:    d.CreatedAt,
	}
}

// Sale represents sales table
type Sale struct {
	ID            string            `gorm:"primaryKey;size:36" json:"id"`
	CustomerID    *int64            `gorm:"index" json:"customer_id"`
	Items         []domain.SaleLine `gorm:"serializer:json;type:text" json:"items"`
	TotalAmount   float64           `gorm:"type:decimal(12,2);not null;default:0" json:"total_amount"`
	PaymentMethod string            `gorm:"size:20;default:'cash'" json:"payment_method"`
	Date          time.Time         `gorm:"index" json:"date"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (Sale) TableName() string {
	return "sales"
}

func (m *Sale) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *Sale) ToDomain() domain.Sale {
	return domain.Sale{
		ID:            m.ID,
		CustomerID:    m.CustomerID,
		Items:         nonNil(m.Items),
		TotalAmount:   m.TotalAmount,
		PaymentMethod: m.PaymentMethod,
		Date:          m.Date,
		CreatedAt:     m.CreatedAt,
	}
}

func SaleFromDomain(d domain.Sale) *Sale {
	return &Sale{
		ID:            d.ID,
		CustomerID:    d.CustomerID,
		Items:         d.Items,
		TotalAmount:   d.TotalAmount,
		PaymentMethod: d.PaymentMethod,
		Date:          d.Date,
		CreatedAt:     d.CreatedAt,
	}
}

// PurchaseOrder represents purchase_orders table
type PurchaseOrder struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	SupplierID   *int64    `gorm:"index" json:"supplier_id"`
	SupplierName string    `gorm:"size:150" json:"supplier_name"`
	Date         time.Time `gorm:"type:date" json:"date"`
	Items        int       `gorm:"default:0" json:"items"`
	Total        float64   `gorm:"type:decimal(12,2);default:0" json:"total"`
	Status       string    `gorm:"size:20;default:'pending';index" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

func (m *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *PurchaseOrder) ToDomain() domain.PurchaseOrder {
	return domain.PurchaseOrder{
		ID:           m.ID,
		SupplierID:   m.SupplierID,
		SupplierName: m.SupplierName,
		Date:         domain.NewDate(m.Date),
		Items:        m.Items,
		Total:        m.Total,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt,
	}
}

func PurchaseOrderFromDomain(d domain.PurchaseOrder) *PurchaseOrder {
	return &PurchaseOrder{
		ID:           d.ID,
		SupplierID:   d.SupplierID,
		SupplierName: d.SupplierName,
		Date:         d.Date.Time,
		Items:        d.Items,
		Total:        d.Total,
		Status:       d.Status,
		CreatedAt:    d.CreatedAt,
	}
}

// ============================================================
// Auth & permission tables
// ============================================================

// Profile represents profiles table (staff accounts)
type Profile struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Name         string     `gorm:"size:100;not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone        string     `gorm:"size:20" json:"phone"`
	Role         string     `gorm:"size:30;not null;default:'Pharmacist'" json:"role"`
	Status       string     `gorm:"size:20;not null;default:'active'" json:"status"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (m *Profile) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *Profile) ToDomain() domain.User {
	return domain.User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Role:      domain.Role(m.Role),
		Status:    m.Status,
		LastLogin: m.LastLogin,
	}
}

// ProfileFromDomain maps a user to a row. The password is never copied; the
// repository hashes it separately.
func ProfileFromDomain(d domain.User) *Profile {
	return &Profile{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Role:      string(d.Role),
		Status:    d.Status,
		LastLogin: d.LastLogin,
	}
}

// UserPermission represents user_permissions table. One row per
// (user, module, action) of a custom override.
type UserPermission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_user_module_action" json:"user_id"`
	Module    string    `gorm:"size:30;not null;uniqueIndex:idx_user_module_action" json:"module"`
	Action    string    `gorm:"size:20;not null;uniqueIndex:idx_user_module_action" json:"action"`
	Allowed   bool      `gorm:"not null;default:false" json:"allowed"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (UserPermission) TableName() string {
	return "user_permissions"
}

// AuthSession represents auth_sessions table
type AuthSession struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	UserID    string     `gorm:"size:36;index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:64;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	Profile   Profile    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (AuthSession) TableName() string {
	return "auth_sessions"
}

func (s *AuthSession) IsRevoked() bool {
	return s.RevokedAt != nil
}

func (s *AuthSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// AutoMigrate creates or updates every table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Catalogue
		&InventoryItem{},
		&Customer{},
		&Supplier{},
		// Dispensing
		&Prescription{},
		&EPrescription{},
		&Return{},
		&Sale{},
		&PurchaseOrder{},
		// Auth
		&Profile{},
		&UserPermission{},
		&AuthSession{},
	)
}

func datePtr(t *time.Time) *domain.Date {
	if t == nil || t.IsZero() {
		return nil
	}
	d := domain.NewDate(*t)
	return &d
}

func timePtr(d *domain.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
