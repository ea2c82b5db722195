package domain

import "time"

// Medicine packaging types
const (
	MedicineTypeStrip = "strip"
	MedicineTypeSyrup = "syrup"
)

// Record statuses used by the stores
const (
	StatusActive    = "active"
	StatusPending   = "pending"
	StatusVerified  = "verified"
	StatusProcessed = "processed"
	StatusInactive  = "inactive"
)

// DefaultPaymentMethod is applied to sales created without one
const DefaultPaymentMethod = "cash"

// InventoryItem represents a stocked medicine
type InventoryItem struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	SKU             string    `json:"sku"`
	Category        string    `json:"category"`
	Manufacturer    string    `json:"manufacturer,omitempty"`
	Stock           int       `json:"stock"`
	ReorderLevel    int       `json:"reorder_level"`
	UnitPrice       float64   `json:"unit_price"`
	MedicineType    string    `json:"medicine_type,omitempty"`
	TabletsPerStrip int       `json:"tablets_per_strip"`
	StripPrice      float64   `json:"strip_price"`
	ExpiryDate      *Date     `json:"expiry_date,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (i InventoryItem) Key() int64 { return i.ID }

// Clone returns a copy that shares no pointers with i
func (i InventoryItem) Clone() InventoryItem {
	if i.ExpiryDate != nil {
		d := *i.ExpiryDate
		i.ExpiryDate = &d
	}
	return i
}

// IsLowStock reports whether the item is at or below its reorder level
func (i InventoryItem) IsLowStock() bool {
	return i.Stock <= i.ReorderLevel
}

// Customer represents a pharmacy customer
type Customer struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	DateRegistered Date      `json:"date_registered"`
	Prescriptions  int       `json:"prescriptions"`
	LastVisit      Date      `json:"last_visit"`
	CreatedAt      time.Time `json:"created_at"`
}

func (c Customer) Key() int64 { return c.ID }

// Supplier represents a medicine distributor
type Supplier struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (s Supplier) Key() int64 { return s.ID }

// Medication is one line of a prescription
type Medication struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

// Prescription represents a paper prescription filled at the counter
type Prescription struct {
	ID          string       `json:"id"`
	PatientName string       `json:"patient_name"`
	PatientID   *int64       `json:"patient_id,omitempty"`
	DoctorName  string       `json:"doctor_name"`
	Date        Date         `json:"date"`
	Status      string       `json:"status"`
	Medications []Medication `json:"medications"`
	Notes       string       `json:"notes,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

func (p Prescription) Key() string { return p.ID }

// Clone returns a copy that shares no slices or pointers with p
func (p Prescription) Clone() Prescription {
	p.PatientID = cloneID(p.PatientID)
	p.Medications = cloneSlice(p.Medications)
	return p
}

// EPrescription represents a prescription received electronically from a hospital
type EPrescription struct {
	ID           string       `json:"id"`
	PatientName  string       `json:"patient_name"`
	PatientID    *int64       `json:"patient_id,omitempty"`
	DoctorName   string       `json:"doctor_name"`
	HospitalName string       `json:"hospital_name"`
	Date         Date         `json:"date"`
	Status       string       `json:"status"`
	Medications  []Medication `json:"medications"`
	Notes        string       `json:"notes,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (p EPrescription) Key() string { return p.ID }

// Clone returns a copy that shares no slices or pointers with p
func (p EPrescription) Clone() EPrescription {
	p.PatientID = cloneID(p.PatientID)
	p.Medications = cloneSlice(p.Medications)
	return p
}

// Return represents a product returned by a customer
type Return struct {
	ID           string    `json:"id"`
	Product      string    `json:"product"`
	Customer     string    `json:"customer"`
	Quantity     int       `json:"quantity"`
	Reason       string    `json:"reason"`
	Date         Date      `json:"date"`
	Status       string    `json:"status"`
	RefundAmount float64   `json:"refund_amount"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r Return) Key() string { return r.ID }

// SaleLine is one product line of a sale
type SaleLine struct {
	Product      string  `json:"product"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	SellByTablet bool    `json:"sell_by_tablet,omitempty"`
	TabletsCount int     `json:"tablets_count,omitempty"`
}

// Sale represents a completed counter sale
type Sale struct {
	ID            string     `json:"id"`
	CustomerID    *int64     `json:"customer_id,omitempty"`
	Items         []SaleLine `json:"items"`
	TotalAmount   float64    `json:"total_amount"`
	PaymentMethod string     `json:"payment_method"`
	Date          time.Time  `json:"date"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (s Sale) Key() string { return s.ID }

// Clone returns a copy that shares no slices or pointers with s
func (s Sale) Clone() Sale {
	s.CustomerID = cloneID(s.CustomerID)
	s.Items = cloneSlice(s.Items)
	return s
}

// PurchaseOrder represents an order placed with a supplier
type PurchaseOrder struct {
	ID           string    `json:"id"`
	SupplierID   *int64    `json:"supplier_id,omitempty"`
	SupplierName string    `json:"supplier_name"`
	Date         Date      `json:"date"`
	Items        int       `json:"items"`
	Total        float64   `json:"total"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func (p PurchaseOrder) Key() string { return p.ID }

func (p PurchaseOrder) Clone() PurchaseOrder {
	p.SupplierID = cloneID(p.SupplierID)
	return p
}

// User represents a staff profile
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Role      Role       `json:"role"`
	Status    string     `json:"status"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	// Password is only read on create; it is never returned by the remote service.
	Password string `json:"password,omitempty"`
}

func (u User) Key() string { return u.ID }

func (u User) Clone() User {
	if u.LastLogin != nil {
		t := *u.LastLogin
		u.LastLogin = &t
	}
	return u
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneSlice[E any](in []E) []E {
	if in == nil {
		return nil
	}
	return append(make([]E, 0, len(in)), in...)
}

// IsActive reports whether the profile may sign in
func (u User) IsActive() bool {
	return u.Status == "" || u.Status == StatusActive
}

// Notification represents an in-app notice
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	Priority  string    `json:"priority"`
}
