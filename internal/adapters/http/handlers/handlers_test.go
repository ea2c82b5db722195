package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/adapters/http/middleware"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/adapters/snapshot"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/ports/porttest"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/services"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/stores"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func do(t *testing.T, app *fiber.App, method, path, body string, token ...string) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if len(token) > 0 {
		req.Header.Set("Authorization", "Bearer "+token[0])
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func newApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
}

// ============================================================
// CRUD
// ============================================================

func newCustomerApp(t *testing.T) (*fiber.App, *porttest.Table[domain.Customer, int64]) {
	t.Helper()
	table := porttest.NewTable[domain.Customer, int64](porttest.AssignCustomer)
	h := CustomerRecords(stores.NewCustomers(table))

	app := newApp()
	app.Get("/customers", h.List)
	app.Get("/customers/:id", h.Get)
	app.Post("/customers", h.Create)
	app.Put("/customers/:id", h.Update)
	app.Delete("/customers/:id", h.Delete)
	return app, table
}

func TestStoreHandler_CRUD(t *testing.T) {
	app, table := newCustomerApp(t)

	status, env := do(t, app, "POST", "/customers", `{"name":"Ayesha Khan","phone":"0300-1234567"}`)
	require.Equal(t, fiber.StatusCreated, status)
	var created domain.Customer
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, int64(1), created.ID)

	status, env = do(t, app, "GET", "/customers/1", "")
	require.Equal(t, fiber.StatusOK, status)
	var got domain.Customer
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Ayesha Khan", got.Name)

	// Partial update keeps the other fields
	status, env = do(t, app, "PUT", "/customers/1", `{"email":"ayesha@example.com"}`)
	require.Equal(t, fiber.StatusOK, status)
	var updated domain.Customer
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Ayesha Khan", updated.Name)
	assert.Equal(t, "ayesha@example.com", updated.Email)

	status, _ = do(t, app, "DELETE", "/customers/1", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, table.Rows())

	status, _ = do(t, app, "GET", "/customers/1", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestStoreHandler_ListFiltersAndPages(t *testing.T) {
	app, _ := newCustomerApp(t)
	for _, name := range []string{"Ali Raza", "Sara Ahmed", "Alina Shah"} {
		status, _ := do(t, app, "POST", "/customers", `{"name":"`+name+`"}`)
		require.Equal(t, fiber.StatusCreated, status)
	}

	status, env := do(t, app, "GET", "/customers?q=ali&limit=1", "")
	require.Equal(t, fiber.StatusOK, status)

	var page struct {
		Data []domain.Customer `json:"data"`
		Meta struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(2), page.Meta.Total)
	assert.Equal(t, 2, page.Meta.TotalPages)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Alina Shah", page.Data[0].Name)
}

func TestStoreHandler_Errors(t *testing.T) {
	app, table := newCustomerApp(t)

	status, _ := do(t, app, "GET", "/customers/abc", "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, "POST", "/customers", `{"name":`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, "PUT", "/customers/42", `{"name":"Ghost"}`)
	assert.Equal(t, fiber.StatusNotFound, status)

	table.Fail("insert", domain.ErrDuplicateEntry)
	status, _ = do(t, app, "POST", "/customers", `{"name":"Twin"}`)
	assert.Equal(t, fiber.StatusConflict, status)

	table.Fail("insert", errors.New("connection reset"))
	status, env := do(t, app, "POST", "/customers", `{"name":"Twin"}`)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.False(t, env.Success)
}

// ============================================================
// Inventory
// ============================================================

func TestInventoryHandler_PickLists(t *testing.T) {
	table := porttest.NewTable[domain.InventoryItem, int64](porttest.AssignInventory)
	h := NewInventoryHandler(stores.NewInventory(table, snapshot.NewMemory()), 30)

	app := newApp()
	app.Get("/inventory/categories", h.Categories)
	app.Post("/inventory/categories", h.AddCategory)
	app.Get("/inventory/low-stock", h.LowStock)
	app.Get("/inventory/expiring", h.Expiring)

	status, _ := do(t, app, "POST", "/inventory/categories", `{"name":"Vitamins D"}`)
	assert.Equal(t, fiber.StatusCreated, status)

	status, _ = do(t, app, "POST", "/inventory/categories", `{"name":"Vitamins D"}`)
	assert.Equal(t, fiber.StatusConflict, status)

	status, _ = do(t, app, "POST", "/inventory/categories", `{"name":"  "}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env := do(t, app, "GET", "/inventory/categories", "")
	require.Equal(t, fiber.StatusOK, status)
	var categories []string
	require.NoError(t, json.Unmarshal(env.Data, &categories))
	assert.Contains(t, categories, "Vitamins D")

	status, env = do(t, app, "GET", "/inventory/low-stock", "")
	require.Equal(t, fiber.StatusOK, status)
	var low []domain.InventoryItem
	require.NoError(t, json.Unmarshal(env.Data, &low))
	for _, item := range low {
		assert.LessOrEqual(t, item.Stock, item.ReorderLevel)
	}

	status, _ = do(t, app, "GET", "/inventory/expiring?days=-1", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

// ============================================================
// Notifications
// ============================================================

func TestNotificationHandler(t *testing.T) {
	h := NewNotificationHandler(stores.NewNotifications(snapshot.NewMemory()))

	app := newApp()
	app.Get("/notifications", h.List)
	app.Post("/notifications", h.Add)
	app.Post("/notifications/:id/read", h.MarkAsRead)
	app.Delete("/notifications/:id", h.Remove)

	status, _ := do(t, app, "POST", "/notifications", `{"type":"warning"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env := do(t, app, "POST", "/notifications", `{"type":"warning","title":"Low stock","message":"Omeprazole"}`)
	require.Equal(t, fiber.StatusCreated, status)
	var n domain.Notification
	require.NoError(t, json.Unmarshal(env.Data, &n))
	require.NotEmpty(t, n.ID)

	status, _ = do(t, app, "POST", "/notifications/"+n.ID+"/read", "")
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = do(t, app, "POST", "/notifications/missing/read", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, env = do(t, app, "GET", "/notifications", "")
	require.Equal(t, fiber.StatusOK, status)
	var list struct {
		Unread int `json:"unread"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Zero(t, list.Unread)

	status, _ = do(t, app, "DELETE", "/notifications/"+n.ID, "")
	assert.Equal(t, fiber.StatusOK, status)
}

// ============================================================
// Settings
// ============================================================

func TestSettingsHandler(t *testing.T) {
	h := NewSettingsHandler(stores.NewSettings(snapshot.NewMemory()))

	app := newApp()
	app.Put("/settings/profile", h.UpdateProfile)

	status, _ := do(t, app, "PUT", "/settings/profile", `{"session_timeout":-5}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, "PUT", "/settings/profile", `not json`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

// ============================================================
// Auth and permissions
// ============================================================

type authFixture struct {
	app      *fiber.App
	auth     *porttest.Auth
	users    *stores.UserStore
	sessions *services.SessionManager
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	staff := []domain.User{
		{ID: "u-admin", Name: "Admin", Email: "admin@rxnexus.com", Role: domain.RoleAdministrator, Status: domain.StatusActive},
		{ID: "u-pharm", Name: "Pharmacist", Email: "pharmacist@rxnexus.com", Role: domain.RolePharmacist, Status: domain.StatusActive},
	}
	auth := porttest.NewAuth()
	for _, u := range staff {
		auth.AddUser(u, "password123")
	}

	snaps := snapshot.NewMemory()
	users := stores.NewUsers(porttest.NewTable[domain.User, string](porttest.AssignUser, staff...), porttest.NewPermissions(), snaps)
	require.NoError(t, users.FetchAll(context.Background()))

	sessions := services.NewSessionManager(auth, snaps)
	resolver := services.NewPermissionResolver(sessions, users, nil)
	users.Observe(sessions.SyncUser)

	authH := NewAuthHandler(sessions, resolver)
	userH := NewUserHandler(users)

	app := newApp()
	app.Post("/auth/login", authH.Login)
	protected := app.Group("", middleware.RequireAuth(sessions))
	protected.Post("/auth/logout", authH.Logout)
	protected.Get("/auth/me", authH.Me)
	protected.Get("/users/roles", userH.Roles)
	protected.Get("/users/:id/permissions", userH.GetPermissions)
	protected.Put("/users/:id/permissions", userH.SetPermissions)
	protected.Delete("/users/:id/permissions", userH.ClearPermissions)

	return &authFixture{app: app, auth: auth, users: users, sessions: sessions}
}

func (f *authFixture) login(t *testing.T, email string) string {
	t.Helper()
	status, env := do(t, f.app, "POST", "/auth/login", `{"email":"`+email+`","password":"password123"}`)
	require.Equal(t, fiber.StatusOK, status, env.Error)
	var res LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.NotEmpty(t, res.AccessToken)
	return res.AccessToken
}

func TestAuthHandler_Login(t *testing.T) {
	f := newAuthFixture(t)

	status, _ := do(t, f.app, "POST", "/auth/login", `{"email":"","password":""}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env := do(t, f.app, "POST", "/auth/login", `{"email":"pharmacist@rxnexus.com","password":"wrong"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, services.MsgInvalidCredentials, env.Error)

	f.auth.FailWith(errors.New("dial tcp: connection refused"))
	status, _ = do(t, f.app, "POST", "/auth/login", `{"email":"pharmacist@rxnexus.com","password":"password123"}`)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	f.auth.FailWith(nil)

	token := f.login(t, "pharmacist@rxnexus.com")
	assert.True(t, f.sessions.IsAuthenticated())

	status, env = do(t, f.app, "GET", "/auth/me", "", token)
	require.Equal(t, fiber.StatusOK, status)
	var me MeResponse
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "u-pharm", me.User.ID)
	assert.True(t, me.Permissions[domain.ModuleSales][domain.ActionAdd])
	assert.False(t, me.Permissions[domain.ModuleUsers][domain.ActionDelete])

	status, _ = do(t, f.app, "POST", "/auth/logout", "", token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.False(t, f.sessions.IsAuthenticated())

	status, _ = do(t, f.app, "GET", "/auth/me", "", token)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAuthHandler_LoginReplacesOperator(t *testing.T) {
	f := newAuthFixture(t)

	first := f.login(t, "pharmacist@rxnexus.com")
	second := f.login(t, "admin@rxnexus.com")

	status, _ := do(t, f.app, "GET", "/auth/me", "", first)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = do(t, f.app, "GET", "/auth/me", "", second)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestUserHandler_Permissions(t *testing.T) {
	f := newAuthFixture(t)
	token := f.login(t, "admin@rxnexus.com")

	status, env := do(t, f.app, "GET", "/users/u-pharm/permissions", "", token)
	require.Equal(t, fiber.StatusOK, status)
	var perms PermissionsResponse
	require.NoError(t, json.Unmarshal(env.Data, &perms))
	assert.False(t, perms.Custom)

	status, _ = do(t, f.app, "PUT", "/users/u-pharm/permissions", `{"inventory":{"view":true,"edit":true}}`, token)
	require.Equal(t, fiber.StatusOK, status)

	m, ok := f.users.CustomPermissions("u-pharm")
	require.True(t, ok)
	assert.True(t, m.Allows(domain.ModuleInventory, domain.ActionEdit))
	assert.False(t, m.Allows(domain.ModuleSales, domain.ActionAdd))

	status, _ = do(t, f.app, "PUT", "/users/ghost/permissions", `{"inventory":{"view":true}}`, token)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = do(t, f.app, "PUT", "/users/u-pharm/permissions", `[]`, token)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, f.app, "DELETE", "/users/u-pharm/permissions", "", token)
	require.Equal(t, fiber.StatusOK, status)
	_, ok = f.users.CustomPermissions("u-pharm")
	assert.False(t, ok)

	status, _ = do(t, f.app, "GET", "/users/ghost/permissions", "", token)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, env = do(t, f.app, "GET", "/users/roles", "", token)
	require.Equal(t, fiber.StatusOK, status)
	var roles []RoleResponse
	require.NoError(t, json.Unmarshal(env.Data, &roles))
	assert.Len(t, roles, len(f.users.AvailableRoles()))
}

// ============================================================
// Health
// ============================================================

func TestHealthHandler(t *testing.T) {
	healthy := NewHealthHandler(func(context.Context) error { return nil }, nil)
	down := NewHealthHandler(func(context.Context) error { return errors.New("down") }, nil)

	app := newApp()
	app.Get("/up", healthy.HealthCheck)
	app.Get("/down", down.HealthCheck)

	resp, err := app.Test(httptest.NewRequest("GET", "/up", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/down", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

// ============================================================
// Prescriptions
// ============================================================

func TestPrescriptionHandler_Convert(t *testing.T) {
	erx := domain.EPrescription{ID: "erx-1", PatientName: "Bilal", DoctorName: "Dr. Noor", Status: domain.StatusPending}
	prescriptions := stores.NewPrescriptions(porttest.NewTable[domain.Prescription, string](porttest.AssignPrescription))
	ePrescriptions := stores.NewEPrescriptions(porttest.NewTable[domain.EPrescription, string](porttest.AssignEPrescription, erx), prescriptions)
	require.NoError(t, ePrescriptions.FetchAll(context.Background()))

	h := NewPrescriptionHandler(prescriptions, ePrescriptions)
	app := newApp()
	app.Post("/e-prescriptions/:id/convert", h.Convert)

	status, env := do(t, app, "POST", "/e-prescriptions/erx-1/convert", "")
	require.Equal(t, fiber.StatusCreated, status)
	var rx domain.Prescription
	require.NoError(t, json.Unmarshal(env.Data, &rx))
	assert.Equal(t, "Bilal", rx.PatientName)
	assert.Equal(t, domain.StatusActive, rx.Status)
	assert.Equal(t, 1, prescriptions.ActiveCount())

	status, _ = do(t, app, "POST", "/e-prescriptions/erx-1/convert", "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, _ = do(t, app, "POST", "/e-prescriptions/missing/convert", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestAuthHandler_ProfileChangeAppliesToSignedInOperator(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	token := f.login(t, "pharmacist@rxnexus.com")

	pharm, ok := f.users.GetByID("u-pharm")
	require.True(t, ok)
	pharm.Role = domain.RoleAdministrator
	_, err := f.users.Update(ctx, pharm)
	require.NoError(t, err)

	status, env := do(t, f.app, "GET", "/auth/me", "", token)
	require.Equal(t, fiber.StatusOK, status)
	var me MeResponse
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, domain.RoleAdministrator, me.User.Role)
	assert.True(t, me.Permissions[domain.ModuleUsers][domain.ActionDelete])

	pharm.Status = domain.StatusInactive
	_, err = f.users.Update(ctx, pharm)
	require.NoError(t, err)

	status, _ = do(t, f.app, "GET", "/auth/me", "", token)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.False(t, f.sessions.IsAuthenticated())
}

func TestUserHandler_PermissionsKeyedByRequestedUser(t *testing.T) {
	staff := []domain.User{
		{ID: "user-aaaa", Name: "First", Role: domain.RolePharmacist, Status: domain.StatusActive},
		{ID: "user-bbbb", Name: "Second", Role: domain.RolePharmacist, Status: domain.StatusActive},
	}
	users := stores.NewUsers(porttest.NewTable[domain.User, string](porttest.AssignUser, staff...), porttest.NewPermissions(), snapshot.NewMemory())
	require.NoError(t, users.FetchAll(context.Background()))

	h := NewUserHandler(users)
	app := newApp()
	app.Get("/users/:id/permissions", h.GetPermissions)
	app.Put("/users/:id/permissions", h.SetPermissions)

	status, _ := do(t, app, "PUT", "/users/user-aaaa/permissions", `{"inventory":{"view":true,"edit":true}}`)
	require.Equal(t, fiber.StatusOK, status)

	for i := 0; i < 5; i++ {
		status, _ = do(t, app, "GET", "/users/user-bbbb/permissions", "")
		require.Equal(t, fiber.StatusOK, status)
	}
	status, _ = do(t, app, "PUT", "/users/user-bbbb/permissions", `{"sales":{"view":true}}`)
	require.Equal(t, fiber.StatusOK, status)

	first, ok := users.CustomPermissions("user-aaaa")
	require.True(t, ok)
	assert.True(t, first.Allows(domain.ModuleInventory, domain.ActionEdit))
	assert.False(t, first.Allows(domain.ModuleSales, domain.ActionView))

	second, ok := users.CustomPermissions("user-bbbb")
	require.True(t, ok)
	assert.True(t, second.Allows(domain.ModuleSales, domain.ActionView))
	assert.False(t, second.Allows(domain.ModuleInventory, domain.ActionEdit))
}

// ============================================================
// Stored records stay detached from requests
// ============================================================

func newPrescriptionApp(t *testing.T, rows ...domain.Prescription) (*fiber.App, *stores.PrescriptionStore, *porttest.Table[domain.Prescription, string]) {
	t.Helper()
	table := porttest.NewTable[domain.Prescription, string](porttest.AssignPrescription, rows...)
	prescriptions := stores.NewPrescriptions(table)
	require.NoError(t, prescriptions.FetchAll(context.Background()))

	h := PrescriptionRecords(prescriptions)
	app := newApp()
	app.Get("/prescriptions/:id", h.Get)
	app.Put("/prescriptions/:id", h.Update)
	return app, prescriptions, table
}

func TestStoreHandler_UpdateKeepsPathIDAfterLaterRequests(t *testing.T) {
	app, prescriptions, _ := newPrescriptionApp(t,
		domain.Prescription{ID: "rx-1", PatientName: "Bilal", Status: domain.StatusActive},
	)

	status, _ := do(t, app, "PUT", "/prescriptions/rx-1", `{"notes":"take with food"}`)
	require.Equal(t, fiber.StatusOK, status)

	for i := 0; i < 5; i++ {
		status, _ = do(t, app, "GET", "/prescriptions/rx-9", "")
		require.Equal(t, fiber.StatusNotFound, status)
	}

	got, ok := prescriptions.GetByID("rx-1")
	require.True(t, ok)
	assert.Equal(t, "rx-1", got.ID)
	assert.Equal(t, "take with food", got.Notes)
}

func TestStoreHandler_FailedUpdateKeepsStoredRecord(t *testing.T) {
	app, prescriptions, table := newPrescriptionApp(t, domain.Prescription{
		ID:          "rx-1",
		PatientName: "Bilal",
		Status:      domain.StatusActive,
		Medications: []domain.Medication{{Name: "Amoxicillin 250mg", Dosage: "1 capsule"}},
	})

	table.Fail("update", errors.New("network unreachable"))
	status, _ := do(t, app, "PUT", "/prescriptions/rx-1", `{"medications":[{"name":"Morphine 10mg","dosage":"2 tablets"}]}`)
	require.Equal(t, fiber.StatusInternalServerError, status)

	got, ok := prescriptions.GetByID("rx-1")
	require.True(t, ok)
	require.Len(t, got.Medications, 1)
	assert.Equal(t, "Amoxicillin 250mg", got.Medications[0].Name)
	assert.Equal(t, "1 capsule", got.Medications[0].Dosage)
}

// ============================================================
// Sales
// ============================================================

type salesFixture struct {
	app       *fiber.App
	sales     *stores.SaleStore
	inventory *stores.InventoryStore
	stock     *porttest.Table[domain.InventoryItem, int64]
}

func newSalesFixture(t *testing.T) *salesFixture {
	t.Helper()
	stock := porttest.NewTable[domain.InventoryItem, int64](porttest.AssignInventory, stores.BootstrapInventory()...)
	inventory := stores.NewInventory(stock, snapshot.NewMemory())
	require.NoError(t, inventory.FetchAll(context.Background()))
	sales := stores.NewSales(porttest.NewTable[domain.Sale, string](porttest.AssignSale))

	dashboard := services.NewDashboardService(inventory, sales, nil, nil, nil, nil, nil, 30)
	h := NewSalesHandler(sales, inventory, dashboard)

	app := newApp()
	app.Post("/sales", h.Create)
	app.Get("/sales/stats", h.Stats)
	return &salesFixture{app: app, sales: sales, inventory: inventory, stock: stock}
}

func TestSalesHandler_CreateDecrementsStock(t *testing.T) {
	f := newSalesFixture(t)

	status, env := do(t, f.app, "POST", "/sales", `{"items":[{"product":"Paracetamol 500mg","quantity":5,"price":4.99}],"total_amount":24.95}`)
	require.Equal(t, fiber.StatusCreated, status, env.Error)
	assert.Equal(t, "Sale recorded successfully", env.Message)

	var res struct {
		Sale      domain.Sale            `json:"sale"`
		Inventory []domain.InventoryItem `json:"inventory"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, domain.DefaultPaymentMethod, res.Sale.PaymentMethod)
	require.Len(t, res.Inventory, 1)
	assert.Equal(t, 160, res.Inventory[0].Stock)

	item, ok := f.inventory.GetByID(1)
	require.True(t, ok)
	assert.Equal(t, 160, item.Stock)
	assert.Equal(t, 1, f.sales.Len())

	status, env = do(t, f.app, "GET", "/sales/stats", "")
	require.Equal(t, fiber.StatusOK, status)
	var stats services.SalesStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 1, stats.TotalSales)
}

func TestSalesHandler_CreateRejectsBadInput(t *testing.T) {
	f := newSalesFixture(t)

	status, _ := do(t, f.app, "POST", "/sales", `{"items":[]}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, f.app, "POST", "/sales", `{"items":`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	assert.Zero(t, f.sales.Len())
}

func TestSalesHandler_SaleStandsWhenStockUpdateFails(t *testing.T) {
	f := newSalesFixture(t)
	f.stock.Fail("update", errors.New("network unreachable"))

	status, env := do(t, f.app, "POST", "/sales", `{"items":[{"product":"Paracetamol 500mg","quantity":5,"price":4.99}]}`)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "Sale recorded, but some stock levels could not be updated", env.Message)

	assert.Equal(t, 1, f.sales.Len())
	item, ok := f.inventory.GetByID(1)
	require.True(t, ok)
	assert.Equal(t, 165, item.Stock)
}

// ============================================================
// Sync and dashboard
// ============================================================

func TestSyncHandler(t *testing.T) {
	customerTable := porttest.NewTable[domain.Customer, int64](porttest.AssignCustomer, domain.Customer{ID: 1, Name: "Farooq Ahmad"})
	customers := stores.NewCustomers(customerTable)
	returns := stores.NewReturns(porttest.NewTable[domain.Return, string](porttest.AssignReturn))
	initializer := services.NewStoreInitializer(time.Second, customers, returns)

	h := NewSyncHandler(initializer)
	app := newApp()
	app.Post("/sync", h.Refresh)
	app.Get("/sync/report", h.LastReport)

	status, env := do(t, app, "GET", "/sync/report", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "No sync has run yet", env.Error)

	status, env = do(t, app, "POST", "/sync", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Sync finished", env.Message)
	assert.Equal(t, 1, customers.Len())

	customerTable.Fail("select", errors.New("network unreachable"))
	status, env = do(t, app, "POST", "/sync", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Sync finished with failures", env.Message)
	var report services.Report
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, []string{"customers"}, report.Failed())
	assert.Equal(t, 1, customers.Len())
}

func TestDashboardHandler(t *testing.T) {
	inventory := stores.NewInventory(porttest.NewTable[domain.InventoryItem, int64](porttest.AssignInventory), snapshot.NewMemory())
	customers := stores.NewCustomers(porttest.NewTable[domain.Customer, int64](porttest.AssignCustomer))
	prescriptions := stores.NewPrescriptions(porttest.NewTable[domain.Prescription, string](porttest.AssignPrescription))
	ePrescriptions := stores.NewEPrescriptions(porttest.NewTable[domain.EPrescription, string](porttest.AssignEPrescription), prescriptions)
	returns := stores.NewReturns(porttest.NewTable[domain.Return, string](porttest.AssignReturn))
	sales := stores.NewSales(porttest.NewTable[domain.Sale, string](porttest.AssignSale))
	notifications := stores.NewNotifications(snapshot.NewMemory())
	dashboard := services.NewDashboardService(inventory, sales, customers, prescriptions, ePrescriptions, returns, notifications, 30)

	ctx := context.Background()
	_, err := returns.Create(ctx, domain.Return{Product: "Cetirizine 10mg", Customer: "Bilal", Quantity: 1})
	require.NoError(t, err)
	_, err = returns.Create(ctx, domain.Return{Product: "Ibuprofen 400mg", Customer: "Noor", Quantity: 2, Status: domain.StatusProcessed})
	require.NoError(t, err)
	_, err = sales.Create(ctx, domain.Sale{Items: []domain.SaleLine{{Product: "Paracetamol 500mg", Quantity: 2, Price: 4.99}}, TotalAmount: 9.98})
	require.NoError(t, err)

	h := NewDashboardHandler(dashboard, returns)
	app := newApp()
	app.Get("/dashboard", h.Overview)
	app.Get("/returns/pending-count", h.PendingReturns)

	status, env := do(t, app, "GET", "/dashboard", "")
	require.Equal(t, fiber.StatusOK, status)
	var data services.DashboardData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, len(stores.BootstrapInventory()), data.InventoryItems)
	assert.Equal(t, 1, data.LowStock)
	assert.Equal(t, 1, data.PendingReturns)
	require.Len(t, data.RecentSales, 1)
	assert.Equal(t, 1, data.RecentSales[0].Items)

	status, env = do(t, app, "GET", "/returns/pending-count", "")
	require.Equal(t, fiber.StatusOK, status)
	var count struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &count))
	assert.Equal(t, 1, count.Count)
}
