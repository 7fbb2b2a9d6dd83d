package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurant-admin-api/internal/application/tenant"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/authz"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
	apphttp "github.com/jhoicas/restaurant-admin-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/restaurant-admin-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "restaurant-admin-test"
	testExpMin    = 60

	ownerID     = "00000000-0000-0000-0000-000000000001"
	managerID   = "00000000-0000-0000-0000-000000000002"
	orphanID    = "00000000-0000-0000-0000-000000000003"
	inactiveID  = "00000000-0000-0000-0000-000000000004"
	testTenant  = "00000000-0000-0000-0000-0000000000aa"
	otherTenant = "00000000-0000-0000-0000-0000000000bb"
)

type memUsers struct {
	users map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type memTenants struct {
	tenants map[string]*entity.Tenant
}

func (m *memTenants) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	t, ok := m.tenants[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

type memOrders struct {
	mu     sync.Mutex
	orders []*entity.Order
}

func (m *memOrders) Create(_ context.Context, o *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = fmt.Sprintf("ord-%d", len(m.orders)+1)
	cp := *o
	m.orders = append(m.orders, &cp)
	return nil
}

func (m *memOrders) GetByID(_ context.Context, tenantID, id string) (*entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == id && o.TenantID == tenantID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func newUsers() *memUsers {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &memUsers{users: map[string]*entity.User{
		ownerID:    {ID: ownerID, TenantID: testTenant, Email: "owner@example.com", Role: entity.RoleOwner, Status: "active", CreatedAt: created},
		managerID:  {ID: managerID, TenantID: testTenant, Email: "manager@example.com", Role: entity.RoleManager, Status: "active", CreatedAt: created},
		orphanID:   {ID: orphanID, Email: "orphan@example.com", Role: entity.RoleOwner, Status: "active", CreatedAt: created},
		inactiveID: {ID: inactiveID, TenantID: testTenant, Email: "off@example.com", Role: entity.RoleOwner, Status: "inactive", CreatedAt: created},
	}}
}

func newTenants() *memTenants {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &memTenants{tenants: map[string]*entity.Tenant{
		testTenant:  {ID: testTenant, Name: "La Esquina", Status: "active", CreatedAt: created},
		otherTenant: {ID: otherTenant, Name: "El Otro", Status: "active", CreatedAt: created},
	}}
}

func newResolver() *tenant.Resolver {
	return tenant.NewResolver(newUsers(), newTenants(), authz.Default(), zerolog.Nop())
}

// bearer genera el header Authorization para userID con el tenant y rol indicados.
func bearer(t *testing.T, userID, tenantID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, tenantID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func ownerBearer(t *testing.T) string {
	return bearer(t, ownerID, testTenant, entity.RoleOwner)
}

func managerBearer(t *testing.T) string {
	return bearer(t, managerID, testTenant, entity.RoleManager)
}

// doJSON lanza la petición y devuelve la respuesta.
func doJSON(t *testing.T, app *fiber.App, method, path, body string, headers map[string]string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func newApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
}
