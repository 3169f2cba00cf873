package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agendafacil/backend/internal/audit"
	"github.com/agendafacil/backend/internal/catalog"
	"github.com/agendafacil/backend/internal/config"
	"github.com/agendafacil/backend/internal/middleware"
	"github.com/agendafacil/backend/internal/models"
	"github.com/agendafacil/backend/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T, dispatcher *audit.Dispatcher) *testServer {
	t.Helper()
	return newServer(t, Deps{Audit: dispatcher})
}

// newServer fills the database, config and catalog of d and registers the
// routes on a fresh engine.
func newServer(t *testing.T, d Deps) *testServer {
	t.Helper()

	d.DB = testutil.NewDB(t)
	d.Config = &config.Config{
		JWTSecret:   "test-secret",
		JWTTTL:      time.Hour,
		CORSOrigins: []string{"*"},
	}
	d.Catalog = catalog.NewMemoryStore()

	r := gin.New()
	RegisterRoutes(r, d)
	return &testServer{t: t, router: r, db: d.DB}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			s.t.Fatal(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// expect asserts the status and decodes the body into out when given.
func (s *testServer) expect(w *httptest.ResponseRecorder, status int, out any) {
	s.t.Helper()
	if w.Code != status {
		s.t.Fatalf("status = %d, want %d, body = %s", w.Code, status, w.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			s.t.Fatalf("decode %s: %v", w.Body.String(), err)
		}
	}
}

func (s *testServer) register(username, role string) (token, id string) {
	s.t.Helper()
	var res struct {
		Token   string `json:"token"`
		Account struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"account"`
	}
	s.expect(s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
		"role":     role,
	}), http.StatusCreated, &res)
	if res.Token == "" {
		s.t.Fatal("register returned no token")
	}
	return res.Token, res.Account.ID
}

type idBody struct {
	ID string `json:"id"`
}

type errBody struct {
	Code string `json:"error_code"`
}

// --------------------------------------------------
// Public surface
// --------------------------------------------------

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/health/", "", nil)
	s.expect(w, http.StatusOK, nil)
	if w.Body.String() != `{"project":"AgendaFacil","status":"ok"}` {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestPublicCatalog(t *testing.T) {
	s := newTestServer(t, nil)

	var created struct {
		ID              int     `json:"id"`
		Name            string  `json:"name"`
		DurationMinutes int     `json:"duration_minutes"`
		Price           float64 `json:"price"`
	}
	s.expect(s.do(http.MethodPost, "/services/", "", `{"name":"Tinte","duration_minutes":45,"price":300}`),
		http.StatusCreated, &created)
	if created.ID != 3 || created.Name != "Tinte" || created.DurationMinutes != 45 || created.Price != 300 {
		t.Fatalf("created = %+v", created)
	}

	var list []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	s.expect(s.do(http.MethodGet, "/services/", "", nil), http.StatusOK, &list)
	if len(list) != 3 || list[2].ID != 3 || list[0].Name != "Corte" {
		t.Fatalf("list = %+v", list)
	}
}

func TestPublicCatalogMissingFields(t *testing.T) {
	s := newTestServer(t, nil)

	for _, body := range []string{`{"name":"X"}`, ``, `not json`} {
		var res map[string]string
		s.expect(s.do(http.MethodPost, "/services/", "", body), http.StatusBadRequest, &res)
		if res["error"] != "Campos requeridos: name, duration_minutes, price" {
			t.Fatalf("body %q: error = %q", body, res["error"])
		}
	}

	var list []any
	s.expect(s.do(http.MethodGet, "/services/", "", nil), http.StatusOK, &list)
	if len(list) != 2 {
		t.Fatalf("failed posts must not add items, got %d", len(list))
	}
}

// --------------------------------------------------
// Accounts
// --------------------------------------------------

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t, nil)
	s.register("maria", "")

	var login struct {
		Token   string `json:"token"`
		Account struct {
			Role string `json:"role"`
		} `json:"account"`
	}
	s.expect(s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "maria", "password": "secret123",
	}), http.StatusOK, &login)
	if login.Account.Role != "CLIENT" {
		t.Fatalf("default role = %q", login.Account.Role)
	}

	var me struct {
		Account struct {
			Username string `json:"username"`
		} `json:"account"`
	}
	s.expect(s.do(http.MethodGet, "/api/me", login.Token, nil), http.StatusOK, &me)
	if me.Account.Username != "maria" {
		t.Fatalf("me = %+v", me)
	}

	var e errBody
	s.expect(s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "maria", "password": "wrong-pass",
	}), http.StatusUnauthorized, &e)

	s.expect(s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "maria", "email": "maria2@example.com", "password": "secret123",
	}), http.StatusConflict, &e)
	if e.Code != "account_exists" {
		t.Fatalf("code = %s", e.Code)
	}
}

func TestRegisterRejectsAdminAndBadInput(t *testing.T) {
	s := newTestServer(t, nil)

	var e errBody
	s.expect(s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "root", "email": "root@example.com", "password": "secret123", "role": "ADMIN",
	}), http.StatusForbidden, &e)
	if e.Code != "role_not_allowed" {
		t.Fatalf("code = %s", e.Code)
	}

	s.expect(s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "ab", "email": "nope", "password": "1",
	}), http.StatusBadRequest, &e)
	if e.Code != "invalid_request" {
		t.Fatalf("code = %s", e.Code)
	}

	s.expect(s.do(http.MethodGet, "/api/me", "", nil), http.StatusUnauthorized, nil)
}

// --------------------------------------------------
// Booking flow
// --------------------------------------------------

func TestBookingFlow(t *testing.T) {
	s := newTestServer(t, nil)

	ownerToken, _ := s.register("barbearia", "BUSINESS")
	clientToken, clientID := s.register("cliente", "CLIENT")
	strangerToken, _ := s.register("outro", "CLIENT")

	// Clients cannot open a business.
	s.expect(s.do(http.MethodPost, "/api/businesses", clientToken, map[string]string{
		"name": "X", "category": "barber",
	}), http.StatusForbidden, nil)

	var business idBody
	s.expect(s.do(http.MethodPost, "/api/businesses", ownerToken, map[string]string{
		"name": "Barbearia Central", "category": "barber", "phone": "11999990000",
	}), http.StatusCreated, &business)

	var corte, barba idBody
	s.expect(s.do(http.MethodPost, "/api/businesses/"+business.ID+"/services", ownerToken, map[string]any{
		"name": "Corte", "duration_min": 30, "price": "150.00",
	}), http.StatusCreated, &corte)
	s.expect(s.do(http.MethodPost, "/api/businesses/"+business.ID+"/services", ownerToken, map[string]any{
		"name": "Barba", "duration_min": 20, "price": "50.00",
	}), http.StatusCreated, &barba)

	var e errBody
	s.expect(s.do(http.MethodPost, "/api/businesses/"+business.ID+"/services", ownerToken, map[string]any{
		"name": "Corte", "duration_min": 15, "price": "10.00",
	}), http.StatusConflict, &e)
	if e.Code != "service_name_taken" {
		t.Fatalf("code = %s", e.Code)
	}

	s.expect(s.do(http.MethodPost, "/api/businesses/"+business.ID+"/services", clientToken, map[string]any{
		"name": "Pirata", "duration_min": 15, "price": "10.00",
	}), http.StatusForbidden, nil)

	s.expect(s.do(http.MethodPost, "/api/businesses/"+business.ID+"/availability", ownerToken, map[string]any{
		"day_of_week": 4, "start_time": "09:00", "end_time": "18:00",
	}), http.StatusCreated, nil)
	s.expect(s.do(http.MethodPost, "/api/businesses/"+business.ID+"/availability", ownerToken, map[string]any{
		"day_of_week": 4, "start_time": "18:00", "end_time": "09:00",
	}), http.StatusBadRequest, nil)

	// Book with the end derived from service durations.
	var booked struct {
		ID       string    `json:"id"`
		Status   string    `json:"status"`
		ClientID string    `json:"client_id"`
		EndAt    time.Time `json:"end_at"`
		Total    string    `json:"total"`
		Services []struct {
			UnitPrice string `json:"unit_price"`
		} `json:"services"`
	}
	s.expect(s.do(http.MethodPost, "/api/businesses/"+business.ID+"/appointments", clientToken, map[string]any{
		"start_at": "2025-05-01T10:00:00Z",
		"services": []map[string]any{{"service_id": corte.ID}, {"service_id": barba.ID}},
	}), http.StatusCreated, &booked)
	if booked.Status != "PENDING" || booked.ClientID != clientID {
		t.Fatalf("booked = %+v", booked)
	}
	if !booked.EndAt.Equal(time.Date(2025, 5, 1, 10, 50, 0, 0, time.UTC)) {
		t.Fatalf("end_at = %v", booked.EndAt)
	}
	if !decimal.RequireFromString(booked.Total).Equal(decimal.NewFromInt(200)) {
		t.Fatalf("total = %s", booked.Total)
	}

	s.expect(s.do(http.MethodPost, "/api/businesses/"+business.ID+"/appointments", clientToken, map[string]any{
		"start_at": "2025-05-01T10:00:00Z",
		"end_at":   "2025-05-01T09:00:00Z",
		"services": []map[string]any{{"service_id": corte.ID}},
	}), http.StatusBadRequest, &e)
	if e.Code != "invalid_time_range" {
		t.Fatalf("code = %s", e.Code)
	}

	apPath := "/api/appointments/" + booked.ID

	// Visibility.
	s.expect(s.do(http.MethodGet, apPath, clientToken, nil), http.StatusOK, nil)
	s.expect(s.do(http.MethodGet, apPath, ownerToken, nil), http.StatusOK, nil)
	s.expect(s.do(http.MethodGet, apPath, strangerToken, nil), http.StatusForbidden, nil)

	// A price change does not touch the booked price.
	s.expect(s.do(http.MethodPatch, "/api/services/"+corte.ID, ownerToken, map[string]any{
		"price": "200.00",
	}), http.StatusOK, nil)
	s.expect(s.do(http.MethodGet, apPath, clientToken, nil), http.StatusOK, &booked)
	if !decimal.RequireFromString(booked.Total).Equal(decimal.NewFromInt(200)) {
		t.Fatalf("total after price change = %s", booked.Total)
	}

	// Day listing for the owner.
	var day struct {
		Total int `json:"total"`
	}
	s.expect(s.do(http.MethodGet, "/api/businesses/"+business.ID+"/appointments?date=2025-05-01", ownerToken, nil),
		http.StatusOK, &day)
	if day.Total != 1 {
		t.Fatalf("day total = %d", day.Total)
	}
	s.expect(s.do(http.MethodGet, "/api/businesses/"+business.ID+"/appointments?date=2025-05-02", ownerToken, nil),
		http.StatusOK, &day)
	if day.Total != 0 {
		t.Fatalf("next day total = %d", day.Total)
	}
	s.expect(s.do(http.MethodGet, "/api/businesses/"+business.ID+"/appointments?date=01/05/2025", ownerToken, nil),
		http.StatusBadRequest, nil)
	s.expect(s.do(http.MethodGet, "/api/businesses/"+business.ID+"/appointments", clientToken, nil),
		http.StatusForbidden, nil)

	var mine struct {
		Total int `json:"total"`
	}
	s.expect(s.do(http.MethodGet, "/api/me/appointments", clientToken, nil), http.StatusOK, &mine)
	if mine.Total != 1 {
		t.Fatalf("my appointments = %d", mine.Total)
	}

	// Services of the appointment.
	s.expect(s.do(http.MethodDelete, apPath+"/services/"+barba.ID, clientToken, nil), http.StatusOK, nil)
	s.expect(s.do(http.MethodDelete, apPath+"/services/"+corte.ID, clientToken, nil), http.StatusBadRequest, &e)
	if e.Code != "services_required" {
		t.Fatalf("code = %s", e.Code)
	}

	// Status: the client may not confirm; the owner may.
	s.expect(s.do(http.MethodPatch, apPath+"/status", clientToken, map[string]string{"status": "CONFIRMED"}),
		http.StatusForbidden, nil)
	s.expect(s.do(http.MethodPatch, apPath+"/status", ownerToken, map[string]string{"status": "CONFIRMED"}),
		http.StatusOK, nil)
	s.expect(s.do(http.MethodPatch, apPath+"/status", ownerToken, map[string]string{"status": "PENDING"}),
		http.StatusBadRequest, &e)
	if e.Code != "invalid_status_transition" {
		t.Fatalf("code = %s", e.Code)
	}
	s.expect(s.do(http.MethodPatch, apPath+"/status", clientToken, map[string]string{"status": "CANCELLED"}),
		http.StatusOK, &booked)
	if booked.Status != "CANCELLED" {
		t.Fatalf("status = %s", booked.Status)
	}

	// Deletes follow the protect and cascade rules.
	s.expect(s.do(http.MethodDelete, "/api/services/"+corte.ID, ownerToken, nil), http.StatusConflict, &e)
	if e.Code != "service_in_use" {
		t.Fatalf("code = %s", e.Code)
	}
	s.expect(s.do(http.MethodDelete, "/api/businesses/"+business.ID, ownerToken, nil), http.StatusConflict, &e)
	if e.Code != "business_has_appointments" {
		t.Fatalf("code = %s", e.Code)
	}

	s.expect(s.do(http.MethodDelete, apPath, clientToken, nil), http.StatusForbidden, nil)
	s.expect(s.do(http.MethodDelete, apPath, ownerToken, nil), http.StatusNoContent, nil)
	s.expect(s.do(http.MethodDelete, "/api/businesses/"+business.ID, ownerToken, nil), http.StatusNoContent, nil)
	s.expect(s.do(http.MethodGet, "/api/businesses/"+business.ID+"/services", ownerToken, nil), http.StatusNotFound, nil)
	s.expect(s.do(http.MethodGet, "/api/businesses/"+business.ID, ownerToken, nil), http.StatusNotFound, nil)
}

func TestInvalidIDs(t *testing.T) {
	s := newTestServer(t, nil)
	token, _ := s.register("cliente", "CLIENT")

	var e errBody
	s.expect(s.do(http.MethodGet, "/api/businesses/not-a-uuid", token, nil), http.StatusBadRequest, &e)
	if e.Code != "invalid_id" {
		t.Fatalf("code = %s", e.Code)
	}
}

func TestAuditLogsEndpoint(t *testing.T) {
	db := testutil.NewDB(t)
	dispatcher := audit.NewDispatcher(audit.New(db))

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:      db,
		Config:  &config.Config{JWTSecret: "test-secret", JWTTTL: time.Hour, CORSOrigins: []string{"*"}},
		Catalog: catalog.NewMemoryStore(),
		Audit:   dispatcher,
	})
	s := &testServer{t: t, router: r}

	ownerToken, _ := s.register("dono", "BUSINESS")
	clientToken, _ := s.register("cliente", "CLIENT")

	var business idBody
	s.expect(s.do(http.MethodPost, "/api/businesses", ownerToken, map[string]string{
		"name": "Salão", "category": "salon",
	}), http.StatusCreated, &business)
	s.expect(s.do(http.MethodPost, "/api/businesses/"+business.ID+"/services", ownerToken, map[string]any{
		"name": "Escova", "duration_min": 40, "price": "80.00",
	}), http.StatusCreated, nil)

	if err := dispatcher.Close(context.Background()); err != nil {
		t.Fatal(err)
	}

	var res struct {
		Total int64 `json:"total"`
		Logs  []struct {
			Action string `json:"action"`
		} `json:"logs"`
	}
	path := "/api/businesses/" + business.ID + "/audit-logs"
	s.expect(s.do(http.MethodGet, path, ownerToken, nil), http.StatusOK, &res)
	if res.Total != 2 {
		t.Fatalf("total = %d, logs = %+v", res.Total, res.Logs)
	}

	s.expect(s.do(http.MethodGet, path+"?action=service_created", ownerToken, nil), http.StatusOK, &res)
	if res.Total != 1 || res.Logs[0].Action != "service_created" {
		t.Fatalf("filtered = %+v", res)
	}

	s.expect(s.do(http.MethodGet, path, clientToken, nil), http.StatusForbidden, nil)
}

// --------------------------------------------------
// Cross-cutting
// --------------------------------------------------

func TestHealthIgnoresRateLimit(t *testing.T) {
	s := newServer(t, Deps{Limiter: middleware.NewMemoryLimiter(1, time.Minute)})

	for i := 0; i < 5; i++ {
		s.expect(s.do(http.MethodGet, "/health/", "", nil), http.StatusOK, nil)
	}

	s.expect(s.do(http.MethodGet, "/services/", "", nil), http.StatusOK, nil)
	s.expect(s.do(http.MethodGet, "/services/", "", nil), http.StatusTooManyRequests, nil)
}

func TestRoleChangesApplyToIssuedTokens(t *testing.T) {
	s := newTestServer(t, nil)

	rootToken, rootID := s.register("root", "")
	otherToken, otherID := s.register("other", "")

	promote := func(id string) {
		t.Helper()
		if err := s.db.Model(&models.UserProfile{}).
			Where("account_id = ?", id).
			Update("role", "ADMIN").Error; err != nil {
			t.Fatal(err)
		}
	}
	promote(rootID)
	promote(otherID)

	// Both tokens were issued with the CLIENT claim.
	missing := "/api/admin/accounts/" + uuid.NewString()
	s.expect(s.do(http.MethodDelete, missing, rootToken, nil), http.StatusNotFound, nil)
	s.expect(s.do(http.MethodDelete, missing, otherToken, nil), http.StatusNotFound, nil)

	var profile struct {
		Role string `json:"role"`
	}
	s.expect(s.do(http.MethodPatch, "/api/admin/accounts/"+otherID+"/role", rootToken,
		map[string]string{"role": "CLIENT"}), http.StatusOK, &profile)
	if profile.Role != "CLIENT" {
		t.Fatalf("profile = %+v", profile)
	}

	var e errBody
	s.expect(s.do(http.MethodDelete, missing, otherToken, nil), http.StatusForbidden, &e)
	if e.Code != "forbidden" {
		t.Fatalf("code = %s", e.Code)
	}
	s.expect(s.do(http.MethodPatch, "/api/admin/accounts/"+rootID+"/role", otherToken,
		map[string]string{"role": "CLIENT"}), http.StatusForbidden, nil)
}

func TestDeletedAccountTokenRejected(t *testing.T) {
	s := newTestServer(t, nil)

	adminToken, adminID := s.register("root", "")
	if err := s.db.Model(&models.UserProfile{}).
		Where("account_id = ?", adminID).
		Update("role", "ADMIN").Error; err != nil {
		t.Fatal(err)
	}
	token, id := s.register("maria", "")

	s.expect(s.do(http.MethodDelete, "/api/admin/accounts/"+id, adminToken, nil), http.StatusNoContent, nil)

	var e errBody
	s.expect(s.do(http.MethodGet, "/api/me", token, nil), http.StatusUnauthorized, &e)
	if e.Code != "account_not_found" {
		t.Fatalf("code = %s", e.Code)
	}
}

func TestRegisterPasswordTooLong(t *testing.T) {
	s := newTestServer(t, nil)

	var e errBody
	s.expect(s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "maria", "email": "maria@example.com", "password": strings.Repeat("x", 73),
	}), http.StatusBadRequest, &e)
	if e.Code != "invalid_request" {
		t.Fatalf("code = %s", e.Code)
	}

	s.expect(s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "maria", "email": "maria@example.com", "password": strings.Repeat("é", 40),
	}), http.StatusBadRequest, &e)
	if e.Code != "password_too_long" {
		t.Fatalf("code = %s", e.Code)
	}
}
