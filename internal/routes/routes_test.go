package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/shift-scheduler/internal/config"
	"github.com/BruksfildServices01/shift-scheduler/internal/db/dbtest"
	"github.com/BruksfildServices01/shift-scheduler/internal/notify"
)

type memQueue struct {
	msgs []notify.Message
}

func (q *memQueue) Dispatch(m notify.Message) { q.msgs = append(q.msgs, m) }

type envelope struct {
	Data       map[string]any `json:"data"`
	Message    string         `json:"message"`
	StatusCode int            `json:"statusCode"`
	Success    bool           `json:"success"`
}

type api struct {
	t       *testing.T
	router  *gin.Engine
	queue   *memQueue
	storage *memStorage
	token   string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	queue := &memQueue{}
	storage := &memStorage{objects: map[string][]byte{}}
	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:      dbtest.Open(t),
		Config:  &config.Config{JWTSecret: "test-secret"},
		Mailer:  notify.LogMailer{},
		Mails:   queue,
		Marker:  notify.NewMemoryMarker(),
		Storage: storage,
	})

	return &api{t: t, router: r, queue: queue, storage: storage}
}

func (a *api) do(method, path string, body any) (int, envelope) {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			a.t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		a.t.Fatalf("%s %s: invalid envelope %q: %v", method, path, w.Body.String(), err)
	}
	if env.StatusCode != w.Code {
		a.t.Fatalf("%s %s: envelope status %d != http %d", method, path, env.StatusCode, w.Code)
	}
	return w.Code, env
}

func (a *api) mustOK(method, path string, body any) envelope {
	a.t.Helper()
	code, env := a.do(method, path, body)
	if code != http.StatusOK || !env.Success {
		a.t.Fatalf("%s %s: expected success, got %d %+v", method, path, code, env)
	}
	return env
}

func (a *api) login() uint {
	a.t.Helper()
	env := a.mustOK(http.MethodPost, "/register", map[string]any{
		"name":     "Laura",
		"email":    "laura@example.com",
		"password": "secret123",
	})
	a.token = env.Data["token"].(string)
	return idOf(a.t, env.Data["user"])
}

func idOf(t *testing.T, v any) uint {
	t.Helper()
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", v)
	}
	return uint(m["id"].(float64))
}

func errorCode(env envelope) string {
	code, _ := env.Data["error_code"].(string)
	return code
}

func TestAuth_RegisterLoginAccount(t *testing.T) {
	a := newAPI(t)

	code, env := a.do(http.MethodGet, "/getaccount", nil)
	if code != http.StatusUnauthorized || env.Success {
		t.Fatalf("expected 401 without token, got %d", code)
	}

	a.login()

	env = a.mustOK(http.MethodGet, "/getaccount", nil)
	user := env.Data["user"].(map[string]any)
	if user["email"] != "laura@example.com" {
		t.Fatalf("unexpected account %v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash must not be serialized")
	}

	a.token = ""
	code, _ = a.do(http.MethodPost, "/login", map[string]any{"email": "laura@example.com", "password": "wrong"})
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", code)
	}
	env = a.mustOK(http.MethodPost, "/login", map[string]any{"email": "laura@example.com", "password": "secret123"})
	if env.Data["token"] == "" {
		t.Fatalf("expected token")
	}

	code, env = a.do(http.MethodPost, "/register", map[string]any{
		"name": "Otra", "email": "laura@example.com", "password": "secret123",
	})
	if code != http.StatusBadRequest || errorCode(env) != "user_email_duplicated" {
		t.Fatalf("expected duplicated email, got %d %+v", code, env)
	}
}

func TestClients_SoftDelete(t *testing.T) {
	a := newAPI(t)
	a.login()

	env := a.mustOK(http.MethodPost, "/clients/create", map[string]any{
		"name": "Ana", "email": "ana@example.com", "cod_area": "011", "phone": "4555-1234",
	})
	clientID := idOf(t, env.Data["client"])

	code, env := a.do(http.MethodPost, "/clients/create", map[string]any{
		"name": "Ana bis", "email": "ANA@example.com", "cod_area": "11", "phone": "45551235",
	})
	if code != http.StatusBadRequest || errorCode(env) != "client_email_duplicated" {
		t.Fatalf("expected duplicated email, got %d %+v", code, env)
	}
	if env.Message != "Este correo electrónico ya está registrado" {
		t.Fatalf("unexpected message %q", env.Message)
	}

	a.mustOK(http.MethodPost, "/clients/delete", map[string]any{"id": clientID})
	// deleting twice is harmless
	a.mustOK(http.MethodPost, "/clients/delete", map[string]any{"id": clientID})

	env = a.mustOK(http.MethodGet, "/clients", nil)
	if clients := env.Data["clients"].([]any); len(clients) != 0 {
		t.Fatalf("deleted client must be hidden, got %v", clients)
	}

	env = a.mustOK(http.MethodPost, "/clients/update", map[string]any{
		"id": clientID, "name": "Ana María", "email": "ana@example.com", "cod_area": "11", "phone": "45551234",
	})
	client := env.Data["client"].(map[string]any)
	if client["name"] != "Ana María" || client["status"].(float64) != 1 {
		t.Fatalf("update must work on deleted clients and keep status, got %v", client)
	}

	code, env = a.do(http.MethodPost, "/clients/update", map[string]any{
		"id": 999, "name": "X", "cod_area": "11", "phone": "45551234",
	})
	if code != http.StatusNotFound || env.Success {
		t.Fatalf("expected 404, got %d", code)
	}
}

func TestClients_SoftDeleteKeepsShifts(t *testing.T) {
	a := newAPI(t)
	userID := a.login()

	env := a.mustOK(http.MethodPost, "/services/create", map[string]any{"name": "Corte", "amount": 1500})
	serviceID := idOf(t, env.Data["service"])

	env = a.mustOK(http.MethodPost, "/clients/create", map[string]any{
		"name": "Ana", "email": "ana@example.com", "cod_area": "11", "phone": "45551234",
	})
	clientID := idOf(t, env.Data["client"])

	env = a.mustOK(http.MethodPost, "/shifts/create", map[string]any{
		"service_id": serviceID,
		"client_id":  clientID,
		"user_id":    userID,
		"date_shift": "2024-03-10T13:00:00Z",
		"price":      1500,
	})
	shiftID := idOf(t, env.Data["shift"])

	code, env := a.do(http.MethodPost, "/clients/delete", map[string]any{"id": clientID})
	if code != http.StatusOK || !env.Success {
		t.Fatalf("deleting a client with shifts must succeed, got %d %+v", code, env)
	}

	env = a.mustOK(http.MethodGet, fmt.Sprintf("/shifts?user_id=%d", userID), nil)
	shifts := env.Data["shifts"].([]any)
	if len(shifts) != 1 || idOf(t, shifts[0]) != shiftID {
		t.Fatalf("shift must survive the client deletion, got %v", shifts)
	}
	if got := uint(shifts[0].(map[string]any)["client_id"].(float64)); got != clientID {
		t.Fatalf("shift must keep its client reference, got %d", got)
	}

	env = a.mustOK(http.MethodGet, "/clients", nil)
	if clients := env.Data["clients"].([]any); len(clients) != 0 {
		t.Fatalf("deleted client must be hidden, got %v", clients)
	}
}

func TestShifts_ConflictReportAndServiceIntegrity(t *testing.T) {
	a := newAPI(t)
	userID := a.login()

	env := a.mustOK(http.MethodPost, "/services/create", map[string]any{"name": "Corte", "amount": 1500})
	serviceID := idOf(t, env.Data["service"])

	env = a.mustOK(http.MethodPost, "/clients/create", map[string]any{
		"name": "Ana", "email": "ana@example.com", "cod_area": "11", "phone": "45551234",
	})
	clientID := idOf(t, env.Data["client"])

	shift := map[string]any{
		"service_id": serviceID,
		"client_id":  clientID,
		"user_id":    userID,
		"date_shift": "2024-03-10T13:00:00Z",
		"price":      1500,
	}
	env = a.mustOK(http.MethodPost, "/shifts/create", shift)
	shiftID := idOf(t, env.Data["shift"])
	if env.Data["serviceName"] != "Corte" {
		t.Fatalf("unexpected serviceName %v", env.Data["serviceName"])
	}
	if len(a.queue.msgs) != 1 || a.queue.msgs[0].To != "ana@example.com" {
		t.Fatalf("expected one confirmation mail, got %+v", a.queue.msgs)
	}

	shift["date_shift"] = "2024-03-10T13:15:00Z"
	code, env := a.do(http.MethodPost, "/shifts/create", shift)
	if code != http.StatusBadRequest || errorCode(env) != "time_conflict" {
		t.Fatalf("expected time_conflict, got %d %+v", code, env)
	}

	env = a.mustOK(http.MethodGet, "/shifts?user_id=1", nil)
	if shifts := env.Data["shifts"].([]any); len(shifts) != 1 {
		t.Fatalf("expected 1 shift, got %d", len(shifts))
	}

	a.mustOK(http.MethodPost, "/shifts/updateStatus", map[string]any{"id": shiftID, "status": 1, "price": 2000})

	env = a.mustOK(http.MethodGet, "/shifts/reports?year=2024", nil)
	totals := env.Data["totalPrices"].(map[string]any)
	if len(totals) != 12 || totals["marzo"].(float64) != 2000 {
		t.Fatalf("unexpected report %v", env.Data)
	}

	code, env = a.do(http.MethodPost, "/services/delete", map[string]any{"id": serviceID})
	if code != http.StatusBadRequest || errorCode(env) != "service_has_shifts" {
		t.Fatalf("expected integrity error, got %d %+v", code, env)
	}

	a.mustOK(http.MethodPost, "/shifts/delete", map[string]any{"id": shiftID})
	a.mustOK(http.MethodPost, "/services/delete", map[string]any{"id": serviceID})

	code, _ = a.do(http.MethodPost, "/shifts/delete", map[string]any{"id": shiftID})
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 on missing shift, got %d", code)
	}
}

func TestJobs_PublicTriggers(t *testing.T) {
	a := newAPI(t)

	for _, path := range []string{"/clients/birthday", "/shifts/reminders", "/shifts/notify-new"} {
		env := a.mustOK(http.MethodGet, path, nil)
		if _, ok := env.Data["countEmails"]; !ok {
			t.Fatalf("%s: expected countEmails, got %v", path, env.Data)
		}
	}
}

func TestValidation_BadRequestEnvelope(t *testing.T) {
	a := newAPI(t)
	a.login()

	code, env := a.do(http.MethodPost, "/shifts/create", map[string]any{"price": 10})
	if code != http.StatusBadRequest || env.Success || errorCode(env) != "invalid_request" {
		t.Fatalf("expected invalid_request, got %d %+v", code, env)
	}

	code, env = a.do(http.MethodGet, "/shifts/reports?year=abc", nil)
	if code != http.StatusBadRequest || errorCode(env) != "invalid_year" {
		t.Fatalf("expected invalid_year, got %d %+v", code, env)
	}
}

func TestPrices_CreateOncePerService(t *testing.T) {
	a := newAPI(t)
	a.login()

	env := a.mustOK(http.MethodPost, "/services/create", map[string]any{"name": "Color"})
	serviceID := idOf(t, env.Data["service"])

	code, env := a.do(http.MethodPost, "/prices/create", map[string]any{"service_id": 999, "amount": 10})
	if code != http.StatusBadRequest || errorCode(env) != "invalid_service_id" {
		t.Fatalf("expected invalid_service_id, got %d %+v", code, env)
	}

	env = a.mustOK(http.MethodPost, "/prices/create", map[string]any{"service_id": serviceID, "amount": 3200})
	price := env.Data["price"].(map[string]any)
	if price["currency"] != "ARS" {
		t.Fatalf("expected default currency, got %v", price["currency"])
	}
	priceID := idOf(t, price)

	code, env = a.do(http.MethodPost, "/prices/create", map[string]any{"service_id": serviceID, "amount": 1})
	if code != http.StatusBadRequest || errorCode(env) != "price_duplicated" {
		t.Fatalf("expected price_duplicated, got %d %+v", code, env)
	}

	env = a.mustOK(http.MethodPost, "/prices/update", map[string]any{"id": priceID, "amount": 3500, "currency": "usd"})
	price = env.Data["price"].(map[string]any)
	if price["amount"].(float64) != 3500 || price["currency"] != "USD" {
		t.Fatalf("unexpected price %v", price)
	}

	env = a.mustOK(http.MethodGet, "/services", nil)
	services := env.Data["services"].([]any)
	if len(services) != 1 || services[0].(map[string]any)["price"] == nil {
		t.Fatalf("expected the service with its price, got %v", services)
	}
}

func TestUsers_ShiftSummary(t *testing.T) {
	a := newAPI(t)
	laura := a.login()

	env := a.mustOK(http.MethodPost, "/users/create", map[string]any{
		"name": "Pablo", "email": "pablo@example.com", "password": "secret123",
	})
	pablo := idOf(t, env.Data["user"])

	env = a.mustOK(http.MethodPost, "/services/create", map[string]any{"name": "Corte", "amount": 1500})
	serviceID := idOf(t, env.Data["service"])

	var clients []uint
	for i, email := range []string{"ana@example.com", "bruno@example.com"} {
		env = a.mustOK(http.MethodPost, "/clients/create", map[string]any{
			"name": email, "email": email, "cod_area": "11", "phone": "4555123" + string(rune('0'+i)),
		})
		clients = append(clients, idOf(t, env.Data["client"]))
	}

	book := func(user, client uint, at string) {
		a.mustOK(http.MethodPost, "/shifts/create", map[string]any{
			"service_id": serviceID, "client_id": client, "user_id": user, "date_shift": at, "price": 1500,
		})
	}
	book(laura, clients[0], "2024-05-02T13:00:00Z")
	book(laura, clients[0], "2024-05-02T14:00:00Z")
	book(laura, clients[1], "2024-05-03T13:00:00Z")
	book(pablo, clients[1], "2024-05-02T13:00:00Z")
	book(pablo, clients[1], "2024-07-01T13:00:00Z")

	env = a.mustOK(http.MethodGet, "/users/getShiftToUsers?start_date=2024-05-01&end_date=2024-05-31", nil)

	if env.Data["all_shifts_count"].(float64) != 4 {
		t.Fatalf("expected 4 shifts in May, got %v", env.Data["all_shifts_count"])
	}
	if env.Data["all_clients_count"].(float64) != 2 || env.Data["all_services_count"].(float64) != 1 {
		t.Fatalf("unexpected totals %v", env.Data)
	}

	users := env.Data["users"].([]any)
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for _, u := range users {
		m := u.(map[string]any)
		switch m["name"] {
		case "Laura":
			if m["shifts_count"].(float64) != 3 || m["clients_count"].(float64) != 2 {
				t.Fatalf("unexpected Laura summary %v", m)
			}
		case "Pablo":
			if m["shifts_count"].(float64) != 1 || m["clients_count"].(float64) != 1 {
				t.Fatalf("unexpected Pablo summary %v", m)
			}
		}
	}

	usage := env.Data["today_service"].([]any)
	if len(usage) != 1 || usage[0].(map[string]any)["count"].(float64) != 4 {
		t.Fatalf("unexpected service usage %v", usage)
	}
}

func TestAuditLogs_ListsWrites(t *testing.T) {
	a := newAPI(t)
	a.login()

	env := a.mustOK(http.MethodGet, "/audit-logs?page=1&limit=10", nil)
	if env.Data["total"].(float64) != 0 {
		t.Fatalf("expected empty audit log without a dispatcher, got %v", env.Data)
	}
	if env.Data["limit"].(float64) != 10 {
		t.Fatalf("unexpected limit %v", env.Data["limit"])
	}
}
