package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rechargehub/storefront/internal/config"
	"github.com/rechargehub/storefront/internal/pkg/logger"
)

// backendRecorder captures writes the fake backend receives so tests
// can assert on the outgoing payloads.
type backendRecorder struct {
	mu          sync.Mutex
	planUpdates []map[string]interface{}
}

func (rec *backendRecorder) lastPlanUpdate() map[string]interface{} {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.planUpdates) == 0 {
		return nil
	}
	return rec.planUpdates[len(rec.planUpdates)-1]
}

// fakeBackend serves the slice of the recharge API the storefront
// talks to.
func fakeBackend(t *testing.T) (*httptest.Server, *backendRecorder) {
	t.Helper()

	rec := &backendRecorder{}
	mux := http.NewServeMux()

	mux.HandleFunc("/plans", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[
			{"_id":"p1","operator":"JIO","price":299,"validity":"28 days","data":"2GB/day","calls":"Unlimited","category":"POPULAR"},
			{"_id":"p2","operator":"AIRTEL","price":3359,"validity":"365 days","data":"2.5GB/day","calls":"Unlimited","category":"ANNUAL"}
		]`)
	})

	mux.HandleFunc("/plans/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodPut:
			var body map[string]interface{}
			_ = json.NewDecoder(r.Body).Decode(&body)
			rec.mu.Lock()
			rec.planUpdates = append(rec.planUpdates, body)
			rec.mu.Unlock()
			_, _ = io.WriteString(w, `{"_id":"p1","operator":"AIRTEL","price":349,"validity":"28 days","data":"2GB/day","category":"POPULAR"}`)
		case http.MethodDelete:
			_, _ = io.WriteString(w, `{"message":"Plan deleted"}`)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			_, _ = io.WriteString(w, `{"_id":"u2","name":"New User","email":"new@example.com","phone":"9876543210","isAdmin":false}`)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	})

	mux.HandleFunc("/users/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		w.Header().Set("Content-Type", "application/json")
		switch body.Email {
		case "alice@example.com":
			_, _ = io.WriteString(w, `{"token":"test-token","user":{"_id":"u1","name":"Alice","email":"alice@example.com","phone":"9876543210","isAdmin":false}}`)
		case "admin@admin.com":
			_, _ = io.WriteString(w, `{"token":"admin-token","user":{"_id":"u9","name":"Admin","email":"admin@admin.com","phone":"9000000000","isAdmin":true}}`)
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":"Invalid credentials"}`)
		}
	})

	mux.HandleFunc("/recharges", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			_, _ = io.WriteString(w, `{"_id":"r1","referenceId":"TXN100200300","status":"SUCCESS"}`)
			return
		}
		_, _ = io.WriteString(w, `[{"_id":"r1","operator":"JIO","planAmount":299,"mobileNumber":"9876543210","status":"SUCCESS","referenceId":"TXN100200300"}]`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, rec
}

// newTestServer stands up the full router against a fake backend and
// returns a cookie-carrying client.
func newTestServer(t *testing.T) (*httptest.Server, *http.Client, *backendRecorder) {
	t.Helper()

	backend, rec := fakeBackend(t)

	cfg := &config.Config{
		Backend: config.BackendConfig{BaseURL: backend.URL, Timeout: 5 * time.Second},
		Auth:    config.AuthConfig{AdminEmail: "admin@admin.com", SessionSecret: "test-secret"},
	}
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	srv := httptest.NewServer(New(cfg, log).Router())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return srv, &http.Client{Jar: jar}, rec
}

func get(t *testing.T, c *http.Client, url string) string {
	t.Helper()
	resp, err := c.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	return string(body)
}

func postForm(t *testing.T, c *http.Client, url string, form url.Values) {
	t.Helper()
	resp, err := c.PostForm(url, form)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	resp.Body.Close()
}

func TestHome_LandingShownUntilStarted(t *testing.T) {
	srv, c, _ := newTestServer(t)

	body := get(t, c, srv.URL+"/")
	if !strings.Contains(body, "Get started") {
		t.Fatalf("first visit did not show the welcome screen")
	}
	if strings.Contains(body, "2GB/day") {
		t.Errorf("welcome screen leaked the catalog")
	}

	body = get(t, c, srv.URL+"/?start=1")
	if !strings.Contains(body, "2GB/day") {
		t.Errorf("get started did not open the catalog")
	}

	// Once past the welcome screen it stays gone.
	body = get(t, c, srv.URL+"/")
	if strings.Contains(body, "Get started") {
		t.Errorf("welcome screen came back after starting")
	}
}

func TestHome_LandingSkippedWhenLoggedIn(t *testing.T) {
	srv, c, _ := newTestServer(t)

	postForm(t, c, srv.URL+"/auth/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"Secret1"},
	})

	body := get(t, c, srv.URL+"/")
	if strings.Contains(body, "Get started") {
		t.Errorf("logged-in visitor saw the welcome screen")
	}
	if !strings.Contains(body, "2GB/day") {
		t.Errorf("logged-in visitor missing the catalog")
	}
}

func TestHome_RendersPlansForSelectedOperator(t *testing.T) {
	srv, c, _ := newTestServer(t)

	body := get(t, c, srv.URL+"/?start=1")
	if !strings.Contains(body, "2GB/day") {
		t.Errorf("home page missing default operator's plan")
	}
	if strings.Contains(body, "2.5GB/day") {
		t.Errorf("home page shows another operator's plan")
	}

	body = get(t, c, srv.URL+"/?operator=AIRTEL")
	if !strings.Contains(body, "2.5GB/day") {
		t.Errorf("operator switch did not change the catalog")
	}
}

func TestHome_CategoryFilter(t *testing.T) {
	srv, c, _ := newTestServer(t)

	body := get(t, c, srv.URL+"/?start=1&operator=AIRTEL&category=ANNUAL")
	if !strings.Contains(body, "2.5GB/day") {
		t.Errorf("category filter dropped a matching plan")
	}

	body = get(t, c, srv.URL+"/?operator=AIRTEL&category=TOP_UP")
	if !strings.Contains(body, "No plans available") {
		t.Errorf("category filter kept a non-matching plan")
	}
}

func TestCheckout_WithoutSessionOpensAuth(t *testing.T) {
	srv, c, _ := newTestServer(t)

	postForm(t, c, srv.URL+"/checkout", url.Values{"plan_id": {"p1"}})

	body := get(t, c, srv.URL+"/")
	if !strings.Contains(body, "Welcome back") {
		t.Errorf("auth modal did not open for a guest checkout")
	}
	if strings.Contains(body, "Confirm recharge") {
		t.Errorf("payment modal opened without a session")
	}
}

func TestCheckout_FullFlow(t *testing.T) {
	srv, c, _ := newTestServer(t)

	postForm(t, c, srv.URL+"/auth/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"Secret1"},
	})
	postForm(t, c, srv.URL+"/mobile", url.Values{"mobile": {"9876543210"}})
	postForm(t, c, srv.URL+"/checkout", url.Values{"plan_id": {"p1"}})

	body := get(t, c, srv.URL+"/")
	if !strings.Contains(body, "Confirm recharge") {
		t.Fatalf("payment modal did not open after login")
	}

	postForm(t, c, srv.URL+"/checkout/pay", url.Values{})

	var status checkoutStatus
	resp, err := c.Get(srv.URL + "/checkout/status")
	if err != nil {
		t.Fatalf("status poll: %v", err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("status decode: %v", err)
	}

	if status.Step != "PROCESSING" && status.Step != "SUCCESS" {
		t.Errorf("step = %q after pay", status.Step)
	}
	if status.ReferenceID != "TXN100200300" {
		t.Errorf("referenceId = %q, want backend's value", status.ReferenceID)
	}
}

func TestCheckout_InvalidMobileBlocked(t *testing.T) {
	srv, c, _ := newTestServer(t)

	postForm(t, c, srv.URL+"/auth/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"Secret1"},
	})
	postForm(t, c, srv.URL+"/mobile", url.Values{"mobile": {"12345"}})
	postForm(t, c, srv.URL+"/checkout", url.Values{"plan_id": {"p1"}})

	body := get(t, c, srv.URL+"/")
	if !strings.Contains(body, "valid 10-digit mobile number") {
		t.Errorf("invalid mobile did not surface a message")
	}
	if strings.Contains(body, "Confirm recharge") {
		t.Errorf("payment modal opened with an invalid mobile number")
	}
}

func TestLogin_BadCredentialsShowServerMessage(t *testing.T) {
	srv, c, _ := newTestServer(t)

	postForm(t, c, srv.URL+"/auth/login", url.Values{
		"email":    {"mallory@example.com"},
		"password": {"Wrong1pw"},
	})

	body := get(t, c, srv.URL+"/")
	if !strings.Contains(body, "Invalid credentials") {
		t.Errorf("server error message not rendered in the auth modal")
	}
}

func TestLogin_FailedSubmitKeepsEmail(t *testing.T) {
	srv, c, _ := newTestServer(t)

	postForm(t, c, srv.URL+"/auth/login", url.Values{
		"email":    {"mallory@example.com"},
		"password": {"Wrong1pw"},
	})

	body := get(t, c, srv.URL+"/")
	if !strings.Contains(body, `value="mallory@example.com"`) {
		t.Errorf("failed login cleared the email field")
	}
	if strings.Contains(body, "Wrong1pw") {
		t.Errorf("password echoed back into the page")
	}
}

func TestSignup_FailedSubmitKeepsFields(t *testing.T) {
	srv, c, _ := newTestServer(t)

	// Weak password fails validation before the backend is reached.
	postForm(t, c, srv.URL+"/auth/signup", url.Values{
		"name":     {"Bob Kumar"},
		"email":    {"bob@example.com"},
		"phone":    {"9123456789"},
		"password": {"weak"},
	})

	body := get(t, c, srv.URL+"/")
	for _, want := range []string{`value="Bob Kumar"`, `value="bob@example.com"`, `value="9123456789"`} {
		if !strings.Contains(body, want) {
			t.Errorf("reopened signup form missing %s", want)
		}
	}
}

func TestHistory_RequiresLogin(t *testing.T) {
	srv, c, _ := newTestServer(t)

	body := get(t, c, srv.URL+"/history")
	if !strings.Contains(body, "log in") {
		t.Errorf("guest history page missing login prompt")
	}

	postForm(t, c, srv.URL+"/auth/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"Secret1"},
	})
	body = get(t, c, srv.URL+"/history")
	if !strings.Contains(body, "TXN100200300") {
		t.Errorf("history page missing the fetched record")
	}
}

func TestAdmin_RequiresAdminFlag(t *testing.T) {
	srv, c, _ := newTestServer(t)

	postForm(t, c, srv.URL+"/auth/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"Secret1"},
	})

	body := get(t, c, srv.URL+"/admin")
	if !strings.Contains(body, "Admin access required") {
		t.Errorf("non-admin reached the admin page")
	}
}

func TestAdmin_UpdateSendsEveryEditedField(t *testing.T) {
	srv, c, rec := newTestServer(t)

	postForm(t, c, srv.URL+"/auth/login", url.Values{
		"email":    {"admin@admin.com"},
		"password": {"Secret1"},
	})
	postForm(t, c, srv.URL+"/admin/plans/p1", url.Values{
		"operator": {"AIRTEL"},
		"price":    {"349"},
		"calls":    {"Unlimited"},
		"sms":      {"100/day"},
		"ott":      {"Netflix, Prime Video"},
	})

	update := rec.lastPlanUpdate()
	if update == nil {
		t.Fatal("backend received no plan update")
	}
	if got := update["operator"]; got != "AIRTEL" {
		t.Errorf("operator = %v, want AIRTEL", got)
	}
	if got := update["price"]; got != 349.0 {
		t.Errorf("price = %v, want 349", got)
	}
	if got := update["sms"]; got != "100/day" {
		t.Errorf("sms = %v, want 100/day", got)
	}
	benefits, _ := update["ottBenefits"].([]interface{})
	if len(benefits) != 2 || benefits[0] != "Netflix" {
		t.Errorf("ottBenefits = %v, want [Netflix Prime Video]", update["ottBenefits"])
	}
	if _, ok := update["validity"]; ok {
		t.Errorf("untouched field was sent in the partial update")
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	srv, c, _ := newTestServer(t)

	postForm(t, c, srv.URL+"/auth/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"Secret1"},
	})
	postForm(t, c, srv.URL+"/auth/logout", url.Values{})

	body := get(t, c, srv.URL+"/")
	if strings.Contains(body, "Logout") {
		t.Errorf("session survived logout")
	}
}

func TestHealthz(t *testing.T) {
	srv, c, _ := newTestServer(t)

	resp, err := c.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
