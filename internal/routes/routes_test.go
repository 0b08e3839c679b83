package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"evaluation-backend/internal/clock"
	"evaluation-backend/internal/config"
	"evaluation-backend/internal/evaluation"
	"evaluation-backend/internal/jwt"
	"evaluation-backend/internal/storage"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	storeCfg := &config.Storage{
		SQLite: &config.SQLLiteStorage{
			Path: filepath.Join(t.TempDir(), "test.db"),
		},
	}
	provider := storage.NewProvider(storeCfg)
	if provider == nil {
		t.Fatalf("failed to create test store")
	}
	t.Cleanup(func() { provider.Close() })

	clk, err := clock.New("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("clock: %v", err)
	}
	svc := evaluation.NewService(provider, clk)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("Evaluations", svc)
		c.Set("Storage", provider)
		c.Next()
	})
	r.NoRoute(NotFoundHandler())

	api := r.Group("/api")
	api.Use(ErrorHandler())
	Health(api)
	EvaluationsAPI(api)
	StatisticsAPI(api)
	AdminAPI(api)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	decoded := map[string]any{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, decoded
}

func submission(id, deviceID string) map[string]any {
	return map[string]any{
		"id":            id,
		"deviceId":      deviceID,
		"timestamp":     time.Now().Format(time.RFC3339),
		"overallRating": "otimo",
	}
}

func TestSubmitAndList(t *testing.T) {
	config.Cfg = &config.Config{}
	r := newTestRouter(t)

	payload := submission("ev-1", "dev-1")
	payload["sectors"] = map[string]int{"forno": 5, "moagem": 3}
	payload["feedback"] = "tudo certo"

	w, body := doJSON(t, r, http.MethodPost, "/api/submit-evaluation", payload, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("submit status = %d, body %s", w.Code, w.Body.String())
	}
	if body["success"] != true || body["id"] != "ev-1" {
		t.Fatalf("unexpected submit response: %v", body)
	}

	w, body = doJSON(t, r, http.MethodGet, "/api/evaluations", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	if body["total"] != float64(1) {
		t.Fatalf("total = %v, want 1", body["total"])
	}

	evaluations := body["evaluations"].([]any)
	first := evaluations[0].(map[string]any)
	sectors := first["sectors"].(map[string]any)
	if sectors["forno"] != float64(5) || sectors["moagem"] != float64(3) {
		t.Fatalf("sectors did not round-trip: %v", sectors)
	}
	if first["feedback"] != "tudo certo" {
		t.Fatalf("feedback did not round-trip: %v", first["feedback"])
	}
}

func TestSubmitMissingFieldRejected(t *testing.T) {
	config.Cfg = &config.Config{}
	r := newTestRouter(t)

	payload := submission("ev-1", "dev-1")
	delete(payload, "overallRating")

	w, body := doJSON(t, r, http.MethodPost, "/api/submit-evaluation", payload, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body["success"] != false {
		t.Fatalf("expected success=false, got %v", body)
	}
	if msg, _ := body["error"].(string); msg != "missing required field: overallRating" {
		t.Fatalf("unexpected error message: %q", msg)
	}

	// Nothing was persisted.
	_, listBody := doJSON(t, r, http.MethodGet, "/api/evaluations", nil, nil)
	if listBody["total"] != float64(0) {
		t.Fatalf("rejected submission was persisted: %v", listBody["total"])
	}
}

func TestSubmitSameDayConflict(t *testing.T) {
	config.Cfg = &config.Config{}
	r := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/submit-evaluation", submission("ev-1", "dev-1"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("first submit status = %d", w.Code)
	}

	w, body := doJSON(t, r, http.MethodPost, "/api/submit-evaluation", submission("ev-2", "dev-1"), nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("second submit status = %d, want 409, body %s", w.Code, w.Body.String())
	}
	if body["error"] != "Device already voted today" {
		t.Fatalf("unexpected conflict message: %v", body["error"])
	}
}

func TestSubmitMalformedBody(t *testing.T) {
	config.Cfg = &config.Config{}
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/submit-evaluation", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCheckVote(t *testing.T) {
	config.Cfg = &config.Config{}
	r := newTestRouter(t)

	w, body := doJSON(t, r, http.MethodGet, "/api/check-vote/dev-1", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body["hasVotedToday"] != false || body["deviceId"] != "dev-1" {
		t.Fatalf("unexpected check-vote response: %v", body)
	}

	doJSON(t, r, http.MethodPost, "/api/submit-evaluation", submission("ev-1", "dev-1"), nil)

	_, body = doJSON(t, r, http.MethodGet, "/api/check-vote/dev-1", nil, nil)
	if body["hasVotedToday"] != true {
		t.Fatalf("device should have voted today: %v", body)
	}
}

func TestResetTimerWithoutSecretIsOpen(t *testing.T) {
	config.Cfg = &config.Config{}
	r := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/api/submit-evaluation", submission("ev-1", "dev-1"), nil)

	w, body := doJSON(t, r, http.MethodPost, "/api/reset-timer", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("reset status = %d, body %s", w.Code, w.Body.String())
	}
	if body["success"] != true {
		t.Fatalf("unexpected reset response: %v", body)
	}

	// Device is eligible again, history intact.
	_, check := doJSON(t, r, http.MethodGet, "/api/check-vote/dev-1", nil, nil)
	if check["hasVotedToday"] != false {
		t.Fatalf("device still ineligible after reset")
	}
	_, list := doJSON(t, r, http.MethodGet, "/api/evaluations", nil, nil)
	if list["total"] != float64(1) {
		t.Fatalf("evaluation history lost on reset: %v", list["total"])
	}
}

func TestResetTimerRequiresAdminToken(t *testing.T) {
	config.Cfg = &config.Config{Secret: "test-secret", TokenTTL: 5}
	t.Cleanup(func() { config.Cfg = nil })
	r := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/reset-timer", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated reset status = %d, want 401", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodPost, "/api/reset-timer", nil, map[string]string{
		"Authorization": "Bearer not-a-token",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token status = %d, want 401", w.Code)
	}

	token, err := jwt.GenerateJWT(jwt.NewAdminClaim("tester", 5), "test-secret")
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	w, body := doJSON(t, r, http.MethodPost, "/api/reset-timer", nil, map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("authenticated reset status = %d, body %s", w.Code, w.Body.String())
	}
	if body["success"] != true {
		t.Fatalf("unexpected reset response: %v", body)
	}
}

func TestStatisticsEndpoint(t *testing.T) {
	config.Cfg = &config.Config{}
	r := newTestRouter(t)

	ratings := []string{"otimo", "otimo", "regular"}
	for i, rating := range ratings {
		payload := submission(fmt.Sprintf("ev-%d", i), fmt.Sprintf("dev-%d", i))
		payload["overallRating"] = rating
		if i == 0 {
			payload["feedback"] = "bom"
		}
		w, _ := doJSON(t, r, http.MethodPost, "/api/submit-evaluation", payload, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("submit %d status = %d", i, w.Code)
		}
	}

	w, body := doJSON(t, r, http.MethodGet, "/api/statistics", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("statistics status = %d", w.Code)
	}

	stats := body["statistics"].(map[string]any)
	if stats["totalEvaluations"] != float64(3) {
		t.Fatalf("totalEvaluations = %v, want 3", stats["totalEvaluations"])
	}
	if stats["totalFeedbacks"] != float64(1) {
		t.Fatalf("totalFeedbacks = %v, want 1", stats["totalFeedbacks"])
	}
	distribution := stats["distribution"].(map[string]any)
	if distribution["otimo"] != float64(2) || distribution["regular"] != float64(1) {
		t.Fatalf("unexpected distribution: %v", distribution)
	}
}

func TestHealth(t *testing.T) {
	config.Cfg = &config.Config{}
	r := newTestRouter(t)

	w, body := doJSON(t, r, http.MethodGet, "/api/health", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}
	if body["status"] != "healthy" || body["database"] != "connected" {
		t.Fatalf("unexpected health response: %v", body)
	}
}

func TestUnknownRouteListsEndpoints(t *testing.T) {
	config.Cfg = &config.Config{}
	r := newTestRouter(t)

	w, body := doJSON(t, r, http.MethodGet, "/api/nope", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	endpoints := body["available_endpoints"].([]any)
	if len(endpoints) != len(AvailableEndpoints) {
		t.Fatalf("endpoint catalog missing from 404 body: %v", body)
	}
}
