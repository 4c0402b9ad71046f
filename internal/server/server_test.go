package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/footfit/internal/model"
	"github.com/ppiankov/footfit/internal/pipeline"
)

type failingRunner struct{}

func (failingRunner) Run(ctx context.Context, p model.Profile) (*pipeline.Result, error) {
	return nil, errors.New("boom")
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	p := pipeline.NewPipeline(model.DefaultConfig())
	srv := httptest.NewServer(New(p, model.DefaultConfig().Server, "test").Routes())
	t.Cleanup(srv.Close)
	return srv
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["version"] != "test" {
		t.Errorf("Unexpected body: %v", body)
	}
	if resp.Header.Get("Content-Type") != "application/json" {
		t.Errorf("Unexpected content type: %s", resp.Header.Get("Content-Type"))
	}
}

func TestOptions(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/options")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var body optionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(body.Age) != 6 || len(body.Weight) != 4 || len(body.Foot) != 3 || len(body.Activity) != 3 || len(body.Preferred) != 4 {
		t.Errorf("Unexpected option counts: %+v", body)
	}
	if body.Foot[0].Value != "flat-arch" || body.Foot[0].Label != "Flat Arch" {
		t.Errorf("Unexpected first foot option: %+v", body.Foot[0])
	}
	if body.Defaults.Age != model.Age26To35 || body.Defaults.Weight != model.Weight50To70 ||
		body.Defaults.Activity != model.ActivityModerate || body.Defaults.Foot != model.FootNormalArch {
		t.Errorf("Unexpected defaults: %+v", body.Defaults)
	}
	if body.Defaults.PreferredCategory != "" {
		t.Errorf("Expected no default preference, got %s", body.Defaults.PreferredCategory)
	}
}

func TestRecommend(t *testing.T) {
	srv := newTestServer(t)

	payload := `{"age":"over-65","weight":"over-90kg","foot":"flat-arch","activity":"high"}`
	resp, err := http.Post(srv.URL+"/api/v1/recommend", "application/json", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var result pipeline.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec := result.Recommendation
	if rec.ShoeCategory != model.CategoryRunning || rec.ArchSupport != model.ArchHigh || rec.Cushioning != model.CushioningHigh {
		t.Errorf("Unexpected recommendation: %+v", rec)
	}
	if len(rec.Materials) != 2 || len(rec.Justification) != 3 {
		t.Errorf("Expected 2 materials and 3 justifications, got %d/%d", len(rec.Materials), len(rec.Justification))
	}
}

func TestRecommend_InvalidDomainValue(t *testing.T) {
	srv := newTestServer(t)

	payload := `{"age":"ancient","weight":"50-70kg","foot":"normal-arch","activity":"extreme"}`
	resp, err := http.Post(srv.URL+"/api/v1/recommend", "application/json", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", resp.StatusCode)
	}

	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != "invalid-domain-value" {
		t.Errorf("Expected invalid-domain-value, got %s", body.Code)
	}
	if len(body.Fields) != 2 {
		t.Fatalf("Expected 2 field errors, got %+v", body.Fields)
	}
	if body.Fields[0].Field != "age" || body.Fields[1].Field != "activity" {
		t.Errorf("Unexpected fields: %+v", body.Fields)
	}
	if body.RequestID == "" {
		t.Error("Expected request id in error body")
	}
}

func TestRecommend_BadRequest(t *testing.T) {
	srv := newTestServer(t)

	for name, payload := range map[string]string{
		"malformed":     `{"age":`,
		"unknown field": `{"age":"18-25","weight":"50-70kg","foot":"flat-arch","activity":"low","gender":"x"}`,
		"second object": `{"age":"18-25","weight":"50-70kg","foot":"flat-arch","activity":"low"} {}`,
		"trailing junk": `{"age":"18-25","weight":"50-70kg","foot":"flat-arch","activity":"low"} garbage`,
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/v1/recommend", "application/json", strings.NewReader(payload))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer func() { _ = resp.Body.Close() }()

			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("Expected 400, got %d", resp.StatusCode)
			}
			var body errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != "bad-request" {
				t.Errorf("Expected bad-request, got %s", body.Code)
			}
		})
	}
}

func TestRecommend_InternalError(t *testing.T) {
	handler := New(failingRunner{}, model.DefaultConfig().Server, "test").Routes()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend",
		strings.NewReader(`{"age":"18-25","weight":"50-70kg","foot":"flat-arch","activity":"low"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Error("Expected internal error details not to leak")
	}
}

func TestRecommend_MethodNotAllowed(t *testing.T) {
	handler := New(failingRunner{}, model.DefaultConfig().Server, "test").Routes()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommend", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	// Generate one recorded request first
	if resp, err := http.Get(srv.URL + "/api/v1/health"); err == nil {
		_ = resp.Body.Close()
	}

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "footfit_http_requests_total") {
		t.Error("Expected footfit_http_requests_total in metrics output")
	}
}

func TestListenAndServe_Shutdown(t *testing.T) {
	cfg := model.ServerConfig{Addr: "127.0.0.1:0", ReadTimeout: time.Second, WriteTimeout: time.Second}
	s := New(failingRunner{}, cfg, "test")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not return after cancel")
	}
}
