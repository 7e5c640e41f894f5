package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/imagerelay/api/internal/imagegen"
)

func testRegistry(t *testing.T, credentials bool) *imagegen.Registry {
	t.Helper()
	key := ""
	if credentials {
		key = "k"
	}
	reg, err := imagegen.NewRegistry([]*imagegen.Descriptor{
		{Name: "Infip", Credential: key, Endpoint: "http://infip", Models: []string{"img3", "img4"}, Codec: imagegen.InfipCodec{}},
		{Name: "TypeGPT", Endpoint: "http://typegpt", Models: []string{"flux"}, Codec: imagegen.OpenAICodec{}},
	}, "")
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestListProviders(t *testing.T) {
	h := NewProviderHandler(testRegistry(t, true))
	r := gin.New()
	r.GET("/providers", h.ListProviders)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/providers", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), `"k"`) {
		t.Error("response leaks a credential")
	}

	var infos []ProviderInfo
	if err := json.Unmarshal(w.Body.Bytes(), &infos); err != nil {
		t.Fatal(err)
	}
	if len(infos) != 2 {
		t.Fatalf("len = %d, want 2", len(infos))
	}
	if !infos[0].Enabled || !infos[0].Default || infos[1].Enabled || infos[1].Default {
		t.Errorf("infos = %+v", infos)
	}
}

func TestReady(t *testing.T) {
	tests := []struct {
		name        string
		credentials bool
		want        int
	}{
		{"configured", true, http.StatusOK},
		{"no credentials", false, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(testRegistry(t, tt.credentials), "test")
			r := gin.New()
			r.GET("/health/ready", h.Ready)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}

			var resp HealthResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Providers["TypeGPT"] != "not configured" {
				t.Errorf("providers = %v", resp.Providers)
			}
		})
	}
}
