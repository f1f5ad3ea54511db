package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"yt-summarizer/shared/config"
	"yt-summarizer/shared/monitoring"
)

func preflight(handler http.Handler, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, "/api/summarize", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestServerCORS(t *testing.T) {
	tests := []struct {
		name      string
		origins   []string
		origin    string
		wantAllow string
	}{
		{
			name:      "same-origin by default",
			origin:    "https://evil.example",
			wantAllow: "",
		},
		{
			name:      "listed origin allowed",
			origins:   []string{"https://app.example"},
			origin:    "https://app.example",
			wantAllow: "https://app.example",
		},
		{
			name:      "unlisted origin rejected",
			origins:   []string{"https://app.example"},
			origin:    "https://evil.example",
			wantAllow: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Server: config.ServerConfig{Port: 8080, CORSOrigins: tt.origins}}
			srv := NewServer(cfg, &stubSummarizer{}, monitoring.NewMonitor())

			w := preflight(srv.Handler(), tt.origin)
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}
