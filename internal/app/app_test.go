package app

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/akehoe/bracketlab/internal/auth"
	"github.com/akehoe/bracketlab/internal/logger"
	"github.com/akehoe/bracketlab/pkg/sportsfeed"
)

func TestNew_InitializesApp(t *testing.T) {
	templatesFS := createTestTemplatesFS()
	staticFS := fstest.MapFS{}
	log := logger.NewDiscard()
	sessions := auth.New()
	feed := sportsfeed.NewMockClient()

	app, err := New(log, ":memory:", []sportsfeed.Client{feed}, templatesFS, staticFS, sessions)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if app == nil {
		t.Fatal("expected app to be created")
	}
	if app.handlers == nil {
		t.Error("expected handlers to be initialized")
	}
	if app.repo == nil {
		t.Error("expected repo to be initialized")
	}
	if app.cancelPoller == nil {
		t.Error("expected cancelPoller to be set")
	}
	app.Close()
}

func TestNew_FailsWithBadDBPath(t *testing.T) {
	templatesFS := createTestTemplatesFS()
	staticFS := fstest.MapFS{}
	log := logger.NewDiscard()
	sessions := auth.New()
	feed := sportsfeed.NewMockClient()

	// Invalid path should fail
	_, err := New(log, "/nonexistent/path/db.sqlite", []sportsfeed.Client{feed}, templatesFS, staticFS, sessions)

	if err == nil {
		t.Error("expected error for invalid db path")
	}
}

func TestNew_FailsWithMissingTemplates(t *testing.T) {
	// Empty templates FS
	templatesFS := fstest.MapFS{}
	staticFS := fstest.MapFS{}
	log := logger.NewDiscard()
	sessions := auth.New()
	feed := sportsfeed.NewMockClient()

	_, err := New(log, ":memory:", []sportsfeed.Client{feed}, templatesFS, staticFS, sessions)

	if err == nil {
		t.Error("expected error for missing templates")
	}
}

func TestApp_Router_ServesRequests(t *testing.T) {
	app := createTestApp(t)
	server := httptest.NewServer(app.Router())
	defer server.Close()

	resp, err := http.Get(server.URL + "/login")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for /login, got %d", resp.StatusCode)
	}

	// Tournament structure should be queryable without auth
	resp2, err := http.Get(server.URL + "/api/tournament")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp2.Body.Close()

	if resp2.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for /api/tournament, got %d", resp2.StatusCode)
	}
}

func TestApp_Close_StopsPoller(t *testing.T) {
	app := createTestApp(t)

	// Close should not panic
	app.Close()

	// Calling Close multiple times should be safe
	app.Close()
}

func TestGetPreferredIP_ReturnsValidIP(t *testing.T) {
	ip := getPreferredIP(realNetworkProvider{})

	if ip == "" {
		t.Error("expected non-empty IP")
	}

	if ip != "localhost" {
		parsed := net.ParseIP(ip)
		if parsed == nil {
			t.Errorf("expected valid IP, got: %s", ip)
		}
	}
}

func TestIsPrivate172(t *testing.T) {
	tests := []struct {
		ip       string
		expected bool
	}{
		{"172.16.0.1", true},
		{"172.31.255.255", true},
		{"172.15.0.1", false},
		{"172.32.0.1", false},
		{"192.168.1.1", false},
		{"10.0.0.1", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			ip := net.ParseIP(tt.ip)
			if got := isPrivate172(ip); got != tt.expected {
				t.Errorf("isPrivate172(%s) = %v, want %v", tt.ip, got, tt.expected)
			}
		})
	}
}

func TestSetDefaultBaseURL_SetsWhenEmpty(t *testing.T) {
	app := createTestApp(t)

	app.setDefaultBaseURL("http://192.168.1.100:8080")

	ctx := context.Background()
	val, err := app.repo.GetSetting(ctx, "base_url")
	if err != nil {
		t.Fatalf("failed to get setting: %v", err)
	}
	if val != "http://192.168.1.100:8080" {
		t.Errorf("expected base_url to be set, got: %s", val)
	}
}

func TestSetDefaultBaseURL_ReplacesLocalhost(t *testing.T) {
	app := createTestApp(t)
	ctx := context.Background()

	if err := app.repo.SetSetting(ctx, "base_url", "http://localhost:8080"); err != nil {
		t.Fatalf("failed to set initial setting: %v", err)
	}

	app.setDefaultBaseURL("http://192.168.1.100:8080")

	val, err := app.repo.GetSetting(ctx, "base_url")
	if err != nil {
		t.Fatalf("failed to get setting: %v", err)
	}
	if val != "http://192.168.1.100:8080" {
		t.Errorf("expected base_url to be replaced, got: %s", val)
	}
}

func TestSetDefaultBaseURL_DoesNotOverwriteValidURL(t *testing.T) {
	app := createTestApp(t)
	ctx := context.Background()

	if err := app.repo.SetSetting(ctx, "base_url", "http://192.168.1.50:8080"); err != nil {
		t.Fatalf("failed to set initial setting: %v", err)
	}

	app.setDefaultBaseURL("http://192.168.1.100:8080")

	val, err := app.repo.GetSetting(ctx, "base_url")
	if err != nil {
		t.Fatalf("failed to get setting: %v", err)
	}
	if val != "http://192.168.1.50:8080" {
		t.Errorf("expected base_url to remain unchanged, got: %s", val)
	}
}

// mockInterface implements networkInterface for testing
type mockInterface struct {
	flags net.Flags
	addrs []net.Addr
	err   error
}

func (m mockInterface) Flags() net.Flags {
	return m.flags
}

func (m mockInterface) Addrs() ([]net.Addr, error) {
	return m.addrs, m.err
}

// mockNetworkProvider implements networkProvider for testing
type mockNetworkProvider struct {
	interfaces []networkInterface
	err        error
}

func (m mockNetworkProvider) Interfaces() ([]networkInterface, error) {
	return m.interfaces, m.err
}

func TestGetPreferredIP_NetworkError(t *testing.T) {
	provider := mockNetworkProvider{err: net.ErrClosed}

	if ip := getPreferredIP(provider); ip != "localhost" {
		t.Errorf("expected 'localhost' on error, got: %s", ip)
	}
}

func TestGetPreferredIP_InterfaceAddrsError(t *testing.T) {
	iface := mockInterface{
		flags: net.FlagUp,
		err:   net.ErrClosed,
	}
	provider := mockNetworkProvider{interfaces: []networkInterface{iface}}

	if ip := getPreferredIP(provider); ip != "localhost" {
		t.Errorf("expected 'localhost' when Addrs() fails, got: %s", ip)
	}
}

func TestGetPreferredIP_PrefersPrivateAddress(t *testing.T) {
	public := &net.IPNet{IP: net.ParseIP("8.8.8.8"), Mask: net.CIDRMask(24, 32)}
	private := &net.IPNet{IP: net.ParseIP("192.168.1.100"), Mask: net.CIDRMask(24, 32)}

	iface := mockInterface{
		flags: net.FlagUp,
		addrs: []net.Addr{public, private},
	}
	provider := mockNetworkProvider{interfaces: []networkInterface{iface}}

	if ip := getPreferredIP(provider); ip != "192.168.1.100" {
		t.Errorf("expected '192.168.1.100', got: %s", ip)
	}
}

func TestGetPreferredIP_PublicIPFallback(t *testing.T) {
	public := &net.IPNet{IP: net.ParseIP("8.8.8.8"), Mask: net.CIDRMask(24, 32)}

	iface := mockInterface{
		flags: net.FlagUp,
		addrs: []net.Addr{public},
	}
	provider := mockNetworkProvider{interfaces: []networkInterface{iface}}

	if ip := getPreferredIP(provider); ip != "8.8.8.8" {
		t.Errorf("expected '8.8.8.8' (public IP fallback), got: %s", ip)
	}
}

func TestGetPreferredIP_SkipsLoopbackIP(t *testing.T) {
	loopback := &net.IPNet{IP: net.ParseIP("127.0.0.1"), Mask: net.CIDRMask(8, 32)}
	valid := &net.IPNet{IP: net.ParseIP("192.168.1.50"), Mask: net.CIDRMask(24, 32)}

	iface := mockInterface{
		flags: net.FlagUp,
		addrs: []net.Addr{loopback, valid},
	}
	provider := mockNetworkProvider{interfaces: []networkInterface{iface}}

	if ip := getPreferredIP(provider); ip != "192.168.1.50" {
		t.Errorf("expected '192.168.1.50' (skipping loopback), got: %s", ip)
	}
}

func TestApp_Run_Integration(t *testing.T) {
	app := createTestApp(t)

	done := make(chan error, 1)
	go func() {
		done <- app.Run(":0")
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Logf("Run returned (expected): %v", err)
		}
	case <-time.After(100 * time.Millisecond):
		app.Close()
	}
}

// Helper functions

func createTestTemplatesFS() fstest.MapFS {
	return fstest.MapFS{
		"index.html": &fstest.MapFile{
			Data: []byte(`<html><body>Index</body></html>`),
		},
		"bracket.html": &fstest.MapFile{
			Data: []byte(`<html><body>Bracket {{.BracketID}}</body></html>`),
		},
		"login.html": &fstest.MapFile{
			Data: []byte(`<html><body>Login</body></html>`),
		},
	}
}

func createTestApp(t *testing.T) *App {
	t.Helper()
	templatesFS := createTestTemplatesFS()
	staticFS := fstest.MapFS{}
	log := logger.NewDiscard()
	sessions := auth.New()
	feed := sportsfeed.NewMockClient()

	app, err := New(log, ":memory:", []sportsfeed.Client{feed}, templatesFS, staticFS, sessions)
	if err != nil {
		t.Fatalf("failed to create test app: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}
