package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/banco-imobiliario/game/config"
	"github.com/wricardo/banco-imobiliario/transport/mcp"
)

func TestConstants(t *testing.T) {
	assert.Equal(t, "1.0.0", Version)
	assert.Equal(t, "Banco Imobiliário Server", AppName)
}

func TestInitializeServices(t *testing.T) {
	gameService, sessions, err := initializeServices(config.Settings{ConfigDir: "configs", DefaultRule: "quick"})
	require.NoError(t, err)
	require.NotNil(t, gameService)
	require.NotNil(t, sessions)

	rules, err := gameService.ListRules(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(rules), 3)
}

func TestInitializeServices_UnknownDefaultRule(t *testing.T) {
	gameService, _, err := initializeServices(config.Settings{ConfigDir: "configs", DefaultRule: "turbo"})
	require.NoError(t, err, "an unknown default only logs a warning")
	assert.NotNil(t, gameService)
}

func TestInitializeServices_InvalidConfigDir(t *testing.T) {
	_, _, err := initializeServices(config.Settings{ConfigDir: "/non/existent/path"})
	assert.Error(t, err)
}

func TestValidateRules(t *testing.T) {
	t.Run("repository rule sets", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, validateRules(&out, "configs"))
		for _, name := range []string{"classic.json", "quick.json", "strict.json"} {
			assert.Contains(t, out.String(), "✓ "+name)
		}
	})

	t.Run("broken file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bom.json"), []byte(`{"name": "bom"}`), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ruim.json"), []byte(`{"name": "ruim", "starting_balance": -5}`), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "quebrado.json"), []byte(`{not json`), 0644))

		var out bytes.Buffer
		err := validateRules(&out, dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "2 of 3")
		assert.Contains(t, out.String(), "✓ bom.json")
		assert.Contains(t, out.String(), "✗ ruim.json")
		assert.Contains(t, out.String(), "✗ quebrado.json")
	})

	t.Run("empty directory", func(t *testing.T) {
		var out bytes.Buffer
		assert.Error(t, validateRules(&out, t.TempDir()))
	})
}

func TestMCPHandler(t *testing.T) {
	handler := mcpHandler(mcp.NewClient("http://127.0.0.1:1"))

	t.Run("rejects GET", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/mcp", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("lists tools", func(t *testing.T) {
		initBody := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(initBody)))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), "roll_dice")
		assert.Contains(t, rec.Body.String(), "propose_trade")
	})
}

func TestApp_Validate(t *testing.T) {
	t.Setenv("PORT", "8080")

	err := newApp().Run(context.Background(), []string{"banco", "--config-dir", "configs", "validate"})
	assert.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ruim.json"), []byte(`{"name": "ruim", "max_doubles": 0}`), 0644))
	err = newApp().Run(context.Background(), []string{"banco", "--config-dir", dir, "validate"})
	assert.Error(t, err)
}

func TestApp_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "70000")
	err := newApp().Run(context.Background(), []string{"banco", "validate"})
	assert.Error(t, err)
}

func TestAPIReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	assert.True(t, apiReachable(srv.URL))
	assert.False(t, apiReachable("http://127.0.0.1:1"))
}
