package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AtRiskMedia/monster-widget/internal/application/container"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/monster-widget/internal/presentation/http/middleware"
	"github.com/AtRiskMedia/monster-widget/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSidebars = `
sidebars:
  - id: test
    name: Test Sidebar
    before_widget: '<section id="%1$s" class="widget %2$s">'
    after_widget: '</section>'
    before_title: '<h4>'
    after_title: '</h4>'
    widgets:
      - type: text
        settings:
          title: Hello
          text: "Body copy"
      - type: search
`

func setupRouter(t *testing.T) (*gin.Engine, *container.Container) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	sidebarsFile := filepath.Join(dir, "sidebars.yaml")
	require.NoError(t, os.WriteFile(sidebarsFile, []byte(testSidebars), 0o644))

	saved := []string{config.SQLitePath, config.SidebarsFile, config.TranslationsFile, config.JWTSecret, config.AdminPassword}
	config.SQLitePath = ":memory:"
	config.TursoDatabaseURL = ""
	config.SidebarsFile = sidebarsFile
	config.TranslationsFile = filepath.Join(dir, "translations.yaml")
	config.JWTSecret = "test-secret"
	config.AdminPassword = "hunter2"
	config.SeedSampleMenus = true
	config.EnableLinksWidget = false
	t.Cleanup(func() {
		config.SQLitePath = saved[0]
		config.SidebarsFile = saved[1]
		config.TranslationsFile = saved[2]
		config.JWTSecret = saved[3]
		config.AdminPassword = saved[4]
	})

	c, err := container.NewContainer(nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	return SetupRoutes(c), c
}

func do(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func login(t *testing.T, r http.Handler) string {
	t.Helper()
	rec := do(r, "POST", "/api/v1/auth/login", "", map[string]string{"password": "hunter2"})
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := decode(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthAndRequestID(t *testing.T) {
	r, _ := setupRouter(t)

	rec := do(r, "GET", "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestIndexRedirectsToFirstSidebar(t *testing.T) {
	r, _ := setupRouter(t)

	rec := do(r, "GET", "/", "", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/sidebars/test", rec.Header().Get("Location"))
}

func TestSidebarFragmentAndPage(t *testing.T) {
	r, _ := setupRouter(t)

	rec := do(r, "GET", "/sidebars/test/fragment", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<section id="text-1" class="widget widget_text">`)
	assert.Contains(t, body, `<h4>Hello</h4>`)
	assert.Contains(t, body, `<section id="search-2" class="widget widget_search">`)

	rec = do(r, "GET", "/sidebars/test", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Body copy")

	rec = do(r, "GET", "/sidebars/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(r, "GET", "/sidebars/nope/fragment", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMonsterEndpoints(t *testing.T) {
	r, _ := setupRouter(t)

	rec := do(r, "GET", "/api/v1/monster/config", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cfg := decode(t, rec)
	// 13 fixed entries plus the seeded Primary nav menu.
	assert.EqualValues(t, 14, cfg["count"])
	assert.EqualValues(t, 1, cfg["next"])

	rec = do(r, "GET", "/api/v1/monster/breaker", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pipe Test")
	assert.Contains(t, rec.Body.String(), strings.Repeat("|", 210))

	rec = do(r, "GET", "/api/v1/widgets", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"Monster"`)
	assert.Contains(t, rec.Body.String(), `"wrapperClass":"widget_calendar"`)
}

func TestMenuAPI(t *testing.T) {
	r, _ := setupRouter(t)

	rec := do(r, "GET", "/api/v1/menus", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3, decode(t, rec)["count"])

	newMenu := map[string]any{
		"title": "Sidebar Links",
		"links": []map[string]any{{"name": "Home", "url": "https://example.com/"}},
	}
	rec = do(r, "POST", "/api/v1/menus", "", newMenu)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = do(r, "POST", "/api/v1/menus", "not-a-token", newMenu)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := login(t, r)

	rec = do(r, "POST", "/api/v1/menus", token, newMenu)
	require.Equal(t, http.StatusCreated, rec.Code)
	id, _ := decode(t, rec)["id"].(string)
	require.NotEmpty(t, id)

	rec = do(r, "POST", "/api/v1/menus/"+id+"/links", token, map[string]any{"name": "About", "url": "https://example.com/about"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = do(r, "POST", "/api/v1/menus/"+id+"/links", token, map[string]any{"name": "Broken"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, "GET", "/api/v1/menus/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	links, _ := decode(t, rec)["links"].([]any)
	assert.Len(t, links, 2)

	rec = do(r, "DELETE", "/api/v1/menus/"+id, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(r, "DELETE", "/api/v1/menus/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(r, "GET", "/api/v1/menus/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	r, _ := setupRouter(t)

	rec := do(r, "POST", "/api/v1/auth/login", "", map[string]string{"password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = do(r, "POST", "/api/v1/auth/login", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMediaAndMetrics(t *testing.T) {
	r, _ := setupRouter(t)

	rec := do(r, "GET", "/media/test-image-landscape-900.jpg", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.NotZero(t, rec.Body.Len())

	rec = do(r, "GET", "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `monster_widget_http_requests_total{method="GET",route="/media/test-image-landscape-900.jpg",status="200"} 1`)
}

func TestLivePreviewPushesOnMenuChange(t *testing.T) {
	r, c := setupRouter(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.PreviewHub.Run(ctx)

	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/sidebars/test/live", nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() messaging.Message {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var msg messaging.Message
		require.NoError(t, conn.ReadJSON(&msg))
		return msg
	}

	first := read()
	assert.Equal(t, messaging.MessageRender, first.Type)
	assert.Contains(t, first.HTML, "Body copy")

	token := login(t, r)
	rec := do(r, "POST", "/api/v1/menus", token, map[string]any{"title": "Live"})
	require.Equal(t, http.StatusCreated, rec.Code)

	second := read()
	assert.Equal(t, "test", second.SidebarID)
	assert.Contains(t, second.HTML, "Body copy")
}
