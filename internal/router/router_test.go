package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/inclusive-studai/config"
	"github.com/oksasatya/inclusive-studai/internal/container"
	"github.com/oksasatya/inclusive-studai/internal/infrastructure/localstore"
	"github.com/oksasatya/inclusive-studai/internal/interface/middleware"
	"github.com/oksasatya/inclusive-studai/pkg/validation"
)

type envelope struct {
	Status    int             `json:"status"`
	RequestID string          `json:"request_id"`
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Error     json.RawMessage `json:"error"`
}

type api struct {
	t      *testing.T
	engine *gin.Engine
	c      *container.Container
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{
		AppName:             "Inclusive StudAI",
		SlotBackend:         config.SlotMemory,
		StorageKey:          localstore.DefaultStorageKey,
		JWTAccessSecret:     "test-secret",
		AccessTTL:           time.Hour,
		CookieDomain:        "localhost",
		LoginRatePerMin:     100,
		DebugMetricsEnabled: true,
	}
	c, err := container.New(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	reg := NewRegistry(r)
	InitModules(reg, c)
	reg.RegisterAll()
	return &api{t: t, engine: r, c: c}
}

func (a *api) call(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w.Code, env
}

func (a *api) login(email string) string {
	a.t.Helper()
	code, env := a.call(http.MethodPost, "/api/login", "", map[string]string{"email": email, "password": "anything"})
	require.Equal(a.t, http.StatusOK, code)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(a.t, data.Token)
	return data.Token
}

func TestLogin(t *testing.T) {
	a := newAPI(t)

	code, env := a.call(http.MethodPost, "/api/login", "", map[string]string{"email": "juan@estudiante.edu", "password": "anything"})
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)
	var data struct {
		User struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
		Display struct {
			FontClass string `json:"fontClass"`
		} `json:"display"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "u1", data.User.ID)
	assert.Equal(t, "student", data.User.Role)
	assert.Equal(t, "text-base", data.Display.FontClass)

	code, env = a.call(http.MethodPost, "/api/login", "", map[string]string{"email": "nope@x.com", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid credentials", env.Message)

	code, _ = a.call(http.MethodPost, "/api/login", "", map[string]string{"password": "x"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestDashboards_RoleGate(t *testing.T) {
	a := newAPI(t)
	student := a.login("juan@estudiante.edu")
	admin := a.login("admin@edu.pe")

	code, env := a.call(http.MethodGet, "/api/dashboard/student", student, nil)
	require.Equal(t, http.StatusOK, code)
	var dash struct {
		Appointments []json.RawMessage `json:"appointments"`
		Courses      []json.RawMessage `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &dash))
	assert.Len(t, dash.Appointments, 2)
	assert.Len(t, dash.Courses, 2)

	code, _ = a.call(http.MethodGet, "/api/dashboard/admin", student, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = a.call(http.MethodGet, "/api/dashboard/admin", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "Satisfacción (NPS)")

	code, _ = a.call(http.MethodGet, "/api/dashboard/student", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAppointments(t *testing.T) {
	a := newAPI(t)
	tok := a.login("juan@estudiante.edu")

	body := map[string]string{"title": "Tutoría de Física", "date": "2025-06-01 09:00", "type": "academic"}
	code, env := a.call(http.MethodPost, "/api/appointments", tok, body)
	require.Equal(t, http.StatusCreated, code)
	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "pending", created.Status)
	assert.NotEmpty(t, created.ID)

	code, env = a.call(http.MethodGet, "/api/appointments", tok, nil)
	require.Equal(t, http.StatusOK, code)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 3)

	body["type"] = "party"
	code, env = a.call(http.MethodPost, "/api/appointments", tok, body)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(env.Error), "academic, medical, other")

	// persisted through the slot
	raw, ok, err := a.c.Slot.Get(context.Background(), localstore.DefaultStorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	snap, err := localstore.DecodeSnapshot(raw)
	require.NoError(t, err)
	assert.Len(t, snap.Appointments, 3)
}

func TestPreferencesAndContrast(t *testing.T) {
	a := newAPI(t)
	tok := a.login("juan@estudiante.edu")

	code, env := a.call(http.MethodPatch, "/api/preferences", tok, map[string]any{"fontSize": "xl"})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"fontClass":"text-xl"`)

	code, env = a.call(http.MethodPatch, "/api/preferences", tok, map[string]any{"voiceSpeed": 3})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(env.Error), "voiceSpeed")

	code, env = a.call(http.MethodPost, "/api/preferences/contrast/toggle", tok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"rootClass":"grayscale contrast-125"`)

	classes, seen := a.c.Contrast.Applied("u1")
	assert.True(t, seen)
	assert.Equal(t, "grayscale contrast-125", classes)

	code, _ = a.call(http.MethodPost, "/api/preferences/contrast/toggle", tok, map[string]any{"current": true})
	require.Equal(t, http.StatusOK, code)
	classes, _ = a.c.Contrast.Applied("u1")
	assert.Empty(t, classes)

	code, env = a.call(http.MethodPatch, "/api/consents", tok, map[string]any{"voiceRecording": true})
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"dataCollection":true,"voiceRecording":true}`, string(env.Data))

	code, env = a.call(http.MethodGet, "/api/profile", tok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"fontSize":"xl"`)
	assert.Contains(t, string(env.Data), `"role":"student"`)
	assert.Contains(t, string(env.Data), `"appliedRootClass":""`)

	code, env = a.call(http.MethodPost, "/api/preferences/contrast/toggle", tok, nil)
	require.Equal(t, http.StatusOK, code)
	code, env = a.call(http.MethodGet, "/api/profile", tok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"appliedRootClass":"grayscale contrast-125"`)
}

func TestProfile_NoAppliedContrastBeforeChanges(t *testing.T) {
	a := newAPI(t)
	tok := a.login("admin@edu.pe")

	code, env := a.call(http.MethodGet, "/api/profile", tok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotContains(t, string(env.Data), "appliedRootClass")
}

func TestReader(t *testing.T) {
	a := newAPI(t)
	tok := a.login("juan@estudiante.edu")

	code, env := a.call(http.MethodGet, "/api/materials/search?q=wcag", tok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"courseCode":"AD-202"`)

	code, _ = a.call(http.MethodGet, "/api/materials/search", tok, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = a.call(http.MethodPost, "/api/reader/speak", tok, map[string]string{"text": "Hola"})
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"text":"Hola","lang":"es-ES","rate":1}`, string(env.Data))
}

func TestDebugVars(t *testing.T) {
	a := newAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil)
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "store_seed_fallbacks")
}

func TestHealthListsModules(t *testing.T) {
	a := newAPI(t)

	code, env := a.call(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"modules":["auth","dashboard","preferences","reader","debug"]}`, string(env.Data))
}

type namedModule struct {
	name string
	path string
}

func (m namedModule) Name() string { return m.name }
func (m namedModule) Register(rg *gin.RouterGroup) {
	rg.GET(m.path, func(c *gin.Context) { c.String(http.StatusOK, m.path) })
}

func TestRegistry_AddReplacesSameName(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := NewRegistry(gin.New())
	reg.Add(namedModule{name: "x", path: "/old"})
	reg.Add(namedModule{name: "y", path: "/y"})
	reg.Add(namedModule{name: "x", path: "/new"})
	assert.Equal(t, []string{"x", "y"}, reg.Names())

	reg.RegisterAll()
	w := httptest.NewRecorder()
	reg.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/new", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	w = httptest.NewRecorder()
	reg.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/old", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
