package wire

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meditrack/internal/data/hybrid"
	"meditrack/internal/data/memstore"
	"meditrack/pkg/utils"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	config := &utils.Config{
		Session: utils.SessionConfig{
			ExpiryHours: 24,
			CookieName:  "meditrack_session",
		},
	}
	store := hybrid.NewStore(nil, memstore.NewStore(zap.NewNop()), time.Minute, zap.NewNop())

	// Google provider nil: credentials tidak di-set
	return Wiring(store, nil, config, zap.NewNop())
}

func doJSON(t *testing.T, app *App, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "meditrack_session" && c.Value != "" {
			return c
		}
	}
	return nil
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)

	// Signup membuat akun dan langsung login
	rec := doJSON(t, app, http.MethodPost, "/api/auth/signup",
		`{"username":"budi","password":"rahasia123"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)

	// Username yang sama ditolak
	rec = doJSON(t, app, http.MethodPost, "/api/auth/signup",
		`{"username":"budi","password":"lainnya456"}`, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	// Login dengan password salah
	rec = doJSON(t, app, http.MethodPost, "/api/auth/login",
		`{"username":"budi","password":"salah"}`, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Login benar
	rec = doJSON(t, app, http.MethodPost, "/api/auth/login",
		`{"username":"budi","password":"rahasia123"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie = sessionCookie(rec)
	require.NotNil(t, cookie)

	// Current user butuh session
	rec = doJSON(t, app, http.MethodGet, "/api/auth/user", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, app, http.MethodGet, "/api/auth/user", "", []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	require.Equal(t, "budi", data["username"])

	// Logout mematikan session-nya
	rec = doJSON(t, app, http.MethodPost, "/api/auth/logout", "", []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, app, http.MethodGet, "/api/auth/user", "", []*http.Cookie{cookie})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleAndDetailsFlow(t *testing.T) {
	app := newTestApp(t)

	rec := doJSON(t, app, http.MethodPost, "/api/auth/signup",
		`{"username":"dokter","password":"rahasia123"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	cookies := []*http.Cookie{cookie}

	// Role belum dipilih
	rec = doJSON(t, app, http.MethodGet, "/api/auth/role", "", cookies)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Role tidak dikenal ditolak validator
	rec = doJSON(t, app, http.MethodPost, "/api/auth/role", `{"role":"admin"}`, cookies)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, app, http.MethodPost, "/api/auth/role", `{"role":"doctor"}`, cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, app, http.MethodGet, "/api/auth/role", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	require.Equal(t, "doctor", data["role"])

	// Details belum disubmit
	rec = doJSON(t, app, http.MethodGet, "/api/auth/details", "", cookies)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, app, http.MethodPost, "/api/auth/details",
		`{"name":"dr. Ahmad","employeeId":"EMP-042","experience":12}`, cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, app, http.MethodGet, "/api/auth/details", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	data = body["data"].(map[string]any)
	require.Equal(t, "dr. Ahmad", data["name"])
	require.Equal(t, "EMP-042", data["employeeId"])

	// Update sebagian field, yang lain tidak berubah
	rec = doJSON(t, app, http.MethodPost, "/api/auth/details",
		`{"name":"dr. Ahmad","qualifications":"SpPD"}`, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	data = body["data"].(map[string]any)
	require.Equal(t, "SpPD", data["qualifications"])
	require.Equal(t, "EMP-042", data["employeeId"])
}

func TestDetailsValidation(t *testing.T) {
	app := newTestApp(t)

	rec := doJSON(t, app, http.MethodPost, "/api/auth/signup",
		`{"username":"pasien","password":"rahasia123"}`, nil)
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	cookies := []*http.Cookie{cookie}

	rec = doJSON(t, app, http.MethodPost, "/api/auth/role", `{"role":"patient"}`, cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	// Umur di luar range
	rec = doJSON(t, app, http.MethodPost, "/api/auth/details",
		`{"name":"Budi","age":200}`, cookies)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Gender di luar daftar
	rec = doJSON(t, app, http.MethodPost, "/api/auth/details",
		`{"name":"Budi","gender":"lainnya"}`, cookies)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSiteForms(t *testing.T) {
	app := newTestApp(t)

	rec := doJSON(t, app, http.MethodPost, "/api/contact",
		`{"name":"Budi","email":"budi@example.com","message":"Halo"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Email tidak valid
	rec = doJSON(t, app, http.MethodPost, "/api/contact",
		`{"name":"Budi","email":"bukan-email","message":"Halo"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, app, http.MethodPost, "/api/demo",
		`{"name":"Budi","email":"budi@example.com","organization":"RS Sehat"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthReportsStorageMode(t *testing.T) {
	app := newTestApp(t)

	rec := doJSON(t, app, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ok", body["status"])
	require.Equal(t, "memory", body["storage"])
}

func TestGoogleLoginUnconfigured(t *testing.T) {
	app := newTestApp(t)

	rec := doJSON(t, app, http.MethodGet, "/auth/google", "", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = doJSON(t, app, http.MethodGet, "/auth/google/callback", "", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
