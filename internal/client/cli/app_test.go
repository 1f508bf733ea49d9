package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/pitchpoa/internal/client/config"
	"github.com/dmitrijs2005/pitchpoa/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves the handful of endpoints the CLI calls.
type fakeAPI struct {
	created map[string]any
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"token":"tok","user":{"id":"u1","email":"a@x.io"}}`)
	})
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message":"User already exists"}`)
	})
	mux.HandleFunc("GET /api/inventory", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		_, _ = io.WriteString(w, `[{"id":"i1","name":"Sugar","currentStock":2,"reorderPoint":10,"sellingPrice":1500.5,"category":"Baking"}]`)
	})
	mux.HandleFunc("POST /api/inventory", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&f.created)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"i2","name":"Flour"}`)
	})
	mux.HandleFunc("GET /api/sales", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Not authorized"}`)
	})
	mux.HandleFunc("GET /api/inventory/optimization", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"recommendations":[]}`)
	})
	mux.HandleFunc("GET /api/reports/{kind}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="pitchpoa-`+r.PathValue("kind")+`-20260101.pdf"`)
		_, _ = io.WriteString(w, "%PDF-1.3")
	})
	return mux
}

func (f *fakeAPI) authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") != "Bearer tok" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Not authorized"}`)
		return false
	}
	return true
}

func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer, *fakeAPI) {
	t.Helper()

	old := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("secret1"), nil }
	t.Cleanup(func() { readPassword = old })

	f := &fakeAPI{}
	ts := httptest.NewServer(f.handler())
	t.Cleanup(ts.Close)

	a := NewApp(&config.Config{ServerURL: ts.URL, RequestTimeout: 5 * time.Second, ReportDir: t.TempDir()})
	a.logger = logging.Nop()
	a.reader = bufio.NewReader(strings.NewReader(input))
	var out bytes.Buffer
	a.out = &out
	return a, &out, f
}

func TestSession(t *testing.T) {
	input := strings.Join([]string{
		"login", "a@x.io",
		"inventory",
		"additem", "Flour", "5", "", "1.00", "1,500.50", "",
		"report sales",
		"logout",
		"help",
		"exit",
	}, "\n") + "\n"
	a, out, f := newTestApp(t, input)

	a.Run(context.Background())
	s := out.String()

	assert.Contains(t, s, "Logged in as a@x.io")
	assert.Contains(t, s, "pitchpoa (a@x.io)> ")
	assert.Contains(t, s, "Sugar")
	assert.Contains(t, s, "1,500.50")
	assert.Contains(t, s, "Added Flour (id i2)")
	assert.Contains(t, s, "Logged out")
	assert.Contains(t, s, guestHelp)
	assert.False(t, a.isLoggedIn())

	assert.Equal(t, "Flour", f.created["name"])
	assert.Equal(t, float64(5), f.created["currentStock"])
	assert.Equal(t, 1500.5, f.created["sellingPrice"])
	assert.Nil(t, f.created["reorderPoint"])
	assert.Nil(t, f.created["category"])

	saved := filepath.Join(a.config.ReportDir, "pitchpoa-sales-20260101.pdf")
	data, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))
	assert.Contains(t, s, "Saved "+saved)
}

func TestReport_ExplicitFile(t *testing.T) {
	a, _, _ := newTestApp(t, "")
	a.client.SetToken("tok")
	path := filepath.Join(t.TempDir(), "mine.pdf")

	require.NoError(t, a.Report(context.Background(), []string{"inventory", path}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))
}

func TestRegister_ShowsServerMessage(t *testing.T) {
	a, out, _ := newTestApp(t, "register\nb@x.io\nexit\n")

	a.Run(context.Background())

	assert.Contains(t, out.String(), "Error: User already exists")
	assert.False(t, a.isLoggedIn())
}

func TestProtectedCommandWithoutLogin(t *testing.T) {
	a, out, _ := newTestApp(t, "inventory\nexit\n")

	a.Run(context.Background())

	assert.Contains(t, out.String(), "Please log in first")
}

func TestUnauthorizedEndsSession(t *testing.T) {
	a, out, _ := newTestApp(t, "login\na@x.io\nsales\nexit\n")

	a.Run(context.Background())
	s := out.String()

	assert.Contains(t, s, "Error: Not authorized")
	assert.Contains(t, s, "Session ended, please log in again")
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "(guest)", a.status())
}

func TestAddItem_RejectsBadNumber(t *testing.T) {
	a, out, f := newTestApp(t, "login\na@x.io\nadditem\nFlour\nlots\nexit\n")

	a.Run(context.Background())

	assert.Contains(t, out.String(), `Error: "lots" is not a whole number`)
	assert.Nil(t, f.created)
}

func TestOptimize_PrintsIndentedJSON(t *testing.T) {
	a, out, _ := newTestApp(t, "")
	a.client.SetToken("tok")

	require.NoError(t, a.Optimize(context.Background()))

	assert.Contains(t, out.String(), "{\n  \"recommendations\": []\n}")
}

func TestPitch_Usage(t *testing.T) {
	a, out, _ := newTestApp(t, "")

	require.NoError(t, a.Pitch(context.Background(), nil))
	assert.Contains(t, out.String(), "Usage: pitch <file> [title]")

	err := a.Pitch(context.Background(), []string{filepath.Join(t.TempDir(), "missing.webm")})
	require.Error(t, err)
}
