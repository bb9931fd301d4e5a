package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/starford/dagaz/internal/editor"
	"github.com/starford/dagaz/internal/index"
	"github.com/starford/dagaz/internal/report"
	"github.com/starford/dagaz/internal/testutil"
)

// testEnv sets up a temp vault, SQLite DB, controller, and router.
// An empty authToken means disabled auth.
func testEnv(t *testing.T, authToken string) (string, http.Handler) {
	t.Helper()

	vaultDir, store := testutil.TestVault(t)
	db := testutil.TestDB(t)
	logger := testutil.QuietLogger()

	testutil.WriteNote(t, vaultDir, "hello.md", "# Hello\nA note with a [[world.md]] link.")
	testutil.WriteNote(t, vaultDir, "world.md", "# World\nLinked from hello.")
	testutil.WriteNote(t, vaultDir, "island.md", "# Island\nNobody links here.")
	if err := index.Sync(db, store, logger); err != nil {
		t.Fatalf("sync: %v", err)
	}

	ctrl := report.NewController(db, editor.New(vaultDir, "", logger), report.DefaultConfig(), logger)
	svc := NewService(store, db)
	router := NewRouter(svc, ctrl, authToken != "", authToken, nil)
	return vaultDir, router
}

func getSurface(t *testing.T, router http.Handler, url string) SurfaceResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s = %d, body = %s", url, w.Code, w.Body.String())
	}
	var resp SurfaceResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestGetDashboard(t *testing.T) {
	_, router := testEnv(t, "")

	resp := getSurface(t, router, "/dashboard")
	if resp.Name != "Dashboard" {
		t.Errorf("name = %q", resp.Name)
	}
	if !strings.Contains(resp.Text, "3 notes,") {
		t.Errorf("statistics missing:\n%s", resp.Text)
	}
	if len(resp.Spans) == 0 {
		t.Error("no spans in response")
	}
}

func TestGetDashboard_UnknownSurface(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/dashboard?surface=Nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestRefreshDashboard(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodPost, "/dashboard/refresh", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("refresh = %d, body = %s", w.Code, w.Body.String())
	}
	var resp SurfaceResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(resp.Text, "Recently modified:") {
		t.Errorf("refreshed surface incomplete:\n%s", resp.Text)
	}
}

func TestActivate_NotInteractive(t *testing.T) {
	_, router := testEnv(t, "")

	body, _ := json.Marshal(ActivateRequest{Offset: 0})
	req := httptest.NewRequest(http.MethodPost, "/dashboard/activate", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400, body = %s", w.Code, w.Body.String())
	}
}

func TestActivate_StatButtonMaterializes(t *testing.T) {
	_, router := testEnv(t, "")

	dash := getSurface(t, router, "/dashboard")
	var offset int
	found := false
	for _, sp := range dash.Spans {
		if sp.Kind == "stat-button" {
			offset, found = sp.Start, true
			break
		}
	}
	if !found {
		t.Fatalf("no stat button in:\n%s", dash.Text)
	}

	body, _ := json.Marshal(ActivateRequest{Offset: offset})
	req := httptest.NewRequest(http.MethodPost, "/dashboard/activate", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("activate = %d, body = %s", w.Code, w.Body.String())
	}
	var resp ActivateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Kind != "stat-button" || resp.Surface == nil {
		t.Fatalf("response = %+v", resp)
	}
	if resp.Surface.Name != "Dashboard - Orphaned Files" {
		t.Errorf("sub name = %q", resp.Surface.Name)
	}

	// The materialised surface is fetchable afterwards.
	sub := getSurface(t, router, "/dashboard?surface="+strings.ReplaceAll(resp.Surface.Name, " ", "%20"))
	if sub.Text != resp.Surface.Text {
		t.Error("stored sub surface differs from activation payload")
	}
}

func TestActivate_FileLink(t *testing.T) {
	_, router := testEnv(t, "")

	dash := getSurface(t, router, "/dashboard")
	var offset int
	found := false
	for _, sp := range dash.Spans {
		if sp.Kind == "file-link" {
			offset, found = sp.Start, true
			break
		}
	}
	if !found {
		t.Fatal("no file link span")
	}

	body, _ := json.Marshal(ActivateRequest{Offset: offset})
	req := httptest.NewRequest(http.MethodPost, "/dashboard/activate", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("activate = %d, body = %s", w.Code, w.Body.String())
	}
	var resp ActivateResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Kind != "file-link" || resp.Path == "" {
		t.Errorf("response = %+v", resp)
	}
}

func TestGetNote(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/notes/world.md", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get = %d", w.Code)
	}
	var note NoteDetail
	_ = json.Unmarshal(w.Body.Bytes(), &note)
	if note.Title != "World" {
		t.Errorf("title = %q", note.Title)
	}
	if len(note.Backlinks) != 1 || note.Backlinks[0] != "hello.md" {
		t.Errorf("backlinks = %v", note.Backlinks)
	}
}

func TestGetNote_NotFound(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/notes/missing.md", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestAuthEnforced(t *testing.T) {
	_, router := testEnv(t, "sekrit")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer sekrit")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("with token = %d, want 200", w.Code)
	}
}
