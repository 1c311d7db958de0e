package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/image/bmp"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	NewServer(0).Handler().ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Expected JSON content type, got %q", ct)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("Invalid JSON %q: %v", rec.Body.String(), err)
	}
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body map[string]string
	decodeJSON(t, rec, &body)
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestHandleScenes(t *testing.T) {
	rec := get(t, "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body scene.ScenesResponse
	decodeJSON(t, rec, &body)
	if len(body.Groups) == 0 {
		t.Fatal("Expected at least the built-in group")
	}

	ids := map[string]bool{}
	for _, info := range body.Groups[0].Scenes {
		ids[info.ID] = true
	}
	for _, id := range []string{"default", "mirrors", "mesh", "empty"} {
		if !ids[id] {
			t.Errorf("Expected built-in scene %q in %v", id, body.Groups[0].Scenes)
		}
	}
}

func TestHandleSceneConfig(t *testing.T) {
	rec := get(t, "/api/scene-config?scene=mirrors")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Scene    string                 `json:"scene"`
		Defaults map[string]float64     `json:"defaults"`
		Limits   map[string]interface{} `json:"limits"`
	}
	decodeJSON(t, rec, &body)
	if body.Scene != "mirrors" {
		t.Errorf("Expected scene mirrors, got %q", body.Scene)
	}
	if body.Defaults["maxDepth"] != 4 || body.Defaults["minInfluence"] != 0.01 {
		t.Errorf("Unexpected render defaults %v", body.Defaults)
	}
	influence, ok := body.Limits["minInfluence"].(map[string]interface{})
	if !ok || influence["min"] != minInfluenceLimit {
		t.Errorf("Expected minInfluence floor %g, got %v", minInfluenceLimit, body.Limits["minInfluence"])
	}
	if _, ok := body.Limits["width"]; !ok {
		t.Errorf("Expected width limits, got %v", body.Limits)
	}

	if rec := get(t, "/api/scene-config?scene=nope"); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown scene, got %d", rec.Code)
	}
}

func TestHandleRender_PNG(t *testing.T) {
	rec := get(t, "/api/render?scene=empty&width=16&height=16")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}

	renderID := rec.Header().Get("X-Render-Id")
	if _, err := uuid.Parse(strings.TrimPrefix(renderID, "render-")); err != nil {
		t.Errorf("Expected render-<uuid> ID, got %q", renderID)
	}

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("Invalid PNG: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 16, 16) {
		t.Fatalf("Expected 16x16, got %v", img.Bounds())
	}

	// An empty scene is background everywhere
	r, g, b, a := img.At(7, 9).RGBA()
	if r>>8 != 0x8b || g>>8 != 0x9d || b>>8 != 0xc3 || a>>8 != 0xff {
		t.Errorf("Expected background 8b9dc3ff, got %02x%02x%02x%02x", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestHandleRender_BMP(t *testing.T) {
	rec := get(t, "/api/render?scene=default&width=24&height=16&format=bmp")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/bmp" {
		t.Errorf("Expected image/bmp, got %q", ct)
	}

	img, err := bmp.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("Invalid BMP: %v", err)
	}
	if img.Bounds().Dx() != 24 || img.Bounds().Dy() != 16 {
		t.Errorf("Expected 24x16, got %v", img.Bounds())
	}
}

func TestHandleRender_JSON(t *testing.T) {
	rec := get(t, "/api/render?scene=mirrors&width=20&height=16&format=json")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body RenderResponse
	decodeJSON(t, rec, &body)

	if body.RenderID != rec.Header().Get("X-Render-Id") {
		t.Errorf("Body render ID %q does not match header %q", body.RenderID, rec.Header().Get("X-Render-Id"))
	}
	if body.Width != 20 || body.Height != 16 {
		t.Errorf("Expected 20x16, got %dx%d", body.Width, body.Height)
	}
	if body.Stats.TotalPixels != 320 || body.Stats.PrimaryRays != 320 {
		t.Errorf("Expected 320 pixels and primary rays, got %+v", body.Stats)
	}
	if body.Stats.ReflectionRays == 0 {
		t.Error("Mirrors scene should cast reflection rays")
	}
	if body.Stats.MaxDepthReached > 4 {
		t.Errorf("Depth %d exceeds the default limit", body.Stats.MaxDepthReached)
	}

	data, err := base64.StdEncoding.DecodeString(body.ImageData)
	if err != nil {
		t.Fatalf("Invalid base64 image: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("Invalid PNG payload: %v", err)
	}

	found := false
	for _, msg := range body.Console {
		if strings.Contains(msg.Message, "Render time") && msg.RenderID == body.RenderID {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected render time in console output, got %v", body.Console)
	}
}

func TestHandleRender_MaxDepthParam(t *testing.T) {
	rec := get(t, "/api/render?scene=mirrors&width=16&height=16&format=json&maxDepth=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body RenderResponse
	decodeJSON(t, rec, &body)
	if body.Stats.MaxDepthReached != 1 {
		t.Errorf("Expected reflections to stop at depth 1, got %d", body.Stats.MaxDepthReached)
	}
}

func TestHandleRender_BadRequests(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"unknown scene", "scene=nope&width=16&height=16"},
		{"width too small", "width=5&height=16"},
		{"width not a number", "width=abc&height=16"},
		{"height too large", "width=16&height=5000"},
		{"bad fov", "width=16&height=16&fov=0"},
		{"zero depth", "width=16&height=16&maxDepth=0"},
		{"zero influence", "width=16&height=16&minInfluence=0"},
		{"influence above one", "width=16&height=16&minInfluence=2"},
		{"unsupported format", "width=16&height=16&format=gif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, "/api/render?"+tt.query)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected 400, got %d", rec.Code)
			}

			var body map[string]string
			decodeJSON(t, rec, &body)
			if body["error"] == "" {
				t.Errorf("Expected error message, got %v", body)
			}
		})
	}
}

func TestHandleRender_MinInfluenceFloor(t *testing.T) {
	rec := get(t, "/api/render?scene=mirrors&width=16&height=16&format=json&minInfluence=0.001")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 at the advertised floor, got %d: %s", rec.Code, rec.Body.String())
	}

	req, err := NewServer(0).parseRenderRequest(httptest.NewRequest(http.MethodGet, "/api/render?minInfluence=0.001", nil))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	rt, err := NewServer(0).setupRaytracer(req, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := rt.Config().MinInfluence; got != 0.001 {
		t.Errorf("Requested influence 0.001 applied as %g", got)
	}
}

func TestParseIntParam(t *testing.T) {
	values := map[string][]string{"n": {"12"}}

	if got, err := parseIntParam(values, "n", 1, 0, 20); err != nil || got != 12 {
		t.Errorf("Expected 12, got %d (%v)", got, err)
	}
	if got, err := parseIntParam(values, "missing", 7, 0, 20); err != nil || got != 7 {
		t.Errorf("Expected default 7, got %d (%v)", got, err)
	}
	if _, err := parseIntParam(values, "n", 1, 0, 10); err == nil {
		t.Error("Expected range error")
	}
}

func TestHandleInspect_Sphere(t *testing.T) {
	rec := get(t, "/api/inspect?scene=default&width=32&height=24&x=16&y=12")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body InspectResponse
	decodeJSON(t, rec, &body)

	if !body.Hit || body.GeometryType != "sphere" || body.ShapeIndex != 1 {
		t.Fatalf("Expected the middle sphere, got %+v", body)
	}
	if body.Material["color"] != "#3cb371" {
		t.Errorf("Expected green material, got %v", body.Material)
	}
	if body.Distance <= 0 {
		t.Errorf("Expected positive distance, got %g", body.Distance)
	}
	if len(body.Lights) != 2 || body.Lights[0].Type != "directional" {
		t.Errorf("Expected two directional lights, got %+v", body.Lights)
	}
	if !strings.HasPrefix(body.RenderID, "render-") {
		t.Errorf("Expected render ID, got %q", body.RenderID)
	}
}

func TestHandleInspect_Floor(t *testing.T) {
	rec := get(t, "/api/inspect?scene=default&width=32&height=24&x=0&y=23")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body InspectResponse
	decodeJSON(t, rec, &body)

	if body.GeometryType != "plane" || body.ShapeIndex != 3 {
		t.Fatalf("Expected the floor plane, got %+v", body)
	}
	if body.Normal != [3]float64{0, 1, 0} {
		t.Errorf("Expected +Y normal, got %v", body.Normal)
	}
	if body.Point[1] < -2.000001 || body.Point[1] > -1.999999 {
		t.Errorf("Expected point on y=-2, got %v", body.Point)
	}
}

func TestHandleInspect_Miss(t *testing.T) {
	rec := get(t, "/api/inspect?scene=empty&width=16&height=16&x=3&y=4")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body InspectResponse
	decodeJSON(t, rec, &body)
	if body.Hit || body.ShapeIndex != -1 {
		t.Errorf("Expected a miss, got %+v", body)
	}
	if body.Color != "#8b9dc3" {
		t.Errorf("Expected background color, got %q", body.Color)
	}
}

func TestHandleInspect_BadRequests(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"missing x", "y=1"},
		{"bad y", "x=1&y=abc"},
		{"out of bounds", "x=16&y=0"},
		{"negative", "x=-1&y=0"},
		{"unknown scene", "scene=nope&x=0&y=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, "/api/inspect?width=16&height=16&"+tt.query)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestSetStaticDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<p>viewer</p>"), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewServer(0)
	s.SetStaticDir(dir)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "viewer") {
		t.Errorf("Expected index from %s, got %d %q", dir, rec.Code, rec.Body.String())
	}
}
