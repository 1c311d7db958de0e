package server

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	defaultScene      = "default"
	defaultWidth      = 400
	defaultHeight     = 300
	minImageSize      = 16
	maxImageSize      = 2000
	minFov            = 1.0
	maxFov            = 179.0
	maxRecursionDepth = 64

	// minInfluenceLimit is the smallest accepted minInfluence; a zero
	// RenderConfig field would fall back to the default instead
	minInfluenceLimit = 0.001

	// formatJSON wraps a base64 PNG, the render stats and console output in a JSON body
	formatJSON = "json"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene        string  `json:"scene"`        // Scene ID as accepted by scene.Create
	Width        int     `json:"width"`        // Image width
	Height       int     `json:"height"`       // Image height
	VFov         float64 `json:"fov"`          // Vertical field of view, 0 keeps the scene's
	MaxDepth     int     `json:"maxDepth"`     // Reflection recursion limit
	MinInfluence float64 `json:"minInfluence"` // Smallest reflection weight still traced
	Format       string  `json:"format"`       // png, bmp, tiff or json
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int   `json:"totalPixels"`
	PrimaryRays     int   `json:"primaryRays"`
	ShadowRays      int   `json:"shadowRays"`
	ReflectionRays  int   `json:"reflectionRays"`
	TotalRays       int   `json:"totalRays"`
	MaxDepthReached int   `json:"maxDepthReached"`
	DurationMs      int64 `json:"durationMs"`
}

// RenderResponse is the body of a render request with format=json
type RenderResponse struct {
	RenderID  string           `json:"renderId"`
	Scene     string           `json:"scene"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
	ElapsedMs int64            `json:"elapsedMs"`
}

// handleRender renders the requested scene once and returns the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	renderID := newRenderID()
	consoleChan, webLogger := s.setupConsoleLogging(renderID)

	startTime := time.Now()
	raytracer, err := s.setupRaytracer(req, webLogger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	raytracer.Render()
	stats := raytracer.Stats()
	elapsed := time.Since(startTime)

	w.Header().Set("X-Render-Id", renderID)
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(elapsed.Milliseconds(), 10))

	if req.Format == formatJSON {
		var buf bytes.Buffer
		if err := output.Encode(&buf, raytracer.Image(), output.FormatPNG); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, RenderResponse{
			RenderID:  renderID,
			Scene:     req.Scene,
			Width:     raytracer.Width(),
			Height:    raytracer.Height(),
			ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
			Stats:     toStats(stats),
			Console:   drainConsole(consoleChan),
			ElapsedMs: elapsed.Milliseconds(),
		})
		return
	}

	format, err := output.ParseFormat(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Encode before writing headers so a failure can still be reported
	var buf bytes.Buffer
	if err := output.Encode(&buf, raytracer.Image(), format); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("[%s] Error writing image: %v", renderID, err)
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	var err error
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", renderer.DefaultRenderConfig().MaxRecursionDepth, 1, maxRecursionDepth); err != nil {
		return nil, err
	}
	if req.MinInfluence, err = parseFloatParam(query, "minInfluence", renderer.DefaultRenderConfig().MinInfluence, minInfluenceLimit, 1); err != nil {
		return nil, err
	}

	req.Format = query.Get("format")
	if req.Format == "" {
		req.Format = string(output.FormatPNG)
	}
	if req.Format != formatJSON {
		if _, err := output.ParseFormat(req.Format); err != nil {
			return nil, err
		}
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.MaxDepth > 16 {
		log.Printf("Render warning: Large image with deep reflections may render slowly")
	}

	return req, nil
}

// parseCommonSceneParams parses the scene and camera parameters shared by
// render and inspect requests
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = defaultScene
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", defaultWidth, minImageSize, maxImageSize); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", defaultHeight, minImageSize, maxImageSize); err != nil {
		return err
	}
	if req.VFov, err = parseFloatParam(query, "fov", 0, minFov, maxFov); err != nil {
		return err
	}
	return nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// setupRaytracer creates the scene and a raytracer for a single request
func (s *Server) setupRaytracer(req *RenderRequest, logger core.Logger) (*renderer.Raytracer, error) {
	camera := geometry.CameraConfig{Width: req.Width, Height: req.Height, VFov: req.VFov}
	sceneObj, err := scene.Create(req.Scene, logger, camera)
	if err != nil {
		return nil, fmt.Errorf("unknown scene: %s", req.Scene)
	}

	config := renderer.RenderConfig{
		MaxRecursionDepth: req.MaxDepth,
		MinInfluence:      req.MinInfluence,
	}
	return renderer.NewRaytracer(sceneObj, config, logger), nil
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging(renderID string) (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// drainConsole collects the messages buffered so far without blocking
func drainConsole(consoleChan chan ConsoleMessage) []ConsoleMessage {
	messages := make([]ConsoleMessage, 0, len(consoleChan))
	for {
		select {
		case msg := <-consoleChan:
			messages = append(messages, msg)
		default:
			return messages
		}
	}
}

func newRenderID() string {
	return "render-" + uuid.NewString()
}

func toStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:     stats.TotalPixels,
		PrimaryRays:     stats.PrimaryRays,
		ShadowRays:      stats.ShadowRays,
		ReflectionRays:  stats.ReflectionRays,
		TotalRays:       stats.TotalRays(),
		MaxDepthReached: stats.MaxDepthReached,
		DurationMs:      stats.Duration.Milliseconds(),
	}
}
