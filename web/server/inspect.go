package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	RenderID     string                 `json:"renderId"`
	X            int                    `json:"x"`
	Y            int                    `json:"y"`
	Hit          bool                   `json:"hit"`
	ShapeIndex   int                    `json:"shapeIndex"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        string                 `json:"color"` // Final pixel color as #rrggbb
	Material     map[string]interface{} `json:"material,omitempty"`
	Geometry     map[string]interface{} `json:"geometry,omitempty"`
	Lights       []LightInfo            `json:"lights,omitempty"`
}

// LightInfo reports one light's contribution at the inspected point
type LightInfo struct {
	Index    int        `json:"index"`
	Type     string     `json:"type"`
	Incident float64    `json:"incident"`
	Lit      bool       `json:"lit"`
	Diffuse  [3]float64 `json:"diffuse"`
	Specular [3]float64 `json:"specular"`
}

// extractMaterialInfo extracts the shading coefficients of a material
func (s *Server) extractMaterialInfo(mat material.Material) map[string]interface{} {
	return map[string]interface{}{
		"color":      colorHex(mat.Color),
		"rgb":        colorArray(mat.Color),
		"specular":   mat.Specular,
		"reflection": mat.Reflection,
	}
}

// extractGeometryInfo extracts detailed geometry information
func (s *Server) extractGeometryInfo(shape geometry.Shape, surface geometry.Surface) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = vecArray(geom.Point)
		properties["normal"] = vecArray(geom.Normal)
		return "plane", properties

	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{vecArray(geom.A), vecArray(geom.B), vecArray(geom.C)}
		return "triangle", properties

	case *geometry.Mesh:
		properties["triangleCount"] = geom.GetTriangleCount()
		if minCorner, maxCorner, ok := geom.Bounds(); ok {
			properties["boundingBox"] = map[string]interface{}{
				"min": vecArray(minCorner),
				"max": vecArray(maxCorner),
			}
		}
		if tri, ok := surface.(*geometry.Triangle); ok {
			properties["triangle"] = [3][3]float64{vecArray(tri.A), vecArray(tri.B), vecArray(tri.C)}
		}
		return "mesh", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// Create request object for parameter parsing
	inspectReq := &RenderRequest{}

	// Parse common scene parameters using shared function
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}

	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	// Validate pixel coordinates
	if pixelX < 0 || pixelX >= inspectReq.Width || pixelY < 0 || pixelY >= inspectReq.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	renderID := newRenderID()
	inspectReq.MaxDepth = renderer.DefaultRenderConfig().MaxRecursionDepth
	inspectReq.MinInfluence = renderer.DefaultRenderConfig().MinInfluence

	raytracer, err := s.setupRaytracer(inspectReq, NewWebLogger(renderID, nil))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := raytracer.Inspect(pixelX, pixelY)
	writeJSON(w, http.StatusOK, s.buildInspectResponse(renderID, raytracer, result))
}

func (s *Server) buildInspectResponse(renderID string, rt *renderer.Raytracer, result renderer.InspectResult) InspectResponse {
	response := InspectResponse{
		RenderID:   renderID,
		X:          result.X,
		Y:          result.Y,
		Hit:        result.Hit,
		ShapeIndex: result.ShapeIndex,
		Color:      colorHex(result.Color),
	}
	if !result.Hit {
		return response
	}

	response.GeometryType, response.Geometry = s.extractGeometryInfo(result.Shape, result.Surface)
	response.Material = s.extractMaterialInfo(result.Material)
	response.Point = vecArray(result.Point)
	response.Normal = vecArray(result.Normal)
	response.Distance = result.T

	sceneLights := rt.Scene().Lights
	for _, contribution := range result.Lights {
		response.Lights = append(response.Lights, LightInfo{
			Index:    contribution.Index,
			Type:     lightType(sceneLights[contribution.Index]),
			Incident: contribution.Incident,
			Lit:      contribution.Lit,
			Diffuse:  colorArray(contribution.Diffuse),
			Specular: colorArray(contribution.Specular),
		})
	}
	return response
}

func lightType(light lights.Light) string {
	return string(light.Type())
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func colorArray(c core.Color) [3]float64 {
	return [3]float64{c.R, c.G, c.B}
}

func colorHex(c core.Color) string {
	r, g, b, _ := c.ToRGBA8()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
