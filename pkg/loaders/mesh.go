package loaders

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// MeshData contains the raw vertex and face data loaded from a mesh file
type MeshData struct {
	Vertices []core.Vec3 // Vertex positions with the load offset applied
	Faces    []int       // Triangle indices (3 per triangle, 0-based, file order)
}

// TriangleCount returns the number of triangles described by Faces
func (m *MeshData) TriangleCount() int {
	return len(m.Faces) / 3
}

// LoadMesh loads an OBJ or PLY file, chosen by extension, and logs the load
// time and element counts
func LoadMesh(filename string, offset core.Vec3, logger core.Logger) (*MeshData, error) {
	startTime := time.Now()

	var data *MeshData
	var err error

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".obj":
		data, err = LoadOBJ(filename, offset)
	case ".ply":
		data, err = LoadPLY(filename, offset)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q: %s", ext, filename)
	}
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Printf("Load time - %s: %d vertices, %d triangles in %v\n",
			filename, len(data.Vertices), data.TriangleCount(), time.Since(startTime))
	}

	return data, nil
}
