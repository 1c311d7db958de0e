package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// LoadOBJ reads a Wavefront OBJ file
func LoadOBJ(filename string, offset core.Vec3) (*MeshData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	data, err := ParseOBJ(file, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// ParseOBJ reads the vertex and triangle statements of an OBJ stream.
//
// Only two statements are understood:
//
//	v x y z      vertex position; offset is added to it
//	f a b c      triangle of 1-based vertex indices
//
// Face tokens such as "3/1/2" use their leading vertex index and negative
// indices count back from the last vertex read. Every other line is ignored.
func ParseOBJ(r io.Reader, offset core.Vec3) (*MeshData, error) {
	data := &MeshData{
		Vertices: make([]core.Vec3, 0, 1000),
		Faces:    make([]int, 0, 3000),
	}

	scanner := bufio.NewScanner(r)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			vertex, err := parseOBJVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			data.Vertices = append(data.Vertices, vertex.Add(offset))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs 3 indices, got %d", lineNumber, len(fields)-1)
			}
			for _, token := range fields[1:4] {
				index, err := parseOBJIndex(token, len(data.Vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNumber, err)
				}
				data.Faces = append(data.Faces, index)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ data: %w", err)
	}

	return data, nil
}

func parseOBJVertex(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("vertex needs 3 coordinates, got %d", len(fields))
	}

	var xyz [3]float64
	for i := range xyz {
		value, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid vertex coordinate %q: %w", fields[i], err)
		}
		xyz[i] = value
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), nil
}

// parseOBJIndex converts a face token into a 0-based vertex index, checking it
// against the vertices read so far
func parseOBJIndex(token string, vertexCount int) (int, error) {
	lead, _, _ := strings.Cut(token, "/")

	index, err := strconv.Atoi(lead)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q: %w", token, err)
	}

	switch {
	case index > 0:
		index--
	case index < 0:
		index += vertexCount
	default:
		return 0, fmt.Errorf("face index %q: OBJ indices start at 1", token)
	}

	if index < 0 || index >= vertexCount {
		return 0, fmt.Errorf("face index %q references undefined vertex (%d defined)", token, vertexCount)
	}
	return index, nil
}
