package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

const (
	builtinGroup = "Built-in Scenes"
	meshGroup    = "Mesh Files"
	meshIDPrefix = "mesh:"
)

// MeshFileOffset is where meshes discovered in the scenes directory are placed
var MeshFileOffset = core.NewVec3(0, 0, 12)

// ScenesDirs are searched in order for mesh files to offer as scenes
var ScenesDirs = []string{"scenes", "../scenes"}

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, accepted by Create
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "mesh"
	FilePath    string `json:"filePath"`    // Path to mesh file (mesh type only)
	Variant     string `json:"variant"`     // Variant name (optional)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

var builtInScenes = []SceneInfo{
	{
		ID:          "default",
		Name:        "Default Scene",
		DisplayName: "Default Scene",
		Description: "Three spheres over a grey floor with two directional lights",
		Group:       builtinGroup,
		Type:        "builtin",
	},
	{
		ID:          "mirrors",
		Name:        "Mirrors",
		DisplayName: "Mirrors",
		Description: "Sphere between two facing mirrors, bounded by the recursion limit",
		Group:       builtinGroup,
		Type:        "builtin",
	},
	{
		ID:          "mesh",
		Name:        "Box Mesh",
		DisplayName: "Box Mesh",
		Description: "Triangle mesh box with a reflective sphere and floor",
		Group:       builtinGroup,
		Type:        "builtin",
	},
	{
		ID:          "empty",
		Name:        "Empty",
		DisplayName: "Empty",
		Description: "No shapes or lights, background only",
		Group:       builtinGroup,
		Type:        "builtin",
	},
}

// Create builds the scene with the given ID. Built-in IDs are listed by
// ListScenes; "mesh:<name>" loads <name>.obj or <name>.ply from the scenes directory.
func Create(id string, logger core.Logger, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	switch id {
	case "default":
		return NewDefaultScene(cameraOverrides...), nil
	case "mirrors":
		return NewMirrorsScene(cameraOverrides...), nil
	case "mesh":
		return NewMeshScene(cameraOverrides...), nil
	case "empty":
		return NewEmptyScene(cameraOverrides...), nil
	}

	if strings.HasPrefix(id, meshIDPrefix) {
		meshScenes, err := ListMeshScenes()
		if err != nil {
			return nil, err
		}
		for _, info := range meshScenes {
			if info.ID == id {
				return NewMeshFileScene(info.FilePath, MeshFileOffset, logger, cameraOverrides...), nil
			}
		}
	}

	return nil, fmt.Errorf("unknown scene %q", id)
}

// ListScenes returns the built-in scenes followed by any discovered mesh scenes
func ListScenes() []SceneInfo {
	scenes := append([]SceneInfo{}, builtInScenes...)

	meshScenes, err := ListMeshScenes()
	if err != nil {
		fmt.Printf("Warning: failed to list mesh scenes: %v\n", err)
		return scenes
	}
	return append(scenes, meshScenes...)
}

// ListMeshScenes scans the scenes directory for OBJ and PLY files
func ListMeshScenes() ([]SceneInfo, error) {
	var scenesDir string
	for _, path := range ScenesDirs {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			scenesDir = path
			break
		}
	}

	if scenesDir == "" {
		// No scenes directory found, return empty list
		return []SceneInfo{}, nil
	}

	var files []string
	for _, pattern := range []string{"*.obj", "*.ply"} {
		matches, err := filepath.Glob(filepath.Join(scenesDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		sceneInfo, err := ParseMeshMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseMeshMetadata extracts metadata from the leading comments of a mesh
// file. OBJ comments start with "#", PLY header comments with "comment".
func ParseMeshMetadata(filePath string) (SceneInfo, error) {
	// Extract filename without extension for fallback values
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          meshIDPrefix + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       meshGroup,
		Type:        "mesh",
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		// If we can't read the file, return with fallback values
		return sceneInfo, nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
scan:
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		var content string
		switch {
		case line == "ply" || strings.HasPrefix(line, "format "):
			continue
		case strings.HasPrefix(line, "#"):
			content = strings.TrimSpace(strings.TrimPrefix(line, "#"))
		case strings.HasPrefix(line, "comment "):
			content = strings.TrimSpace(strings.TrimPrefix(line, "comment "))
		default:
			// Stop parsing at first non-comment line
			break scan
		}

		if value, ok := strings.CutPrefix(content, "Scene:"); ok {
			sceneInfo.Name = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(content, "Variant:"); ok {
			sceneInfo.Variant = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(content, "Description:"); ok {
			sceneInfo.Description = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(content, "Group:"); ok {
			sceneInfo.Group = strings.TrimSpace(value)
		}
	}

	// Update display name based on parsed metadata
	if sceneInfo.Variant != "" {
		sceneInfo.DisplayName = fmt.Sprintf("%s - %s", sceneInfo.Name, sceneInfo.Variant)
	} else {
		sceneInfo.DisplayName = sceneInfo.Name
	}

	return sceneInfo, scanner.Err()
}

// ListAllScenes returns all scenes grouped by category, built-in first
func ListAllScenes() ScenesResponse {
	var response ScenesResponse

	// Group scenes by their Group field
	groupMap := make(map[string][]SceneInfo)
	for _, scene := range ListScenes() {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Create ordered groups (Built-in first, then alphabetical)
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if builtIn, exists := groupMap[builtinGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: builtIn})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return response
}

// titleCase converts a filename-style string to title case
// e.g., "stanford-bunny" -> "Stanford Bunny"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
