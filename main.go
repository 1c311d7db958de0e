package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config holds the parsed command line options
type Config struct {
	SceneType    string
	Width        int
	Height       int
	VFov         float64
	MaxDepth     int
	MinInfluence float64
	MeshFile     string
	Format       string
	OutputPath   string
	Scale        int
	Smooth       bool
	Annotate     bool
	Verbose      bool
	Help         bool
}

func main() {
	config := parseFlags()

	if config.Help {
		showHelp()
		return
	}

	if err := run(config); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses command line flags and returns configuration
func parseFlags() Config {
	config := Config{}
	flag.StringVar(&config.SceneType, "scene", "default", "Scene ID: 'default', 'mirrors', 'mesh', 'empty' or 'mesh:<name>'")
	flag.IntVar(&config.Width, "width", 0, "Image width in pixels (0 uses the scene default)")
	flag.IntVar(&config.Height, "height", 0, "Image height in pixels (0 uses the scene default)")
	flag.Float64Var(&config.VFov, "fov", 0, "Vertical field of view in degrees (0 uses the scene default)")
	flag.IntVar(&config.MaxDepth, "max-depth", renderer.DefaultRenderConfig().MaxRecursionDepth, "Maximum reflection recursion depth (0 uses the default)")
	flag.Float64Var(&config.MinInfluence, "min-influence", renderer.DefaultRenderConfig().MinInfluence, "Smallest accumulated reflection weight still traced (0 uses the default)")
	flag.StringVar(&config.MeshFile, "mesh", "", "Extra OBJ or PLY mesh to add to the scene")
	flag.StringVar(&config.Format, "format", "png", "Output format: png, bmp or tiff")
	flag.StringVar(&config.OutputPath, "out", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	flag.IntVar(&config.Scale, "scale", 1, "Integer upscale factor applied to the saved image")
	flag.BoolVar(&config.Smooth, "smooth", false, "Use filtered instead of nearest-neighbour upscaling")
	flag.BoolVar(&config.Annotate, "annotate", false, "Append a render statistics caption to the image")
	flag.BoolVar(&config.Verbose, "verbose", false, "Print detailed render statistics")
	flag.BoolVar(&config.Help, "help", false, "Show help information")
	flag.Parse()
	return config
}

// showHelp displays help information
func showHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-16s %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.<format>")
}

func run(config Config) error {
	format, err := output.ParseFormat(config.Format)
	if err != nil {
		return err
	}

	renderConfig := renderer.RenderConfig{
		MaxRecursionDepth: config.MaxDepth,
		MinInfluence:      config.MinInfluence,
	}
	if err := validateRenderConfig(renderConfig); err != nil {
		return err
	}

	logger := core.NewDefaultLogger()

	fmt.Println("Starting Whitted Raytracer...")

	cameraOverride := geometry.CameraConfig{Width: config.Width, Height: config.Height, VFov: config.VFov}
	s, err := createScene(config.SceneType, logger, cameraOverride)
	if err != nil {
		return err
	}

	if config.MeshFile != "" {
		s.AddShape(scene.LoadMesh(config.MeshFile, scene.MeshFileOffset, material.New(core.LightGray, 20, 0), logger))
	}

	fmt.Printf("Scene %s: %dx%d, %d primitives, %d lights\n",
		config.SceneType, s.CameraConfig.Width, s.CameraConfig.Height, s.GetPrimitiveCount(), len(s.Lights))

	rt := renderer.NewRaytracer(s, renderConfig, logger)
	rt.Render()
	stats := rt.Stats()

	if config.Verbose {
		fmt.Printf("Stats: %v\n", stats)
	}

	img, err := postProcess(rt, stats, config)
	if err != nil {
		return err
	}

	filename := config.OutputPath
	if filename == "" {
		filename = filepath.Join(createOutputDir(config.SceneType), outputFilename(time.Now(), format))
	}

	if err := output.Save(filename, img); err != nil {
		return err
	}

	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

// postProcess applies the optional caption and upscale to the rendered frame
func postProcess(rt *renderer.Raytracer, stats renderer.RenderStats, config Config) (img image.Image, err error) {
	img = rt.Image()
	if config.Annotate {
		caption := fmt.Sprintf("%s %dx%d  %d rays  %v", config.SceneType, rt.Width(), rt.Height(),
			stats.TotalRays(), stats.Duration.Round(time.Millisecond))
		if img, err = output.Annotate(img, caption); err != nil {
			return nil, err
		}
	}
	return output.Scale(img, config.Scale, config.Smooth), nil
}

func validateRenderConfig(config renderer.RenderConfig) error {
	if config.MaxRecursionDepth < 0 {
		return fmt.Errorf("max-depth must not be negative, got %d", config.MaxRecursionDepth)
	}
	if config.MinInfluence < 0 {
		return fmt.Errorf("min-influence must not be negative, got %g", config.MinInfluence)
	}
	return nil
}

// createScene creates a scene based on the scene type, falling back to a
// mesh file path when the ID is not registered
func createScene(sceneType string, logger core.Logger, cameraOverride geometry.CameraConfig) (*scene.Scene, error) {
	s, err := scene.Create(sceneType, logger, cameraOverride)
	if err == nil {
		return s, nil
	}

	if isMeshPath(sceneType) {
		if _, statErr := os.Stat(sceneType); statErr != nil {
			return nil, fmt.Errorf("mesh file %s: %w", sceneType, statErr)
		}
		return scene.NewMeshFileScene(sceneType, scene.MeshFileOffset, logger, cameraOverride), nil
	}

	return nil, err
}

func isMeshPath(sceneType string) bool {
	ext := strings.ToLower(filepath.Ext(sceneType))
	return ext == ".obj" || ext == ".ply"
}

// createOutputDir returns output/<scene>, using the file name for mesh paths
func createOutputDir(sceneType string) string {
	name := sceneType
	if isMeshPath(name) {
		name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	name = strings.ReplaceAll(name, ":", "-")
	if name == "" {
		name = "default"
	}
	return filepath.Join("output", name)
}

func outputFilename(now time.Time, format output.Format) string {
	return fmt.Sprintf("render_%s%s", now.Format("20060102_150405"), format.Extension())
}
