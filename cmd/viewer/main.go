// Command viewer renders a scene once and presents the frame in a desktop
// window. The background colour is shown until the render completes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func main() {
	sceneType := flag.String("scene", "default", "Scene ID to render")
	width := flag.Int("width", 0, "Image width in pixels (0 uses the scene default)")
	height := flag.Int("height", 0, "Image height in pixels (0 uses the scene default)")
	zoom := flag.Int("zoom", 1, "Window size multiplier")
	flag.Parse()

	logger := core.NewSlogLogger(slog.Default(), slog.LevelInfo)
	s, err := scene.Create(*sceneType, logger, geometry.CameraConfig{Width: *width, Height: *height})
	if err != nil {
		log.Fatalf("Error creating scene: %v", err)
	}

	rt := renderer.NewRaytracer(s, renderer.DefaultRenderConfig(), logger)
	v := newViewer(rt, *sceneType)
	go v.render()

	ebiten.SetWindowTitle(fmt.Sprintf("Whitted Raytracer - %s", *sceneType))
	ebiten.SetWindowSize(rt.Width()*max(*zoom, 1), rt.Height()*max(*zoom, 1))
	ebiten.SetTPS(30)
	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("Viewer exited: %v", err)
	}
}

// viewer is an ebiten.Game presenting the Raytracer's frame buffer
type viewer struct {
	rt         *renderer.Raytracer
	sceneType  string
	background color.RGBA
	done       atomic.Bool // set once Render has returned and the frame is stable
	frame      *ebiten.Image
}

func newViewer(rt *renderer.Raytracer, sceneType string) *viewer {
	r, g, b, a := rt.Scene().Background.ToRGBA8()
	return &viewer{
		rt:         rt,
		sceneType:  sceneType,
		background: color.RGBA{R: r, G: g, B: b, A: a},
	}
}

func (v *viewer) render() {
	v.rt.Render()
	log.Printf("Render finished: %v", v.rt.Stats())
	v.done.Store(true)
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if v.done.Load() && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		v.save()
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	if !v.done.Load() {
		screen.Fill(v.background)
		return
	}

	if v.frame == nil {
		v.frame = ebiten.NewImage(v.rt.Width(), v.rt.Height())
		v.frame.WritePixels(v.rt.Image().Pix)
	}
	screen.DrawImage(v.frame, nil)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.rt.Width(), v.rt.Height()
}

func (v *viewer) save() {
	name := fmt.Sprintf("render_%s.png", time.Now().Format("20060102_150405"))
	path := filepath.Join("output", strings.ReplaceAll(v.sceneType, ":", "-"), name)
	if err := output.Save(path, v.rt.Image()); err != nil {
		log.Printf("Error saving render: %v", err)
		return
	}
	log.Printf("Render saved as %s", path)
}
