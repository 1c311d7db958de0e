package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	staticDir := flag.String("static", "static/", "Directory holding the web UI")
	scenesDir := flag.String("scenes", "", "Directory searched first for OBJ/PLY mesh scenes")
	flag.Parse()

	if *scenesDir != "" {
		if info, err := os.Stat(*scenesDir); err != nil || !info.IsDir() {
			log.Printf("Scenes directory %s not found", *scenesDir)
			os.Exit(1)
		}
		scene.ScenesDirs = append([]string{*scenesDir}, scene.ScenesDirs...)
	}

	webServer := server.NewServer(*port)
	webServer.SetStaticDir(*staticDir)

	log.Printf("Whitted Raytracer Web Server")
	log.Printf("Serving %s, mesh scenes from %v", *staticDir, scene.ScenesDirs)
	log.Printf("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
