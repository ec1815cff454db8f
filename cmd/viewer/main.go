package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charmove3d/internal/game"
	"charmove3d/internal/logger"
)

func main() {
	scene := flag.String("scene", "assets/scenes/playground.yaml", "scene file to load and watch")
	debug := flag.Bool("debug", false, "log solver traces")
	flag.Parse()

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	// The scene path is resolved first so relative paths keep working.
	scenePath, err := filepath.Abs(*scene)
	if err != nil {
		fmt.Fprintln(os.Stderr, "viewer:", err)
		os.Exit(1)
	}
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	if err := logger.Init(*debug); err != nil {
		fmt.Fprintln(os.Stderr, "viewer: init logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := game.New(scenePath).Run(); err != nil {
		logger.Log.Error(err.Error())
		logger.Sync()
		os.Exit(1)
	}
}
