// Headless character simulation driven by a TOML run profile.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"charmove3d/internal/logger"
	"charmove3d/internal/sim"
	"charmove3d/internal/world"

	"go.uber.org/zap"
)

func main() {
	profilePath := flag.String("profile", "", "run profile (TOML)")
	scenePath := flag.String("scene", "", "scene file, overrides the profile's scene")
	ticks := flag.Int("ticks", 0, "number of ticks, overrides the profile's duration")
	debug := flag.Bool("debug", false, "log solver traces")
	flag.Parse()

	if err := run(*profilePath, *scenePath, *ticks, *debug); err != nil {
		fmt.Fprintln(os.Stderr, "charsim:", err)
		os.Exit(1)
	}
}

func run(profilePath, scenePath string, ticks int, debug bool) error {
	profile := sim.DefaultProfile()
	if profilePath != "" {
		p, err := sim.LoadProfile(profilePath)
		if err != nil {
			return err
		}
		profile = p
	}
	if scenePath != "" {
		profile.Scene = scenePath
	}
	if profile.Scene == "" {
		return errors.New("no scene: pass -scene or set scene in the profile")
	}

	if err := logger.Init(debug || profile.Debug); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	w := world.New()
	if err := w.LoadScene(profile.Scene); err != nil {
		return err
	}

	runner, err := sim.NewRunner(w, profile)
	if err != nil {
		return err
	}

	sum := runner.Run(ticks)
	logger.Log.Info("summary",
		zap.String("scene", profile.Scene),
		zap.Int("ticks", sum.Ticks),
		zap.Int("contacts", sum.Contacts),
		zap.Float32("finalSpeed", sum.FinalSpeed))
	fmt.Printf("%d ticks in %v: %.2fm travelled, end (%.2f, %.2f, %.2f), %s\n",
		sum.Ticks, sum.Elapsed, sum.Travelled, sum.End.X, sum.End.Y, sum.End.Z, sum.FinalState)
	return nil
}
