package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"thematrix/internal/config"
	"thematrix/internal/game"
)

func main() {
	configPath := flag.String("config", "thematrix.toml", "path to the TOML config file")
	scenePath := flag.String("scene", "", "scene file to load (overrides the config)")
	writeConfig := flag.Bool("write-config", false, "write the effective config to -config and exit")
	flag.Parse()

	// Paths given on the command line are relative to where the user ran us,
	// so pin them before moving to the executable's directory.
	if err := absFlagPaths(flag.CommandLine, "config", "scene"); err != nil {
		log.Fatal(err)
	}

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			if err := os.Chdir(execDir); err != nil {
				log.Printf("chdir %s: %v", execDir, err)
			}
		}
	} else {
		log.Printf("locate executable: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	if *writeConfig {
		if err := config.Save(*configPath, cfg); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", *configPath)
		return
	}

	g := game.New(cfg, *scenePath)
	if err := g.Run(); err != nil {
		log.Fatal(err)
	}
}

// absFlagPaths rewrites the named flags to absolute paths when they were set
// explicitly. Defaults and empty values are left alone.
func absFlagPaths(fs *flag.FlagSet, names ...string) error {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil || !want[f.Name] || f.Value.String() == "" {
			return
		}
		var abs string
		if abs, err = filepath.Abs(f.Value.String()); err != nil {
			err = fmt.Errorf("-%s: %w", f.Name, err)
			return
		}
		err = fs.Set(f.Name, abs)
	})
	return err
}
