package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/wavepath/tracer/pkg/config"
	"github.com/wavepath/tracer/pkg/engine"
)

// cliConfig holds the command-line flags controlling which scene to
// load, how many samples to take, and where to write a CPU profile.
type cliConfig struct {
	Scene      string
	ConfigFile string
	Samples    int
	CPUProfile string
}

func main() {
	cfg := parseFlags()

	if cfg.CPUProfile != "" {
		f, err := os.Create(cfg.CPUProfile)
		if err != nil {
			fmt.Printf("could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Printf("could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	rendererCfg := config.Default()
	if cfg.ConfigFile != "" {
		loaded, err := config.Load(cfg.ConfigFile)
		if err != nil {
			fmt.Printf("error loading renderer config: %v\n", err)
			os.Exit(1)
		}
		rendererCfg = loaded
	}

	logger := engine.NewDefaultLogger(log.New(os.Stdout, "", log.LstdFlags))

	fmt.Println("Starting wavepath...")
	start := time.Now()

	r, err := engine.New(cfg.Scene, rendererCfg, logger)
	if err != nil {
		fmt.Printf("error loading scene: %v\n", err)
		os.Exit(1)
	}

	if err := r.Render(cfg.Samples); err != nil {
		fmt.Printf("error rendering: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("render completed in %v\n", time.Since(start))
}

func parseFlags() cliConfig {
	cfg := cliConfig{}
	flag.StringVar(&cfg.Scene, "scene", "scenes/default.pbrt", "PBRT scene file path")
	flag.StringVar(&cfg.ConfigFile, "config", "", "renderer defaults YAML file (optional)")
	flag.IntVar(&cfg.Samples, "samples", 32, "samples per pixel")
	flag.StringVar(&cfg.CPUProfile, "cpuprofile", "", "write CPU profile to file")
	flag.Parse()
	return cfg
}
