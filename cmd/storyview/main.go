package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mitchellh/go-homedir"

	"github.com/ivlev/storyscroll/internal/director"
	"github.com/ivlev/storyscroll/internal/preview"
	"github.com/ivlev/storyscroll/internal/source"
)

func main() {
	scenarioPtr := flag.String("scenario", "", "Scenario file, YAML or TOML (default: the preset lineup)")
	presetsPtr := flag.String("presets", strings.Join(director.DefaultLineup, ","), "Comma-separated section presets used when no scenario file is given")
	assetsPtr := flag.String("assets", ".", "Directory model paths are relative to")
	backdropsPtr := flag.String("backdrops", "", "Directory of environment images")
	widthPtr := flag.Int("width", 960, "Window width")
	heightPtr := flag.Int("height", 540, "Window height")
	glowPtr := flag.Float64("glow", 0, "Light glow blur radius, 0 disables it")
	watchPtr := flag.Bool("watch", false, "Reload the scenario file when it changes")
	flag.Parse()

	path := expand(*scenarioPtr)
	load := func() (*director.Scenario, error) {
		if path != "" {
			return director.ReadScenario(path)
		}
		return director.NewDirector().GenerateScenario(splitList(*presetsPtr)...)
	}
	scenario, err := load()
	if err != nil {
		log.Fatalf("[-] Error loading scenario: %v", err)
	}

	opts := preview.Options{Glow: *glowPtr, CallToAction: scenario.CallToAction}
	if *backdropsPtr != "" {
		opts.Backdrops = source.NewBackdrops(expand(*backdropsPtr))
	}
	rast, err := preview.NewRasterizer(*widthPtr, *heightPtr, opts)
	if err != nil {
		log.Fatalf("[-] Error: %v", err)
	}

	v := NewViewer(rast, source.NewGLBLoader(expand(*assetsPtr)), load)
	v.SetScenario(scenario)

	if *watchPtr {
		if path == "" {
			log.Printf("[!] -watch needs -scenario, ignoring it")
		} else {
			stop, err := director.WatchScenario(path, v.RequestReload)
			if err != nil {
				log.Fatalf("[-] Error watching %s: %v", path, err)
			}
			defer stop()
			fmt.Printf("[*] Watching %s\n", path)
		}
	}

	ebiten.SetWindowSize(*widthPtr, *heightPtr)
	ebiten.SetWindowTitle(fmt.Sprintf("storyview - %s", scenario.Title))
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func expand(path string) string {
	if path == "" {
		return ""
	}
	p, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return p
}
