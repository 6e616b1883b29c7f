package main

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/ivlev/storyscroll/internal/director"
	"github.com/ivlev/storyscroll/internal/engine"
	"github.com/ivlev/storyscroll/internal/host"
	"github.com/ivlev/storyscroll/internal/preview"
	"github.com/ivlev/storyscroll/internal/scene"
	"github.com/ivlev/storyscroll/internal/source"
	"github.com/ivlev/storyscroll/internal/vmath"
)

const (
	wheelStep = 60.0 // Pixels per wheel notch
	keyStep   = 12.0 // Pixels per tick while an arrow key is held
)

// Viewer is the ebiten game. Every host callback runs inside Update, on the
// game goroutine; other goroutines only talk to it through channels.
type Viewer struct {
	rast   *preview.Rasterizer
	loader source.Loader
	load   func() (*director.Scenario, error)

	width, height int
	dispatcher    *host.Dispatcher
	page          *engine.Page
	frames        []scene.Frame
	scrollY       float64
	start         time.Time

	tracker *source.Tracker
	models  chan map[string]*source.Model
	reload  chan struct{}
	cancel  context.CancelFunc
}

func NewViewer(rast *preview.Rasterizer, loader source.Loader, load func() (*director.Scenario, error)) *Viewer {
	w, h := rast.Size()
	return &Viewer{
		rast:       rast,
		loader:     loader,
		load:       load,
		width:      w,
		height:     h,
		dispatcher: host.NewDispatcher(float64(w), float64(h)),
		reload:     make(chan struct{}, 1),
		start:      time.Now(),
	}
}

// SetScenario replaces the page, unmounting the old one first, and starts
// loading its models in the background
func (v *Viewer) SetScenario(scenario *director.Scenario) {
	if v.page != nil {
		v.page.Unmount()
	}
	if v.cancel != nil {
		v.cancel()
	}

	v.page = engine.NewPage(scenario, ebiten.TPS())
	v.frames = make([]scene.Frame, len(v.page.Sections))
	index := make(map[string]int, len(scenario.Sections))
	for i, sec := range scenario.Sections {
		index[sec.ID] = i
	}
	v.page.Mount(v.dispatcher, func(f scene.Frame) {
		if i, ok := index[f.Section]; ok {
			v.frames[i] = f
		}
	})
	v.scrollY = clampScroll(v.scrollY, v.page.Height())
	v.dispatcher.Scroll(v.scrollY)

	paths := make([]string, 0, len(scenario.Sections))
	for _, sec := range scenario.Sections {
		paths = append(paths, sec.Model.Path)
	}
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.tracker = source.NewTracker()
	v.models = make(chan map[string]*source.Model, 1)
	go func(tracker *source.Tracker, out chan<- map[string]*source.Model) {
		models, err := source.LoadAll(ctx, v.loader, paths, tracker, 2)
		if err != nil && ctx.Err() == nil {
			log.Printf("[!] Model loading: %v", err)
		}
		out <- models
	}(v.tracker, v.models)
}

// RequestReload asks for the scenario to be read again on the next tick.
// It is safe to call from any goroutine.
func (v *Viewer) RequestReload() {
	select {
	case v.reload <- struct{}{}:
	default:
	}
}

func (v *Viewer) Update() error {
	select {
	case <-v.reload:
		if scenario, err := v.load(); err != nil {
			log.Printf("[!] Reload failed, keeping the current scenario: %v", err)
		} else {
			fmt.Printf("[*] Scenario reloaded: %d sections\n", len(scenario.Sections))
			v.SetScenario(scenario)
		}
	default:
	}

	select {
	case models := <-v.models:
		for _, s := range v.page.Sections {
			if m, ok := models[s.Definition().Model.Path]; ok {
				s.SetModel(m)
			}
		}
	default:
	}

	_, wheel := ebiten.Wheel()
	delta := -wheel * wheelStep
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyJ) {
		delta += keyStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyK) {
		delta -= keyStep
	}
	if delta != 0 {
		next := clampScroll(v.scrollY+delta, v.page.Height())
		if next != v.scrollY {
			v.scrollY = next
			v.dispatcher.Scroll(next)
		}
	}

	cx, cy := ebiten.CursorPosition()
	v.page.SetPointer(normalizePointer(cx, cy, v.width, v.height))

	v.dispatcher.Frame(time.Since(v.start).Seconds())
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.tracker != nil && v.tracker.Active() {
		v.drawLoading(screen, v.tracker.Progress())
		return
	}

	i := v.page.Active(v.scrollY)
	if i < 0 {
		i = len(v.frames) - 1
	}
	if i < 0 {
		return
	}
	img := v.rast.Render(v.frames[i], i == len(v.frames)-1)
	screen.WritePixels(img.Pix)
	v.rast.Release(img)

	f := v.frames[i]
	line := fmt.Sprintf("%s  progress %.2f  phase %d/%d  %.0f fps",
		f.Section, f.Progress, f.Phase+1, len(f.Blocks), ebiten.ActualFPS())
	if scrub, ok := v.page.Sections[i].Scrubbed(); ok {
		line += fmt.Sprintf("  scrub %.2f", scrub)
	}
	ebitenutil.DebugPrint(screen, line)
}

// drawLoading shows the model loading progress bar
func (v *Viewer) drawLoading(screen *ebiten.Image, progress float64) {
	screen.Fill(color.RGBA{R: 10, G: 14, B: 39, A: 255})
	w, h := float32(v.width)/2, float32(8)
	x, y := float32(v.width)/4, float32(v.height)/2
	vector.DrawFilledRect(screen, x, y, w, h, color.RGBA{R: 40, G: 44, B: 70, A: 255}, false)
	vector.DrawFilledRect(screen, x, y, w*float32(progress/100), h, color.RGBA{R: 251, G: 191, B: 36, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Loading %.0f%%", progress), int(x), int(y)-20)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.width, v.height
}

// clampScroll keeps the viewport top inside the page. The last scroll
// position still lies inside the last section.
func clampScroll(y, pageHeight float64) float64 {
	return vmath.Clamp(y, 0, math.Max(0, pageHeight-1))
}

// normalizePointer maps a cursor position to [-1, 1] on both axes, y up
func normalizePointer(x, y, width, height int) vmath.Vec2 {
	if width <= 0 || height <= 0 {
		return vmath.Vec2{}
	}
	return vmath.Vec2{
		X: vmath.Clamp(float64(x)/float64(width)*2-1, -1, 1),
		Y: vmath.Clamp(1-float64(y)/float64(height)*2, -1, 1),
	}
}
