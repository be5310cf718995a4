package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/marketdna/helixviz/internal/orbit"
	"github.com/marketdna/helixviz/internal/render"
	"github.com/marketdna/helixviz/internal/viz"
)

const (
	screenWidth  = 1280
	screenHeight = 800
)

// typeFilters is the cycle order for the T key.
var typeFilters = []string{"all", "optimal", "negative"}

// App wires the visualizer, camera controller and renderer to the ebiten
// loop. It is thin glue: all algorithmic work lives in the internal
// packages.
type App struct {
	log      zerolog.Logger
	viz      *viz.Visualizer
	cam      *render.Camera
	ctrl     *orbit.Controller
	renderer *render.Renderer
	dataPath string
	elapsed  float64
}

func newApp(log zerolog.Logger, dataPath string) *App {
	cam := render.NewCamera(screenWidth, screenHeight)
	ctrl := orbit.NewController(cam)
	ctrl.AutoRotate = true

	a := &App{
		log:      log,
		viz:      viz.New(log),
		cam:      cam,
		ctrl:     ctrl,
		renderer: render.NewRenderer(cam),
		dataPath: dataPath,
	}
	if dataPath != "" {
		a.loadFile()
	}
	return a
}

func (a *App) loadFile() {
	text, err := os.ReadFile(a.dataPath)
	if err != nil {
		a.log.Error().Err(err).Str("path", a.dataPath).Msg("cannot read segment file")
		return
	}
	// Parse errors are logged by the visualizer; prior state is retained.
	_ = a.viz.LoadFromText(text)
}

// Update is called once per tick by ebiten.
func (a *App) Update() error {
	a.handleInput()
	a.ctrl.Update()
	a.elapsed += 1.0 / 60
	return nil
}

func (a *App) handleInput() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		a.ctrl.PointerDown(orbit.ButtonPrimary, x, y)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		a.ctrl.PointerDown(orbit.ButtonSecondary, x, y)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		a.ctrl.PointerDown(orbit.ButtonMiddle, x, y)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) ||
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight) ||
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
		a.ctrl.PointerUp()
	}
	a.ctrl.PointerMove(x, y)

	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		a.ctrl.Wheel(wheelY)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.ctrl.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.ctrl.AutoRotate = !a.ctrl.AutoRotate
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		a.cycleTypeFilter()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) && a.dataPath != "" {
		a.loadFile()
	}

	// Config tweaks rebuild explicitly: SetConfig never rebuilds on its own.
	cfg := a.viz.Config()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		a.viz.SetConfig("helixTurns", float64(cfg.Turns+1))
		a.viz.UpdateVisualization()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		a.viz.SetConfig("helixTurns", float64(cfg.Turns-1))
		a.viz.UpdateVisualization()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		a.viz.SetConfig("helixRadius", cfg.Radius+2)
		a.viz.UpdateVisualization()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		a.viz.SetConfig("helixRadius", cfg.Radius-2)
		a.viz.UpdateVisualization()
	}
}

func (a *App) cycleTypeFilter() {
	cur := a.viz.SelectedType()
	next := typeFilters[0]
	for i, t := range typeFilters {
		if t == cur {
			next = typeFilters[(i+1)%len(typeFilters)]
			break
		}
	}
	a.viz.SetSelectedType(next)
	a.viz.UpdateVisualization()
}

// Draw is called once per frame by ebiten.
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen, a.viz.DNAGroup(), a.elapsed)
	ebitenutil.DebugPrint(screen, a.hud())
}

func (a *App) hud() string {
	var b strings.Builder
	fmt.Fprintf(&b, "filter: %s  (T cycle, R reset cam, Space auto-rotate, arrows shape, F5 reload)\n", a.viz.SelectedType())
	st := a.viz.CalculateStats()
	if st == nil {
		b.WriteString("no data loaded")
		return b.String()
	}
	fmt.Fprintf(&b, "segments: %d  volatility: %s\n", st.TotalSegments, st.Volatility)
	types := make([]string, 0, len(st.TypeCounts))
	for t := range st.TypeCounts {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(&b, "  %s: %d\n", t, st.TypeCounts[t])
	}
	return b.String()
}

// Layout reports the fixed logical screen size.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	dataPath := ""
	if len(os.Args) > 1 {
		dataPath = os.Args[1]
	}

	app := newApp(log, dataPath)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Market DNA Helix")
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal().Err(err).Msg("game loop exited")
	}
}
