// Package game drives the field from ebiten's frame loop: it owns the
// window, feeds pointer and resize events into the simulation, applies
// property updates, and renders each frame.
package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/meshfield/internal/config"
	"github.com/iburimskiy/meshfield/internal/field"
	"github.com/iburimskiy/meshfield/internal/geom"
	"github.com/iburimskiy/meshfield/internal/props"
)

// Game implements ebiten.Game. All of its state is touched only from
// ebiten's Update/Draw/Layout, which run on one goroutine.
type Game struct {
	cfg     config.Config
	field   *field.Field
	screen  *screen
	style   field.Style
	fps     float64
	limiter *frameLimiter

	bridge *props.Bridge
	picker *props.Picker

	overlay  bool
	now      func() time.Time
	started  time.Time
	lastStep time.Time
	measured float64

	width, height int
	pendingW      int
	pendingH      int

	warnedNoScreen bool
}

type Option func(*Game)

// WithBridge sets the property bridge the game drains every tick and closes on Close.
func WithBridge(b *props.Bridge) Option {
	return func(g *Game) { g.bridge = b }
}

// WithPicker enables the color picker keys. The picker must also be
// registered on the bridge to deliver results.
func WithPicker(p *props.Picker) Option {
	return func(g *Game) { g.picker = p }
}

func WithOverlay(on bool) Option {
	return func(g *Game) { g.overlay = on }
}

func WithRand(r *rand.Rand) Option {
	return func(g *Game) {
		g.field = field.New(g.cfg.Params(), float64(g.width), float64(g.height), field.WithRand(r))
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

func New(cfg config.Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	style, err := cfg.Style()
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:     cfg,
		screen:  newScreen(),
		style:   style,
		fps:     cfg.FPS(),
		now:     time.Now,
		width:   cfg.Window.Width,
		height:  cfg.Window.Height,
	}
	g.field = field.New(cfg.Params(), float64(g.width), float64(g.height))
	for _, opt := range opts {
		opt(g)
	}
	if g.bridge == nil {
		g.bridge = props.NewBridge(config.PropertyBuffer)
	}
	g.limiter = newFrameLimiter(g.fps)
	g.screen.Resize(g.width, g.height)
	g.started = g.now()
	return g, nil
}

// Field exposes the simulation, read-only by convention.
func (g *Game) Field() *field.Field { return g.field }

func (g *Game) Style() field.Style { return g.style }

func (g *Game) FPS() float64 { return g.fps }

// Run opens the window and blocks until it is closed or Esc/Q is pressed.
// The bridge is closed before Run returns.
func (g *Game) Run() error {
	defer g.Close()

	ebiten.SetWindowSize(g.cfg.Window.Width, g.cfg.Window.Height)
	ebiten.SetWindowTitle(g.cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(g.cfg.Window.Fullscreen)
	ebiten.SetRunnableOnUnfocused(true)
	// Update runs once per displayed frame; the limiter applies the fps property.
	ebiten.SetTPS(ebiten.SyncWithFPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// Close stops every property source. Safe to call more than once.
func (g *Game) Close() {
	g.bridge.Close()
}

// input is one tick's worth of window input.
type input struct {
	cursor       geom.Vector
	cursorInside bool
	pick         *props.Target
	toggle       bool
	quit         bool
}

func (g *Game) readInput() input {
	var in input

	x, y := ebiten.CursorPosition()
	in.cursor = geom.V(float64(x), float64(y))
	in.cursorInside = x >= 0 && y >= 0 && x < g.width && y < g.height

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		t := props.TargetColor
		in.pick = &t
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		t := props.TargetBackground
		in.pick = &t
	}
	in.toggle = inpututil.IsKeyJustPressed(ebiten.KeyO)
	in.quit = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ)
	return in
}

func (g *Game) Update() error {
	in := g.readInput()
	if in.quit {
		return ebiten.Termination
	}
	g.tick(g.now(), in)
	return nil
}

// tick applies pending events and advances the field if the limiter
// allows. It reports whether a step ran.
func (g *Game) tick(now time.Time, in input) bool {
	g.applyProperties()
	g.applyResize()

	if in.cursorInside {
		g.field.SetPointer(in.cursor)
	} else {
		g.field.ClearPointer()
	}
	if in.toggle {
		g.overlay = !g.overlay
	}
	if in.pick != nil {
		g.requestPick(*in.pick)
	}

	if !g.limiter.Allow(now) {
		return false
	}
	if !g.lastStep.IsZero() {
		g.measured = smoothRate(g.measured, now.Sub(g.lastStep))
	}
	g.lastStep = now
	g.field.Step(field.BaseFPS / g.fps)
	return true
}

func (g *Game) requestPick(t props.Target) {
	if g.picker == nil {
		log.Printf("game: color picker disabled")
		return
	}
	var initial colorful.Color
	if t == props.TargetBackground {
		initial = g.style.Background
	} else {
		initial = g.style.Color
	}
	if !g.picker.Request(t, initial) {
		log.Printf("game: color picker already open")
	}
}

func (g *Game) applyProperties() {
	u, ok := g.bridge.Drain()
	if !ok {
		return
	}
	if u.Color != nil {
		g.style.Color = *u.Color
		debugf("color -> %s", u.Color.Hex())
	}
	if u.Background != nil {
		g.style.Background = *u.Background
		debugf("background -> %s", u.Background.Hex())
	}
	if u.FPS != nil {
		g.fps = *u.FPS
		g.limiter.SetFPS(g.fps)
		debugf("fps -> %g", g.fps)
	}
}

func (g *Game) applyResize() {
	if g.pendingW == 0 && g.pendingH == 0 {
		return
	}
	w, h := g.pendingW, g.pendingH
	g.pendingW, g.pendingH = 0, 0
	if w == g.width && h == g.height {
		return
	}
	debugf("resize %dx%d -> %dx%d", g.width, g.height, w, h)
	g.width, g.height = w, h
	g.field.Resize(float64(w), float64(h))
	g.screen.Resize(w, h)
}

func (g *Game) Draw(img *ebiten.Image) {
	g.screen.SetTarget(img)
	if !g.screen.Ready() {
		if !g.warnedNoScreen {
			log.Printf("game: no drawing surface, skipping frames")
			g.warnedNoScreen = true
		}
		return
	}
	g.warnedNoScreen = false

	g.field.Render(g.screen, g.style)

	if g.overlay {
		ebitenutil.DebugPrintAt(img, overlayText(
			len(g.field.Points()), len(g.field.Edges()),
			g.fps, g.measured, g.now().Sub(g.started),
		), 8, 8)
	}
}

// Layout keeps the logical screen equal to the window size; a change is
// applied to the field on the next Update.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth < 1 {
		outsideWidth = 1
	}
	if outsideHeight < 1 {
		outsideHeight = 1
	}
	if outsideWidth != g.width || outsideHeight != g.height {
		g.pendingW, g.pendingH = outsideWidth, outsideHeight
	} else {
		g.pendingW, g.pendingH = 0, 0
	}
	return outsideWidth, outsideHeight
}
