// Package ebitenhost runs an ambient engine inside an Ebitengine window.
//
// The ebiten game loop is the frame clock: every Game.Update steps an
// ambient.ManualClock by one tick (1/TPS), so the engine's emission,
// integration and rendering happen on ebiten's update goroutine. Particles
// are drawn into an offscreen canvas that Game.Draw composites onto the
// screen.
package ebitenhost

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/williamjxj/ambient"
)

// RunConfig holds window and host options for Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Background is drawn behind the particle canvas.
	Background ambient.Color
	// ShowFPS shows an FPS/particle overlay.
	ShowFPS bool
	// ReducedMotion and Tier are passed to Engine.Init.
	ReducedMotion bool
	Tier          ambient.Tier
	// Options are appended to the engine options. The clock is always the
	// game loop.
	Options []ambient.Option
}

// Game is an ebiten.Game driving one engine.
type Game struct {
	engine  *ambient.Engine
	surface *Surface
	clock   *ambient.ManualClock
	bg      ambient.Color
	overlay *overlay

	width, height int
}

// NewGame creates the surface, builds and initializes the engine and starts
// it unless reduced motion is requested.
func NewGame(cfg ambient.Config, rc RunConfig) (*Game, error) {
	if rc.Width <= 0 || rc.Height <= 0 {
		return nil, fmt.Errorf("ebitenhost: invalid window size %dx%d", rc.Width, rc.Height)
	}
	clock := ambient.NewManualClock()
	opts := append([]ambient.Option{}, rc.Options...)
	opts = append(opts, ambient.WithClock(clock))

	g := &Game{
		engine:  ambient.NewEngine(cfg, opts...),
		surface: NewSurface(rc.Width, rc.Height),
		clock:   clock,
		bg:      rc.Background,
		width:   rc.Width,
		height:  rc.Height,
	}
	if rc.ShowFPS {
		g.overlay = newOverlay()
	}

	if err := g.engine.Init(g.surface, ambient.Signals{ReducedMotion: rc.ReducedMotion, Tier: rc.Tier}); err != nil {
		return nil, fmt.Errorf("ebitenhost: init: %w", err)
	}
	if err := g.engine.Start(); err != nil {
		return nil, fmt.Errorf("ebitenhost: start: %w", err)
	}
	return g, nil
}

// Engine returns the engine driven by the game.
func (g *Game) Engine() *ambient.Engine {
	return g.engine
}

// Update advances the frame clock by one tick.
func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.clock.Step(tickDuration(ebiten.TPS()))
	if g.overlay != nil {
		g.overlay.update(tickDuration(ebiten.TPS()).Seconds(), g.engine)
	}
	return nil
}

// tickDuration is the clock step for one update at tps ticks per second.
// SyncWithFPS and other non-positive values fall back to 60.
func tickDuration(tps int) time.Duration {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Second / time.Duration(tps)
}

// Draw composites the particle canvas onto the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.bg.A > 0 {
		screen.Fill(g.bg.NRGBA())
	}
	if !g.engine.Status().Disposed {
		screen.DrawImage(g.surface.Canvas(), nil)
	}
	if g.overlay != nil {
		g.overlay.draw(screen)
	}
}

// Layout resizes the engine when the window size changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.engine.Resize(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}

// Close disposes the engine and releases the canvas.
func (g *Game) Close() {
	g.engine.Dispose()
	g.surface.Release()
}

// Run opens a window and animates an engine built from cfg until the window
// is closed or Escape is pressed.
func Run(cfg ambient.Config, rc RunConfig) error {
	g, err := NewGame(cfg, rc)
	if err != nil {
		return err
	}
	defer g.Close()

	ebiten.SetWindowTitle(rc.Title)
	ebiten.SetWindowSize(rc.Width, rc.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
