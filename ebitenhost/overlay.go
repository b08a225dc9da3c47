package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/williamjxj/ambient"
)

// overlay displays FPS, TPS and engine status in the top-left corner. The
// text is refreshed every ~0.5 seconds.
type overlay struct {
	img        *ebiten.Image
	lastUpdate float64
}

func newOverlay() *overlay {
	// 180x64 fits four lines of debug text.
	return &overlay{img: ebiten.NewImage(180, 64)}
}

// update redraws the overlay text when at least half a second has passed.
func (o *overlay) update(dt float64, e *ambient.Engine) {
	o.lastUpdate += dt
	if o.lastUpdate < 0.5 {
		return
	}
	o.lastUpdate = 0

	o.img.Clear()
	o.img.Fill(color.RGBA{0, 0, 0, 128})

	st := e.Status()
	stats := e.Stats()
	ebitenutil.DebugPrint(o.img, overlayText(ebiten.ActualFPS(), ebiten.ActualTPS(), st, stats))
}

func (o *overlay) draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, nil)
}

func overlayText(fps, tps float64, st ambient.Status, stats ambient.Stats) string {
	state := st.State.String()
	if st.Degraded {
		state = "degraded"
	} else if st.Static {
		state = "static"
	}
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nParticles: %d\n%s / %s",
		fps, tps, stats.Alive, state, st.Tier)
}
