package ui

import (
	"fmt"
	"runtime"

	"github.com/Faultbox/sushi-raft/internal/engine/ui2d"
)

// DebugOverlay shows frame timing and heap usage in the top-right corner.
type DebugOverlay struct {
	fps           float64
	frameTime     float64 // ms
	fpsUpdateTime float64 // seconds since last FPS update
	frameAccum    int

	memStats      runtime.MemStats
	memUpdateTime float64

	Enabled bool
}

// NewDebugOverlay creates a debug overlay.
func NewDebugOverlay(enabled bool) *DebugOverlay {
	return &DebugOverlay{Enabled: enabled}
}

// Update records a frame that took deltaMs.
func (d *DebugOverlay) Update(deltaMs float64) {
	d.frameTime = deltaMs
	d.frameAccum++
	d.fpsUpdateTime += deltaMs / 1000.0

	// Update FPS every 0.5 seconds
	if d.fpsUpdateTime >= 0.5 {
		d.fps = float64(d.frameAccum) / d.fpsUpdateTime
		d.frameAccum = 0
		d.fpsUpdateTime = 0
	}

	// Update memory stats every 2 seconds
	d.memUpdateTime += deltaMs / 1000.0
	if d.memUpdateTime >= 2.0 {
		runtime.ReadMemStats(&d.memStats)
		d.memUpdateTime = 0
	}
}

// FPS returns the last sampled frame rate.
func (d *DebugOverlay) FPS() float64 { return d.fps }

// Render draws the overlay through p.
func (d *DebugOverlay) Render(p *Pages) {
	if !d.Enabled {
		return
	}
	sw, _ := p.ctx.GetScreenSize()
	lines := []string{
		fmt.Sprintf("FPS: %.0f (%.1f ms)", d.fps, d.frameTime),
		fmt.Sprintf("Heap: %.1f MB", float64(d.memStats.HeapAlloc)/(1<<20)),
	}
	for i, l := range lines {
		w, h := p.ctx.MeasureText(l)
		x := sw - w - 10
		y := 5 + float32(i)*(h+4)
		p.ctx.Painter().DrawRect(x-5, y-2, w+10, h+4, ui2d.ColorPanelBg.WithAlpha(0.5))
		p.ctx.Text(x, y, l, ui2d.ColorText)
	}
}
