package ui

import (
	"fmt"

	"github.com/Faultbox/sushi-raft/internal/engine/ui2d"
	"github.com/Faultbox/sushi-raft/internal/game/states"
)

var colorShadow = ui2d.Color{R: 0, G: 0, B: 0, A: 0.6}

// shadowText draws text with a drop shadow so it reads over the scene.
func (p *Pages) shadowText(x, y float32, text string, color ui2d.Color) {
	p.ctx.Text(x+2, y+2, text, colorShadow)
	p.ctx.Text(x, y, text, color)
}

// centerText draws text horizontally centered at height y, or centered in
// each eye's half of the screen in stereo.
func (p *Pages) centerText(y float32, text string, stereo bool, color ui2d.Color) {
	sw, _ := p.ctx.GetScreenSize()
	tw, _ := p.ctx.MeasureText(text)
	if !stereo {
		p.shadowText((sw-tw)/2, y, text, color)
		return
	}
	half := sw / 2
	p.shadowText((half-tw)/2, y, text, color)
	p.shadowText(half+(half-tw)/2, y, text, color)
}

// BindJoystick implements states.UI.
func (p *Pages) BindJoystick(j states.Joystick) {
	p.joystick = j
}

const (
	joystickSize = 96
	joystickTip  = 36
)

// drawJoystick paints the on-screen controller in the lower left corner.
// The UI atlas only holds glyphs, so the images are drawn as shapes.
func (p *Pages) drawJoystick() {
	if p.joystick.Base == "" {
		return
	}
	_, sh := p.ctx.GetScreenSize()
	x, y := float32(24), sh-joystickSize-24
	painter := p.ctx.Painter()
	painter.DrawRectOutline(x, y, joystickSize, joystickSize, 2, ui2d.ColorWhite.WithAlpha(0.5))
	if p.joystick.Tip != "" {
		off := float32(joystickSize-joystickTip) / 2
		painter.DrawRect(x+off, y+off, joystickTip, joystickTip, ui2d.ColorWhite.WithAlpha(0.6))
	}
}

// HUD implements states.UI.
func (p *Pages) HUD(v states.HUDView) {
	p.lastInMenu = false
	line := fmt.Sprintf("Fed %d  Thrown %d  Lap %d", v.PatronsFed, v.SushiThrown, v.Lap+1)
	if v.RemainingMs >= 0 {
		seconds := int(v.RemainingMs+999) / 1000
		line += fmt.Sprintf("  %d:%02d", seconds/60, seconds%60)
	}
	line += "  " + v.Sushi
	if v.Stereo {
		p.centerText(12, line, true, ui2d.ColorWhite)
		return
	}
	p.shadowText(12, 12, line, ui2d.ColorWhite)
	p.drawJoystick()
}

// PauseMenu implements states.UI.
func (p *Pages) PauseMenu(v states.PauseView) states.PauseChoice {
	choice := states.PauseNone
	p.ctx.FillScreen(ui2d.Color{A: 0.4})

	p.window("pause", 320, 220, "Paused")
	p.label(fmt.Sprintf("Patrons fed: %d", v.PatronsFed))
	p.label(fmt.Sprintf("Lap: %d", v.Lap+1))
	p.ctx.Separator()
	if p.button("resume", "Resume") {
		choice = states.PauseResume
	}
	if p.button("quit", "Quit to Menu") {
		choice = states.PauseQuit
	}
	p.ctx.EndWindow()

	return choice
}

// GameOver implements states.UI.
func (p *Pages) GameOver(v states.GameOverView) {
	_, sh := p.ctx.GetScreenSize()
	y := sh / 3
	p.centerText(y, "Game Over", false, ui2d.ColorWhite)
	p.centerText(y+30, fmt.Sprintf("%d patrons fed", v.PatronsFed), false, ui2d.ColorWhite)
	if v.HighScore {
		p.centerText(y+60, "New high score!", false, ui2d.ColorHighlight)
	}
	if v.CanDismiss {
		p.centerText(y+100, "Click to continue", false, ui2d.ColorTextDim)
	}
}

// Intro implements states.UI.
func (p *Pages) Intro(v states.IntroView) {
	_, sh := p.ctx.GetScreenSize()
	p.centerText(sh/2, "Get ready", true, ui2d.ColorWhite)
	p.centerText(sh/2+30, fmt.Sprintf("%d", int(v.RemainingMs+999)/1000), true, ui2d.ColorWhite)
}

// SceneLab implements states.UI.
func (p *Pages) SceneLab(v states.SceneLabView) {
	pos, dir := v.Pose.Position, v.Pose.Facing
	p.shadowText(12, 12, "Scene lab (F10 to return)", ui2d.ColorHighlight)
	p.shadowText(12, 36, fmt.Sprintf("pos %.1f %.1f %.1f", pos.X, pos.Y, pos.Z), ui2d.ColorWhite)
	p.shadowText(12, 60, fmt.Sprintf("dir %.2f %.2f %.2f", dir.X, dir.Y, dir.Z), ui2d.ColorWhite)
}
