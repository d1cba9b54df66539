package ui

import (
	"fmt"

	"github.com/Faultbox/sushi-raft/internal/engine/ui2d"
	"github.com/Faultbox/sushi-raft/internal/game/states"
	"github.com/Faultbox/sushi-raft/internal/game/world"
)

const (
	menuW = 420
	menuH = 480

	textColumns = 44
	textLines   = 14
)

// StartMenu implements states.UI.
func (p *Pages) StartMenu(v states.StartMenuView) (states.MenuSubState, states.OptionsPage) {
	p.lastInMenu = false
	next, page := states.MenuStart, states.OptionsMain

	p.window("start", menuW, menuH, "Sushi Raft")
	if p.button("play", "Play Game") {
		next = states.MenuFinished
	}
	if v.SupportsHMD && p.button("cardboard", "Cardboard") {
		next = states.MenuCardboard
	}
	if p.button("options", "Options") {
		next, page = states.MenuOptions, states.OptionsMain
	}
	if p.button("quit", "Quit") {
		next = states.MenuQuit
	}

	p.ctx.Separator()
	if p.button("sushi", "Sushi: "+v.Sushi) {
		next, page = states.MenuOptions, states.OptionsSushi
	}
	if p.button("level", "Level: "+v.Level) {
		next, page = states.MenuOptions, states.OptionsLevel
	}
	p.ctx.EndWindow()

	return next, page
}

// OptionsMenu implements states.UI.
func (p *Pages) OptionsMenu(v states.OptionsView) (states.OptionsPage, bool) {
	if !p.lastInMenu || v.Page != p.lastPage {
		p.textPage = 0
	}
	p.lastInMenu, p.lastPage = true, v.Page

	next := v.Page
	p.window("options", menuW, menuH, v.Page.String())

	switch v.Page {
	case states.OptionsMain:
		next = p.optionsMain(v)
	case states.OptionsAudio:
		p.optionsAudio(v)
	case states.OptionsRendering:
		p.optionsRendering(v)
	case states.OptionsControls:
		p.optionsControls(v)
	case states.OptionsSushi:
		p.optionsSushi(v)
	case states.OptionsLevel:
		p.optionsLevel(v)
	case states.OptionsAbout:
		p.longText(v.About)
	case states.OptionsLicense:
		p.longText(v.License)
	case states.OptionsAccomplishments:
		p.accomplishments(v)
	}

	p.ctx.Separator()
	back := p.button("back", "Back")
	p.ctx.EndWindow()

	return next, back
}

func (p *Pages) optionsMain(v states.OptionsView) states.OptionsPage {
	next := v.Page
	for _, item := range []struct {
		id    string
		label string
		page  states.OptionsPage
	}{
		{"about", "About", states.OptionsAbout},
		{"accomplishments", "Accomplishments", states.OptionsAccomplishments},
		{"licenses", "Licenses", states.OptionsLicense},
		{"audio", "Audio", states.OptionsAudio},
		{"rendering", "Rendering", states.OptionsRendering},
	} {
		if p.button(item.id, item.label) {
			next = item.page
		}
	}
	if v.SupportsHMD {
		if p.button("controls", "Controls") {
			next = states.OptionsControls
		}
	} else {
		p.ctx.Row(32)
		p.ctx.ButtonDisabled("controls", 0, "Controls")
	}
	return next
}

func (p *Pages) optionsAudio(v states.OptionsView) {
	p.label("Music volume")
	p.ctx.Row(24)
	music, musicChanged := p.ctx.Slider("music", 0, float32(v.MusicVolume), "")

	p.label("Effect volume")
	p.ctx.Row(24)
	effect, effectChanged := p.ctx.Slider("effect", 0, float32(v.EffectVolume), "")

	if (musicChanged || effectChanged) && v.OnVolumes != nil {
		v.OnVolumes(float64(effect), float64(music))
	}
}

func (p *Pages) optionsRendering(v states.OptionsView) {
	for _, mode := range []world.RenderingMode{world.RenderingMonoscopic, world.RenderingStereoscopic} {
		if mode == world.RenderingStereoscopic && !v.SupportsHMD {
			continue
		}
		flags := v.Rendering[mode]
		p.label(mode.String())

		p.ctx.Row(20)
		shadows := p.ctx.Checkbox(mode.String()+"_shadows", "Shadows", flags.Shadows)
		p.ctx.Row(20)
		phong := p.ctx.Checkbox(mode.String()+"_phong", "Phong Shading", flags.Phong)
		p.ctx.Row(20)
		specular := p.ctx.Checkbox(mode.String()+"_specular", "Specular", flags.Specular)

		if shadows != flags.Shadows || phong != flags.Phong || specular != flags.Specular {
			flags.Shadows, flags.Phong, flags.Specular = shadows, phong, specular
			if v.OnRendering != nil {
				v.OnRendering(mode, flags)
			}
		}
	}
}

func (p *Pages) optionsControls(v states.OptionsView) {
	label := "Onscreen Controls"
	if v.GyroscopicControls {
		label = "Gyroscopic Controls"
	}
	if p.button("gyro", label) && v.OnGyroscopic != nil {
		v.OnGyroscopic(!v.GyroscopicControls)
	}
}

func (p *Pages) optionsSushi(v states.OptionsView) {
	if v.SelectedSushi >= 0 && v.SelectedSushi < len(v.Sushi) {
		p.label(v.Sushi[v.SelectedSushi].Name)
	}

	p.ctx.BeginListBox("sushi", 0, 200)
	for i, s := range v.Sushi {
		name := s.Name
		if !s.Unlocked {
			name = "  ?????  "
		}
		if p.ctx.Selectable(fmt.Sprintf("sushi%d", i), name, i == v.SelectedSushi) && v.OnSelectSushi != nil {
			v.OnSelectSushi(i)
		}
	}
	p.ctx.EndListBox()

	p.ctx.Row(32)
	if p.ctx.Button("unlock", 196, "Unlock") && v.OnUnlockRandom != nil {
		v.OnUnlockRandom()
	}
	if p.ctx.Button("reset", 196, "Reset") && v.OnLockAll != nil {
		v.OnLockAll()
	}
}

func (p *Pages) optionsLevel(v states.OptionsView) {
	if v.SelectedLevel >= 0 && v.SelectedLevel < len(v.Levels) {
		p.label(v.Levels[v.SelectedLevel])
	}

	p.ctx.BeginListBox("levels", 0, 240)
	for i, name := range v.Levels {
		if p.ctx.Selectable(fmt.Sprintf("level%d", i), name, i == v.SelectedLevel) && v.OnSelectLevel != nil {
			v.OnSelectLevel(i)
		}
	}
	p.ctx.EndListBox()
}

// longText shows text a page of lines at a time.
func (p *Pages) longText(text string) {
	lines := wrap(text, textColumns)
	pages := max((len(lines)+textLines-1)/textLines, 1)
	p.textPage = min(max(p.textPage, 0), pages-1)

	start := p.textPage * textLines
	end := min(start+textLines, len(lines))
	for _, l := range lines[start:end] {
		p.ctx.Row(18)
		p.ctx.LabelColored(l, ui2d.ColorText)
	}
	for i := end - start; i < textLines; i++ {
		p.ctx.Row(18)
	}

	if pages > 1 {
		p.ctx.Row(28)
		if p.ctx.Button("prev", 120, "Prev") {
			p.textPage--
		}
		p.ctx.LabelColored(fmt.Sprintf("%d/%d", p.textPage+1, pages), ui2d.ColorTextDim)
		if p.ctx.Button("next", 120, "Next") {
			p.textPage++
		}
	}
}

func (p *Pages) accomplishments(v states.OptionsView) {
	p.label(fmt.Sprintf("Total XP: %d", v.TotalXP))
	if v.RemainingLocked > 0 {
		p.label(fmt.Sprintf("%d XP until next reward", v.XPUntilReward))
		p.label(fmt.Sprintf("%d sushi still locked", v.RemainingLocked))
	} else {
		p.label("Everything has been unlocked!")
	}
}

// ScoreReview implements states.UI.
func (p *Pages) ScoreReview(v states.ScoreReviewView) states.MenuSubState {
	p.lastInMenu = false
	s := v.Summary
	next := states.MenuScoreReview

	p.window("review", menuW, menuH, "Score")
	p.label(fmt.Sprintf("Patrons Fed:   %d", s.PatronsFed))
	p.label(fmt.Sprintf("Sushi Thrown:  %d", s.SushiThrown))
	p.label(fmt.Sprintf("Laps Finished: %d", s.LapsFinished))
	p.ctx.Separator()
	p.label(fmt.Sprintf("Final Score:   %d", s.TotalScore))
	p.ctx.Separator()

	p.label(fmt.Sprintf("%d XP earned", s.EarnedXP))
	if s.DidEarnUnlock {
		p.label(s.EarnedUnlockable + " unlocked!")
	}
	if v.RemainingLocked > 0 {
		p.label(fmt.Sprintf("%d XP until next reward", v.XPUntilReward))
	} else {
		p.label("Everything has been unlocked!")
	}

	p.ctx.Separator()
	p.ctx.Row(32)
	if p.ctx.Button("menu", 196, "Menu") {
		next = states.MenuStart
	}
	if p.ctx.Button("retry", 196, "Retry") {
		next = states.MenuFinished
	}
	p.ctx.EndWindow()

	return next
}
