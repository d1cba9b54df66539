package ui

import (
	"math"
	"strings"
	"testing"

	"github.com/Faultbox/sushi-raft/internal/engine/input"
	"github.com/Faultbox/sushi-raft/internal/engine/ui2d"
	"github.com/Faultbox/sushi-raft/internal/game/save"
	"github.com/Faultbox/sushi-raft/internal/game/states"
	"github.com/Faultbox/sushi-raft/internal/game/world"
)

type drawnText struct {
	x, y float32
	text string
}

// recorder is a Painter that remembers where text was drawn.
type recorder struct {
	font     *ui2d.Font
	texts    []drawnText
	outlines int
}

func (r *recorder) DrawRect(_, _, _, _ float32, _ ui2d.Color)           {}
func (r *recorder) DrawRectOutline(_, _, _, _, _ float32, _ ui2d.Color) { r.outlines++ }
func (r *recorder) DrawPanel(_, _, _, _ float32, _, _ ui2d.Color)       {}
func (r *recorder) DrawText(x, y float32, text string, _ float32, _ ui2d.Color) {
	r.texts = append(r.texts, drawnText{x, y, text})
}
func (r *recorder) MeasureText(text string, scale float32) (float32, float32) {
	return r.font.MeasureText(text, scale)
}
func (r *recorder) GetScreenSize() (int, int) { return 800, 600 }

type harness struct {
	t     *testing.T
	in    *input.System
	rec   *recorder
	pages *Pages
}

func newHarness(t *testing.T) *harness {
	rec := &recorder{font: ui2d.NewFont()}
	return &harness{
		t:     t,
		in:    input.New(),
		rec:   rec,
		pages: New(ui2d.NewContext(rec)),
	}
}

func (h *harness) frame(draw func(), events ...input.Event) {
	h.rec.texts = h.rec.texts[:0]
	h.rec.outlines = 0
	h.in.BeginFrame()
	for _, e := range events {
		h.in.Apply(e)
	}
	h.pages.Begin(h.in, 1)
	draw()
	h.pages.End()
}

// find returns where text was drawn last frame.
func (h *harness) find(text string) drawnText {
	h.t.Helper()
	for _, d := range h.rec.texts {
		if d.text == text {
			return d
		}
	}
	h.t.Fatalf("expected %q on screen, got %v", text, h.rec.texts)
	return drawnText{}
}

func (h *harness) shown(text string) bool {
	for _, d := range h.rec.texts {
		if strings.Contains(d.text, text) {
			return true
		}
	}
	return false
}

func clickAt(x, y float32) []input.Event {
	px, py := int(x), int(y)
	return []input.Event{
		{Type: input.EventMouseDown, Button: input.PointerLeft, MouseX: px, MouseY: py},
		{Type: input.EventMouseUp, Button: input.PointerLeft, MouseX: px, MouseY: py},
	}
}

// clickText draws once to lay out, then clicks inside the widget labelled
// text.
func (h *harness) clickText(text string, draw func()) {
	h.t.Helper()
	h.frame(draw)
	d := h.find(text)
	h.frame(draw, clickAt(d.x+2, d.y+2)...)
}

func TestStartMenuButtons(t *testing.T) {
	tests := []struct {
		label    string
		wantSub  states.MenuSubState
		wantPage states.OptionsPage
	}{
		{"Play Game", states.MenuFinished, states.OptionsMain},
		{"Cardboard", states.MenuCardboard, states.OptionsMain},
		{"Options", states.MenuOptions, states.OptionsMain},
		{"Quit", states.MenuQuit, states.OptionsMain},
		{"Sushi: salmon", states.MenuOptions, states.OptionsSushi},
		{"Level: River", states.MenuOptions, states.OptionsLevel},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			h := newHarness(t)
			v := states.StartMenuView{SupportsHMD: true, Sushi: "salmon", Level: "River"}
			var sub states.MenuSubState
			var page states.OptionsPage
			h.clickText(tt.label, func() { sub, page = h.pages.StartMenu(v) })
			if sub != tt.wantSub || page != tt.wantPage {
				t.Errorf("expected %s/%s, got %s/%s", tt.wantSub, tt.wantPage, sub, page)
			}
		})
	}
}

func TestStartMenuHidesCardboardWithoutHMD(t *testing.T) {
	h := newHarness(t)
	h.frame(func() { h.pages.StartMenu(states.StartMenuView{Sushi: "salmon", Level: "River"}) })
	if h.shown("Cardboard") {
		t.Error("expected no Cardboard button without a head-mounted display")
	}
}

func TestStartMenuIdle(t *testing.T) {
	h := newHarness(t)
	var sub states.MenuSubState
	h.frame(func() { sub, _ = h.pages.StartMenu(states.StartMenuView{}) })
	if sub != states.MenuStart {
		t.Errorf("expected Start without input, got %s", sub)
	}
}

func TestOptionsMainNavigates(t *testing.T) {
	h := newHarness(t)
	v := states.OptionsView{Page: states.OptionsMain}
	var page states.OptionsPage
	var back bool
	h.clickText("Audio", func() { page, back = h.pages.OptionsMenu(v) })
	if page != states.OptionsAudio || back {
		t.Errorf("expected Audio without back, got %s back=%v", page, back)
	}
}

func TestOptionsBackButton(t *testing.T) {
	h := newHarness(t)
	v := states.OptionsView{Page: states.OptionsLicense, License: "MIT"}
	var back bool
	h.clickText("Back", func() { _, back = h.pages.OptionsMenu(v) })
	if !back {
		t.Error("expected back to be reported")
	}
}

func TestControlsDisabledWithoutHMD(t *testing.T) {
	h := newHarness(t)
	v := states.OptionsView{Page: states.OptionsMain}
	var page states.OptionsPage
	h.clickText("Controls", func() { page, _ = h.pages.OptionsMenu(v) })
	if page != states.OptionsMain {
		t.Errorf("expected disabled Controls to stay on Main, got %s", page)
	}
}

func TestAudioSliderCallsVolumes(t *testing.T) {
	h := newHarness(t)
	var effect, music float64 = -1, -1
	v := states.OptionsView{
		Page:         states.OptionsAudio,
		EffectVolume: 1,
		MusicVolume:  1,
		OnVolumes:    func(e, m float64) { effect, music = e, m },
	}
	draw := func() { h.pages.OptionsMenu(v) }

	h.frame(draw)
	l := h.find("Music volume")
	// The slider fills the row under its label; click its midpoint.
	h.frame(draw, clickAt(l.x+202, l.y+24+12)...)

	if music != 0.5 {
		t.Errorf("expected music 0.5, got %v", music)
	}
	if effect != 1 {
		t.Errorf("expected effect unchanged at 1, got %v", effect)
	}
}

func TestRenderingCheckbox(t *testing.T) {
	h := newHarness(t)
	var gotMode world.RenderingMode = -1
	var gotFlags save.RenderingFlags
	v := states.OptionsView{
		Page: states.OptionsRendering,
		OnRendering: func(m world.RenderingMode, f save.RenderingFlags) {
			gotMode, gotFlags = m, f
		},
	}
	v.Rendering[world.RenderingMonoscopic] = save.RenderingFlags{Phong: true}
	draw := func() { h.pages.OptionsMenu(v) }

	h.frame(draw)
	d := h.find("Shadows")
	// The box sits left of the label.
	h.frame(draw, clickAt(d.x-20, d.y+5)...)

	if gotMode != world.RenderingMonoscopic {
		t.Fatalf("expected monoscopic callback, got %v", gotMode)
	}
	want := save.RenderingFlags{Shadows: true, Phong: true}
	if gotFlags != want {
		t.Errorf("expected %+v, got %+v", want, gotFlags)
	}
}

func TestRenderingHidesStereoWithoutHMD(t *testing.T) {
	h := newHarness(t)
	h.frame(func() { h.pages.OptionsMenu(states.OptionsView{Page: states.OptionsRendering}) })
	if h.shown(world.RenderingStereoscopic.String()) {
		t.Error("expected no stereo options without a head-mounted display")
	}
}

func TestSushiPage(t *testing.T) {
	h := newHarness(t)
	selected := -1
	v := states.OptionsView{
		Page: states.OptionsSushi,
		Sushi: []states.SushiItem{
			{Name: "salmon", Unlocked: true},
			{Name: "eel", Unlocked: false},
			{Name: "tuna", Unlocked: true},
		},
		OnSelectSushi: func(i int) { selected = i },
	}
	draw := func() { h.pages.OptionsMenu(v) }

	h.frame(draw)
	if h.shown("eel") {
		t.Error("expected locked sushi name hidden")
	}
	if !h.shown("?????") {
		t.Error("expected placeholder for locked sushi")
	}

	h.clickText("tuna", draw)
	if selected != 2 {
		t.Errorf("expected tuna selected, got %d", selected)
	}
}

func TestSushiDebugButtons(t *testing.T) {
	h := newHarness(t)
	var unlocked, locked bool
	v := states.OptionsView{
		Page:           states.OptionsSushi,
		OnUnlockRandom: func() { unlocked = true },
		OnLockAll:      func() { locked = true },
	}
	draw := func() { h.pages.OptionsMenu(v) }

	h.clickText("Unlock", draw)
	h.clickText("Reset", draw)
	if !unlocked || !locked {
		t.Errorf("expected both callbacks, got unlock=%v reset=%v", unlocked, locked)
	}
}

func TestLevelPage(t *testing.T) {
	h := newHarness(t)
	selected := -1
	v := states.OptionsView{
		Page:          states.OptionsLevel,
		Levels:        []string{"River", "Canal"},
		OnSelectLevel: func(i int) { selected = i },
	}
	h.clickText("Canal", func() { h.pages.OptionsMenu(v) })
	if selected != 1 {
		t.Errorf("expected level 1, got %d", selected)
	}
}

func TestLongTextPaging(t *testing.T) {
	h := newHarness(t)
	lines := make([]string, 40)
	for i := range lines {
		lines[i] = "line"
	}
	v := states.OptionsView{Page: states.OptionsAbout, About: strings.Join(lines, "\n")}
	draw := func() { h.pages.OptionsMenu(v) }

	h.frame(draw)
	if !h.shown("1/3") {
		t.Fatal("expected first of three pages")
	}
	h.clickText("Next", draw)
	h.frame(draw)
	if !h.shown("2/3") {
		t.Error("expected second page after Next")
	}

	// Leaving and coming back starts from the top.
	h.frame(func() { h.pages.StartMenu(states.StartMenuView{}) })
	h.frame(draw)
	if !h.shown("1/3") {
		t.Error("expected paging reset after leaving the page")
	}
}

func TestScoreReview(t *testing.T) {
	tests := []struct {
		label string
		want  states.MenuSubState
	}{
		{"Menu", states.MenuStart},
		{"Retry", states.MenuFinished},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			h := newHarness(t)
			v := states.ScoreReviewView{
				Summary: states.ScoreSummary{
					PatronsFed:       3,
					TotalScore:       42,
					DidEarnUnlock:    true,
					EarnedUnlockable: "eel",
				},
				RemainingLocked: 2,
				XPUntilReward:   17,
			}
			var got states.MenuSubState
			draw := func() { got = h.pages.ScoreReview(v) }

			h.frame(draw)
			for _, want := range []string{"42", "eel unlocked!", "17 XP until next reward"} {
				if !h.shown(want) {
					t.Errorf("expected %q on the review page", want)
				}
			}

			h.clickText(tt.label, draw)
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestPauseMenu(t *testing.T) {
	tests := []struct {
		label string
		want  states.PauseChoice
	}{
		{"Resume", states.PauseResume},
		{"Quit to Menu", states.PauseQuit},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			h := newHarness(t)
			var got states.PauseChoice
			h.clickText(tt.label, func() { got = h.pages.PauseMenu(states.PauseView{}) })
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestHUDTime(t *testing.T) {
	h := newHarness(t)

	h.frame(func() { h.pages.HUD(states.HUDView{RemainingMs: 61500, Sushi: "salmon"}) })
	if !h.shown("1:02") {
		t.Errorf("expected rounded-up 1:02, got %v", h.rec.texts)
	}

	h.frame(func() { h.pages.HUD(states.HUDView{RemainingMs: -1}) })
	if h.shown(":") {
		t.Errorf("expected no clock without a time limit, got %v", h.rec.texts)
	}
}

func TestHUDJoystick(t *testing.T) {
	h := newHarness(t)
	hud := func() { h.pages.HUD(states.HUDView{RemainingMs: -1}) }

	h.frame(hud)
	if h.rec.outlines != 0 {
		t.Errorf("expected no joystick before binding, got %d outlines", h.rec.outlines)
	}

	h.pages.BindJoystick(states.Joystick{Base: "joystick_base", Tip: "joystick_tip"})
	h.frame(hud)
	if h.rec.outlines != 1 {
		t.Errorf("expected joystick base, got %d outlines", h.rec.outlines)
	}

	h.frame(func() { h.pages.HUD(states.HUDView{RemainingMs: -1, Stereo: true}) })
	if h.rec.outlines != 0 {
		t.Errorf("expected no joystick in stereo, got %d outlines", h.rec.outlines)
	}
}

func TestStereoTextIsDrawnPerEye(t *testing.T) {
	h := newHarness(t)
	h.frame(func() { h.pages.HUD(states.HUDView{Stereo: true, RemainingMs: -1}) })
	// Each eye gets a shadow and a foreground copy.
	if len(h.rec.texts) != 4 {
		t.Errorf("expected 4 draws, got %d", len(h.rec.texts))
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"", 10, []string{""}},
		{"one two three", 7, []string{"one two", "three"}},
		{"a\n\nb", 10, []string{"a", "", "b"}},
		{"averyveryverylongword x", 5, []string{"averyveryverylongword", "x"}},
	}
	for _, tt := range tests {
		got := wrap(tt.text, tt.width)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("wrap(%q, %d): expected %q, got %q", tt.text, tt.width, tt.want, got)
		}
	}
}

func TestDebugOverlayFPS(t *testing.T) {
	d := NewDebugOverlay(true)
	for i := 0; i < 45; i++ {
		d.Update(1000.0 / 60)
	}
	if math.Abs(d.FPS()-60) > 0.5 {
		t.Errorf("expected about 60 fps, got %v", d.FPS())
	}

	h := newHarness(t)
	h.frame(func() { d.Render(h.pages) })
	if !h.shown("FPS: 60") {
		t.Errorf("expected FPS line, got %v", h.rec.texts)
	}
}
