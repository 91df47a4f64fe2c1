package overlay

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-overlay/internal/assets"
	"go-overlay/internal/config"
	"go-overlay/internal/event"
	"go-overlay/internal/logger"
	"go-overlay/internal/textbox"
	"go-overlay/pkg/render"
)

type testDisplay struct {
	dpr      float64
	err      error
	excluded int
}

func (d *testDisplay) Bounds() image.Rectangle { return image.Rect(0, 0, 1920, 1080) }
func (d *testDisplay) DeviceScaleFactor() float64 { return d.dpr }

func (d *testDisplay) ExcludeFromCapture() error {
	d.excluded++
	return d.err
}

type testLog struct {
	lines []string
}

func (l *testLog) Log(level logger.Level, format string, args ...interface{}) {
	if level >= logger.Warn {
		l.lines = append(l.lines, format)
	}
}

type countCanvas struct {
	rects int
}

func (c *countCanvas) FillRoundedRect(render.Rect, float32, color.Color) { c.rects++ }
func (c *countCanvas) StrokePath(*render.Path, float32, color.Color) {}
func (c *countCanvas) FillPath(*render.Path, color.Color) {}

type harness struct {
	m      *Manager
	disp   *testDisplay
	log    *testLog
	now    time.Time
	events []event.Event
}

func newHarness(t *testing.T, cfg config.Config) *harness {
	t.Helper()
	fonts := assets.NewFontManager(logger.Discard{})
	fonts.Dirs = nil

	h := &harness{
		disp: &testDisplay{dpr: 1},
		log:  &testLog{},
		now:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	h.m = NewManager(cfg, h.disp, fonts, h.log)
	h.m.Now = func() time.Time { return h.now }
	h.m.Events = event.NewDispatcher()
	h.m.Events.SubscribeAll(event.ListenerFunc(func(e event.Event) {
		h.events = append(h.events, e)
	}))
	return h
}

func (h *harness) advance(d time.Duration) {
	h.now = h.now.Add(d)
	h.m.Update(h.now)
}

func (h *harness) types() []event.EventType {
	out := make([]event.EventType, len(h.events))
	for i, e := range h.events {
		out[i] = e.Type
	}
	return out
}

func sample() []textbox.Box {
	return []textbox.Box{
		{X: 10, Y: 20, Width: 200, Height: 40, Text: "Hello"},
		{X: 300, Y: 400, Width: 120, Height: 30, Text: "World"},
	}
}

func TestManagerShowCreates(t *testing.T) {
	h := newHarness(t, config.Default())
	require.False(t, h.m.Visible())

	require.Equal(t, Created, h.m.Show(sample()))
	require.True(t, h.m.Visible())
	require.Equal(t, 1, h.disp.excluded)

	s := h.m.Surface()
	require.Equal(t, sample(), s.Boxes())
	require.Len(t, s.Labels(), 2)
	require.Equal(t, image.Rect(7, 17, 213, 63), s.Labels()[0].Rect)
	require.Equal(t, h.now.Add(10*time.Second), s.Deadline())

	require.Equal(t, []event.EventType{event.SurfaceShown}, h.types())
	require.NotEmpty(t, s.ID)
	require.Equal(t, event.SurfaceData{Surface: s.ID, Labels: 2}, h.events[0].Data)
}

func TestManagerIgnoresEmptyAndDisabled(t *testing.T) {
	h := newHarness(t, config.Default())
	require.Equal(t, Ignored, h.m.Show(nil))
	require.False(t, h.m.Visible())

	cfg := config.Default()
	cfg.Enable = false
	h = newHarness(t, cfg)
	require.Equal(t, Ignored, h.m.Show(sample()))
	require.False(t, h.m.Visible())
	require.Empty(t, h.events)
	require.Zero(t, h.disp.excluded)
}

func TestManagerReuseWithinJitter(t *testing.T) {
	h := newHarness(t, config.Default())
	h.m.Show(sample())
	first := h.m.Surface().Labels()

	moved := sample()
	moved[1].X += 3
	require.Equal(t, Reused, h.m.Show(moved))

	s := h.m.Surface()
	require.Equal(t, first, s.Labels())
	require.Same(t, first[1], s.Labels()[1])
	// the boxes on screen stay the ones the labels were built from
	require.Equal(t, sample(), s.Boxes())
	require.Equal(t, []event.EventType{event.SurfaceShown, event.LabelsReused}, h.types())
}

func TestManagerRebuildBeyondJitter(t *testing.T) {
	h := newHarness(t, config.Default())
	h.m.Show(sample())
	first := h.m.Surface().Labels()

	moved := sample()
	moved[1].X += 10
	require.Equal(t, Rebuilt, h.m.Show(moved))

	s := h.m.Surface()
	require.NotSame(t, first[1], s.Labels()[1])
	require.Equal(t, moved, s.Boxes())
	require.Equal(t, image.Rect(307, 397, 433, 433), s.Labels()[1].Rect)
	require.Equal(t, []event.EventType{event.SurfaceShown, event.LabelsRebuilt}, h.types())

	// capture exclusion is requested once per surface
	require.Equal(t, 1, h.disp.excluded)
}

func TestManagerRebuildOnTextOrCount(t *testing.T) {
	h := newHarness(t, config.Default())
	h.m.Show(sample())

	changed := sample()
	changed[0].Text = "Hallo"
	require.Equal(t, Rebuilt, h.m.Show(changed))
	require.Equal(t, Rebuilt, h.m.Show(changed[:1]))
	require.Len(t, h.m.Surface().Labels(), 1)
}

func TestManagerCustomTolerance(t *testing.T) {
	h := newHarness(t, config.Default())
	h.m.JitterTolerance = 0
	h.m.Show(sample())

	moved := sample()
	moved[0].Y++
	require.Equal(t, Rebuilt, h.m.Show(moved))
}

func TestManagerIdempotentUpdate(t *testing.T) {
	h := newHarness(t, config.Default())
	h.m.Show(sample())
	rects := func() []image.Rectangle {
		var out []image.Rectangle
		for _, l := range h.m.Surface().Labels() {
			out = append(out, l.Rect)
		}
		return out
	}
	before := rects()

	h.now = h.now.Add(4 * time.Second)
	require.Equal(t, Reused, h.m.Show(sample()))
	require.Equal(t, Reused, h.m.Show(sample()))
	require.Equal(t, before, rects())
	require.Equal(t, h.now.Add(10*time.Second), h.m.Surface().Deadline())
}

func TestManagerDismissal(t *testing.T) {
	h := newHarness(t, config.Default())
	h.m.Show(sample())
	id := h.m.Surface().ID

	h.advance(9 * time.Second)
	require.True(t, h.m.Visible())

	// any update re-arms the countdown
	h.m.Show(sample())
	h.advance(9 * time.Second)
	require.True(t, h.m.Visible())

	h.advance(time.Second)
	require.False(t, h.m.Visible())
	require.Nil(t, h.m.Surface())

	last := h.events[len(h.events)-1]
	require.Equal(t, event.SurfaceClosed, last.Type)
	require.Equal(t, event.SurfaceData{Surface: id, Labels: 2, Reason: event.ClosedByTimeout}, last.Data)

	// a new payload after dismissal creates a fresh surface
	require.Equal(t, Created, h.m.Show(sample()))
	require.NotEqual(t, id, h.m.Surface().ID)
	require.Equal(t, 2, h.disp.excluded)
}

func TestManagerClose(t *testing.T) {
	h := newHarness(t, config.Default())
	h.m.Close()
	require.Empty(t, h.events)

	h.m.Show(sample())
	s := h.m.Surface()
	h.m.Close()
	require.False(t, h.m.Visible())
	require.Empty(t, s.Labels())
	require.True(t, s.Deadline().IsZero())

	last := h.events[len(h.events)-1]
	require.Equal(t, event.SurfaceData{Surface: s.ID, Labels: 2, Reason: event.ClosedByRequest}, last.Data)

	// closed surfaces never fire
	h.advance(time.Minute)
	require.Len(t, h.events, 2)
}

func TestManagerDraw(t *testing.T) {
	h := newHarness(t, config.Default())
	var c countCanvas
	h.m.Draw(&c)
	require.Zero(t, c.rects)

	h.m.Show(sample())
	h.m.Draw(&c)
	require.Equal(t, 2, c.rects)
}

func TestManagerDeviceScale(t *testing.T) {
	h := newHarness(t, config.Default())
	h.disp.dpr = 2
	h.m.Show(sample())
	require.Equal(t, image.Rect(2, 7, 108, 33), h.m.Surface().Labels()[0].Rect)
}

func TestManagerCaptureExclusionFailureIsLogged(t *testing.T) {
	h := newHarness(t, config.Default())
	h.disp.err = errors.New("unsupported")

	require.Equal(t, Created, h.m.Show(sample()))
	require.True(t, h.m.Visible())
	require.Len(t, h.log.lines, 1)
}

func TestManagerApplyConfig(t *testing.T) {
	h := newHarness(t, config.Default())
	h.m.ApplyConfig(config.Default())
	require.Empty(t, h.events)

	h.m.Show(sample())
	first := h.m.Surface().Labels()

	cfg := config.Default()
	cfg.BoxExpansion = 0
	h.m.ApplyConfig(cfg)
	require.Equal(t, image.Rect(10, 20, 210, 60), h.m.Surface().Labels()[0].Rect)
	require.NotSame(t, first[0], h.m.Surface().Labels()[0])
	require.Equal(t, event.LabelsRebuilt, h.events[len(h.events)-1].Type)

	cfg.Enable = false
	h.m.ApplyConfig(cfg)
	require.False(t, h.m.Visible())
	last := h.events[len(h.events)-1]
	require.Equal(t, event.ClosedByDisabled, last.Data.(event.SurfaceData).Reason)
	require.Equal(t, 2, last.Data.(event.SurfaceData).Labels)
	require.Equal(t, Ignored, h.m.Show(sample()))
}

func TestManagerSingleSurface(t *testing.T) {
	h := newHarness(t, config.Default())
	h.m.Show(sample())
	s := h.m.Surface()
	for i := 0; i < 5; i++ {
		moved := sample()
		moved[0].X += 20 * (i + 1)
		h.m.Show(moved)
		require.Same(t, s, h.m.Surface())
	}
}

func TestOutcomeString(t *testing.T) {
	require.Equal(t, "created", Created.String())
	require.Equal(t, "reused", Reused.String())
	require.Equal(t, "rebuilt", Rebuilt.String())
	require.Equal(t, "ignored", Ignored.String())
}

type reloadCounter struct {
	*assets.FontManager
	reloads int
}

func (f *reloadCounter) Reload() {
	f.reloads++
	f.FontManager.Reload()
}

func TestManagerApplyConfigReloadsFonts(t *testing.T) {
	fonts := &reloadCounter{FontManager: assets.NewFontManager(logger.Discard{})}
	fonts.Dirs = nil
	m := NewManager(config.Default(), &testDisplay{dpr: 1}, fonts, nil)
	m.Show(sample())

	m.ApplyConfig(config.Default())
	require.Zero(t, fonts.reloads)

	cfg := config.Default()
	cfg.FontFamily = "Go Mono"
	m.ApplyConfig(cfg)
	require.Equal(t, 1, fonts.reloads)
	require.Len(t, m.Surface().Labels(), 2)

	m.ApplyConfig(cfg)
	require.Equal(t, 1, fonts.reloads)
}
