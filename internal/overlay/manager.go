// Package overlay owns the single on-screen surface and decides, for every
// incoming set of boxes, whether to create it, keep its labels or rebuild them.
//
// A Manager is not safe for concurrent use. It is driven from one loop:
// Show, Close and ApplyConfig as requests arrive, Update once per tick.
package overlay

import (
	"image"
	"time"

	"go-overlay/internal/assets"
	"go-overlay/internal/config"
	"go-overlay/internal/event"
	"go-overlay/internal/logger"
	"go-overlay/internal/state"
	"go-overlay/internal/textbox"
	"go-overlay/internal/ui"
	"go-overlay/pkg/render"
)

// Display is the screen the surface covers.
type Display interface {
	// Bounds is the display geometry in logical pixels.
	Bounds() image.Rectangle
	// DeviceScaleFactor is the ratio of device pixels to logical pixels.
	DeviceScaleFactor() float64
	// ExcludeFromCapture hides the overlay window from screen capture.
	ExcludeFromCapture() error
}

// Fonts resolves the configured font family.
type Fonts interface {
	Get(family string) *assets.Font
	// Reload drops cached fonts so that they are read again.
	Reload()
}

// Outcome is what Show did with a payload.
type Outcome int

const (
	Ignored Outcome = iota
	Created
	Reused
	Rebuilt
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Reused:
		return "reused"
	case Rebuilt:
		return "rebuilt"
	}
	return "ignored"
}

// Manager holds at most one Surface.
type Manager struct {
	// JitterTolerance is the reuse threshold in reference pixels.
	JitterTolerance int
	// Now is the clock used for the dismissal deadline.
	Now func() time.Time
	// Events receives lifecycle notifications. May be nil.
	Events *event.Dispatcher

	cfg     config.Config
	style   ui.Style
	display Display
	fonts   Fonts
	log     logger.Writer
	sm      *state.StateMachine
}

// NewManager creates a manager with nothing on screen.
func NewManager(cfg config.Config, d Display, fonts Fonts, l logger.Writer) *Manager {
	if l == nil {
		l = logger.Discard{}
	}
	return &Manager{
		JitterTolerance: DefaultJitterTolerance,
		Now:             time.Now,
		cfg:             cfg,
		style:           ui.StyleFromConfig(cfg),
		display:         d,
		fonts:           fonts,
		log:             l,
		sm:              state.NewStateMachine(),
	}
}

// Config returns the settings in effect.
func (m *Manager) Config() config.Config {
	return m.cfg
}

// Surface returns the visible surface, or nil.
func (m *Manager) Surface() *Surface {
	s, _ := m.sm.Current().(*Surface)
	return s
}

// Visible reports whether a surface is on screen.
func (m *Manager) Visible() bool {
	return m.Surface() != nil
}

// Show displays boxes. The first non-empty call creates the surface;
// later calls update it in place. Empty input and a disabled
// configuration are ignored.
func (m *Manager) Show(boxes []textbox.Box) Outcome {
	if !m.cfg.Enable || len(boxes) == 0 {
		return Ignored
	}

	s := m.Surface()
	if s == nil {
		s = newSurface(m, boxes)
		m.sm.SetState(s)
		m.dispatch(event.SurfaceShown, s, "")
		return Created
	}

	if !s.refresh(boxes) {
		m.dispatch(event.LabelsReused, s, "")
		return Reused
	}
	m.dispatch(event.LabelsRebuilt, s, "")
	return Rebuilt
}

// Close removes the surface, if any.
func (m *Manager) Close() {
	m.close(event.ClosedByRequest)
}

// Update advances the dismissal timer.
func (m *Manager) Update(now time.Time) {
	m.sm.Update(now)
	if s := m.Surface(); s != nil && s.expired {
		m.close(event.ClosedByTimeout)
	}
}

// Draw paints the surface, if any.
func (m *Manager) Draw(c render.Canvas) {
	m.sm.Draw(c)
}

// ApplyConfig switches to cfg. A visible surface is rebuilt with the new
// style, or closed when the overlay got disabled. A new font family
// rereads the fonts from disk.
func (m *Manager) ApplyConfig(cfg config.Config) {
	if cfg.FontFamily != m.cfg.FontFamily {
		m.fonts.Reload()
	}
	m.cfg = cfg
	m.style = ui.StyleFromConfig(cfg)

	s := m.Surface()
	if s == nil {
		return
	}
	if !cfg.Enable {
		m.close(event.ClosedByDisabled)
		return
	}
	s.build()
	m.dispatch(event.LabelsRebuilt, s, "")
}

func (m *Manager) close(reason event.CloseReason) {
	s := m.Surface()
	if s == nil {
		return
	}
	data := event.SurfaceData{Surface: s.ID, Labels: len(s.labels), Reason: reason}
	m.sm.SetState(nil)
	m.Events.Dispatch(event.Event{Type: event.SurfaceClosed, Data: data})
}

func (m *Manager) dispatch(t event.EventType, s *Surface, reason event.CloseReason) {
	m.Events.Dispatch(event.Event{
		Type: t,
		Data: event.SurfaceData{Surface: s.ID, Labels: len(s.labels), Reason: reason},
	})
}
