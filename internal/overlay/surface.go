package overlay

import (
	"time"

	"github.com/google/uuid"

	"go-overlay/internal/logger"
	"go-overlay/internal/textbox"
	"go-overlay/internal/ui"
	"go-overlay/pkg/render"
)

// Surface is the full-screen layer holding one label per box.
// It is a state of the manager's state machine: Enter shows it,
// Exit tears it down.
type Surface struct {
	// ID is unique for every surface the process creates.
	ID string

	m *Manager

	boxes    []textbox.Box
	labels   []*ui.Label
	deadline time.Time
	expired  bool
}

func newSurface(m *Manager, boxes []textbox.Box) *Surface {
	return &Surface{ID: uuid.NewString(), m: m, boxes: boxes}
}

// Enter shows the surface and starts the dismissal countdown.
func (s *Surface) Enter() {
	if err := s.m.display.ExcludeFromCapture(); err != nil {
		s.m.log.Log(logger.Warn, "failed to exclude overlay from capture: %v", err)
	}
	s.m.log.Log(logger.Debug, "screen geometry %v, device scale %.2f",
		s.m.display.Bounds(), s.m.display.DeviceScaleFactor())
	s.build()
	s.arm()
}

// Update marks the surface expired once the deadline has passed.
func (s *Surface) Update(now time.Time) {
	if !s.deadline.IsZero() && !now.Before(s.deadline) {
		s.expired = true
	}
}

// Draw paints every label in box order.
func (s *Surface) Draw(c render.Canvas) {
	for _, l := range s.labels {
		l.Draw(c)
	}
}

// Exit stops the countdown and drops all labels.
func (s *Surface) Exit() {
	s.deadline = time.Time{}
	s.labels = nil
}

// refresh re-arms the countdown and rebuilds the labels unless boxes are
// equivalent to the ones on screen. It reports whether a rebuild happened.
func (s *Surface) refresh(boxes []textbox.Box) bool {
	s.arm()
	if Equivalent(s.boxes, boxes, s.m.JitterTolerance) {
		return false
	}
	s.boxes = boxes
	s.build()
	return true
}

func (s *Surface) arm() {
	s.expired = false
	s.deadline = s.m.Now().Add(time.Duration(s.m.cfg.TimeoutMS) * time.Millisecond)
}

func (s *Surface) build() {
	dpr := s.m.display.DeviceScaleFactor()
	face := s.m.fonts.Get(s.m.cfg.FontFamily)

	s.labels = make([]*ui.Label, 0, len(s.boxes))
	for i, b := range s.boxes {
		rect := Scale(b, dpr, s.m.cfg.BoxExpansion)
		l := ui.NewLabel(b.Text, rect, s.m.style, face)
		s.m.log.Log(logger.Debug, "label %d for %v at %v, size %dpx", i, b, rect, l.FontSize)
		s.labels = append(s.labels, l)
	}
}

// Boxes returns a copy of the boxes currently shown.
func (s *Surface) Boxes() []textbox.Box {
	return append([]textbox.Box(nil), s.boxes...)
}

// Labels returns the current labels, same order as Boxes.
func (s *Surface) Labels() []*ui.Label {
	return append([]*ui.Label(nil), s.labels...)
}

// Deadline is when the surface dismisses itself without further updates.
func (s *Surface) Deadline() time.Time {
	return s.deadline
}
