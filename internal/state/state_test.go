package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-overlay/pkg/render"
)

type traceState struct {
	name string
	log  *[]string
}

func (s *traceState) Enter() { *s.log = append(*s.log, "enter "+s.name) }
func (s *traceState) Update(time.Time) { *s.log = append(*s.log, "update "+s.name) }
func (s *traceState) Draw(render.Canvas) { *s.log = append(*s.log, "draw "+s.name) }
func (s *traceState) Exit() { *s.log = append(*s.log, "exit "+s.name) }

func TestStateMachine(t *testing.T) {
	var log []string
	sm := NewStateMachine()

	sm.Update(time.Now())
	sm.Draw(nil)
	require.Nil(t, sm.Current())

	a := &traceState{name: "a", log: &log}
	b := &traceState{name: "b", log: &log}

	sm.SetState(a)
	sm.Update(time.Now())
	sm.SetState(b)
	sm.Draw(nil)
	sm.SetState(nil)

	require.Nil(t, sm.Current())
	require.Equal(t, []string{
		"enter a", "update a", "exit a", "enter b", "draw b", "exit b",
	}, log)
}
