// internal/state/state.go
package state

import (
	"time"

	"go-overlay/pkg/render"
)

// State - интерфейс для всех состояний
type State interface {
	Enter()
	Update(now time.Time)
	Draw(c render.Canvas)
	Exit()
}

// StateMachine - структура для управления состояниями.
// A nil current state means nothing is shown.
type StateMachine struct {
	current State
}

// NewStateMachine создаёт новую машину состояний без начального состояния
func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// SetState устанавливает новое состояние
func (sm *StateMachine) SetState(newState State) {
	if sm.current != nil {
		sm.current.Exit() // Выход из текущего состояния, если оно есть
	}
	sm.current = newState
	if sm.current != nil {
		sm.current.Enter() // Вход в новое состояние, только если оно не nil
	}
}

// Current returns the active state or nil.
func (sm *StateMachine) Current() State {
	return sm.current
}

// Update обновляет текущее состояние
func (sm *StateMachine) Update(now time.Time) {
	if sm.current != nil {
		sm.current.Update(now)
	}
}

// Draw отрисовывает текущее состояние
func (sm *StateMachine) Draw(c render.Canvas) {
	if sm.current != nil {
		sm.current.Draw(c)
	}
}
