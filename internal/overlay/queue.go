package overlay

import "context"

// Queue hands work from other goroutines to the loop that owns a Manager.
type Queue chan func(*Manager)

// Do runs fn on the owning loop and waits until it has run.
func (q Queue) Do(ctx context.Context, fn func(*Manager)) error {
	done := make(chan struct{})
	select {
	case q <- func(m *Manager) {
		fn(m)
		close(done)
	}:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain runs the pending work, in arrival order, without blocking.
func (q Queue) Drain(m *Manager) {
	for {
		select {
		case fn := <-q:
			fn(m)
		default:
			return
		}
	}
}
