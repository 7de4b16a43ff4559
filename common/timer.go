package common

// Timer is an explicit countdown accumulator. Owners advance it with the
// elapsed tick time; it carries no scheduling state beyond what is stored here.
type Timer struct {
	Remaining float64
	Running   bool
}

// Start arms the timer for the given number of seconds.
func (t *Timer) Start(seconds float64) {
	t.Remaining = seconds
	t.Running = true
}

// Stop disarms the timer without firing.
func (t *Timer) Stop() {
	t.Remaining = 0
	t.Running = false
}

// Advance subtracts dt and reports whether the timer expired during this
// step. An expired timer stops until it is started again.
func (t *Timer) Advance(dt float64) bool {
	if !t.Running {
		return false
	}
	t.Remaining -= dt
	if t.Remaining > 0 {
		return false
	}
	t.Remaining = 0
	t.Running = false
	return true
}
