package creature

import "github.com/milk9111/bramble/common"

// Root trap defaults.
const (
	DefaultSpawnDelay = 3.0
	MinInitialDelay   = 0.1
)

// TrapLatch drives a root trap's firing schedule.
type TrapLatch struct {
	InitialDelay float64
	SpawnDelay   float64
	OnStep       bool

	Timer   common.Timer
	Stepped bool
}

// Activate arms the trap. Outside the editor a zero initial delay becomes
// MinInitialDelay so the first root does not appear on the load frame.
func (t *TrapLatch) Activate(editor bool) {
	delay := t.InitialDelay
	if !editor && delay == 0 {
		delay = MinInitialDelay
	}
	t.Timer.Start(delay)
}

// Tick advances the timer and reports whether a root should be placed.
func (t *TrapLatch) Tick(dt float64) bool {
	if !t.Timer.Advance(dt) {
		return false
	}
	if t.OnStep {
		t.Stepped = false
		return false
	}
	t.Timer.Start(t.SpawnDelay)
	return true
}

// Step records player contact and reports whether a root should be placed.
func (t *TrapLatch) Step() bool {
	if !t.OnStep || t.Stepped {
		return false
	}
	t.Stepped = true
	t.Timer.Start(t.SpawnDelay)
	return true
}

// IgelSpawner is the bush igel's rolling spawn timer.
type IgelSpawner struct {
	Timer float64
}

// Igel timings.
const (
	IgelInitialDelay = 0.5
	IgelIdleDelay    = 0.2
)

// Tick reports whether the igel spawns this tick. Frozen igels keep their
// timer untouched; an igel that stops rolling resets to IgelIdleDelay.
func (s *IgelSpawner) Tick(dt float64, rolling, frozen bool, period float64) bool {
	if frozen {
		return false
	}
	if !rolling {
		s.Timer = IgelIdleDelay
		return false
	}
	if s.Timer <= 0 {
		s.Timer = period
		return true
	}
	s.Timer -= dt
	return false
}
