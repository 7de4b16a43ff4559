package ecs

type System interface {
	Update(w *World)
}

// Scheduler runs systems in registration order, one fixed tick at a time.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update sets the tick length, runs every system and drops unconsumed events.
func (s *Scheduler) Update(w *World, dt float64) {
	w.SetDeltaTime(dt)
	for _, system := range s.systems {
		system.Update(w)
	}
	w.events.flush()
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
