package scene

// DisposeHook observes every primitive the scene releases.
type DisposeHook func(old *Points)

// Scene holds at most one point cloud and exclusively owns it.
type Scene struct {
	current *Points
	hooks   []DisposeHook
}

func New() *Scene {
	return &Scene{}
}

func (s *Scene) OnDispose(h DisposeHook) {
	s.hooks = append(s.hooks, h)
}

// Current is the attached primitive, nil while the scene is empty.
func (s *Scene) Current() *Points { return s.current }

// Len is the number of attached primitives, 0 or 1.
func (s *Scene) Len() int {
	if s.current == nil {
		return 0
	}
	return 1
}

// Attach inserts p into an empty scene. If a primitive is already attached
// it is released first, so the scene never holds two.
func (s *Scene) Attach(p *Points) {
	if p == nil || p == s.current {
		return
	}
	s.Detach()
	s.current = p
}

// Replace disposes and removes the attached primitive, then attaches p.
// Passing the attached primitive again is a no-op.
func (s *Scene) Replace(p *Points) { s.Attach(p) }

// Detach disposes and removes the attached primitive and returns it, or nil
// for an empty scene. Its buffers are gone but plain fields like RotationY
// stay readable.
func (s *Scene) Detach() *Points {
	old := s.current
	if old == nil {
		return nil
	}
	old.Dispose()
	s.current = nil
	for _, h := range s.hooks {
		h(old)
	}
	return old
}

// Clear empties the scene on shutdown.
func (s *Scene) Clear() {
	s.Detach()
}
