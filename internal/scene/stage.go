package scene

import (
	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/galaxy"
	"github.com/san-kum/galaxy/internal/logging"
)

// Stage ties the parameter store to the scene: Regenerate rebuilds the point
// cloud from the current parameters and swaps it in.
type Stage struct {
	params     *config.Parameters
	gen        *galaxy.Generator
	scene      *Scene
	log        logging.Logger
	generation int
}

func NewStage(params *config.Parameters, gen *galaxy.Generator, log logging.Logger) *Stage {
	return &Stage{
		params: params,
		gen:    gen,
		scene:  New(),
		log:    logging.OrNop(log),
	}
}

func (s *Stage) Scene() *Scene                  { return s.scene }
func (s *Stage) Parameters() *config.Parameters { return s.params }
func (s *Stage) Generation() int                { return s.generation }

// Points is the attached primitive.
func (s *Stage) Points() *Points { return s.scene.Current() }

// Regenerate always succeeds for in-range parameters; the error return lets
// it serve directly as a control panel commit hook.
// The outgoing primitive is released before the new buffers are built, so
// at most one generation is held in memory.
func (s *Stage) Regenerate() error {
	var rotation float64
	if prev := s.scene.Detach(); prev != nil {
		rotation = prev.RotationY
	}
	buf := s.gen.Generate(*s.params)
	next := NewPoints(buf, s.params.Size)
	next.RotationY = rotation
	s.scene.Attach(next)
	s.generation++
	s.log.Debugf("generation %d: primitive %s attached (%d points)", s.generation, next.ID, buf.Len())
	return nil
}
