// Package sim assembles the object graph every galaxy surface runs on: the
// parameter store, generator, stage, control panel, camera rig and stepper,
// all built from one Config.
package sim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/galaxy/internal/camera"
	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/galaxy"
	"github.com/san-kum/galaxy/internal/logging"
	"github.com/san-kum/galaxy/internal/panel"
	"github.com/san-kum/galaxy/internal/render"
	"github.com/san-kum/galaxy/internal/scene"
)

type Session struct {
	Config *config.Config

	Generator *galaxy.Generator
	Stage     *scene.Stage
	Panel     *panel.Panel
	Camera    *camera.Perspective
	Orbit     *camera.Orbit
	Viewport  *camera.Viewport
	Stepper   *render.Stepper
	Clock     *render.Clock

	params *config.Parameters
	log    logging.Logger

	paused   bool
	pausedAt float64
	offset   float64
}

// New builds a session and generates the first galaxy. surface receives
// viewport resizes and may be nil for headless use. cfg.Galaxy is the
// parameter store: panel commits write to it.
func New(cfg *config.Config, surface camera.Surface, log logging.Logger) (*Session, error) {
	log = logging.OrNop(log)
	if err := validate(cfg); err != nil {
		return nil, err
	}

	s := &Session{
		Config: cfg,
		params: &cfg.Galaxy,
		log:    log,
	}

	s.Generator = galaxy.NewGenerator(cfg.Seed, galaxy.OptionsFrom(cfg.Generator), log)
	s.Stage = scene.NewStage(s.params, s.Generator, log)
	s.Stage.Scene().OnDispose(func(old *scene.Points) {
		log.Debugf("primitive %s released", old.ID)
	})
	s.Panel = panel.New(s.params, s.Stage.Regenerate, log)

	aspect := 1.0
	if cfg.Window.Height > 0 {
		aspect = float64(cfg.Window.Width) / float64(cfg.Window.Height)
	}
	s.Camera = camera.NewPerspective(cfg.Camera.FOV, aspect, cfg.Camera.Near, cfg.Camera.Far)
	p := cfg.Camera.Position
	s.Camera.Position = mgl64.Vec3{p[0], p[1], p[2]}
	s.Orbit = camera.NewOrbit(s.Camera, cfg.Camera.Damping)
	s.Viewport = camera.NewViewport(s.Camera, surface)
	s.Stepper = render.NewStepper(s.Stage, s.Orbit, cfg.RotationSpeed)
	s.Clock = render.NewClock()

	if err := s.Stage.Regenerate(); err != nil {
		return nil, err
	}
	return s, nil
}

func validate(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("sim: nil config")
	}
	if cfg.Camera.FOV <= 0 || cfg.Camera.FOV >= 180 {
		return fmt.Errorf("sim: fov must be in (0, 180), got %f", cfg.Camera.FOV)
	}
	if cfg.Camera.Near <= 0 || cfg.Camera.Far <= cfg.Camera.Near {
		return fmt.Errorf("sim: need 0 < near < far, got near=%f far=%f", cfg.Camera.Near, cfg.Camera.Far)
	}
	if cfg.Camera.Damping < 0 || cfg.Camera.Damping > 1 {
		return fmt.Errorf("sim: damping must be in [0, 1], got %f", cfg.Camera.Damping)
	}
	return cfg.Galaxy.Validate()
}

// Parameters is the live parameter store.
func (s *Session) Parameters() *config.Parameters { return s.params }

// Buffers of the attached primitive, nil before the first generation.
func (s *Session) Buffers() *galaxy.Buffers {
	if pts := s.Stage.Points(); pts != nil {
		return pts.Geometry.Buffers
	}
	return nil
}

// ApplyPreset loads a named preset through the panel, regenerating once.
func (s *Session) ApplyPreset(name string) error {
	p, err := config.LookupPreset(name)
	if err != nil {
		return err
	}
	s.log.Infof("preset %s", name)
	return s.Panel.Apply(p)
}

// Reseed restarts the generator stream and regenerates.
func (s *Session) Reseed(seed int64) error {
	s.Generator.Reseed(seed)
	s.log.Infof("reseeded with %d", seed)
	return s.Stage.Regenerate()
}

// Elapsed is animation time: clock time minus every paused span. It stands
// still while paused.
func (s *Session) Elapsed() float64 {
	if s.paused {
		return s.pausedAt - s.offset
	}
	return s.Clock.Elapsed() - s.offset
}

func (s *Session) Paused() bool { return s.paused }

// TogglePause freezes or resumes the rotation. Orbit controls keep working
// while paused.
func (s *Session) TogglePause() {
	now := s.Clock.Elapsed()
	if s.paused {
		s.offset += now - s.pausedAt
	} else {
		s.pausedAt = now
	}
	s.paused = !s.paused
}

// Step runs one frame of animation and returns the animation time used.
func (s *Session) Step() float64 {
	elapsed := s.Elapsed()
	if s.paused {
		s.Orbit.Update()
		return elapsed
	}
	s.Stepper.Step(elapsed)
	return elapsed
}

// Close releases the attached primitive.
func (s *Session) Close() {
	s.Stage.Scene().Clear()
}

// Pose puts the cloud at the rotation it has after elapsed seconds, for
// still frames.
func (s *Session) Pose(elapsed float64) {
	s.Stepper.Step(elapsed)
}
