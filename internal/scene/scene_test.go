package scene_test

import (
	"math/rand"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/galaxy"
	"github.com/san-kum/galaxy/internal/logging"
	"github.com/san-kum/galaxy/internal/scene"
)

// eventLog collects log lines and hook calls in the order they happen.
type eventLog struct {
	events []string
}

func (e *eventLog) Write(p []byte) (int, error) {
	e.events = append(e.events, strings.TrimSpace(string(p)))
	return len(p), nil
}

func (e *eventLog) index(substr string) int {
	for i, ev := range e.events {
		if strings.Contains(ev, substr) {
			return i
		}
	}
	return -1
}

func smallParams() config.Parameters {
	p := config.DefaultParameters()
	p.Count = 300
	return p
}

var _ = Describe("Points", func() {
	It("uses the fixed point material", func() {
		buf := galaxy.Generate(smallParams(), rand.New(rand.NewSource(1)), galaxy.Options{})
		p := scene.NewPoints(buf, 0.02)

		Expect(p.Material.Size).To(Equal(0.02))
		Expect(p.Material.Blending).To(Equal(scene.AdditiveBlending))
		Expect(p.Material.SizeAttenuation).To(BeTrue())
		Expect(p.Material.VertexColors).To(BeTrue())
		Expect(p.Material.DepthWrite).To(BeFalse())
		Expect(p.Geometry.Count()).To(Equal(300))
		Expect(p.ID.String()).NotTo(BeEmpty())
	})

	It("releases buffers and material on dispose, idempotently", func() {
		buf := galaxy.Generate(smallParams(), rand.New(rand.NewSource(1)), galaxy.Options{})
		p := scene.NewPoints(buf, 0.01)

		p.Dispose()
		p.Dispose()

		Expect(p.Disposed()).To(BeTrue())
		Expect(buf.Positions).To(BeNil())
		Expect(buf.Colors).To(BeNil())
	})
})

var _ = Describe("Scene", func() {
	var (
		sc       *scene.Scene
		disposed []*scene.Points
	)

	newPoints := func() *scene.Points {
		return scene.NewPoints(galaxy.Generate(smallParams(), rand.New(rand.NewSource(2)), galaxy.Options{}), 0.01)
	}

	BeforeEach(func() {
		sc = scene.New()
		disposed = nil
		sc.OnDispose(func(old *scene.Points) { disposed = append(disposed, old) })
	})

	It("starts empty", func() {
		Expect(sc.Len()).To(Equal(0))
		Expect(sc.Current()).To(BeNil())
	})

	It("keeps exactly one primitive across replacements", func() {
		first := newPoints()
		sc.Replace(first)
		Expect(sc.Len()).To(Equal(1))
		Expect(disposed).To(BeEmpty())

		second := newPoints()
		sc.Replace(second)
		Expect(sc.Len()).To(Equal(1))
		Expect(sc.Current()).To(BeIdenticalTo(second))
		Expect(first.Disposed()).To(BeTrue())
		Expect(second.Disposed()).To(BeFalse())
		Expect(disposed).To(ConsistOf(first))
	})

	It("ignores nil and self replacement", func() {
		p := newPoints()
		sc.Replace(p)
		sc.Replace(nil)
		sc.Replace(p)

		Expect(sc.Current()).To(BeIdenticalTo(p))
		Expect(p.Disposed()).To(BeFalse())
		Expect(disposed).To(BeEmpty())
	})

	It("detaches and returns the disposed primitive", func() {
		Expect(sc.Detach()).To(BeNil())

		p := newPoints()
		p.RotationY = 0.7
		sc.Attach(p)
		old := sc.Detach()

		Expect(old).To(BeIdenticalTo(p))
		Expect(old.Disposed()).To(BeTrue())
		Expect(old.RotationY).To(Equal(0.7))
		Expect(sc.Len()).To(Equal(0))
		Expect(disposed).To(ConsistOf(p))
	})

	It("releases the occupant when attaching over it", func() {
		first, second := newPoints(), newPoints()
		sc.Attach(first)
		sc.Attach(second)

		Expect(sc.Current()).To(BeIdenticalTo(second))
		Expect(first.Disposed()).To(BeTrue())
	})

	It("releases the primitive on clear", func() {
		p := newPoints()
		sc.Replace(p)
		sc.Clear()

		Expect(sc.Len()).To(Equal(0))
		Expect(p.Disposed()).To(BeTrue())
		Expect(disposed).To(HaveLen(1))
	})
})

var _ = Describe("Stage", func() {
	var (
		params config.Parameters
		stage  *scene.Stage
	)

	BeforeEach(func() {
		params = smallParams()
		stage = scene.NewStage(&params, galaxy.NewGenerator(9, galaxy.Options{}, nil), nil)
	})

	It("attaches a primitive sized from the parameters", func() {
		Expect(stage.Regenerate()).To(Succeed())

		pts := stage.Points()
		Expect(pts).NotTo(BeNil())
		Expect(pts.Geometry.Buffers.Positions).To(HaveLen(3 * params.Count))
		Expect(pts.Geometry.Buffers.Colors).To(HaveLen(3 * params.Count))
		Expect(stage.Generation()).To(Equal(1))
	})

	It("picks up parameter edits and releases the previous buffers", func() {
		Expect(stage.Regenerate()).To(Succeed())
		first := stage.Points()
		firstBuf := first.Geometry.Buffers

		params.Count = 700
		params.Size = 0.05
		Expect(stage.Regenerate()).To(Succeed())

		Expect(stage.Scene().Len()).To(Equal(1))
		Expect(firstBuf.Released()).To(BeTrue())
		Expect(stage.Points().Geometry.Count()).To(Equal(700))
		Expect(stage.Points().Material.Size).To(Equal(0.05))
	})

	It("releases the old buffers before generating new ones", func() {
		rec := &eventLog{}
		log := logging.NewWithWriters("test", true, rec, rec)
		stage = scene.NewStage(&params, galaxy.NewGenerator(9, galaxy.Options{}, log), log)
		stage.Scene().OnDispose(func(*scene.Points) { rec.events = append(rec.events, "disposed") })

		Expect(stage.Regenerate()).To(Succeed())
		rec.events = nil
		Expect(stage.Regenerate()).To(Succeed())

		disposedAt := rec.index("disposed")
		generatedAt := rec.index("generated")
		Expect(disposedAt).To(BeNumerically(">=", 0))
		Expect(generatedAt).To(BeNumerically(">", disposedAt))
		Expect(stage.Scene().Len()).To(Equal(1))
	})

	It("carries rotation across regeneration", func() {
		Expect(stage.Regenerate()).To(Succeed())
		stage.Points().RotationY = -0.3

		Expect(stage.Regenerate()).To(Succeed())
		Expect(stage.Points().RotationY).To(Equal(-0.3))
	})
})
