package galaxy

import (
	"math/rand"
	"time"

	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/logging"
)

// Generator pairs Options with a seeded source so a surface can regenerate
// repeatedly without threading a rand.Rand around.
type Generator struct {
	opts Options
	seed int64
	rng  *rand.Rand
	log  logging.Logger
}

// NewGenerator seeds from the clock when seed is 0.
func NewGenerator(seed int64, opts Options, log logging.Logger) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		opts: opts,
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
		log:  logging.OrNop(log),
	}
}

func (g *Generator) Seed() int64      { return g.seed }
func (g *Generator) Options() Options { return g.opts }

// Reseed restarts the random stream, so the next Generate repeats the first.
func (g *Generator) Reseed(seed int64) {
	g.seed = seed
	g.rng = rand.New(rand.NewSource(seed))
}

func (g *Generator) Generate(p config.Parameters) *Buffers {
	start := time.Now()
	buf := Generate(p, g.rng, g.opts)
	g.log.Debugf("generated %d points on %d branches in %s", buf.Len(), p.Branches, time.Since(start))
	return buf
}
