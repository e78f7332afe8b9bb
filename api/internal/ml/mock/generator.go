package mock

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"mlbackend/api/internal/ml/types"
)

// Классы, которые "умеет находить" мок-детектор.
var DefaultClasses = []string{"person", "car", "bicycle", "motorcycle", "truck", "bus", "traffic_light", "stop_sign"}

const (
	DefaultFromName = "label"
	DefaultToName   = "image"

	minBoxes, maxBoxes = 2, 4
	minXY, maxXY       = 10, 80
	minSide, maxSide   = 5, 20
	minScore, maxScore = 0.70, 0.98
)

// Generator выдаёт правдоподобные, но не зависящие от изображения прямоугольники.
type Generator struct {
	FromName string
	ToName   string
	Classes  []string

	mu    sync.Mutex
	rnd   *rand.Rand
	newID func() string
}

type Option func(*Generator)

// WithSeed делает выдачу воспроизводимой.
func WithSeed(seed uint64) Option {
	return func(g *Generator) { g.rnd = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

func WithLabels(fromName, toName string, classes []string) Option {
	return func(g *Generator) {
		if fromName != "" {
			g.FromName = fromName
		}
		if toName != "" {
			g.ToName = toName
		}
		if len(classes) > 0 {
			g.Classes = append([]string(nil), classes...)
		}
	}
}

func withIDFunc(f func() string) Option {
	return func(g *Generator) { g.newID = f }
}

func NewGenerator(opts ...Option) *Generator {
	now := uint64(time.Now().UnixNano())
	g := &Generator{
		FromName: DefaultFromName,
		ToName:   DefaultToName,
		Classes:  DefaultClasses,
		rnd:      rand.New(rand.NewPCG(now, now>>1)),
		newID:    uuid.NewString,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate возвращает от 2 до 4 случайных детекций.
func (g *Generator) Generate() []types.Result {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.intIn(minBoxes, maxBoxes)
	out := make([]types.Result, 0, n)
	for i := 0; i < n; i++ {
		x := g.intIn(minXY, maxXY)
		y := g.intIn(minXY, maxXY)
		w := g.intIn(minSide, maxSide)
		h := g.intIn(minSide, maxSide)
		score := roundTo2(minScore + g.rnd.Float64()*(maxScore-minScore))
		class := g.Classes[g.rnd.IntN(len(g.Classes))]

		out = append(out, types.Result{
			ID:       g.newID(),
			FromName: g.FromName,
			ToName:   g.ToName,
			Type:     types.TypeRectangleLabels,
			Score:    score,
			Value: types.RectangleValue{
				RectangleLabels: []string{class},
				X:               x,
				Y:               y,
				Width:           w,
				Height:          h,
			},
		})
	}
	return out
}

// intIn — равномерно на [lo, hi] включительно.
func (g *Generator) intIn(lo, hi int) int {
	return lo + g.rnd.IntN(hi-lo+1)
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
