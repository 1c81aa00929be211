package game

import (
	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/systems"
)

// WaterView is the water state at snapshot time.
type WaterView struct {
	Nitrates        float64
	Max             float64
	Status          systems.WaterStatus
	SpeedMultiplier float64
}

// BreederView is a read-only copy of one breeder.
type BreederView struct {
	Kind       components.Kind
	X, Y       float64
	Heading    float64
	Size       float64
	Species    string
	Color      [3]uint8
	Herbivore  bool
	Cooldown   int32
	HasPartner bool
}

// PreyView is a read-only copy of one prey.
type PreyView struct {
	Kind       components.Kind
	X, Y       float64
	Heading    float64
	Size       float64
	Speed      float64
	Fatigue    float64
	Targeted   bool
	Targetable bool
	// Invulnerable counts the frames left before predators may pick this prey.
	Invulnerable int32
}

// PredatorView is a read-only copy of one predator.
type PredatorView struct {
	Kind             components.Kind
	X, Y             float64
	Heading          float64
	Size             float64
	HasTarget        bool
	TargetX, TargetY float64
	Captures         int32
}

// FoodView is a read-only copy of one pellet.
type FoodView struct {
	X, Y     float64
	Radius   float64
	Age      int32
	Consumed bool
}

// AlgaeView is a read-only copy of one algae patch.
type AlgaeView struct {
	X, Y float64
	Size float64
}

// Snapshot is everything a renderer needs to draw one frame.
// It shares no memory with the game.
type Snapshot struct {
	Tick      int32
	Paused    bool
	Water     WaterView
	Breeders  []BreederView
	Prey      []PreyView
	Predators []PredatorView
	Food      []FoodView
	Algae     []AlgaeView
}

// Snapshot copies the current state in roster order.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:   g.tick,
		Paused: g.paused,
		Water: WaterView{
			Nitrates:        g.env.Level(),
			Max:             g.env.Max(),
			Status:          g.env.Status(),
			SpeedMultiplier: g.env.SpeedMultiplier(),
		},
		Breeders:  make([]BreederView, 0, len(g.breeders)),
		Prey:      make([]PreyView, 0, len(g.prey)),
		Predators: make([]PredatorView, 0, len(g.predators)),
		Food:      make([]FoodView, 0, len(g.pool.Food())),
		Algae:     make([]AlgaeView, 0, len(g.pool.Algae())),
	}

	for _, e := range g.breeders {
		pos, rot, body, _, br := g.breederMapper.Get(e)
		sp := g.cfg.Breeder.Species[br.Species]
		s.Breeders = append(s.Breeders, BreederView{
			Kind:       body.Kind,
			X:          pos.X,
			Y:          pos.Y,
			Heading:    rot.Heading,
			Size:       body.Size,
			Species:    sp.Name,
			Color:      sp.Color,
			Herbivore:  br.Herbivore,
			Cooldown:   br.Cooldown,
			HasPartner: br.Paired && g.world.Alive(br.Partner),
		})
	}

	for _, e := range g.prey {
		pos, rot, body, motion, prey := g.preyMapper.Get(e)
		s.Prey = append(s.Prey, PreyView{
			Kind:         body.Kind,
			X:            pos.X,
			Y:            pos.Y,
			Heading:      rot.Heading,
			Size:         body.Size,
			Speed:        motion.Speed,
			Fatigue:      prey.Fatigue,
			Targeted:     prey.Targeted,
			Targetable:   prey.Targetable(),
			Invulnerable: prey.Invulnerable,
		})
	}

	for _, e := range g.predators {
		pos, rot, body, _, pred := g.predatorMapper.Get(e)
		v := PredatorView{
			Kind:     body.Kind,
			X:        pos.X,
			Y:        pos.Y,
			Heading:  rot.Heading,
			Size:     body.Size,
			Captures: pred.Captures,
		}
		if pred.HasTarget && g.world.Alive(pred.Target) {
			tpos, _, _, _, _ := g.preyMapper.Get(pred.Target)
			v.HasTarget = true
			v.TargetX, v.TargetY = tpos.X, tpos.Y
		}
		s.Predators = append(s.Predators, v)
	}

	for _, f := range g.pool.Food() {
		s.Food = append(s.Food, FoodView{X: f.Pos.X, Y: f.Pos.Y, Radius: f.Radius, Age: f.Age, Consumed: f.Consumed})
	}
	for _, a := range g.pool.Algae() {
		s.Algae = append(s.Algae, AlgaeView{X: a.Pos.X, Y: a.Pos.Y, Size: a.Size})
	}

	return s
}

// PreyCount returns the number of live prey.
func (g *Game) PreyCount() int {
	return len(g.prey)
}

// Nitrates returns the current nitrate level.
func (g *Game) Nitrates() float64 {
	return g.env.Level()
}
