package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/reef/config"
)

// FoodParticle is a sinking food pellet.
// Once Consumed it is never offered as a target again; it is dropped when it expires.
type FoodParticle struct {
	Pos      r2.Vec
	Radius   float64
	Age      int32
	Consumed bool
}

// AlgaePatch is a growing algae colony.
type AlgaePatch struct {
	Pos  r2.Vec
	Size float64
}

// PoolUpdate summarizes one Update call.
type PoolUpdate struct {
	Decayed      int     // Unconsumed food that expired and fouled the water
	Expired      int     // All food removed this frame
	AlgaeRemoved int     // Patches grazed down to nothing
	AlgaeGrowth  float64 // Total size added across patches
}

// ConsumablePool owns the food particles and algae patches in the tank.
type ConsumablePool struct {
	food  []FoodParticle
	algae []AlgaePatch

	foodCfg   config.FoodConfig
	algaeCfg  config.AlgaeConfig
	foodFloor float64

	placeMin, placeMax r2.Vec
}

// NewConsumablePool creates an empty pool.
func NewConsumablePool(cfg *config.Config) *ConsumablePool {
	return &ConsumablePool{
		food:      make([]FoodParticle, 0, 64),
		algae:     make([]AlgaePatch, 0, 32),
		foodCfg:   cfg.Food,
		algaeCfg:  cfg.Algae,
		foodFloor: cfg.Tank.FoodFloor,
		placeMin:  r2.Vec{X: cfg.Derived.PlaceMinX, Y: cfg.Derived.PlaceMinY},
		placeMax:  r2.Vec{X: cfg.Derived.PlaceMaxX, Y: cfg.Derived.PlaceMaxY},
	}
}

// Food returns the live food particles. The slice must not be modified.
func (p *ConsumablePool) Food() []FoodParticle {
	return p.food
}

// Algae returns the live algae patches. The slice must not be modified.
func (p *ConsumablePool) Algae() []AlgaePatch {
	return p.algae
}

// SpawnFood drops a new pellet at (x, y).
func (p *ConsumablePool) SpawnFood(x, y float64) {
	p.food = append(p.food, FoodParticle{
		Pos:    r2.Vec{X: x, Y: y},
		Radius: p.foodCfg.Radius,
	})
}

// PlaceAlgae adds a patch at (x, y) if it lies strictly inside the placement
// area. Placements outside are discarded.
func (p *ConsumablePool) PlaceAlgae(x, y float64) bool {
	if x <= p.placeMin.X || x >= p.placeMax.X || y <= p.placeMin.Y || y >= p.placeMax.Y {
		return false
	}
	p.algae = append(p.algae, AlgaePatch{
		Pos:  r2.Vec{X: x, Y: y},
		Size: p.algaeCfg.InitialSize,
	})
	return true
}

// Update sinks and ages food, expires old pellets, and grows algae.
// Unconsumed food that expires adds waste to env.
func (p *ConsumablePool) Update(env *Environment) PoolUpdate {
	var res PoolUpdate

	// Keep unexpired food, compacting in place
	alive := p.food[:0]
	for _, f := range p.food {
		f.Pos.Y += p.foodCfg.SinkSpeed
		f.Age++
		if int(f.Age) > p.foodCfg.MaxAge || f.Pos.Y > p.foodFloor {
			res.Expired++
			if !f.Consumed {
				env.AddWaste(p.foodCfg.DecayWaste)
				res.Decayed++
			}
			continue
		}
		alive = append(alive, f)
	}
	for i := len(alive); i < len(p.food); i++ {
		p.food[i] = FoodParticle{}
	}
	p.food = alive

	level := env.Level()
	growing := level > p.algaeCfg.GrowthThreshold
	rate := p.algaeCfg.GrowthBase + level/p.algaeCfg.GrowthScale

	patches := p.algae[:0]
	for _, a := range p.algae {
		if a.Size <= 0 {
			res.AlgaeRemoved++
			continue
		}
		if growing && a.Size < p.algaeCfg.MaxSize {
			grown := min(a.Size+rate, p.algaeCfg.MaxSize)
			res.AlgaeGrowth += grown - a.Size
			a.Size = grown
		}
		patches = append(patches, a)
	}
	p.algae = patches

	return res
}

// ConsumeFoodNear marks every unconsumed pellet within reach of at as eaten.
func (p *ConsumablePool) ConsumeFoodNear(at r2.Vec, reach float64) int {
	eaten := 0
	for i := range p.food {
		f := &p.food[i]
		if f.Consumed {
			continue
		}
		if distance(at, f.Pos) < reach {
			f.Consumed = true
			eaten++
		}
	}
	return eaten
}

// GrazeAlgaeNear shrinks every patch within radius of at by amount, never
// below zero. Returns the total size removed.
func (p *ConsumablePool) GrazeAlgaeNear(at r2.Vec, radius, amount float64) float64 {
	grazed := 0.0
	for i := range p.algae {
		a := &p.algae[i]
		if a.Size <= 0 || distance(at, a.Pos) >= radius {
			continue
		}
		bite := min(amount, a.Size)
		a.Size -= bite
		grazed += bite
	}
	return grazed
}

// NearestFood returns the closest unconsumed pellet strictly within radius.
func (p *ConsumablePool) NearestFood(at r2.Vec, radius float64) (r2.Vec, bool) {
	var best r2.Vec
	bestDist := radius
	found := false
	for _, f := range p.food {
		if f.Consumed {
			continue
		}
		if d := distance(at, f.Pos); d < bestDist {
			best, bestDist, found = f.Pos, d, true
		}
	}
	return best, found
}

// NearestAlgae returns the closest patch strictly within radius.
func (p *ConsumablePool) NearestAlgae(at r2.Vec, radius float64) (r2.Vec, bool) {
	var best r2.Vec
	bestDist := radius
	found := false
	for _, a := range p.algae {
		if a.Size <= 0 {
			continue
		}
		if d := distance(at, a.Pos); d < bestDist {
			best, bestDist, found = a.Pos, d, true
		}
	}
	return best, found
}
