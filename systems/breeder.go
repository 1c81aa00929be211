package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/config"
)

// BreederState bundles the components of one breeder for an update.
type BreederState struct {
	Pos     *components.Position
	Rot     *components.Rotation
	Body    *components.Body
	Motion  *components.Motion
	Breeder *components.Breeder
}

// BreederOutcome reports what a breeder did this frame.
type BreederOutcome struct {
	FoodEaten   int
	AlgaeGrazed float64
	Bred        bool
	Brood       []r2.Vec // Spawn points for new prey, valid until the next Update
	HadTarget   bool
	Bounced     bool
}

// BreederSystem runs the breeding fish behavior.
type BreederSystem struct {
	cfg      config.BreederConfig
	bounds   Bounds
	edge     Bounds // Inside this, breeders seek food
	spread   float64
	rng      RNG
	broodBuf []r2.Vec
}

// NewBreederSystem creates the system.
func NewBreederSystem(cfg *config.Config, rng RNG) *BreederSystem {
	return &BreederSystem{
		cfg:    cfg.Breeder,
		bounds: BoundsFromConfig(cfg),
		edge: Bounds{
			MinX: cfg.Tank.EdgeMargin,
			MaxX: float64(cfg.Screen.Width) - cfg.Tank.EdgeMargin,
			MinY: cfg.Tank.EdgeMargin,
			MaxY: cfg.Tank.EdgeFloor,
		},
		spread:   cfg.Tank.BounceSpread,
		rng:      rng,
		broodBuf: make([]r2.Vec, 0, cfg.Breeder.BroodSize),
	}
}

// TickCooldown counts the breeding cooldown down toward zero.
// Run it for every breeder before the breeder updates of a frame, so both
// mates of a pair leave cooldown on the same frame.
func (s *BreederSystem) TickCooldown(br *components.Breeder) {
	if br.Cooldown > 0 {
		br.Cooldown--
	}
}

// Update advances one breeder. partner is nil when the breeder has no live mate.
func (s *BreederSystem) Update(self BreederState, partner *BreederState, pool *ConsumablePool, env *Environment) BreederOutcome {
	var out BreederOutcome
	pos := self.Pos.Vec()

	self.Motion.Speed = self.Motion.BaseSpeed * env.SpeedMultiplier()

	// Eat
	if self.Breeder.Herbivore {
		out.AlgaeGrazed = pool.GrazeAlgaeNear(pos, s.cfg.GrazeRadius, s.cfg.GrazeAmount)
	} else {
		out.FoodEaten = pool.ConsumeFoodNear(pos, self.Body.Size+s.cfg.FoodReach)
	}

	// Breed
	if partner != nil && self.Breeder.Cooldown == 0 {
		mate := partner.Pos.Vec()
		if distance(pos, mate) < s.cfg.BreedDistance {
			out.Bred = true
			out.Brood = s.brood(r2.Scale(0.5, r2.Add(pos, mate)))
			self.Breeder.Cooldown = int32(s.cfg.Cooldown)
			partner.Breeder.Cooldown = int32(s.cfg.Cooldown)
			self.Breeder.Broods++
		}
	}

	// Steer
	if s.edge.Contains(pos) {
		target, ok := s.findTarget(self.Breeder.Herbivore, pos, pool)
		out.HadTarget = ok
		switch {
		case ok && distance(pos, target) > s.cfg.CloseEnough:
			self.Rot.Heading = turnToward(self.Rot.Heading, bearing(pos, target), s.cfg.TurnRate)
		case ok:
			self.Rot.Heading = normalizeAngle(self.Rot.Heading + jitter(s.rng, s.cfg.CloseJitter))
		default:
			self.Rot.Heading = normalizeAngle(self.Rot.Heading + jitter(s.rng, s.cfg.WanderJitter))
		}
	} else {
		self.Rot.Heading = normalizeAngle(self.Rot.Heading + jitter(s.rng, s.cfg.WanderJitter))
	}

	advance(self.Pos, self.Rot.Heading, self.Motion.Speed)
	out.Bounced = bounce(self.Pos, self.Rot, s.bounds, s.spread, s.rng)

	return out
}

func (s *BreederSystem) findTarget(herbivore bool, pos r2.Vec, pool *ConsumablePool) (r2.Vec, bool) {
	if herbivore {
		return pool.NearestAlgae(pos, s.cfg.DetectionRadius)
	}
	return pool.NearestFood(pos, s.cfg.DetectionRadius)
}

// brood returns the spawn points for one litter around mid.
func (s *BreederSystem) brood(mid r2.Vec) []r2.Vec {
	s.broodBuf = s.broodBuf[:0]
	j := s.cfg.BroodJitter
	for i := 0; i < s.cfg.BroodSize; i++ {
		s.broodBuf = append(s.broodBuf, r2.Vec{
			X: mid.X + float64(randInt(s.rng, -j, j)),
			Y: mid.Y + float64(randInt(s.rng, -j, j)),
		})
	}
	return s.broodBuf
}
