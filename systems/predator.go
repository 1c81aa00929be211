package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/config"
)

// PredatorState bundles the components of one predator for an update.
type PredatorState struct {
	Pos      *components.Position
	Rot      *components.Rotation
	Body     *components.Body
	Motion   *components.Motion
	Predator *components.Predator
}

// PreyView is what a predator can see of a prey when choosing a target.
type PreyView struct {
	Entity     ecs.Entity
	Pos        r2.Vec
	Targetable bool
}

// Candidate is an eligible prey with its distance from the predator.
type Candidate struct {
	Entity ecs.Entity
	Pos    r2.Vec
	Dist   float64
}

// RankCandidates sorts candidates by ascending distance, in place.
// dist and inds are scratch buffers; pass nil to allocate. Their contents are
// overwritten.
func RankCandidates(cands []Candidate, dist []float64, inds []int) {
	n := len(cands)
	if n < 2 {
		return
	}
	dist = resizeFloats(dist, n)
	inds = resizeInts(inds, n)
	for i, c := range cands {
		dist[i] = c.Dist
	}
	floats.Argsort(dist, inds)

	// Apply the permutation by cycles, marking visited slots in inds
	for i := range cands {
		if inds[i] < 0 {
			continue
		}
		first := cands[i]
		j := i
		for {
			next := inds[j]
			inds[j] = -1
			if next == i {
				cands[j] = first
				break
			}
			cands[j] = cands[next]
			j = next
		}
	}
}

// SelectTarget picks from candidates sorted by ascending distance: the one
// at rank if there are enough, otherwise the farthest. Reports false when
// there are no candidates.
func SelectTarget(sorted []Candidate, rank int) (Candidate, bool) {
	if len(sorted) == 0 {
		return Candidate{}, false
	}
	if rank < len(sorted) {
		return sorted[rank], true
	}
	return sorted[len(sorted)-1], true
}

// PredatorSystem runs the hunter behavior and the target assignment protocol.
type PredatorSystem struct {
	cfg    config.PredatorConfig
	bounds Bounds
	spread float64
	rng    RNG

	cands []Candidate
	dist  []float64
	inds  []int
}

// NewPredatorSystem creates the system.
func NewPredatorSystem(cfg *config.Config, rng RNG) *PredatorSystem {
	return &PredatorSystem{
		cfg:    cfg.Predator,
		bounds: BoundsFromConfig(cfg),
		spread: cfg.Tank.BounceSpread,
		rng:    rng,
		cands:  make([]Candidate, 0, 32),
	}
}

// DetectionRadius returns how far predators look for prey.
func (s *PredatorSystem) DetectionRadius() float64 {
	return s.cfg.DetectionRadius
}

// Candidates builds the sorted candidate set for a predator at from: prey that
// are targetable, not claimed by another predator and inside the detection
// radius. The result is reused by the next call.
func (s *PredatorSystem) Candidates(from r2.Vec, prey []PreyView, claimed map[ecs.Entity]struct{}) []Candidate {
	s.cands = s.cands[:0]
	for _, p := range prey {
		if !p.Targetable {
			continue
		}
		if _, taken := claimed[p.Entity]; taken {
			continue
		}
		d := distance(from, p.Pos)
		if d >= s.cfg.DetectionRadius {
			continue
		}
		s.cands = append(s.cands, Candidate{Entity: p.Entity, Pos: p.Pos, Dist: d})
	}
	s.dist = resizeFloats(s.dist, len(s.cands))
	s.inds = resizeInts(s.inds, len(s.cands))
	RankCandidates(s.cands, s.dist, s.inds)
	return s.cands
}

// Choose runs candidate selection and, on success, records the claim on pred.
func (s *PredatorSystem) Choose(pred *components.Predator, from r2.Vec, prey []PreyView, claimed map[ecs.Entity]struct{}) (Candidate, bool) {
	c, ok := SelectTarget(s.Candidates(from, prey, claimed), s.cfg.PickRank)
	if !ok {
		pred.ClearTarget()
		return Candidate{}, false
	}
	pred.Target = c.Entity
	pred.HasTarget = true
	return c, true
}

// Update steers one predator. target is the claimed prey's position, or nil
// when idle. Reports true when the target is within capture range; the
// predator does not move on a capture frame and the caller must remove the
// prey and clear the claim.
func (s *PredatorSystem) Update(st PredatorState, target *r2.Vec) bool {
	st.Motion.Speed = st.Motion.BaseSpeed

	if target != nil {
		pos := st.Pos.Vec()
		d := distance(pos, *target)
		if d > s.cfg.CloseEnough {
			st.Rot.Heading = turnToward(st.Rot.Heading, bearing(pos, *target), s.cfg.TurnRate)
		}
		if d < st.Body.Size {
			return true
		}
	} else {
		st.Rot.Heading = normalizeAngle(st.Rot.Heading + jitter(s.rng, s.cfg.WanderJitter))
	}

	advance(st.Pos, st.Rot.Heading, st.Motion.Speed)
	bounce(st.Pos, st.Rot, s.bounds, s.spread, s.rng)
	return false
}

func resizeFloats(buf []float64, n int) []float64 {
	if cap(buf) < n {
		return make([]float64, n)
	}
	return buf[:n]
}

func resizeInts(buf []int, n int) []int {
	if cap(buf) < n {
		return make([]int, n)
	}
	return buf[:n]
}
