package systems

import (
	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/config"
)

// PreyState bundles the components of one prey for an update.
type PreyState struct {
	Pos    *components.Position
	Rot    *components.Rotation
	Body   *components.Body
	Motion *components.Motion
	Prey   *components.Prey
}

// PreySystem runs the offspring behavior: wander, tire while chased, recover otherwise.
type PreySystem struct {
	cfg    config.PreyConfig
	bounds Bounds
	spread float64
	rng    RNG
}

// NewPreySystem creates the system.
func NewPreySystem(cfg *config.Config, rng RNG) *PreySystem {
	return &PreySystem{
		cfg:    cfg.Prey,
		bounds: BoundsFromConfig(cfg),
		spread: cfg.Tank.BounceSpread,
		rng:    rng,
	}
}

// Update advances one prey. targeted is whether any predator currently claims it.
func (s *PreySystem) Update(st PreyState, targeted bool) {
	p := st.Prey
	if p.Invulnerable > 0 {
		p.Invulnerable--
	}

	p.Targeted = targeted
	if targeted {
		p.Fatigue += s.cfg.FatigueRate
	} else {
		p.Fatigue = max(0, p.Fatigue-s.cfg.RecoveryRate)
	}
	st.Motion.Speed = max(s.cfg.MinSpeed, st.Motion.BaseSpeed-p.Fatigue)

	st.Rot.Heading = normalizeAngle(st.Rot.Heading + jitter(s.rng, s.cfg.WanderJitter))
	advance(st.Pos, st.Rot.Heading, st.Motion.Speed)
	bounce(st.Pos, st.Rot, s.bounds, s.spread, s.rng)
}
