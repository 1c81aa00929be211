package systems

// RNG is the random source used by every behavior.
// *math/rand.Rand satisfies it; tests inject scripted sources.
type RNG interface {
	Float64() float64
	Intn(n int) int
}

// uniform returns a value in [lo, hi).
func uniform(rng RNG, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// jitter returns a value in [-amp, amp).
func jitter(rng RNG, amp float64) float64 {
	return uniform(rng, -amp, amp)
}

// randInt returns an integer in [lo, hi].
func randInt(rng RNG, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
