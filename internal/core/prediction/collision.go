package prediction

import (
	"math"

	"github.com/zeusync/strikeback/internal/core/race"
	"github.com/zeusync/strikeback/internal/core/systems/physics"
)

// ShieldMass is the mass multiplier of a shielded pod in a collision.
const ShieldMass = 10

// Infinite stands in for a turn count that can never be reached.
const Infinite = math.MaxInt32

// Coast predicts one turn of a pod that keeps turning toward target without thrust.
func Coast(s physics.State, target physics.Vector) physics.State {
	return physics.Predict(s, target, 0, false)
}

// WillCollide predicts both pods one turn ahead and reports whether they end
// up touching.
func WillCollide(a physics.State, aTarget physics.Vector, aAcc int, b physics.State, bTarget physics.Vector, bAcc int) bool {
	na := physics.Predict(a, aTarget, aAcc, false)
	nb := physics.Predict(b, bTarget, bAcc, false)
	return Touching(na.Position, nb.Position)
}

// Touching reports whether two pod centres are closer than CollisionDistance.
func Touching(a, b physics.Vector) bool {
	return a.Dist(b) < race.CollisionDistance
}

// CollisionVelocity estimates pod 0's velocity after an elastic collision
// with pod 1. The collision normal is taken from the given positions rather
// than the true contact point. ok is false when the positions coincide.
func CollisionVelocity(p0, v0 physics.Vector, shield0 bool, p1, v1 physics.Vector, shield1 bool) (physics.Vector, bool) {
	n := p0.Sub(p1)
	nn := float64(n.Dot(n))
	if nn == 0 {
		return physics.Vector{}, false
	}

	m0, m1 := mass(shield0), mass(shield1)
	dv := v0.Sub(v1)
	k := 2 * m1 / (m0 + m1) * float64(dv.Dot(n)) / nn

	return physics.Vector{
		X: v0.X - int(k*float64(n.X)),
		Y: v0.Y - int(k*float64(n.Y)),
	}, true
}

func mass(shield bool) float64 {
	if shield {
		return ShieldMass
	}
	return 1
}

// TurnsToReach estimates how many turns covering distance takes at speed.
func TurnsToReach(distance, speed float64) int {
	if speed <= 0 {
		return Infinite
	}
	return int(distance / speed)
}

// TurnsToAlign estimates how many turns closing angle takes at angularSpeed
// degrees per turn.
func TurnsToAlign(angle, angularSpeed int) int {
	if angularSpeed == 0 {
		return Infinite
	}
	return physics.AbsInt(angle) / physics.AbsInt(angularSpeed)
}
