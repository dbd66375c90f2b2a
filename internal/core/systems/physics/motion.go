package physics

const (
	// MaxRotation is the largest heading change a pod can make in one turn.
	MaxRotation = 18
	// Friction is applied to velocity at the end of every turn.
	Friction = 0.85
)

// State is the kinematic snapshot of one pod.
type State struct {
	Position Vector
	Velocity Vector
	Heading  int
	// PrevTargetDir is the uncompensated direction of the last action, used by
	// ApplyInertia on the following turn.
	PrevTargetDir Vector
}

// AngleTo is the signed turn in (-180, 180] needed to face target.
func (s State) AngleTo(target Vector) int {
	return NormalizeDegrees(target.Sub(s.Position).Angle() - s.Heading)
}

// Predict advances s by one turn steering at target with the given
// acceleration. The result is deterministic: every component is truncated
// as it is assigned, so roll-outs compound identically.
func Predict(s State, target Vector, acceleration int, inertia bool) State {
	aim := target
	if inertia {
		aim = ApplyInertia(s, target)
	}

	desired := aim.Sub(s.Position).Angle()
	delta := ClampDegrees(NormalizeDegrees(desired-s.Heading), MaxRotation)
	heading := NormalizeDegrees(s.Heading + delta)

	velocity := s.Velocity.Add(FromAngle(heading, acceleration))

	return State{
		Position:      s.Position.Add(velocity),
		Velocity:      velocity.Mul(Friction),
		Heading:       heading,
		PrevTargetDir: target.Sub(s.Position),
	}
}

// ApplyInertia pre-rotates the aim point against the drift left over from
// the previous turn's clamped rotation.
func ApplyInertia(s State, target Vector) Vector {
	compensate := ClampDegrees(s.Velocity.AngleBetween(s.PrevTargetDir), MaxRotation)
	dir := target.Sub(s.Position).Rotate(-compensate)
	return s.Position.Add(dir)
}
