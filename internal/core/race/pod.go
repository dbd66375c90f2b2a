package race

import (
	"github.com/zeusync/strikeback/internal/core/systems/physics"
)

// Telemetry is the raw per-turn report for one pod.
type Telemetry struct {
	Position physics.Vector
	Velocity physics.Vector
	Heading  int
	Next     int
}

// Progress tells the caller what changed during an Update.
type Progress struct {
	ReachedCheckpoint bool
	CompletedLap      bool
}

// Pod is one racer: its kinematic state plus race bookkeeping derived from
// telemetry. Only Update writes the progress fields.
type Pod struct {
	State physics.State

	Next      int
	Lap       int
	Distance  float64
	TurnsLeft int
	BoostUsed bool
	Leading   bool

	seen bool
	// best is the furthest lap*n+next reached so far.
	best int
}

// Update ingests one turn of telemetry.
//
// The reported next-checkpoint index lags the crossing by a turn, so a pod
// already inside the radius of its reported checkpoint is treated as having
// passed it.
func (p *Pod) Update(t Telemetry, track Track) Progress {
	p.State.Position = t.Position
	p.State.Velocity = t.Velocity
	p.State.Heading = t.Heading

	n := track.Len()
	next := t.Next % n
	if t.Position.Dist(track.Checkpoint(next)) < CheckpointRadius {
		next = track.NextIndex(next)
	}

	var progress Progress
	switch {
	case !p.seen:
		p.seen = true
		p.TurnsLeft = TurnsToCheckpoint
		p.best = p.Lap*n + next
	case next == track.NextIndex(p.Next):
		p.TurnsLeft = TurnsToCheckpoint
		if next == 0 {
			p.Lap++
		}
		// Re-crossing a checkpoint already counted is not progress.
		if reached := p.Lap*n + next; reached > p.best {
			p.best = reached
			progress.ReachedCheckpoint = true
			progress.CompletedLap = next == 0
		}
	case next != p.Next:
		// The pod drifted back out of the radius before the game counted
		// the crossing; follow the reported index again.
		if p.Next == 0 && next == n-1 {
			p.Lap--
		}
		p.TurnsLeft--
	default:
		p.TurnsLeft--
	}

	p.Next = next
	p.Distance = t.Position.Dist(track.Checkpoint(next))
	return progress
}

// Target is the checkpoint the pod is heading to.
func (p *Pod) Target(track Track) physics.Vector { return track.Checkpoint(p.Next) }

// TargetAfter is the checkpoint following Target.
func (p *Pod) TargetAfter(track Track) physics.Vector { return track.Checkpoint(p.Next + 1) }

// FinalLeg reports whether the pod is heading for the finish line.
func (p *Pod) FinalLeg(track Track) bool {
	return p.Lap >= track.Laps && p.Next == 0
}

// Remember stores the direction of the action just chosen so the next turn
// can compensate inertia against it.
func (p *Pod) Remember(target physics.Vector) {
	p.State.PrevTargetDir = target.Sub(p.State.Position)
}

// Ahead reports whether a ranks strictly ahead of b: more laps, then a later
// checkpoint, then a shorter distance to it.
func Ahead(a, b *Pod) bool {
	if a.Lap != b.Lap {
		return a.Lap > b.Lap
	}
	if a.Next != b.Next {
		return a.Next > b.Next
	}
	return a.Distance < b.Distance
}

// MarkLeader flags exactly one pod of a same-side pair as leading. Exact
// ties go to a.
func MarkLeader(a, b *Pod) {
	a.Leading = !Ahead(b, a)
	b.Leading = !a.Leading
}
