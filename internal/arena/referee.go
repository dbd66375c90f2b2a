package arena

import (
	"math"

	"github.com/zeusync/strikeback/internal/core/protocol"
	"github.com/zeusync/strikeback/internal/core/race"
	"github.com/zeusync/strikeback/internal/core/systems/physics"
)

// Game rules enforced by the referee.
const (
	BoostPower      = 650
	SpentBoostPower = 200
	ShieldTurns     = 4
	ShieldMass      = 10
	MinImpulse      = 120
	Friction        = 0.85
	MaxRotation     = 18.0

	podRadiusSq        = race.CollisionDistance * race.CollisionDistance
	checkpointRadiusSq = (race.CheckpointRadius - 1) * (race.CheckpointRadius - 1)
)

const (
	fullCircle = 2 * math.Pi
	degToRad   = math.Pi / 180
	radToDeg   = 180 / math.Pi
)

// Outcome reasons.
const (
	ReasonFinished = "finished"
	ReasonTimeout  = "timeout"
	ReasonTurns    = "turn_limit"
)

// Outcome is the state of the race after a turn.
type Outcome struct {
	Done   bool
	Winner int
	Reason string
}

type point struct {
	x, y float64
}

func (p point) sub(o point) point   { return point{p.x - o.x, p.y - o.y} }
func (p point) dot(o point) float64 { return p.x*o.x + p.y*o.y }

type body struct {
	pos, vel point
	// angle is the heading in radians within [0, 2π).
	angle   float64
	aligned bool
	// next indexes the referee's course, not the track.
	next    int
	shield  int
	boosted bool
}

// Referee simulates the race with the game's continuous physics: sub-turn
// collision detection, elastic bounces with a minimum impulse, friction and
// position rounding at the end of each turn. Pods 0 and 1 belong to side 0.
type Referee struct {
	track   race.Track
	course  []point
	pods    [4]body
	timeout [2]int
	turn    int
}

// startOffsets reproduce the game's starting grid around checkpoint 0.
var startOffsets = [4]point{{500, -500}, {-500, 500}, {1500, -1500}, {-1500, 1500}}

// NewReferee sets up the starting grid on track.
func NewReferee(track race.Track) *Referee {
	r := &Referee{track: track, timeout: [2]int{race.TurnsToCheckpoint, race.TurnsToCheckpoint}}

	n := track.Len()
	for lap := 0; lap < track.Laps; lap++ {
		for i := 0; i < n; i++ {
			r.course = append(r.course, toPoint(track.Checkpoint(i)))
		}
	}
	r.course = append(r.course, toPoint(track.Checkpoint(0)))

	start, first := r.course[0], r.course[1]
	dir := first.sub(start)
	d := math.Hypot(dir.x, dir.y)
	dir = point{dir.x / d, dir.y / d}
	for i := range r.pods {
		r.pods[i] = body{
			pos:   point{start.x + dir.x*startOffsets[i].x, start.y + dir.y*startOffsets[i].y},
			angle: -1 * degToRad,
			next:  1,
		}
	}
	return r
}

// Turn is the number of turns simulated.
func (r *Referee) Turn() int { return r.turn }

// Telemetry is the turn input as seen by side: its own pods first.
func (r *Referee) Telemetry(side int) protocol.Turn {
	order := sideOrder(side)
	var out [4]race.Telemetry
	for i, idx := range order {
		p := &r.pods[idx]
		out[i] = race.Telemetry{
			Position: physics.Vec(int(p.pos.x), int(p.pos.y)),
			Velocity: physics.Vec(int(p.vel.x), int(p.vel.y)),
			Heading:  int(math.Round(p.angle * radToDeg)),
			Next:     p.next % r.track.Len(),
		}
	}
	return protocol.Turn{
		Mine:   [2]race.Telemetry{out[0], out[1]},
		Theirs: [2]race.Telemetry{out[2], out[3]},
	}
}

// Apply steers and thrusts side's pods.
func (r *Referee) Apply(side int, cmds [2]protocol.Command) {
	for i, cmd := range cmds {
		p := &r.pods[side*2+i]

		thrust := cmd.Thrust
		switch {
		case cmd.Shield:
			p.shield = ShieldTurns
		case cmd.Boost:
			thrust = BoostPower
			if p.boosted {
				thrust = SpentBoostPower
			}
			p.boosted = true
		}
		if p.shield > 0 {
			thrust = 0
		}

		target := toPoint(cmd.Target)
		if target != p.pos {
			if !p.aligned {
				p.angle = angleTo(p.pos, target)
			} else {
				p.rotate(p.diffAngle(target))
			}
		}
		p.aligned = true
		p.thrust(thrust)
	}
}

// Step advances the simulation by one turn and reports whether the race is over.
func (r *Referee) Step(maxTurns int) Outcome {
	t := 0.0
	for t < 1.0 {
		first, a, b := 1.0, -1, -1
		for i := 0; i < len(r.pods); i++ {
			for j := i + 1; j < len(r.pods); j++ {
				tx := collide(r.pods[i].pos, r.pods[i].vel, r.pods[j].pos, r.pods[j].vel, podRadiusSq)
				if tx > 0 && t+tx < 1.0 && tx < first {
					first, a, b = tx, i, j
				}
			}
		}
		if a < 0 {
			r.forward(1.0 - t)
			break
		}
		r.forward(first)
		r.bounce(a, b)
		t += first
	}

	for i := range r.pods {
		r.pods[i].endTurn()
	}
	r.turn++
	r.timeout[0]--
	r.timeout[1]--

	for i := range r.pods {
		if r.pods[i].next >= len(r.course) {
			return Outcome{Done: true, Winner: i / 2, Reason: ReasonFinished}
		}
	}
	for side, left := range r.timeout {
		if left <= 0 {
			return Outcome{Done: true, Winner: 1 - side, Reason: ReasonTimeout}
		}
	}
	if r.turn >= maxTurns {
		return Outcome{Done: true, Winner: r.leadingSide(), Reason: ReasonTurns}
	}
	return Outcome{}
}

// leadingSide ranks by course progress, then distance to the next checkpoint.
func (r *Referee) leadingSide() int {
	best, winner := math.Inf(-1), 0
	for i := range r.pods {
		p := &r.pods[i]
		cp := r.course[min(p.next, len(r.course)-1)]
		score := float64(p.next)*1e6 - math.Hypot(cp.x-p.pos.x, cp.y-p.pos.y)
		if score > best {
			best, winner = score, i/2
		}
	}
	return winner
}

func (r *Referee) forward(t float64) {
	for i := range r.pods {
		p := &r.pods[i]
		if p.next < len(r.course) {
			tx := collide(p.pos, p.vel, r.course[p.next], point{}, checkpointRadiusSq)
			if tx >= 0 && tx < t {
				p.next++
				r.timeout[i/2] = race.TurnsToCheckpoint
			}
		}
		p.pos.x += p.vel.x * t
		p.pos.y += p.vel.y * t
	}
}

func (r *Referee) bounce(i, j int) {
	a, b := &r.pods[i], &r.pods[j]
	ma, mb := 1.0, 1.0
	if a.shield == ShieldTurns {
		ma = ShieldMass
	}
	if b.shield == ShieldTurns {
		mb = ShieldMass
	}
	coeff := (ma + mb) / (ma * mb)

	n := a.pos.sub(b.pos)
	nn := n.dot(n)
	dv := a.vel.sub(b.vel)
	product := n.dot(dv)

	fx := n.x * product / (nn * coeff)
	fy := n.y * product / (nn * coeff)
	push := func() {
		a.vel.x -= fx / ma
		a.vel.y -= fy / ma
		b.vel.x += fx / mb
		b.vel.y += fy / mb
	}

	push()
	if impulse := math.Hypot(fx, fy); impulse > 0 && impulse < MinImpulse {
		fx = fx * MinImpulse / impulse
		fy = fy * MinImpulse / impulse
	}
	push()
}

// collide returns the fraction of the turn at which two moving circles come
// within sqrt(radiusSq) of each other: 0 when already touching, -1 when they
// do not meet this turn.
func collide(p0, v0, p1, v1 point, radiusSq float64) float64 {
	d := p1.sub(p0)
	dd := d.dot(d)
	if dd <= radiusSq {
		return 0
	}

	v := v1.sub(v0)
	dot := d.dot(v)
	if dot > 0 {
		return -1
	}
	vv := v.dot(v)
	disc := dot*dot - vv*(dd-radiusSq)
	if vv == 0 || disc < 0 {
		return -1
	}
	t := (-dot - math.Sqrt(disc)) / vv
	if t >= 0 && t < 1 {
		return t
	}
	return -1
}

func (p *body) rotate(a float64) {
	limit := MaxRotation * degToRad
	a = math.Max(-limit, math.Min(limit, a))
	p.angle += a
	for p.angle < 0 {
		p.angle += fullCircle
	}
	for p.angle >= fullCircle {
		p.angle -= fullCircle
	}
}

func (p *body) thrust(t int) {
	sin, cos := math.Sincos(p.angle)
	p.vel.x += cos * float64(t)
	p.vel.y += sin * float64(t)
}

// diffAngle is the signed shortest rotation from the heading to target.
func (p *body) diffAngle(target point) float64 {
	d := angleTo(p.pos, target) - p.angle
	for d > math.Pi {
		d -= fullCircle
	}
	for d < -math.Pi {
		d += fullCircle
	}
	return d
}

func (p *body) endTurn() {
	p.vel.x = math.Trunc(p.vel.x * Friction)
	p.vel.y = math.Trunc(p.vel.y * Friction)
	p.pos.x = math.Round(p.pos.x)
	p.pos.y = math.Round(p.pos.y)
	if p.shield > 0 {
		p.shield--
	}
}

// angleTo is the direction from a to b in [0, 2π).
func angleTo(a, b point) float64 {
	angle := math.Atan2(b.y-a.y, b.x-a.x)
	if angle < 0 {
		angle += fullCircle
	}
	return angle
}

func toPoint(v physics.Vector) point { return point{float64(v.X), float64(v.Y)} }

func sideOrder(side int) [4]int {
	if side == 1 {
		return [4]int{2, 3, 0, 1}
	}
	return [4]int{0, 1, 2, 3}
}
