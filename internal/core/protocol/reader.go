package protocol

import (
	"bufio"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/zeusync/strikeback/internal/core/race"
	"github.com/zeusync/strikeback/internal/core/systems/physics"
)

// Reader decodes the whitespace separated game input.
type Reader struct {
	sc    *bufio.Scanner
	track race.Track
}

// NewReader wraps r. Tokens may be split across lines arbitrarily.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &Reader{sc: sc}
}

// ReadTrack reads the header sent once before the first turn: the lap count,
// the checkpoint count and one position per checkpoint.
func (r *Reader) ReadTrack() (race.Track, error) {
	laps, err := r.int("laps")
	if err != nil {
		if err == io.EOF {
			return race.Track{}, ErrStreamExhausted
		}
		return race.Track{}, err
	}
	count, err := r.int("checkpoint count")
	if err != nil {
		return race.Track{}, unexpected(err)
	}
	if laps < 1 {
		return race.Track{}, errors.Wrapf(ErrInvalidTrack, "laps %d", laps)
	}
	if count < 2 {
		return race.Track{}, errors.Wrapf(ErrInvalidTrack, "%d checkpoints", count)
	}

	track := race.Track{Laps: laps, Checkpoints: make([]physics.Vector, count)}
	for i := range track.Checkpoints {
		if track.Checkpoints[i], err = r.vector(); err != nil {
			return race.Track{}, errors.WithMessagef(unexpected(err), "checkpoint %d", i)
		}
	}
	r.track = track
	return track, nil
}

// ReadTurn reads the four pod records of one turn. It returns
// ErrStreamExhausted when the input ends cleanly before the turn starts.
func (r *Reader) ReadTurn() (Turn, error) {
	var turn Turn
	pods := [4]*race.Telemetry{&turn.Mine[0], &turn.Mine[1], &turn.Theirs[0], &turn.Theirs[1]}
	for i, p := range pods {
		t, err := r.telemetry()
		if err != nil {
			if i == 0 && err == io.EOF {
				return Turn{}, ErrStreamExhausted
			}
			return Turn{}, errors.WithMessagef(unexpected(err), "pod %d", i)
		}
		if n := r.track.Len(); n > 0 && (t.Next < 0 || t.Next >= n) {
			return Turn{}, errors.Wrapf(ErrMalformedInput, "pod %d: checkpoint index %d out of range", i, t.Next)
		}
		*p = t
	}
	return turn, nil
}

// telemetry reads one pod record. Only its first token may report io.EOF.
func (r *Reader) telemetry() (race.Telemetry, error) {
	var t race.Telemetry
	var err error
	if t.Position, err = r.vector(); err != nil {
		return t, err
	}
	if t.Velocity, err = r.vector(); err != nil {
		return t, unexpected(err)
	}
	if t.Heading, err = r.int("angle"); err != nil {
		return t, unexpected(err)
	}
	if t.Next, err = r.int("next checkpoint"); err != nil {
		return t, unexpected(err)
	}
	return t, nil
}

func (r *Reader) vector() (physics.Vector, error) {
	x, err := r.int("x")
	if err != nil {
		return physics.Vector{}, err
	}
	y, err := r.int("y")
	if err != nil {
		return physics.Vector{}, unexpected(err)
	}
	return physics.Vec(x, y), nil
}

func (r *Reader) int(field string) (int, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return 0, errors.Wrapf(err, "read %s", field)
		}
		return 0, io.EOF
	}
	v, err := strconv.Atoi(r.sc.Text())
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedInput, "%s: %q", field, r.sc.Text())
	}
	return v, nil
}

// unexpected maps an end of input inside a record to ErrMalformedInput.
func unexpected(err error) error {
	if err == io.EOF {
		return errors.Wrap(ErrMalformedInput, "unexpected end of input")
	}
	return err
}
