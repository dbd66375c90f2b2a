package protocol

import "errors"

// Core protocol errors
var (
	// ErrStreamExhausted is returned when input ends on a turn boundary.
	// It is the normal end of a game.
	ErrStreamExhausted = errors.New("input stream exhausted")
	// ErrMalformedInput is returned for a token that is not an integer or
	// input that ends in the middle of a record.
	ErrMalformedInput = errors.New("malformed input")
	// ErrInvalidTrack is returned for a track header the game would never send.
	ErrInvalidTrack = errors.New("invalid track")
)
