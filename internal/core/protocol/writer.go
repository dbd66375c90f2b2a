package protocol

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// Writer prints commands one per line. It flushes after every turn so the
// game sees them before the deadline.
type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteTurn writes the commands in order and flushes.
func (w *Writer) WriteTurn(cmds ...Command) error {
	for i, c := range cmds {
		if _, err := w.w.WriteString(c.String() + "\n"); err != nil {
			return errors.Wrapf(err, "write command %d", i)
		}
	}
	return errors.Wrap(w.w.Flush(), "flush commands")
}
