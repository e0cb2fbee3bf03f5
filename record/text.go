// Package record holds the collaborators that receive weight snapshots during training.
package record

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"bpnet/nn"

	"github.com/pkg/errors"
)

const crlf = "\r\n"

// Text writes one human-readable block per snapshot.
type Text struct {
	w      *bufio.Writer
	closer io.Closer
}

func NewText(w io.Writer) *Text {
	return &Text{w: bufio.NewWriter(w)}
}

// NewTextFile appends to path, creating it if needed.
func NewTextFile(path string) (*Text, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "opening dump file")
	}
	return &Text{w: bufio.NewWriter(f), closer: f}, nil
}

func (t *Text) Record(s nn.Snapshot) error {
	w := t.w
	w.WriteString(crlf + crlf + "============================" + crlf)
	fmt.Fprintf(w, "%d inputs, %d outputs, %d hidden layers "+crlf, s.InputCount, s.OutputCount, len(s.HiddenSizes))
	fmt.Fprintf(w, "Iteration %d"+crlf+crlf, s.Iteration)

	for _, ls := range s.Layers {
		fmt.Fprintf(w, "Layer %d with %d perceptrons"+crlf+crlf, ls.Index, len(ls.Nodes))
		for j, n := range ls.Nodes {
			fmt.Fprintf(w, "Perceptron %d with %d inputs. "+crlf, j, n.InputCount)
			w.WriteString("Current input weights are : ")
			for _, weight := range n.Weights {
				w.WriteString(FormatWeight(weight) + " ")
			}
			w.WriteString(crlf)
		}
		w.WriteString(crlf + crlf)
	}
	return errors.Wrapf(w.Flush(), "writing iteration %d", s.Iteration)
}

// Close flushes pending output and closes the file opened by NewTextFile.
// Calls after the first are no-ops.
func (t *Text) Close() error {
	err := t.w.Flush()
	if t.closer != nil {
		if cerr := t.closer.Close(); err == nil {
			err = cerr
		}
		t.closer = nil
	}
	return err
}

// FormatWeight prints w at single precision: plain decimals between 1e-3 and 1e7,
// scientific notation such as 1.5E-4 outside it, and always at least one fractional digit.
func FormatWeight(w float64) string {
	f := float32(w)
	abs := f
	if abs < 0 {
		abs = -abs
	}
	if f == 0 || (abs >= 1e-3 && abs < 1e7) {
		s := strconv.FormatFloat(float64(f), 'f', -1, 32)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	s := strconv.FormatFloat(float64(f), 'E', -1, 32)
	mant, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	e, _ := strconv.Atoi(exp)
	return mant + "E" + strconv.Itoa(e)
}
