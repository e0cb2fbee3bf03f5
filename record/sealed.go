package record

import (
	"encoding/json"
	"io"
	"slices"

	"bpnet/core/ckkswrapper"
	"bpnet/nn"
	"bpnet/utils"

	"github.com/pkg/errors"
	"github.com/tuneinsight/lattigo/v5/core/rlwe"
)

// Sealed keeps every snapshot as CKKS ciphertexts, one packed vector per layer.
// Only the holder of the context's secret key can read the weights back.
type Sealed struct {
	he  *ckkswrapper.HeContext
	enc *json.Encoder

	entries []sealedEntry
	byIter  map[int]int
}

type sealedEntry struct {
	shape  nn.Snapshot // weights stripped
	layers [][]*rlwe.Ciphertext
}

// NewSealed encrypts with he. When log is non-nil every ciphertext is also
// written to it as one JSON line of utils.CiphertextData.
func NewSealed(he *ckkswrapper.HeContext, log io.Writer) *Sealed {
	s := &Sealed{he: he, byIter: make(map[int]int)}
	if log != nil {
		s.enc = json.NewEncoder(log)
	}
	return s
}

func (s *Sealed) Record(snap nn.Snapshot) error {
	entry := sealedEntry{
		shape:  stripWeights(snap),
		layers: make([][]*rlwe.Ciphertext, len(snap.Layers)),
	}
	for i, ls := range snap.Layers {
		cts, err := s.he.EncryptFloats(ls.Flatten())
		if err != nil {
			return errors.Wrapf(err, "sealing layer %d", ls.Index)
		}
		entry.layers[i] = cts
		if err := s.log(snap.Iteration, ls.Index, cts); err != nil {
			return err
		}
	}
	if i, ok := s.byIter[snap.Iteration]; ok {
		s.entries[i] = entry
		return nil
	}
	s.byIter[snap.Iteration] = len(s.entries)
	s.entries = append(s.entries, entry)
	return nil
}

func (s *Sealed) log(iteration, layer int, cts []*rlwe.Ciphertext) error {
	if s.enc == nil {
		return nil
	}
	for chunk, ct := range cts {
		data, err := ct.MarshalBinary()
		if err != nil {
			return errors.Wrapf(err, "marshalling layer %d chunk %d", layer, chunk)
		}
		err = s.enc.Encode(utils.CiphertextData{
			Iteration: iteration,
			Layer:     layer,
			Chunk:     chunk,
			Level:     ct.Level(),
			Data:      utils.EncodeBytes(data),
		})
		if err != nil {
			return errors.Wrap(err, "writing ciphertext log")
		}
	}
	return nil
}

func (s *Sealed) Len() int {
	return len(s.entries)
}

// Open decrypts the snapshot recorded for iteration. The weights are CKKS
// approximations of the recorded ones.
func (s *Sealed) Open(iteration int) (nn.Snapshot, error) {
	entry, err := s.entry(iteration)
	if err != nil {
		return nn.Snapshot{}, err
	}
	out := entry.shape
	out.HiddenSizes = slices.Clone(out.HiddenSizes)
	out.Layers = make([]nn.LayerSnapshot, len(entry.shape.Layers))
	for i, ls := range entry.shape.Layers {
		flat, err := s.he.DecryptFloats(entry.layers[i], len(ls.Nodes)*ls.InputCount())
		if err != nil {
			return nn.Snapshot{}, errors.Wrapf(err, "opening layer %d", ls.Index)
		}
		out.Layers[i] = unflatten(ls, flat)
	}
	return out, nil
}

// Drift returns, per layer, how far every weight moved between two recorded
// iterations. The subtraction happens on the ciphertexts.
func (s *Sealed) Drift(from, to int) ([][]float64, error) {
	a, err := s.entry(to)
	if err != nil {
		return nil, err
	}
	b, err := s.entry(from)
	if err != nil {
		return nil, err
	}
	drift := make([][]float64, len(a.layers))
	for i := range a.layers {
		diff, err := s.he.SubNew(a.layers[i], b.layers[i])
		if err != nil {
			return nil, errors.Wrapf(err, "layer %d", a.shape.Layers[i].Index)
		}
		ls := a.shape.Layers[i]
		drift[i], err = s.he.DecryptFloats(diff, len(ls.Nodes)*ls.InputCount())
		if err != nil {
			return nil, errors.Wrapf(err, "layer %d", ls.Index)
		}
	}
	return drift, nil
}

func (s *Sealed) entry(iteration int) (sealedEntry, error) {
	i, ok := s.byIter[iteration]
	if !ok {
		return sealedEntry{}, errors.Errorf("no sealed snapshot for iteration %d", iteration)
	}
	return s.entries[i], nil
}

func stripWeights(snap nn.Snapshot) nn.Snapshot {
	out := snap
	out.HiddenSizes = slices.Clone(snap.HiddenSizes)
	out.Layers = make([]nn.LayerSnapshot, len(snap.Layers))
	for i, ls := range snap.Layers {
		nodes := make([]nn.NodeSnapshot, len(ls.Nodes))
		for j, n := range ls.Nodes {
			nodes[j] = nn.NodeSnapshot{InputCount: n.InputCount}
		}
		out.Layers[i] = nn.LayerSnapshot{Index: ls.Index, Nodes: nodes}
	}
	return out
}

func unflatten(shape nn.LayerSnapshot, flat []float64) nn.LayerSnapshot {
	ls := nn.LayerSnapshot{Index: shape.Index, Nodes: make([]nn.NodeSnapshot, len(shape.Nodes))}
	offset := 0
	for j, n := range shape.Nodes {
		ls.Nodes[j] = nn.NodeSnapshot{
			InputCount: n.InputCount,
			Weights:    slices.Clone(flat[offset : offset+n.InputCount]),
		}
		offset += n.InputCount
	}
	return ls
}
