// Package ckkswrapper bundles the CKKS parameters and keys used to seal weight
// snapshots, together with helpers that move float slices in and out of ciphertexts.
package ckkswrapper

import (
	"github.com/pkg/errors"
	"github.com/tuneinsight/lattigo/v5/core/rlwe"
	"github.com/tuneinsight/lattigo/v5/he/hefloat"
)

// DefaultLogN gives 4096 slots per ciphertext.
const DefaultLogN = 13

type HeContext struct {
	Params    hefloat.Parameters
	Encoder   *hefloat.Encoder
	Encryptor *rlwe.Encryptor
	Decryptor *rlwe.Decryptor
	Evaluator *hefloat.Evaluator
}

// NewHeContext builds a context with DefaultLogN and panics on failure.
func NewHeContext() *HeContext {
	h, err := NewHeContextWithLogN(DefaultLogN)
	if err != nil {
		panic(err)
	}
	return h
}

// NewHeContextWithLogN builds a two level context over a ring of degree 2^logN.
func NewHeContextWithLogN(logN int) (*HeContext, error) {
	params, err := hefloat.NewParametersFromLiteral(
		hefloat.ParametersLiteral{
			LogN:            logN,
			LogQ:            []int{55, 40},
			LogP:            []int{61},
			LogDefaultScale: 40,
		})
	if err != nil {
		return nil, errors.Wrapf(err, "creating parameters with LogN %d", logN)
	}

	kgen := hefloat.NewKeyGenerator(params)
	sk, pk := kgen.GenKeyPairNew()
	rlk := kgen.GenRelinearizationKeyNew(sk)
	evk := rlwe.NewMemEvaluationKeySet(rlk)

	return &HeContext{
		Params:    params,
		Encoder:   hefloat.NewEncoder(params),
		Encryptor: hefloat.NewEncryptor(params, pk),
		Decryptor: hefloat.NewDecryptor(params, sk),
		Evaluator: hefloat.NewEvaluator(params, evk),
	}, nil
}

// Slots is the number of values a single ciphertext carries.
func (h *HeContext) Slots() int {
	return h.Params.MaxSlots()
}

// EncryptFloats packs values into as many ciphertexts as needed, Slots() values each.
// An empty slice yields no ciphertexts.
func (h *HeContext) EncryptFloats(values []float64) ([]*rlwe.Ciphertext, error) {
	slots := h.Slots()
	cts := make([]*rlwe.Ciphertext, 0, (len(values)+slots-1)/slots)
	for start := 0; start < len(values); start += slots {
		end := min(start+slots, len(values))
		pt := hefloat.NewPlaintext(h.Params, h.Params.MaxLevel())
		if err := h.Encoder.Encode(values[start:end], pt); err != nil {
			return nil, errors.Wrapf(err, "encoding chunk %d", len(cts))
		}
		ct, err := h.Encryptor.EncryptNew(pt)
		if err != nil {
			return nil, errors.Wrapf(err, "encrypting chunk %d", len(cts))
		}
		cts = append(cts, ct)
	}
	return cts, nil
}

// DecryptFloats reverses EncryptFloats and returns the first n values.
func (h *HeContext) DecryptFloats(cts []*rlwe.Ciphertext, n int) ([]float64, error) {
	slots := h.Slots()
	if n < 0 || n > len(cts)*slots {
		return nil, errors.Errorf("cannot read %d values from %d ciphertexts of %d slots", n, len(cts), slots)
	}
	out := make([]float64, 0, n)
	buf := make([]float64, slots)
	for i, ct := range cts {
		pt := h.Decryptor.DecryptNew(ct)
		if err := h.Encoder.Decode(pt, buf); err != nil {
			return nil, errors.Wrapf(err, "decoding chunk %d", i)
		}
		out = append(out, buf[:min(slots, n-len(out))]...)
	}
	return out, nil
}

// SubNew returns a[i] - b[i] for every chunk without decrypting either side.
func (h *HeContext) SubNew(a, b []*rlwe.Ciphertext) ([]*rlwe.Ciphertext, error) {
	if len(a) != len(b) {
		return nil, errors.Errorf("chunk count mismatch: %d and %d", len(a), len(b))
	}
	out := make([]*rlwe.Ciphertext, len(a))
	for i := range a {
		ct, err := h.Evaluator.SubNew(a[i], b[i])
		if err != nil {
			return nil, errors.Wrapf(err, "subtracting chunk %d", i)
		}
		out[i] = ct
	}
	return out, nil
}
