package record

import "bpnet/nn"

type multi []nn.Recorder

// Multi forwards each snapshot to every non-nil recorder in order and stops at the first error.
func Multi(recs ...nn.Recorder) nn.Recorder {
	m := make(multi, 0, len(recs))
	for _, r := range recs {
		if r != nil {
			m = append(m, r)
		}
	}
	return m
}

func (m multi) Record(s nn.Snapshot) error {
	for _, r := range m {
		if err := r.Record(s); err != nil {
			return err
		}
	}
	return nil
}
