package nn

import (
	"time"

	"bpnet/utils"

	"github.com/pkg/errors"
)

// Train runs exactly iterations samples, taking sample i mod len(inputs) at
// iteration i, and hands a snapshot tagged i to rec after each one. rec may be nil.
//
// Rows with the wrong width are skipped without stopping the run. A recorder
// error ends the run and is returned; weights updated so far are kept.
func (net *Network) Train(iterations int, inputs, desired [][]bool, rec Recorder) error {
	if iterations <= 0 {
		return nil
	}
	if len(inputs) == 0 {
		return errors.New("empty dataset")
	}
	if len(inputs) != len(desired) {
		return errors.Errorf("%d input vectors but %d desired output vectors", len(inputs), len(desired))
	}

	utils.Logf("Started training %v for %d iterations...\n", net.config.Architecture(), iterations)
	start := time.Now()
	defer func() {
		if net.Stats != nil {
			net.Stats.TotalTime += time.Since(start)
		}
	}()

	for i := 0; i < iterations; i++ {
		sample := i % len(inputs)
		net.TrainSample(inputs[sample], desired[sample])

		if rec == nil {
			continue
		}
		recordStart := time.Now()
		if err := rec.Record(net.Snapshot(i)); err != nil {
			return errors.Wrapf(err, "recording iteration %d", i)
		}
		if net.Stats != nil {
			net.Stats.RecordTime += time.Since(recordStart)
		}
	}

	utils.Logf("Training took %v\n", time.Since(start))
	return nil
}
