package record

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// RunHeaders is the header row written to a new run log.
var RunHeaders = []string{
	"Name", "Architecture", "Iterations", "LR", "Threshold", "Seed", "End Time", "SecondsToTrain", "Samples", "Skipped", "Accuracy",
}

// Run summarises one training run.
type Run struct {
	Name         string
	Architecture []int
	Iterations   int
	LearningRate float64
	Threshold    float64
	Seed         uint64
	End          time.Time
	Duration     time.Duration
	Samples      int
	Skipped      int
	Accuracy     float64
}

// AppendRun adds r to the CSV file at path, writing headers when the file is new.
func AppendRun(path string, r Run) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return errors.Wrap(err, "creating run log directory")
		}
	}
	var needsHeaders bool
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeaders = true
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrap(err, "opening run log")
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if needsHeaders {
		if err := w.Write(RunHeaders); err != nil {
			return errors.Wrap(err, "writing csv headers")
		}
	}
	if err := w.Write(r.record()); err != nil {
		return errors.Wrap(err, "writing run")
	}
	w.Flush()
	return errors.Wrap(w.Error(), "writing csv")
}

func (r Run) record() []string {
	arch := make([]string, len(r.Architecture))
	for i, n := range r.Architecture {
		arch[i] = strconv.Itoa(n)
	}
	record := make([]string, len(RunHeaders))
	record[0] = r.Name
	record[1] = strings.Join(arch, " ")
	record[2] = strconv.Itoa(r.Iterations)
	record[3] = strconv.FormatFloat(r.LearningRate, 'f', 4, 64)
	record[4] = strconv.FormatFloat(r.Threshold, 'f', 4, 64)
	record[5] = strconv.FormatUint(r.Seed, 10)
	record[6] = strconv.FormatInt(r.End.Unix(), 10)
	record[7] = strconv.FormatFloat(r.Duration.Seconds(), 'f', 3, 64)
	record[8] = strconv.Itoa(r.Samples)
	record[9] = strconv.Itoa(r.Skipped)
	record[10] = strconv.FormatFloat(r.Accuracy, 'f', 5, 64)
	return record
}
