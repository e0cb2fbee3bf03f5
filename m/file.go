package m

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Line is one training row: the input vector and its desired output vector.
type Line struct {
	Inputs  []bool
	Targets []bool
}
type Lines []Line

// Split separates the rows into the parallel input and target collections the network trains on.
func (lines Lines) Split() (inputs, targets [][]bool) {
	inputs = make([][]bool, len(lines))
	targets = make([][]bool, len(lines))
	for i, line := range lines {
		inputs[i] = line.Inputs
		targets[i] = line.Targets
	}
	return inputs, targets
}

// GetLinesFile opens filename and reads it with GetLines.
func GetLinesFile(filename string, inputNum, outputNum int) (Lines, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer file.Close()
	return GetLines(file, inputNum, outputNum)
}

// GetLines reads comma separated rows of inputNum inputs followed by outputNum targets.
// Values are anything strconv.ParseBool accepts ("0", "1", "true", "F", ...).
// Blank lines and lines starting with '#' are ignored.
func GetLines(reader io.Reader, inputNum, outputNum int) (Lines, error) {
	scanner := bufio.NewScanner(reader)
	var lines Lines
	var lineNum int
	for scanner.Scan() {
		lineNum++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		splits := strings.Split(text, ",")
		if len(splits) != inputNum+outputNum {
			return lines, errInvalidLine{
				lineNum:  lineNum,
				splits:   len(splits),
				expected: inputNum + outputNum,
			}
		}
		inputs := make([]bool, inputNum)
		targets := make([]bool, outputNum)

		for i, split := range splits {
			v, err := strconv.ParseBool(strings.TrimSpace(split))
			if err != nil {
				if i < inputNum {
					return lines, fmt.Errorf("parsing input at line %d: %w", lineNum, err)
				}
				return lines, fmt.Errorf("parsing target at line %d: %w", lineNum, err)
			}
			if i < inputNum {
				inputs[i] = v
			} else {
				targets[i-inputNum] = v
			}
		}
		lines = append(lines, Line{
			Inputs:  inputs,
			Targets: targets,
		})
	}
	if err := scanner.Err(); err != nil {
		return lines, fmt.Errorf("reading dataset: %w", err)
	}
	return lines, nil
}

type errInvalidLine struct {
	lineNum  int
	splits   int
	expected int
}

func (e errInvalidLine) Error() string {
	return fmt.Sprintf("at line %d, expected %d values, got %d",
		e.lineNum, e.expected, e.splits)
}
