package m

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Activation tags the activation a node applies to its weighted sum.
type Activation int

const (
	// Linear passes the single input through untouched. Only input terminals use it.
	Linear Activation = iota
	// Sigmoid squashes the weighted sum and is thresholded into a boolean output.
	Sigmoid
)

type Activator interface {
	Activate(sum float64) float64
	Deactivate(sum float64) float64
	fmt.Stringer
}

var ActivatorLookup = map[string]Activator{
	"linear":  LinearActivator{},
	"sigmoid": SigmoidActivator{},
}

// Activator returns the functions behind the tag.
func (a Activation) Activator() Activator {
	if a == Sigmoid {
		return SigmoidActivator{}
	}
	return LinearActivator{}
}

func (a Activation) String() string {
	return a.Activator().String()
}

// ParseActivation resolves a name such as "sigmoid" into its tag.
func ParseActivation(name string) (Activation, error) {
	act, ok := ActivatorLookup[name]
	if !ok {
		return Linear, errors.Errorf("invalid activator: %s", name)
	}
	if _, isSigmoid := act.(SigmoidActivator); isSigmoid {
		return Sigmoid, nil
	}
	return Linear, nil
}

type SigmoidActivator struct{}

func (s SigmoidActivator) Activate(sum float64) float64 {
	return Logistic(sum)
}

func (s SigmoidActivator) Deactivate(sum float64) float64 {
	return DiffSigmoid(sum)
}

func (s SigmoidActivator) String() string {
	return "sigmoid"
}

// LinearActivator has no meaningful derivative; it reports 0 so it never moves a weight.
type LinearActivator struct{}

func (l LinearActivator) Activate(sum float64) float64 {
	return sum
}

func (l LinearActivator) Deactivate(sum float64) float64 {
	return 0
}

func (l LinearActivator) String() string {
	return "linear"
}

// Logistic is the sigmoid curve 1 / (1 + e^-x).
func Logistic(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// DiffSigmoid is the derivative of Logistic written as e^-x / (1 + e^-x)^2.
func DiffSigmoid(x float64) float64 {
	e := math.Exp(-x)
	if math.IsInf(e, 1) {
		return 0
	}
	return e / math.Pow(1+e, 2)
}
