package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/sirkon/streamtrace/internal/trace"
)

// Evaluator runs code in the debuggee.
type Evaluator interface {
	// Evaluate returns a value of the code. Failures to compile the code or
	// exceptions escaping from it are reported with *EvaluationError.
	Evaluate(ctx context.Context, code string) (trace.Value, error)
}

// EvaluationKind tells what stage of the evaluation failed.
type EvaluationKind int

const (
	evaluationKindInvalid EvaluationKind = iota
	EvaluationCompilation
	EvaluationRuntime
)

func (k EvaluationKind) String() string {
	switch k {
	case EvaluationCompilation:
		return "compilation"
	case EvaluationRuntime:
		return "runtime"
	default:
		return fmt.Sprintf("unknown-evaluation-kind(%d)", k)
	}
}

// EvaluationError is a failure to evaluate a trace expression.
type EvaluationError struct {
	Kind       EvaluationKind
	Expression string
	Err        error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Kind, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// StaticEvaluator returns a recorded value for any code. Code passed to it
// is kept for inspection.
type StaticEvaluator struct {
	Value trace.Value
	Err   error

	Code string
}

// NewStaticEvaluator creates an evaluator replaying the recorded value:
// the trace array itself or a mapping with an evaluation failure.
//
//	error: {kind: runtime, message: "java.lang.IllegalStateException"}
func NewStaticEvaluator(r io.Reader) (*StaticEvaluator, error) {
	var n yaml.Node
	if err := yaml.NewDecoder(r).Decode(&n); err != nil {
		return nil, fmt.Errorf("decode recorded evaluation: %w", err)
	}

	var failure struct {
		Error *struct {
			Kind    string `yaml:"kind"`
			Message string `yaml:"message"`
		} `yaml:"error"`
	}
	if root := documentRoot(&n); root != nil && root.Kind == yaml.MappingNode {
		if err := n.Decode(&failure); err != nil {
			return nil, fmt.Errorf("decode recorded evaluation failure: %w", err)
		}
	}
	if failure.Error != nil {
		kind := EvaluationRuntime
		if failure.Error.Kind == "compilation" {
			kind = EvaluationCompilation
		}
		return &StaticEvaluator{
			Err: &EvaluationError{
				Kind: kind,
				Err:  errors.New(failure.Error.Message),
			},
		}, nil
	}

	v, err := trace.DecodeValue(&n)
	if err != nil {
		return nil, fmt.Errorf("decode recorded value: %w", err)
	}

	return &StaticEvaluator{Value: v}, nil
}

// Evaluate implements Evaluator.
func (e *StaticEvaluator) Evaluate(ctx context.Context, code string) (trace.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.Code = code
	if e.Err != nil {
		var ee *EvaluationError
		if errors.As(e.Err, &ee) {
			return nil, &EvaluationError{
				Kind:       ee.Kind,
				Expression: code,
				Err:        ee.Err,
			}
		}
		return nil, e.Err
	}

	return e.Value, nil
}

func documentRoot(n *yaml.Node) *yaml.Node {
	if n.Kind != yaml.DocumentNode {
		return n
	}
	if len(n.Content) == 0 {
		return nil
	}

	return n.Content[0]
}
