package tracing

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sirkon/streamtrace/internal/chain"
)

// Tracer runs the full round trip of a pipeline tracing: builds the trace
// expression, evaluates it, interprets the result and resolves it.
type Tracer struct {
	builder   *ExpressionBuilder
	evaluator Evaluator
	reporter  *Reporter
	log       zerolog.Logger
}

// NewTracer creates a tracer. Failures of each phase are recorded into the reporter.
func NewTracer(builder *ExpressionBuilder, evaluator Evaluator, reporter *Reporter, log zerolog.Logger) *Tracer {
	return &Tracer{
		builder:   builder,
		evaluator: evaluator,
		reporter:  reporter,
		log:       log,
	}
}

// Trace traces the pipeline.
func (t *Tracer) Trace(ctx context.Context, c *chain.Chain) (*ResolvedChain, error) {
	log := t.log.With().Str("chain", c.CompactText()).Logger()

	code, err := t.builder.Build(c)
	if err != nil {
		t.reporter.Phase(ReportBuild).Report("build trace expression", err)
		return nil, fmt.Errorf("build trace expression: %w", err)
	}
	log.Debug().
		Stringer("language", t.builder.Language()).
		Int("calls", c.Length()).
		Int("size", len(code)).
		Msg("trace expression built")

	value, err := t.evaluator.Evaluate(ctx, code)
	if err != nil {
		t.reporter.Phase(ReportEvaluate).Report("evaluate trace expression", err)
		var evalErr *EvaluationError
		if errors.As(err, &evalErr) {
			log.Debug().Stringer("kind", evalErr.Kind).Err(evalErr.Err).Msg("evaluation failed")
			return nil, err
		}
		return nil, fmt.Errorf("evaluate trace expression: %w", err)
	}
	log.Debug().Msg("trace expression evaluated")

	result, err := Interpret(c, value)
	if err != nil {
		t.reporter.Phase(ReportInterpret).Report("interpret evaluation result", err)
		log.Debug().Err(err).Msg("interpretation failed")
		return nil, fmt.Errorf("interpret evaluation result: %w", err)
	}
	log.Debug().
		Bool("exception", result.ExceptionThrown()).
		Dur("elapsed", result.Elapsed).
		Msg("evaluation result interpreted")

	resolved := Resolve(result)
	for i := 1; i < resolved.Len(); i++ {
		if n := resolved.unbridged(i); n > 0 {
			err := fmt.Errorf("%w: %d values produced by the previous call were not observed", ErrChainMismatch, n)
			t.reporter.Phase(ReportResolve).ReportCall(c, i, err)
			log.Debug().Int("call", i).Int("values", n).Msg("values lost between calls")
		}
	}

	return resolved, nil
}
