package service

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/bfhl/internal/errs"
	"github.com/deppfellow/bfhl/internal/lib/numeric"
	"github.com/deppfellow/bfhl/internal/metrics"
	"github.com/deppfellow/bfhl/internal/model"
	"github.com/pkg/errors"
)

// MessageLCMOverflow is reported when the LCM of the input does not fit in
// a 64-bit integer.
const MessageLCMOverflow = "LCM result exceeds supported integer range"

// Answerer answers a natural-language question with a single word.
//
// *gemini.Client satisfies it.
type Answerer interface {
	Ask(ctx context.Context, question string) (string, error)
}

// BFHLService dispatches a validated operation to its implementation.
type BFHLService struct {
	answerer Answerer
	metrics  *metrics.Recorder
}

// NewBFHLService constructs a BFHLService. rec may be nil.
func NewBFHLService(answerer Answerer, rec *metrics.Recorder) *BFHLService {
	return &BFHLService{
		answerer: answerer,
		metrics:  rec,
	}
}

// Execute runs op and returns the envelope payload.
//
// Errors other than *errs.HTTPError are internal failures; callers must
// not expose their text.
func (s *BFHLService) Execute(ctx context.Context, op model.Operation) (result any, err error) {
	if op == nil {
		return nil, errors.New("nil operation")
	}

	start := time.Now()
	defer func() {
		s.metrics.ObserveOperation(string(op.Key()), err, time.Since(start))
	}()

	switch op := op.(type) {
	case model.Fibonacci:
		seq, err := numeric.Fibonacci(op.N)
		if err != nil {
			return nil, err
		}
		return seq, nil

	case model.Prime:
		primes, err := numeric.FilterPrimes(ctx, op.Values)
		if err != nil {
			return nil, errors.Wrap(err, "prime filter")
		}
		return primes, nil

	case model.HCF:
		return numeric.ReduceGCD(op.Values)

	case model.LCM:
		lcm, err := numeric.ReduceLCM(op.Values)
		if errors.Is(err, numeric.ErrOverflow) {
			code := "LCM_OVERFLOW"
			return nil, errs.NewBadRequestError(MessageLCMOverflow, &code)
		}
		if err != nil {
			return nil, err
		}
		return lcm, nil

	case model.AI:
		if s.answerer == nil {
			return nil, errors.New("no answerer configured")
		}
		answer, err := s.answerer.Ask(ctx, op.Question)
		if err != nil {
			return nil, errors.Wrap(err, "remote answer")
		}
		return answer, nil

	default:
		return nil, fmt.Errorf("unhandled operation %T", op)
	}
}
