package swap

import (
	"errors"
	"fmt"
)

// Kind classifies which stage of a cycle failed.
type Kind int

const (
	KindUnknown Kind = iota
	QuoteUnavailable
	BuildFailed
	ExecutionFailed
)

func (k Kind) String() string {
	switch k {
	case QuoteUnavailable:
		return "quote_unavailable"
	case BuildFailed:
		return "build_failed"
	case ExecutionFailed:
		return "execution_failed"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is against a *StageError of the matching kind.
var (
	ErrQuoteUnavailable = errors.New("quote unavailable")
	ErrBuildFailed      = errors.New("build failed")
	ErrExecutionFailed  = errors.New("execution failed")
)

func (k Kind) sentinel() error {
	switch k {
	case QuoteUnavailable:
		return ErrQuoteUnavailable
	case BuildFailed:
		return ErrBuildFailed
	case ExecutionFailed:
		return ErrExecutionFailed
	default:
		return nil
	}
}

// StageError is the error every stage returns. TxHash is set once a transaction left the process,
// in which case the on-chain outcome is unknown to the caller.
type StageError struct {
	Kind   Kind
	TxHash string
	Err    error
}

func NewStageError(kind Kind, err error) *StageError {
	return &StageError{Kind: kind, Err: err}
}

func (e *StageError) Error() string {
	msg := "unknown stage failure"
	if s := e.Kind.sentinel(); s != nil {
		msg = s.Error()
	}
	if e.TxHash != "" {
		msg += fmt.Sprintf(" (tx %s)", e.TxHash)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StageError) Unwrap() error { return e.Err }

func (e *StageError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Submitted reports whether the failure happened after the transaction was handed to the network.
func (e *StageError) Submitted() bool { return e.TxHash != "" }

// KindOf returns the stage kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

// asStage keeps an existing *StageError and tags anything else with kind.
func asStage(kind Kind, err error) *StageError {
	var se *StageError
	if errors.As(err, &se) {
		return se
	}
	return NewStageError(kind, err)
}
