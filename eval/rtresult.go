/*
File    : eplusplus/eval/rtresult.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import "github.com/eplusplus-lang/eplusplus/objects"

// Signal tags which of RTResult's five states is current.
type Signal int

const (
	SignalValue Signal = iota
	SignalReturn
	SignalContinue
	SignalBreak
	SignalError
)

// RTResult is the control-flow monad every visit method returns: exactly
// one of {Value, FuncReturn(value), Continue, Break, Error}. ShouldReturn
// is true for every state but plain Value, which is what lets a composite
// node check it once and propagate RETURN/CONTINUE/BREAK/errors upward
// unchanged, without exceptions.
type RTResult struct {
	Value  objects.Value // meaningful when Signal is SignalValue or SignalReturn
	Signal Signal
	Err    error
}

// NewRTResult returns a fresh accumulator in the plain-Value state.
func NewRTResult() *RTResult {
	return &RTResult{Signal: SignalValue}
}

// ShouldReturn reports whether this result must short-circuit the
// caller's own evaluation instead of being treated as a plain value.
func (r *RTResult) ShouldReturn() bool {
	return r.Signal != SignalValue
}

// Register folds another RTResult's state into r and returns its value.
// Callers check r.ShouldReturn() immediately after to decide whether to
// keep evaluating or propagate.
func (r *RTResult) Register(other *RTResult) objects.Value {
	r.Signal = other.Signal
	r.Err = other.Err
	r.Value = other.Value
	return other.Value
}

func (r *RTResult) Success(val objects.Value) *RTResult {
	r.Value = val
	r.Signal = SignalValue
	r.Err = nil
	return r
}

func (r *RTResult) SuccessReturn(val objects.Value) *RTResult {
	r.Value = val
	r.Signal = SignalReturn
	r.Err = nil
	return r
}

func (r *RTResult) SuccessContinue() *RTResult {
	r.Signal = SignalContinue
	r.Err = nil
	return r
}

func (r *RTResult) SuccessBreak() *RTResult {
	r.Signal = SignalBreak
	r.Err = nil
	return r
}

func (r *RTResult) Failure(err error) *RTResult {
	r.Err = err
	r.Signal = SignalError
	return r
}
