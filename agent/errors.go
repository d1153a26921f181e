package agent

import (
	"errors"
	"fmt"
)

// ErrorKind classifies engine errors per the taxonomy: configuration and
// transport failures terminate a run; invalid-arguments, tool-execution,
// validation, and unknown-tool failures are recovered as observations and
// only escalate once the iteration budget is exhausted.
type ErrorKind string

const (
	KindConfiguration         ErrorKind = "configuration"
	KindTransport             ErrorKind = "transport"
	KindProtocol              ErrorKind = "protocol"
	KindInvalidArguments      ErrorKind = "invalid_arguments"
	KindToolExecution         ErrorKind = "tool_execution"
	KindValidationFailed      ErrorKind = "validation_failed"
	KindUnknownTool           ErrorKind = "unknown_tool"
	KindMaxIterationsExceeded ErrorKind = "max_iterations_exceeded"
	KindTimeout               ErrorKind = "timeout"
	KindCancelled             ErrorKind = "cancelled"
)

// Error wraps a taxonomy Kind with a human-readable message and the
// underlying cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Sentinel errors for errors.Is matching.
var (
	ErrMissingAPIKey    = errors.New("API key is missing or invalid")
	ErrInvalidSchema    = errors.New("schema compilation failed")
	ErrMalformedBaseURL = errors.New("base URL is malformed")
	ErrUnknownTool      = errors.New("no such tool registered")
	ErrValidationFailed = errors.New("structured payload failed schema validation")
)

// MaxIterationsError is returned when the execution engine exhausts its
// iteration budget without recording a FinalAnswer step. It carries the
// partial step history accumulated up to that point.
type MaxIterationsError struct {
	Iterations int
	Steps      []AgentStep
}

func (e *MaxIterationsError) Error() string {
	return fmt.Sprintf("max iterations exceeded (%d) without a final answer", e.Iterations)
}

// TimeoutError is returned when a provider call exceeds the configured
// request timeout.
type TimeoutError struct {
	Elapsed    string
	Steps      []AgentStep
	Underlying error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("provider call timed out after %s", e.Elapsed)
}

func (e *TimeoutError) Unwrap() error {
	return e.Underlying
}

// CancelledError is returned when a host-propagated cancellation signal
// interrupts a suspension point (model call or tool execution).
type CancelledError struct {
	At    string // "model" or "tool"
	Steps []AgentStep
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("run cancelled during %s call", e.At)
}

// ValidationFailedError carries at most three formatted schema-validation
// error messages, each as "<json-pointer-path>: <message>".
type ValidationFailedError struct {
	Messages []string
}

func (e *ValidationFailedError) Error() string {
	if len(e.Messages) == 0 {
		return "structured payload failed schema validation"
	}
	msg := "structured payload failed schema validation: "
	for i, m := range e.Messages {
		if i > 0 {
			msg += "; "
		}
		msg += m
	}
	return msg
}

func (e *ValidationFailedError) Unwrap() error {
	return ErrValidationFailed
}

// ToolExecutionError wraps a failure raised by a tool's Execute method.
type ToolExecutionError struct {
	ToolName string
	Err      error
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("tool %q execution failed: %v", e.ToolName, e.Err)
}

func (e *ToolExecutionError) Unwrap() error {
	return e.Err
}

// UnknownToolError is raised when the model calls a name that is neither a
// registered tool nor a built-in terminal tool.
type UnknownToolError struct {
	ToolName string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %q", e.ToolName)
}

func (e *UnknownToolError) Unwrap() error {
	return ErrUnknownTool
}

// IsMaxIterationsError reports whether err is a MaxIterationsError.
func IsMaxIterationsError(err error) bool {
	var target *MaxIterationsError
	return errors.As(err, &target)
}

// IsTimeoutError reports whether err is a TimeoutError.
func IsTimeoutError(err error) bool {
	var target *TimeoutError
	return errors.As(err, &target)
}

// IsValidationError reports whether err is a ValidationFailedError.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}

// IsUnknownToolError reports whether err is an UnknownToolError.
func IsUnknownToolError(err error) bool {
	return errors.Is(err, ErrUnknownTool)
}
