// Where: cli/internal/domain/failure/failure.go
// What: Error taxonomy shared by the create generators.
// Why: Let the CLI map failures to exit codes and hints without string matching.
package failure

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind classifies a generation failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindArgument
	KindName
	KindGeneration
	KindIO
)

// Sentinels usable with errors.Is.
var (
	ErrArgument   = errors.New("invalid argument")
	ErrName       = errors.New("invalid name")
	ErrGeneration = errors.New("generation failed")
	ErrIO         = errors.New("output write failed")
)

func (k Kind) String() string {
	switch k {
	case KindArgument:
		return "argument error"
	case KindName:
		return "name error"
	case KindGeneration:
		return "generation error"
	case KindIO:
		return "io error"
	default:
		return "error"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindArgument:
		return ErrArgument
	case KindName:
		return ErrName
	case KindGeneration:
		return ErrGeneration
	case KindIO:
		return ErrIO
	default:
		return nil
	}
}

// Error describes which platform and step failed, and why.
type Error struct {
	Kind     Kind
	Platform string
	Step     string
	Err      error
}

func (e *Error) Error() string {
	prefix := "create"
	if e.Platform != "" {
		prefix += " " + e.Platform
	}
	if e.Step != "" {
		prefix += ": " + e.Step
	}
	if e.Err == nil {
		return prefix + ": " + e.Kind.String()
	}
	return prefix + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	sentinel := e.Kind.sentinel()
	return sentinel != nil && target == sentinel
}

func newError(kind Kind, platform, step string, err error) error {
	return &Error{Kind: kind, Platform: platform, Step: step, Err: err}
}

// Argument reports malformed or missing input detected before generation.
func Argument(platform, step string, err error) error {
	return newError(KindArgument, platform, step, err)
}

// Argumentf is Argument with a formatted cause.
func Argumentf(platform, step, format string, args ...any) error {
	return Argument(platform, step, errors.Newf(format, args...))
}

// Name reports an identifier that cannot be made platform-conformant.
func Name(platform, step string, err error) error {
	return newError(KindName, platform, step, err)
}

// Generation reports an internal failure to assemble a document from valid input.
func Generation(platform, step string, err error) error {
	return newError(KindGeneration, platform, step, err)
}

// IO reports that the output destination could not be written.
func IO(platform, step string, err error) error {
	return newError(KindIO, platform, step, err)
}

// WithHint attaches a user-facing hint that survives further wrapping.
func WithHint(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return errors.WithHint(err, fmt.Sprintf(format, args...))
}

// Hints returns every hint attached anywhere in the chain.
func Hints(err error) []string {
	return errors.GetAllHints(err)
}

// KindOf returns the failure kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// ExitCode maps a failure to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case KindArgument:
		return 2
	case KindName:
		return 3
	case KindGeneration:
		return 4
	case KindIO:
		return 5
	default:
		return 1
	}
}
