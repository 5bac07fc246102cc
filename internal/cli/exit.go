package cli

import "fmt"

// Process exit codes.
const (
	exitConfig        = 2
	exitUnknownTool   = 3
	exitIntrospection = 4
)

// ExitError is an error that carries a specific process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func exitError(code int, format string, args ...any) *ExitError {
	return &ExitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
