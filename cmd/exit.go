package cmd

import "fmt"

// Exit statuses, following sysexits.h.
const (
	ExitUsage   = 64 // wrong number of arguments
	ExitDataErr = 65 // scan or parse error
	ExitConfig  = 78 // unreadable or invalid config
	ExitIOErr   = 74 // script could not be read
	ExitRuntime = 70 // runtime error
)

// ExitError asks main to exit with Code. Err, if set, is printed first.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }
