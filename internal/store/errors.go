package store

import "fmt"

// Operations reported by PersistenceError.
const (
	OpRead     = "read"
	OpParse    = "parse"
	OpValidate = "validate"
	OpWrite    = "write"
	OpLock     = "lock"
)

// PersistenceError reports a task file that could not be read, decoded,
// validated, written or locked.
type PersistenceError struct {
	Op   string // one of the Op* constants
	Path string // file the operation touched
	Err  error  // underlying error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}
