package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"tasker/internal/exitcode"
	"tasker/internal/store"
)

var (
	// ErrDescriptionRequired indicates a missing task description.
	ErrDescriptionRequired = errors.New("description required")

	// ErrIDRequired indicates a missing task id.
	ErrIDRequired = errors.New("task id required")

	// ErrDescriptionEncoding indicates a description that is not valid UTF-8.
	ErrDescriptionEncoding = errors.New("description must be valid UTF-8")
)

// parseID parses a non-negative task id.
func parseID(s string) (uint32, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid task id: %s", s)
	}
	return uint32(id), nil
}

// parseIDOnly parses args consisting of exactly one task id.
func parseIDOnly(args []string) (uint32, error) {
	if len(args) == 0 {
		return 0, ErrIDRequired
	}
	id, err := parseID(args[0])
	if err != nil {
		return 0, err
	}
	if err := noArgs(args[1:]); err != nil {
		return 0, err
	}
	return id, nil
}

// joinDescription joins words into a description.
// An explicit empty argument is a valid (empty) description.
func joinDescription(args []string) (string, error) {
	if len(args) == 0 {
		return "", ErrDescriptionRequired
	}
	description := strings.Join(args, " ")
	if !utf8.ValidString(description) {
		return "", ErrDescriptionEncoding
	}
	return description, nil
}

func noArgs(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}
	return nil
}

// save persists st and reports a failure on errOut.
// Returns the exit code to use.
func save(ctx context.Context, repo store.Repository, st *store.Store, errOut io.Writer) int {
	if err := repo.Save(ctx, st); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StoreError
	}
	return exitcode.Success
}
