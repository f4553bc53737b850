package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

// ErrTaskIDRequired indicates no task id was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskIDs parses task ids from positional args.
// Every arg must be a positive decimal integer. Order and duplicates are kept
// since actions are applied in argument order.
func ParseTaskIDs(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, ErrTaskIDRequired
	}

	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := ParseTaskID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseTaskID parses a single task id.
func ParseTaskID(arg string) (int, error) {
	if !isAllDigits(arg) {
		return 0, fmt.Errorf("invalid task id: %s", arg)
	}
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id: %s", arg)
	}
	return id, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
