package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"gtodo/internal/service"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// errInvalidRef is returned by ParseTaskRef for anything but a plain number.
var errInvalidRef = errors.New("invalid task reference")

// errOutOfRange is returned by ResolveTask for numbers past the list end.
var errOutOfRange = errors.New("task number out of range")

// ParseTaskRef parses the leading task number from args and returns it
// with the remaining arguments. Numbers refer to rows of the list command:
// 1 is the most recently added task.
func ParseTaskRef(args []string) (int, []string, error) {
	if len(args) == 0 {
		return 0, nil, ErrTaskRefRequired
	}

	ref := args[0]
	if !isAllDigits(ref) {
		return 0, nil, fmt.Errorf("%w: %s", errInvalidRef, ref)
	}
	num, err := strconv.Atoi(ref)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s", errInvalidRef, ref)
	}
	return num, args[1:], nil
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

// ResolveTask returns the task shown at row num of the list command.
func ResolveTask(ctx context.Context, svc service.Service, num int) (service.Task, error) {
	if num < 1 {
		return service.Task{}, fmt.Errorf("%w: %d", errOutOfRange, num)
	}
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return service.Task{}, err
	}
	rows := service.Reverse(tasks)
	if num > len(rows) {
		return service.Task{}, fmt.Errorf("%w: %d", errOutOfRange, num)
	}
	return rows[num-1], nil
}
