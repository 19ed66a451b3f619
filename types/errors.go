package types

import (
	"errors"
	"fmt"
)

// ErrorCode classifies every failure the core can report. No code is fatal;
// each one maps to a defined caller reaction (correct input, refresh, retry
// by hand, or ignore).
type ErrorCode string

const (
	// CodeValidation marks bad input (empty text, unknown priority, index
	// out of range). Never retried; surfaced for correction.
	CodeValidation ErrorCode = "validation"
	// CodeNotFound marks a target task that no longer exists remotely,
	// typically a concurrent delete on another device.
	CodeNotFound ErrorCode = "not_found"
	// CodeLocked marks a completion toggle refused because the task's state
	// is derived from its subtasks.
	CodeLocked ErrorCode = "locked"
	// CodeCrossPartitionMove marks a subtask reorder that would cross the
	// incomplete/completed boundary.
	CodeCrossPartitionMove ErrorCode = "cross_partition_move"
	// CodeWrite marks a backing-store write failure.
	CodeWrite ErrorCode = "write_failed"
	// CodeSubscription marks a failure to open or sustain the snapshot
	// subscription.
	CodeSubscription ErrorCode = "subscription_failed"
	// CodeEmptyBuffer marks a restore attempt with nothing held.
	CodeEmptyBuffer ErrorCode = "empty_buffer"
)

// TaskError provides structured error information for core operations.
type TaskError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *TaskError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// NewValidationError reports bad caller input.
func NewValidationError(format string, args ...interface{}) *TaskError {
	return &TaskError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError reports a vanished task document.
func NewNotFoundError(id string) *TaskError {
	return &TaskError{Code: CodeNotFound, Message: fmt.Sprintf("task with ID '%s' not found", id)}
}

// NewLockedError reports a refused completion toggle.
func NewLockedError(id string) *TaskError {
	return &TaskError{Code: CodeLocked, Message: fmt.Sprintf("completion of task '%s' is derived from its subtasks", id)}
}

// NewCrossPartitionMoveError reports a refused subtask reorder.
func NewCrossPartitionMoveError(from, to int) *TaskError {
	return &TaskError{Code: CodeCrossPartitionMove, Message: fmt.Sprintf("cannot move subtask from index %d to %d across the completion boundary", from, to)}
}

// NewWriteError wraps a backing-store write failure.
func NewWriteError(op string, err error) *TaskError {
	return &TaskError{Code: CodeWrite, Message: fmt.Sprintf("%s failed", op), Err: err}
}

// NewSubscriptionError wraps a subscription failure.
func NewSubscriptionError(err error) *TaskError {
	return &TaskError{Code: CodeSubscription, Message: "task subscription failed", Err: err}
}

// NewEmptyBufferError reports a restore with nothing to restore.
func NewEmptyBufferError() *TaskError {
	return &TaskError{Code: CodeEmptyBuffer, Message: "nothing to restore"}
}

// IsCode reports whether err is (or wraps) a TaskError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var te *TaskError
	if errors.As(err, &te) {
		return te.Code == code
	}
	return false
}
