package types

import "strings"

// Errorable is the result of an external command: either a result value or
// one or more human-readable error messages.
type Errorable[T any] struct {
	succeeded bool
	result    T
	errors    []string
}

// Succeeded returns a successful Errorable carrying result.
func Succeeded[T any](result T) Errorable[T] {
	return Errorable[T]{succeeded: true, result: result}
}

// Failed returns a failed Errorable carrying the given messages.
func Failed[T any](messages ...string) Errorable[T] {
	if len(messages) == 0 {
		messages = []string{"unknown error"}
	}
	return Errorable[T]{errors: messages}
}

// Succeeded reports whether the command succeeded.
func (e Errorable[T]) Succeeded() bool {
	return e.succeeded
}

// Result returns the result value. It is the zero value for failures.
func (e Errorable[T]) Result() T {
	return e.result
}

// Errors returns the failure messages. It is nil for successes.
func (e Errorable[T]) Errors() []string {
	return e.errors
}

// Error returns the failure messages joined into a single line, or "" on success.
func (e Errorable[T]) Error() string {
	return strings.Join(e.errors, "; ")
}
