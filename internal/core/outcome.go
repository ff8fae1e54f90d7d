package core

import "fmt"

// Outcome is the three-way result of every service operation. Fail is a
// handled business-rule rejection with a human-readable message; Error is an
// unexpected failure surfaced after rollback with a generic message.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFail    Outcome = "fail"
	OutcomeError   Outcome = "error"
)

// GenericErrorMessage is the only detail an Error outcome ever carries.
// Internal failure detail stays in the logs.
const GenericErrorMessage = "an unexpected error occurred while processing the request"

// Response is the envelope every service operation returns.
type Response[T any] struct {
	Outcome      Outcome `json:"outcome"`
	ErrorMessage string  `json:"error_message,omitempty"`
	Item         *T      `json:"item,omitempty"`
	List         []T     `json:"list,omitempty"`
}

// ItemOf returns a Success response carrying a single item.
func ItemOf[T any](item *T) Response[T] {
	return Response[T]{Outcome: OutcomeSuccess, Item: item}
}

// ListOf returns a Success response carrying a list.
func ListOf[T any](list []T) Response[T] {
	return Response[T]{Outcome: OutcomeSuccess, List: list}
}

// Done returns a Success response with no payload, for updates and deletes.
func Done[T any]() Response[T] {
	return Response[T]{Outcome: OutcomeSuccess}
}

// Fail returns a handled business-rule rejection.
func Fail[T any](message string) Response[T] {
	return Response[T]{Outcome: OutcomeFail, ErrorMessage: message}
}

// Failf is Fail with formatting.
func Failf[T any](format string, args ...any) Response[T] {
	return Fail[T](fmt.Sprintf(format, args...))
}

// Errored returns the Error outcome. The message is intentionally generic.
func Errored[T any]() Response[T] {
	return Response[T]{Outcome: OutcomeError, ErrorMessage: GenericErrorMessage}
}
