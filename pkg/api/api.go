// Package api resolves requests for versioned extension APIs.
package api

import (
	"github.com/itowlson/vscode-kubernetes-tools/pkg/types"
)

// API is the result of asking for an API version. Payload is set only when
// Status is available.
type API[T any] struct {
	Status  types.VersionStatus
	Payload T
}

// Available wraps a served API.
func Available[T any](payload T) API[T] {
	return API[T]{Status: types.VersionAvailable, Payload: payload}
}

// VersionUnknown is the result for a version that was never released.
func VersionUnknown[T any]() API[T] {
	return API[T]{Status: types.VersionUnknown}
}

// VersionRemoved is the result for a version that has been retired.
func VersionRemoved[T any]() API[T] {
	return API[T]{Status: types.VersionRemoved}
}

// Available reports whether the API can be used.
func (a API[T]) Available() bool {
	return a.Status.IsAvailable()
}
