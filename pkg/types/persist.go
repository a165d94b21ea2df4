package types

import "errors"

// Persistence document errors. A malformed document fails the whole load
// atomically; no partially populated graph is ever returned.
var (
	ErrUnknownStrategyKind   = errors.New("strategy kind not registered")
	ErrKindAlreadyRegistered = errors.New("strategy kind already registered")
	ErrDanglingReference     = errors.New("dangling frame reference")
	ErrReferenceCycle        = errors.New("unresolvable candidate reference cycle")
	ErrUnsupportedVersion    = errors.New("unsupported document version")
)
