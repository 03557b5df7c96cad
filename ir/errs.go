package ir

import "errors"

var (
	ErrNoAttr     = errors.New("no such attribute")
	ErrDupAttr    = errors.New("duplicate attribute")
	ErrDupKind    = errors.New("kind already defined")
	ErrBadDefault = errors.New("default does not match declared type")
)
