package model

import "errors"

var (
	ErrRevisionNotFound = errors.New("revision not found")
	ErrRevisionInvalid  = errors.New("revision invalid")
)
