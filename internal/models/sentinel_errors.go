package models

import "errors"

var (
	ErrInvalidJSON        = errors.New("invalid json")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrUnknownEventType   = errors.New("unknown event type")
	ErrUnknownGameType    = errors.New("unknown game type")
	ErrInvalidRules       = errors.New("invalid rules")
	ErrTableNotFound      = errors.New("table not found")
	ErrTooManyTables      = errors.New("too many tables")
)
