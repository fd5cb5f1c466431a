package domain

import "errors"

var (
	ErrOfficeNotFound = errors.New("office not found")
	ErrOfficeExists   = errors.New("office with this name already exists")
)

// Office is a physical location that owns zero or more rooms.
type Office struct {
	ID       int64
	Name     string
	Location string
}
