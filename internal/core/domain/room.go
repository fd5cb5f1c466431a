package domain

import "errors"

var ErrRoomNotFound = errors.New("room not found")

// Room is a bookable space. OfficeID is not checked against existing offices,
// so a room can outlive (or predate) the office it points to.
type Room struct {
	ID       int64
	Name     string
	Capacity *int // optional
	OfficeID int64
}
