package handler

import (
	"github.com/99minutos/booking-system/internal/core/domain"
	"github.com/99minutos/booking-system/internal/core/ports"
)

// --- Request → Service input ---

func toOfficeInput(req officeRequest) ports.OfficeInput {
	return ports.OfficeInput{Name: req.Name, Location: req.Location}
}

func toRoomInput(req roomRequest) ports.RoomInput {
	return ports.RoomInput{Name: req.Name, Capacity: req.Capacity, OfficeID: *req.OfficeID}
}

func toBookingInput(req bookingRequest, idempotencyKey string) ports.BookingInput {
	return ports.BookingInput{
		RoomID:         *req.RoomID,
		UserID:         *req.UserID,
		StartTime:      req.StartTime.Time,
		EndTime:        req.EndTime.Time,
		IdempotencyKey: idempotencyKey,
	}
}

// --- Domain → HTTP response ---

func toOfficeResponse(o *domain.Office) officeResponse {
	return officeResponse{ID: o.ID, Name: o.Name, Location: o.Location}
}

func toRoomResponse(r *domain.Room) roomResponse {
	return roomResponse{ID: r.ID, Name: r.Name, Capacity: r.Capacity, OfficeID: r.OfficeID}
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:        b.ID,
		RoomID:    b.RoomID,
		UserID:    b.UserID,
		StartTime: b.StartTime.UTC(),
		EndTime:   b.EndTime.UTC(),
	}
}

func toBookingWithRoomResponse(b *domain.Booking) bookingWithRoomResponse {
	resp := bookingWithRoomResponse{bookingResponse: toBookingResponse(b)}
	if b.Room != nil {
		room := toRoomResponse(b.Room)
		resp.Room = &room
	}
	return resp
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username}
}

func toPageResponse[T, R any](p *ports.Page[T], convert func(*T) R) pageResponse[R] {
	items := make([]R, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, convert(item))
	}
	return pageResponse[R]{
		Items:      items,
		Pagination: pagination{Total: p.Total, Skip: p.Skip, Limit: p.Limit},
	}
}
