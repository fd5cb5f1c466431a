package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Request / Response types ---

type officeRequest struct {
	Name     string `json:"name"     validate:"required"`
	Location string `json:"location" validate:"required"`
}

type officeResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

type roomRequest struct {
	Name     string `json:"name"      validate:"required"`
	Capacity *int   `json:"capacity"  validate:"omitempty,gte=0"`
	OfficeID *int64 `json:"office_id" validate:"required"`
}

type roomResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity *int   `json:"capacity"`
	OfficeID int64  `json:"office_id"`
}

type bookingRequest struct {
	RoomID    *int64     `json:"room_id"    validate:"required"`
	UserID    *int64     `json:"user_id"    validate:"required"`
	StartTime *Timestamp `json:"start_time" validate:"required"`
	EndTime   *Timestamp `json:"end_time"   validate:"required"`
}

type bookingResponse struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"room_id"`
	UserID    int64     `json:"user_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// bookingWithRoomResponse is the list item shape. Room is null when the
// referenced room no longer exists.
type bookingWithRoomResponse struct {
	bookingResponse
	Room *roomResponse `json:"room"`
}

type availabilityResponse struct {
	RoomID    int64     `json:"room_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Available bool      `json:"available"`
}

type pagination struct {
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
}

type pageResponse[T any] struct {
	Items      []T        `json:"items"`
	Pagination pagination `json:"pagination"`
}

type credentialsRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
