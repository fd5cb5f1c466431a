// Package docs holds the OpenAPI document served under /swagger. Regenerate it
// from the handler annotations with `swag init -g cmd/api/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/offices/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["offices"],
                "summary": "List offices",
                "parameters": [
                    {"type": "integer", "minimum": 0, "description": "Rows to skip", "name": "skip", "in": "query"},
                    {"type": "integer", "maximum": 100, "minimum": 1, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Exact location match", "name": "location", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.pageResponse-handler_officeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["offices"],
                "summary": "Create an office",
                "parameters": [
                    {"description": "Office", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.officeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.officeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/offices/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["offices"],
                "summary": "Get an office",
                "parameters": [{"type": "integer", "description": "Office ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.officeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["offices"],
                "summary": "Replace an office",
                "parameters": [
                    {"type": "integer", "description": "Office ID", "name": "id", "in": "path", "required": true},
                    {"description": "Office", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.officeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.officeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["offices"],
                "summary": "Delete an office",
                "parameters": [{"type": "integer", "description": "Office ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/rooms/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["rooms"],
                "summary": "List rooms",
                "parameters": [
                    {"type": "integer", "minimum": 0, "description": "Rows to skip", "name": "skip", "in": "query"},
                    {"type": "integer", "maximum": 100, "minimum": 1, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Office filter", "name": "office_id", "in": "query"},
                    {"type": "integer", "description": "Exact capacity", "name": "capacity", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.pageResponse-handler_roomResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["rooms"],
                "summary": "Create a room",
                "parameters": [
                    {"description": "Room", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.roomRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.roomResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/rooms/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["rooms"],
                "summary": "Get a room",
                "parameters": [{"type": "integer", "description": "Room ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.roomResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["rooms"],
                "summary": "Replace a room",
                "parameters": [
                    {"type": "integer", "description": "Room ID", "name": "id", "in": "path", "required": true},
                    {"description": "Room", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.roomRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.roomResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["rooms"],
                "summary": "Delete a room",
                "parameters": [{"type": "integer", "description": "Room ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/rooms/{id}/availability": {
            "get": {
                "produces": ["application/json"],
                "tags": ["rooms"],
                "summary": "Check whether a room is free",
                "parameters": [
                    {"type": "integer", "description": "Room ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Interval start", "name": "start_time", "in": "query", "required": true},
                    {"type": "string", "description": "Interval end", "name": "end_time", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.availabilityResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/bookings/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "List bookings",
                "parameters": [
                    {"type": "integer", "minimum": 0, "description": "Rows to skip", "name": "skip", "in": "query"},
                    {"type": "integer", "maximum": 100, "minimum": 1, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "User filter", "name": "user_id", "in": "query"},
                    {"type": "integer", "description": "Room filter", "name": "room_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.pageResponse-handler_bookingWithRoomResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Book a room",
                "parameters": [
                    {"type": "string", "description": "Idempotency key to prevent duplicate submissions", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Booking", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.bookingRequest"}}
                ],
                "responses": {
                    "200": {"description": "Replay of an earlier request with the same key", "schema": {"$ref": "#/definitions/handler.bookingResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.bookingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Key held by a request in progress", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Key reused with a different payload", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/bookings/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Get a booking",
                "parameters": [{"type": "integer", "description": "Booking ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.bookingResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Replace a booking",
                "parameters": [
                    {"type": "integer", "description": "Booking ID", "name": "id", "in": "path", "required": true},
                    {"description": "Booking", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.bookingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.bookingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Cancel a booking",
                "parameters": [{"type": "integer", "description": "Booking ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "User registration details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.credentialsRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.credentialsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.tokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.messageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handler.pagination": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "skip": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "handler.officeRequest": {
            "type": "object",
            "required": ["location", "name"],
            "properties": {
                "location": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "handler.officeResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "location": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "handler.roomRequest": {
            "type": "object",
            "required": ["name", "office_id"],
            "properties": {
                "capacity": {"type": "integer", "minimum": 0},
                "name": {"type": "string"},
                "office_id": {"type": "integer"}
            }
        },
        "handler.roomResponse": {
            "type": "object",
            "properties": {
                "capacity": {"type": "integer"},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "office_id": {"type": "integer"}
            }
        },
        "handler.bookingRequest": {
            "type": "object",
            "required": ["end_time", "room_id", "start_time", "user_id"],
            "properties": {
                "end_time": {"type": "string"},
                "room_id": {"type": "integer"},
                "start_time": {"type": "string"},
                "user_id": {"type": "integer"}
            }
        },
        "handler.bookingResponse": {
            "type": "object",
            "properties": {
                "end_time": {"type": "string"},
                "id": {"type": "integer"},
                "room_id": {"type": "integer"},
                "start_time": {"type": "string"},
                "user_id": {"type": "integer"}
            }
        },
        "handler.bookingWithRoomResponse": {
            "type": "object",
            "properties": {
                "end_time": {"type": "string"},
                "id": {"type": "integer"},
                "room": {"$ref": "#/definitions/handler.roomResponse"},
                "room_id": {"type": "integer"},
                "start_time": {"type": "string"},
                "user_id": {"type": "integer"}
            }
        },
        "handler.availabilityResponse": {
            "type": "object",
            "properties": {
                "available": {"type": "boolean"},
                "end_time": {"type": "string"},
                "room_id": {"type": "integer"},
                "start_time": {"type": "string"}
            }
        },
        "handler.pageResponse-handler_officeResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.officeResponse"}},
                "pagination": {"$ref": "#/definitions/handler.pagination"}
            }
        },
        "handler.pageResponse-handler_roomResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.roomResponse"}},
                "pagination": {"$ref": "#/definitions/handler.pagination"}
            }
        },
        "handler.pageResponse-handler_bookingWithRoomResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.bookingWithRoomResponse"}},
                "pagination": {"$ref": "#/definitions/handler.pagination"}
            }
        },
        "handler.credentialsRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "handler.userResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"}
            }
        },
        "handler.tokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Office Booking API",
	Description:      "Offices, rooms and non-overlapping room bookings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
