package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// SuccessResponse sends data with the given status
func SuccessResponse(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(Envelope{Success: true, Data: data})
}

// MessageResponse sends a success message, with optional data
func MessageResponse(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(Envelope{Success: true, Message: message, Data: data})
}

// PaginatedResponse sends one page of a list
func PaginatedResponse(c *fiber.Ctx, data interface{}, pagination Pagination) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Data: data, Pagination: &pagination})
}

// ErrorResponse sends a failure envelope
func ErrorResponse(c *fiber.Ctx, message string, status int) error {
	return c.Status(status).JSON(Envelope{Success: false, Message: message})
}

// NotFoundResponse sends a 404 failure envelope
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound)
}

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// Timestamp formats now for response bodies
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"Asset not found"`
}

// SuccessResponseStruct defines the schema for success responses
type SuccessResponseStruct struct {
	Success    bool        `json:"success" example:"true"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}
