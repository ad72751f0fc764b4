package utils

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// SaveWarning is shown when a change was applied but could not be stored.
const SaveWarning = "changes may not be saved"

// ErrorResponse sends a standard error response
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(ErrorResponseStruct{
		Status:    status,
		Message:   message,
		Ok:        false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       c.OriginalURL(),
		Type:      errorType,
	})
}

// VersionErrorResponse sends a version conflict error (409)
func VersionErrorResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusConflict).JSON(ErrorResponseStruct{
		Status:       fiber.StatusConflict,
		Message:      "E_VERSION - " + message + ". Refresh and retry.",
		Ok:           false,
		VersionError: true,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		URL:          c.OriginalURL(),
		Type:         "version",
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound, "notFound")
}

// MutationSuccessResponse sends the result of a state change with the
// re-rendered page. A failed save becomes a warning, not an error.
func MutationSuccessResponse(c *fiber.Ctx, status int, revision uint64, saveErr error, page interface{}, data interface{}) error {
	resp := MutationResponseStruct{
		Message:   "Success",
		Ok:        true,
		Revision:  strconv.FormatUint(revision, 10),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Page:      page,
		Data:      data,
	}
	if saveErr != nil {
		resp.Warning = SaveWarning
	}
	return c.Status(status).JSON(resp)
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status       int    `json:"status"`
	Message      string `json:"message"`
	Ok           bool   `json:"ok"`
	Timestamp    string `json:"timestamp"`
	URL          string `json:"url"`
	Type         string `json:"type,omitempty"`
	VersionError bool   `json:"versionError,omitempty"`
}

// MutationResponseStruct defines the schema for mutation success responses
type MutationResponseStruct struct {
	Message   string      `json:"message"`
	Ok        bool        `json:"ok"`
	Revision  string      `json:"revision"`
	Timestamp string      `json:"timestamp"`
	Warning   string      `json:"warning,omitempty"`
	Page      interface{} `json:"page,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}
