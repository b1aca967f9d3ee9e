package response

import (
	"errors"
	"net/http"
	"time"

	"saturn-payment-network/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// JSONContentType is the only content type the protocol speaks.
const JSONContentType = "application/json"

// ErrorResponse is the transport-level error envelope. Protocol violations
// never leak internals beyond the short message.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// Envelope sends a fully assembled protocol message. The bytes are the
// normalized serialization produced by the schema layer; they are written
// verbatim so the signed byte ordering survives transport.
func Envelope(c *gin.Context, data []byte) {
	c.Header("Pragma", "No-Cache")
	c.Header("Expires", "Thu, 01 Jan 1970 00:00:00 GMT")
	c.Data(http.StatusOK, JSONContentType, data)
}

// Error sends an error response. It checks if err is an *apperror.AppError
// and maps it accordingly, otherwise returns 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, ErrorResponse{
			ErrorCode: appErr.Code,
			Message:   appErr.Message,
			RequestID: getRequestID(c),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	// Unknown error -> 500
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		ErrorCode: "SYS_000",
		Message:   "Internal server error",
		RequestID: getRequestID(c),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// getRequestID retrieves request ID from context, or generates one.
func getRequestID(c *gin.Context) string {
	if id, exists := c.Get("request_id"); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return uuid.New().String()
}
