package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string            `json:"error_code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

var businessStatus = map[string]struct {
	status  int
	message string
}{
	CodeValidation:       {http.StatusBadRequest, "Invalid request data."},
	CodeServiceNotFound:  {http.StatusBadRequest, "Service not found."},
	CodeSlotUnavailable:  {http.StatusConflict, "The requested time is no longer available."},
	CodeNotFound:         {http.StatusNotFound, "Appointment not found."},
	CodeAlreadyCancelled: {http.StatusConflict, "Appointment is already cancelled."},
	CodeInvalidState:     {http.StatusConflict, "Appointment cannot change to the requested status."},
	CodeRateLimited:      {http.StatusTooManyRequests, "Too many requests. Try again later."},
}

// FromError writes err as a JSON response. Business errors map to their
// client status; anything else is a 500 with fallbackCode.
func FromError(c *gin.Context, err error, fallbackCode string) {
	if be, ok := AsBusiness(err); ok {
		if m, known := businessStatus[be.Code]; known {
			c.JSON(m.status, HTTPError{
				Code:    be.Code,
				Message: m.message,
				Fields:  be.Fields,
			})
			return
		}
		BadRequest(c, be.Code, be.Code)
		return
	}

	Internal(c, fallbackCode, "Internal error.")
}
