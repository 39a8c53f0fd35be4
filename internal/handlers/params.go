package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
)

// dateQuery reads a required YYYY-MM-DD query parameter in loc. On failure
// the response is already written and ok is false.
func dateQuery(c *gin.Context, name string, loc *time.Location) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		validationError(c, name, "is required")
		return time.Time{}, false
	}

	d, err := timezone.ParseDate(raw, loc)
	if err != nil {
		validationError(c, name, "must be a date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return d, true
}

func uintQuery(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		validationError(c, name, "is required")
		return 0, false
	}

	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		validationError(c, name, "must be a positive integer")
		return 0, false
	}
	return uint(n), true
}

func intQuery(c *gin.Context, name string) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	n, err := strconv.Atoi(raw)
	if err != nil {
		validationError(c, name, "must be an integer")
		return 0, false
	}
	return n, true
}

func validationError(c *gin.Context, field, message string) {
	httperr.FromError(c, httperr.ErrValidation(map[string]string{field: message}), httperr.CodeValidation)
}
