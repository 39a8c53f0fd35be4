package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestQueryHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query  string
		status int
		field  string
	}{
		{"date=2026-01-28&id=3&n=-2", http.StatusOK, ""},
		{"id=3&n=1", http.StatusBadRequest, "date"},
		{"date=2026-02-30&id=3&n=1", http.StatusBadRequest, "date"},
		{"date=2026-01-28&id=0&n=1", http.StatusBadRequest, "id"},
		{"date=2026-01-28&id=3&n=x", http.StatusBadRequest, "n"},
	}

	for _, tt := range tests {
		r := gin.New()
		r.GET("/", func(c *gin.Context) {
			if _, ok := dateQuery(c, "date", time.UTC); !ok {
				return
			}
			if _, ok := uintQuery(c, "id"); !ok {
				return
			}
			if _, ok := intQuery(c, "n"); !ok {
				return
			}
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil))
		if w.Code != tt.status {
			t.Fatalf("%s: expected %d, got %d", tt.query, tt.status, w.Code)
		}
		if tt.field == "" {
			continue
		}

		var body struct {
			Code   string            `json:"error_code"`
			Fields map[string]string `json:"fields"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: decode: %v", tt.query, err)
		}
		if body.Code != "validation_error" || body.Fields[tt.field] == "" {
			t.Fatalf("%s: expected message for %s, got %+v", tt.query, tt.field, body)
		}
	}
}
