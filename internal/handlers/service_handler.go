package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
	"github.com/BruksfildServices01/slot-scheduler/internal/usecase/appointment"
)

type ServiceHandler struct {
	list *appointment.ListServices
	log  *zap.Logger
}

func NewServiceHandler(list *appointment.ListServices, log *zap.Logger) *ServiceHandler {
	return &ServiceHandler{list: list, log: log}
}

// List returns the bookable services. ?query= filters by name or description.
func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.list.Execute(c.Request.Context())
	if err != nil {
		h.log.Error("list services failed", zap.Error(err))
		httperr.Internal(c, "failed_to_list_services", "Internal error.")
		return
	}

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	if query == "" {
		httpresp.List(c, services)
		return
	}

	out := make([]models.Service, 0, len(services))
	for _, s := range services {
		if strings.Contains(strings.ToLower(s.Name), query) ||
			strings.Contains(strings.ToLower(s.Description), query) {
			out = append(out, s)
		}
	}
	httpresp.List(c, out)
}
