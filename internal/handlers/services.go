package handlers

import (
	"context"
	"net/http"

	"APEX_BACK-END/internal/dto"
	"APEX_BACK-END/internal/models"
	"APEX_BACK-END/internal/utils"
)

// ServiceStore is the subset of the repository the catalog handler needs
type ServiceStore interface {
	ListServices(ctx context.Context) ([]models.Service, error)
}

// ServicesHandler serves the customization service catalog
type ServicesHandler struct {
	store ServiceStore
}

// NewServicesHandler creates a new ServicesHandler instance
func NewServicesHandler(store ServiceStore) *ServicesHandler {
	return &ServicesHandler{store: store}
}

// ListServices handles GET /api/services
// @Summary List catalog services
// @Description List all installable customization services
// @Tags services
// @Produce json
// @Success 200 {array} dto.ServiceResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/services [get]
func (h *ServicesHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	services, err := h.store.ListServices(r.Context())
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	items := make([]dto.ServiceResponse, 0, len(services))
	for _, svc := range services {
		items = append(items, dto.ServiceResponse{
			ID:          svc.ID.String(),
			Name:        svc.Name,
			Description: svc.Description,
			Price:       svc.Price,
			Category:    svc.Category,
			Icon:        svc.Icon,
		})
	}

	utils.WriteJSONResponse(w, http.StatusOK, items)
}
