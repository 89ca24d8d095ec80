package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"APEX_BACK-END/internal/config"
	"APEX_BACK-END/internal/dto"
	"APEX_BACK-END/internal/models"
	"APEX_BACK-END/internal/repository"
	"APEX_BACK-END/internal/utils"
)

// buildNotFoundMsg deliberately does not distinguish a missing build
// from one owned by somebody else, so callers cannot probe for other
// users' builds. The true cause is logged.
const buildNotFoundMsg = "Build not found or not authorized"

// BuildStore is the subset of the repository the build handlers need
type BuildStore interface {
	CreateBuild(ctx context.Context, build *models.Build) error
	GetBuildByID(ctx context.Context, id uuid.UUID) (*models.Build, error)
	ListBuildsByUser(ctx context.Context, userID uuid.UUID) ([]models.Build, error)
	UpdateBuild(ctx context.Context, build *models.Build) error
	DeleteBuild(ctx context.Context, id uuid.UUID) error
}

// BuildsHandler manages build-related endpoints
type BuildsHandler struct {
	store  BuildStore
	config *config.Config
	logger *slog.Logger
}

// NewBuildsHandler creates a new BuildsHandler
func NewBuildsHandler(store BuildStore, cfg *config.Config, logger *slog.Logger) *BuildsHandler {
	return &BuildsHandler{store: store, config: cfg, logger: logger}
}

// Builds dispatches /api/builds requests by path and method
func (h *BuildsHandler) Builds(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if strings.HasPrefix(path, "/api/builds/user/") {
		h.ListUserBuilds(w, r)
		return
	}

	if strings.HasPrefix(path, "/api/builds/") && len(path) > len("/api/builds/") {
		switch r.Method {
		case http.MethodGet:
			h.BuildDetail(w, r)
		case http.MethodPut, http.MethodPatch:
			h.UpdateBuild(w, r)
		case http.MethodDelete:
			h.DeleteBuild(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if r.Method == http.MethodPost {
		h.CreateBuild(w, r)
		return
	}
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// CreateBuild handles POST /api/builds
// @Summary Create a new build
// @Tags builds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateBuildRequest true "Build payload"
// @Success 201 {object} dto.BuildResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/builds [post]
func (h *BuildsHandler) CreateBuild(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.CreateBuildRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.CarModel = strings.TrimSpace(req.CarModel)
	req.Color = strings.TrimSpace(req.Color)
	if req.CarModel == "" || req.Color == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "carModel and color are required")
		return
	}

	parts := req.SelectedParts
	if parts == nil {
		parts = make([]models.BuildPart, 0)
	}

	totalPrice := req.TotalPrice
	if h.config.Pricing.RecomputeTotal {
		totalPrice = sumPartPrices(parts)
	}
	if totalPrice < 0 {
		totalPrice = 0
	}

	now := time.Now()
	build := models.Build{
		ID:            uuid.New(),
		UserID:        userID,
		CarModel:      req.CarModel,
		Color:         req.Color,
		SelectedParts: parts,
		TotalPrice:    totalPrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := h.store.CreateBuild(r.Context(), &build); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, toBuildResponse(&build))
}

// ListUserBuilds handles GET /api/builds/user/{userId}
// @Summary List a user's builds
// @Tags builds
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {array} dto.BuildResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/builds/user/{userId} [get]
func (h *BuildsHandler) ListUserBuilds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/api/builds/user/")
	ownerID, err := uuid.Parse(idStr)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid user id", "userId must be UUID")
		return
	}

	builds, err := h.store.ListBuildsByUser(r.Context(), ownerID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	items := make([]dto.BuildResponse, 0, len(builds))
	for i := range builds {
		items = append(items, toBuildResponse(&builds[i]))
	}

	utils.WriteJSONResponse(w, http.StatusOK, items)
}

// BuildDetail handles GET /api/builds/{id}
// @Summary Get a build
// @Tags builds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Build ID"
// @Success 200 {object} dto.BuildResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/builds/{id} [get]
func (h *BuildsHandler) BuildDetail(w http.ResponseWriter, r *http.Request) {
	build, ok := h.loadOwnedBuild(w, r)
	if !ok {
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, toBuildResponse(build))
}

// UpdateBuild handles PUT /api/builds/{id}
// @Summary Update a build
// @Tags builds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Build ID"
// @Param payload body dto.UpdateBuildRequest true "Update payload"
// @Success 200 {object} dto.BuildResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/builds/{id} [put]
func (h *BuildsHandler) UpdateBuild(w http.ResponseWriter, r *http.Request) {
	build, ok := h.loadOwnedBuild(w, r)
	if !ok {
		return
	}

	var req dto.UpdateBuildRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.CarModel != nil {
		carModel := strings.TrimSpace(*req.CarModel)
		if carModel == "" {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "carModel cannot be empty")
			return
		}
		build.CarModel = carModel
	}
	if req.Color != nil {
		color := strings.TrimSpace(*req.Color)
		if color == "" {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "color cannot be empty")
			return
		}
		build.Color = color
	}
	if req.SelectedParts != nil {
		build.SelectedParts = *req.SelectedParts
		if build.SelectedParts == nil {
			build.SelectedParts = make([]models.BuildPart, 0)
		}
	}
	if req.TotalPrice != nil {
		if *req.TotalPrice < 0 {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "totalPrice cannot be negative")
			return
		}
		build.TotalPrice = *req.TotalPrice
	}
	if h.config.Pricing.RecomputeTotal {
		build.TotalPrice = sumPartPrices(build.SelectedParts)
	}

	build.UpdatedAt = time.Now()

	if err := h.store.UpdateBuild(r.Context(), build); err != nil {
		if errors.Is(err, repository.ErrBuildNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", buildNotFoundMsg)
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, toBuildResponse(build))
}

// DeleteBuild handles DELETE /api/builds/{id}
// @Summary Delete a build
// @Tags builds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Build ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/builds/{id} [delete]
func (h *BuildsHandler) DeleteBuild(w http.ResponseWriter, r *http.Request) {
	build, ok := h.loadOwnedBuild(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteBuild(r.Context(), build.ID); err != nil {
		if errors.Is(err, repository.ErrBuildNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", buildNotFoundMsg)
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Build deleted"})
}

// loadOwnedBuild extracts the build ID from the path, loads the build,
// and enforces that the requester owns it. Both "missing" and "not
// owned" answer with the same 404 body; the distinction goes to the log
// only.
func (h *BuildsHandler) loadOwnedBuild(w http.ResponseWriter, r *http.Request) (*models.Build, bool) {
	requesterID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return nil, false
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/api/builds/")
	buildID, err := uuid.Parse(idStr)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid build id", "id must be UUID")
		return nil, false
	}

	build, err := h.store.GetBuildByID(r.Context(), buildID)
	if err != nil {
		if errors.Is(err, repository.ErrBuildNotFound) {
			h.logger.Info("build lookup failed", "build_id", buildID.String(), "cause", "not_found")
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", buildNotFoundMsg)
			return nil, false
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return nil, false
	}

	if build.UserID != requesterID {
		h.logger.Info("build lookup failed",
			"build_id", buildID.String(),
			"requester_id", requesterID.String(),
			"cause", "not_owner")
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", buildNotFoundMsg)
		return nil, false
	}

	return build, true
}

func sumPartPrices(parts []models.BuildPart) float64 {
	total := 0.0
	for _, p := range parts {
		total += p.Price
	}
	return total
}

func toBuildResponse(build *models.Build) dto.BuildResponse {
	return dto.BuildResponse{
		ID:            build.ID.String(),
		UserID:        build.UserID.String(),
		CarModel:      build.CarModel,
		Color:         build.Color,
		SelectedParts: build.SelectedParts,
		TotalPrice:    build.TotalPrice,
		CreatedAt:     utils.FormatTimestamp(build.CreatedAt),
		UpdatedAt:     utils.FormatTimestamp(build.UpdatedAt),
	}
}
