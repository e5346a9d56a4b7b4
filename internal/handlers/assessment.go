package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"assessment-api/internal/models"
	"assessment-api/internal/repository"
	"assessment-api/internal/services"
	"assessment-api/internal/utils"
)

type AssessmentHandler struct {
	assessmentService *services.AssessmentService
}

func NewAssessmentHandler(assessmentService *services.AssessmentService) *AssessmentHandler {
	utils.LogSuccess("AssessmentHandler", "Assessment handler initialized")
	return &AssessmentHandler{
		assessmentService: assessmentService,
	}
}

// CreateAssessment handles POST /assessments. The route is not auth-gated and
// no owner is recorded, matching the published contract.
func (h *AssessmentHandler) CreateAssessment(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()
	utils.LogRequest("POST", "/assessments", "anonymous")

	var req models.AssessmentRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		utils.LogError("AssessmentHandler", "Failed to parse request body", err)
		respondJSON(ctx, fasthttp.StatusBadRequest, map[string]string{
			"message": "Invalid request body",
			"error":   errBadRequest,
		})
		utils.LogResponse("/assessments", fasthttp.StatusBadRequest, time.Since(startTime))
		return
	}

	assessment := &models.Assessment{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}

	if err := h.assessmentService.Create(ctx, assessment); err != nil {
		utils.LogError("AssessmentHandler", "Failed to create assessment", err)
		respondJSON(ctx, fasthttp.StatusInternalServerError, map[string]string{
			"message": "Error creating assessment",
			"error":   errPersistence,
		})
		utils.LogResponse("/assessments", fasthttp.StatusInternalServerError, time.Since(startTime))
		return
	}

	respondJSON(ctx, fasthttp.StatusCreated, map[string]interface{}{
		"message":      "Assessment created successfully",
		"assessmentId": assessment.ID,
	})
	utils.LogResponse("/assessments", fasthttp.StatusCreated, time.Since(startTime))
}

// ListAssessments handles GET /assessments and returns the full snapshot.
func (h *AssessmentHandler) ListAssessments(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()
	utils.LogRequest("GET", "/assessments", "anonymous")

	assessments, err := h.assessmentService.List(ctx)
	if err != nil {
		utils.LogError("AssessmentHandler", "Failed to fetch assessments", err)
		respondJSON(ctx, fasthttp.StatusInternalServerError, map[string]string{
			"message": "Error fetching assessments",
			"error":   errPersistence,
		})
		utils.LogResponse("/assessments", fasthttp.StatusInternalServerError, time.Since(startTime))
		return
	}

	if assessments == nil {
		assessments = []models.Assessment{}
	}

	respondJSON(ctx, fasthttp.StatusOK, assessments)
	utils.LogResponse("/assessments", fasthttp.StatusOK, time.Since(startTime))
}

// UpdateAssessment handles PUT /assessments/:id. The route is auth-gated; the
// requester id from the verified token must match the stored owner.
func (h *AssessmentHandler) UpdateAssessment(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	userID, ok := ctx.UserValue("user_id").(string)
	if !ok || userID == "" {
		utils.LogError("AssessmentHandler", "user_id missing from request context", nil)
		respondJSON(ctx, fasthttp.StatusUnauthorized, map[string]string{
			"message": "Authorization required",
		})
		utils.LogResponse("/assessments/:id", fasthttp.StatusUnauthorized, time.Since(startTime))
		return
	}

	id, _ := ctx.UserValue("id").(string)
	utils.LogRequest("PUT", "/assessments/"+id, userID)

	var req models.AssessmentRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		utils.LogError("AssessmentHandler", "Failed to parse request body", err)
		respondJSON(ctx, fasthttp.StatusBadRequest, map[string]string{
			"message": "Invalid request body",
			"error":   errBadRequest,
		})
		utils.LogResponse("/assessments/:id", fasthttp.StatusBadRequest, time.Since(startTime))
		return
	}

	if err := h.assessmentService.Update(ctx, id, userID, req); err != nil {
		if errors.Is(err, repository.ErrAssessmentNotFound) {
			respondJSON(ctx, fasthttp.StatusNotFound, map[string]string{
				"message": "Assessment not found",
			})
			utils.LogResponse("/assessments/:id", fasthttp.StatusNotFound, time.Since(startTime))
			return
		}
		utils.LogError("AssessmentHandler", fmt.Sprintf("Failed to update assessment %s", id), err)
		respondJSON(ctx, fasthttp.StatusInternalServerError, map[string]string{
			"message": "Error updating assessment",
			"error":   errPersistence,
		})
		utils.LogResponse("/assessments/:id", fasthttp.StatusInternalServerError, time.Since(startTime))
		return
	}

	respondJSON(ctx, fasthttp.StatusOK, map[string]string{
		"message": "Assessment updated successfully",
	})
	utils.LogResponse("/assessments/:id", fasthttp.StatusOK, time.Since(startTime))
}

// DeleteAssessment handles DELETE /assessments/:id. Not auth-gated; removal
// is by id alone with no ownership check.
func (h *AssessmentHandler) DeleteAssessment(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	id, _ := ctx.UserValue("id").(string)
	utils.LogRequest("DELETE", "/assessments/"+id, "anonymous")

	if err := h.assessmentService.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrAssessmentNotFound) {
			respondJSON(ctx, fasthttp.StatusNotFound, map[string]string{
				"message": "Assessment not found",
			})
			utils.LogResponse("/assessments/:id", fasthttp.StatusNotFound, time.Since(startTime))
			return
		}
		utils.LogError("AssessmentHandler", fmt.Sprintf("Failed to delete assessment %s", id), err)
		respondJSON(ctx, fasthttp.StatusInternalServerError, map[string]string{
			"message": "Error deleting assessment",
			"error":   errPersistence,
		})
		utils.LogResponse("/assessments/:id", fasthttp.StatusInternalServerError, time.Since(startTime))
		return
	}

	respondJSON(ctx, fasthttp.StatusOK, map[string]string{
		"message": "Assessment deleted successfully",
	})
	utils.LogResponse("/assessments/:id", fasthttp.StatusOK, time.Since(startTime))
}
