package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/medication_tracker/internal/core/ports/services"
	"github.com/SscSPs/medication_tracker/internal/dto"
	"github.com/SscSPs/medication_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// medicationHandler handles HTTP requests on a user's medication records.
type medicationHandler struct {
	userService       portssvc.UserReaderSvc
	medicationService portssvc.MedicationSvcFacade
}

func newMedicationHandler(us portssvc.UserReaderSvc, ms portssvc.MedicationSvcFacade) *medicationHandler {
	return &medicationHandler{
		userService:       us,
		medicationService: ms,
	}
}

// registerMedicationRoutes registers all medication-related routes.
func registerMedicationRoutes(rg *gin.RouterGroup, userService portssvc.UserReaderSvc, medicationService portssvc.MedicationSvcFacade) {
	h := newMedicationHandler(userService, medicationService)

	meds := rg.Group("/meds")
	{
		meds.GET("/:id", h.getMedication)
		meds.POST("/:id", h.upsertMedication)
		meds.PUT("/:id", h.upsertMedication)
		meds.DELETE("/:id/:drug_name", h.deleteMedication)
	}
}

// getMedication godoc
// @Summary View a user's medication
// @Tags medication
// @Produce json
// @Param id path string true "User ID or me"
// @Success 200 {object} map[string]dto.MedicationResponse
// @Failure 404 {object} ErrorResponse
// @Router /meds/{id} [get]
func (h *medicationHandler) getMedication(c *gin.Context) {
	user, ok := resolveTargetUser(c, h.userService)
	if !ok {
		return
	}

	meds, err := h.medicationService.GetMedication(c.Request.Context(), user.UserID)
	if err != nil || len(meds) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToMedicationResponse(meds))
}

// upsertMedication godoc
// @Summary Add or replace medication
// @Description Each med_data entry is [dose, hours between doses, max doses (optional), date issued (optional)].
// @Tags medication
// @Accept json
// @Produce json
// @Param id path string true "User ID or me"
// @Param request body dto.UpsertMedicationRequest true "Password and medication data"
// @Success 201 {object} map[string]dto.MedicationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /meds/{id} [post]
// @Router /meds/{id} [put]
func (h *medicationHandler) upsertMedication(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	user, ok := resolveTargetUser(c, h.userService)
	if !ok {
		return
	}

	var req dto.UpsertMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Wrong format"})
		return
	}
	if req.MedData == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "med_data missing"})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "password missing"})
		return
	}

	entries, err := req.Entries()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Can't update medication: " + err.Error()})
		return
	}

	meds, err := h.medicationService.UpdateMedication(c.Request.Context(), user.UserID, entries, req.Password)
	if err != nil {
		logger.Warn("Medication update rejected", slog.String("target_user_id", user.UserID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Can't update medication: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.ToMedicationResponse(meds))
}

// deleteMedication godoc
// @Summary Delete one drug
// @Tags medication
// @Accept json
// @Produce json
// @Param id path string true "User ID or me"
// @Param drug_name path string true "Drug name"
// @Param request body dto.RemoveMedicationRequest true "Password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /meds/{id}/{drug_name} [delete]
func (h *medicationHandler) deleteMedication(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	user, ok := resolveTargetUser(c, h.userService)
	if !ok {
		return
	}

	var req dto.RemoveMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Wrong format"})
		return
	}
	drugName := c.Param("drug_name")
	if drugName == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no drug specified"})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "password missing"})
		return
	}

	if err := h.medicationService.RemoveMedication(c.Request.Context(), user.UserID, drugName, req.Password); err != nil {
		logger.Warn("Medication delete rejected", slog.String("target_user_id", user.UserID), slog.String("drug", drugName), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Can't delete drug: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
