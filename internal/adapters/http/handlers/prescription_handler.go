package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/stores"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/pkg/response"
)

// PrescriptionHandler handles the e-prescription workflow
type PrescriptionHandler struct {
	prescriptions  *stores.PrescriptionStore
	ePrescriptions *stores.EPrescriptionStore
}

// NewPrescriptionHandler creates a new prescription handler
func NewPrescriptionHandler(prescriptions *stores.PrescriptionStore, ePrescriptions *stores.EPrescriptionStore) *PrescriptionHandler {
	return &PrescriptionHandler{prescriptions: prescriptions, ePrescriptions: ePrescriptions}
}

// Convert handles turning an e-prescription into a counter prescription
// @Summary Convert e-prescription
// @Description Creates an active prescription from the e-prescription and marks it processed
// @Tags Prescriptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "E-prescription ID"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /e-prescriptions/{id}/convert [post]
func (h *PrescriptionHandler) Convert(c *fiber.Ctx) error {
	id := utils.CopyString(c.Params("id"))
	if erx, ok := h.ePrescriptions.GetByID(id); ok && erx.Status == domain.StatusProcessed {
		return response.UnprocessableEntity(c, "E-prescription has already been converted")
	}

	rx, err := h.ePrescriptions.ConvertToPrescription(c.UserContext(), id)
	if err != nil {
		return storeError(c, err, "Failed to convert e-prescription")
	}
	return response.Created(c, "E-prescription converted successfully", rx)
}

// Counts handles the prescription counters
// @Summary Prescription counters
// @Tags Prescriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /prescriptions/counts [get]
func (h *PrescriptionHandler) Counts(c *fiber.Ctx) error {
	return response.Success(c, "Prescription counters retrieved successfully", fiber.Map{
		"active":                  h.prescriptions.ActiveCount(),
		"pending_e_prescriptions": h.ePrescriptions.PendingCount(),
	})
}
