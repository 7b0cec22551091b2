package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CreateAppointmentRequest struct {
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`
	Datetime  string `json:"datetime"`
}

func (h *Handler) ListAppointments(c *gin.Context) {
	appointments, err := h.svc.ListAppointments(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.svc.CreateAppointment(c.Request.Context(), req.PatientID, req.DoctorID, req.Datetime)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.DeleteAppointment(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
