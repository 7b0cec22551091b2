package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CreatePatientRequest struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.svc.ListPatients(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.svc.CreatePatient(c.Request.Context(), req.Name, req.Age, req.Contact, req.Address)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) DeletePatient(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.DeletePatient(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
