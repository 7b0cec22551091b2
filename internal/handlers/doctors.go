package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CreateDoctorRequest struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Contact   string `json:"contact"`
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.svc.ListDoctors(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.svc.CreateDoctor(c.Request.Context(), req.Name, req.Specialty, req.Contact)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.DeleteDoctor(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
