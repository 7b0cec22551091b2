// Package handlers translates HTTP requests into service calls. All domain
// rules live in the hospital package; handlers only bind, delegate and map
// errors to status codes.
package handlers

import (
	"github.com/gin-gonic/gin"

	"hospital-backend/internal/hospital"
)

type Handler struct {
	svc *hospital.Service
}

func New(svc *hospital.Service) *Handler {
	return &Handler{svc: svc}
}

func writeError(c *gin.Context, err error) {
	c.JSON(hospital.HTTPStatus(err), gin.H{"error": err.Error()})
}
