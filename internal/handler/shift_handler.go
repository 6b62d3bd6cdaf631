package handler

import (
	"net/http"

	"oeeboard/internal/repository"

	"github.com/gin-gonic/gin"
)

type ShiftHandler struct {
	shifts *repository.ShiftRepository
}

func NewShiftHandler(shifts *repository.ShiftRepository) *ShiftHandler {
	return &ShiftHandler{shifts: shifts}
}

type ShiftResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (h *ShiftHandler) GetAll(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	shifts, err := h.shifts.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve shifts"})
		return
	}

	response := make([]ShiftResponse, len(shifts))
	for i, s := range shifts {
		response[i] = ShiftResponse{
			ID:        s.ID.String(),
			Name:      s.Name,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		}
	}
	c.JSON(http.StatusOK, response)
}
