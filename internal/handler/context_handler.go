package handler

import (
	"net/http"

	"oeeboard/internal/access"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ContextHandler struct {
	switcher *access.Switcher
	resolver *access.Resolver
}

func NewContextHandler(switcher *access.Switcher, resolver *access.Resolver) *ContextHandler {
	return &ContextHandler{switcher: switcher, resolver: resolver}
}

type SwitchRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

type DashboardResponse struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
	IsSelf      bool   `json:"is_self"`
	Role        string `json:"role"`
}

// List returns the dashboards the user may view, the one currently viewed
// and the capability flags for that context.
func (h *ContextHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	snap, err := h.resolver.Snapshot(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve permissions"})
		return
	}

	dashboards := make([]DashboardResponse, len(snap.Dashboards))
	for i, d := range snap.Dashboards {
		dashboards[i] = DashboardResponse{
			UserID:      d.ID.String(),
			Name:        d.Name,
			CompanyName: d.CompanyName,
			IsSelf:      d.ID == userID,
			Role:        string(snap.EffectiveRole(d.ID)),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"dashboards":   dashboards,
		"viewing_as":   snap.ViewingAs.String(),
		"capabilities": snap.Capabilities(),
	})
}

// Switch changes which dashboard the user is viewing. All derived state is
// recomputed from scratch afterwards.
func (h *ContextHandler) Switch(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req SwitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	target, _ := uuid.Parse(req.UserID)
	if err := h.switcher.Switch(c.Request.Context(), userID, target); err != nil {
		writeAccessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Dashboard switched", "viewing_as": target.String()})
}
