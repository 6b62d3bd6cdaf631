package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"oeeboard/internal/access"
	"oeeboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InvitationHandler struct {
	manager  *access.InvitationManager
	resolver *access.Resolver
}

func NewInvitationHandler(manager *access.InvitationManager, resolver *access.Resolver) *InvitationHandler {
	return &InvitationHandler{manager: manager, resolver: resolver}
}

type SendInvitationRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=viewer operator supervisor"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=viewer operator supervisor"`
}

type InvitationResponse struct {
	ID         string `json:"id"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	InvitedAt  string `json:"invited_at"`
	AcceptedAt string `json:"accepted_at,omitempty"`
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
}

// invitationResponse renders an invitation with its counterpart profile:
// the admin for received invitations, the invited user for sent ones.
func invitationResponse(inv model.Invitation, counterpart model.User) InvitationResponse {
	resp := InvitationResponse{
		ID:        inv.ID.String(),
		Role:      string(inv.Role),
		Status:    string(inv.Status),
		InvitedAt: inv.InvitedAt.Format(time.RFC3339),
		UserID:    counterpart.ID.String(),
		UserName:  counterpart.Name,
		UserEmail: counterpart.Email,
	}
	if inv.AcceptedAt != nil {
		resp.AcceptedAt = inv.AcceptedAt.Format(time.RFC3339)
	}
	return resp
}

// List returns invitations from both directions for the authenticated user.
func (h *InvitationHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	snap, err := h.resolver.Snapshot(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve permissions"})
		return
	}

	received := make([]InvitationResponse, len(snap.Received))
	for i, inv := range snap.Received {
		received[i] = invitationResponse(inv, inv.Admin)
	}
	sent := make([]InvitationResponse, len(snap.Sent))
	for i, inv := range snap.Sent {
		sent[i] = invitationResponse(inv, inv.Invited)
	}

	c.JSON(http.StatusOK, gin.H{"received": received, "sent": sent})
}

// Send invites another account by email to view this user's dashboard.
func (h *InvitationHandler) Send(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req SendInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	invitation, err := h.manager.Send(c.Request.Context(), userID, req.Email, model.Role(req.Role))
	if err != nil {
		writeAccessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      invitation.ID,
		"message": "Invitation sent successfully",
	})
}

func (h *InvitationHandler) Accept(c *gin.Context) {
	h.transition(c, h.manager.Accept, "Invitation accepted")
}

func (h *InvitationHandler) Reject(c *gin.Context) {
	h.transition(c, h.manager.Reject, "Invitation rejected")
}

func (h *InvitationHandler) UpdateRole(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	invitationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invitation ID format"})
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.manager.UpdateRole(c.Request.Context(), userID, invitationID, model.Role(req.Role)); err != nil {
		writeAccessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invitation role updated"})
}

func (h *InvitationHandler) Remove(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	invitationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invitation ID format"})
		return
	}

	if err := h.manager.Remove(c.Request.Context(), userID, invitationID); err != nil {
		writeAccessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invitation removed"})
}

func (h *InvitationHandler) transition(c *gin.Context, action func(ctx context.Context, userID, invitationID uuid.UUID) error, message string) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	invitationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invitation ID format"})
		return
	}

	if err := action(c.Request.Context(), userID, invitationID); err != nil {
		writeAccessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// writeAccessError maps the access error taxonomy onto HTTP statuses.
func writeAccessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, access.ErrUserNotFound), errors.Is(err, access.ErrInvitationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, access.ErrInvitePending), errors.Is(err, access.ErrAlreadyHasAccess):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, access.ErrSelfInvite), errors.Is(err, access.ErrInvalidRole), errors.Is(err, access.ErrNotPending):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, access.ErrNotGrantee), errors.Is(err, access.ErrNotGrantor), errors.Is(err, access.ErrDashboardUnavailable):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
