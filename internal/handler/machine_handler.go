package handler

import (
	"errors"
	"net/http"

	"oeeboard/internal/access"
	"oeeboard/internal/model"
	"oeeboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MachineHandler struct {
	machines *repository.MachineRepository
	switcher *access.Switcher
	resolver *access.Resolver
}

func NewMachineHandler(machines *repository.MachineRepository, switcher *access.Switcher, resolver *access.Resolver) *MachineHandler {
	return &MachineHandler{
		machines: machines,
		switcher: switcher,
		resolver: resolver,
	}
}

type CreateMachineRequest struct {
	Name   string `json:"name" binding:"required"`
	Code   string `json:"code" binding:"required"`
	Sector string `json:"sector" binding:"required"`
}

type UpdateMachineRequest struct {
	Name   string `json:"name"`
	Sector string `json:"sector"`
}

type MachineResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	Sector string `json:"sector"`
}

func machineResponse(m model.Machine) MachineResponse {
	return MachineResponse{
		ID:     m.ID.String(),
		Name:   m.Name,
		Code:   m.Code,
		Sector: m.Sector,
	}
}

// GetAll lists the machines of the dashboard currently being viewed.
func (h *MachineHandler) GetAll(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	target, err := h.switcher.Current(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve viewing context"})
		return
	}

	machines, err := h.machines.GetOwned(c.Request.Context(), target)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve machines"})
		return
	}

	response := make([]MachineResponse, len(machines))
	for i, m := range machines {
		response[i] = machineResponse(m)
	}
	c.JSON(http.StatusOK, response)
}

// Create registers a machine for the authenticated user. Disabled while
// viewing another account's dashboard.
func (h *MachineHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if !h.canEdit(c, userID) {
		return
	}

	var req CreateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	machine := &model.Machine{
		Name:    req.Name,
		Code:    req.Code,
		Sector:  req.Sector,
		OwnerID: userID,
	}

	if err := h.machines.Create(c.Request.Context(), machine); err != nil {
		if errors.Is(err, repository.ErrDuplicateCode) {
			c.JSON(http.StatusConflict, gin.H{"error": "Machine code already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create machine"})
		return
	}

	c.JSON(http.StatusCreated, machineResponse(*machine))
}

func (h *MachineHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if !h.canEdit(c, userID) {
		return
	}

	machineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid machine ID format"})
		return
	}

	machine, err := h.machines.GetByID(c.Request.Context(), machineID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve machine"})
		return
	}
	if machine == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Machine not found"})
		return
	}
	if machine.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to update this machine"})
		return
	}

	var req UpdateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Name != "" {
		machine.Name = req.Name
	}
	if req.Sector != "" {
		machine.Sector = req.Sector
	}

	if err := h.machines.Update(c.Request.Context(), machine); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update machine"})
		return
	}

	c.JSON(http.StatusOK, machineResponse(*machine))
}

func (h *MachineHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if !h.canEdit(c, userID) {
		return
	}

	machineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid machine ID format"})
		return
	}

	machine, err := h.machines.GetByID(c.Request.Context(), machineID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve machine"})
		return
	}
	if machine == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Machine not found"})
		return
	}
	if machine.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to delete this machine"})
		return
	}

	if err := h.machines.Delete(c.Request.Context(), machineID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete machine"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Machine deleted successfully"})
}

// canEdit rejects writes while the user views another account's dashboard.
func (h *MachineHandler) canEdit(c *gin.Context, userID uuid.UUID) bool {
	snap, err := h.resolver.Snapshot(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve permissions"})
		return false
	}
	if !snap.Capabilities().CanEditData {
		c.JSON(http.StatusForbidden, gin.H{"error": "Read-only access while viewing another dashboard"})
		return false
	}
	return true
}
