package handler

import (
	"net/http"
	"time"

	"oeeboard/internal/access"
	"oeeboard/internal/model"
	"oeeboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductionHandler struct {
	records  *repository.ProductionRepository
	machines *repository.MachineRepository
	shifts   *repository.ShiftRepository
	switcher *access.Switcher
	resolver *access.Resolver
}

func NewProductionHandler(
	records *repository.ProductionRepository,
	machines *repository.MachineRepository,
	shifts *repository.ShiftRepository,
	switcher *access.Switcher,
	resolver *access.Resolver,
) *ProductionHandler {
	return &ProductionHandler{
		records:  records,
		machines: machines,
		shifts:   shifts,
		switcher: switcher,
		resolver: resolver,
	}
}

type ProductionRequest struct {
	MachineID         string `json:"machine_id" binding:"required,uuid"`
	ShiftID           string `json:"shift_id" binding:"required,uuid"`
	Date              string `json:"date" binding:"required"`
	PlannedProduction int    `json:"planned_production" binding:"min=0"`
	ActualProduction  int    `json:"actual_production" binding:"min=0"`
	DowntimeMinutes   int    `json:"downtime_minutes" binding:"min=0,max=480"`
	DowntimeReason    string `json:"downtime_reason"`
	DefectiveUnits    int    `json:"defective_units" binding:"min=0"`
}

type ProductionResponse struct {
	ID                string `json:"id"`
	MachineID         string `json:"machine_id"`
	MachineName       string `json:"machine_name"`
	Sector            string `json:"sector"`
	ShiftID           string `json:"shift_id"`
	ShiftName         string `json:"shift_name"`
	Date              string `json:"date"`
	PlannedProduction int    `json:"planned_production"`
	ActualProduction  int    `json:"actual_production"`
	DowntimeMinutes   int    `json:"downtime_minutes"`
	DowntimeReason    string `json:"downtime_reason"`
	DefectiveUnits    int    `json:"defective_units"`
}

func productionResponse(rec model.ProductionRecord) ProductionResponse {
	return ProductionResponse{
		ID:                rec.ID.String(),
		MachineID:         rec.MachineID.String(),
		MachineName:       rec.Machine.Name,
		Sector:            rec.Machine.Sector,
		ShiftID:           rec.ShiftID.String(),
		ShiftName:         rec.Shift.Name,
		Date:              rec.Date.Format("2006-01-02"),
		PlannedProduction: rec.PlannedProduction,
		ActualProduction:  rec.ActualProduction,
		DowntimeMinutes:   rec.DowntimeMinutes,
		DowntimeReason:    rec.DowntimeReason,
		DefectiveUnits:    rec.DefectiveUnits,
	}
}

// GetAll lists the production records of the dashboard currently being
// viewed, newest first.
func (h *ProductionHandler) GetAll(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	target, err := h.switcher.Current(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve viewing context"})
		return
	}

	records, err := h.records.List(c.Request.Context(), repository.RecordFilter{OwnerID: target})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve production records"})
		return
	}

	response := make([]ProductionResponse, len(records))
	for i, rec := range records {
		response[i] = productionResponse(rec)
	}
	c.JSON(http.StatusOK, response)
}

func (h *ProductionHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if !h.canEdit(c, userID) {
		return
	}

	var req ProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	record, ok := h.buildRecord(c, userID, req)
	if !ok {
		return
	}

	if err := h.records.Create(c.Request.Context(), record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create production record"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": record.ID, "message": "Production record created"})
}

func (h *ProductionHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if !h.canEdit(c, userID) {
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID format"})
		return
	}

	existing, err := h.records.GetByID(c.Request.Context(), recordID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve production record"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Production record not found"})
		return
	}
	if existing.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to update this record"})
		return
	}

	var req ProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	record, ok := h.buildRecord(c, userID, req)
	if !ok {
		return
	}
	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt

	if err := h.records.Update(c.Request.Context(), record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update production record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Production record updated"})
}

func (h *ProductionHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if !h.canEdit(c, userID) {
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID format"})
		return
	}

	existing, err := h.records.GetByID(c.Request.Context(), recordID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve production record"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Production record not found"})
		return
	}
	if existing.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to delete this record"})
		return
	}

	if err := h.records.Delete(c.Request.Context(), recordID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete production record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Production record deleted"})
}

// buildRecord validates references and assembles a record owned by userID.
func (h *ProductionHandler) buildRecord(c *gin.Context, userID uuid.UUID, req ProductionRequest) (*model.ProductionRecord, bool) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be YYYY-MM-DD"})
		return nil, false
	}

	machineID, _ := uuid.Parse(req.MachineID)
	machine, err := h.machines.GetByID(c.Request.Context(), machineID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve machine"})
		return nil, false
	}
	if machine == nil || machine.OwnerID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Machine not found"})
		return nil, false
	}

	shiftID, _ := uuid.Parse(req.ShiftID)
	shift, err := h.shifts.GetByID(c.Request.Context(), shiftID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve shift"})
		return nil, false
	}
	if shift == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shift not found"})
		return nil, false
	}

	return &model.ProductionRecord{
		MachineID:         machineID,
		ShiftID:           shiftID,
		OwnerID:           userID,
		Date:              date,
		PlannedProduction: req.PlannedProduction,
		ActualProduction:  req.ActualProduction,
		DowntimeMinutes:   req.DowntimeMinutes,
		DowntimeReason:    req.DowntimeReason,
		DefectiveUnits:    req.DefectiveUnits,
	}, true
}

func (h *ProductionHandler) canEdit(c *gin.Context, userID uuid.UUID) bool {
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
