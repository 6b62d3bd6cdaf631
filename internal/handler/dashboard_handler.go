package handler

import (
	"net/http"
	"strconv"
	"time"

	"oeeboard/internal/access"
	"oeeboard/internal/model"
	"oeeboard/internal/oee"
	"oeeboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DashboardHandler struct {
	records  *repository.ProductionRepository
	machines *repository.MachineRepository
	switcher *access.Switcher
}

func NewDashboardHandler(records *repository.ProductionRepository, machines *repository.MachineRepository, switcher *access.Switcher) *DashboardHandler {
	return &DashboardHandler{
		records:  records,
		machines: machines,
		switcher: switcher,
	}
}

type SummaryResponse struct {
	oee.Summary
	Status oee.Status `json:"status"`
}

type MachineMetricsResponse struct {
	MachineID string     `json:"machine_id"`
	Name      string     `json:"name"`
	Sector    string     `json:"sector"`
	OEE       float64    `json:"oee"`
	Status    oee.Status `json:"status"`
}

// Summary returns the aggregated metrics for the last 7 days of the viewed
// dashboard, classified against the OEE status tiers.
func (h *DashboardHandler) Summary(c *gin.Context) {
	records, ok := h.windowRecords(c, 7)
	if !ok {
		return
	}

	summary := oee.Aggregate(records, time.Now())
	c.JSON(http.StatusOK, SummaryResponse{
		Summary: summary,
		Status:  oee.Classify(summary.OEE),
	})
}

// Trend returns one OEE point per day for a trailing window (default 7 days).
func (h *DashboardHandler) Trend(c *gin.Context) {
	days := 7
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 90 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 90"})
			return
		}
		days = parsed
	}

	records, ok := h.windowRecords(c, days)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, oee.TimeSeries(records, days, time.Now()))
}

// Machines returns the per-machine OEE breakdown for the last 7 days.
func (h *DashboardHandler) Machines(c *gin.Context) {
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

	now := time.Now()
	from := now.AddDate(0, 0, -6)
	records, err := h.records.List(c.Request.Context(), repository.RecordFilter{
		OwnerID:  target,
		DateFrom: &from,
		DateTo:   &now,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve production records"})
		return
	}

	byMachine := make(map[uuid.UUID][]model.ProductionRecord)
	for _, rec := range records {
		byMachine[rec.MachineID] = append(byMachine[rec.MachineID], rec)
	}

	response := make([]MachineMetricsResponse, len(machines))
	for i, m := range machines {
		summary := oee.Aggregate(byMachine[m.ID], now)
		response[i] = MachineMetricsResponse{
			MachineID: m.ID.String(),
			Name:      m.Name,
			Sector:    m.Sector,
			OEE:       summary.OEE,
			Status:    oee.Classify(summary.OEE),
		}
	}
	c.JSON(http.StatusOK, response)
}

func (h *DashboardHandler) windowRecords(c *gin.Context, days int) ([]model.ProductionRecord, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return nil, false
	}

	target, err := h.switcher.Current(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve viewing context"})
		return nil, false
	}

	now := time.Now()
	from := now.AddDate(0, 0, -(days - 1))
	records, err := h.records.List(c.Request.Context(), repository.RecordFilter{
		OwnerID:  target,
		DateFrom: &from,
		DateTo:   &now,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve production records"})
		return nil, false
	}
	return records, true
}
