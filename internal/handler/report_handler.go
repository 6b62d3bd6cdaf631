package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"oeeboard/internal/access"
	"oeeboard/internal/oee"
	"oeeboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportHandler struct {
	records  *repository.ProductionRepository
	switcher *access.Switcher
}

func NewReportHandler(records *repository.ProductionRepository, switcher *access.Switcher) *ReportHandler {
	return &ReportHandler{records: records, switcher: switcher}
}

type ReportResponse struct {
	Summary oee.Summary          `json:"summary"`
	Status  oee.Status           `json:"status"`
	Records []ProductionResponse `json:"records"`
}

// Get returns filtered production records plus their aggregated metrics.
// Filters: date_from, date_to (YYYY-MM-DD), machine_id, sector.
func (h *ReportHandler) Get(c *gin.Context) {
	filter, ok := h.buildFilter(c)
	if !ok {
		return
	}

	records, err := h.records.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve production records"})
		return
	}

	summary := oee.Aggregate(records, time.Now())
	response := ReportResponse{
		Summary: summary,
		Status:  oee.Classify(summary.OEE),
		Records: make([]ProductionResponse, len(records)),
	}
	for i, rec := range records {
		response.Records[i] = productionResponse(rec)
	}
	c.JSON(http.StatusOK, response)
}

// ExportCSV streams the filtered records as CSV. encoding/csv handles
// quoting, so commas or quotes inside machine names and downtime reasons
// survive a round trip.
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	filter, ok := h.buildFilter(c)
	if !ok {
		return
	}

	records, err := h.records.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve production records"})
		return
	}

	filename := fmt.Sprintf("production_report_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"date", "machine", "sector", "planned", "actual", "defects", "downtime_minutes", "downtime_reason"})
	for _, rec := range records {
		w.Write([]string{
			rec.Date.Format("2006-01-02"),
			rec.Machine.Name,
			rec.Machine.Sector,
			strconv.Itoa(rec.PlannedProduction),
			strconv.Itoa(rec.ActualProduction),
			strconv.Itoa(rec.DefectiveUnits),
			strconv.Itoa(rec.DowntimeMinutes),
			rec.DowntimeReason,
		})
	}
	w.Flush()
}

func (h *ReportHandler) buildFilter(c *gin.Context) (repository.RecordFilter, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return repository.RecordFilter{}, false
	}

	target, err := h.switcher.Current(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve viewing context"})
		return repository.RecordFilter{}, false
	}

	filter := repository.RecordFilter{OwnerID: target, Sector: c.Query("sector")}

	if v := c.Query("date_from"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_from must be YYYY-MM-DD"})
			return repository.RecordFilter{}, false
		}
		filter.DateFrom = &from
	}
	if v := c.Query("date_to"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_to must be YYYY-MM-DD"})
			return repository.RecordFilter{}, false
		}
		filter.DateTo = &to
	}
	if v := c.Query("machine_id"); v != "" {
		machineID, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid machine ID format"})
			return repository.RecordFilter{}, false
		}
		filter.MachineID = &machineID
	}
	return filter, true
}
