package oee

import (
	"time"

	"oeeboard/internal/model"
)

// ShiftMinutes is the fixed shift length the availability math assumes.
// Records are registered per 8-hour shift regardless of the shift's
// configured start/end times.
const ShiftMinutes = 480

// Metrics holds the four derived rates for a record or a record set,
// each a percentage in [0, 100].
type Metrics struct {
	Availability float64 `json:"availability"`
	Performance  float64 `json:"performance"`
	Quality      float64 `json:"quality"`
	OEE          float64 `json:"oee"`
}

// Summary aggregates metrics and raw totals across a record set.
type Summary struct {
	Metrics

	TotalProduced int `json:"total_produced"`
	TotalPlanned  int `json:"total_planned"`
	TotalDefects  int `json:"total_defects"`
	TotalDowntime int `json:"total_downtime"`
	RecordsToday  int `json:"records_today"`
	RecordsTotal  int `json:"records_total"`
}

// Point is one day in an OEE time series.
type Point struct {
	Label string    `json:"label"`
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Status is the classification of an OEE value against fixed thresholds.
type Status struct {
	Label    string `json:"label"`
	Severity string `json:"severity"`
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Compute derives availability, performance, quality and OEE from a single
// production record. Never errors: division by zero resolves to 0, and every
// rate is clamped to [0, 100]. Actual production above plan is legitimate
// input and caps performance at 100 rather than rejecting the record.
func Compute(rec model.ProductionRecord) Metrics {
	availability := float64(ShiftMinutes-rec.DowntimeMinutes) / ShiftMinutes * 100

	performance := 0.0
	if rec.PlannedProduction > 0 {
		performance = float64(rec.ActualProduction) / float64(rec.PlannedProduction) * 100
	}

	quality := 0.0
	if rec.ActualProduction > 0 {
		quality = float64(rec.ActualProduction-rec.DefectiveUnits) / float64(rec.ActualProduction) * 100
	}

	availability = clamp(availability)
	performance = clamp(performance)
	quality = clamp(quality)

	return Metrics{
		Availability: availability,
		Performance:  performance,
		Quality:      quality,
		OEE:          clamp(availability * performance * quality / 10000),
	}
}

// Aggregate computes per-record metrics and averages each rate across the
// set, alongside raw production totals. An empty set yields all zeros.
// The today counter compares record dates against now's calendar day.
func Aggregate(records []model.ProductionRecord, now time.Time) Summary {
	summary := Summary{RecordsTotal: len(records)}
	if len(records) == 0 {
		return summary
	}

	today := now.Format("2006-01-02")
	for _, rec := range records {
		m := Compute(rec)
		summary.Availability += m.Availability
		summary.Performance += m.Performance
		summary.Quality += m.Quality
		summary.OEE += m.OEE

		summary.TotalProduced += rec.ActualProduction
		summary.TotalPlanned += rec.PlannedProduction
		summary.TotalDefects += rec.DefectiveUnits
		summary.TotalDowntime += rec.DowntimeMinutes
		if rec.Date.Format("2006-01-02") == today {
			summary.RecordsToday++
		}
	}

	n := float64(len(records))
	summary.Availability /= n
	summary.Performance /= n
	summary.Quality /= n
	summary.OEE /= n
	return summary
}

// TimeSeries produces one aggregate OEE point per calendar day for the
// trailing window ending at now, oldest first. Days without records carry
// value 0. Labels are weekday short names ("Mon", "Tue", ...).
func TimeSeries(records []model.ProductionRecord, days int, now time.Time) []Point {
	if days <= 0 {
		return nil
	}

	byDay := make(map[string][]model.ProductionRecord)
	for _, rec := range records {
		key := rec.Date.Format("2006-01-02")
		byDay[key] = append(byDay[key], rec)
	}

	points := make([]Point, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		key := day.Format("2006-01-02")

		value := 0.0
		if recs := byDay[key]; len(recs) > 0 {
			value = Aggregate(recs, now).OEE
		}

		points = append(points, Point{
			Label: day.Weekday().String()[:3],
			Date:  day,
			Value: value,
		})
	}
	return points
}

// Classify maps an OEE value onto the dashboard status tiers. Total over all
// real inputs: values outside [0, 100] are clamped before comparison, and
// each boundary belongs to the higher tier (85 is Excellent, 84.999 is Good).
func Classify(value float64) Status {
	v := clamp(value)
	switch {
	case v >= 85:
		return Status{Label: "Excellent", Severity: "success"}
	case v >= 75:
		return Status{Label: "Good", Severity: "info"}
	case v >= 65:
		return Status{Label: "Warning", Severity: "warning"}
	default:
		return Status{Label: "Critical", Severity: "danger"}
	}
}
