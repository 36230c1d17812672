package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/xuri/excelize/v2"

	"github.com/nvillegase/solenium-construct-flow-sub000/config"
	"github.com/nvillegase/solenium-construct-flow-sub000/models"
)

// ExportSupervisionBoard downloads the cross-project status board as an
// Excel workbook, one row per active project.
func ExportSupervisionBoard(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	summaries, err := buildProjectSummaries(now)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	f := excelize.NewFile()
	sheet := "Supervision"
	index, err := f.NewSheet(sheet)
	if err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	f.SetActiveSheet(index)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	f.SetCellValue(sheet, "A1", "Project supervision board")
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	f.SetRowHeight(sheet, 1, 30)
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Generated: %s", now.Format("2006-01-02 15:04:05")))

	headers := []string{"Code", "Name", "Status", "Progress %", "Projected %", "Deviation", "Overdue activities", "Late orders"}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for rowIdx, s := range summaries {
		values := []interface{}{
			s.Code, s.Name, s.Status, s.Progress, s.ProjectedProgress,
			s.Deviation, len(s.OverdueActivities), len(s.LateOrders),
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+5)
			f.SetCellValue(sheet, cell, v)
		}
	}
	f.DeleteSheet("Sheet1")

	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to write Excel file", http.StatusInternalServerError)
		return
	}
	filename := fmt.Sprintf("supervision_%s.xlsx", now.Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

// ExportMaterialLedger downloads a material's full reception/delivery
// history as CSV, one chronological row per event.
func ExportMaterialLedger(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid material id", http.StatusBadRequest)
		return
	}
	var material models.Material
	if err := config.DB.First(&material, "id = ?", id).Error; err != nil {
		http.Error(w, "material not found", http.StatusNotFound)
		return
	}
	receptions, deliveries, err := newLedger().MaterialHistory(id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Write([]string{"type", "date", "quantity", "quality_status", "recipient", "observation", "recorded_by"})

	// Merge the two streams by date, receptions first on ties so balances
	// never dip below zero when replaying the file.
	ri, di := 0, 0
	for ri < len(receptions) || di < len(deliveries) {
		takeReception := di >= len(deliveries) ||
			(ri < len(receptions) && !receptions[ri].Date.After(deliveries[di].Date))
		if takeReception {
			ev := receptions[ri]
			writer.Write([]string{
				"reception",
				ev.Date.Format("2006-01-02"),
				ev.Quantity.String(),
				string(ev.Status),
				"",
				ev.Observation,
				ev.RecordedBy,
			})
			ri++
		} else {
			ev := deliveries[di]
			kind := "delivery"
			if ev.Relocation != nil {
				kind = "relocation"
			}
			writer.Write([]string{
				kind,
				ev.Date.Format("2006-01-02"),
				ev.Quantity.String(),
				"",
				ev.Recipient,
				"",
				ev.RecordedBy,
			})
			di++
		}
	}
	writer.Write([]string{})
	writer.Write([]string{"available", material.AvailableQuantity().String()})
	writer.Flush()
	if err := writer.Error(); err != nil {
		http.Error(w, "failed to generate CSV file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("material_%s_%s.csv", material.Name, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
