package service

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mmynk/settleup/internal/export"
)

// ExportPath is where ExportExpenses is mounted.
const ExportPath = "/api/expenses/export"

const maxExportBody = 1 << 20

// ExportExpenses answers a POSTed {"expenses": [...]} body with the expenses
// as a CSV attachment.
func (s *SettlementService) ExportExpenses(w http.ResponseWriter, r *http.Request) {
	var req ComputeBalancesRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxExportBody))
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		http.Error(w, describeValidation(err).Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.csv"`)
	if err := export.WriteCSV(w, req.Expenses); err != nil {
		slog.Error("Failed to write CSV export", "error", err)
		return
	}
	slog.Debug("Expenses exported", "count", len(req.Expenses))
}
