package reportshandler

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"

	"epms/internal/domain/reports"
	"epms/internal/transport/http/api"
	"epms/internal/transport/http/middleware"
	"epms/internal/validate"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports/monthly/{month}", func(r chi.Router) {
		r.Get("/", h.handleMonthlyReport)
		r.Get("/export/csv", h.handleExportCSV)
		r.Get("/export/pdf", h.handleExportPDF)
	})
}

func (h *Handler) monthlyReport(w http.ResponseWriter, r *http.Request) (reports.MonthlyReport, bool) {
	requestID := middleware.GetRequestID(r.Context())

	month := chi.URLParam(r, "month")
	if !validate.Month(month) {
		api.Fail(w, http.StatusBadRequest, "invalid_month", "month must be in YYYY-MM format", requestID)
		return reports.MonthlyReport{}, false
	}

	report, err := h.Service.MonthlyReport(r.Context(), month)
	if err != nil {
		slog.Error("monthly report build failed", "err", err, "month", month, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "database_error", "database error", requestID)
		return reports.MonthlyReport{}, false
	}
	if report.Rows == nil {
		report.Rows = []reports.Row{}
	}
	return report, true
}

// handleMonthlyReport returns the rows plus totals. A month with no
// records is an empty report, not an error.
func (h *Handler) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	report, ok := h.monthlyReport(w, r)
	if !ok {
		return
	}
	api.Success(w, report, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	report, ok := h.monthlyReport(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payroll-%s.csv", report.Month))
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"department", "last_name", "first_name", "position", "gross_salary", "total_deduction", "net_salary"}); err != nil {
		slog.Warn("csv header write failed", "err", err)
	}
	for _, row := range report.Rows {
		record := []string{
			row.DepartmentName, row.LastName, row.FirstName, row.Position,
			row.GrossSalary.StringFixed(2), row.TotalDeduction.StringFixed(2), row.NetSalary.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			slog.Warn("csv row write failed", "err", err)
		}
	}
	totals := []string{
		"TOTAL", "", "", "",
		report.Totals.GrossSalary.StringFixed(2),
		report.Totals.TotalDeduction.StringFixed(2),
		report.Totals.NetSalary.StringFixed(2),
	}
	if err := writer.Write(totals); err != nil {
		slog.Warn("csv totals write failed", "err", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		slog.Warn("csv flush failed", "err", err)
	}
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	report, ok := h.monthlyReport(w, r)
	if !ok {
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Payroll Report %s", report.Month))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 10)
	headers := []string{"Department", "Employee", "Position", "Gross", "Deduction", "Net"}
	widths := []float64{32, 42, 34, 27, 27, 27}
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range report.Rows {
		cells := []string{
			row.DepartmentName,
			fmt.Sprintf("%s, %s", row.LastName, row.FirstName),
			row.Position,
			row.GrossSalary.StringFixed(2),
			row.TotalDeduction.StringFixed(2),
			row.NetSalary.StringFixed(2),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 10)
	totals := []string{
		"TOTAL", "", "",
		report.Totals.GrossSalary.StringFixed(2),
		report.Totals.TotalDeduction.StringFixed(2),
		report.Totals.NetSalary.StringFixed(2),
	}
	for i, cell := range totals {
		pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payroll-%s.pdf", report.Month))
	if err := pdf.Output(w); err != nil {
		slog.Warn("pdf write failed", "err", err)
	}
}
