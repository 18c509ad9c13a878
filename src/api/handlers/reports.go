package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"dashboard/src/utils"

	"github.com/go-chi/chi/v5"
)

// GetFundDashboard renders the HTML chart page for one fund.
func (h *Handler) GetFundDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	fund := chi.URLParam(r, "fund")
	if fund == "" {
		h.HandleErrors(w, utils.BadRequest("missing fund URL parameter"))
		return
	}

	page, err := h.Controller.RenderFundDashboard(ctx, fund)
	if err != nil {
		h.Logger.Warning(err)
		h.HandleErrors(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}

// GetFundReportFile downloads a fund report in the requested format, XLSX
// by default or PDF.
func (h *Handler) GetFundReportFile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	fund := chi.URLParam(r, "fund")
	if fund == "" {
		h.HandleErrors(w, utils.BadRequest("missing fund URL parameter"))
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "XLSX"
	}

	switch format {
	case "XLSX":
		xlsxFile, err := h.Controller.GenerateXLSXReport(ctx, fund)
		if err != nil {
			h.Logger.Warning(err)
			h.HandleErrors(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", fund))

		if err = xlsxFile.Write(w); err != nil {
			h.HandleErrors(w, err)
			return
		}
	case "PDF":
		pdfData, err := h.Controller.GeneratePDFReport(ctx, fund)
		if err != nil {
			h.Logger.Warning(err)
			h.HandleErrors(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", fund))
		w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdfData)))

		if _, err = w.Write(pdfData); err != nil {
			h.HandleErrors(w, err)
			return
		}
	default:
		h.HandleErrors(w, utils.UnprocessableEntity(fmt.Sprintf("unsupported report format %q", format)))
	}
}
