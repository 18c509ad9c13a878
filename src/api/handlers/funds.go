package handlers

import (
	"context"
	"net/http"
	"time"

	"dashboard/src/utils"

	"github.com/go-chi/chi/v5"
)

// GetAllFunds lists the fund identifiers available in the loaded dataset.
func (h *Handler) GetAllFunds(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	funds, err := h.Controller.ListFunds(ctx)
	if err != nil {
		h.Logger.Warning(err)
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, funds, http.StatusOK)
}

// GetFundSummary returns the latest KPIs and compliance statuses of a fund.
func (h *Handler) GetFundSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	fund := chi.URLParam(r, "fund")
	if fund == "" {
		h.HandleErrors(w, utils.BadRequest("missing fund URL parameter"))
		return
	}

	summary, err := h.Controller.GetFundSummary(ctx, fund)
	if err != nil {
		h.Logger.Warning(err)
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, summary, http.StatusOK)
}

// GetFundReturns returns the periodic and cumulative subordinated-quota
// return series of a fund.
func (h *Handler) GetFundReturns(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	fund := chi.URLParam(r, "fund")
	if fund == "" {
		h.HandleErrors(w, utils.BadRequest("missing fund URL parameter"))
		return
	}

	points, err := h.Controller.GetReturnSeries(ctx, fund)
	if err != nil {
		h.Logger.Warning(err)
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, points, http.StatusOK)
}

// GetFundDelinquency returns the delinquency ratios of a fund, bucketed by
// overdue range in canonical order.
func (h *Handler) GetFundDelinquency(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	fund := chi.URLParam(r, "fund")
	if fund == "" {
		h.HandleErrors(w, utils.BadRequest("missing fund URL parameter"))
		return
	}

	points, err := h.Controller.GetDelinquencySeries(ctx, fund)
	if err != nil {
		h.Logger.Warning(err)
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, points, http.StatusOK)
}

// GetFundAging returns the receivables aging buckets of a fund.
func (h *Handler) GetFundAging(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	fund := chi.URLParam(r, "fund")
	if fund == "" {
		h.HandleErrors(w, utils.BadRequest("missing fund URL parameter"))
		return
	}

	points, err := h.Controller.GetAgingSeries(ctx, fund)
	if err != nil {
		h.Logger.Warning(err)
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, points, http.StatusOK)
}

// GetFundCovenants returns the covenant records of a deal.
func (h *Handler) GetFundCovenants(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	fund := chi.URLParam(r, "fund")
	if fund == "" {
		h.HandleErrors(w, utils.BadRequest("missing fund URL parameter"))
		return
	}

	records, err := h.Controller.GetCovenants(ctx, fund)
	if err != nil {
		h.Logger.Warning(err)
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, records, http.StatusOK)
}

// GetMacroSeries returns the macroeconomic indicator series.
func (h *Handler) GetMacroSeries(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	points, err := h.Controller.GetMacroSeries(ctx)
	if err != nil {
		h.Logger.Warning(err)
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, points, http.StatusOK)
}

// ClearCache drops the dataset cache so the next request re-reads the
// source files.
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	h.Controller.ClearCache(ctx)
	h.respond(w, r, map[string]string{"status": "cache cleared"}, http.StatusOK)
}
