package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/analytics"
	"tradejournal/internal/identity"
	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

// AnalyticsHandler serves the derived views. It loads the user's trades
// once per request and runs the pure calculators over them; the optional
// filter query parameters narrow the snapshot first.
type AnalyticsHandler struct {
	Repo repository.TradeRepository
}

func (h *AnalyticsHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/analytics")
	g.GET("/dashboard", h.dashboard)
	g.GET("/streaks", h.streaks)
	g.GET("/rrr", h.rrr)
	g.GET("/violations", h.violations)
	g.GET("/monthly", h.monthly)
	g.GET("/symbols", h.symbols)

	r.GET("/api/v1/calendar", h.calendar)
}

func (h *AnalyticsHandler) loadTrades(c *gin.Context) ([]models.Trade, bool) {
	user, ok := identity.UserFromContext(c.Request.Context())
	if !ok {
		Error(c, http.StatusUnauthorized, "no user in context", nil)
		return nil, false
	}
	trades, err := h.Repo.ListTrades(c.Request.Context(), repository.ListTradesParams{
		UserID:  user.ID,
		Limit:   500,
		OrderBy: "date",
		Asc:     boolPtr(false),
	})
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return nil, false
	}
	if opts := filterFromQuery(c); !opts.IsZero() {
		trades = analytics.ApplyFilter(trades, opts)
	}
	return trades, true
}

// @Summary Dashboard statistics
// @Tags analytics
// @Success 200 {object} map[string]any
// @Router /api/v1/analytics/dashboard [get]
func (h *AnalyticsHandler) dashboard(c *gin.Context) {
	trades, ok := h.loadTrades(c)
	if !ok {
		return
	}
	Ok(c, analytics.ComputeDashboardStats(trades), nil)
}

// @Summary Win/loss streaks and tilt state
// @Tags analytics
// @Success 200 {object} map[string]any
// @Router /api/v1/analytics/streaks [get]
func (h *AnalyticsHandler) streaks(c *gin.Context) {
	trades, ok := h.loadTrades(c)
	if !ok {
		return
	}
	Ok(c, analytics.ComputeStreaks(trades), nil)
}

// @Summary Risk-reward statistics
// @Tags analytics
// @Success 200 {object} map[string]any
// @Router /api/v1/analytics/rrr [get]
func (h *AnalyticsHandler) rrr(c *gin.Context) {
	trades, ok := h.loadTrades(c)
	if !ok {
		return
	}
	Ok(c, analytics.ComputeRRRStats(trades), nil)
}

// @Summary Rule violation statistics
// @Tags analytics
// @Success 200 {object} map[string]any
// @Router /api/v1/analytics/violations [get]
func (h *AnalyticsHandler) violations(c *gin.Context) {
	trades, ok := h.loadTrades(c)
	if !ok {
		return
	}
	Ok(c, analytics.ComputeViolationStats(trades), nil)
}

// @Summary Monthly profit series
// @Tags analytics
// @Success 200 {object} map[string]any
// @Router /api/v1/analytics/monthly [get]
func (h *AnalyticsHandler) monthly(c *gin.Context) {
	trades, ok := h.loadTrades(c)
	if !ok {
		return
	}
	Ok(c, analytics.MonthlyPerformance(trades), nil)
}

// @Summary Per-symbol profit breakdown
// @Tags analytics
// @Success 200 {object} map[string]any
// @Router /api/v1/analytics/symbols [get]
func (h *AnalyticsHandler) symbols(c *gin.Context) {
	trades, ok := h.loadTrades(c)
	if !ok {
		return
	}
	Ok(c, analytics.SymbolPerformance(trades), nil)
}

// @Summary Trading calendar for one month
// @Tags analytics
// @Param year query int true "year"
// @Param month query int true "month 1-12"
// @Success 200 {object} map[string]any
// @Router /api/v1/calendar [get]
func (h *AnalyticsHandler) calendar(c *gin.Context) {
	now := time.Now().UTC()
	year := intQuery(c, "year", now.Year())
	month := intQuery(c, "month", int(now.Month()))
	if month < 1 || month > 12 {
		Error(c, http.StatusBadRequest, "month must be 1-12", nil)
		return
	}
	trades, ok := h.loadTrades(c)
	if !ok {
		return
	}
	days := analytics.CalendarMonth(trades, year, time.Month(month))
	Ok(c, days, map[string]any{"year": year, "month": month})
}
