package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/identity"
	"tradejournal/internal/service"
)

type ReportsHandler struct {
	Svc *service.ReportService
}

func (h *ReportsHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/reports/export", h.export)
}

// @Summary Export the journal as a report
// @Tags reports
// @Param format query string false "text, json or csv" default(text)
// @Success 200 {string} string
// @Router /api/v1/reports/export [get]
func (h *ReportsHandler) export(c *gin.Context) {
	user, ok := identity.UserFromContext(c.Request.Context())
	if !ok {
		Error(c, http.StatusUnauthorized, "no user in context", nil)
		return
	}
	report, err := h.Svc.Build(c.Request.Context(), user.ID)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if report == nil {
		Error(c, http.StatusInternalServerError, "report unavailable", nil)
		return
	}

	format := strings.ToLower(strings.TrimSpace(c.Query("format")))
	switch format {
	case "", "text":
		c.Header("Content-Disposition", `attachment; filename="journal-report.txt"`)
		c.String(http.StatusOK, report.Text())
	case "json":
		blob, err := report.JSON()
		if err != nil {
			Error(c, http.StatusInternalServerError, err.Error(), nil)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="journal-report.json"`)
		c.Data(http.StatusOK, "application/json", blob)
	case "csv":
		blob, err := report.CSV()
		if err != nil {
			Error(c, http.StatusInternalServerError, err.Error(), nil)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="journal-report.csv"`)
		c.Data(http.StatusOK, "text/csv", blob)
	default:
		Error(c, http.StatusBadRequest, "format must be text, json or csv", nil)
	}
}
