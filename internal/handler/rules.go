package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/rules"
)

type RulesHandler struct {
	Catalog *rules.Catalog
}

func (h *RulesHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/rules")
	g.GET("", h.list)
	g.POST("", h.create)
}

// @Summary List trading rules
// @Tags rules
// @Success 200 {object} map[string]any
// @Router /api/v1/rules [get]
func (h *RulesHandler) list(c *gin.Context) {
	if h.Catalog == nil {
		Error(c, http.StatusInternalServerError, "catalog unavailable", nil)
		return
	}
	Ok(c, h.Catalog.List(), nil)
}

type createRuleRequest struct {
	Label string `json:"label"`
}

// @Summary Add a custom trading rule
// @Tags rules
// @Accept json
// @Param rule body createRuleRequest true "rule"
// @Success 200 {object} map[string]any
// @Router /api/v1/rules [post]
func (h *RulesHandler) create(c *gin.Context) {
	if h.Catalog == nil {
		Error(c, http.StatusInternalServerError, "catalog unavailable", nil)
		return
	}
	var req createRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	rule, err := h.Catalog.AddCustom(req.Label)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	Ok(c, rule, nil)
}
