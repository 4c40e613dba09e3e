package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradejournal/internal/identity"
	"tradejournal/internal/models"
	"tradejournal/internal/service"
)

type TradeHandler struct {
	Svc *service.TradeService
}

func (h *TradeHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/trades")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

// @Summary List trades
// @Tags trades
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Param symbol query string false "filter by symbol"
// @Param direction query string false "long or short"
// @Success 200 {object} map[string]any
// @Router /api/v1/trades [get]
func (h *TradeHandler) list(c *gin.Context) {
	user, ok := identity.UserFromContext(c.Request.Context())
	if !ok {
		Error(c, http.StatusUnauthorized, "no user in context", nil)
		return
	}
	params := listParamsFromQuery(c, user.ID)
	items, total, err := h.Svc.List(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(params.Limit, params.Offset, total))
}

// @Summary Create a trade
// @Tags trades
// @Accept json
// @Param trade body models.Trade true "trade"
// @Success 200 {object} map[string]any
// @Router /api/v1/trades [post]
func (h *TradeHandler) create(c *gin.Context) {
	user, ok := identity.UserFromContext(c.Request.Context())
	if !ok {
		Error(c, http.StatusUnauthorized, "no user in context", nil)
		return
	}
	var item models.Trade
	if err := c.ShouldBindJSON(&item); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	if err := h.Svc.Create(c.Request.Context(), user.ID, &item); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

// @Summary Get a trade
// @Tags trades
// @Param id path int true "trade id"
// @Success 200 {object} map[string]any
// @Router /api/v1/trades/{id} [get]
func (h *TradeHandler) get(c *gin.Context) {
	user, ok := identity.UserFromContext(c.Request.Context())
	if !ok {
		Error(c, http.StatusUnauthorized, "no user in context", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Svc.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "trade not found", nil)
		return
	}
	Ok(c, item, nil)
}

// @Summary Update a trade
// @Tags trades
// @Accept json
// @Param id path int true "trade id"
// @Param trade body models.Trade true "trade"
// @Success 200 {object} map[string]any
// @Router /api/v1/trades/{id} [put]
func (h *TradeHandler) update(c *gin.Context) {
	user, ok := identity.UserFromContext(c.Request.Context())
	if !ok {
		Error(c, http.StatusUnauthorized, "no user in context", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	var item models.Trade
	if err := c.ShouldBindJSON(&item); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	updated, err := h.Svc.Update(c.Request.Context(), user.ID, id, &item)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if updated == nil {
		Error(c, http.StatusNotFound, "trade not found", nil)
		return
	}
	Ok(c, updated, nil)
}

// @Summary Delete a trade
// @Tags trades
// @Param id path int true "trade id"
// @Success 200 {object} map[string]any
// @Router /api/v1/trades/{id} [delete]
func (h *TradeHandler) remove(c *gin.Context) {
	user, ok := identity.UserFromContext(c.Request.Context())
	if !ok {
		Error(c, http.StatusUnauthorized, "no user in context", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	deleted, err := h.Svc.Delete(c.Request.Context(), user.ID, id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if !deleted {
		Error(c, http.StatusNotFound, "trade not found", nil)
		return
	}
	Ok(c, gin.H{"deleted": true}, nil)
}
