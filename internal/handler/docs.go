package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterDocs(r *gin.Engine) {
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/markdown; charset=utf-8")
		c.String(http.StatusOK, `# Trading Journal Service

A personal trading journal API: trade CRUD, derived analytics, calendar
aggregation, rule catalog, report export, and a chart replay simulator.

## Auth

All /api/* routes except login and signup require a Bearer token issued by
the identity provider. Health endpoints are public.

## Notable Routes

- GET  /healthz
- GET  /readyz
- GET  /swagger/index.html
- POST /api/v1/auth/login
- POST /api/v1/auth/signup
- GET  /api/v1/trades
- POST /api/v1/trades
- GET  /api/v1/analytics/dashboard
- GET  /api/v1/analytics/streaks
- GET  /api/v1/analytics/rrr
- GET  /api/v1/analytics/violations
- GET  /api/v1/analytics/monthly
- GET  /api/v1/analytics/symbols
- GET  /api/v1/calendar?year=&month=
- GET  /api/v1/rules
- POST /api/v1/rules
- GET  /api/v1/reports/export?format=text|json|csv
- GET  /api/v1/replay/ws (websocket)
`)
	})
}
