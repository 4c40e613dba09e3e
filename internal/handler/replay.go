package handler

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"tradejournal/internal/replay"
)

// ReplayHandler runs the practice simulator over a websocket. Each
// connection owns one session; completed simulated trades go to the
// injected sink.
type ReplayHandler struct {
	Logger *zap.Logger
	Sink   replay.TradeSink

	// SeriesPoints and BasePrice shape the generated practice series.
	SeriesPoints int
	BasePrice    float64
}

func (h *ReplayHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/replay/ws", h.serve)
}

type replayCommand struct {
	Action    string `json:"action"`
	Symbol    string `json:"symbol"`
	Steps     int    `json:"steps"`
	Direction string `json:"direction"`
	Seed      int64  `json:"seed"`
}

type replayEvent struct {
	Type   string                  `json:"type"`
	Point  *replay.PricePoint      `json:"point,omitempty"`
	Trade  *replay.SimulatedTrade  `json:"trade,omitempty"`
	Trades []replay.SimulatedTrade `json:"trades,omitempty"`
	Error  string                  `json:"error,omitempty"`
}

// @Summary Chart replay websocket
// @Tags replay
// @Router /api/v1/replay/ws [get]
func (h *ReplayHandler) serve(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, nil)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("replay ws accept failed", zap.Error(err))
		}
		return
	}
	defer func() { _ = conn.Close(websocket.StatusInternalError, "closing") }()

	ctx := c.Request.Context()
	var session *replay.Session

	for {
		_, raw, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var cmd replayCommand
		if err := json.Unmarshal(raw, &cmd); err != nil {
			h.send(ctx, conn, replayEvent{Type: "error", Error: "invalid command"})
			continue
		}

		switch strings.ToLower(strings.TrimSpace(cmd.Action)) {
		case "start":
			symbol := strings.ToUpper(strings.TrimSpace(cmd.Symbol))
			if symbol == "" {
				symbol = "EURUSD"
			}
			points := h.SeriesPoints
			if points <= 0 {
				points = 500
			}
			base := h.BasePrice
			if base <= 0 {
				base = 100
			}
			seed := cmd.Seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			series := replay.GenerateSeries(time.Now().UTC().Add(-time.Duration(points)*time.Minute), points, base, seed)
			session = replay.NewSession(symbol, series, h.Sink)
			point, _ := session.Current()
			h.send(ctx, conn, replayEvent{Type: "started", Point: &point})
		case "step":
			if session == nil {
				h.send(ctx, conn, replayEvent{Type: "error", Error: "no active session"})
				continue
			}
			steps := cmd.Steps
			if steps == 0 {
				steps = 1
			}
			point, err := session.Step(steps)
			if err == replay.ErrSeriesExhausted {
				h.send(ctx, conn, replayEvent{Type: "end", Point: &point})
				continue
			}
			h.send(ctx, conn, replayEvent{Type: "point", Point: &point})
		case "open":
			if session == nil {
				h.send(ctx, conn, replayEvent{Type: "error", Error: "no active session"})
				continue
			}
			direction := strings.ToLower(strings.TrimSpace(cmd.Direction))
			if direction != "long" && direction != "short" {
				h.send(ctx, conn, replayEvent{Type: "error", Error: "direction must be long or short"})
				continue
			}
			if err := session.Open(direction); err != nil {
				h.send(ctx, conn, replayEvent{Type: "error", Error: err.Error()})
				continue
			}
			point, _ := session.Current()
			h.send(ctx, conn, replayEvent{Type: "opened", Point: &point})
		case "close":
			if session == nil {
				h.send(ctx, conn, replayEvent{Type: "error", Error: "no active session"})
				continue
			}
			trade, err := session.Close()
			if err != nil {
				h.send(ctx, conn, replayEvent{Type: "error", Error: err.Error()})
				continue
			}
			h.send(ctx, conn, replayEvent{Type: "trade", Trade: &trade})
		case "reset":
			if session == nil {
				h.send(ctx, conn, replayEvent{Type: "error", Error: "no active session"})
				continue
			}
			session.Reset()
			point, _ := session.Current()
			h.send(ctx, conn, replayEvent{Type: "point", Point: &point})
		case "stop":
			var trades []replay.SimulatedTrade
			if session != nil {
				trades = session.Completed()
			}
			h.send(ctx, conn, replayEvent{Type: "stopped", Trades: trades})
			_ = conn.Close(websocket.StatusNormalClosure, "stopped")
			return
		default:
			h.send(ctx, conn, replayEvent{Type: "error", Error: "unknown action"})
		}
	}
}

func (h *ReplayHandler) send(ctx context.Context, conn *websocket.Conn, event replayEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.Write(writeCtx, websocket.MessageText, payload); err != nil && h.Logger != nil {
		h.Logger.Debug("replay ws write failed", zap.Error(err))
	}
}
