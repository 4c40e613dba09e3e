package replay

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// PricePoint is one tick of the replayed series.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}

// SimulatedTrade is a completed practice trade. Profit is the raw signed
// price difference; the simulator is deliberately simpler than the journal
// calculator.
type SimulatedTrade struct {
	Timestamp  time.Time `json:"timestamp"`
	Symbol     string    `json:"symbol"`
	Direction  string    `json:"direction"`
	EntryPrice float64   `json:"entry_price"`
	ExitPrice  float64   `json:"exit_price"`
	Profit     float64   `json:"profit"`
}

// TradeSink observes completed simulated trades. Wired in by the caller;
// there is no ambient forwarding.
type TradeSink func(SimulatedTrade)

var (
	ErrNoOpenPosition      = errors.New("replay: no open position")
	ErrPositionAlreadyOpen = errors.New("replay: position already open")
	ErrSeriesExhausted     = errors.New("replay: end of series")
)

type openPosition struct {
	direction string
	entry     float64
	openedAt  time.Time
}

// Session steps through a price series and records simulated entries and
// exits. Safe for concurrent use; each websocket connection owns one.
type Session struct {
	mu        sync.Mutex
	symbol    string
	series    []PricePoint
	cursor    int
	open      *openPosition
	completed []SimulatedTrade
	sink      TradeSink
}

func NewSession(symbol string, series []PricePoint, sink TradeSink) *Session {
	return &Session{symbol: symbol, series: series, sink: sink}
}

// Current returns the point under the cursor.
func (s *Session) Current() (PricePoint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.series) == 0 {
		return PricePoint{}, false
	}
	return s.series[s.cursor], true
}

// Step moves the cursor by n points, clamped to the series bounds.
// Advancing past the last point returns ErrSeriesExhausted.
func (s *Session) Step(n int) (PricePoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.series) == 0 {
		return PricePoint{}, ErrSeriesExhausted
	}
	next := s.cursor + n
	if next < 0 {
		next = 0
	}
	if next >= len(s.series) {
		s.cursor = len(s.series) - 1
		return s.series[s.cursor], ErrSeriesExhausted
	}
	s.cursor = next
	return s.series[s.cursor], nil
}

// Open enters a position at the current price. Only one position can be
// open at a time.
func (s *Session) Open(direction string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.series) == 0 {
		return ErrSeriesExhausted
	}
	if s.open != nil {
		return ErrPositionAlreadyOpen
	}
	point := s.series[s.cursor]
	s.open = &openPosition{direction: direction, entry: point.Price, openedAt: point.Timestamp}
	return nil
}

// Close exits the open position at the current price, records the trade,
// and forwards it to the sink.
func (s *Session) Close() (SimulatedTrade, error) {
	s.mu.Lock()
	if s.open == nil {
		s.mu.Unlock()
		return SimulatedTrade{}, ErrNoOpenPosition
	}
	point := s.series[s.cursor]
	profit := point.Price - s.open.entry
	if s.open.direction == "short" {
		profit = s.open.entry - point.Price
	}
	trade := SimulatedTrade{
		Timestamp:  s.open.openedAt,
		Symbol:     s.symbol,
		Direction:  s.open.direction,
		EntryPrice: s.open.entry,
		ExitPrice:  point.Price,
		Profit:     profit,
	}
	s.open = nil
	s.completed = append(s.completed, trade)
	sink := s.sink
	s.mu.Unlock()

	if sink != nil {
		sink(trade)
	}
	return trade, nil
}

// Reset rewinds the cursor and abandons any open position. Completed
// trades are kept.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = 0
	s.open = nil
}

// Completed returns the trades closed so far, oldest first.
func (s *Session) Completed() []SimulatedTrade {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SimulatedTrade, len(s.completed))
	copy(out, s.completed)
	return out
}

// GenerateSeries produces a deterministic random-walk price series for
// practice sessions. The same seed always yields the same series.
func GenerateSeries(start time.Time, points int, basePrice float64, seed int64) []PricePoint {
	if points <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))
	series := make([]PricePoint, points)
	price := basePrice
	for i := range series {
		series[i] = PricePoint{
			Timestamp: start.Add(time.Duration(i) * time.Minute),
			Price:     price,
		}
		price += (rng.Float64() - 0.5) * basePrice * 0.002
	}
	return series
}
