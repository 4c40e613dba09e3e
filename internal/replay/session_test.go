package replay

import (
	"testing"
	"time"
)

func series(prices ...float64) []PricePoint {
	start := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	out := make([]PricePoint, len(prices))
	for i, p := range prices {
		out[i] = PricePoint{Timestamp: start.Add(time.Duration(i) * time.Minute), Price: p}
	}
	return out
}

func TestStepClampsToBounds(t *testing.T) {
	s := NewSession("EURUSD", series(1, 2, 3), nil)

	point, err := s.Step(-10)
	if err != nil || point.Price != 1 {
		t.Fatalf("backward step = %+v, %v", point, err)
	}
	point, err = s.Step(2)
	if err != nil || point.Price != 3 {
		t.Fatalf("forward step = %+v, %v", point, err)
	}
	if _, err = s.Step(1); err != ErrSeriesExhausted {
		t.Fatalf("step past end = %v, want ErrSeriesExhausted", err)
	}
}

func TestOpenCloseLong(t *testing.T) {
	var forwarded []SimulatedTrade
	s := NewSession("EURUSD", series(100, 105, 110), func(trade SimulatedTrade) {
		forwarded = append(forwarded, trade)
	})

	if err := s.Open("long"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Open("short"); err != ErrPositionAlreadyOpen {
		t.Fatalf("second open = %v, want ErrPositionAlreadyOpen", err)
	}
	if _, err := s.Step(2); err != nil {
		t.Fatalf("step: %v", err)
	}
	trade, err := s.Close()
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if trade.EntryPrice != 100 || trade.ExitPrice != 110 || trade.Profit != 10 {
		t.Fatalf("trade = %+v", trade)
	}
	if len(forwarded) != 1 || forwarded[0] != trade {
		t.Fatalf("sink got %+v", forwarded)
	}
	if got := s.Completed(); len(got) != 1 || got[0] != trade {
		t.Fatalf("completed = %+v", got)
	}
}

func TestCloseShortProfitIsInverted(t *testing.T) {
	s := NewSession("EURUSD", series(100, 90), nil)
	if err := s.Open("short"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Step(1); err != nil {
		t.Fatalf("step: %v", err)
	}
	trade, err := s.Close()
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if trade.Profit != 10 {
		t.Fatalf("short profit = %v, want 10", trade.Profit)
	}
}

func TestCloseWithoutPosition(t *testing.T) {
	s := NewSession("EURUSD", series(1, 2), nil)
	if _, err := s.Close(); err != ErrNoOpenPosition {
		t.Fatalf("close = %v, want ErrNoOpenPosition", err)
	}
}

func TestResetKeepsCompletedTrades(t *testing.T) {
	s := NewSession("EURUSD", series(1, 2, 3), nil)
	_ = s.Open("long")
	_, _ = s.Step(1)
	if _, err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	_ = s.Open("long")
	s.Reset()

	if point, ok := s.Current(); !ok || point.Price != 1 {
		t.Fatalf("cursor after reset = %+v", point)
	}
	if _, err := s.Close(); err != ErrNoOpenPosition {
		t.Fatalf("open position survived reset")
	}
	if len(s.Completed()) != 1 {
		t.Fatalf("completed trades lost on reset")
	}
}

func TestGenerateSeriesDeterministic(t *testing.T) {
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	a := GenerateSeries(start, 50, 100, 7)
	b := GenerateSeries(start, 50, 100, 7)
	if len(a) != 50 {
		t.Fatalf("series length = %d, want 50", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
	c := GenerateSeries(start, 50, 100, 8)
	same := true
	for i := range a {
		if a[i].Price != c[i].Price {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("different seeds produced identical series")
	}
}
