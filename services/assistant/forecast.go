package assistant

import (
	"context"
	"fmt"
	"time"

	bookingRepo "harborview/database/repository/booking"
	"harborview/models"
)

// RevenueForecaster projects revenue for a target month. Isolated behind an
// interface so the rule-based projection can later be replaced by a
// data-driven model without touching the dispatch layer.
type RevenueForecaster interface {
	Forecast(ctx context.Context, month time.Time) (*models.RevenueForecast, error)
}

// historicalForecaster compares on-the-books revenue for the target month
// against the same month one year prior.
//
// Rules: with prior-year revenue R > 0 the forecast is max(OTB, 1.1*R) at
// high confidence; without prior-year data it falls back to 2*OTB at medium
// confidence.
type historicalForecaster struct {
	bookings bookingRepo.BookingRepository
}

func (f *historicalForecaster) Forecast(ctx context.Context, month time.Time) (*models.RevenueForecast, error) {
	monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	priorStart := monthStart.AddDate(-1, 0, 0)
	priorEnd := priorStart.AddDate(0, 1, 0)

	otb, err := f.bookings.OnTheBooksRevenue(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	prior, err := f.bookings.OnTheBooksRevenue(ctx, priorStart, priorEnd)
	if err != nil {
		return nil, err
	}

	fc := &models.RevenueForecast{
		Month:      monthStart.Format("2006-01"),
		OnTheBooks: otb,
		PriorYear:  prior,
	}
	if prior > 0 {
		fc.Forecast = otb
		if grown := prior * 1.10; grown > fc.Forecast {
			fc.Forecast = grown
		}
		fc.Confidence = "high"
	} else {
		fc.Forecast = otb * 2
		fc.Confidence = "medium"
	}

	if otb > prior*0.5 {
		fc.Insight = "Pacing ahead of last year for this month."
	} else {
		fc.Insight = "Booking pace is behind last year. Consider a promotion for this month."
	}
	return fc, nil
}

func (t *Toolset) getRevenueForecast(ctx context.Context, args map[string]any) (map[string]any, error) {
	raw, err := requireString(args, "month")
	if err != nil {
		return nil, err
	}
	month, err := time.Parse("2006-01", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid month: %s (expected YYYY-MM)", raw)
	}

	fc, err := t.forecaster.Forecast(ctx, month)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"month":      fc.Month,
		"onTheBooks": fc.OnTheBooks,
		"priorYear":  fc.PriorYear,
		"forecast":   fc.Forecast,
		"confidence": fc.Confidence,
		"insight":    fc.Insight,
	}, nil
}
