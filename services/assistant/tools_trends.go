package assistant

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/generative-ai-go/genai"
)

// Occupancy warning thresholds. A week with fewer than warningThreshold
// overlapping bookings is flagged; below severeThreshold the severity is
// raised to high. Fixed constants, not a trained model.
const (
	warningThreshold = 5
	severeThreshold  = 2
)

func (t *Toolset) trendTools() []Tool {
	return []Tool{
		{
			Declaration: &genai.FunctionDeclaration{
				Name:        "get_occupancy_trends",
				Description: "Check-ins and check-outs per day over a date range.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"startDate": {Type: genai.TypeString, Description: "Start date, YYYY-MM-DD"},
						"endDate":   {Type: genai.TypeString, Description: "End date (exclusive), YYYY-MM-DD"},
					},
					Required: []string{"startDate", "endDate"},
				},
			},
			Run: t.getOccupancyTrends,
		},
		{
			Declaration: &genai.FunctionDeclaration{
				Name:        "get_revenue_forecast",
				Description: "Revenue forecast for a target month from on-the-books revenue and the same month last year.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"month": {Type: genai.TypeString, Description: "Target month, YYYY-MM"},
					},
					Required: []string{"month"},
				},
			},
			Run: t.getRevenueForecast,
		},
		{
			Declaration: &genai.FunctionDeclaration{
				Name:        "get_occupancy_warnings",
				Description: "Warnings for upcoming weeks with low booking coverage.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"weeksAhead": {Type: genai.TypeInteger, Description: "How many weeks to look ahead, default 4"},
					},
				},
			},
			Run: t.getOccupancyWarnings,
		},
	}
}

// getOccupancyTrends merges two independent per-day aggregations. A day
// present in only one source still appears, with the missing side zero.
func (t *Toolset) getOccupancyTrends(ctx context.Context, args map[string]any) (map[string]any, error) {
	from, err := requireDate(args, "startDate")
	if err != nil {
		return nil, err
	}
	to, err := requireDate(args, "endDate")
	if err != nil {
		return nil, err
	}
	to = to.AddDate(0, 0, 1)

	checkIns, err := t.bookings.CheckInsPerDay(ctx, from, to)
	if err != nil {
		return nil, err
	}
	checkOuts, err := t.bookings.CheckOutsPerDay(ctx, from, to)
	if err != nil {
		return nil, err
	}

	type day struct {
		in  int
		out int
	}
	merged := map[string]*day{}
	for _, row := range checkIns {
		merged[row.Date] = &day{in: row.Count}
	}
	for _, row := range checkOuts {
		if d, ok := merged[row.Date]; ok {
			d.out = row.Count
		} else {
			merged[row.Date] = &day{out: row.Count}
		}
	}

	dates := make([]string, 0, len(merged))
	for date := range merged {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	days := make([]map[string]any, 0, len(dates))
	for _, date := range dates {
		days = append(days, map[string]any{
			"date":      date,
			"checkIns":  merged[date].in,
			"checkOuts": merged[date].out,
		})
	}
	return map[string]any{
		"startDate": argString(args, "startDate", ""),
		"endDate":   argString(args, "endDate", ""),
		"days":      days,
	}, nil
}

func nowMidnight(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (t *Toolset) getOccupancyWarnings(ctx context.Context, args map[string]any) (map[string]any, error) {
	weeks := argInt(args, "weeksAhead", 4)
	if weeks <= 0 || weeks > 12 {
		weeks = 4
	}

	now := t.now()
	today := nowMidnight(now)

	var warnings []map[string]any
	for i := 0; i < weeks; i++ {
		weekStart := today.AddDate(0, 0, 7*i)
		weekEnd := weekStart.AddDate(0, 0, 7)

		count, err := t.bookings.CountOverlapping(ctx, weekStart, weekEnd)
		if err != nil {
			return nil, err
		}
		if count >= warningThreshold {
			continue
		}

		severity := "medium"
		recommendation := "Occupancy below target. Review pricing and channel visibility for this week."
		if count < severeThreshold {
			severity = "high"
			recommendation = "Very low occupancy. Consider a flash promotion or rate adjustment for this week."
		}
		warnings = append(warnings, map[string]any{
			"week":           i + 1,
			"weekStart":      weekStart.Format("2006-01-02"),
			"weekEnd":        weekEnd.Format("2006-01-02"),
			"bookings":       count,
			"severity":       severity,
			"recommendation": recommendation,
		})
	}

	result := map[string]any{
		"weeksAhead": weeks,
		"warnings":   warnings,
	}
	if len(warnings) == 0 {
		result["message"] = fmt.Sprintf("Occupancy looks healthy for the next %d weeks.", weeks)
	}
	return result, nil
}
