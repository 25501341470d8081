package reports

import (
	"context"
	"fmt"
	"time"

	bookingRepo "harborview/database/repository/booking"
	"harborview/models"

	"go.uber.org/zap"
)

// ReportService builds out-of-band reports requested through the assistant's
// schedule_report tool.
type ReportService interface {
	Generate(ctx context.Context, payload models.ReportPayload) (map[string]any, error)
}

// DefaultReportService computes reports from the booking repository.
type DefaultReportService struct {
	Bookings bookingRepo.BookingRepository
	Logger   *zap.Logger
}

// Generate produces the requested report sections for the payload's window.
func (s *DefaultReportService) Generate(ctx context.Context, payload models.ReportPayload) (map[string]any, error) {
	from, err := time.Parse("2006-01-02", payload.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", payload.StartDate, err)
	}
	to, err := time.Parse("2006-01-02", payload.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", payload.EndDate, err)
	}
	to = to.AddDate(0, 0, 1)

	out := map[string]any{}
	switch payload.ReportType {
	case "revenue":
		if err := s.addRevenueSection(ctx, out, from, to); err != nil {
			return nil, err
		}
	case "occupancy":
		if err := s.addOccupancySection(ctx, out, from, to); err != nil {
			return nil, err
		}
	case "summary":
		if err := s.addRevenueSection(ctx, out, from, to); err != nil {
			return nil, err
		}
		if err := s.addOccupancySection(ctx, out, from, to); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown report type: %s", payload.ReportType)
	}

	s.Logger.Info("report generated",
		zap.String("type", payload.ReportType),
		zap.String("recipient", payload.UserEmail),
		zap.String("from", payload.StartDate),
		zap.String("to", payload.EndDate))
	return out, nil
}

func (s *DefaultReportService) addRevenueSection(ctx context.Context, out map[string]any, from, to time.Time) error {
	total, err := s.Bookings.PaidRevenueBetween(ctx, from, to)
	if err != nil {
		return err
	}
	rooms, err := s.Bookings.PaidRevenueByRoom(ctx, from, to)
	if err != nil {
		return err
	}
	out["revenue"] = map[string]any{"total": total, "byRoom": rooms}
	return nil
}

func (s *DefaultReportService) addOccupancySection(ctx context.Context, out map[string]any, from, to time.Time) error {
	checkIns, err := s.Bookings.CheckInsPerDay(ctx, from, to)
	if err != nil {
		return err
	}
	checkOuts, err := s.Bookings.CheckOutsPerDay(ctx, from, to)
	if err != nil {
		return err
	}
	out["occupancy"] = map[string]any{"checkIns": checkIns, "checkOuts": checkOuts}
	return nil
}
