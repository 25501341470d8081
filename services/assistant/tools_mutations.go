package assistant

import (
	"context"
	"errors"
	"fmt"

	"harborview/cron"
	"harborview/models"

	"github.com/google/generative-ai-go/genai"
	"go.mongodb.org/mongo-driver/mongo"
)

// stayAliases maps human-friendly stay status names to canonical stored
// values. The model often produces the hyphenated form.
var stayAliases = map[string]string{
	"checked-in":  models.BookingStatusCheckedIn,
	"checked_in":  models.BookingStatusCheckedIn,
	"checked-out": models.BookingStatusCheckedOut,
	"checked_out": models.BookingStatusCheckedOut,
}

func (t *Toolset) mutationTools() []Tool {
	noteSchema := &genai.Schema{
		Type:        genai.TypeString,
		Description: "Optional audit note appended to the booking's special requests",
	}
	idSchema := &genai.Schema{
		Type:        genai.TypeString,
		Description: "Booking ID or payment reference",
	}

	return []Tool{
		{
			Declaration: &genai.FunctionDeclaration{
				Name:        "update_booking_status",
				Description: "Set a booking's reservation status (pending, confirmed, checked_in, checked_out, cancelled).",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"bookingId": idSchema,
						"status": {
							Type: genai.TypeString,
							Enum: []string{
								models.BookingStatusPending,
								models.BookingStatusConfirmed,
								models.BookingStatusCheckedIn,
								models.BookingStatusCheckedOut,
								models.BookingStatusCancelled,
							},
						},
						"note": noteSchema,
					},
					Required: []string{"bookingId", "status"},
				},
			},
			Run: t.updateBookingStatus,
		},
		{
			Declaration: &genai.FunctionDeclaration{
				Name:        "update_payment_status",
				Description: "Set a booking's payment status (pending, paid, failed, refunded). Never touches the reservation status.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"bookingId": idSchema,
						"status": {
							Type: genai.TypeString,
							Enum: []string{
								models.PaymentStatusPending,
								models.PaymentStatusPaid,
								models.PaymentStatusFailed,
								models.PaymentStatusRefunded,
							},
						},
						"note": noteSchema,
					},
					Required: []string{"bookingId", "status"},
				},
			},
			Run: t.updatePaymentStatus,
		},
		{
			Declaration: &genai.FunctionDeclaration{
				Name:        "update_stay_status",
				Description: "Check a guest in or out. Accepts checked-in or checked-out.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"bookingId": idSchema,
						"status": {
							Type: genai.TypeString,
							Enum: []string{"checked-in", "checked-out"},
						},
						"note": noteSchema,
					},
					Required: []string{"bookingId", "status"},
				},
			},
			Run: t.updateStayStatus,
		},
		{
			Declaration: &genai.FunctionDeclaration{
				Name:        "schedule_report",
				Description: "Schedule a report for background generation and email delivery. Returns immediately.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"reportType": {
							Type:        genai.TypeString,
							Description: "Report type",
							Enum:        []string{"revenue", "occupancy", "summary"},
						},
						"startDate": {Type: genai.TypeString, Description: "Start date, YYYY-MM-DD"},
						"endDate":   {Type: genai.TypeString, Description: "End date, YYYY-MM-DD"},
						"userEmail": {Type: genai.TypeString, Description: "Recipient email"},
					},
					Required: []string{"reportType", "startDate", "endDate", "userEmail"},
				},
			},
			Run: t.scheduleReport,
		},
	}
}

func (t *Toolset) updateBookingStatus(ctx context.Context, args map[string]any) (map[string]any, error) {
	return t.applyStatusUpdate(ctx, args, "booking", t.bookings.UpdateBookingStatus)
}

func (t *Toolset) updatePaymentStatus(ctx context.Context, args map[string]any) (map[string]any, error) {
	return t.applyStatusUpdate(ctx, args, "payment", t.bookings.UpdatePaymentStatus)
}

func (t *Toolset) updateStayStatus(ctx context.Context, args map[string]any) (map[string]any, error) {
	status, err := requireString(args, "status")
	if err != nil {
		return nil, err
	}
	canonical, ok := stayAliases[status]
	if !ok {
		return nil, fmt.Errorf("invalid stay status: %s (expected checked-in or checked-out)", status)
	}
	args["status"] = canonical
	return t.applyStatusUpdate(ctx, args, "stay", t.bookings.UpdateBookingStatus)
}

// applyStatusUpdate runs the shared mutation contract: locate the booking,
// write exactly one status field, append the optional audit note, and return
// the success envelope. A persistence failure surfaces as an error; nothing
// is retried here.
func (t *Toolset) applyStatusUpdate(
	ctx context.Context,
	args map[string]any,
	kind string,
	update func(ctx context.Context, id, status string) error,
) (map[string]any, error) {
	id, err := requireString(args, "bookingId")
	if err != nil {
		return nil, err
	}
	status, err := requireString(args, "status")
	if err != nil {
		return nil, err
	}

	b, err := t.bookings.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("Booking not found: %s", id)
	}
	if err != nil {
		return nil, err
	}

	if err := update(ctx, b.ID, status); err != nil {
		return nil, err
	}
	if note := argString(args, "note", ""); note != "" {
		if err := t.bookings.AppendSpecialRequest(ctx, b.ID, note); err != nil {
			return nil, err
		}
	}

	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("Updated %s status to %s for %s", kind, status, b.GuestName()),
		"booking": map[string]any{
			"id":        b.ID,
			"status":    status,
			"reference": b.Reference,
		},
	}, nil
}

// scheduleReport hands the report off to the background job system and
// acknowledges immediately; generation and delivery are out of band. An
// enqueue failure comes back as {success:false, error} rather than the
// dispatcher's error envelope.
func (t *Toolset) scheduleReport(ctx context.Context, args map[string]any) (map[string]any, error) {
	reportType, err := requireString(args, "reportType")
	if err != nil {
		return nil, err
	}
	if _, err := requireDate(args, "startDate"); err != nil {
		return nil, err
	}
	if _, err := requireDate(args, "endDate"); err != nil {
		return nil, err
	}
	userEmail, err := requireString(args, "userEmail")
	if err != nil {
		return nil, err
	}

	payload := models.ReportPayload{
		ReportType: reportType,
		StartDate:  argString(args, "startDate", ""),
		EndDate:    argString(args, "endDate", ""),
		UserEmail:  userEmail,
	}
	if err := t.queue.Enqueue(ctx, cron.TypeReportGenerate, payload); err != nil {
		return map[string]any{"success": false, "error": err.Error()}, nil
	}

	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("%s report scheduled. It will be emailed to %s when ready.", reportType, userEmail),
	}, nil
}
