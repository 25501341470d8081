package assistant

import (
	"context"
	"fmt"
	"time"

	bookingRepo "harborview/database/repository/booking"
	insightRepo "harborview/database/repository/insight"

	"github.com/google/generative-ai-go/genai"
)

// Tool is one named operation the model may invoke. The declaration is handed
// to the model as a function schema; Run executes the operation against the
// data layer and shapes a compact JSON-serializable summary.
type Tool struct {
	Declaration *genai.FunctionDeclaration
	Run         func(ctx context.Context, args map[string]any) (map[string]any, error)
}

// JobQueue is the narrow interface to the background job system. Submission
// is fire-and-forget: the caller never observes job completion.
type JobQueue interface {
	Enqueue(ctx context.Context, taskType string, payload any) error
}

// declaredToolNames is the fixed tool vocabulary. NewToolset verifies at
// construction that every declared name has a registered handler and vice
// versa, so an internal mismatch fails at startup instead of mid-conversation.
var declaredToolNames = []string{
	"get_booking_stats",
	"get_payment_summary",
	"get_revenue_report",
	"search_bookings",
	"get_booking_details",
	"get_recent_bookings",
	"get_today_snapshot",
	"get_booking_sources",
	"get_guest_profile",
	"get_top_guests",
	"get_occupancy_trends",
	"get_revenue_forecast",
	"get_occupancy_warnings",
	"search_knowledge_base",
	"save_insight",
	"update_booking_status",
	"update_payment_status",
	"update_stay_status",
	"schedule_report",
}

// Toolset holds the immutable tool registry and the collaborators the
// handlers run against.
type Toolset struct {
	bookings   bookingRepo.BookingRepository
	insights   insightRepo.InsightRepository
	forecaster RevenueForecaster
	queue      JobQueue
	cache      ResultCache
	now        func() time.Time

	handlers map[string]Tool
}

// NewToolset builds the registry and validates it against the declared tool
// vocabulary. cache may be nil, in which case every tool call recomputes.
func NewToolset(
	bookings bookingRepo.BookingRepository,
	insights insightRepo.InsightRepository,
	queue JobQueue,
	cache ResultCache,
) (*Toolset, error) {
	t := &Toolset{
		bookings:   bookings,
		insights:   insights,
		forecaster: &historicalForecaster{bookings: bookings},
		queue:      queue,
		cache:      cache,
		now:        time.Now,
	}

	t.handlers = make(map[string]Tool)
	for _, tool := range t.allTools() {
		t.handlers[tool.Declaration.Name] = tool
	}

	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Toolset) allTools() []Tool {
	var tools []Tool
	tools = append(tools, t.bookingTools()...)
	tools = append(tools, t.guestTools()...)
	tools = append(tools, t.trendTools()...)
	tools = append(tools, t.insightTools()...)
	tools = append(tools, t.mutationTools()...)
	return tools
}

// validate checks the registry and the declared vocabulary cover each other.
func (t *Toolset) validate() error {
	for _, name := range declaredToolNames {
		if _, ok := t.handlers[name]; !ok {
			return fmt.Errorf("tool %q declared but has no handler", name)
		}
	}
	if len(t.handlers) != len(declaredToolNames) {
		for name := range t.handlers {
			if !isDeclared(name) {
				return fmt.Errorf("tool %q registered but not declared", name)
			}
		}
	}
	return nil
}

func isDeclared(name string) bool {
	for _, n := range declaredToolNames {
		if n == name {
			return true
		}
	}
	return false
}

// Declarations returns the function declarations handed to the model.
func (t *Toolset) Declarations() []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(declaredToolNames))
	for _, name := range declaredToolNames {
		decls = append(decls, t.handlers[name].Declaration)
	}
	return decls
}
