package models

// ReportPayload is the task payload handed off to the background report
// worker. The assistant enqueues it and returns immediately; generation and
// email delivery happen out of band.
type ReportPayload struct {
	ReportType string `json:"reportType"` // "revenue", "occupancy" or "summary"
	StartDate  string `json:"startDate"`  // YYYY-MM-DD
	EndDate    string `json:"endDate"`    // YYYY-MM-DD
	UserEmail  string `json:"userEmail"`
}

// RevenueForecast is the result of forecasting a target month from bookings
// already on the books plus the same month one year prior.
type RevenueForecast struct {
	Month      string  `json:"month"`
	OnTheBooks float64 `json:"onTheBooks"`
	PriorYear  float64 `json:"priorYear"`
	Forecast   float64 `json:"forecast"`
	Confidence string  `json:"confidence"` // "high" when prior-year data exists, else "medium"
	Insight    string  `json:"insight"`
}
