package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// MatchCandidateData represents one ranked match candidate
type MatchCandidateData struct {
	ReportID    string   `json:"report_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Status      string   `json:"status" example:"found"`
	Name        string   `json:"name" example:"Rocky"`
	Excerpt     string   `json:"excerpt" example:"Brown labrador found near Parque Kennedy..."`
	Images      []string `json:"images,omitempty"`
	Score       int      `json:"score" example:"91"`
	Explanation string   `json:"explanation" example:"This found-pet report is a 91% match"`
}

// SubmitReportResponseData represents the submit outcome
type SubmitReportResponseData struct {
	Outcome    string               `json:"outcome" example:"awaiting_confirmation"`
	DraftID    string               `json:"draft_id,omitempty" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	Candidates []MatchCandidateData `json:"candidates,omitempty"`
}

// ReportData represents a published report
type ReportData struct {
	ID          string   `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ReporterID  string   `json:"reporter_id" example:"9b2d44a0-25ee-43f8-8d28-94de173a0d30"`
	Status      string   `json:"status" example:"lost"`
	Species     string   `json:"species" example:"dog"`
	Breed       string   `json:"breed,omitempty" example:"labrador"`
	Color       string   `json:"color,omitempty" example:"brown"`
	Size        string   `json:"size,omitempty" example:"medium"`
	Name        string   `json:"name,omitempty" example:"Rocky"`
	Description string   `json:"description" example:"Lost near Parque Kennedy, red collar"`
	Images      []string `json:"images,omitempty"`
	ExpiresAt   string   `json:"expires_at" example:"2026-05-01T00:00:00Z"`
	CreatedAt   string   `json:"created_at" example:"2026-03-02T00:00:00Z"`
}

// ReportListData represents the feed response
type ReportListData struct {
	Reports []ReportData `json:"reports"`
	Limit   int          `json:"limit" example:"20"`
	Offset  int          `json:"offset" example:"0"`
}

// SuggestionData represents a photo analysis suggestion
type SuggestionData struct {
	Species    string   `json:"species" example:"dog"`
	Colors     []string `json:"colors,omitempty" example:"brown,golden"`
	Labels     []string `json:"labels"`
	Confidence float64  `json:"confidence" example:"97.4"`
}

// SavedSearchData represents a saved search
type SavedSearchData struct {
	ID       string   `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID   string   `json:"user_id" example:"9b2d44a0-25ee-43f8-8d28-94de173a0d30"`
	Species  string   `json:"species,omitempty" example:"dog"`
	Statuses []string `json:"statuses,omitempty" example:"found,sighted"`
	Keywords []string `json:"keywords,omitempty" example:"labrador,brown"`
	Enabled  bool     `json:"enabled" example:"true"`
}

// NotificationData represents an in-app notification
type NotificationData struct {
	ID        string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Type      string `json:"type" example:"saved_search_hit"`
	Title     string `json:"title" example:"A report matches your saved search"`
	Body      string `json:"body" example:"New found report: Rocky (dog)"`
	ReportID  string `json:"report_id,omitempty"`
	Read      bool   `json:"read" example:"false"`
	CreatedAt string `json:"created_at" example:"2026-03-02T00:00:00Z"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

// EmptyResponse represents no content response (204)
type EmptyResponse struct{}

func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Patitas API",
		Version:     "v1.0.0",
		Description: "Community platform for lost and found pet reports with semantic matching",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /v1/reports - Submit report
		endpoint.New(
			endpoint.POST,
			"/reports",
			endpoint.WithTags("Reports"),
			endpoint.WithSummary("Submit a new report"),
			endpoint.WithDescription("Submits a report draft. If likely matches exist, the submission pauses and the candidates are returned together with a draft_id; otherwise the report publishes immediately."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ReportData{}, "201", "Report published"),
				response.New(SubmitReportResponseData{}, "200", "Likely matches found, confirmation required"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "BAD_REQUEST", Message: "Invalid request"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "INVALID_STATUS", Message: "Unknown status"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INVALID_SPECIES", Message: "Unknown species"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// POST /v1/reports/confirm - Publish anyway
		endpoint.New(
			endpoint.POST,
			"/reports/confirm",
			endpoint.WithTags("Reports"),
			endpoint.WithSummary("Publish a pending report anyway"),
			endpoint.WithDescription("Publishes a draft that was paused on likely matches, reusing the embedding computed at submission time."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ReportData{}, "201", "Report published"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "DRAFT_NOT_FOUND", Message: "Pending submission not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// DELETE /v1/submissions/:draft_id - Abandon
		endpoint.New(
			endpoint.DELETE,
			"/submissions/{draft_id}",
			endpoint.WithTags("Reports"),
			endpoint.WithSummary("Abandon a pending submission"),
			endpoint.WithParams(
				parameter.StrParam("draft_id", parameter.Path, parameter.WithRequired()),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmptyResponse{}, "204", "Draft discarded"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "DRAFT_NOT_FOUND", Message: "Pending submission not found"}, "404", "Not Found"),
			}),
		),

		// GET /v1/reports - Feed
		endpoint.New(
			endpoint.GET,
			"/reports",
			endpoint.WithTags("Reports"),
			endpoint.WithSummary("List active reports"),
			endpoint.WithParams(
				parameter.StrParam("status", parameter.Query, parameter.WithDescription("Filter by status")),
				parameter.StrParam("species", parameter.Query, parameter.WithDescription("Filter by species")),
				parameter.IntParam("limit", parameter.Query, parameter.WithDescription("Page size (1-100, default 20)")),
				parameter.IntParam("offset", parameter.Query, parameter.WithDescription("Page offset")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ReportListData{}, "200", "Active reports"),
			}),
		),

		// GET /v1/reports/:id
		endpoint.New(
			endpoint.GET,
			"/reports/{id}",
			endpoint.WithTags("Reports"),
			endpoint.WithSummary("Get a report"),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithRequired()),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ReportData{}, "200", "Report"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "REPORT_NOT_FOUND", Message: "Report not found"}, "404", "Not Found"),
			}),
		),

		// POST /v1/reports/:id/reunited
		endpoint.New(
			endpoint.POST,
			"/reports/{id}/reunited",
			endpoint.WithTags("Reports"),
			endpoint.WithSummary("Mark a report as reunited"),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithRequired()),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmptyResponse{}, "204", "Report closed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "REPORT_NOT_FOUND", Message: "Report not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "REPORT_ALREADY_REUNITED", Message: "Report is already reunited"}, "409", "Conflict"),
			}),
		),

		// POST /v1/photos/analyze
		endpoint.New(
			endpoint.POST,
			"/photos/analyze",
			endpoint.WithTags("Photos"),
			endpoint.WithSummary("Suggest report fields from a photo"),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SuggestionData{}, "200", "Suggestion"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VISION_DISABLED", Message: "Photo analysis is not enabled"}, "403", "Forbidden"),
				response.New(ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image"}, "422", "Unprocessable Entity"),
			}),
		),

		// POST /v1/searches
		endpoint.New(
			endpoint.POST,
			"/searches",
			endpoint.WithTags("Saved Searches"),
			endpoint.WithSummary("Create a saved search"),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SavedSearchData{}, "201", "Saved search created"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
			}),
		),

		// GET /v1/searches
		endpoint.New(
			endpoint.GET,
			"/searches",
			endpoint.WithTags("Saved Searches"),
			endpoint.WithSummary("List a user's saved searches"),
			endpoint.WithParams(
				parameter.StrParam("user_id", parameter.Query, parameter.WithRequired()),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New([]SavedSearchData{}, "200", "Saved searches"),
			}),
		),

		// DELETE /v1/searches/:id
		endpoint.New(
			endpoint.DELETE,
			"/searches/{id}",
			endpoint.WithTags("Saved Searches"),
			endpoint.WithSummary("Delete a saved search"),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithRequired()),
				parameter.StrParam("user_id", parameter.Query, parameter.WithRequired()),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmptyResponse{}, "204", "Saved search deleted"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "SAVED_SEARCH_NOT_FOUND", Message: "Saved search not found"}, "404", "Not Found"),
			}),
		),

		// GET /v1/notifications
		endpoint.New(
			endpoint.GET,
			"/notifications",
			endpoint.WithTags("Notifications"),
			endpoint.WithSummary("List a user's notifications"),
			endpoint.WithParams(
				parameter.StrParam("user_id", parameter.Query, parameter.WithRequired()),
				parameter.IntParam("limit", parameter.Query, parameter.WithDescription("Page size (1-200, default 50)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New([]NotificationData{}, "200", "Notifications"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
