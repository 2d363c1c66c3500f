package assistant

import "context"

// Page discriminator values carried in request metadata. Anything else
// falls back to the dashboard handler.
const (
	PageDashboard = "dashboard"
	PageSettings  = "settings"
	PageExtension = "extension"
)

// Canned reply text. The processing boundary degrades to these instead
// of surfacing errors; the client always receives a normal-looking reply.
const (
	ErrorResponseMessage   = "I encountered an error processing your request. Please try again."
	ParseErrorMessage      = "I encountered an error processing the response. Please try again."
	DefaultResponseMessage = "I've updated the view according to your request."
	SettingsErrorResponse  = "I'm sorry, I encountered an error while processing your request. Please try again later."
	ExtensionDefaultReply  = "I'm not sure how to respond to that."
)

// Response is the sparse caller-facing schema. Only fields that are
// semantically present are serialized; Normalize guarantees a non-empty
// response_message on everything it produces.
type Response struct {
	GeneralResponse string   `json:"generalResponse,omitempty"`
	Filters         *Filters `json:"filters,omitempty"`
	ViewMode        string   `json:"view_mode,omitempty"`
	SortBy          string   `json:"sort_by,omitempty"`
	GroupBy         string   `json:"group_by,omitempty"`
	CloseTabs       bool     `json:"closeTabs,omitempty"`
	ResponseMessage string   `json:"response_message,omitempty"`
	Goto            string   `json:"goto,omitempty"`
}

// Filters is the dashboard filter-change payload. A nil sub-field means
// "no change", never "empty change".
type Filters struct {
	Categories []string    `json:"categories,omitempty"`
	Stores     []string    `json:"stores,omitempty"`
	Lists      []string    `json:"lists,omitempty"`
	ClearAll   bool        `json:"clearAll,omitempty"`
	TimeRange  *TimeRange  `json:"timeRange,omitempty"`
	Price      *PriceRange `json:"price,omitempty"`
}

type TimeRange struct {
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Handler is a page-specific strategy: query plus UI context in,
// normalized response out. An error means the router substitutes the
// generic fallback reply; handlers never panic through this boundary.
type Handler interface {
	Process(ctx context.Context, query string, contextData map[string]any) (Response, error)
}
