package assistant

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Directive injected when the UI shows a filters object whose fields are
// all empty: the prior turn may still talk about filters the user has
// since cleared, and the engine must not resurrect them.
const (
	FilterClearDirective = "IMPORTANT: ALL FILTERS HAVE BEEN MANUALLY CLEARED. IGNORE ANY FILTER REFERENCES IN LAST CONVERSATION."
	filterClearReminder  = "NOTE: The filters mentioned in the last conversation are no longer active. All filters have been cleared."
)

// BuildDashboardContext renders the UI state into the fixed-order text
// block the dashboard prompt is grounded on: current date, available
// option vocabularies, current UI state verbatim, prior turn.
func BuildDashboardContext(contextData map[string]any, now time.Time) string {
	parts := []string{
		fmt.Sprintf("CURRENT DATE: %s (%s)",
			now.Format("Monday, January 02, 2006"),
			now.Format(time.RFC3339)),
		"\nAVAILABLE OPTIONS:",
		"- Categories: " + jsonList(contextData["availableCategories"]),
		"- Stores: " + jsonList(contextData["availableStores"]),
		"- Lists: " + jsonList(listNames(contextData["availableLists"])),
		"- View Modes: " + jsonList(contextData["availableViewModes"]),
		"- Sort Options: " + jsonList(contextData["availableSortOptions"]),
		"- Group Options: " + jsonList(contextData["availableGroupOptions"]),
	}

	filtersCleared := false
	if uiState, ok := contextData["uiState"].(map[string]any); ok {
		parts = append(parts, "\nCURRENT UI STATE:")
		parts = append(parts, jsonIndent(uiState))

		if !filtersActive(uiState["filters"]) {
			parts = append(parts, "\n"+FilterClearDirective)
			filtersCleared = true
		}
	}

	if query, response, ok := lastConversation(contextData); ok {
		parts = append(parts, "\nLAST CONVERSATION:")
		parts = append(parts, "User: "+query)
		parts = append(parts, "Assistant: "+response)
		if filtersCleared {
			parts = append(parts, "\n"+filterClearReminder)
		}
	}

	return strings.Join(parts, "\n")
}

// HasExistingFilters reports whether the current UI state carries at
// least one non-empty filter field. This gates the clarification-first
// rules in the dashboard prompt.
func HasExistingFilters(contextData map[string]any) bool {
	uiState, ok := contextData["uiState"].(map[string]any)
	if !ok {
		return false
	}
	return filtersActive(uiState["filters"])
}

// filtersActive mirrors the per-field emptiness definition: an empty
// collection, a timeRange with no set values, and a price with neither
// bound all count as empty.
func filtersActive(v any) bool {
	filters, ok := v.(map[string]any)
	if !ok {
		return false
	}
	for _, key := range []string{"categories", "stores", "lists"} {
		if items, ok := filters[key].([]any); ok && len(items) > 0 {
			return true
		}
	}
	if tr, ok := filters["timeRange"].(map[string]any); ok {
		for _, v := range tr {
			if truthy(v) {
				return true
			}
		}
	}
	if price, ok := filters["price"].(map[string]any); ok {
		if truthy(price["min"]) || truthy(price["max"]) {
			return true
		}
	}
	return false
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

func lastConversation(contextData map[string]any) (query, response string, ok bool) {
	last, isMap := contextData["lastConversation"].(map[string]any)
	if !isMap {
		return "", "", false
	}
	query = nonEmptyString(last["query"])
	response = nonEmptyString(last["response"])
	if query == "" || response == "" {
		return "", "", false
	}
	return query, response, true
}

func listNames(v any) []any {
	items, _ := v.([]any)
	names := make([]any, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		names = append(names, nonEmptyString(m["name"]))
	}
	return names
}

func jsonList(v any) string {
	if v == nil {
		return "[]"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func jsonIndent(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
