package assistant

import (
	"encoding/json"
	"strings"
)

// Normalize turns a raw engine reply into the strict partial Response
// schema. It is total: any input, including non-JSON text, yields a
// Response with a non-empty response_message. Empty collections and
// hollow sub-objects are dropped rather than passed through.
func Normalize(raw string) Response {
	cleaned := stripFences(raw)

	var payload map[string]any
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return Response{ResponseMessage: ParseErrorMessage}
	}

	out := Response{}

	filters := normalizeFilters(payload["filters"])

	// Some replies put price at the payload root instead of under
	// filters. Tolerate that shape when the nested one is absent.
	if rootPrice := normalizePrice(payload["price"]); rootPrice != nil {
		if filters == nil {
			filters = &Filters{}
		}
		if filters.Price == nil {
			filters.Price = rootPrice
		}
	}
	out.Filters = filters

	out.ViewMode = nonEmptyString(payload["view_mode"])
	out.SortBy = nonEmptyString(payload["sort_by"])
	out.GroupBy = nonEmptyString(payload["group_by"])

	if b, ok := payload["closeTabs"].(bool); ok && b {
		out.CloseTabs = true
	}

	out.ResponseMessage = DefaultResponseMessage
	if msg := nonEmptyString(payload["response_message"]); msg != "" {
		out.ResponseMessage = msg
	}
	out.GeneralResponse = nonEmptyString(payload["generalResponse"])

	return out
}

// stripFences removes an optional markdown code-fence wrapper.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func normalizeFilters(v any) *Filters {
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil
	}

	f := &Filters{
		Categories: stringSlice(m["categories"]),
		Stores:     stringSlice(m["stores"]),
		Lists:      stringSlice(m["lists"]),
		TimeRange:  normalizeTimeRange(m["timeRange"]),
		Price:      normalizePrice(m["price"]),
	}
	if b, ok := m["clearAll"].(bool); ok && b {
		f.ClearAll = true
	}

	if f.Categories == nil && f.Stores == nil && f.Lists == nil &&
		f.TimeRange == nil && f.Price == nil && !f.ClearAll {
		return nil
	}
	return f
}

func normalizeTimeRange(v any) *TimeRange {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	tr := &TimeRange{
		StartDate:   nonEmptyString(m["startDate"]),
		EndDate:     nonEmptyString(m["endDate"]),
		Description: nonEmptyString(m["description"]),
	}
	if tr.StartDate == "" && tr.EndDate == "" && tr.Description == "" {
		return nil
	}
	return tr
}

func normalizePrice(v any) *PriceRange {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	p := &PriceRange{Min: numberField(m["min"]), Max: numberField(m["max"])}
	if p.Min == nil && p.Max == nil {
		return nil
	}
	return p
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func nonEmptyString(v any) string {
	s, _ := v.(string)
	return s
}

func numberField(v any) *float64 {
	n, ok := v.(float64)
	if !ok {
		return nil
	}
	return &n
}
