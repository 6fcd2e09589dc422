package detect

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Element is one detected UI element: a [x1,y1,x2,y2] bounding box in
// image pixels and a free-text description.
type Element struct {
	ID          int    `json:"id"`
	Box         [4]int `json:"box"`
	Description string `json:"description"`
}

// response is the wire shape the model is asked to produce.
type response struct {
	Elements *[]Element `json:"elements"`
}

// ParseElements extracts the element list from a raw model reply. The
// reply is sanitized first since vision models like to wrap JSON in code
// fences or add commentary around it. Elements with degenerate boxes
// (x1>=x2 or y1>=y2) are dropped rather than failing the whole reply.
func ParseElements(raw string) ([]Element, error) {
	cleaned := sanitizeModelJSON(raw)
	if !strings.HasPrefix(cleaned, "{") {
		return nil, fmt.Errorf("model response contains no JSON object")
	}

	var resp response
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, fmt.Errorf("model response is not valid JSON: %w", err)
	}
	if resp.Elements == nil {
		return nil, fmt.Errorf(`model response has no "elements" key`)
	}

	out := make([]Element, 0, len(*resp.Elements))
	for _, e := range *resp.Elements {
		if e.Box[0] >= e.Box[2] || e.Box[1] >= e.Box[3] {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

var (
	reBlockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	reLineComment  = regexp.MustCompile(`(?m)^\s*//.*$`)
	reTrailComma   = regexp.MustCompile(`,(\s*[}\]])`)
)

// sanitizeModelJSON strips code fences, comments, and trailing commas,
// then keeps only the outermost {...} span.
func sanitizeModelJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, "```") {
		if i := strings.Index(raw, "\n"); i >= 0 {
			raw = raw[i+1:]
		}
		if j := strings.LastIndex(raw, "```"); j >= 0 {
			raw = raw[:j]
		}
	}
	raw = strings.TrimSpace(raw)
	raw = strings.Trim(raw, "`")

	raw = reBlockComment.ReplaceAllString(raw, "")
	raw = reLineComment.ReplaceAllString(raw, "")
	raw = reTrailComma.ReplaceAllString(raw, "$1")

	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}
	return strings.TrimSpace(raw)
}
