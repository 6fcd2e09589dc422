package editor

import "strings"

// ElementType is the coarse category of a detected UI element,
// derived from its free-text description.
type ElementType string

const (
	TypeButton    ElementType = "button"
	TypeInput     ElementType = "input"
	TypeLabel     ElementType = "label"
	TypeImage     ElementType = "image"
	TypeLink      ElementType = "link"
	TypeMenu      ElementType = "menu"
	TypeCheckbox  ElementType = "checkbox"
	TypeRadio     ElementType = "radio"
	TypeDropdown  ElementType = "dropdown"
	TypeIcon      ElementType = "icon"
	TypeContainer ElementType = "container"
	TypeText      ElementType = "text"
	TypeUnknown   ElementType = "unknown"
)

// typeKeywords maps each category to its trigger keywords. Entries are
// tested in order and the first category with a matching keyword wins, so
// a "button with an icon" classifies as a button, not an icon.
var typeKeywords = []struct {
	Type     ElementType
	Keywords []string
}{
	{TypeButton, []string{"button", "btn"}},
	{TypeInput, []string{"input", "field", "textbox"}},
	{TypeLabel, []string{"label", "heading", "title"}},
	{TypeImage, []string{"image", "img", "photo"}},
	{TypeLink, []string{"link", "hyperlink"}},
	{TypeMenu, []string{"menu", "nav"}},
	{TypeCheckbox, []string{"checkbox"}},
	{TypeRadio, []string{"radio"}},
	{TypeDropdown, []string{"dropdown", "select", "combobox"}},
	{TypeIcon, []string{"icon", "symbol"}},
	{TypeContainer, []string{"container", "panel", "card"}},
	{TypeText, []string{"text", "paragraph"}},
}

// Classify derives an ElementType from a free-text description using
// case-insensitive substring matching. It is pure and idempotent; callers
// may re-run it whenever the description changes.
func Classify(description string) ElementType {
	desc := strings.ToLower(description)
	for _, entry := range typeKeywords {
		for _, kw := range entry.Keywords {
			if strings.Contains(desc, kw) {
				return entry.Type
			}
		}
	}
	return TypeUnknown
}
