package editor

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		desc string
		want ElementType
	}{
		{"Primary blue button with white text 'Submit'", TypeButton},
		{"Small BTN in the corner", TypeButton},
		{"Text input field with placeholder", TypeInput},
		{"Search textbox", TypeInput},
		{"Page heading in large font", TypeLabel},
		{"Product photo thumbnail", TypeImage},
		{"Hyperlink to the terms of service", TypeLink},
		{"Top nav bar", TypeMenu},
		{"Checkbox for accepting terms", TypeCheckbox},
		{"Radio option for shipping speed", TypeRadio},
		{"Country select combobox", TypeDropdown},
		{"Gear symbol in the toolbar", TypeIcon},
		{"Card showing order summary", TypeContainer},
		{"Paragraph of body copy", TypeText},
		{"Something unrecognizable", TypeUnknown},
		{"", TypeUnknown},
	}
	for _, tt := range tests {
		if got := Classify(tt.desc); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.desc, got, tt.want)
		}
	}
}

func TestClassifyOrderIsPartOfContract(t *testing.T) {
	// Descriptions matching several keyword sets resolve to the first
	// category in table order.
	if got := Classify("button with a gear icon"); got != TypeButton {
		t.Errorf("button+icon = %v, want button", got)
	}
	if got := Classify("navigation menu with text links"); got != TypeLink {
		t.Errorf("link is checked before menu: got %v, want link", got)
	}
	if got := Classify("input field inside a card container"); got != TypeInput {
		t.Errorf("input+container = %v, want input", got)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	desc := "dropdown select with options"
	first := Classify(desc)
	for i := 0; i < 3; i++ {
		if got := Classify(desc); got != first {
			t.Fatalf("Classify not idempotent: %v then %v", first, got)
		}
	}
}
