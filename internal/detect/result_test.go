package detect

import (
	"strings"
	"testing"
)

func TestParseElementsPlainJSON(t *testing.T) {
	raw := `{"elements":[
		{"id":1,"box":[10,20,100,50],"description":"Submit button"},
		{"id":2,"box":[120,25,140,45],"description":"Info icon"}
	]}`

	got, err := ParseElements(raw)
	if err != nil {
		t.Fatalf("ParseElements: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d elements, want 2", len(got))
	}
	if got[0].ID != 1 || got[0].Box != [4]int{10, 20, 100, 50} || got[0].Description != "Submit button" {
		t.Errorf("first element = %+v", got[0])
	}
}

func TestParseElementsStripsCodeFence(t *testing.T) {
	raw := "```json\n{\"elements\":[{\"id\":1,\"box\":[0,0,10,10],\"description\":\"x\"}]}\n```"

	got, err := ParseElements(raw)
	if err != nil {
		t.Fatalf("ParseElements: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d elements, want 1", len(got))
	}
}

func TestParseElementsIgnoresSurroundingProse(t *testing.T) {
	raw := `Here are the elements I found:
{"elements":[{"id":1,"box":[5,5,50,30],"description":"Search field"}]}
Let me know if you need more detail.`

	got, err := ParseElements(raw)
	if err != nil {
		t.Fatalf("ParseElements: %v", err)
	}
	if len(got) != 1 || got[0].Description != "Search field" {
		t.Errorf("got %+v", got)
	}
}

func TestParseElementsTrailingCommas(t *testing.T) {
	raw := `{"elements":[{"id":1,"box":[0,0,10,10],"description":"x",},]}`

	got, err := ParseElements(raw)
	if err != nil {
		t.Fatalf("ParseElements: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d elements, want 1", len(got))
	}
}

func TestParseElementsDropsDegenerateBoxes(t *testing.T) {
	raw := `{"elements":[
		{"id":1,"box":[10,10,10,50],"description":"zero width"},
		{"id":2,"box":[50,50,10,80],"description":"inverted x"},
		{"id":3,"box":[0,0,10,10],"description":"valid"}
	]}`

	got, err := ParseElements(raw)
	if err != nil {
		t.Fatalf("ParseElements: %v", err)
	}
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("got %+v, want only the valid element", got)
	}
}

func TestParseElementsFailures(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantSub string
	}{
		{"prose only", "I cannot analyze this image.", "no JSON"},
		{"broken json", `{"elements": [}`, "not valid JSON"},
		{"missing key", `{"items": []}`, `"elements" key`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseElements(tt.raw)
			if err == nil {
				t.Fatalf("ParseElements(%q) = %v, want error", tt.raw, got)
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestParseElementsEmptyListIsSuccess(t *testing.T) {
	got, err := ParseElements(`{"elements": []}`)
	if err != nil {
		t.Fatalf("ParseElements: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d elements, want 0", len(got))
	}
}
