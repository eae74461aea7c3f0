package monitor

import (
	"reflect"
	"testing"
)

// TestValidateList_Valid verifies every element of a list is returned typed.
func TestValidateList_Valid(t *testing.T) {
	second := validInput(t)
	second["id"] = float64(2)
	second["name"] = "HDMI-A-1"
	second["focused"] = false

	list, err := ValidateList([]any{validInput(t), second})
	if err != nil {
		t.Fatalf("ValidateList failed: %v", err)
	}
	if len(list) != 2 || list[0].Name != "DP-1" || list[1].Name != "HDMI-A-1" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

// TestValidateList_Empty verifies an empty list is valid.
func TestValidateList_Empty(t *testing.T) {
	list, err := ValidateList([]any{})
	if err != nil {
		t.Fatalf("ValidateList failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %+v", list)
	}
}

// TestValidateList_IndexedErrors verifies errors from all elements carry index prefixes.
func TestValidateList_IndexedErrors(t *testing.T) {
	bad := validInput(t)
	bad["width"] = "1920"
	delete(bad, "activeWorkspace")
	worse := validInput(t)
	worse["activeWorkspace"] = map[string]any{"id": float64(1), "name": float64(1)}

	_, err := ValidateList([]any{validInput(t), bad, worse, "DP-3"})
	fields := shapeFields(t, err)
	want := map[string]string{
		"[1].width":                "expected number, got text",
		"[1].activeWorkspace":      "missing",
		"[2].activeWorkspace.name": "expected text, got number",
		"[3]":                      "expected object, got text",
	}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("expected %v, got %v", want, fields)
	}
}

// TestValidateList_NotArray verifies non-array input is rejected at the root.
func TestValidateList_NotArray(t *testing.T) {
	_, err := ValidateList(validInput(t))
	fields := shapeFields(t, err)
	want := map[string]string{RootPath: "expected array, got object"}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("expected %v, got %v", want, fields)
	}
}

// TestValidateAny verifies single records and lists are both accepted.
func TestValidateAny(t *testing.T) {
	single, err := ValidateAny(validInput(t))
	if err != nil || len(single) != 1 {
		t.Fatalf("expected one monitor, got %d (%v)", len(single), err)
	}
	many, err := ValidateAny([]any{validInput(t), validInput(t)})
	if err != nil || len(many) != 2 {
		t.Fatalf("expected two monitors, got %d (%v)", len(many), err)
	}
}
