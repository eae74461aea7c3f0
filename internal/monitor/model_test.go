package monitor

import "testing"

// TestGetMonitorByName_Found verifies a monitor is found by connector name.
func TestGetMonitorByName_Found(t *testing.T) {
	list := []Monitor{
		{ID: 0, Name: "eDP-1", Width: 1920, Height: 1200},
		{ID: 1, Name: "DP-1", Width: 2560, Height: 1440},
	}
	m, ok := GetMonitorByName(list, "DP-1")
	if !ok || m.ID != 1 {
		t.Fatalf("expected id 1, got ok=%v monitor=%+v", ok, m)
	}
}

// TestGetMonitorByName_NotFound verifies missing names return false.
func TestGetMonitorByName_NotFound(t *testing.T) {
	list := []Monitor{{ID: 0, Name: "eDP-1"}}
	if _, ok := GetMonitorByName(list, "HDMI-A-1"); ok {
		t.Fatalf("expected not found")
	}
}

// TestGetMonitorByID verifies lookup by numeric id.
func TestGetMonitorByID(t *testing.T) {
	list := []Monitor{{ID: 3, Name: "DP-2"}, {ID: 7, Name: "DP-3"}}
	m, ok := GetMonitorByID(list, 7)
	if !ok || m.Name != "DP-3" {
		t.Fatalf("expected DP-3, got ok=%v monitor=%+v", ok, m)
	}
	if _, ok := GetMonitorByID(list, 4); ok {
		t.Fatalf("expected id 4 to be missing")
	}
}

// TestFocused verifies the focused monitor is returned.
func TestFocused(t *testing.T) {
	list := []Monitor{{ID: 0, Name: "eDP-1"}, {ID: 1, Name: "DP-1", Focused: true}}
	m, ok := Focused(list)
	if !ok || m.Name != "DP-1" {
		t.Fatalf("expected DP-1 focused, got ok=%v monitor=%+v", ok, m)
	}
	if _, ok := Focused(list[:1]); ok {
		t.Fatalf("expected no focused monitor")
	}
}

// TestTransform_String verifies names for known codes and raw numbers otherwise.
func TestTransform_String(t *testing.T) {
	cases := map[Transform]string{
		TransformNormal:     "normal",
		Transform270:        "270",
		TransformFlipped90:  "flipped-90",
		TransformFlipped270: "flipped-270",
		Transform(12):       "12",
	}
	for tr, want := range cases {
		if got := tr.String(); got != want {
			t.Fatalf("transform %d: expected %q, got %q", int(tr), want, got)
		}
	}
	if Transform(12).Known() || !Transform180.Known() {
		t.Fatalf("unexpected Known results")
	}
}
