// Package monitor describes display monitor records and validates them.
package monitor

import "strconv"

// Workspace identifies a logical desktop shown on a monitor.
type Workspace struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Transform is the rotation/flip code reported for a monitor.
type Transform int

// Known transform codes. Other values are accepted as-is.
const (
	TransformNormal Transform = iota
	Transform90
	Transform180
	Transform270
	TransformFlipped
	TransformFlipped90
	TransformFlipped180
	TransformFlipped270
)

var transformNames = map[Transform]string{
	TransformNormal:     "normal",
	Transform90:         "90",
	Transform180:        "180",
	Transform270:        "270",
	TransformFlipped:    "flipped",
	TransformFlipped90:  "flipped-90",
	TransformFlipped180: "flipped-180",
	TransformFlipped270: "flipped-270",
}

// String returns a readable name for known codes and the raw number otherwise.
func (t Transform) String() string {
	if name, ok := transformNames[t]; ok {
		return name
	}
	return strconv.Itoa(int(t))
}

// Known reports whether t is one of the eight standard transform codes.
func (t Transform) Known() bool {
	_, ok := transformNames[t]
	return ok
}

// Monitor is a snapshot of a display's reported state.
type Monitor struct {
	ID               int       `json:"id" yaml:"id"`
	Name             string    `json:"name" yaml:"name"`
	Description      string    `json:"description" yaml:"description"`
	Make             string    `json:"make" yaml:"make"`
	Model            string    `json:"model" yaml:"model"`
	Serial           string    `json:"serial" yaml:"serial"`
	Width            int       `json:"width" yaml:"width"`
	Height           int       `json:"height" yaml:"height"`
	RefreshRate      float64   `json:"refreshRate" yaml:"refreshRate"`
	X                int       `json:"x" yaml:"x"`
	Y                int       `json:"y" yaml:"y"`
	ActiveWorkspace  Workspace `json:"activeWorkspace" yaml:"activeWorkspace"`
	SpecialWorkspace Workspace `json:"specialWorkspace" yaml:"specialWorkspace"`
	Reserved         []int     `json:"reserved" yaml:"reserved"`
	Scale            float64   `json:"scale" yaml:"scale"`
	Transform        Transform `json:"transform" yaml:"transform"`
	Focused          bool      `json:"focused" yaml:"focused"`
	DPMSStatus       bool      `json:"dpmsStatus" yaml:"dpmsStatus"`
	VRR              bool      `json:"vrr" yaml:"vrr"`
	Solitary         string    `json:"solitary" yaml:"solitary"`
	ActivelyTearing  bool      `json:"activelyTearing" yaml:"activelyTearing"`
	Disabled         bool      `json:"disabled" yaml:"disabled"`
	CurrentFormat    string    `json:"currentFormat" yaml:"currentFormat"`
	MirrorOf         string    `json:"mirrorOf" yaml:"mirrorOf"`
	AvailableModes   []string  `json:"availableModes" yaml:"availableModes"`
}

// Raw returns the record in the untyped shape produced by decoding JSON:
// objects become map[string]any, numbers float64, sequences []any.
func (m Monitor) Raw() map[string]any {
	reserved := make([]any, len(m.Reserved))
	for i, v := range m.Reserved {
		reserved[i] = float64(v)
	}
	modes := make([]any, len(m.AvailableModes))
	for i, v := range m.AvailableModes {
		modes[i] = v
	}
	return map[string]any{
		"id":               float64(m.ID),
		"name":             m.Name,
		"description":      m.Description,
		"make":             m.Make,
		"model":            m.Model,
		"serial":           m.Serial,
		"width":            float64(m.Width),
		"height":           float64(m.Height),
		"refreshRate":      m.RefreshRate,
		"x":                float64(m.X),
		"y":                float64(m.Y),
		"activeWorkspace":  m.ActiveWorkspace.raw(),
		"specialWorkspace": m.SpecialWorkspace.raw(),
		"reserved":         reserved,
		"scale":            m.Scale,
		"transform":        float64(m.Transform),
		"focused":          m.Focused,
		"dpmsStatus":       m.DPMSStatus,
		"vrr":              m.VRR,
		"solitary":         m.Solitary,
		"activelyTearing":  m.ActivelyTearing,
		"disabled":         m.Disabled,
		"currentFormat":    m.CurrentFormat,
		"mirrorOf":         m.MirrorOf,
		"availableModes":   modes,
	}
}

// raw returns the workspace as an untyped object.
func (w Workspace) raw() map[string]any {
	return map[string]any{"id": float64(w.ID), "name": w.Name}
}

// GetMonitorByName returns the monitor with the given connector name.
func GetMonitorByName(list []Monitor, name string) (Monitor, bool) {
	for _, m := range list {
		if m.Name == name {
			return m, true
		}
	}
	return Monitor{}, false
}

// GetMonitorByID returns the monitor matching id.
func GetMonitorByID(list []Monitor, id int) (Monitor, bool) {
	for _, m := range list {
		if m.ID == id {
			return m, true
		}
	}
	return Monitor{}, false
}

// Focused returns the monitor holding input focus, if any.
func Focused(list []Monitor) (Monitor, bool) {
	for _, m := range list {
		if m.Focused {
			return m, true
		}
	}
	return Monitor{}, false
}
