package toggler

import (
	"encoding/json"
	"time"

	"github.com/themetoggle/themetoggle/internal/detect"
	"github.com/themetoggle/themetoggle/internal/models"
)

// Report summarizes one run.
type Report struct {
	RunID string           `json:"run_id"`
	Mode  models.ThemeMode `json:"mode"`

	// Source is where the previous mode came from, or "forced".
	Source   detect.Source  `json:"source"`
	Detected *detect.Result `json:"detected,omitempty"`

	// Results holds one entry per descriptor, in configuration order.
	Results []Result `json:"results"`

	// System is nil when the OS store was not touched.
	System *SystemResult `json:"system,omitempty"`
}

// Failed counts failed applications, including the OS store.
func (r *Report) Failed() int {
	failed := 0
	for _, result := range r.Results {
		if !result.OK() {
			failed++
		}
	}
	if r.System != nil && !r.System.OK() {
		failed++
	}
	return failed
}

// Result is the outcome of one descriptor's adapter call.
type Result struct {
	Name     string
	Kind     models.AdapterKind
	Applied  string
	Err      error
	Duration time.Duration
}

// OK reports whether the adapter succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// MarshalJSON renders Err as a string.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name       string             `json:"name"`
		Kind       models.AdapterKind `json:"kind"`
		Applied    string             `json:"applied,omitempty"`
		Error      string             `json:"error,omitempty"`
		DurationMS int64              `json:"duration_ms"`
	}{
		Name:       r.Name,
		Kind:       r.Kind,
		Applied:    r.Applied,
		Error:      errorString(r.Err),
		DurationMS: r.Duration.Milliseconds(),
	})
}

// SystemResult is the outcome of writing the OS store.
type SystemResult struct {
	Mode models.ThemeMode
	Err  error
}

// OK reports whether the OS store was written.
func (r SystemResult) OK() bool {
	return r.Err == nil
}

// MarshalJSON renders Err as a string.
func (r SystemResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Mode  models.ThemeMode `json:"mode"`
		Error string           `json:"error,omitempty"`
	}{
		Mode:  r.Mode,
		Error: errorString(r.Err),
	})
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
