package domain

import (
	"fmt"
	"time"
)

// Mode selects what a run does to each selected frame.
type Mode string

const (
	// ModeReattach swaps each frame for a fresh template instance.
	ModeReattach Mode = "reattach"
	// ModeCopyOverrides swaps and then copies the frame's overrides onto the instance.
	ModeCopyOverrides Mode = "reattach-overrides"
)

// ParseMode maps a host command string to a Mode.
func ParseMode(command string) (Mode, error) {
	switch command {
	case string(ModeReattach), "reattachInstance":
		return ModeReattach, nil
	case string(ModeCopyOverrides), "copyOverrides":
		return ModeCopyOverrides, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, command)
}

// Outcome classifies what happened to one selected node.
type Outcome string

const (
	OutcomeReattached        Outcome = "reattached"
	OutcomeCopyFailed        Outcome = "copy_failed" // swapped, but overrides were not copied
	OutcomeSkippedNotFrame   Outcome = "skipped_not_frame"
	OutcomeSkippedNoTemplate Outcome = "skipped_no_template"
	OutcomeSkippedHostError  Outcome = "skipped_host_error"
)

// Processed reports whether the node was swapped out of the document.
func (o Outcome) Processed() bool {
	return o == OutcomeReattached || o == OutcomeCopyFailed
}

// ItemResult is the outcome of one selected node.
type ItemResult struct {
	NodeID     string  `json:"node_id" yaml:"node_id"`
	NodeName   string  `json:"node_name" yaml:"node_name"`
	InstanceID string  `json:"instance_id,omitempty" yaml:"instance_id,omitempty"`
	Outcome    Outcome `json:"outcome" yaml:"outcome"`
	Error      string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report summarises one run.
type Report struct {
	ID          string       `json:"id" yaml:"id"`
	DocumentID  string       `json:"document_id" yaml:"document_id"`
	Mode        Mode         `json:"mode" yaml:"mode"`
	StartedAt   time.Time    `json:"started_at" yaml:"started_at"`
	FinishedAt  time.Time    `json:"finished_at" yaml:"finished_at"`
	Processed   int          `json:"processed" yaml:"processed"`
	Skipped     int          `json:"skipped" yaml:"skipped"`
	Failed      int          `json:"failed" yaml:"failed"`
	Items       []ItemResult `json:"items" yaml:"items"`
	Diagnostics []string     `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Message     string       `json:"message" yaml:"message"`
}

// Record appends an item result and updates the counters.
// Copy failures count as processed; the node was still swapped.
func (r *Report) Record(item ItemResult) {
	r.Items = append(r.Items, item)
	switch {
	case item.Outcome == OutcomeCopyFailed:
		r.Processed++
		r.Failed++
	case item.Outcome.Processed():
		r.Processed++
	default:
		r.Skipped++
	}
	if item.Error != "" {
		r.Diagnostics = append(r.Diagnostics, item.Error)
	}
}

// Summary renders the human-readable result line.
func (r *Report) Summary() string {
	msg := fmt.Sprintf("%d processed, %d skipped", r.Processed, r.Skipped)
	if r.Failed > 0 {
		if reason := r.lastCopyFailure(); reason != "" {
			msg += fmt.Sprintf(" (%d failed: %s)", r.Failed, reason)
		}
	}
	return msg
}

func (r *Report) lastCopyFailure() string {
	for i := len(r.Items) - 1; i >= 0; i-- {
		if r.Items[i].Outcome == OutcomeCopyFailed {
			return r.Items[i].Error
		}
	}
	return ""
}

// MessageEmptySelection is reported when a run starts with nothing selected.
const MessageEmptySelection = "Please select at least one frame."

// Document is a serialisable snapshot of a design document.
type Document struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name,omitempty" yaml:"name,omitempty"`
	Root      *Node    `json:"root" yaml:"root"`
	Selection []string `json:"selection,omitempty" yaml:"selection,omitempty"`

	// AvailableFonts restricts which fonts load. Nil means every font loads.
	AvailableFonts []FontName `json:"availableFonts,omitempty" yaml:"availableFonts,omitempty"`
}
