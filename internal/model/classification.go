package model

import "time"

// Classification is the fixed result shape returned by the AI collaborator
// for an inbound email. When IsDemoRequest is true and Slots is non-empty the
// intake service can build a ScheduledResponse from it directly.
type Classification struct {
	IsDemoRequest   bool       `json:"is_demo_request"`
	Confidence      float64    `json:"confidence"`
	ContactName     string     `json:"contact_name"`
	ContactEmail    string     `json:"contact_email"`
	ResponseSubject string     `json:"response_subject"`
	ResponseBody    string     `json:"response_body"`
	Slots           []TimeSlot `json:"slots"`
}

// ReplyDecision is the fixed result shape for resolving a reply on a thread
// with a previously sent response. SlotIndex is an index into the originally
// proposed slots, or -1 when the sender asked for a freeform time carried in
// Start/End.
type ReplyDecision struct {
	CreateEvent bool      `json:"create_event"`
	SlotIndex   int       `json:"slot_index"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// ChosenSlot resolves the decision against the proposed slots. ok is false
// when the decision does not identify a usable time.
func (d *ReplyDecision) ChosenSlot(slots []TimeSlot) (TimeSlot, bool) {
	if d.SlotIndex >= 0 && d.SlotIndex < len(slots) {
		return slots[d.SlotIndex], true
	}
	if !d.Start.IsZero() && d.End.After(d.Start) {
		return TimeSlot{Start: d.Start, End: d.End}, true
	}
	return TimeSlot{}, false
}
