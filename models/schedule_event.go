package models

import "juris_control_go/services/tablestore"

// Schedule event type constants
const (
	EventTypeDeadline  = "Deadline"
	EventTypeHearing   = "Hearing"
	EventTypeMeeting   = "Meeting"
	EventTypeDiligence = "Diligence"
	EventTypeOther     = "Other"
)

// Schedule event column names
const (
	EventColTitle  = "title"
	EventColCaseID = "case_id"
	EventColDate   = "date"
	EventColTime   = "time"
	EventColType   = "type"
	EventColNotes  = "notes"
)

// ScheduleEventColumns is the header order of the schedule_events table.
var ScheduleEventColumns = []string{
	EventColDate,
	EventColTime,
	EventColTitle,
	EventColType,
	EventColNotes,
	EventColCaseID,
}

// ScheduleEvent is a calendar entry. CaseID is a soft reference: it may be
// empty or point at a case that no longer exists.
type ScheduleEvent struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	CaseID   string `json:"case_id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Type     string `json:"type"`
	Notes    string `json:"notes"`
}

// ScheduleEventFromRow decodes an event; position is its row index.
func ScheduleEventFromRow(position int, r tablestore.Row) ScheduleEvent {
	return ScheduleEvent{
		Position: position,
		Title:    r.Get(EventColTitle),
		CaseID:   r.Get(EventColCaseID),
		Date:     r.Get(EventColDate),
		Time:     r.Get(EventColTime),
		Type:     r.Get(EventColType),
		Notes:    r.Get(EventColNotes),
	}
}

func (e ScheduleEvent) ToRow() tablestore.Row {
	return tablestore.Row{
		EventColTitle:  e.Title,
		EventColCaseID: e.CaseID,
		EventColDate:   e.Date,
		EventColTime:   e.Time,
		EventColType:   e.Type,
		EventColNotes:  e.Notes,
	}
}

// LinkedCaseID returns the referenced case id, if the soft reference holds
// one. Stored values like "4.0" are accepted.
func (e *ScheduleEvent) LinkedCaseID() (int64, bool) {
	return ParseID(e.CaseID)
}

// IsValidEventType checks if the event type is valid
func IsValidEventType(t string) bool {
	switch t {
	case EventTypeDeadline, EventTypeHearing, EventTypeMeeting, EventTypeDiligence, EventTypeOther:
		return true
	}
	return false
}
