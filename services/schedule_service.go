package services

import (
	"context"
	"fmt"
	"strings"

	"juris_control_go/models"
	"juris_control_go/services/tablestore"

	"go.uber.org/zap"
)

// EventInput holds the schedule form. Case is a selector choice: a case
// label, a plain id, NoneSelected, or blank.
type EventInput struct {
	Title string
	Case  string
	Date  string
	Time  string
	Type  string
	Notes string
}

// ScheduleService records calendar events. Events link to cases through a
// soft reference that is not checked against the cases table.
type ScheduleService struct {
	events *TableRepository
	logger *zap.Logger
}

func NewScheduleService(store tablestore.Store, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		events: NewTableRepository(store, tablestore.TableEvents, models.ScheduleEventColumns, ""),
		logger: logger,
	}
}

// Create appends an event. The date is stored day-first.
func (s *ScheduleService) Create(ctx context.Context, in EventInput) (*models.ScheduleEvent, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: event title is required", ErrInvalidInput)
	}

	date, err := ParseFormDate(in.Date)
	if err != nil {
		return nil, err
	}

	ref, err := ResolveSelection(in.Case)
	if err != nil {
		return nil, err
	}

	eventType := strings.TrimSpace(in.Type)
	if eventType == "" {
		eventType = models.EventTypeOther
	}
	if !models.IsValidEventType(eventType) {
		return nil, fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, eventType)
	}

	event := models.ScheduleEvent{
		Title:    title,
		CaseID:   ref.Key(),
		Date:     models.FormatDate(date),
		Time:     strings.TrimSpace(in.Time),
		Type:     eventType,
		Notes:    SanitizeText(in.Notes),
	}
	position, err := s.events.Append(ctx, event.ToRow())
	if err != nil {
		return nil, err
	}
	event.Position = position

	s.logger.Info("event scheduled",
		zap.String("title", event.Title),
		zap.String("date", event.Date),
		zap.String("case_id", event.CaseID),
	)
	return &event, nil
}

// List returns every event in table order.
func (s *ScheduleService) List(ctx context.Context) ([]models.ScheduleEvent, error) {
	rows, err := s.events.Rows(ctx)
	if err != nil {
		return nil, err
	}
	events := make([]models.ScheduleEvent, 0, len(rows))
	for i, r := range rows {
		events = append(events, models.ScheduleEventFromRow(i, r))
	}
	return events, nil
}

// CaseChoices lists the options of the event form's case selector,
// NoneSelected first.
func CaseChoices(options []Ref) []string {
	choices := make([]string, 0, len(options)+1)
	choices = append(choices, NoneSelected)
	for _, ref := range options {
		choices = append(choices, ref.Label)
	}
	return choices
}
