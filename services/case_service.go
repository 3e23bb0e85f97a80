package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"juris_control_go/models"
	"juris_control_go/services/tablestore"

	"go.uber.org/zap"
)

// RegisterCaseInput holds the case registration form. Client may be a client
// id, a client selector label, or a client name.
type RegisterCaseInput struct {
	Number      string
	Client      string
	Subject     string
	Court       string
	Role        string
	HearingMode string
}

// CaseDetail is a case with its history and the events linked to it.
type CaseDetail struct {
	Case    models.Case               `json:"case"`
	Ref     Ref                       `json:"ref"`
	History []models.CaseHistoryEntry `json:"history"`
	Events  []models.ScheduleEvent    `json:"events"`
}

// CaseService manages case records and their status lifecycle:
//
//	Active   -> Archived (Archive), Suspended (SetStatus)
//	Archived -> Active (Reactivate)
//
// Suspended and OnAppeal are reached only by manual selection through
// SetStatus. Every transition rewrites the whole cases table.
type CaseService struct {
	cases   *TableRepository
	history *TableRepository
	events  *TableRepository
	clients *ClientService
	logger  *zap.Logger
	now     func() time.Time
}

func NewCaseService(store tablestore.Store, clients *ClientService, logger *zap.Logger) *CaseService {
	return &CaseService{
		cases:   NewTableRepository(store, tablestore.TableCases, models.CaseColumns, models.CaseColID),
		history: NewTableRepository(store, tablestore.TableCaseHistory, models.CaseHistoryColumns, ""),
		events:  NewTableRepository(store, tablestore.TableEvents, models.ScheduleEventColumns, ""),
		clients: clients,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock replaces the clock used for registration dates.
func (s *CaseService) WithClock(now func() time.Time) *CaseService {
	s.now = now
	return s
}

// Register creates a case. Status is forced to Active and the last-update
// date is the registration date.
func (s *CaseService) Register(ctx context.Context, in RegisterCaseInput) (*models.Case, error) {
	number := strings.TrimSpace(in.Number)
	if number == "" {
		return nil, fmt.Errorf("%w: case number is required", ErrInvalidInput)
	}

	client, err := s.clients.Resolve(ctx, in.Client)
	if err != nil {
		return nil, err
	}

	id, err := s.cases.NextID(ctx)
	if err != nil {
		return nil, err
	}

	c := models.Case{
		ID:          id,
		Number:      number,
		Client:      client.Name,
		ClientID:    client.ID,
		Subject:     SanitizeText(in.Subject),
		Court:       strings.TrimSpace(in.Court),
		Role:        strings.TrimSpace(in.Role),
		HearingMode: strings.TrimSpace(in.HearingMode),
		Status:      models.CaseStatusActive,
		LastUpdate:  models.FormatDate(s.now()),
	}

	if err := s.cases.Upsert(ctx, c.ID, c.ToRow()); err != nil {
		return nil, err
	}

	s.logger.Info("case registered",
		zap.Int64("case_id", c.ID),
		zap.String("number", c.Number),
		zap.Int64("client_id", c.ClientID),
	)
	return &c, nil
}

// List returns every case in table order.
func (s *CaseService) List(ctx context.Context) ([]models.Case, error) {
	rows, err := s.cases.Rows(ctx)
	if err != nil {
		return nil, err
	}
	cases := make([]models.Case, 0, len(rows))
	for _, r := range rows {
		cases = append(cases, models.CaseFromRow(r))
	}
	return cases, nil
}

// Get returns one case.
func (s *CaseService) Get(ctx context.Context, id int64) (*models.Case, error) {
	row, _, err := s.cases.Find(ctx, id)
	if err != nil {
		return nil, s.wrapNotFound(err, id)
	}
	c := models.CaseFromRow(row)
	return &c, nil
}

// Detail returns a case with its history entries and linked events.
func (s *CaseService) Detail(ctx context.Context, id int64) (*CaseDetail, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := s.History(ctx, id)
	if err != nil {
		return nil, err
	}
	events, err := s.Events(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CaseDetail{
		Case:    *c,
		Ref:     CaseRef(*c),
		History: history,
		Events:  events,
	}, nil
}

// Options returns the selector references of every case.
func (s *CaseService) Options(ctx context.Context) ([]Ref, error) {
	cases, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	refs := make([]Ref, 0, len(cases))
	for _, c := range cases {
		refs = append(refs, CaseRef(c))
	}
	return refs, nil
}

// Archive sets the case to Archived. Archiving an archived case still
// rewrites the table.
func (s *CaseService) Archive(ctx context.Context, id int64) (*models.Case, error) {
	return s.transition(ctx, id, "archive", func(c *models.Case) error {
		c.Status = models.CaseStatusArchived
		return nil
	})
}

// Reactivate sets the case back to Active.
func (s *CaseService) Reactivate(ctx context.Context, id int64) (*models.Case, error) {
	return s.transition(ctx, id, "reactivate", func(c *models.Case) error {
		c.Status = models.CaseStatusActive
		return nil
	})
}

// ConfirmReviewed moves the last-update date to today without touching the
// status.
func (s *CaseService) ConfirmReviewed(ctx context.Context, id int64, today time.Time) (*models.Case, error) {
	return s.transition(ctx, id, "confirm_reviewed", func(c *models.Case) error {
		c.LastUpdate = models.FormatDate(today)
		return nil
	})
}

// SetStatus is the manual status edit. Any of the four statuses is accepted.
func (s *CaseService) SetStatus(ctx context.Context, id int64, status string) (*models.Case, error) {
	status = strings.TrimSpace(status)
	if !models.IsValidCaseStatus(status) {
		return nil, fmt.Errorf("%w: unknown case status %q", ErrInvalidInput, status)
	}
	return s.transition(ctx, id, "set_status", func(c *models.Case) error {
		c.Status = status
		return nil
	})
}

// RegisterHistory moves the case's last-update date to the entry date and
// then appends the history entry.
//
// These are two separate table replaces. The case is written first, so a
// failed case update never leaves an orphan entry behind.
func (s *CaseService) RegisterHistory(ctx context.Context, id int64, entryDate time.Time, description string) (*models.CaseHistoryEntry, error) {
	description = SanitizeText(description)
	if description == "" {
		return nil, fmt.Errorf("%w: history description is required", ErrInvalidInput)
	}

	entry := models.CaseHistoryEntry{
		CaseID:      id,
		Date:        models.FormatDate(entryDate),
		Description: description,
	}

	if _, err := s.transition(ctx, id, "register_history", func(c *models.Case) error {
		c.LastUpdate = entry.Date
		return nil
	}); err != nil {
		return nil, err
	}

	if _, err := s.history.Append(ctx, entry.ToRow()); err != nil {
		return nil, err
	}
	return &entry, nil
}

// History returns the entries recorded for a case, in table order.
func (s *CaseService) History(ctx context.Context, id int64) ([]models.CaseHistoryEntry, error) {
	rows, err := s.history.Rows(ctx)
	if err != nil {
		return nil, err
	}
	entries := []models.CaseHistoryEntry{}
	for _, r := range rows {
		if sameKey(r.Get(models.HistoryColCaseID), id) {
			entries = append(entries, models.CaseHistoryEntryFromRow(r))
		}
	}
	return entries, nil
}

// Events returns the schedule events whose soft reference points at the case.
func (s *CaseService) Events(ctx context.Context, id int64) ([]models.ScheduleEvent, error) {
	rows, err := s.events.Rows(ctx)
	if err != nil {
		return nil, err
	}
	events := []models.ScheduleEvent{}
	for i, r := range rows {
		e := models.ScheduleEventFromRow(i, r)
		if linked, ok := e.LinkedCaseID(); ok && linked == id {
			events = append(events, e)
		}
	}
	return events, nil
}

func (s *CaseService) transition(ctx context.Context, id int64, action string, apply func(*models.Case) error) (*models.Case, error) {
	var updated models.Case
	_, err := s.cases.Update(ctx, id, func(row tablestore.Row) (tablestore.Row, error) {
		c := models.CaseFromRow(row)
		if err := apply(&c); err != nil {
			return nil, err
		}
		updated = c
		return row.Merge(tablestore.Row{
			models.CaseColStatus:     c.Status,
			models.CaseColLastUpdate: c.LastUpdate,
		}), nil
	})
	if err != nil {
		return nil, s.wrapNotFound(err, id)
	}

	s.logger.Info("case updated",
		zap.String("action", action),
		zap.Int64("case_id", id),
		zap.String("status", updated.Status),
		zap.String("last_update", updated.LastUpdate),
	)
	return &updated, nil
}

func (s *CaseService) wrapNotFound(err error, id int64) error {
	if IsNotFound(err) {
		return fmt.Errorf("case %d: %w", id, ErrCaseNotFound)
	}
	return err
}
