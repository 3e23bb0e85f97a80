package models

import (
	"time"

	"juris_control_go/services/tablestore"
)

// Case status constants
const (
	CaseStatusActive    = "Active"
	CaseStatusSuspended = "Suspended"
	CaseStatusArchived  = "Archived"
	CaseStatusOnAppeal  = "OnAppeal"
)

// Litigant role constants (role of the client in the case)
const (
	CaseRolePlaintiff  = "Plaintiff"
	CaseRoleDefendant  = "Defendant"
	CaseRoleThirdParty = "ThirdParty"
)

// Hearing mode constants
const (
	HearingModeInPerson = "InPerson"
	HearingModeVirtual  = "Virtual"
	HearingModeHybrid   = "Hybrid"
)

// Case column names
const (
	CaseColID          = "id"
	CaseColNumber      = "number"
	CaseColClient      = "client"
	CaseColClientID    = "client_id"
	CaseColSubject     = "subject"
	CaseColCourt       = "court"
	CaseColRole        = "role"
	CaseColHearingMode = "hearing_mode"
	CaseColStatus      = "status"
	CaseColLastUpdate  = "last_update"
)

// CaseColumns is the header order of the cases table.
var CaseColumns = []string{
	CaseColID,
	CaseColNumber,
	CaseColClient,
	CaseColClientID,
	CaseColSubject,
	CaseColCourt,
	CaseColRole,
	CaseColHearingMode,
	CaseColStatus,
	CaseColLastUpdate,
}

// Case is a legal case handled by the practice.
type Case struct {
	ID          int64  `json:"id"`
	Number      string `json:"number"`
	Client      string `json:"client"`
	ClientID    int64  `json:"client_id,omitempty"`
	Subject     string `json:"subject"`
	Court       string `json:"court"`
	Role        string `json:"role"`
	HearingMode string `json:"hearing_mode"`
	Status      string `json:"status"`
	// LastUpdate is kept as stored (day-first text) so untouched rows are
	// written back unchanged; see LastUpdated for the parsed value.
	LastUpdate string `json:"last_update"`
}

// CaseFromRow decodes a cases row.
func CaseFromRow(r tablestore.Row) Case {
	id, _ := ParseID(r.Get(CaseColID))
	clientID, _ := ParseID(r.Get(CaseColClientID))
	return Case{
		ID:          id,
		Number:      r.Get(CaseColNumber),
		Client:      r.Get(CaseColClient),
		ClientID:    clientID,
		Subject:     r.Get(CaseColSubject),
		Court:       r.Get(CaseColCourt),
		Role:        r.Get(CaseColRole),
		HearingMode: r.Get(CaseColHearingMode),
		Status:      r.Get(CaseColStatus),
		LastUpdate:  r.Get(CaseColLastUpdate),
	}
}

// ToRow encodes the case for the cases table.
func (c Case) ToRow() tablestore.Row {
	clientID := ""
	if c.ClientID > 0 {
		clientID = FormatID(c.ClientID)
	}
	return tablestore.Row{
		CaseColID:          FormatID(c.ID),
		CaseColNumber:      c.Number,
		CaseColClient:      c.Client,
		CaseColClientID:    clientID,
		CaseColSubject:     c.Subject,
		CaseColCourt:       c.Court,
		CaseColRole:        c.Role,
		CaseColHearingMode: c.HearingMode,
		CaseColStatus:      c.Status,
		CaseColLastUpdate:  c.LastUpdate,
	}
}

// LastUpdated parses the last-update date. ok is false when the stored value
// is blank or unparsable.
func (c *Case) LastUpdated() (time.Time, bool) {
	return ParseDayFirst(c.LastUpdate)
}

// IsActive checks if the case is active
func (c *Case) IsActive() bool {
	return c.Status == CaseStatusActive
}

// IsArchived checks if the case is archived
func (c *Case) IsArchived() bool {
	return c.Status == CaseStatusArchived
}

// IsValidCaseStatus checks if the status is one of the four case statuses
func IsValidCaseStatus(status string) bool {
	switch status {
	case CaseStatusActive, CaseStatusSuspended, CaseStatusArchived, CaseStatusOnAppeal:
		return true
	}
	return false
}

// GetCaseStatusDisplayName returns human-readable status name
func GetCaseStatusDisplayName(status string) string {
	names := map[string]string{
		CaseStatusActive:    "Active",
		CaseStatusSuspended: "Suspended",
		CaseStatusArchived:  "Archived",
		CaseStatusOnAppeal:  "On Appeal",
	}
	if name, ok := names[status]; ok {
		return name
	}
	return status
}
