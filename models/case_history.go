package models

import "juris_control_go/services/tablestore"

// Case history column names
const (
	HistoryColCaseID      = "case_id"
	HistoryColDate        = "date"
	HistoryColDescription = "description"
)

// CaseHistoryColumns is the header order of the case_history table.
var CaseHistoryColumns = []string{
	HistoryColCaseID,
	HistoryColDate,
	HistoryColDescription,
}

// CaseHistoryEntry records one dated activity on a case. Entries are
// append-only.
type CaseHistoryEntry struct {
	CaseID      int64  `json:"case_id"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

func CaseHistoryEntryFromRow(r tablestore.Row) CaseHistoryEntry {
	caseID, _ := ParseID(r.Get(HistoryColCaseID))
	return CaseHistoryEntry{
		CaseID:      caseID,
		Date:        r.Get(HistoryColDate),
		Description: r.Get(HistoryColDescription),
	}
}

func (e CaseHistoryEntry) ToRow() tablestore.Row {
	return tablestore.Row{
		HistoryColCaseID:      FormatID(e.CaseID),
		HistoryColDate:        e.Date,
		HistoryColDescription: e.Description,
	}
}
