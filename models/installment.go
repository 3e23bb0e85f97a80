package models

import "juris_control_go/services/tablestore"

// Installment column names
const (
	InstallmentColID          = "id"
	InstallmentColDescription = "description"
	InstallmentColAmount      = "amount"
	InstallmentColDueDate     = "due_date"
	InstallmentColPaid        = "paid"
)

// InstallmentColumns is the header order of the financial_installments table.
var InstallmentColumns = []string{
	InstallmentColID,
	InstallmentColDescription,
	InstallmentColAmount,
	InstallmentColDueDate,
	InstallmentColPaid,
}

// Installment is one dated part of a financial charge.
type Installment struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	DueDate     string  `json:"due_date"`
	Paid        bool    `json:"paid"`
}

// InstallmentFromRow decodes an installment. ok is false when the amount
// cell cannot be read as a number; Amount is 0 in that case.
func InstallmentFromRow(r tablestore.Row) (Installment, bool) {
	id, _ := ParseID(r.Get(InstallmentColID))
	amount, ok := ParseAmount(r.Get(InstallmentColAmount))
	return Installment{
		ID:          id,
		Description: r.Get(InstallmentColDescription),
		Amount:      amount,
		DueDate:     r.Get(InstallmentColDueDate),
		Paid:        ParseFlag(r.Get(InstallmentColPaid)),
	}, ok
}

func (i Installment) ToRow() tablestore.Row {
	return tablestore.Row{
		InstallmentColID:          FormatID(i.ID),
		InstallmentColDescription: i.Description,
		InstallmentColAmount:      FormatAmount(i.Amount),
		InstallmentColDueDate:     i.DueDate,
		InstallmentColPaid:        FormatFlag(i.Paid),
	}
}
