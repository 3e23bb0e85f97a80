package services

import (
	"fmt"
	"strings"
	"time"

	"juris_control_go/models"
)

const (
	MaxInstallments = 12
	// InstallmentIntervalDays spaces due dates. Calendar months are not
	// used, so due days drift across long schedules.
	InstallmentIntervalDays = 30
)

// Charge describes an amount to be split into installments.
type Charge struct {
	Description string
	Total       float64
	Count       int
	FirstDue    time.Time
}

// GenerateInstallments splits a charge into Count equal, unpaid installments
// with sequential ids starting at baseID. Amounts are total/Count with no
// remainder reconciliation.
func GenerateInstallments(baseID int64, charge Charge) ([]models.Installment, error) {
	if charge.Count < 1 || charge.Count > MaxInstallments {
		return nil, fmt.Errorf("%w: installment count must be between 1 and %d, got %d",
			ErrInvalidInput, MaxInstallments, charge.Count)
	}

	description := strings.TrimSpace(charge.Description)
	amount := charge.Total / float64(charge.Count)
	first := models.DateOnly(charge.FirstDue)

	out := make([]models.Installment, 0, charge.Count)
	for i := 0; i < charge.Count; i++ {
		out = append(out, models.Installment{
			ID:          baseID + int64(i),
			Description: fmt.Sprintf("%s (%d/%d)", description, i+1, charge.Count),
			Amount:      amount,
			DueDate:     models.FormatDate(first.AddDate(0, 0, InstallmentIntervalDays*i)),
			Paid:        false,
		})
	}
	return out, nil
}
