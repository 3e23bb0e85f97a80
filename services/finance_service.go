package services

import (
	"context"
	"fmt"
	"math"

	"juris_control_go/models"
	"juris_control_go/services/tablestore"

	"go.uber.org/zap"
)

// FinanceService launches charges as installments and settles them.
type FinanceService struct {
	installments *TableRepository
	logger       *zap.Logger
}

func NewFinanceService(store tablestore.Store, logger *zap.Logger) *FinanceService {
	return &FinanceService{
		installments: NewTableRepository(store, tablestore.TableInstallments, models.InstallmentColumns, models.InstallmentColID),
		logger:       logger,
	}
}

// Launch splits the charge and appends the installments in a single replace.
func (s *FinanceService) Launch(ctx context.Context, charge Charge) ([]models.Installment, error) {
	if math.IsNaN(charge.Total) || math.IsInf(charge.Total, 0) || charge.Total <= 0 {
		return nil, fmt.Errorf("%w: charge total must be a positive amount", ErrInvalidInput)
	}
	charge.Description = SanitizeText(charge.Description)
	if charge.Description == "" {
		return nil, fmt.Errorf("%w: charge description is required", ErrInvalidInput)
	}

	baseID, err := s.installments.NextID(ctx)
	if err != nil {
		return nil, err
	}

	generated, err := GenerateInstallments(baseID, charge)
	if err != nil {
		return nil, err
	}
	rows := make([]tablestore.Row, 0, len(generated))
	for _, inst := range generated {
		rows = append(rows, inst.ToRow())
	}
	if _, err := s.installments.Append(ctx, rows...); err != nil {
		return nil, err
	}

	s.logger.Info("charge launched",
		zap.String("description", charge.Description),
		zap.Float64("total", charge.Total),
		zap.Int("installments", len(generated)),
		zap.Int64("first_id", generated[0].ID),
	)
	return generated, nil
}

// List returns every installment. Rows whose amount cannot be read are
// skipped.
func (s *FinanceService) List(ctx context.Context) ([]models.Installment, error) {
	rows, err := s.installments.Rows(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Installment, 0, len(rows))
	for _, r := range rows {
		inst, ok := models.InstallmentFromRow(r)
		if !ok {
			s.logger.Warn("skipping installment with unreadable amount",
				zap.String("id", r.Get(models.InstallmentColID)),
				zap.String("amount", r.Get(models.InstallmentColAmount)),
			)
			continue
		}
		out = append(out, inst)
	}
	return out, nil
}

// Open returns the unpaid installments.
func (s *FinanceService) Open(ctx context.Context) ([]models.Installment, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	open := []models.Installment{}
	for _, inst := range all {
		if !inst.Paid {
			open = append(open, inst)
		}
	}
	return open, nil
}

// Receivable sums the amounts of unpaid installments.
func (s *FinanceService) Receivable(ctx context.Context) (float64, error) {
	open, err := s.Open(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, inst := range open {
		total += inst.Amount
	}
	return total, nil
}

// Settle marks the first unpaid installment with the given id as paid. Only
// its paid cell changes; every other row is written back as read. An unknown
// or already-paid id returns ErrInstallmentNotFound and writes nothing.
func (s *FinanceService) Settle(ctx context.Context, id int64) (*models.Installment, error) {
	open := func(r tablestore.Row) bool {
		return sameKey(r.Get(models.InstallmentColID), id) && !models.ParseFlag(r.Get(models.InstallmentColPaid))
	}
	row, err := s.installments.UpdateFirst(ctx, open, func(r tablestore.Row) (tablestore.Row, error) {
		return r.Merge(tablestore.Row{models.InstallmentColPaid: models.FormatFlag(true)}), nil
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("installment %d: %w", id, ErrInstallmentNotFound)
		}
		return nil, err
	}

	settled, _ := models.InstallmentFromRow(row)
	s.logger.Info("installment settled", zap.Int64("installment_id", id))
	return &settled, nil
}

// Cancel removes an unpaid installment from the ledger. Paid installments
// are kept; cancelling one returns ErrInvalidInput.
func (s *FinanceService) Cancel(ctx context.Context, id int64) (*models.Installment, error) {
	row, _, err := s.installments.Find(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("installment %d: %w", id, ErrInstallmentNotFound)
		}
		return nil, err
	}
	inst, _ := models.InstallmentFromRow(row)
	if inst.Paid {
		return nil, fmt.Errorf("%w: installment %d is already paid", ErrInvalidInput, id)
	}

	if err := s.installments.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("installment cancelled",
		zap.Int64("installment_id", id),
		zap.String("description", inst.Description),
	)
	return &inst, nil
}
