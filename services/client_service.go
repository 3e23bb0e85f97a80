package services

import (
	"context"
	"fmt"
	"strings"

	"juris_control_go/models"
	"juris_control_go/services/tablestore"

	"go.uber.org/zap"
)

// ClientInput holds the client intake form.
type ClientInput struct {
	Name    string
	TaxID   string
	Email   string
	Phone   string
	Address string
}

type ClientService struct {
	clients *TableRepository
	logger  *zap.Logger
}

func NewClientService(store tablestore.Store, logger *zap.Logger) *ClientService {
	return &ClientService{
		clients: NewTableRepository(store, tablestore.TableClients, models.ClientColumns, models.ClientColID),
		logger:  logger,
	}
}

// Create registers a new client with the next sequential id.
func (s *ClientService) Create(ctx context.Context, in ClientInput) (*models.Client, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}

	id, err := s.clients.NextID(ctx)
	if err != nil {
		return nil, err
	}

	client := models.Client{
		ID:      id,
		Name:    name,
		TaxID:   strings.TrimSpace(in.TaxID),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Address: SanitizeText(in.Address),
	}

	if err := s.clients.Upsert(ctx, client.ID, client.ToRow()); err != nil {
		return nil, err
	}

	s.logger.Info("client created", zap.Int64("client_id", client.ID))
	return &client, nil
}

// List returns every client in table order.
func (s *ClientService) List(ctx context.Context) ([]models.Client, error) {
	rows, err := s.clients.Rows(ctx)
	if err != nil {
		return nil, err
	}

	clients := make([]models.Client, 0, len(rows))
	for _, r := range rows {
		clients = append(clients, models.ClientFromRow(r))
	}
	return clients, nil
}

// Get returns a client by id.
func (s *ClientService) Get(ctx context.Context, id int64) (*models.Client, error) {
	row, _, err := s.clients.Find(ctx, id)
	if err != nil {
		return nil, s.wrapNotFound(err, id)
	}
	client := models.ClientFromRow(row)
	return &client, nil
}

// Resolve finds the client a case form refers to: by id when the reference
// is numeric or a selector label, otherwise by name (case-insensitive).
func (s *ClientService) Resolve(ctx context.Context, reference string) (*models.Client, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" || reference == NoneSelected {
		return nil, fmt.Errorf("%w: client is required", ErrInvalidInput)
	}

	clients, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	if id, ok := models.ParseID(reference); ok {
		return findClientByID(clients, id)
	}
	if id, err := ParseLabelID(reference); err == nil {
		return findClientByID(clients, id)
	}

	for i := range clients {
		if strings.EqualFold(clients[i].Name, reference) {
			return &clients[i], nil
		}
	}
	return nil, fmt.Errorf("client %q: %w", reference, ErrClientNotFound)
}

// Count returns the number of clients.
func (s *ClientService) Count(ctx context.Context) (int, error) {
	rows, err := s.clients.Rows(ctx)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Options returns selector references for every client.
func (s *ClientService) Options(ctx context.Context) ([]Ref, error) {
	clients, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	refs := make([]Ref, 0, len(clients))
	for _, c := range clients {
		refs = append(refs, ClientRef(c))
	}
	return refs, nil
}

func (s *ClientService) wrapNotFound(err error, id int64) error {
	if IsNotFound(err) {
		return fmt.Errorf("client %d: %w", id, ErrClientNotFound)
	}
	return err
}

func findClientByID(clients []models.Client, id int64) (*models.Client, error) {
	for i := range clients {
		if clients[i].ID == id {
			return &clients[i], nil
		}
	}
	return nil, fmt.Errorf("client %d: %w", id, ErrClientNotFound)
}
