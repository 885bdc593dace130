package receipt

import (
	"fmt"

	"github.com/google/uuid"
)

// Logger is the logging collaborator used by the service and server.
// *slog.Logger satisfies it.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Service handles receipt operations
type Service struct {
	store  *Store
	logger Logger
}

// NewService creates a new Service backed by store
func NewService(store *Store, logger Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Process validates a raw receipt document, scores it and stores it.
// It returns the new receipt id.
func (s *Service) Process(raw []byte) (string, error) {
	r, err := Validate(raw)
	if err != nil {
		return "", err
	}

	id, err := s.store.Insert(r)
	if err != nil {
		return "", fmt.Errorf("storing receipt: %w", err)
	}

	s.logger.Info("Added receipt", "id", id, "retailer", r.Retailer, "items", len(r.Items))
	return id, nil
}

// Points returns the points awarded to the receipt with the given id
func (s *Service) Points(id string) (int64, error) {
	stored, err := s.Receipt(id)
	if err != nil {
		return 0, err
	}
	return stored.Points, nil
}

// Receipt retrieves a stored receipt by id
func (s *Service) Receipt(id string) (StoredReceipt, error) {
	key, err := parseID(id)
	if err != nil {
		return StoredReceipt{}, err
	}

	stored, ok := s.store.Get(key)
	if !ok {
		return StoredReceipt{}, fmt.Errorf("getting receipt %s: %w", key, ErrNotFound)
	}
	return stored, nil
}

// Delete removes a stored receipt
func (s *Service) Delete(id string) error {
	key, err := parseID(id)
	if err != nil {
		return err
	}

	if !s.store.Delete(key) {
		return fmt.Errorf("deleting receipt %s: %w", key, ErrNotFound)
	}

	s.logger.Info("Deleted receipt", "id", key)
	return nil
}

// parseID checks that id is a v4 UUID and returns its canonical form
func parseID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", id, ErrInvalidID)
	}
	if u.Version() != 4 {
		return "", fmt.Errorf("%q is not a v4 UUID: %w", id, ErrInvalidID)
	}
	return u.String(), nil
}
