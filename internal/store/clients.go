package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"coachtrack/internal/model"
)

// Clients lists one user's contacts, optionally filtered by client type.
func (s *Store) Clients(ctx context.Context, ownerID, clientType string) ([]model.Client, error) {
	q := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if clientType != "" {
		q = q.Where("client_type = ?", clientType)
	}
	var clients []model.Client
	if err := q.Order("created_at").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	return clients, nil
}

func (s *Store) ClientByID(ctx context.Context, ownerID, id string) (*model.Client, error) {
	var c model.Client
	err := s.db.WithContext(ctx).
		Where("client_id = ? AND owner_id = ?", id, ownerID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query client: %w", err)
	}
	return &c, nil
}

func (s *Store) CreateClient(ctx context.Context, c *model.Client) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// UpdateClient applies a partial column update. The owner filter doubles as
// the access check: editing someone else's contact reports ErrNotFound.
func (s *Store) UpdateClient(ctx context.Context, ownerID, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	res := s.db.WithContext(ctx).Model(&model.Client{}).
		Where("client_id = ? AND owner_id = ?", id, ownerID).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update client: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteClient(ctx context.Context, ownerID, id string) error {
	res := s.db.WithContext(ctx).
		Where("client_id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.Client{})
	if res.Error != nil {
		return fmt.Errorf("delete client: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
