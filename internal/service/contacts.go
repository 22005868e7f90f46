package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"coachtrack/internal/model"
)

// ContactsBackend is the slice of the backend the contact book reads and
// writes.
type ContactsBackend interface {
	Clients(ctx context.Context, ownerID, clientType string) ([]model.Client, error)
	ClientByID(ctx context.Context, ownerID, id string) (*model.Client, error)
	CreateClient(ctx context.Context, c *model.Client) error
	UpdateClient(ctx context.Context, ownerID, id string, updates map[string]interface{}) error
	DeleteClient(ctx context.Context, ownerID, id string) error
}

// ContactsService manages a user's own contacts and their pipeline tagging.
// Every operation is scoped to the calling user; contacts are not shared.
type ContactsService struct {
	backend ContactsBackend
}

func NewContactsService(backend ContactsBackend) *ContactsService {
	return &ContactsService{backend: backend}
}

func (s *ContactsService) List(ctx context.Context, userID, clientType string) ([]model.Client, error) {
	return s.backend.Clients(ctx, userID, clientType)
}

func (s *ContactsService) Create(ctx context.Context, userID string, req model.CreateContactRequest) (*model.Client, error) {
	c := &model.Client{
		ID:              uuid.NewString(),
		OwnerID:         userID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ClientType:      req.ClientType,
		Temperature:     req.Temperature,
		PipelineNote:    req.PipelineNote,
		PipelineRevenue: req.PipelineRevenue,
		CreatedAt:       time.Now(),
	}
	if err := s.backend.CreateClient(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update applies the non-nil fields of a partial edit.
func (s *ContactsService) Update(ctx context.Context, userID, id string, req model.UpdateContactRequest) (*model.Client, error) {
	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Temperature != nil {
		updates["temperature"] = *req.Temperature
	}
	if req.PipelineNote != nil {
		updates["pipeline_note"] = *req.PipelineNote
	}
	if req.PipelineRevenue != nil {
		if *req.PipelineRevenue < 0 {
			return nil, fmt.Errorf("pipeline revenue must not be negative")
		}
		updates["pipeline_revenue"] = *req.PipelineRevenue
	}
	if err := s.backend.UpdateClient(ctx, userID, id, updates); err != nil {
		return nil, err
	}
	return s.backend.ClientByID(ctx, userID, id)
}

// SetPipeline promotes a contact into the pipeline or drops it back to the
// prospect pool. Demotion keeps the contact and its revenue figure; only the
// tag the dashboards key on changes.
func (s *ContactsService) SetPipeline(ctx context.Context, userID, id string, inPipeline bool) (*model.Client, error) {
	clientType := model.ClientTypeProspect
	if inPipeline {
		clientType = model.ClientTypePipeline
	}
	err := s.backend.UpdateClient(ctx, userID, id, map[string]interface{}{"client_type": clientType})
	if err != nil {
		return nil, err
	}
	return s.backend.ClientByID(ctx, userID, id)
}

func (s *ContactsService) Delete(ctx context.Context, userID, id string) error {
	return s.backend.DeleteClient(ctx, userID, id)
}
