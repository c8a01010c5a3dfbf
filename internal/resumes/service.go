package resumes

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Service applies ownership rules on top of Repo.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Save stores a resume document for userID. The body must be a JSON object.
func (s *Service) Save(ctx context.Context, userID string, body json.RawMessage, isPublic bool) (Resume, error) {
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "{") || !json.Valid([]byte(trimmed)) {
		return Resume{}, ErrInvalidInput
	}
	resume := Resume{
		ID:       uuid.NewString(),
		UserID:   userID,
		Resume:   json.RawMessage(trimmed),
		IsPublic: isPublic,
	}
	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, err
	}
	return s.Repo.Get(ctx, resume.ID)
}

func (s *Service) List(ctx context.Context, userID string) ([]Resume, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Get returns a resume visible to callerID: any public resume, or a
// private one they own. Everything else is ErrNotFound.
func (s *Service) Get(ctx context.Context, id, callerID string) (Resume, error) {
	if !validID(id) {
		return Resume{}, ErrNotFound
	}
	resume, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	if resume.IsPublic {
		return resume, nil
	}
	if callerID == "" || resume.UserID != callerID {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

// Delete detaches a resume from its owner. The row stays for public links
// and the aggregate count.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	return s.Repo.ClearOwner(ctx, id, userID)
}

// TogglePublic sets visibility, or flips it when isPublic is nil.
func (s *Service) TogglePublic(ctx context.Context, id, userID string, isPublic *bool) (Resume, error) {
	resume, err := s.owned(ctx, id, userID)
	if err != nil {
		return Resume{}, err
	}
	next := !resume.IsPublic
	if isPublic != nil {
		next = *isPublic
	}
	if err := s.Repo.SetPublic(ctx, id, userID, next); err != nil {
		return Resume{}, err
	}
	resume.IsPublic = next
	return resume, nil
}

// ReassignAll moves every resume of fromUser to toUser.
func (s *Service) ReassignAll(ctx context.Context, fromUser, toUser string) (int, error) {
	if fromUser == "" || toUser == "" {
		return 0, errors.New("both users are required")
	}
	return s.Repo.ReassignOwner(ctx, fromUser, toUser)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.Repo.Count(ctx)
}

func (s *Service) owned(ctx context.Context, id, userID string) (Resume, error) {
	if strings.TrimSpace(id) == "" {
		return Resume{}, ErrInvalidInput
	}
	if !validID(id) {
		return Resume{}, ErrNotFound
	}
	resume, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	if resume.UserID != userID {
		return Resume{}, ErrForbidden
	}
	return resume, nil
}

// validID reports whether id can name a row; ids are UUIDs.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
