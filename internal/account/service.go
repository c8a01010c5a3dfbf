package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/users"
)

// Directory is the administrative side of the identity provider.
type Directory interface {
	AnonymousUser(ctx context.Context) (users.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// ResumeOwners moves resume ownership between users.
type ResumeOwners interface {
	ReassignAll(ctx context.Context, fromUser, toUser string) (int, error)
}

// LifeData erases every life-data collection of a user.
type LifeData interface {
	DeleteAll(ctx context.Context, userID string) error
}

type Service struct {
	Directory Directory
	Resumes   ResumeOwners
	LifeData  LifeData
}

// DeleteResult reports what account deletion touched.
type DeleteResult struct {
	AnonymizedResumes int `json:"anonymizedResumes"`
}

func NewService(directory Directory, resumes ResumeOwners, lifeData LifeData) *Service {
	return &Service{Directory: directory, Resumes: resumes, LifeData: lifeData}
}

// DeleteAccount hands the user's resumes to the anonymous sentinel, erases
// their life data and then removes the account itself. The account is only
// removed once both cleanups succeeded.
func (s *Service) DeleteAccount(ctx context.Context, userID string) (DeleteResult, error) {
	if strings.TrimSpace(userID) == "" {
		return DeleteResult{}, errors.New("userID is required")
	}
	anon, err := s.Directory.AnonymousUser(ctx)
	if err != nil {
		return DeleteResult{}, err
	}
	if anon.ID == userID {
		return DeleteResult{}, errors.New("cannot delete the anonymous user")
	}

	var moved int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.Resumes.ReassignAll(gctx, userID, anon.ID)
		if err != nil {
			return fmt.Errorf("anonymize resumes: %w", err)
		}
		moved = n
		return nil
	})
	g.Go(func() error {
		if err := s.LifeData.DeleteAll(gctx, userID); err != nil {
			return fmt.Errorf("delete life data: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return DeleteResult{}, err
	}

	if err := s.Directory.DeleteUser(ctx, userID); err != nil {
		return DeleteResult{}, fmt.Errorf("delete user: %w", err)
	}
	telemetry.Info("account.deleted", map[string]any{
		"user_id":            userID,
		"anonymized_resumes": moved,
	})
	return DeleteResult{AnonymizedResumes: moved}, nil
}
