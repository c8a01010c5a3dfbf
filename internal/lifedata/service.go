// Package lifedata manages the per-user profile that accumulates across
// sessions: experiences, education, certifications, skills and hobbies.
package lifedata

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/sync/errgroup"

	"resume-builder/internal/generation"
)

type Service struct {
	Experiences    *Collection[Experience, *Experience]
	Education      *Collection[Education, *Education]
	Certifications *Collection[Certification, *Certification]
	Skills         *Tags
	Hobbies        *Tags
}

// NewMemoryService builds a Service on in-memory stores.
func NewMemoryService() *Service {
	return &Service{
		Experiences:    NewCollection[Experience](NewMemoryStore[Experience]()),
		Education:      NewCollection[Education](NewMemoryStore[Education]()),
		Certifications: NewCollection[Certification](NewMemoryStore[Certification]()),
		Skills:         NewTags(NewMemoryTagStore()),
		Hobbies:        NewTags(NewMemoryTagStore()),
	}
}

// NewPGService builds a Service on Postgres.
func NewPGService(db *sql.DB) *Service {
	return &Service{
		Experiences:    NewCollection[Experience](NewPGStore[Experience](db, ExperiencesTable)),
		Education:      NewCollection[Education](NewPGStore[Education](db, EducationTable)),
		Certifications: NewCollection[Certification](NewPGStore[Certification](db, CertificationsTable)),
		Skills:         NewTags(&PGTagStore{DB: db, Table: "user_skills"}),
		Hobbies:        NewTags(&PGTagStore{DB: db, Table: "user_hobbies"}),
	}
}

// AddExtracted stores experiences recovered from free text.
func (s *Service) AddExtracted(ctx context.Context, userID string, items []generation.ExtractedExperience) error {
	_, err := s.Experiences.CreateMany(ctx, userID, fromExtracted(items))
	return err
}

func fromExtracted(items []generation.ExtractedExperience) []Experience {
	out := make([]Experience, 0, len(items))
	for _, item := range items {
		if item.Title == "" && item.Company == "" {
			continue
		}
		out = append(out, Experience{
			Title:       truncate(item.Title, 200),
			Company:     truncate(item.Company, 200),
			Period:      truncate(item.Period, 100),
			Description: truncate(item.Description, 4000),
		})
	}
	return out
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// Profile loads every collection of userID concurrently.
func (s *Service) Profile(ctx context.Context, userID string) (Profile, error) {
	var p Profile
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		p.Experiences, err = s.Experiences.List(gCtx, userID)
		return err
	})
	g.Go(func() (err error) {
		p.Education, err = s.Education.List(gCtx, userID)
		return err
	})
	g.Go(func() (err error) {
		p.Certifications, err = s.Certifications.List(gCtx, userID)
		return err
	})
	g.Go(func() (err error) {
		p.Skills, err = s.Skills.List(gCtx, userID)
		return err
	})
	g.Go(func() (err error) {
		p.Hobbies, err = s.Hobbies.List(gCtx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// DeleteAll removes every life-data row of userID.
func (s *Service) DeleteAll(ctx context.Context, userID string) error {
	deleters := map[string]func(context.Context, string) (int, error){
		"experiences":    s.Experiences.DeleteAll,
		"education":      s.Education.DeleteAll,
		"certifications": s.Certifications.DeleteAll,
		"skills":         s.Skills.DeleteAll,
		"hobbies":        s.Hobbies.DeleteAll,
	}
	g, gCtx := errgroup.WithContext(ctx)
	for name, del := range deleters {
		g.Go(func() error {
			if _, err := del(gCtx, userID); err != nil {
				return fmt.Errorf("delete %s: %w", name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

var _ generation.ExperienceSink = (*Service)(nil)
