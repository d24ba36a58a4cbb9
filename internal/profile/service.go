package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avetrov/readmentor/internal/store"
)

// Service loads and saves profiles through the store.
type Service struct {
	store *store.Store
}

// NewService creates a profile service backed by st.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// GetOrCreate loads the profile for studentID, creating an empty one on
// first access. The new profile is not persisted until Save.
func (s *Service) GetOrCreate(ctx context.Context, studentID string) (*Profile, error) {
	data, ok, err := s.store.LoadProfile(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return New(studentID), nil
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", studentID, err)
	}
	if p.Skills == nil {
		p.Skills = make(map[string]SkillStat)
	}
	return &p, nil
}

// Save persists the profile.
func (s *Service) Save(ctx context.Context, p *Profile) error {
	p.UpdatedAt = time.Now()
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile %s: %w", p.StudentID, err)
	}
	return s.store.SaveProfile(ctx, p.StudentID, data)
}

// RecordAnswer applies one evaluated answer to the student's profile and
// persists it.
func (s *Service) RecordAnswer(ctx context.Context, studentID, skill string, correct bool, timeTaken time.Duration) error {
	p, err := s.GetOrCreate(ctx, studentID)
	if err != nil {
		return err
	}
	p.UpdateSkill(skill, correct, timeTaken)
	return s.Save(ctx, p)
}

// Reset deletes the student's profile.
func (s *Service) Reset(ctx context.Context, studentID string) error {
	return s.store.ResetProfile(ctx, studentID)
}
