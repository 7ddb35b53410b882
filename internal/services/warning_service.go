package services

import (
	"fmt"

	"chatquestbot/internal/clock"
	"chatquestbot/internal/models"
	"chatquestbot/internal/repository"
)

// WarningService issues warnings and applies the ban threshold. There is no
// unban operation at this layer; clearing a ban is a manual data edit.
type WarningService struct {
	warnings    repository.WarningRepository
	clock       clock.Clock
	maxWarnings int
}

// NewWarningService creates a new WarningService
func NewWarningService(warnings repository.WarningRepository, clk clock.Clock, maxWarnings int) *WarningService {
	return &WarningService{warnings: warnings, clock: clk, maxWarnings: maxWarnings}
}

// Issue records one warning against the user and returns their updated
// state. Reaching the threshold bans the user within the same transaction,
// so warnings_count >= threshold implies is_banned after every call.
func (s *WarningService) Issue(userID, issuedBy int64, reason string) (*models.User, error) {
	warning := &models.Warning{
		UserID:   userID,
		IssuedBy: issuedBy,
		Reason:   reason,
		IssuedAt: s.clock.Now(),
	}
	user, err := s.warnings.Add(warning, s.maxWarnings)
	if err != nil {
		return nil, fmt.Errorf("failed to issue warning: %w", err)
	}
	return user, nil
}

// History returns a user's warnings, newest first.
func (s *WarningService) History(userID int64) ([]models.Warning, error) {
	warnings, err := s.warnings.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list warnings: %w", err)
	}
	return warnings, nil
}

// MaxWarnings returns the ban threshold.
func (s *WarningService) MaxWarnings() int {
	return s.maxWarnings
}
