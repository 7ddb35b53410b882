package services

import (
	"fmt"

	"chatquestbot/internal/clock"
	"chatquestbot/internal/models"
	"chatquestbot/internal/repository"
)

// PointsService is the write and read surface of the points ledger. It
// stamps every entry with the ISO week of the injected clock; totals are
// always recomputed from the ledger.
type PointsService struct {
	points repository.PointsRepository
	clock  clock.Clock
}

// NewPointsService creates a new PointsService
func NewPointsService(points repository.PointsRepository, clk clock.Clock) *PointsService {
	return &PointsService{points: points, clock: clk}
}

// CurrentWeek returns the ISO week/year pair of the service clock.
func (s *PointsService) CurrentWeek() (week, year int) {
	return clock.WeekYear(s.clock.Now())
}

// AddPoints appends one ledger entry attributed to the current week. Caps
// are the callers' business; the ledger itself accepts any amount.
func (s *PointsService) AddPoints(userID int64, points int, reason models.PointReason, referenceID *uint64) error {
	week, year := s.CurrentWeek()
	entry := &models.PointEntry{
		UserID:      userID,
		Points:      points,
		Reason:      reason,
		ReferenceID: referenceID,
		WeekNumber:  week,
		Year:        year,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.points.Append(entry); err != nil {
		return fmt.Errorf("failed to append point entry: %w", err)
	}
	return nil
}

// UserPoints returns the user's total for the current week.
func (s *PointsService) UserPoints(userID int64) (int, error) {
	week, year := s.CurrentWeek()
	return s.UserPointsForWeek(userID, week, year)
}

// UserPointsForWeek returns the user's total for an explicit week scope.
func (s *PointsService) UserPointsForWeek(userID int64, week, year int) (int, error) {
	total, err := s.points.SumForUser(userID, week, year)
	if err != nil {
		return 0, fmt.Errorf("failed to sum points: %w", err)
	}
	return total, nil
}

// Leaderboard returns the current week's public ranking.
func (s *PointsService) Leaderboard(limit int) ([]repository.LeaderboardRow, error) {
	week, year := s.CurrentWeek()
	return s.LeaderboardForWeek(week, year, limit)
}

// LeaderboardForWeek returns the public ranking for an explicit week scope.
func (s *PointsService) LeaderboardForWeek(week, year, limit int) ([]repository.LeaderboardRow, error) {
	rows, err := s.points.Leaderboard(week, year, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return rows, nil
}

// HasAnswerAward reports whether the answer's approval has already been
// paid out.
func (s *PointsService) HasAnswerAward(answerID uint64) (bool, error) {
	return s.points.HasAnswerAward(answerID)
}
