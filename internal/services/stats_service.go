package services

import (
	"fmt"

	"chatquestbot/internal/clock"
	"chatquestbot/internal/repository"
)

// StatsService computes the operator stats view: every known user with
// their weekly total, banned and zero-point users included.
type StatsService struct {
	points repository.PointsRepository
	clock  clock.Clock
}

// NewStatsService creates a new StatsService
func NewStatsService(points repository.PointsRepository, clk clock.Clock) *StatsService {
	return &StatsService{points: points, clock: clk}
}

// AllUsersStats returns the stats view for the current week.
func (s *StatsService) AllUsersStats() ([]repository.UserStatsRow, error) {
	week, year := clock.WeekYear(s.clock.Now())
	return s.AllUsersStatsForWeek(week, year)
}

// AllUsersStatsForWeek returns the stats view for an explicit week scope.
func (s *StatsService) AllUsersStatsForWeek(week, year int) ([]repository.UserStatsRow, error) {
	rows, err := s.points.AllUsersStats(week, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load user stats: %w", err)
	}
	return rows, nil
}
