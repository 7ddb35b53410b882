package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"chatquestbot/internal/clock"
	"chatquestbot/internal/models"
	"chatquestbot/internal/repository"
)

// ActivityService accrues chat-activity points: one point per word up to a
// daily cap. The (user, day) upsert key resets the cap at midnight without
// extra bookkeeping.
type ActivityService struct {
	activity repository.ActivityRepository
	users    repository.UserRepository
	points   *PointsService
	clock    clock.Clock

	minMessageLength int
	pointsPerWord    int
	maxDailyPoints   int
}

// NewActivityService creates a new ActivityService
func NewActivityService(
	activity repository.ActivityRepository,
	users repository.UserRepository,
	points *PointsService,
	clk clock.Clock,
	minMessageLength, pointsPerWord, maxDailyPoints int,
) *ActivityService {
	return &ActivityService{
		activity:         activity,
		users:            users,
		points:           points,
		clock:            clk,
		minMessageLength: minMessageLength,
		pointsPerWord:    pointsPerWord,
		maxDailyPoints:   maxDailyPoints,
	}
}

// RecordActivity awards points for one qualifying chat message and returns
// the amount awarded. Messages below the minimum length, messages from
// banned users, and messages past the daily cap award nothing and leave no
// trace.
func (s *ActivityService) RecordActivity(userID int64, text string) (int, error) {
	if utf8.RuneCountInString(text) < s.minMessageLength {
		return 0, nil
	}

	banned, err := s.users.IsBanned(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to check ban state: %w", err)
	}
	if banned {
		return 0, nil
	}

	day := clock.DayKey(s.clock.Now())
	earned, err := s.activity.PointsEarnedOn(userID, day)
	if err != nil {
		return 0, fmt.Errorf("failed to read daily activity: %w", err)
	}

	words := len(strings.Fields(text))
	award := words * s.pointsPerWord
	if remaining := s.maxDailyPoints - earned; award > remaining {
		award = remaining
	}
	if award <= 0 {
		return 0, nil
	}

	if err := s.activity.RecordMessage(userID, day, words, award); err != nil {
		return 0, fmt.Errorf("failed to record activity: %w", err)
	}
	if err := s.points.AddPoints(userID, award, models.PointReasonChatActivity, nil); err != nil {
		return 0, err
	}
	return award, nil
}

// PointsEarnedToday returns the activity points accrued on the clock's
// current day.
func (s *ActivityService) PointsEarnedToday(userID int64) (int, error) {
	day := clock.DayKey(s.clock.Now())
	earned, err := s.activity.PointsEarnedOn(userID, day)
	if err != nil {
		return 0, fmt.Errorf("failed to read daily activity: %w", err)
	}
	return earned, nil
}

// DailyCap returns the configured per-day activity maximum.
func (s *ActivityService) DailyCap() int {
	return s.maxDailyPoints
}
