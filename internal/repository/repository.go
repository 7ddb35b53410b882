package repository

import (
	"time"

	"chatquestbot/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Upsert creates the user or refreshes their identity fields. Warning
	// and ban state is never touched by an upsert.
	Upsert(user *models.User) error

	// FindByID finds a user by their platform id
	FindByID(id int64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// IsBanned reports whether the user exists and is banned
	IsBanned(id int64) (bool, error)
}

// TaskRepository defines the interface for task and daily-task data access
type TaskRepository interface {
	// Create creates a new task template
	Create(task *models.Task) error

	// ListActive returns all active task templates
	ListActive() ([]models.Task, error)

	// SetActive toggles the active flag of a task
	SetActive(id uint64, active bool) error

	// Count returns the total number of task templates
	Count() (int64, error)

	// RecordBroadcast inserts one daily-task instance for the given week
	RecordBroadcast(taskID uint64, sentAt time.Time, week, year int) (*models.DailyTask, error)

	// CurrentDailyTask returns the most recently broadcast daily task of
	// the given week, with its template preloaded
	CurrentDailyTask(week, year int) (*models.DailyTask, error)
}

// AnswerRepository defines the interface for answer data access
type AnswerRepository interface {
	// Create inserts a new pending answer
	Create(answer *models.Answer) error

	// FindByID finds an answer with its daily task and template preloaded
	FindByID(id uint64) (*models.Answer, error)

	// Review transitions a pending answer to the given terminal status.
	// Returns ErrAnswerNotFound or ErrAnswerAlreadyReviewed without
	// touching the row otherwise.
	Review(id uint64, status models.AnswerStatus, reviewerID int64, reviewedAt time.Time) error

	// ListPending returns all pending answers, oldest first
	ListPending() ([]models.Answer, error)

	// ListApprovedWithoutAward returns approved answers that have no
	// task_answer ledger entry referencing them
	ListApprovedWithoutAward() ([]models.Answer, error)
}

// LeaderboardRow is one public leaderboard line.
type LeaderboardRow struct {
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	TotalPoints int    `json:"total_points"`
}

// UserStatsRow is one line of the operator stats view. Unlike the
// leaderboard it includes banned and zero-point users.
type UserStatsRow struct {
	UserID        int64  `json:"user_id"`
	Username      string `json:"username"`
	FirstName     string `json:"first_name"`
	IsBanned      bool   `json:"is_banned"`
	WarningsCount int    `json:"warnings_count"`
	TotalPoints   int    `json:"total_points"`
}

// PointsRepository defines the interface for the append-only points ledger
type PointsRepository interface {
	// Append inserts one ledger entry. Entries are never updated or
	// deleted.
	Append(entry *models.PointEntry) error

	// SumForUser returns the summed points of a user for one week scope
	SumForUser(userID int64, week, year int) (int, error)

	// Leaderboard ranks non-banned users with a positive total for the
	// week, descending, ties broken by ascending user id
	Leaderboard(week, year, limit int) ([]LeaderboardRow, error)

	// AllUsersStats returns every known user with their weekly total,
	// descending by points
	AllUsersStats(week, year int) ([]UserStatsRow, error)

	// HasAnswerAward reports whether a task_answer entry referencing the
	// answer already exists
	HasAnswerAward(answerID uint64) (bool, error)
}

// ActivityRepository defines the interface for per-day chat activity rows
type ActivityRepository interface {
	// PointsEarnedOn returns the activity points a user accrued on the
	// given day, 0 if no row exists
	PointsEarnedOn(userID int64, day string) (int, error)

	// RecordMessage upserts the (user, day) row, adding one message and
	// the given word and point increments
	RecordMessage(userID int64, day string, words, points int) error
}

// WarningRepository defines the interface for warnings and the ban policy
type WarningRepository interface {
	// Add appends the warning, increments the user's warning count and,
	// in the same transaction, bans the user once the count reaches
	// maxWarnings. Returns the updated user.
	Add(warning *models.Warning, maxWarnings int) (*models.User, error)

	// ListForUser returns a user's warnings, newest first
	ListForUser(userID int64) ([]models.Warning, error)
}
