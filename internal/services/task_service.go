package services

import (
	"errors"
	"fmt"
	"math/rand"

	"gorm.io/gorm"

	"chatquestbot/internal/clock"
	"chatquestbot/internal/models"
	"chatquestbot/internal/repository"
)

var (
	ErrInvalidContentType = errors.New("invalid task content type")
	ErrInvalidTaskPoints  = errors.New("task points must be positive")
	ErrNoActiveTasks      = errors.New("no active tasks available")
	ErrNoCurrentTask      = errors.New("no task broadcast this week")
)

// TaskService handles task templates and broadcasts.
type TaskService struct {
	tasks repository.TaskRepository
	clock clock.Clock
}

// NewTaskService creates a new TaskService
func NewTaskService(tasks repository.TaskRepository, clk clock.Clock) *TaskService {
	return &TaskService{tasks: tasks, clock: clk}
}

// AddTask creates an active task template.
func (s *TaskService) AddTask(text string, contentType models.ContentType, points int) (*models.Task, error) {
	if !contentType.Valid() {
		return nil, ErrInvalidContentType
	}
	if points <= 0 {
		return nil, ErrInvalidTaskPoints
	}

	task := &models.Task{
		Text:        text,
		ContentType: contentType,
		Points:      points,
		IsActive:    true,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.tasks.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// DeactivateTask soft-disables a template; tasks are never deleted.
func (s *TaskService) DeactivateTask(id uint64) error {
	if err := s.tasks.SetActive(id, false); err != nil {
		return fmt.Errorf("failed to deactivate task: %w", err)
	}
	return nil
}

// TaskCount returns the number of known templates.
func (s *TaskService) TaskCount() (int64, error) {
	return s.tasks.Count()
}

// BroadcastRandomTask picks a random active template and records one
// daily-task instance stamped with the current ISO week.
func (s *TaskService) BroadcastRandomTask() (*models.DailyTask, error) {
	tasks, err := s.tasks.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list active tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil, ErrNoActiveTasks
	}

	task := tasks[rand.Intn(len(tasks))]
	now := s.clock.Now()
	week, year := clock.WeekYear(now)

	daily, err := s.tasks.RecordBroadcast(task.ID, now, week, year)
	if err != nil {
		return nil, fmt.Errorf("failed to record broadcast: %w", err)
	}
	return daily, nil
}

// CurrentDailyTask returns the governing daily task of the current week:
// the most recently broadcast one.
func (s *TaskService) CurrentDailyTask() (*models.DailyTask, error) {
	week, year := clock.WeekYear(s.clock.Now())
	daily, err := s.tasks.CurrentDailyTask(week, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoCurrentTask
		}
		return nil, fmt.Errorf("failed to find current task: %w", err)
	}
	return daily, nil
}
