package seed

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"chatquestbot/internal/models"
	"chatquestbot/internal/services"
)

// TaskSeed is one entry of the tasks file.
type TaskSeed struct {
	Text        string             `json:"text"`
	ContentType models.ContentType `json:"content_type"`
	Points      int                `json:"points"`
}

// LoadTasks reads the seed file.
func LoadTasks(path string) ([]TaskSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks file: %w", err)
	}
	var tasks []TaskSeed
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse tasks file: %w", err)
	}
	return tasks, nil
}

// EnsureTasks loads the seed file into the task table when the table is
// empty. Re-running is a no-op; templates already present win.
func EnsureTasks(taskService *services.TaskService, path string) (int, error) {
	count, err := taskService.TaskCount()
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	if count > 0 {
		log.Printf("Task table already contains %d tasks, skipping seed", count)
		return 0, nil
	}

	seeds, err := LoadTasks(path)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, s := range seeds {
		if _, err := taskService.AddTask(s.Text, s.ContentType, s.Points); err != nil {
			return created, fmt.Errorf("failed to seed task %q: %w", s.Text, err)
		}
		created++
	}
	log.Printf("Seeded %d tasks from %s", created, path)
	return created, nil
}
