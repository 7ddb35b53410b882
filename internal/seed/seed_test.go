package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"chatquestbot/internal/clock"
	"chatquestbot/internal/models"
	"chatquestbot/internal/repository"
	"chatquestbot/internal/services"
)

// SeedTestSuite defines the test suite for task seeding
type SeedTestSuite struct {
	suite.Suite
	db    *gorm.DB
	tasks *services.TaskService
}

// SetupTest runs before each test
func (suite *SeedTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.Task{}, &models.DailyTask{})
	suite.Require().NoError(err)

	clk := clock.Fixed{T: time.Date(2026, time.August, 24, 12, 0, 0, 0, time.UTC)}
	suite.tasks = services.NewTaskService(repository.NewTaskRepository(suite.db), clk)
}

// TearDownTest runs after each test
func (suite *SeedTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *SeedTestSuite) writeSeedFile(content string) string {
	path := filepath.Join(suite.T().TempDir(), "tasks.json")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (suite *SeedTestSuite) TestEnsureTasksSeedsEmptyTable() {
	path := suite.writeSeedFile(`[
		{"text": "Первое задание", "content_type": "text", "points": 100},
		{"text": "Второе задание", "content_type": "photo", "points": 200}
	]`)

	created, err := EnsureTasks(suite.tasks, path)
	suite.Require().NoError(err)
	suite.Equal(2, created)

	count, err := suite.tasks.TaskCount()
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)
}

func (suite *SeedTestSuite) TestEnsureTasksSkipsNonEmptyTable() {
	_, err := suite.tasks.AddTask("existing", models.ContentTypeText, 100)
	suite.Require().NoError(err)

	path := suite.writeSeedFile(`[{"text": "seeded", "content_type": "text", "points": 100}]`)

	created, err := EnsureTasks(suite.tasks, path)
	suite.Require().NoError(err)
	suite.Equal(0, created)

	count, err := suite.tasks.TaskCount()
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)
}

func (suite *SeedTestSuite) TestEnsureTasksRejectsInvalidEntries() {
	path := suite.writeSeedFile(`[{"text": "bad", "content_type": "sticker", "points": 100}]`)

	_, err := EnsureTasks(suite.tasks, path)
	suite.ErrorIs(err, services.ErrInvalidContentType)
}

func (suite *SeedTestSuite) TestLoadTasksMissingFile() {
	_, err := LoadTasks(filepath.Join(suite.T().TempDir(), "missing.json"))
	suite.Error(err)
}

func TestSeedTestSuite(t *testing.T) {
	suite.Run(t, new(SeedTestSuite))
}
