package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"chatquestbot/internal/clock"
	"chatquestbot/internal/models"
	"chatquestbot/internal/repository"
)

// PointsServiceTestSuite defines the test suite for PointsService
type PointsServiceTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo repository.PointsRepository
}

// SetupTest runs before each test
func (suite *PointsServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.PointEntry{})
	suite.Require().NoError(err)

	suite.repo = repository.NewPointsRepository(suite.db)
}

// TearDownTest runs after each test
func (suite *PointsServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *PointsServiceTestSuite) serviceAt(t time.Time) *PointsService {
	return NewPointsService(suite.repo, clock.Fixed{T: t})
}

func (suite *PointsServiceTestSuite) createTestUser(id int64) {
	suite.Require().NoError(suite.db.Create(&models.User{ID: id, Username: "user", JoinedAt: time.Now()}).Error)
}

func (suite *PointsServiceTestSuite) TestEntriesStampedWithClockWeek() {
	suite.createTestUser(1)

	monday := time.Date(2026, time.August, 24, 12, 0, 0, 0, time.UTC)
	thisWeek := suite.serviceAt(monday)
	suite.Require().NoError(thisWeek.AddPoints(1, 100, models.PointReasonChatActivity, nil))

	var entry models.PointEntry
	suite.Require().NoError(suite.db.First(&entry).Error)
	week, year := clock.WeekYear(monday)
	suite.Equal(week, entry.WeekNumber)
	suite.Equal(year, entry.Year)
}

func (suite *PointsServiceTestSuite) TestTotalsResetOnWeekRollover() {
	suite.createTestUser(1)

	monday := time.Date(2026, time.August, 24, 12, 0, 0, 0, time.UTC)
	thisWeek := suite.serviceAt(monday)
	suite.Require().NoError(thisWeek.AddPoints(1, 100, models.PointReasonChatActivity, nil))

	total, err := thisWeek.UserPoints(1)
	suite.Require().NoError(err)
	suite.Equal(100, total)

	// One week later the ledger still holds the entry, but the current
	// total is computed against the new week scope.
	nextWeek := suite.serviceAt(monday.AddDate(0, 0, 7))
	total, err = nextWeek.UserPoints(1)
	suite.Require().NoError(err)
	suite.Equal(0, total)

	week, year := clock.WeekYear(monday)
	total, err = nextWeek.UserPointsForWeek(1, week, year)
	suite.Require().NoError(err)
	suite.Equal(100, total)
}

func (suite *PointsServiceTestSuite) TestLeaderboardUsesClockWeek() {
	suite.createTestUser(1)
	suite.createTestUser(2)

	monday := time.Date(2026, time.August, 24, 12, 0, 0, 0, time.UTC)
	thisWeek := suite.serviceAt(monday)
	suite.Require().NoError(thisWeek.AddPoints(1, 100, models.PointReasonChatActivity, nil))

	lastWeek := suite.serviceAt(monday.AddDate(0, 0, -7))
	suite.Require().NoError(lastWeek.AddPoints(2, 500, models.PointReasonChatActivity, nil))

	rows, err := thisWeek.Leaderboard(10)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal(int64(1), rows[0].UserID)
}

func TestPointsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PointsServiceTestSuite))
}
