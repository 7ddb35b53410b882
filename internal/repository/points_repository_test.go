package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"chatquestbot/internal/models"
)

// PointsRepositoryTestSuite defines the test suite for GormPointsRepository
type PointsRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo PointsRepository
}

// SetupTest runs before each test
func (suite *PointsRepositoryTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.PointEntry{})
	suite.Require().NoError(err)

	suite.repo = NewPointsRepository(suite.db)
}

// TearDownTest runs after each test
func (suite *PointsRepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *PointsRepositoryTestSuite) createTestUser(id int64, username string, banned bool) *models.User {
	user := &models.User{
		ID:        id,
		Username:  username,
		FirstName: username,
		IsBanned:  banned,
		JoinedAt:  time.Now(),
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *PointsRepositoryTestSuite) addEntry(userID int64, points, week, year int) {
	entry := &models.PointEntry{
		UserID:     userID,
		Points:     points,
		Reason:     models.PointReasonChatActivity,
		WeekNumber: week,
		Year:       year,
		CreatedAt:  time.Now(),
	}
	suite.Require().NoError(suite.repo.Append(entry))
}

func (suite *PointsRepositoryTestSuite) TestSumForUserScopedToWeek() {
	suite.createTestUser(1, "alice", false)

	suite.addEntry(1, 100, 35, 2026)
	suite.addEntry(1, 50, 35, 2026)
	suite.addEntry(1, 40, 36, 2026)
	suite.addEntry(1, 30, 35, 2025)

	total, err := suite.repo.SumForUser(1, 35, 2026)
	suite.Require().NoError(err)
	suite.Equal(150, total)

	total, err = suite.repo.SumForUser(1, 36, 2026)
	suite.Require().NoError(err)
	suite.Equal(40, total)

	total, err = suite.repo.SumForUser(1, 34, 2026)
	suite.Require().NoError(err)
	suite.Equal(0, total)
}

func (suite *PointsRepositoryTestSuite) TestLeaderboardOrdersByTotalThenID() {
	suite.createTestUser(1, "alice", false)
	suite.createTestUser(2, "bob", false)
	suite.createTestUser(3, "carol", false)

	suite.addEntry(1, 60, 35, 2026)
	suite.addEntry(1, 40, 35, 2026)
	suite.addEntry(2, 200, 35, 2026)
	suite.addEntry(3, 100, 35, 2026)

	rows, err := suite.repo.Leaderboard(35, 2026, 10)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 3)

	suite.Equal(int64(2), rows[0].UserID)
	suite.Equal(200, rows[0].TotalPoints)

	// Users 1 and 3 tie on 100 points; the lower id wins.
	suite.Equal(int64(1), rows[1].UserID)
	suite.Equal(int64(3), rows[2].UserID)
}

func (suite *PointsRepositoryTestSuite) TestLeaderboardExcludesBannedAndZeroUsers() {
	suite.createTestUser(1, "alice", false)
	suite.createTestUser(2, "banned", true)
	suite.createTestUser(3, "silent", false)
	suite.createTestUser(4, "lastweek", false)

	suite.addEntry(1, 100, 35, 2026)
	suite.addEntry(2, 500, 35, 2026)
	suite.addEntry(4, 80, 34, 2026)

	rows, err := suite.repo.Leaderboard(35, 2026, 10)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal(int64(1), rows[0].UserID)
}

func (suite *PointsRepositoryTestSuite) TestLeaderboardAppliesLimit() {
	for id := int64(1); id <= 5; id++ {
		suite.createTestUser(id, "user", false)
		suite.addEntry(id, int(id)*10, 35, 2026)
	}

	rows, err := suite.repo.Leaderboard(35, 2026, 3)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 3)
	suite.Equal(int64(5), rows[0].UserID)
	suite.Equal(int64(3), rows[2].UserID)
}

func (suite *PointsRepositoryTestSuite) TestAllUsersStatsIncludesBannedAndZeroUsers() {
	suite.createTestUser(1, "alice", false)
	banned := suite.createTestUser(2, "banned", true)
	suite.db.Model(banned).UpdateColumn("warnings_count", 3)
	suite.createTestUser(3, "silent", false)

	suite.addEntry(1, 100, 35, 2026)
	suite.addEntry(2, 50, 35, 2026)

	rows, err := suite.repo.AllUsersStats(35, 2026)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 3)

	suite.Equal(int64(1), rows[0].UserID)
	suite.Equal(100, rows[0].TotalPoints)

	suite.Equal(int64(2), rows[1].UserID)
	suite.True(rows[1].IsBanned)
	suite.Equal(3, rows[1].WarningsCount)

	suite.Equal(int64(3), rows[2].UserID)
	suite.Equal(0, rows[2].TotalPoints)
}

func (suite *PointsRepositoryTestSuite) TestHasAnswerAward() {
	suite.createTestUser(1, "alice", false)

	refID := uint64(7)
	entry := &models.PointEntry{
		UserID:      1,
		Points:      200,
		Reason:      models.PointReasonTaskAnswer,
		ReferenceID: &refID,
		WeekNumber:  35,
		Year:        2026,
		CreatedAt:   time.Now(),
	}
	suite.Require().NoError(suite.repo.Append(entry))

	exists, err := suite.repo.HasAnswerAward(7)
	suite.Require().NoError(err)
	suite.True(exists)

	exists, err = suite.repo.HasAnswerAward(8)
	suite.Require().NoError(err)
	suite.False(exists)
}

func TestPointsRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(PointsRepositoryTestSuite))
}
