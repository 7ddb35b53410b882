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

// WarningServiceTestSuite defines the test suite for WarningService
type WarningServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *WarningService
}

// SetupTest runs before each test
func (suite *WarningServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Warning{})
	suite.Require().NoError(err)

	clk := clock.Fixed{T: time.Date(2026, time.August, 24, 12, 0, 0, 0, time.UTC)}
	suite.service = NewWarningService(repository.NewWarningRepository(suite.db), clk, 3)
}

// TearDownTest runs after each test
func (suite *WarningServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *WarningServiceTestSuite) createTestUser(id int64) {
	suite.Require().NoError(suite.db.Create(&models.User{ID: id, Username: "user", JoinedAt: time.Now()}).Error)
}

func (suite *WarningServiceTestSuite) TestThresholdBans() {
	suite.createTestUser(1)

	user, err := suite.service.Issue(1, 99, "спам")
	suite.Require().NoError(err)
	suite.Equal(1, user.WarningsCount)
	suite.False(user.IsBanned)

	user, err = suite.service.Issue(1, 99, "снова спам")
	suite.Require().NoError(err)
	suite.Equal(2, user.WarningsCount)
	suite.False(user.IsBanned)

	user, err = suite.service.Issue(1, 99, "опять спам")
	suite.Require().NoError(err)
	suite.Equal(3, user.WarningsCount)
	suite.True(user.IsBanned)
}

func (suite *WarningServiceTestSuite) TestHistoryRecordsEveryWarning() {
	suite.createTestUser(1)

	_, err := suite.service.Issue(1, 99, "first")
	suite.Require().NoError(err)
	_, err = suite.service.Issue(1, 77, "second")
	suite.Require().NoError(err)

	history, err := suite.service.History(1)
	suite.Require().NoError(err)
	suite.Require().Len(history, 2)
	suite.Equal(int64(99), history[1].IssuedBy)
	suite.Equal("first", history[1].Reason)
}

func TestWarningServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WarningServiceTestSuite))
}
