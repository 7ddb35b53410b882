package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"chatquestbot/internal/models"
)

// UserRepositoryTestSuite defines the test suite for GormUserRepository
type UserRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo UserRepository
}

// SetupTest runs before each test
func (suite *UserRepositoryTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{})
	suite.Require().NoError(err)

	suite.repo = NewUserRepository(suite.db)
}

// TearDownTest runs after each test
func (suite *UserRepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *UserRepositoryTestSuite) TestUpsertCreatesNewUser() {
	user := &models.User{ID: 1, Username: "alice", FirstName: "Alice", JoinedAt: time.Now()}
	suite.Require().NoError(suite.repo.Upsert(user))

	found, err := suite.repo.FindByID(1)
	suite.Require().NoError(err)
	suite.Equal("alice", found.Username)
	suite.False(found.IsBanned)
}

func (suite *UserRepositoryTestSuite) TestUpsertPreservesModerationState() {
	user := &models.User{ID: 1, Username: "alice", FirstName: "Alice", JoinedAt: time.Now()}
	suite.Require().NoError(suite.repo.Upsert(user))

	suite.Require().NoError(suite.db.Model(&models.User{}).Where("id = ?", int64(1)).
		Updates(map[string]interface{}{"warnings_count": 2, "is_banned": true}).Error)

	// Re-registration with a changed username refreshes identity only.
	suite.Require().NoError(suite.repo.Upsert(&models.User{
		ID:        1,
		Username:  "alice_new",
		FirstName: "Alice",
		JoinedAt:  time.Now(),
	}))

	found, err := suite.repo.FindByID(1)
	suite.Require().NoError(err)
	suite.Equal("alice_new", found.Username)
	suite.Equal(2, found.WarningsCount)
	suite.True(found.IsBanned)
}

func (suite *UserRepositoryTestSuite) TestFindByUsername() {
	suite.Require().NoError(suite.repo.Upsert(&models.User{ID: 1, Username: "alice", JoinedAt: time.Now()}))

	found, err := suite.repo.FindByUsername("alice")
	suite.Require().NoError(err)
	suite.Equal(int64(1), found.ID)

	_, err = suite.repo.FindByUsername("nobody")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *UserRepositoryTestSuite) TestIsBannedUnknownUser() {
	banned, err := suite.repo.IsBanned(42)
	suite.Require().NoError(err)
	suite.False(banned)
}

func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
