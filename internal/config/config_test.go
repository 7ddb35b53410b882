package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEnv(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:token")
	t.Setenv("CHAT_ID", "-1001234567890")
	t.Setenv("OPERATOR_IDS", "111,222")
}

func TestLoadDefaults(t *testing.T) {
	validEnv(t)

	cfg := Load()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(-1001234567890), cfg.ChatID)
	assert.Equal(t, []int64{111, 222}, cfg.OperatorIDs)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, []string{"10:00", "18:00"}, cfg.TaskScheduleTimes)
	assert.Equal(t, 0, cfg.WeekEndDay)
	assert.Equal(t, 10, cfg.MinMessageLength)
	assert.Equal(t, 1, cfg.PointsPerWord)
	assert.Equal(t, 200, cfg.MaxDailyActivityPoints)
	assert.Equal(t, ":8080", cfg.ListenAddr)
}

func TestValidateRejectsMissingSettings(t *testing.T) {
	validEnv(t)
	t.Setenv("BOT_TOKEN", "")
	assert.Error(t, Load().Validate())

	validEnv(t)
	t.Setenv("CHAT_ID", "")
	assert.Error(t, Load().Validate())

	validEnv(t)
	t.Setenv("OPERATOR_IDS", "")
	assert.Error(t, Load().Validate())

	validEnv(t)
	t.Setenv("DB_DRIVER", "sqlserver")
	assert.Error(t, Load().Validate())
}

func TestOperatorIDListParsing(t *testing.T) {
	validEnv(t)
	t.Setenv("OPERATOR_IDS", " 111 , 222 ,notanid, 333 ")

	cfg := Load()
	assert.Equal(t, []int64{111, 222, 333}, cfg.OperatorIDs)

	assert.True(t, cfg.IsOperator(111))
	assert.True(t, cfg.IsOperator(333))
	assert.False(t, cfg.IsOperator(444))
}

func TestScheduleTimesParsing(t *testing.T) {
	validEnv(t)
	t.Setenv("TASK_SCHEDULE_TIMES", "09:30, 14:00 ,21:15")

	cfg := Load()
	assert.Equal(t, []string{"09:30", "14:00", "21:15"}, cfg.TaskScheduleTimes)
}
