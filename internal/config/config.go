package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// MaxWarnings is the warning count at which a user is banned. The trigger
// itself is fixed; only the display texts read it through config.
const MaxWarnings = 3

// Default task rewards by content type, used for help texts and seeding.
const (
	TextTaskPoints  = 100
	PhotoTaskPoints = 200
	VideoTaskPoints = 300
)

type Config struct {
	BotToken    string
	ChatID      int64
	OperatorIDs []int64

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	TaskScheduleTimes []string
	WeekEndDay        int
	WeekEndTime       string

	MinMessageLength       int
	PointsPerWord          int
	MaxDailyActivityPoints int

	TasksFile  string
	CronSecret string
	GinMode    string
	ListenAddr string
}

func Load() *Config {
	return &Config{
		BotToken:    getEnv("BOT_TOKEN", ""),
		ChatID:      getEnvInt64("CHAT_ID", 0),
		OperatorIDs: getEnvInt64List("OPERATOR_IDS"),

		DBDriver:   getEnv("DB_DRIVER", "mysql"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "questbot"),
		DBPassword: getEnv("DB_PASSWORD", "questbot"),
		DBName:     getEnv("DB_NAME", "chatquest"),

		TaskScheduleTimes: getEnvList("TASK_SCHEDULE_TIMES", "10:00,18:00"),
		WeekEndDay:        getEnvInt("WEEK_END_DAY", 0), // Sunday
		WeekEndTime:       getEnv("WEEK_END_TIME", "20:00"),

		MinMessageLength:       getEnvInt("MIN_MESSAGE_LENGTH", 10),
		PointsPerWord:          getEnvInt("POINTS_PER_WORD", 1),
		MaxDailyActivityPoints: getEnvInt("MAX_DAILY_ACTIVITY_POINTS", 200),

		TasksFile:  getEnv("TASKS_FILE", "data/tasks.json"),
		CronSecret: getEnv("CRON_SECRET", ""),
		GinMode:    getEnv("GIN_MODE", "debug"),
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),
	}
}

// Validate checks the settings that have no usable default. Called once at
// startup; the loaded config is read-only afterwards.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return errors.New("BOT_TOKEN is required")
	}
	if c.ChatID == 0 {
		return errors.New("CHAT_ID is required")
	}
	if len(c.OperatorIDs) == 0 {
		return errors.New("at least one OPERATOR_ID is required")
	}
	if c.DBDriver != "mysql" && c.DBDriver != "postgres" {
		return errors.New("DB_DRIVER must be mysql or postgres")
	}
	return nil
}

// IsOperator reports whether the given user id is in the operator set.
func (c *Config) IsOperator(userID int64) bool {
	for _, id := range c.OperatorIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key, defaultValue string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		raw = defaultValue
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}

func getEnvInt64List(key string) []int64 {
	var values []int64
	for _, part := range getEnvList(key, "") {
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			values = append(values, id)
		}
	}
	return values
}
