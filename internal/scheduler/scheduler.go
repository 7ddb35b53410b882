package scheduler

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"

	"chatquestbot/internal/config"
	"chatquestbot/internal/handlers"
)

// Start registers the wall-clock jobs: one task broadcast per configured
// HH:MM and the week-end results on the configured day. Returns the running
// scheduler so the caller can stop it at shutdown.
func Start(cfg *config.Config, broadcaster handlers.Broadcaster) (*cron.Cron, error) {
	c := cron.New()

	for _, timeStr := range cfg.TaskScheduleTimes {
		hour, minute, err := parseTime(timeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid schedule time %q: %w", timeStr, err)
		}
		spec := fmt.Sprintf("%d %d * * *", minute, hour)
		if _, err := c.AddFunc(spec, func() {
			if err := broadcaster.SendRandomTask(); err != nil {
				log.Printf("Scheduled task broadcast failed: %v", err)
			}
		}); err != nil {
			return nil, fmt.Errorf("failed to schedule task at %s: %w", timeStr, err)
		}
		log.Printf("Scheduled task broadcast at %s", timeStr)
	}

	hour, minute, err := parseTime(cfg.WeekEndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid week end time %q: %w", cfg.WeekEndTime, err)
	}
	spec := fmt.Sprintf("%d %d * * %d", minute, hour, cfg.WeekEndDay)
	if _, err := c.AddFunc(spec, func() {
		if err := broadcaster.SendWeekResults(); err != nil {
			log.Printf("Scheduled week results failed: %v", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("failed to schedule week end: %w", err)
	}
	log.Printf("Scheduled week results on day %d at %s", cfg.WeekEndDay, cfg.WeekEndTime)

	c.Start()
	return c, nil
}

func parseTime(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM")
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("bad hour %q", parts[0])
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("bad minute %q", parts[1])
	}
	return hour, minute, nil
}
