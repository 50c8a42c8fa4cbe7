// Package leaderboard names the Redis sorted sets that agg-svc writes and
// analytics-svc reads. Members are food ids (or category ids), scores are counts.
package leaderboard

import "time"

const (
	DayLayout = "2006-01-02"

	// DailyTTL bounds how long per-day sets survive after their last write.
	DailyTTL = 7 * 24 * time.Hour

	SelectionsAllTime = "analytics:selections:alltime"
	Categories        = "analytics:categories"
)

func SelectionsDaily(day string) string {
	return "analytics:selections:daily:" + day
}

func Feedback(action string) string {
	return "analytics:feedback:" + action
}

func FeedbackDaily(action, day string) string {
	return "analytics:feedback:" + action + ":daily:" + day
}

// Day formats t the way every daily key does.
func Day(t time.Time) string {
	return t.Format(DayLayout)
}
