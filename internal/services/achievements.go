package services

import "time"

// Achievement ids.
const (
	AchievementFirstFullWeek   = "first_full_week"
	AchievementProductiveMonth = "productive_month"
	AchievementFiveDayStreak   = "five_day_streak"
)

// Unlock thresholds.
const (
	firstFullWeekHours    = 40
	productiveMonthDays   = 30
	fiveDayStreakRequired = 5
)

type achievementText struct {
	title       string
	description string
}

var achievementIcons = map[string]string{
	AchievementFirstFullWeek:   "🎯",
	AchievementProductiveMonth: "📅",
	AchievementFiveDayStreak:   "🔥",
}

var achievementTexts = map[string]map[string]achievementText{
	"es": {
		AchievementFirstFullWeek:   {"Primera Semana", "Completaste tu primera semana completa"},
		AchievementProductiveMonth: {"Mes Productivo", "Trabajaste 30 días o más"},
		AchievementFiveDayStreak:   {"Racha de Cinco Días", "Cinco días seguidos completados"},
	},
	"en": {
		AchievementFirstFullWeek:   {"First Full Week", "You completed your first full week"},
		AchievementProductiveMonth: {"Productive Month", "You worked 30 days or more"},
		AchievementFiveDayStreak:   {"Five Day Streak", "Five completed days in a row"},
	},
}

// achievementState is the aggregate state badges are derived from.
type achievementState struct {
	totalHours float64
	daysWorked int
	streak     int
}

// evaluateAchievements derives badges from the current state. Nothing is
// persisted, so the result is the same on every read of the same data.
func evaluateAchievements(state achievementState, locale string, now time.Time) []Achievement {
	earned := make([]Achievement, 0, 3)
	add := func(id string) {
		texts, ok := achievementTexts[locale]
		if !ok {
			texts = achievementTexts["es"]
		}
		text := texts[id]
		earned = append(earned, Achievement{
			ID:          id,
			Title:       text.title,
			Description: text.description,
			Icon:        achievementIcons[id],
			EarnedDate:  now,
		})
	}

	if state.totalHours >= firstFullWeekHours {
		add(AchievementFirstFullWeek)
	}
	if state.daysWorked >= productiveMonthDays {
		add(AchievementProductiveMonth)
	}
	if state.streak >= fiveDayStreakRequired {
		add(AchievementFiveDayStreak)
	}
	return earned
}
