package entity

import (
	"fmt"

	"github.com/gofrs/uuid"
)

// Granularity selects the reporting window for progress stats.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityDay, GranularityWeek, GranularityMonth, GranularityYear:
		return Granularity(s), nil
	case "":
		return GranularityWeek, nil
	}
	return "", fmt.Errorf("invalid range %q, expected day, week, month or year", s)
}

// Metric identifies one of the tracked study measures.
type Metric string

const (
	MetricTime      Metric = "time"
	MetricPages     Metric = "pages"
	MetricExercises Metric = "exercises"
)

func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricTime, MetricPages, MetricExercises:
		return Metric(s), nil
	case "":
		return MetricTime, nil
	}
	return "", fmt.Errorf("invalid metric %q, expected time, pages or exercises", s)
}

// BucketSummary is one chart point: the summed metrics of a single calendar
// unit inside the window.
type BucketSummary struct {
	Label     string  `json:"label"`
	BucketKey string  `json:"bucket_key"`
	Time      float64 `json:"time"`
	Pages     float64 `json:"pages"`
	Exercises float64 `json:"exercises"`
}

// SubjectShare is the percentage of a chosen metric attributed to one
// subject. Percents of a non-empty result always sum to exactly 100.
type SubjectShare struct {
	SubjectName string `json:"subject_name"`
	Percent     int    `json:"percent"`
	ColorIndex  int    `json:"color_index"`
}

type GoalProgress struct {
	GoalID          uuid.UUID `json:"goal_id"`
	MetricType      Metric    `json:"metric_type"`
	SubjectLabel    string    `json:"subject_label"`
	Current         float64   `json:"current"`
	Target          float64   `json:"target"`
	PercentComplete int       `json:"percent_complete"`
}

type DailySession struct {
	ID              uuid.UUID `json:"id"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Subject         string    `json:"subject"`
	ColorIndex      int       `json:"color_index"`
}

// ProgressStats is the full aggregation result for one (user, group, window,
// metric) combination. It is recomputed wholesale on every refresh.
type ProgressStats struct {
	TotalTime       float64         `json:"total_time"`
	TotalPages      float64         `json:"total_pages"`
	TotalExercises  float64         `json:"total_exercises"`
	StudyStreakDays int             `json:"study_streak_days"`
	Period          string          `json:"period"`
	Buckets         []BucketSummary `json:"buckets"`
	SubjectShares   []SubjectShare  `json:"subject_shares"`
	GoalProgress    []GoalProgress  `json:"goal_progress"`
	DailySessions   []DailySession  `json:"daily_sessions,omitempty"`
}

type ProgressFilter struct {
	UserID      uuid.UUID
	GroupID     *uuid.UUID
	Granularity Granularity
	Metric      Metric
}
