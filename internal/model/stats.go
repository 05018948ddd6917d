package model

import "time"

// QuestionDetail is one player's view of one question, joined against the
// recorded bonus winner. Fastest is true iff the player holds the
// first-correct bonus for that question.
type QuestionDetail struct {
	Answered    bool
	Correct     bool
	Fastest     bool
	TimeSpentMS int64
	AnsweredAt  *time.Time
}

// DashboardEntry is a player enriched with per-question detail over the
// configured question range.
type DashboardEntry struct {
	Player    Player
	Questions map[QuestionID]QuestionDetail
}

// PlayerQuestionStatus is the per-question join scoped to a single player.
type PlayerQuestionStatus struct {
	PlayerID  PlayerID
	Name      string
	Questions map[QuestionID]QuestionDetail
}

// AnswerTime is the timing view of a single answered question.
type AnswerTime struct {
	TimeSpentMS int64
	AnsweredAt  time.Time
	Correct     bool
	Fastest     bool
}

// PlayerTimes summarizes how long a player spent per answered question.
type PlayerTimes struct {
	PlayerID      PlayerID
	Name          string
	Times         map[QuestionID]AnswerTime
	AnsweredCount int
	TotalTimeMS   int64
}

// QuestionStats aggregates all players' answer records for one question.
// A question nobody attempted yields the zero aggregate, never an error.
type QuestionStats struct {
	QuestionID      QuestionID
	TotalAttempts   int
	CorrectAttempts int
	AccuracyRate    float64
	MinTimeMS       int64
	AvgTimeMS       float64
	MaxTimeMS       int64
	BonusAwarded    bool
	BonusWinner     PlayerID
}

// GlobalStats is the aggregate view over all live players.
type GlobalStats struct {
	TotalPlayers     int
	AverageScore     float64
	HighestScore     int
	LowestScore      int
	PlayersByStatus  map[PlayerStatus]int
	TotalBonusPoints int
	Questions        map[QuestionID]QuestionStats
	LastUpdated      time.Time
}
