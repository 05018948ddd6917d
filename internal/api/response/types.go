package response

import (
	"strconv"
	"time"

	"github.com/quizlive/quizlive/internal/model"
)

// Player represents a player in API responses
type Player struct {
	PlayerID              string    `json:"player_id"`
	Name                  string    `json:"name"`
	Score                 int       `json:"score"`
	CurrentQuestionNumber int       `json:"current_question_number"`
	TotalQuestionsInGame  int       `json:"total_questions_in_game"`
	Status                string    `json:"status"`
	BonusEarned           int       `json:"bonus_earned"`
	RegisteredAt          time.Time `json:"registered_at"`
	LastUpdated           time.Time `json:"last_updated"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		PlayerID:              string(p.ID),
		Name:                  p.Name,
		Score:                 p.Score,
		CurrentQuestionNumber: p.CurrentQuestionNumber,
		TotalQuestionsInGame:  p.TotalQuestionsInGame,
		Status:                string(p.Status),
		BonusEarned:           p.BonusEarned,
		RegisteredAt:          p.RegisteredAt,
		LastUpdated:           p.LastUpdated,
	}
}

// RegisterResponse is the response for player registration
type RegisterResponse struct {
	Message    string `json:"message"`
	PlayerID   string `json:"player_id"`
	PlayerData Player `json:"player_data"`
}

// BonusInfo carries bonus-award metadata on winning submissions
type BonusInfo struct {
	BonusPoints int    `json:"bonus_points"`
	QuestionID  int    `json:"question_id"`
	Reason      string `json:"reason"`
}

// BonusInfoFromModel converts model.BonusInfo
func BonusInfoFromModel(b *model.BonusInfo) *BonusInfo {
	if b == nil {
		return nil
	}
	return &BonusInfo{
		BonusPoints: b.BonusPoints,
		QuestionID:  int(b.QuestionID),
		Reason:      b.Reason,
	}
}

// UpdateStatusResponse is the response for a player update
type UpdateStatusResponse struct {
	Message    string     `json:"message"`
	PlayerData Player     `json:"player_data"`
	BonusInfo  *BonusInfo `json:"bonus_info,omitempty"`
}

// QuestionDetail is one player's view of one question
type QuestionDetail struct {
	Answered    bool       `json:"answered"`
	Correct     bool       `json:"correct"`
	Fastest     bool       `json:"fastest"`
	TimeSpentMS int64      `json:"time_spent_ms"`
	AnsweredAt  *time.Time `json:"answered_at,omitempty"`
}

// QuestionDetailFromModel converts model.QuestionDetail
func QuestionDetailFromModel(d model.QuestionDetail) QuestionDetail {
	return QuestionDetail{
		Answered:    d.Answered,
		Correct:     d.Correct,
		Fastest:     d.Fastest,
		TimeSpentMS: d.TimeSpentMS,
		AnsweredAt:  d.AnsweredAt,
	}
}

// DashboardEntry is a player enriched with per-question detail
type DashboardEntry struct {
	Player
	Questions map[string]QuestionDetail `json:"questions"`
}

// DashboardEntryFromModel converts model.DashboardEntry
func DashboardEntryFromModel(e *model.DashboardEntry) DashboardEntry {
	return DashboardEntry{
		Player:    PlayerFromModel(&e.Player),
		Questions: questionDetailsFromModel(e.Questions),
	}
}

// PlayerQuestionStatus is the per-question join for one player
type PlayerQuestionStatus struct {
	PlayerID  string                    `json:"player_id"`
	Name      string                    `json:"name"`
	Questions map[string]QuestionDetail `json:"questions"`
}

// PlayerQuestionStatusFromModel converts model.PlayerQuestionStatus
func PlayerQuestionStatusFromModel(p *model.PlayerQuestionStatus) PlayerQuestionStatus {
	return PlayerQuestionStatus{
		PlayerID:  string(p.PlayerID),
		Name:      p.Name,
		Questions: questionDetailsFromModel(p.Questions),
	}
}

// AnswerTime is the timing view of one answered question
type AnswerTime struct {
	TimeSpentMS int64     `json:"time_spent_ms"`
	AnsweredAt  time.Time `json:"answered_at"`
	Correct     bool      `json:"correct"`
	Fastest     bool      `json:"fastest"`
}

// PlayerTimes summarizes a player's per-question timings
type PlayerTimes struct {
	PlayerID      string                `json:"player_id"`
	Name          string                `json:"name"`
	Times         map[string]AnswerTime `json:"times"`
	AnsweredCount int                   `json:"answered_count"`
	TotalTimeMS   int64                 `json:"total_time_ms"`
}

// PlayerTimesFromModel converts model.PlayerTimes
func PlayerTimesFromModel(p *model.PlayerTimes) PlayerTimes {
	times := make(map[string]AnswerTime, len(p.Times))
	for questionID, t := range p.Times {
		times[strconv.Itoa(int(questionID))] = AnswerTime{
			TimeSpentMS: t.TimeSpentMS,
			AnsweredAt:  t.AnsweredAt,
			Correct:     t.Correct,
			Fastest:     t.Fastest,
		}
	}
	return PlayerTimes{
		PlayerID:      string(p.PlayerID),
		Name:          p.Name,
		Times:         times,
		AnsweredCount: p.AnsweredCount,
		TotalTimeMS:   p.TotalTimeMS,
	}
}

// QuestionStats aggregates all answers for one question
type QuestionStats struct {
	QuestionID      int     `json:"question_id"`
	TotalAttempts   int     `json:"total_attempts"`
	CorrectAttempts int     `json:"correct_attempts"`
	AccuracyRate    float64 `json:"accuracy_rate"`
	MinTimeMS       int64   `json:"min_time_ms"`
	AvgTimeMS       float64 `json:"avg_time_ms"`
	MaxTimeMS       int64   `json:"max_time_ms"`
	BonusAwarded    bool    `json:"bonus_awarded"`
	BonusWinner     string  `json:"bonus_winner,omitempty"`
}

// QuestionStatsFromModel converts model.QuestionStats
func QuestionStatsFromModel(q *model.QuestionStats) QuestionStats {
	return QuestionStats{
		QuestionID:      int(q.QuestionID),
		TotalAttempts:   q.TotalAttempts,
		CorrectAttempts: q.CorrectAttempts,
		AccuracyRate:    q.AccuracyRate,
		MinTimeMS:       q.MinTimeMS,
		AvgTimeMS:       q.AvgTimeMS,
		MaxTimeMS:       q.MaxTimeMS,
		BonusAwarded:    q.BonusAwarded,
		BonusWinner:     string(q.BonusWinner),
	}
}

// GlobalStats is the aggregate view over all live players
type GlobalStats struct {
	TotalPlayers     int                      `json:"total_players"`
	AverageScore     float64                  `json:"average_score"`
	HighestScore     int                      `json:"highest_score"`
	LowestScore      int                      `json:"lowest_score"`
	PlayersByStatus  map[string]int           `json:"players_by_status"`
	TotalBonusPoints int                      `json:"total_bonus_points"`
	Questions        map[string]QuestionStats `json:"questions"`
	LastUpdated      time.Time                `json:"last_updated"`
}

// GlobalStatsFromModel converts model.GlobalStats
func GlobalStatsFromModel(g *model.GlobalStats) GlobalStats {
	byStatus := make(map[string]int, len(g.PlayersByStatus))
	for status, count := range g.PlayersByStatus {
		byStatus[string(status)] = count
	}
	questions := make(map[string]QuestionStats, len(g.Questions))
	for questionID, q := range g.Questions {
		stats := q
		questions[strconv.Itoa(int(questionID))] = QuestionStatsFromModel(&stats)
	}
	return GlobalStats{
		TotalPlayers:     g.TotalPlayers,
		AverageScore:     g.AverageScore,
		HighestScore:     g.HighestScore,
		LowestScore:      g.LowestScore,
		PlayersByStatus:  byStatus,
		TotalBonusPoints: g.TotalBonusPoints,
		Questions:        questions,
		LastUpdated:      g.LastUpdated,
	}
}

// CleanupResponse is the response for a global cleanup
type CleanupResponse struct {
	Message            string    `json:"message"`
	ActivePlayersCount int       `json:"active_players_count"`
	CleanupTimestamp   time.Time `json:"cleanup_timestamp"`
}

// HealthResponse is the response for the health check
type HealthResponse struct {
	Status             string    `json:"status"`
	ActivePlayers      int       `json:"active_players"`
	QuestionsWithBonus int       `json:"questions_with_bonus"`
	ServerTime         time.Time `json:"server_time"`
}

func questionDetailsFromModel(details map[model.QuestionID]model.QuestionDetail) map[string]QuestionDetail {
	result := make(map[string]QuestionDetail, len(details))
	for questionID, detail := range details {
		result[strconv.Itoa(int(questionID))] = QuestionDetailFromModel(detail)
	}
	return result
}
