package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case RegisterResult:
		o.printRegisterResult(v)
	case UpdateResult:
		o.printUpdateResult(v)
	case Dashboard:
		o.printDashboard(v)
	case PlayerQuestions:
		o.printPlayerQuestions(v)
	case PlayerTimes:
		o.printPlayerTimes(v)
	case QuestionStats:
		o.printQuestionStats(v)
	case GlobalStats:
		o.printGlobalStats(v)
	case CleanupResult:
		o.printCleanupResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
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

// RegisterResult response type
type RegisterResult struct {
	Message    string `json:"message"`
	PlayerID   string `json:"player_id"`
	PlayerData Player `json:"player_data"`
}

// BonusInfo response type
type BonusInfo struct {
	BonusPoints int    `json:"bonus_points"`
	QuestionID  int    `json:"question_id"`
	Reason      string `json:"reason"`
}

// UpdateResult response type
type UpdateResult struct {
	Message    string     `json:"message"`
	PlayerData Player     `json:"player_data"`
	BonusInfo  *BonusInfo `json:"bonus_info,omitempty"`
}

// QuestionDetail response type
type QuestionDetail struct {
	Answered    bool       `json:"answered"`
	Correct     bool       `json:"correct"`
	Fastest     bool       `json:"fastest"`
	TimeSpentMS int64      `json:"time_spent_ms"`
	AnsweredAt  *time.Time `json:"answered_at,omitempty"`
}

// DashboardEntry response type
type DashboardEntry struct {
	Player
	Questions map[string]QuestionDetail `json:"questions"`
}

// Dashboard response type
type Dashboard []DashboardEntry

// PlayerQuestions response type
type PlayerQuestions struct {
	PlayerID  string                    `json:"player_id"`
	Name      string                    `json:"name"`
	Questions map[string]QuestionDetail `json:"questions"`
}

// AnswerTime response type
type AnswerTime struct {
	TimeSpentMS int64     `json:"time_spent_ms"`
	AnsweredAt  time.Time `json:"answered_at"`
	Correct     bool      `json:"correct"`
	Fastest     bool      `json:"fastest"`
}

// PlayerTimes response type
type PlayerTimes struct {
	PlayerID      string                `json:"player_id"`
	Name          string                `json:"name"`
	Times         map[string]AnswerTime `json:"times"`
	AnsweredCount int                   `json:"answered_count"`
	TotalTimeMS   int64                 `json:"total_time_ms"`
}

// QuestionStats response type
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

// GlobalStats response type
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

// CleanupResult response type
type CleanupResult struct {
	Message            string    `json:"message"`
	ActivePlayersCount int       `json:"active_players_count"`
	CleanupTimestamp   time.Time `json:"cleanup_timestamp"`
}

// HealthResult response type
type HealthResult struct {
	Status             string    `json:"status"`
	ActivePlayers      int       `json:"active_players"`
	QuestionsWithBonus int       `json:"questions_with_bonus"`
	ServerTime         time.Time `json:"server_time"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.Name, p.PlayerID)
	fmt.Printf("Score: %d (bonus %d)\n", p.Score, p.BonusEarned)
	fmt.Printf("Status: %s\n", p.Status)
	fmt.Printf("Question: %d of %d\n", p.CurrentQuestionNumber, p.TotalQuestionsInGame)
}

func (o *Output) printRegisterResult(r RegisterResult) {
	fmt.Println(r.Message)
	o.printPlayer(r.PlayerData)
}

func (o *Output) printUpdateResult(u UpdateResult) {
	fmt.Println(u.Message)
	o.printPlayer(u.PlayerData)
	if u.BonusInfo != nil {
		fmt.Printf("Bonus: +%d points on question %d (%s)\n",
			u.BonusInfo.BonusPoints, u.BonusInfo.QuestionID, u.BonusInfo.Reason)
	}
}

func (o *Output) printDashboard(d Dashboard) {
	fmt.Printf("Players (%d):\n", len(d))
	for rank, entry := range d {
		fmt.Printf("  %d. %s (%s) - %d points, %s\n",
			rank+1, entry.Name, entry.PlayerID, entry.Score, entry.Status)
		for _, id := range sortedQuestionIDs(mapKeysDetail(entry.Questions)) {
			detail := entry.Questions[strconv.Itoa(id)]
			if !detail.Answered {
				continue
			}
			fmt.Printf("     Q%d: %s\n", id, describeDetail(detail))
		}
	}
}

func (o *Output) printPlayerQuestions(p PlayerQuestions) {
	fmt.Printf("Player: %s (%s)\n", p.Name, p.PlayerID)
	for _, id := range sortedQuestionIDs(mapKeysDetail(p.Questions)) {
		detail := p.Questions[strconv.Itoa(id)]
		fmt.Printf("  Q%d: %s\n", id, describeDetail(detail))
	}
}

func (o *Output) printPlayerTimes(p PlayerTimes) {
	fmt.Printf("Player: %s (%s)\n", p.Name, p.PlayerID)
	fmt.Printf("Answered: %d questions in %d ms total\n", p.AnsweredCount, p.TotalTimeMS)
	ids := make([]string, 0, len(p.Times))
	for id := range p.Times {
		ids = append(ids, id)
	}
	for _, id := range sortedQuestionIDs(ids) {
		t := p.Times[strconv.Itoa(id)]
		marker := "wrong"
		if t.Correct {
			marker = "correct"
		}
		if t.Fastest {
			marker += ", fastest"
		}
		fmt.Printf("  Q%d: %d ms (%s)\n", id, t.TimeSpentMS, marker)
	}
}

func (o *Output) printQuestionStats(q QuestionStats) {
	fmt.Printf("Question %d:\n", q.QuestionID)
	fmt.Printf("  Attempts: %d (%d correct, %.1f%% accuracy)\n",
		q.TotalAttempts, q.CorrectAttempts, q.AccuracyRate)
	if q.TotalAttempts > 0 {
		fmt.Printf("  Times: min %d ms, avg %.1f ms, max %d ms\n",
			q.MinTimeMS, q.AvgTimeMS, q.MaxTimeMS)
	}
	if q.BonusAwarded {
		fmt.Printf("  Bonus winner: %s\n", q.BonusWinner)
	}
}

func (o *Output) printGlobalStats(g GlobalStats) {
	fmt.Printf("Players: %d\n", g.TotalPlayers)
	fmt.Printf("Scores: avg %.1f, high %d, low %d\n", g.AverageScore, g.HighestScore, g.LowestScore)
	fmt.Printf("Bonus points awarded: %d\n", g.TotalBonusPoints)
	if len(g.PlayersByStatus) > 0 {
		statuses := make([]string, 0, len(g.PlayersByStatus))
		for status := range g.PlayersByStatus {
			statuses = append(statuses, status)
		}
		sort.Strings(statuses)
		fmt.Println("By status:")
		for _, status := range statuses {
			fmt.Printf("  %s: %d\n", status, g.PlayersByStatus[status])
		}
	}
	ids := make([]string, 0, len(g.Questions))
	for id := range g.Questions {
		ids = append(ids, id)
	}
	if len(ids) > 0 {
		fmt.Println("Questions:")
		for _, id := range sortedQuestionIDs(ids) {
			q := g.Questions[strconv.Itoa(id)]
			fmt.Printf("  Q%d: %d attempts, %.1f%% accuracy\n",
				id, q.TotalAttempts, q.AccuracyRate)
		}
	}
}

func (o *Output) printCleanupResult(c CleanupResult) {
	fmt.Println(c.Message)
	fmt.Printf("Active players: %d\n", c.ActivePlayersCount)
	fmt.Printf("At: %s\n", c.CleanupTimestamp.Format(time.RFC3339))
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Active players: %d\n", h.ActivePlayers)
	fmt.Printf("Questions with bonus: %d\n", h.QuestionsWithBonus)
	fmt.Printf("Server time: %s\n", h.ServerTime.Format(time.RFC3339))
}

func describeDetail(d QuestionDetail) string {
	if !d.Answered {
		return "not answered"
	}
	s := "wrong"
	if d.Correct {
		s = "correct"
	}
	s += fmt.Sprintf(", %d ms", d.TimeSpentMS)
	if d.Fastest {
		s += ", fastest"
	}
	return s
}

func mapKeysDetail(m map[string]QuestionDetail) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// sortedQuestionIDs parses string question keys and returns them in
// numeric order, dropping anything non-numeric.
func sortedQuestionIDs(keys []string) []int {
	ids := make([]int, 0, len(keys))
	for _, k := range keys {
		if id, err := strconv.Atoi(k); err == nil {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}
