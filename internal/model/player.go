package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// PlayerStatus describes where a player is in the game flow.
// The engine stores whatever string clients send; these constants cover
// the statuses the game client is known to use.
type PlayerStatus string

const (
	StatusWaiting  PlayerStatus = "waiting"
	StatusPlaying  PlayerStatus = "playing"
	StatusFinished PlayerStatus = "finished"
)

// Player is a transient participant record. Score is server-authoritative:
// the client-reported base plus any bonuses the server has applied.
type Player struct {
	ID                    PlayerID
	Name                  string
	Score                 int
	CurrentQuestionNumber int
	TotalQuestionsInGame  int
	Status                PlayerStatus
	BonusEarned           int
	RegisteredAt          time.Time
	LastUpdated           time.Time
}

// ActivityRecord tracks when a player was last seen. It exists solely to
// drive eviction of inactive players.
type ActivityRecord struct {
	PlayerID     PlayerID
	LastActivity time.Time
}

// PlayerUpdate carries the optional fields of an update request.
// Nil means "field not present, leave unchanged".
type PlayerUpdate struct {
	Name                  *string
	Score                 *int
	CurrentQuestionNumber *int
	TotalQuestionsInGame  *int
	Status                *PlayerStatus
	Answer                *AnswerSubmission
}
