package model

import "time"

// QuestionID identifies a question within the configured question range
type QuestionID int

// AnswerRecord is one player's latest submission for one question.
// A later submission for the same (player, question) pair overwrites it.
type AnswerRecord struct {
	PlayerID    PlayerID
	QuestionID  QuestionID
	TimeSpentMS int64
	AnsweredAt  time.Time
	Correct     bool
}

// AnswerSubmission is the answer portion of an update request.
type AnswerSubmission struct {
	QuestionID  QuestionID
	TimeSpentMS int64
	Correct     bool
}

// QuestionBonus records the single first-correct winner for a question.
// At most one instance ever exists per question, and once created it is
// immutable until global cleanup.
type QuestionBonus struct {
	QuestionID         QuestionID
	FirstCorrectPlayer PlayerID
	AwardedAt          time.Time
}

// BonusInfo is returned to the winning submission of a question bonus.
type BonusInfo struct {
	BonusPoints int
	QuestionID  QuestionID
	Reason      string
}
