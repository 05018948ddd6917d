package request

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Name string `json:"name"`
}

// UpdateStatusRequest is the request body for updating a player.
// All fields other than player_id are optional; absent fields are left
// unchanged. question_id together with last_answer_correct marks the
// request as an answer submission.
type UpdateStatusRequest struct {
	PlayerID              string  `json:"player_id"`
	Name                  *string `json:"name,omitempty"`
	Score                 *int    `json:"score,omitempty"`
	CurrentQuestionNumber *int    `json:"current_question_number,omitempty"`
	TotalQuestionsInGame  *int    `json:"total_questions_in_game,omitempty"`
	Status                *string `json:"status,omitempty"`
	QuestionID            *int    `json:"question_id,omitempty"`
	TimeSpentMS           *int64  `json:"time_spent_ms,omitempty"`
	LastAnswerCorrect     *bool   `json:"last_answer_correct,omitempty"`
}
