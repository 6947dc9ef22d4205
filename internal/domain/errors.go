package domain

import "errors"

var (
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates a submitted question ID is invalid.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound indicates a submitted option ID is invalid.
	ErrOptionNotFound = errors.New("option not found")
	// ErrSessionNotFound is returned when a response session does not exist or has expired.
	ErrSessionNotFound = errors.New("response session not found")
	// ErrInvalidAnswer is returned when a submission does not fit its question type.
	ErrInvalidAnswer = errors.New("invalid answer for question type")
	// ErrSessionCompleted is returned when answering a session that already produced a result.
	ErrSessionCompleted = errors.New("response session already completed")
	// ErrEmailRequired is returned when completing a session of a quiz that collects email
	// before any email was submitted.
	ErrEmailRequired = errors.New("email required before results")
	// ErrInvalidEmail is returned for a malformed email submission.
	ErrInvalidEmail = errors.New("invalid email address")
)

// ErrInvalidQuiz indicates a loaded quiz document is structurally unusable.
var ErrInvalidQuiz = errors.New("invalid quiz definition")
