package practice

import (
	"github.com/abhisek/mora/internal/grade"
	"github.com/abhisek/mora/internal/question"
)

// questionReadyMsg is sent when the next question has been fetched.
type questionReadyMsg struct {
	Served *question.Served
	Err    error
}

// answerGradedMsg is sent when answer processing completed.
type answerGradedMsg struct {
	Outcome grade.Outcome
	Err     error
}

// precacheDoneMsg is sent when background precaching finished. Errors
// are logged and otherwise ignored; the next fetch falls back to live
// generation.
type precacheDoneMsg struct{}

// sessionDoneMsg is sent to end the session and show the summary.
type sessionDoneMsg struct{}
