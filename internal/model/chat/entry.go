package chat

import "time"

// Entry is one recorded question/answer exchange with the assistant.
type Entry struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	AskedAt  time.Time `json:"askedAt"`
}
