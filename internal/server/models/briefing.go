// Package models defines server-side data models persisted in the database.
package models

import "time"

// Briefing is one submission of the contact form: who the client is, what
// the session is for and how they want to be seen.
type Briefing struct {
	ID                  string     `json:"id"`
	Name                string     `json:"nome"`
	Profession          string     `json:"profissao"`
	Email               string     `json:"email"`
	Phone               string     `json:"telefone"`
	Goal                string     `json:"objetivo"`
	CreativeDescription string     `json:"descricao"`
	DesiredPerception   string     `json:"como_ser_visto"`
	References          string     `json:"referencias"`
	CreatedAt           time.Time  `json:"created_at"`
	NotifiedAt          *time.Time `json:"notified_at,omitempty"`
}
