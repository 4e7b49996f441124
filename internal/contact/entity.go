// AngelaMos | 2026
// entity.go

package contact

import (
	"time"
)

const MessageStatusNew = "new"

// Message is an append-only contact-form submission.
type Message struct {
	ID        string    `db:"id"         json:"id"`
	Name      string    `db:"name"       json:"name"`
	Email     string    `db:"email"      json:"email"`
	Service   string    `db:"service"    json:"service"`
	Body      string    `db:"body"       json:"body"`
	Status    string    `db:"status"     json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Subscriber struct {
	ID             string    `db:"id"              json:"id"`
	Email          string    `db:"email"           json:"email"`
	IsActive       bool      `db:"is_active"       json:"is_active"`
	SubscribedDate time.Time `db:"subscribed_date" json:"subscribed_date"`
}
