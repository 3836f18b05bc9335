package model

import "time"

// Review is a customer product review as stored in the `reviews`
// table. UserName is joined from the users table for display and
// is not a column of reviews itself.
type Review struct {
	ID        string    `json:"id"`         // reviews.id
	ProductID string    `json:"-"`          // reviews.product_id
	UserID    uint64    `json:"-"`          // reviews.user_id
	UserName  string    `json:"user_name"`  // users.name (joined)
	Rating    int       `json:"rating"`     // reviews.rating (1..5)
	Content   string    `json:"content"`    // reviews.content
	CreatedAt time.Time `json:"created_at"` // reviews.created_at
}

// ContactMessage is a message submitted through the contact form,
// stored in the `contacts` table for the back office to triage.
type ContactMessage struct {
	ID        string    `json:"id"`         // contacts.id
	Name      string    `json:"name"`       // contacts.name
	Email     string    `json:"email"`      // contacts.email
	Subject   string    `json:"subject"`    // contacts.subject
	Body      string    `json:"body"`       // contacts.body
	Status    string    `json:"status"`     // contacts.status (new/handled)
	CreatedAt time.Time `json:"created_at"` // contacts.created_at
}
