package models

import "time"

// Contact is a contact form submission.
type Contact struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	FormType  string    `json:"form_type"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactFilters is the contact list filter bar.
type ContactFilters struct {
	FormType string `schema:"form_type"`
	Search   string `schema:"search"`
	FromDate string `schema:"from_date"`
	ToDate   string `schema:"to_date"`
}
