package models

import (
	"iter"
	"time"

	"amabackend/internal/domain"
	"amabackend/internal/query"
)

type User struct {
	ID           int64             `json:"id"`
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	UserName     string            `json:"user_name"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	PasswordHash string            `json:"-"`
	Photo        *string           `json:"photo,omitempty"`
	UserType     domain.UserType   `json:"user_type"`
	Status       domain.UserStatus `json:"status"`
	State        string            `json:"state"`
	Country      domain.Country    `json:"country"`
	CreatedAt    time.Time         `json:"created_at"`
}

// UserList is the list view returned by user searches.
type UserList struct {
	ID        int64             `json:"id"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Email     string            `json:"email"`
	UserType  domain.UserType   `json:"user_type"`
	Status    domain.UserStatus `json:"status"`
	Country   domain.Country    `json:"country"`
	CreatedAt time.Time         `json:"created_at"`
}

type UserFilter struct {
	Email     *query.TextFilter                        `json:"email,omitempty"`
	UserType  *query.DiscreteFilter[domain.UserType]   `json:"user_type,omitempty"`
	Status    *query.DiscreteFilter[domain.UserStatus] `json:"status,omitempty"`
	Country   *query.DiscreteFilter[domain.Country]    `json:"country,omitempty"`
	CreatedAt *query.OrderedFilter[query.Date]         `json:"created_at,omitempty"`
}

func (f UserFilter) Columns() iter.Seq2[string, query.Slot] {
	return query.Seq(
		query.Text("email", f.Email),
		query.Discrete("user_type", f.UserType),
		query.Discrete("status", f.Status),
		query.Discrete("country", f.Country),
		query.Ordered("created_at", f.CreatedAt),
	)
}

type UserOrder struct {
	ID        *query.Direction `json:"id,omitempty"`
	LastName  *query.Direction `json:"last_name,omitempty"`
	CreatedAt *query.Direction `json:"created_at,omitempty"`
}

func (o UserOrder) Columns() iter.Seq2[string, query.Slot] {
	return query.Seq(
		query.By("id", o.ID),
		query.By("last_name", o.LastName),
		query.By("created_at", o.CreatedAt),
	)
}

type UserParams = query.Params[UserFilter, UserOrder]
