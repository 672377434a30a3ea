// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User model
type User struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FirstName   string             `json:"firstName" bson:"firstName"`
	LastName    string             `json:"lastName" bson:"lastName"`
	Email       string             `json:"email,omitempty" bson:"email,omitempty"`
	PhoneNumber string             `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	IsVerified  bool               `json:"isVerified" bson:"isVerified"`
	DateJoined  time.Time          `json:"dateJoined,omitempty" bson:"dateJoined,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Placeholder names used when a member has no matching user profile.
const (
	UnknownFirstName = "Unknown"
	UnknownLastName  = "User"
)

// UserDetails is the public slice of a user profile attached to referral views.
type UserDetails struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
}

// DetailsOf returns the public details of u, or the Unknown User placeholder when u is nil.
func DetailsOf(u *User) UserDetails {
	if u == nil {
		return UserDetails{FirstName: UnknownFirstName, LastName: UnknownLastName}
	}
	d := UserDetails{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
	if d.FirstName == "" {
		d.FirstName = UnknownFirstName
	}
	if d.LastName == "" {
		d.LastName = UnknownLastName
	}
	return d
}

// Response model
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
