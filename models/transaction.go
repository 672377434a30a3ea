// models/transaction.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionDateLayout is the dd/mm/yyyy format stored in transactionDate.
const TransactionDateLayout = "02/01/2006"

// Transaction is a purchase, sale or referral bonus attributed to a member.
type Transaction struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	MemberID        string             `json:"memberId" bson:"memberId"`
	TransactionID   string             `json:"transactionId" bson:"transactionId"`
	ProductName     string             `json:"productName" bson:"productName"`
	ProductImage    string             `json:"productImage,omitempty" bson:"productImage,omitempty"`
	Quantity        int                `json:"quantity" bson:"quantity"`
	Price           float64            `json:"price" bson:"price"`
	Total           float64            `json:"total" bson:"total"`
	PaymentMethod   string             `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	TransactionDate string             `json:"transactionDate" bson:"transactionDate"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
}

// Amount is the monetary value the transaction contributes to earnings.
func (t *Transaction) Amount() float64 {
	return t.Total
}

// Timestamp returns CreatedAt, or the parsed transactionDate for records written without it.
// The zero time is returned when neither is usable.
func (t *Transaction) Timestamp() time.Time {
	if !t.CreatedAt.IsZero() {
		return t.CreatedAt
	}
	ts, err := time.Parse(TransactionDateLayout, t.TransactionDate)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// TransactionWithUser is a transaction annotated with its owner's name.
type TransactionWithUser struct {
	Transaction
	User struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"user"`
}
