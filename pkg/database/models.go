package database

import (
	"time"

	"github.com/shopspring/decimal"
)

// Message is a raw SMS as delivered by the inbox source. SourceID is the
// inbox-provided identifier and the only stable key for "have we seen this
// message before".
type Message struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	SourceID    string     `gorm:"uniqueIndex" json:"sourceId"`
	Sender      string     `json:"sender"`
	Body        string     `json:"body"`
	ReceivedAt  time.Time  `json:"receivedAt"`
	IsProcessed bool       `json:"isProcessed"`
	ProcessedAt *time.Time `json:"processedAt"`

	// Source partitions document stores; always "sms" for inbox-derived rows.
	Source string `json:"source"`
}

func (Message) TableName() string {
	return "messages"
}

type TransactionType string

const (
	TransactionTypeCredit = TransactionType("credit")
	TransactionTypeDebit  = TransactionType("debit")
)

// TransactionMode is the payment channel mentioned in the message body.
type TransactionMode string

const (
	TransactionModeUPI     = TransactionMode("UPI")
	TransactionModeCard    = TransactionMode("CARD")
	TransactionModeCash    = TransactionMode("CASH")
	TransactionModeUnknown = TransactionMode("UNKNOWN")
)

type TransactionStatus string

const (
	TransactionStatusPending  = TransactionStatus("pending")
	TransactionStatusApproved = TransactionStatus("approved")
	TransactionStatusIgnored  = TransactionStatus("ignored")
)

// Transaction is the parsed form of one bank SMS. Ref is unique; inserting an
// existing Ref is a no-op, which is what makes rescanning the inbox safe.
type Transaction struct {
	ID       string            `gorm:"primaryKey" json:"id"`
	Ref      string            `gorm:"uniqueIndex" json:"ref"`
	Amount   decimal.Decimal   `json:"amount"`
	Type     TransactionType   `json:"type"`
	Mode     TransactionMode   `json:"mode"`
	Category string            `json:"category"`
	Merchant string            `json:"merchant"`
	SenderID string            `json:"senderId"`
	Status   TransactionStatus `json:"status"`
	Date     time.Time         `json:"date"`
	Raw      string            `json:"raw"`

	CreatedAt time.Time `json:"createdAt"`

	Source string `json:"source"`
}

func (Transaction) TableName() string {
	return "transactions"
}

const (
	CategoryFood          = "Food"
	CategoryTravel        = "Travel"
	CategoryShopping      = "Shopping"
	CategoryUtilities     = "Utilities"
	CategoryHealth        = "Health"
	CategoryEntertainment = "Entertainment"
	CategoryEducation     = "Education"
	CategorySalary        = "Salary"
	CategoryBusiness      = "Business"
	CategoryGroceries     = "Groceries"
	CategoryTransfers     = "Transfers"
	CategoryGeneral       = "General"
	CategoryOther         = "Other"
)

// Categories is the closed vocabulary consumed by the UI layer.
var Categories = []string{
	CategoryFood,
	CategoryTravel,
	CategoryShopping,
	CategoryUtilities,
	CategoryHealth,
	CategoryEntertainment,
	CategoryEducation,
	CategorySalary,
	CategoryBusiness,
	CategoryGroceries,
	CategoryTransfers,
	CategoryGeneral,
	CategoryOther,
}
