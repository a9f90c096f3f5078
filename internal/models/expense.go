package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Payment method values accepted on an expense.
const (
	PayCash          = "cash"
	PayCreditCard    = "credit_card"
	PayDebitCard     = "debit_card"
	PayBankTransfer  = "bank_transfer"
	PayDigitalWallet = "digital_wallet"
	PayOther         = "other"
)

// PaymentMethods lists every accepted payment method value.
var PaymentMethods = []string{
	PayCash, PayCreditCard, PayDebitCard, PayBankTransfer, PayDigitalWallet, PayOther,
}

// ValidPaymentMethod reports whether s is one of the enumerated methods.
func ValidPaymentMethod(s string) bool {
	for _, m := range PaymentMethods {
		if s == m {
			return true
		}
	}
	return false
}

// StringList stores a list of free-text tags as a JSON array in a TEXT column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("scan tags: unsupported type %T", src)
	}
	if len(b) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(b, l)
}

// Expense is a single spend record. Amount is stored as exact decimal and must
// be strictly positive; the referenced category must belong to the same user.
type Expense struct {
	ID            uint            `gorm:"primaryKey"`
	UserID        uint            `gorm:"index;not null"`
	CategoryID    uint            `gorm:"index;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null;check:amount > 0"`
	ExpenseDate   time.Time       `gorm:"index;not null"`
	Description   string          `gorm:"size:255"`
	PaymentMethod string          `gorm:"size:32;index"`
	Tags          StringList      `gorm:"type:text"`
	Notes         string          `gorm:"type:text"`
	ReceiptURL    string          `gorm:"size:255"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	User     User     `gorm:"constraint:OnDelete:CASCADE"`
	Category Category `gorm:"constraint:OnDelete:RESTRICT"`
}
