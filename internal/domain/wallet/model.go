package wallet

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultCurrency = "NGN"

type TransactionType string

const (
	TransactionDeposit      TransactionType = "DEPOSIT"
	TransactionWithdrawal   TransactionType = "WITHDRAWAL"
	TransactionContribution TransactionType = "CONTRIBUTION"
	TransactionRefund       TransactionType = "REFUND"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionDeposit, TransactionWithdrawal, TransactionContribution, TransactionRefund:
		return true
	}
	return false
}

// Credits reports whether the transaction adds to the balance.
func (t TransactionType) Credits() bool {
	switch t {
	case TransactionDeposit, TransactionRefund:
		return true
	case TransactionWithdrawal, TransactionContribution:
		return false
	}
	return false
}

// Wallet holds a user's balance in minor units (kobo).
type Wallet struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex"`
	Balance   int64     `json:"balance" gorm:"not null;default:0"`
	Currency  string    `json:"currency" gorm:"type:varchar(3);not null;default:NGN"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Wallet) TableName() string {
	return "wallets"
}

func (w *Wallet) BeforeCreate(_ *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.Currency == "" {
		w.Currency = DefaultCurrency
	}
	return nil
}

// Transaction records a single balance movement.
type Transaction struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	WalletID    uuid.UUID       `json:"wallet_id" gorm:"type:uuid;not null;index"`
	Amount      int64           `json:"amount" gorm:"not null"`
	Type        TransactionType `json:"type" gorm:"type:varchar(16);not null;index;check:type IN ('DEPOSIT','WITHDRAWAL','CONTRIBUTION','REFUND')"`
	Reference   string          `json:"reference" gorm:"type:varchar(64);not null;uniqueIndex"`
	Description string          `json:"description,omitempty" gorm:"type:varchar(255)"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

func (Transaction) TableName() string {
	return "wallet_transactions"
}

func (t *Transaction) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Reference == "" {
		t.Reference = "TXN-" + t.ID.String()
	}
	return nil
}

// PayoutAccount is the bank account withdrawals are sent to.
type PayoutAccount struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	UserID        int64     `json:"user_id" gorm:"not null;uniqueIndex"`
	BankName      string    `json:"bank_name" gorm:"type:varchar(120);not null"`
	AccountNumber string    `json:"account_number" gorm:"type:varchar(10);not null"`
	AccountName   string    `json:"account_name" gorm:"type:varchar(120);not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (PayoutAccount) TableName() string {
	return "payout_accounts"
}
