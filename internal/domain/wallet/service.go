package wallet

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"thriftsave/internal/database"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) GetOrCreateWallet(ctx context.Context, userID int64) (*Wallet, error) {
	wallet, err := s.getWalletByUserID(ctx, userID)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	wallet = &Wallet{UserID: userID, Balance: 0}
	if err := s.db.WithContext(ctx).Create(wallet).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return s.getWalletByUserID(ctx, userID)
		}
		return nil, err
	}
	return wallet, nil
}

// Deposit credits funds confirmed by the payment gateway.
func (s *Service) Deposit(ctx context.Context, userID, amount int64, reference string) (*Wallet, *Transaction, error) {
	return s.apply(ctx, userID, amount, TransactionDeposit, reference, "wallet deposit")
}

// Withdraw moves funds out to the user's payout account.
func (s *Service) Withdraw(ctx context.Context, userID, amount int64) (*Wallet, *Transaction, error) {
	if _, err := s.GetPayoutAccount(ctx, userID); err != nil {
		if errors.Is(err, ErrPayoutAccountNotFound) {
			return nil, nil, ErrPayoutAccountRequired
		}
		return nil, nil, err
	}
	return s.apply(ctx, userID, amount, TransactionWithdrawal, "", "withdrawal to payout account")
}

// Debit takes a package contribution from the wallet.
func (s *Service) Debit(ctx context.Context, userID, amount int64, description string) (*Transaction, error) {
	_, txn, err := s.apply(ctx, userID, amount, TransactionContribution, "", description)
	return txn, err
}

// Credit returns money to the wallet, e.g. when a subscription could not be
// stored after its contribution was taken.
func (s *Service) Credit(ctx context.Context, userID, amount int64, description string) (*Transaction, error) {
	_, txn, err := s.apply(ctx, userID, amount, TransactionRefund, "", description)
	return txn, err
}

func (s *Service) apply(ctx context.Context, userID, amount int64, typ TransactionType, reference, description string) (*Wallet, *Transaction, error) {
	if amount <= 0 {
		return nil, nil, ErrInvalidAmount
	}
	if !typ.Valid() {
		return nil, nil, ErrInvalidTxnType
	}

	var wallet Wallet
	var txn Transaction

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := getOrCreateWalletForUpdate(tx, userID, &wallet); err != nil {
			return err
		}

		if typ.Credits() {
			wallet.Balance += amount
		} else {
			if wallet.Balance < amount {
				return ErrInsufficientFunds
			}
			wallet.Balance -= amount
		}

		if err := tx.Model(&Wallet{}).Where("id = ?", wallet.ID).Update("balance", wallet.Balance).Error; err != nil {
			return err
		}

		txn = Transaction{
			WalletID:    wallet.ID,
			Amount:      amount,
			Type:        typ,
			Reference:   strings.TrimSpace(reference),
			Description: description,
		}
		return tx.Create(&txn).Error
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, nil, ErrDuplicateReference
		}
		return nil, nil, err
	}

	return &wallet, &txn, nil
}

// ListTransactions returns the ledger newest first.
func (s *Service) ListTransactions(ctx context.Context, userID int64) ([]Transaction, error) {
	wallet, err := s.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	var txns []Transaction
	if err := s.db.WithContext(ctx).
		Where("wallet_id = ?", wallet.ID).
		Order("created_at desc").
		Find(&txns).Error; err != nil {
		return nil, err
	}

	return txns, nil
}

func (s *Service) GetPayoutAccount(ctx context.Context, userID int64) (*PayoutAccount, error) {
	var acc PayoutAccount
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&acc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPayoutAccountNotFound
		}
		return nil, err
	}
	return &acc, nil
}

// SavePayoutAccount creates or replaces the user's payout account.
func (s *Service) SavePayoutAccount(ctx context.Context, userID int64, req PayoutAccountRequest) (*PayoutAccount, error) {
	number := strings.TrimSpace(req.AccountNumber)
	if !isAccountNumber(number) {
		return nil, ErrInvalidAccountNumber
	}

	acc := PayoutAccount{
		UserID:        userID,
		BankName:      strings.TrimSpace(req.BankName),
		AccountNumber: number,
		AccountName:   strings.TrimSpace(req.AccountName),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"bank_name", "account_number", "account_name", "updated_at"}),
	}).Create(&acc).Error
	if err != nil {
		return nil, err
	}
	return s.GetPayoutAccount(ctx, userID)
}

func (s *Service) getWalletByUserID(ctx context.Context, userID int64) (*Wallet, error) {
	var wallet Wallet
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

func getOrCreateWalletForUpdate(tx *gorm.DB, userID int64, wallet *Wallet) error {
	err := lockWallet(tx, userID, wallet)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := insertWalletIfMissing(tx, userID); err != nil {
		return err
	}
	return lockWallet(tx, userID, wallet)
}

func lockWallet(tx *gorm.DB, userID int64, wallet *Wallet) error {
	var w Wallet
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("user_id = ?", userID).First(&w).Error; err != nil {
		return err
	}
	*wallet = w
	return nil
}

// insertWalletIfMissing creates the user's wallet unless another transaction
// got there first. A conflict is not an error, so tx stays usable.
func insertWalletIfMissing(tx *gorm.DB, userID int64) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&Wallet{UserID: userID}).Error
}

func isAccountNumber(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
