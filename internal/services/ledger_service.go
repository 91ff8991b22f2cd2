package services

import (
	"math"

	"mintd/internal/models"
)

type LedgerServiceInterface interface {
	Deposit(wallet string, amount uint64) (uint64, error)
	GetBalance(wallet string) uint64
}

// LedgerService is the embedded stand-in for the host ledger: it holds
// wallet balances in the same arena the sale records live in, so a claim
// debits funds inside the same transaction that issues the asset.
type LedgerService struct {
	arena *models.Arena
}

func NewLedgerService(arena *models.Arena) LedgerServiceInterface {
	return &LedgerService{arena: arena}
}

func (ls *LedgerService) Deposit(wallet string, amount uint64) (uint64, error) {
	if wallet == "" || amount == 0 {
		return 0, ErrNotAllowed
	}

	var updated uint64
	err := ls.arena.Update(func(tx *models.Txn) error {
		balance, err := models.GetBalance(tx, wallet)
		if err != nil {
			return err
		}
		if balance.Amount > math.MaxUint64-amount {
			return ErrNotAllowed
		}
		balance.Amount += amount
		updated = balance.Amount
		return models.PutBalance(tx, wallet, balance)
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

func (ls *LedgerService) GetBalance(wallet string) uint64 {
	var amount uint64
	_ = ls.arena.View(func(tx *models.Txn) error {
		balance, err := models.GetBalance(tx, wallet)
		if err == nil {
			amount = balance.Amount
		}
		return nil
	})
	return amount
}
