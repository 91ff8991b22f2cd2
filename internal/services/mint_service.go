package services

import (
	"fmt"

	"mintd/internal/issuer"
	"mintd/internal/models"
	"mintd/internal/structures"
)

type InitializeRequest struct {
	Initializer string
	Creator     string
	MaxSupply   uint64
	OGMax       uint64
	WLMax       uint64
	PublicMax   uint64
	OGPrice     uint64
	WLPrice     uint64
	PublicPrice uint64
}

type ClaimRequest struct {
	Payer   string
	Owner   string
	Creator string
	Title   string
}

type ClaimReceipt struct {
	Index uint64 `json:"index"`
	URI   string `json:"uri"`
	Tier  string `json:"tier"`
	Price uint64 `json:"price"`
	Payer string `json:"payer"`
}

type MintServiceInterface interface {
	Initialize(req InitializeRequest) error
	AddPriorityList(caller string, wallets []string) error
	RemovePriorityList(caller string, wallets []string) error
	GrantAllowList(caller, user string) error
	RevokeAllowList(caller, user string) error
	UpdatePrice(caller string, og, wl, public uint64) error
	UpdateAmount(caller string, og, wl, public uint64) error
	SetStage(caller string, stage int8) error
	SetURI(caller, uri string) error
	SetFreeze(caller string, frozen bool) error
	Claim(req ClaimRequest) (*ClaimReceipt, error)
	GetConfig() *models.SaleConfig
	GetPriorityList() []string
	GetAllowListEntry(user string) (*models.AllowListEntry, bool)
	GetCounter(wallet string) uint64
	GetAssets() []*models.Asset
}

// MintService is the sale controller: it resolves a claimant's tier,
// validates caps and funds, and drives the claim as one arena
// transaction. Stage transitions happen only through SetStage.
type MintService struct {
	arena  *models.Arena
	issuer issuer.IssuerInterface
	symbol string
}

func NewMintService(conf *structures.Config, arena *models.Arena, iss issuer.IssuerInterface) MintServiceInterface {
	symbol := conf.Sale.Symbol
	if symbol == "" {
		symbol = "symb"
	}
	return &MintService{
		arena:  arena,
		issuer: iss,
		symbol: symbol,
	}
}

// isAdmin is the authorization predicate guarding every privileged
// operation. Pure function of (config, caller).
func isAdmin(cfg *models.SaleConfig, caller string) error {
	if cfg.Admin != caller {
		return ErrNotAuthorized
	}
	return nil
}

// adminUpdate loads the sale config, checks the caller and applies fn,
// persisting the config only when fn succeeds.
func (ms *MintService) adminUpdate(caller string, fn func(cfg *models.SaleConfig, tx *models.Txn) error) error {
	return ms.arena.Update(func(tx *models.Txn) error {
		cfg, ok, err := models.GetSaleConfig(tx)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		if err := isAdmin(cfg, caller); err != nil {
			return err
		}
		if err := fn(cfg, tx); err != nil {
			return err
		}
		return models.PutSaleConfig(tx, cfg)
	})
}

func (ms *MintService) Initialize(req InitializeRequest) error {
	return ms.arena.Update(func(tx *models.Txn) error {
		if tx.Has(models.SaleConfigAddress()) {
			return ErrAlreadyInitialized
		}
		cfg := &models.SaleConfig{
			Admin:        req.Initializer,
			Creator:      req.Creator,
			MaxSupply:    req.MaxSupply,
			CurNum:       0,
			OGMax:        req.OGMax,
			WLMax:        req.WLMax,
			PublicMax:    req.PublicMax,
			OGPrice:      req.OGPrice,
			WLPrice:      req.WLPrice,
			PublicPrice:  req.PublicPrice,
			PriorityList: make([]string, 0, models.PriorityListCap),
			CurStage:     models.StageDisabled,
		}
		return models.PutSaleConfig(tx, cfg)
	})
}

// AddPriorityList appends wallets not already present. Duplicates within
// the call or against existing members are skipped, not errored. Growing
// past the fixed capacity aborts the whole call.
func (ms *MintService) AddPriorityList(caller string, wallets []string) error {
	return ms.adminUpdate(caller, func(cfg *models.SaleConfig, _ *models.Txn) error {
		for _, wallet := range wallets {
			if wallet == "" || cfg.InPriorityList(wallet) {
				continue
			}
			if len(cfg.PriorityList) >= models.PriorityListCap {
				return ErrNotAllowed
			}
			cfg.PriorityList = append(cfg.PriorityList, wallet)
		}
		return nil
	})
}

// RemovePriorityList removes wallets by position; absent wallets are
// silently skipped.
func (ms *MintService) RemovePriorityList(caller string, wallets []string) error {
	return ms.adminUpdate(caller, func(cfg *models.SaleConfig, _ *models.Txn) error {
		for _, wallet := range wallets {
			for i, member := range cfg.PriorityList {
				if member == wallet {
					cfg.PriorityList = append(cfg.PriorityList[:i], cfg.PriorityList[i+1:]...)
					break
				}
			}
		}
		return nil
	})
}

func (ms *MintService) GrantAllowList(caller, user string) error {
	return ms.arena.Update(func(tx *models.Txn) error {
		cfg, ok, err := models.GetSaleConfig(tx)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		if err := isAdmin(cfg, caller); err != nil {
			return err
		}
		if user == "" {
			return ErrNotAllowed
		}
		configAddr := models.SaleConfigAddress()
		if tx.Has(models.AllowListAddress(configAddr, user)) {
			return ErrAlreadyExists
		}
		entry := &models.AllowListEntry{
			User:        user,
			Config:      string(configAddr),
			Initializer: caller,
			Count:       1,
		}
		return models.PutAllowListEntry(tx, entry)
	})
}

func (ms *MintService) RevokeAllowList(caller, user string) error {
	return ms.arena.Update(func(tx *models.Txn) error {
		cfg, ok, err := models.GetSaleConfig(tx)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		if err := isAdmin(cfg, caller); err != nil {
			return err
		}
		configAddr := models.SaleConfigAddress()
		entry, ok, err := models.GetAllowListEntry(tx, configAddr, user)
		if err != nil {
			return err
		}
		if !ok || entry.Config != string(configAddr) {
			return ErrNotFound
		}
		if entry.Initializer != caller {
			return ErrNotAuthorized
		}
		tx.Delete(models.AllowListAddress(configAddr, user))
		return nil
	})
}

// UpdatePrice applies partial-update semantics: a zero value leaves the
// corresponding field unchanged, so a price can never be set to zero.
func (ms *MintService) UpdatePrice(caller string, og, wl, public uint64) error {
	return ms.adminUpdate(caller, func(cfg *models.SaleConfig, _ *models.Txn) error {
		if og > 0 {
			cfg.OGPrice = og
		}
		if wl > 0 {
			cfg.WLPrice = wl
		}
		if public > 0 {
			cfg.PublicPrice = public
		}
		return nil
	})
}

func (ms *MintService) UpdateAmount(caller string, og, wl, public uint64) error {
	return ms.adminUpdate(caller, func(cfg *models.SaleConfig, _ *models.Txn) error {
		if og > 0 {
			cfg.OGMax = og
		}
		if wl > 0 {
			cfg.WLMax = wl
		}
		if public > 0 {
			cfg.PublicMax = public
		}
		return nil
	})
}

// SetStage ignores out-of-range values without error, keeping stage
// transitions safe against malformed input.
func (ms *MintService) SetStage(caller string, stage int8) error {
	return ms.adminUpdate(caller, func(cfg *models.SaleConfig, _ *models.Txn) error {
		if models.Stage(stage).Valid() {
			cfg.CurStage = models.Stage(stage)
		}
		return nil
	})
}

func (ms *MintService) SetURI(caller, uri string) error {
	return ms.adminUpdate(caller, func(cfg *models.SaleConfig, _ *models.Txn) error {
		cfg.BaseURI = uri
		return nil
	})
}

func (ms *MintService) SetFreeze(caller string, frozen bool) error {
	return ms.adminUpdate(caller, func(cfg *models.SaleConfig, _ *models.Txn) error {
		cfg.Frozen = frozen
		return nil
	})
}

// Claim validates eligibility and runs the pay+issue+count transaction.
// All four effects commit together or none do; a failed claim leaves
// every record untouched, so resubmission is always safe.
func (ms *MintService) Claim(req ClaimRequest) (*ClaimReceipt, error) {
	var receipt *ClaimReceipt

	err := ms.arena.Update(func(tx *models.Txn) error {
		cfg, ok, err := models.GetSaleConfig(tx)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}

		if cfg.Frozen {
			return ErrNotActive
		}
		if cfg.CurStage == models.StageDisabled {
			return ErrNotActive
		}
		if !cfg.CurStage.Valid() {
			return ErrInvalidStage
		}

		tier, err := ms.resolveTier(tx, cfg, req.Payer)
		if err != nil {
			return err
		}
		cap := cfg.TierMax(tier)
		price := cfg.TierPrice(tier)

		counter, err := models.GetUserCounter(tx, req.Payer)
		if err != nil {
			return err
		}
		if cfg.CurNum >= cfg.MaxSupply || cfg.CurStage != tier.RequiredStage() || counter.CurNum >= cap {
			return ErrNotAllowed
		}
		if req.Owner != cfg.Admin {
			return ErrNotAllowed
		}

		payerBalance, err := models.GetBalance(tx, req.Payer)
		if err != nil {
			return err
		}
		if payerBalance.Amount < price {
			return ErrInsufficientFunds
		}

		// Self-transfer is net zero; writing two copies of the same
		// record would credit the wallet twice.
		if req.Payer != req.Owner {
			ownerBalance, err := models.GetBalance(tx, req.Owner)
			if err != nil {
				return err
			}
			payerBalance.Amount -= price
			ownerBalance.Amount += price
			if err := models.PutBalance(tx, req.Payer, payerBalance); err != nil {
				return err
			}
			if err := models.PutBalance(tx, req.Owner, ownerBalance); err != nil {
				return err
			}
		}

		uri := fmt.Sprintf("%s%d%s", cfg.BaseURI, cfg.CurNum, ".json")
		asset, err := ms.issuer.Issue(tx, issuer.IssueRequest{
			Recipient: req.Payer,
			URI:       uri,
			Title:     req.Title,
			Symbol:    ms.symbol,
			Index:     cfg.CurNum,
			Creators: []models.CreatorShare{
				{Address: req.Creator, Share: 100},
				{Address: cfg.Admin, Share: 0},
			},
		})
		if err != nil {
			return err
		}

		counter.CurNum++
		cfg.CurNum++
		if err := models.PutUserCounter(tx, req.Payer, counter); err != nil {
			return err
		}
		if err := models.PutSaleConfig(tx, cfg); err != nil {
			return err
		}

		receipt = &ClaimReceipt{
			Index: asset.Index,
			URI:   asset.URI,
			Tier:  tier.String(),
			Price: price,
			Payer: req.Payer,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// resolveTier defaults to Public. During Presale, priority-list
// membership wins over an allow-list entry.
func (ms *MintService) resolveTier(tx *models.Txn, cfg *models.SaleConfig, payer string) (models.Tier, error) {
	if cfg.CurStage != models.StagePresale {
		return models.TierPublic, nil
	}
	if cfg.InPriorityList(payer) {
		return models.TierOG, nil
	}
	entry, ok, err := models.GetAllowListEntry(tx, models.SaleConfigAddress(), payer)
	if err != nil {
		return models.TierPublic, err
	}
	if ok && entry.Count == 1 {
		return models.TierWL, nil
	}
	return models.TierPublic, nil
}

func (ms *MintService) GetConfig() *models.SaleConfig {
	var cfg *models.SaleConfig
	_ = ms.arena.View(func(tx *models.Txn) error {
		loaded, ok, err := models.GetSaleConfig(tx)
		if err == nil && ok {
			cfg = loaded
		}
		return nil
	})
	return cfg
}

func (ms *MintService) GetPriorityList() []string {
	cfg := ms.GetConfig()
	if cfg == nil {
		return nil
	}
	return cfg.PriorityList
}

func (ms *MintService) GetAllowListEntry(user string) (*models.AllowListEntry, bool) {
	var entry *models.AllowListEntry
	_ = ms.arena.View(func(tx *models.Txn) error {
		loaded, ok, err := models.GetAllowListEntry(tx, models.SaleConfigAddress(), user)
		if err == nil && ok {
			entry = loaded
		}
		return nil
	})
	return entry, entry != nil
}

func (ms *MintService) GetCounter(wallet string) uint64 {
	var count uint64
	_ = ms.arena.View(func(tx *models.Txn) error {
		counter, err := models.GetUserCounter(tx, wallet)
		if err == nil {
			count = counter.CurNum
		}
		return nil
	})
	return count
}

func (ms *MintService) GetAssets() []*models.Asset {
	var assets []*models.Asset
	_ = ms.arena.View(func(tx *models.Txn) error {
		book, err := models.GetAssetBook(tx)
		if err == nil {
			assets = book.Assets
		}
		return nil
	})
	return assets
}
