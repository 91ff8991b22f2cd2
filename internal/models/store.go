package models

// Typed accessors bridging records and the arena. A (nil, false, nil)
// return means no record lives at the derived address.

func GetSaleConfig(tx *Txn) (*SaleConfig, bool, error) {
	data, ok := tx.Get(SaleConfigAddress())
	if !ok {
		return nil, false, nil
	}
	cfg := &SaleConfig{}
	if err := cfg.UnmarshalBinary(data); err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

func PutSaleConfig(tx *Txn, cfg *SaleConfig) error {
	data, err := cfg.MarshalBinary()
	if err != nil {
		return err
	}
	tx.Put(SaleConfigAddress(), data)
	return nil
}

func GetAllowListEntry(tx *Txn, config StorageKey, user string) (*AllowListEntry, bool, error) {
	data, ok := tx.Get(AllowListAddress(config, user))
	if !ok {
		return nil, false, nil
	}
	entry := &AllowListEntry{}
	if err := entry.UnmarshalBinary(data); err != nil {
		return nil, false, err
	}
	return entry, true, nil
}

func PutAllowListEntry(tx *Txn, entry *AllowListEntry) error {
	data, err := entry.MarshalBinary()
	if err != nil {
		return err
	}
	tx.Put(AllowListAddress(StorageKey(entry.Config), entry.User), data)
	return nil
}

// GetUserCounter returns a zero counter when none exists yet; counters
// are created lazily on first claim.
func GetUserCounter(tx *Txn, wallet string) (*UserCounter, error) {
	data, ok := tx.Get(UserCounterAddress(wallet))
	if !ok {
		return &UserCounter{}, nil
	}
	counter := &UserCounter{}
	if err := counter.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return counter, nil
}

func PutUserCounter(tx *Txn, wallet string, counter *UserCounter) error {
	data, err := counter.MarshalBinary()
	if err != nil {
		return err
	}
	tx.Put(UserCounterAddress(wallet), data)
	return nil
}

// GetBalance returns a zero balance for unknown wallets.
func GetBalance(tx *Txn, wallet string) (*Balance, error) {
	data, ok := tx.Get(BalanceAddress(wallet))
	if !ok {
		return &Balance{}, nil
	}
	balance := &Balance{}
	if err := balance.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return balance, nil
}

func PutBalance(tx *Txn, wallet string, balance *Balance) error {
	data, err := balance.MarshalBinary()
	if err != nil {
		return err
	}
	tx.Put(BalanceAddress(wallet), data)
	return nil
}

func GetAssetBook(tx *Txn) (*AssetBook, error) {
	data, ok := tx.Get(AssetBookAddress())
	if !ok {
		return NewAssetBook(), nil
	}
	book := &AssetBook{}
	if err := book.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return book, nil
}

func PutAssetBook(tx *Txn, book *AssetBook) error {
	data, err := book.MarshalBinary()
	if err != nil {
		return err
	}
	tx.Put(AssetBookAddress(), data)
	return nil
}
