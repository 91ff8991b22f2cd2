package models

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// StorageKey is the deterministic address of one record in the arena.
// Existence is checked by deriving the expected key and probing for a
// record there; there is no index structure.
type StorageKey string

// Namespace tags. The sale config seed doubles as the global namespace
// root; allow-list entries nest under the config they belong to.
const (
	saleConfigSeed   = "wallet_nft_minting"
	allowListSeed    = "nftminting"
	allowListSubSeed = "whitelist"
	balanceSeed      = "balance"
	assetBookSeed    = "assets"
)

// DeriveAddress hashes length-prefixed seed segments into a storage key.
// The length prefix keeps ("ab","c") distinct from ("a","bc").
func DeriveAddress(seeds ...string) StorageKey {
	h := sha256.New()
	var lenBuf [4]byte
	for _, s := range seeds {
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(s)))
		h.Write(lenBuf[:])
		h.Write([]byte(s))
	}
	return StorageKey(hex.EncodeToString(h.Sum(nil)))
}

func SaleConfigAddress() StorageKey {
	return DeriveAddress(saleConfigSeed)
}

func AllowListAddress(config StorageKey, user string) StorageKey {
	return DeriveAddress(allowListSeed, allowListSubSeed, string(config), user)
}

// UserCounterAddress derives from the wallet alone, so counters are
// shared across sale configs.
func UserCounterAddress(wallet string) StorageKey {
	return DeriveAddress(wallet)
}

func BalanceAddress(wallet string) StorageKey {
	return DeriveAddress(balanceSeed, wallet)
}

func AssetBookAddress() StorageKey {
	return DeriveAddress(assetBookSeed)
}
