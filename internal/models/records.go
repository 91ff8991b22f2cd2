package models

import "github.com/RoaringBitmap/roaring/v2"

// Stage is the global sale phase. Only the three enumerated values are
// ever stored; SetStage silently drops anything else.
type Stage int8

const (
	StageDisabled Stage = 0
	StagePresale  Stage = 1
	StagePublic   Stage = 2
)

func (s Stage) Valid() bool {
	return s >= StageDisabled && s <= StagePublic
}

func (s Stage) String() string {
	switch s {
	case StageDisabled:
		return "disabled"
	case StagePresale:
		return "presale"
	case StagePublic:
		return "public"
	default:
		return "invalid"
	}
}

// Tier is the eligibility class a claimant resolves to at claim time.
type Tier int8

const (
	TierOG Tier = iota
	TierWL
	TierPublic
)

func (t Tier) String() string {
	switch t {
	case TierOG:
		return "og"
	case TierWL:
		return "wl"
	default:
		return "public"
	}
}

// RequiredStage is the stage that must be active for this tier to claim.
// OG and WL are presale tiers; the resolved tier must match the active
// stage exactly, so a presale-eligible wallet cannot claim during Public.
func (t Tier) RequiredStage() Stage {
	if t == TierPublic {
		return StagePublic
	}
	return StagePresale
}

// PriorityListCap bounds the priority list. The capacity is fixed when
// the sale record is created, mirroring the space reserved for it.
const PriorityListCap = 50

// SaleConfig is the single global sale record. Created once, mutated only
// through admin-gated operations, never deleted.
type SaleConfig struct {
	Admin        string   `json:"admin"`
	Creator      string   `json:"creator"`
	MaxSupply    uint64   `json:"max_supply"`
	CurNum       uint64   `json:"cur_num"`
	OGMax        uint64   `json:"og_max"`
	WLMax        uint64   `json:"wl_max"`
	PublicMax    uint64   `json:"public_max"`
	OGPrice      uint64   `json:"og_price"`
	WLPrice      uint64   `json:"wl_price"`
	PublicPrice  uint64   `json:"public_price"`
	PriorityList []string `json:"priority_list"`
	CurStage     Stage    `json:"cur_stage"`
	BaseURI      string   `json:"base_uri"`
	Frozen       bool     `json:"frozen"`
}

// InPriorityList reports membership; the list is small and dup-free.
func (c *SaleConfig) InPriorityList(wallet string) bool {
	for _, w := range c.PriorityList {
		if w == wallet {
			return true
		}
	}
	return false
}

// TierMax returns the per-wallet cap for a tier.
func (c *SaleConfig) TierMax(t Tier) uint64 {
	switch t {
	case TierOG:
		return c.OGMax
	case TierWL:
		return c.WLMax
	default:
		return c.PublicMax
	}
}

// TierPrice returns the unit price for a tier.
func (c *SaleConfig) TierPrice(t Tier) uint64 {
	switch t {
	case TierOG:
		return c.OGPrice
	case TierWL:
		return c.WLPrice
	default:
		return c.PublicPrice
	}
}

// AllowListEntry grants WL eligibility to one wallet for one sale config.
// Its existence is the signal; Count is always 1 while the entry lives.
type AllowListEntry struct {
	User        string `json:"user"`
	Config      string `json:"config"`
	Initializer string `json:"initializer"`
	Count       uint64 `json:"count"`
}

// UserCounter tracks how many units a wallet has claimed. Created lazily
// on first claim and shared across all stages.
type UserCounter struct {
	CurNum uint64 `json:"cur_num"`
}

// Balance is a wallet's spendable amount in the embedded ledger.
type Balance struct {
	Amount uint64 `json:"amount"`
}

// CreatorShare is one entry of an issued asset's creator split.
type CreatorShare struct {
	Address string `json:"address"`
	Share   uint8  `json:"share"`
}

// Asset is one issued unit of the collection.
type Asset struct {
	Index    uint64         `json:"index"`
	Owner    string         `json:"owner"`
	URI      string         `json:"uri"`
	Title    string         `json:"title"`
	Symbol   string         `json:"symbol"`
	Creators []CreatorShare `json:"creators"`
}

// AssetBook is the issuer's ledger of everything minted so far. Issued
// holds the token indexes as a bitmap so a double-issue of an index is
// detectable in O(1).
type AssetBook struct {
	Issued *roaring.Bitmap
	Assets []*Asset
}

func NewAssetBook() *AssetBook {
	return &AssetBook{
		Issued: roaring.New(),
		Assets: make([]*Asset, 0),
	}
}
