package issuer

import (
	"fmt"
	"math"

	"mintd/internal/models"
)

// IssueRequest asks the issuer to mint exactly one unit bound to a
// descriptor URI. Creators carries the creator split attached to the
// asset metadata.
type IssueRequest struct {
	Recipient string
	URI       string
	Title     string
	Symbol    string
	Index     uint64
	Creators  []models.CreatorShare
}

// IssuerInterface is the contract the sale controller consumes: mint
// exactly one unit and bind it to the descriptor, or fail without
// partial effect. Issue runs inside the caller's arena transaction so a
// failure unwinds payment and counters together with the issuance.
type IssuerInterface interface {
	Issue(tx *models.Txn, req IssueRequest) (*models.Asset, error)
}

// LocalIssuer numbers tokens into the asset book record. Each index may
// be issued at most once; the book's bitmap makes a double-issue an
// immediate error instead of a silent overwrite.
type LocalIssuer struct{}

func NewLocalIssuer() IssuerInterface {
	return &LocalIssuer{}
}

func (li *LocalIssuer) Issue(tx *models.Txn, req IssueRequest) (*models.Asset, error) {
	if req.Recipient == "" {
		return nil, fmt.Errorf("issue: empty recipient")
	}
	if req.Index > math.MaxUint32 {
		return nil, fmt.Errorf("issue: index %d exceeds issuer range", req.Index)
	}

	book, err := models.GetAssetBook(tx)
	if err != nil {
		return nil, err
	}
	if book.Issued.Contains(uint32(req.Index)) {
		return nil, fmt.Errorf("issue: index %d already issued", req.Index)
	}

	asset := &models.Asset{
		Index:    req.Index,
		Owner:    req.Recipient,
		URI:      req.URI,
		Title:    req.Title,
		Symbol:   req.Symbol,
		Creators: req.Creators,
	}
	book.Issued.Add(uint32(req.Index))
	book.Assets = append(book.Assets, asset)

	if err := models.PutAssetBook(tx, book); err != nil {
		return nil, err
	}
	return asset, nil
}
