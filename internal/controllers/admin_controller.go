package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"

	"mintd/internal/providers"
	"mintd/internal/services"
)

// AdminController exposes the admin-gated configuration operations.
// Authorization is the service's concern: every payload names its caller
// and the sale controller rejects non-admin callers.
type AdminController struct {
	logger  providers.Logger
	service services.MintServiceInterface
}

func NewAdminController(logger providers.Logger, service services.MintServiceInterface) *AdminController {
	return &AdminController{
		logger:  logger,
		service: service,
	}
}

type initializePayload struct {
	Initializer string `json:"initializer"`
	Creator     string `json:"creator"`
	MaxSupply   uint64 `json:"max_supply"`
	OGMax       uint64 `json:"og_max"`
	WLMax       uint64 `json:"wl_max"`
	PublicMax   uint64 `json:"public_max"`
	OGPrice     uint64 `json:"og_price"`
	WLPrice     uint64 `json:"wl_price"`
	PublicPrice uint64 `json:"public_price"`
}

type walletListPayload struct {
	Caller  string   `json:"caller"`
	Wallets []string `json:"wallets"`
}

type allowListPayload struct {
	Caller string `json:"caller"`
	User   string `json:"user"`
}

type tierValuesPayload struct {
	Caller string `json:"caller"`
	OG     uint64 `json:"og"`
	WL     uint64 `json:"wl"`
	Public uint64 `json:"public"`
}

type stagePayload struct {
	Caller string `json:"caller"`
	Stage  int8   `json:"stage"`
}

type uriPayload struct {
	Caller string `json:"caller"`
	URI    string `json:"uri"`
}

type freezePayload struct {
	Caller string `json:"caller"`
	Frozen bool   `json:"frozen"`
}

func decodePayload(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

func (c *AdminController) respond(w http.ResponseWriter, op string, err error) {
	if err != nil {
		c.logger.Warnf(providers.TypePost, "%s rejected: %s", op, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (c *AdminController) Initialize(w http.ResponseWriter, r *http.Request) {
	var payload initializePayload
	if !decodePayload(w, r, &payload) {
		return
	}
	if payload.Initializer == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	err := c.service.Initialize(services.InitializeRequest{
		Initializer: payload.Initializer,
		Creator:     payload.Creator,
		MaxSupply:   payload.MaxSupply,
		OGMax:       payload.OGMax,
		WLMax:       payload.WLMax,
		PublicMax:   payload.PublicMax,
		OGPrice:     payload.OGPrice,
		WLPrice:     payload.WLPrice,
		PublicPrice: payload.PublicPrice,
	})
	if err != nil {
		c.logger.Warnf(providers.TypePost, "Initialize rejected: %s", err)
		writeError(w, err)
		return
	}
	c.logger.Infof(providers.TypePost, "Sale initialized by %s, max supply %d", payload.Initializer, payload.MaxSupply)
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (c *AdminController) AddPriorityList(w http.ResponseWriter, r *http.Request) {
	var payload walletListPayload
	if !decodePayload(w, r, &payload) {
		return
	}
	c.respond(w, "AddPriorityList", c.service.AddPriorityList(payload.Caller, payload.Wallets))
}

func (c *AdminController) RemovePriorityList(w http.ResponseWriter, r *http.Request) {
	var payload walletListPayload
	if !decodePayload(w, r, &payload) {
		return
	}
	c.respond(w, "RemovePriorityList", c.service.RemovePriorityList(payload.Caller, payload.Wallets))
}

func (c *AdminController) GrantAllowList(w http.ResponseWriter, r *http.Request) {
	var payload allowListPayload
	if !decodePayload(w, r, &payload) {
		return
	}
	c.respond(w, "GrantAllowList", c.service.GrantAllowList(payload.Caller, payload.User))
}

func (c *AdminController) RevokeAllowList(w http.ResponseWriter, r *http.Request) {
	var payload allowListPayload
	if !decodePayload(w, r, &payload) {
		return
	}
	c.respond(w, "RevokeAllowList", c.service.RevokeAllowList(payload.Caller, payload.User))
}

func (c *AdminController) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	var payload tierValuesPayload
	if !decodePayload(w, r, &payload) {
		return
	}
	c.respond(w, "UpdatePrice", c.service.UpdatePrice(payload.Caller, payload.OG, payload.WL, payload.Public))
}

func (c *AdminController) UpdateAmount(w http.ResponseWriter, r *http.Request) {
	var payload tierValuesPayload
	if !decodePayload(w, r, &payload) {
		return
	}
	c.respond(w, "UpdateAmount", c.service.UpdateAmount(payload.Caller, payload.OG, payload.WL, payload.Public))
}

func (c *AdminController) SetStage(w http.ResponseWriter, r *http.Request) {
	var payload stagePayload
	if !decodePayload(w, r, &payload) {
		return
	}
	c.respond(w, "SetStage", c.service.SetStage(payload.Caller, payload.Stage))
}

func (c *AdminController) SetURI(w http.ResponseWriter, r *http.Request) {
	var payload uriPayload
	if !decodePayload(w, r, &payload) {
		return
	}
	c.respond(w, "SetURI", c.service.SetURI(payload.Caller, payload.URI))
}

func (c *AdminController) SetFreeze(w http.ResponseWriter, r *http.Request) {
	var payload freezePayload
	if !decodePayload(w, r, &payload) {
		return
	}
	c.respond(w, "SetFreeze", c.service.SetFreeze(payload.Caller, payload.Frozen))
}
