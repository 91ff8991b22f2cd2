package internal

import (
	"net/http"

	"mintd/internal/controllers"
	"mintd/internal/providers"
	"mintd/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, adminController *controllers.AdminController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/claim", http.HandlerFunc(apiController.Claim))
	routers.Post("/ledger/deposit", http.HandlerFunc(apiController.Deposit))
	routers.Get("/sale", http.HandlerFunc(apiController.GetSale))
	routers.Get("/sale/priority", http.HandlerFunc(apiController.GetPriorityList))
	routers.Get("/sale/allowlist", http.HandlerFunc(apiController.GetAllowListEntry))
	routers.Get("/sale/counter", http.HandlerFunc(apiController.GetCounter))
	routers.Get("/sale/assets", http.HandlerFunc(apiController.GetAssets))
	routers.Get("/sale/claims", http.HandlerFunc(apiController.GetClaims))
	routers.Get("/ledger/balance", http.HandlerFunc(apiController.GetBalance))

	routers.Post("/initialize", http.HandlerFunc(adminController.Initialize))
	routers.Post("/admin/priority/add", http.HandlerFunc(adminController.AddPriorityList))
	routers.Post("/admin/priority/remove", http.HandlerFunc(adminController.RemovePriorityList))
	routers.Post("/admin/allowlist/grant", http.HandlerFunc(adminController.GrantAllowList))
	routers.Post("/admin/allowlist/revoke", http.HandlerFunc(adminController.RevokeAllowList))
	routers.Post("/admin/price", http.HandlerFunc(adminController.UpdatePrice))
	routers.Post("/admin/amount", http.HandlerFunc(adminController.UpdateAmount))
	routers.Post("/admin/stage", http.HandlerFunc(adminController.SetStage))
	routers.Post("/admin/uri", http.HandlerFunc(adminController.SetURI))
	routers.Post("/admin/freeze", http.HandlerFunc(adminController.SetFreeze))
	return routers
}
