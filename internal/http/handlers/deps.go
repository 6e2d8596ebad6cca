package handlers

import (
	"cherrybud/internal/payments"
	"cherrybud/internal/repos"
	"cherrybud/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Shop     *ShopHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Webhook  *WebhookHandler
	Contact  *ContactHandler
	Admin    *AdminHandler
	Auth     *AuthHandler

	AuthSvc *services.AuthService
}

// NewDeps wires repos, services and handlers. pc doubles as the webhook
// verifier in production; tests swap in fakes.
func NewDeps(db *sqlx.DB, pc payments.Client, verifier payments.Verifier, adminPassword string) (*Deps, error) {
	catalogRepo := repos.NewCatalogRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	ledgerRepo := repos.NewLedgerRepo(db)
	sessionRepo := repos.NewSessionRepo(db)

	cartSvc := services.NewCartService(cartRepo, catalogRepo)
	checkoutSvc := services.NewCheckoutService(cartRepo, catalogRepo, pc)
	reconcileSvc := services.NewReconcileService(orderRepo, pc)
	authSvc, err := services.NewAuthService(sessionRepo, adminPassword)
	if err != nil {
		return nil, err
	}

	return &Deps{
		Shop:     &ShopHandler{Catalog: catalogRepo},
		Cart:     &CartHandler{Cart: cartSvc},
		Checkout: &CheckoutHandler{Checkout: checkoutSvc, Cart: cartSvc},
		Webhook:  &WebhookHandler{Verify: verifier, Reconcile: reconcileSvc},
		Contact:  &ContactHandler{Ledger: ledgerRepo},
		Admin:    &AdminHandler{Ledger: ledgerRepo, Catalog: catalogRepo, Orders: orderRepo},
		Auth:     &AuthHandler{Auth: authSvc},
		AuthSvc:  authSvc,
	}, nil
}
