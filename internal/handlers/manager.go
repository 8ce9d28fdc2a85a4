package handlers

import (
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/config"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/services"
)

// HandlerManager owns the services the HTTP handlers dispatch to.
type HandlerManager struct {
	Config    *config.Config
	Accounts  *services.AccountService
	Favorites *services.FavoriteService
	Catalog   *services.CatalogService
	Ads       *services.AdvertisementService
	Rents     *services.RentService
	Reviews   *services.ReviewService
}

func NewHandlerManager(
	cfg *config.Config,
	accounts *services.AccountService,
	favorites *services.FavoriteService,
	catalog *services.CatalogService,
	ads *services.AdvertisementService,
	rents *services.RentService,
	reviews *services.ReviewService,
) *HandlerManager {
	return &HandlerManager{
		Config:    cfg,
		Accounts:  accounts,
		Favorites: favorites,
		Catalog:   catalog,
		Ads:       ads,
		Rents:     rents,
		Reviews:   reviews,
	}
}
