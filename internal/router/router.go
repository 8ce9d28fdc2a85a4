// Package router mounts the marketplace HTTP API.
package router

import (
	"net/http"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/handlers"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/middleware"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/policy"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// New returns the full handler chain: recovery, request logging, CORS,
// authentication, rate limiting and then the routes. limiter may be nil.
func New(h *handlers.HandlerManager, limiter *middleware.RateLimiter) http.Handler {
	// Routes stay on the root router: a mux subrouter reports a method
	// mismatch as not found.
	r := mux.NewRouter().StrictSlash(true)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteError(w, errors.New(errors.ErrCodeNotFound, "Not found."))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		handlers.WriteError(w, errors.New(errors.ErrCodeMethodNotAllowed, `Method "`+req.Method+`" not allowed.`))
	})

	r.HandleFunc("/health", health).Methods(http.MethodGet)

	route(r, "/account/register/", policy.AllowAny, h.Register, http.MethodPost)
	route(r, "/account/active/{uid}/{token}/", policy.AllowAny, h.ConfirmEmail, http.MethodGet)
	route(r, "/account/login/", policy.AllowAny, h.Login, http.MethodPost)
	route(r, "/account/logout/", policy.IsAuthenticated, h.Logout, http.MethodGet)
	route(r, "/account/profile/", policy.IsAuthenticated, h.Profile, http.MethodGet)
	route(r, "/account/updateProfile/", policy.IsAuthenticated, h.UpdateProfile, http.MethodPost)
	route(r, "/account/change-password/", policy.IsAuthenticated, h.ChangePassword, http.MethodPost)
	route(r, "/account/profile/favorites/add/{adId}/", policy.IsAuthenticated, h.AddFavorite, http.MethodPost)
	route(r, "/account/profile/favorites/remove/{adId}/", policy.IsAuthenticated, h.RemoveFavorite, http.MethodPost)

	route(r, "/house/list/", policy.AllowAny, h.ListHouses, http.MethodGet)
	route(r, "/house/list/", policy.IsAuthenticated, h.CreateHouse, http.MethodPost)
	route(r, "/house/list/{id}/", policy.AllowAny, h.GetHouse, http.MethodGet)
	route(r, "/house/list/{id}/", policy.IsAuthenticated, h.UpdateHouse, http.MethodPut, http.MethodPatch)
	route(r, "/house/list/{id}/", policy.IsAuthenticated, h.DeleteHouse, http.MethodDelete)

	route(r, "/house/category/", policy.AllowAny, h.ListCategories, http.MethodGet)
	route(r, "/house/category/", policy.IsAdmin, h.CreateCategory, http.MethodPost)
	route(r, "/house/category/{id}/", policy.AllowAny, h.GetCategory, http.MethodGet)
	route(r, "/house/category/{id}/", policy.IsAdmin, h.UpdateCategory, http.MethodPut, http.MethodPatch)
	route(r, "/house/category/{id}/", policy.IsAdmin, h.DeleteCategory, http.MethodDelete)

	route(r, "/house/my-houses/", policy.IsAuthenticated, h.MyHouses, http.MethodGet)
	route(r, "/house/advertisements/list/", policy.AllowAny, h.ListAdvertisements, http.MethodGet)
	route(r, "/house/advertisements/list/{id}/", policy.AllowAny, h.GetAdvertisement, http.MethodGet)
	route(r, "/house/favorites_advertisements/", policy.IsAuthenticated, h.FavoriteAdvertisements, http.MethodGet)
	route(r, "/house/create-advertisement/", policy.IsAuthenticated, h.CreateAdvertisement, http.MethodPost)
	route(r, "/house/approve-advertisement/", policy.IsAdmin, h.ApproveAdvertisement, http.MethodPost)
	route(r, "/house/admin-house-list/", policy.IsAdmin, h.AdminAdvertisements, http.MethodGet)
	route(r, "/house/admin-house-list/export/", policy.IsAdmin, h.ExportAdvertisements, http.MethodGet)

	route(r, "/house/request-rent/", policy.IsAuthenticated, h.RequestRent, http.MethodPost)
	route(r, "/house/accept-rent-request/{id}/", policy.IsAuthenticated, h.AcceptRentRequest, http.MethodPost)
	route(r, "/house/show-rent/", policy.IsAuthenticated, h.ListRentRequests, http.MethodGet)
	route(r, "/house/show-rent/{id}/", policy.IsAuthenticated, h.GetRentRequest, http.MethodGet)

	route(r, "/house/review/", policy.AllowAny, h.ListReviews, http.MethodGet)
	route(r, "/house/review/", policy.IsAuthenticated, h.CreateReview, http.MethodPost)
	route(r, "/house/review/{id}/", policy.AllowAny, h.GetReview, http.MethodGet)
	route(r, "/house/review/{id}/", policy.IsAuthenticated, h.UpdateReview, http.MethodPut, http.MethodPatch)
	route(r, "/house/review/{id}/", policy.IsAuthenticated, h.DeleteReview, http.MethodDelete)

	if h.Config != nil && !h.Config.IsProduction() && h.Config.MediaURL != "" {
		r.PathPrefix(h.Config.MediaURL).Handler(
			http.StripPrefix(h.Config.MediaURL, http.FileServer(http.Dir(h.Config.MediaRoot))),
		).Methods(http.MethodGet, http.MethodHead)
	}

	var handler http.Handler = r
	if limiter != nil {
		handler = limiter.Middleware(handler)
	}
	handler = middleware.Authenticate(h.Accounts)(handler)
	handler = corsHandler(h).Handler(handler)
	handler = middleware.RequestLogger(handler)
	return middleware.Recoverer(handler)
}

func route(r *mux.Router, path string, rule policy.Rule, fn http.HandlerFunc, methods ...string) {
	r.Handle(path, middleware.Require(rule)(fn)).Methods(methods...)
}

func corsHandler(h *handlers.HandlerManager) *cors.Cors {
	origins := []string{"*"}
	if h.Config != nil && len(h.Config.AllowedOrigins) > 0 {
		origins = h.Config.AllowedOrigins
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", "Retry-After", "X-RateLimit-Remaining"},
	})
}

func health(w http.ResponseWriter, _ *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
