package rest

import (
	"net/http"

	"github.com/heartmarshall/nivara-backend/internal/transport/middleware"
)

// Handlers groups every REST handler the router mounts.
type Handlers struct {
	Health    *HealthHandler
	State     *StateHandler
	Tracker   *TrackerHandler
	Community *CommunityHandler
	Shop      *ShopHandler
	Scan      *ScanHandler
	Assistant *AssistantHandler
	Weather   *WeatherHandler
}

// NewRouter builds the route table. Probes sit at the root; everything under
// /api/ runs behind profile resolution, and the model-backed routes behind
// aiLimit as well.
func NewRouter(h Handlers, aiLimit middleware.Middleware) http.Handler {
	api := http.NewServeMux()
	limited := func(fn http.HandlerFunc) http.Handler { return aiLimit(fn) }

	api.HandleFunc("GET /api/state", h.State.State)
	api.HandleFunc("PUT /api/preferences", h.State.UpdatePreferences)
	api.HandleFunc("POST /api/preferences/theme", h.State.ToggleTheme)
	api.HandleFunc("GET /api/translate", h.State.Translate)
	api.HandleFunc("GET /api/history", h.State.History)

	api.Handle("POST /api/scan", limited(h.Scan.Analyze))
	api.HandleFunc("POST /api/scan/track", h.Scan.Track)

	api.HandleFunc("GET /api/tracker", h.Tracker.List)
	api.HandleFunc("POST /api/tracker", h.Tracker.Create)
	api.HandleFunc("PATCH /api/tracker/{id}", h.Tracker.Update)
	api.HandleFunc("POST /api/tracker/{id}/dose", h.Tracker.MarkDose)
	api.HandleFunc("DELETE /api/tracker/{id}/dose", h.Tracker.ResetDose)

	api.HandleFunc("GET /api/community", h.Community.List)
	api.HandleFunc("POST /api/community", h.Community.Create)

	api.HandleFunc("GET /api/products", h.Shop.Products)
	api.HandleFunc("GET /api/cart", h.Shop.Cart)
	api.HandleFunc("POST /api/cart", h.Shop.AddToCart)
	api.HandleFunc("DELETE /api/cart/{index}", h.Shop.RemoveFromCart)
	api.HandleFunc("DELETE /api/cart", h.Shop.ClearCart)
	api.HandleFunc("POST /api/checkout", h.Shop.Checkout)

	api.Handle("POST /api/chat", limited(h.Assistant.Chat))
	api.HandleFunc("GET /api/library", h.Assistant.Library)
	api.Handle("POST /api/library/search", limited(h.Assistant.SearchLibrary))

	api.HandleFunc("GET /api/weather", h.Weather.Report)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.Handle("/api/", middleware.Profile()(api))

	return mux
}
