package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"WAYGO_BACK-END/internal/config"
	"WAYGO_BACK-END/internal/handlers"
	"WAYGO_BACK-END/internal/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	inputHandler *handlers.ItineraryInputHandler,
	itineraryHandler *handlers.ItineraryHandler,
) {
	jwtCfg := &cfg.JWT

	// Health check routes
	http.HandleFunc("/healthz", healthHandler.HealthCheck)
	http.HandleFunc("/livez", healthHandler.LivenessCheck)
	http.HandleFunc("/readyz", healthHandler.ReadinessCheck)

	// Itinerary input wizard routes
	http.HandleFunc("/api/itinerary/input/step1/search-city", middleware.AuthMiddleware(inputHandler.SearchCity, jwtCfg))
	http.HandleFunc("/api/itinerary/input/step1/select", middleware.AuthMiddleware(inputHandler.SelectCity, jwtCfg))
	http.HandleFunc("/api/itinerary/input/", middleware.AuthMiddleware(inputHandler.InputSteps, jwtCfg))

	// Itinerary generation and retrieval routes
	http.HandleFunc("/api/itinerary/generate/", middleware.AuthMiddleware(itineraryHandler.Generate, jwtCfg))
	http.HandleFunc("/api/itinerary/", middleware.AuthMiddleware(itineraryHandler.GetItinerary, jwtCfg))

	// Swagger documentation
	http.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Root route
	http.HandleFunc("/", rootHandler)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("WayGo backend is running."))
}
