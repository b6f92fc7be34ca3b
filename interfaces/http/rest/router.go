package rest

import (
	"net/http"

	"atomcms/application/commands/bus"
	"atomcms/application/ports"
	querybus "atomcms/application/queries/bus"
	"atomcms/interfaces/http/rest/handlers"
	"atomcms/interfaces/http/rest/middleware"
	"atomcms/pkg/auth"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	commandBus   *bus.CommandBus
	queryBus     *querybus.QueryBus
	apiKeys      ports.APIKeyStore
	jwtValidator *auth.JWTValidator
	logger       *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	apiKeys ports.APIKeyStore,
	jwtValidator *auth.JWTValidator,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus:   commandBus,
		queryBus:     queryBus,
		apiKeys:      apiKeys,
		jwtValidator: jwtValidator,
		logger:       logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", middleware.APIKeyHeader},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api/v1", func(r chi.Router) {
		// Serving surface: API-key authenticated reads
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthenticateAPIKey(rt.apiKeys, rt.logger))

			renderHandler := handlers.NewRenderHandler(rt.queryBus, rt.logger)
			collectionHandler := handlers.NewCollectionHandler(rt.queryBus, rt.logger)

			// Composed content by collection URL
			r.Get("/content/{collection}/*", renderHandler.RenderByURL)

			// Structured JSON documents
			r.Route("/collections/{collection}", func(r chi.Router) {
				r.Get("/", collectionHandler.GetCollection)
				r.Get("/menu", collectionHandler.GetMenu)
				r.Get("/menus/{menu}", collectionHandler.GetMenu)
			})

			r.Route("/articles", func(r chi.Router) {
				r.Get("/", collectionHandler.ListArticles)
				r.Get("/{article}/render", renderHandler.RenderArticle)
				r.Get("/{article}/document", collectionHandler.GetArticleDocument)
			})
		})

		// Management surface: bearer-token authenticated writes
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AuthenticateAdmin(rt.jwtValidator, rt.logger))

			adminHandler := handlers.NewAdminHandler(rt.commandBus, rt.logger)

			r.Post("/atoms", adminHandler.CreateAtom)
			r.Put("/atoms/{atomID}", adminHandler.UpdateAtom)
			r.Delete("/atoms/{atomID}", adminHandler.DeleteAtom)

			r.Post("/types", adminHandler.CreateAtomType)

			r.Post("/articles", adminHandler.CreateArticle)
			r.Post("/articles/{articleID}/atoms", adminHandler.AttachAtom)
			r.Delete("/articles/{articleID}/atoms/{atomID}", adminHandler.DetachAtom)

			r.Post("/collections", adminHandler.CreateCollection)
			r.Post("/collections/{collection}/articles", adminHandler.AddToCollection)
			r.Delete("/collections/{collection}/articles/{articleID}", adminHandler.RemoveFromCollection)
			r.Put("/collections/{collection}/menus/{menu}", adminHandler.SaveMenu)

			r.Put("/variables/{tag}", adminHandler.SetVariable)
			r.Delete("/variables/{tag}", adminHandler.DeleteVariable)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
