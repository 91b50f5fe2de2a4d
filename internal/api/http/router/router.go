package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/barii/chat-directory/internal/api/http/handler"
	"github.com/barii/chat-directory/internal/api/http/middleware"
	"github.com/barii/chat-directory/internal/logger"
	"github.com/barii/chat-directory/internal/metrics"
	"github.com/barii/chat-directory/internal/model"
	"github.com/barii/chat-directory/internal/service"
)

// Router wires the HTTP handlers and middleware for the chat directory API.
type Router struct {
	sessionService *service.Session
	tokenManager   model.TokenManager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	sessionService *service.Session,
	tokenManager model.TokenManager,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		sessionService: sessionService,
		tokenManager:   tokenManager,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register builds the route table with logging on every route and bearer
// authentication on everything under /api except signup and login.
func (r *Router) Register() *mux.Router {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenManager, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.sessionService, r.contextManager, r.logger)
	profileHandler := handler.NewProfile(r.sessionService, r.contextManager, r.logger)
	chatHandler := handler.NewChat(r.sessionService, r.contextManager, r.logger)

	root := mux.NewRouter()
	root.Use(logging.Handle)
	root.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := root.PathPrefix("/api").Subrouter()
	api.HandleFunc("/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(authenticate.Handle)
	protected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/profile", profileHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/profile", profileHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/profile/image", profileHandler.UploadImage).Methods(http.MethodPost)
	protected.HandleFunc("/chats", chatHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/chats", chatHandler.Add).Methods(http.MethodPost)
	protected.HandleFunc("/notification", chatHandler.Notification).Methods(http.MethodGet)
	protected.HandleFunc("/busy", chatHandler.Busy).Methods(http.MethodGet)

	return root
}
