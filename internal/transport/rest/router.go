package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"learnloop/internal/service"
	"learnloop/internal/transport/rest/handler"
	"learnloop/internal/transport/rest/middleware"
	"learnloop/internal/transport/ws"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Survey   *handler.SurveyHandler
	Playlist *handler.PlaylistHandler
	Chat     *handler.ChatHandler
	Quiz     *handler.QuizHandler
	History  *handler.HistoryHandler
	Profile  *handler.ProfileHandler
	Path     *handler.PathHandler
	WS       *ws.Handler
}

// NewRouter builds the full route table.
func NewRouter(authSvc *service.AuthService, h Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(corsMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Public routes
	r.HandleFunc("/v1/auth/register", h.Auth.Register).Methods("POST", "OPTIONS")
	r.HandleFunc("/v1/auth/login", h.Auth.Login).Methods("POST", "OPTIONS")

	// Authenticated routes
	authed := r.PathPrefix("/v1").Subrouter()
	authed.Use(middleware.RequireUser(authSvc))

	authed.HandleFunc("/surveys", h.Survey.Generate).Methods("POST", "OPTIONS")
	authed.HandleFunc("/surveys/options", h.Survey.RefreshOptions).Methods("POST", "OPTIONS")

	authed.HandleFunc("/playlists", h.Playlist.Create).Methods("POST", "OPTIONS")
	authed.HandleFunc("/playlists", h.Playlist.List).Methods("GET")
	authed.HandleFunc("/playlists/{id}", h.Playlist.Get).Methods("GET")
	authed.HandleFunc("/playlists/{id}", h.Playlist.Delete).Methods("DELETE", "OPTIONS")

	authed.HandleFunc("/quizzes", h.Quiz.Generate).Methods("POST", "OPTIONS")
	authed.HandleFunc("/quizzes/grade", h.Quiz.Grade).Methods("POST", "OPTIONS")

	authed.HandleFunc("/paths", h.Path.ListCatalog).Methods("GET")

	authed.HandleFunc("/profile", h.Profile.Get).Methods("GET")
	authed.HandleFunc("/profile", h.Profile.Update).Methods("PUT", "OPTIONS")
	authed.HandleFunc("/profile/avatar", h.Profile.UploadAvatar).Methods("POST", "OPTIONS")

	// Fixed conversation paths go before the {id} routes.
	authed.HandleFunc("/conversations/export", h.History.Export).Methods("GET")
	authed.HandleFunc("/conversations/import", h.History.Import).Methods("POST", "OPTIONS")
	authed.HandleFunc("/conversations/clear", h.History.Clear).Methods("POST", "OPTIONS")
	authed.HandleFunc("/conversations", h.Chat.Start).Methods("POST", "OPTIONS")
	authed.HandleFunc("/conversations", h.History.List).Methods("GET")
	authed.HandleFunc("/conversations/{id}", h.Chat.Get).Methods("GET")
	authed.HandleFunc("/conversations/{id}", h.History.Delete).Methods("DELETE", "OPTIONS")
	authed.HandleFunc("/conversations/{id}/messages", h.Chat.Send).Methods("POST", "OPTIONS")

	authed.HandleFunc("/ws/conversations/{id}", h.WS.ServeWS).Methods("GET")

	return r
}

// corsMiddleware allows the browser frontend to call from any origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
