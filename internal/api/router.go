package api

import (
	"log"
	"net/http"

	_ "github.com/solsync/solsync/docs"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/rs/cors"
	"github.com/solsync/solsync/internal/api/handlers"
	"github.com/solsync/solsync/internal/api/middleware"
	"github.com/solsync/solsync/internal/config"
)

// SetupRouter wires the transfer endpoints behind the CORS, cache-control
// and logging layers. Handlers check methods themselves so an unexpected
// method falls through to the redirect/404 fallback instead of the mux's
// automatic 405.
func SetupRouter(cfg config.Config, h *handlers.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", h.Health)
	mux.Handle("/docs/", httpSwagger.WrapHandler)
	mux.HandleFunc("/api/create", h.CreateTransfer)
	mux.HandleFunc("/upload/{id}", h.UploadFile)
	mux.HandleFunc("/d/{id}", h.DownloadFile)
	mux.HandleFunc("/", h.Fallback)

	log.Println("Router initialized")

	c := cors.New(cfg.CorsConfig())
	handler := c.Handler(mux)
	handler = middleware.NoStore(handler)
	handler = middleware.Logger(handler)
	return handler
}
