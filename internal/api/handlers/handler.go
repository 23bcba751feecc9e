package handlers

import (
	"github.com/solsync/solsync/internal/config"
	"github.com/solsync/solsync/internal/storage"
	"github.com/solsync/solsync/internal/utils"
)

// Handler carries the dependencies shared by the transfer endpoints.
type Handler struct {
	cfg   config.Config
	store storage.ObjectStore
	ids   utils.IDGenerator
}

func New(cfg config.Config, store storage.ObjectStore, ids utils.IDGenerator) *Handler {
	return &Handler{cfg: cfg, store: store, ids: ids}
}
