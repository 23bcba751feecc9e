package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/solsync/solsync/internal/models"
	"github.com/solsync/solsync/internal/storage"
	"github.com/solsync/solsync/internal/utils"
)

// CreateResponse is the wire shape returned by POST /api/create.
type CreateResponse struct {
	UploadURL   string `json:"uploadUrl"`
	DownloadURL string `json:"downloadUrl"`
	ExpiresAt   int64  `json:"expiresAt"` // milliseconds since epoch
}

// POST /api/create
// CreateTransfer godoc
// @Summary Create a one-time transfer
// @Description Issues a fresh upload/download URL pair and records the creation time.
// @Tags Transfers
// @Produce json
// @Success 200 {object} CreateResponse
// @Failure 500 {string} string "Storage error"
// @Router /api/create [post]
func (h *Handler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.Fallback(w, r)
		return
	}

	id, err := h.ids.NewID()
	if err != nil {
		log.Printf("create: id generation failed: %v", err)
		http.Error(w, "Failed to create transfer", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	rec := models.Transfer{ID: id, State: models.StatePending, CreatedAt: now.UnixMilli()}

	// The stub carries createdAt so the TTL clock survives the upload step,
	// and lets an external sweeper reclaim transfers that never receive bytes.
	meta := map[string]string{storage.MetaCreatedAt: models.FormatCreatedAt(now)}
	if err := h.store.Put(r.Context(), rec.StubKey(), strings.NewReader("1"), 1, "", meta); err != nil {
		log.Printf("create %s: stub write failed: %v", id, err)
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}

	origin := requestOrigin(r)
	utils.JSONResponse(w, http.StatusOK, CreateResponse{
		UploadURL:   fmt.Sprintf("%s/upload/%s", origin, id),
		DownloadURL: fmt.Sprintf("%s/d/%s", origin, id),
		ExpiresAt:   rec.CreatedAt + h.cfg.TTLSeconds*1000,
	})
}

// PUT /upload/{id}
// UploadFile godoc
// @Summary Upload the bytes for a transfer
// @Description Accepts the file body for a previously created transfer. The declared Content-Length is checked against the configured maximum.
// @Tags Transfers
// @Accept octet-stream
// @Param id path string true "Transfer id"
// @Param X-Filename header string false "URL-encoded original filename"
// @Success 200 {string} string "OK"
// @Failure 413 {string} string "File too large"
// @Failure 500 {string} string "Storage error"
// @Router /upload/{id} [put]
func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		h.Fallback(w, r)
		return
	}
	id := r.PathValue("id")

	// The declared length is the only size guard; streamed bytes are not
	// metered.
	if r.ContentLength > h.cfg.MaxBytes {
		http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	filename := r.Header.Get("X-Filename")
	if decoded, err := url.PathUnescape(filename); err == nil {
		filename = decoded
	}

	rec := models.Transfer{
		ID:        id,
		State:     models.StatePending,
		CreatedAt: time.Now().UnixMilli(),
		Filename:  filename,
	}

	// Carry createdAt over from the stub so the TTL counts from the moment
	// the link was issued, not from the upload. A missing stub falls back to
	// now.
	if stub, err := h.store.Get(r.Context(), rec.StubKey()); err == nil {
		if ms := models.ParseCreatedAt(stub.Metadata[storage.MetaCreatedAt]); ms > 0 {
			rec.CreatedAt = ms
		}
		stub.Body.Close()
	}

	meta := map[string]string{
		storage.MetaCreatedAt: models.FormatCreatedAt(time.UnixMilli(rec.CreatedAt)),
		storage.MetaName:      rec.Filename,
	}
	if err := h.store.Put(r.Context(), rec.ObjectKey(), r.Body, r.ContentLength, contentType, meta); err != nil {
		log.Printf("upload %s: %v", id, err)
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}
	rec.State = models.StateStored

	// Stub removal is cleanup only; the download path never consults it.
	go func(ctx context.Context) {
		if err := h.store.Delete(ctx, rec.StubKey()); err != nil {
			log.Printf("upload %s: stub delete failed: %v", id, err)
		}
	}(context.WithoutCancel(r.Context()))

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

// GET /d/{id}
// DownloadFile godoc
// @Summary One-time download
// @Description Streams the stored bytes exactly once and deletes the object. A consumed or unknown id yields 404; an expired one yields 410.
// @Tags Transfers
// @Produce octet-stream
// @Param id path string true "Transfer id"
// @Success 200 {file} file
// @Failure 404 {string} string "Link expired or file not found."
// @Failure 410 {string} string "Link expired."
// @Failure 500 {string} string "Storage error"
// @Router /d/{id} [get]
func (h *Handler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := r.PathValue("id")
	rec := models.Transfer{ID: id}

	obj, err := h.store.Get(r.Context(), rec.ObjectKey())
	if errors.Is(err, storage.ErrNotFound) {
		// Never-uploaded and already-consumed look identical on purpose, so
		// callers cannot probe for a link's existence.
		http.Error(w, "Link expired or file not found.", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("download %s: %v", id, err)
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}
	defer obj.Body.Close()

	rec.State = models.StateStored
	rec.CreatedAt = models.ParseCreatedAt(obj.Metadata[storage.MetaCreatedAt])
	rec.Filename = obj.Metadata[storage.MetaName]

	cleanup := context.WithoutCancel(r.Context())
	if rec.Expired(time.Now(), h.cfg.TTLSeconds) {
		go h.deleteObject(cleanup, rec.ObjectKey())
		http.Error(w, "Link expired.", http.StatusGone)
		return
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", contentDisposition(rec.Filename))

	// One-time contract: deletion is scheduled before the bytes go out and
	// must not delay them. Two overlapping GETs can both win this race; the
	// protocol trades strict exactly-once for latency.
	go h.deleteObject(cleanup, rec.ObjectKey())

	if _, err := io.Copy(w, obj.Body); err != nil {
		log.Printf("download %s: stream aborted: %v", id, err)
	}
}

func (h *Handler) deleteObject(ctx context.Context, key string) {
	if err := h.store.Delete(ctx, key); err != nil {
		log.Printf("delete %s: %v", key, err)
	}
}

// requestOrigin rebuilds the scheme://host the client used, honoring
// X-Forwarded-Proto when the server sits behind a proxy.
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	} else if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
