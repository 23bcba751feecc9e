package handlers

import (
	"fmt"
	"net/http"
)

const redirectPage = `<!doctype html>
<meta charset="utf-8">
<title>Redirecting…</title>
<meta http-equiv="refresh" content="0; url=%s">
<p>If you are not redirected, <a href="%s">tap here</a>.</p>
<script>location.replace(%q);</script>`

// GET /health
// Health godoc
// @Summary Liveness check
// @Tags System
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.Fallback(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}

// Fallback serves the app redirect page for any GET no other route claimed,
// and 404 for everything else. Some mobile webviews drop Location redirects,
// so the page redirects itself via meta refresh and script.
func (h *Handler) Fallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	target := h.cfg.PublicAppURL
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, redirectPage, target, target, target)
}
