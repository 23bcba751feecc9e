package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/solsync/solsync/internal/api"
	"github.com/solsync/solsync/internal/api/handlers"
	"github.com/solsync/solsync/internal/config"
	"github.com/solsync/solsync/internal/models"
	"github.com/solsync/solsync/internal/storage"
	"github.com/solsync/solsync/internal/utils"
)

const testAppURL = "https://app.example.com/upload.html"

func newTestServer(t *testing.T, mutate func(*config.Config)) (*httptest.Server, *storage.MemoryStore) {
	t.Helper()

	cfg := config.Config{
		Port:          "0",
		PublicAppURL:  testAppURL,
		AllowedOrigin: "*",
		TTLSeconds:    1800,
		MaxBytes:      100 << 20,
	}
	if mutate != nil {
		mutate(&cfg)
	}

	store := storage.NewMemoryStore()
	h := handlers.New(cfg, store, utils.SecureTokenGenerator{})
	ts := httptest.NewServer(api.SetupRouter(cfg, h))
	t.Cleanup(ts.Close)
	return ts, store
}

func createTransfer(t *testing.T, ts *httptest.Server) handlers.CreateResponse {
	t.Helper()

	res, err := http.Post(ts.URL+"/api/create", "", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var created handlers.CreateResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	return created
}

func uploadBytes(t *testing.T, uploadURL string, body []byte, contentType, filename string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPut, uploadURL, bytes.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if filename != "" {
		req.Header.Set("X-Filename", url.PathEscape(filename))
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return res
}

func TestCreateTransfer(t *testing.T) {
	ts, store := newTestServer(t, nil)

	before := time.Now().UnixMilli()
	created := createTransfer(t, ts)
	after := time.Now().UnixMilli()

	require.Contains(t, created.UploadURL, ts.URL+"/upload/")
	require.Contains(t, created.DownloadURL, ts.URL+"/d/")

	id := path.Base(created.UploadURL)
	require.Equal(t, id, path.Base(created.DownloadURL))
	require.Len(t, id, 22)

	require.GreaterOrEqual(t, created.ExpiresAt, before+1800*1000)
	require.LessOrEqual(t, created.ExpiresAt, after+1800*1000)

	// The pending stub exists and carries the creation time.
	stub, err := store.Get(context.Background(), id+".stub")
	require.NoError(t, err)
	defer stub.Body.Close()
	ms := models.ParseCreatedAt(stub.Metadata[storage.MetaCreatedAt])
	require.GreaterOrEqual(t, ms, before)
	require.LessOrEqual(t, ms, after)
}

func TestRoundTrip(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	created := createTransfer(t, ts)

	payload := []byte("the quick brown fox")
	res := uploadBytes(t, created.UploadURL, payload, "text/plain", "héllo répport.txt")
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	ack, _ := io.ReadAll(res.Body)
	require.Equal(t, "OK", string(ack))

	dl, err := http.Get(created.DownloadURL)
	require.NoError(t, err)
	defer dl.Body.Close()
	require.Equal(t, http.StatusOK, dl.StatusCode)

	got, err := io.ReadAll(dl.Body)
	require.NoError(t, err)
	require.Equal(t, payload, got)
	require.Equal(t, "text/plain", dl.Header.Get("Content-Type"))

	disp := dl.Header.Get("Content-Disposition")
	require.Contains(t, disp, `filename="h_llo r_pport.txt"`)
	require.Contains(t, disp, `filename*=UTF-8''h%C3%A9llo%20r%C3%A9pport.txt`)
}

func TestSecondDownloadIsGone(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	created := createTransfer(t, ts)

	res := uploadBytes(t, created.UploadURL, []byte("once"), "text/plain", "once.txt")
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	dl, err := http.Get(created.DownloadURL)
	require.NoError(t, err)
	io.Copy(io.Discard, dl.Body)
	dl.Body.Close()
	require.Equal(t, http.StatusOK, dl.StatusCode)

	// Deletion is fire-and-forget, so allow it a moment to land.
	require.Eventually(t, func() bool {
		again, err := http.Get(created.DownloadURL)
		if err != nil {
			return false
		}
		defer again.Body.Close()
		io.Copy(io.Discard, again.Body)
		return again.StatusCode == http.StatusNotFound
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDownloadWithoutUpload(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	created := createTransfer(t, ts)

	dl, err := http.Get(created.DownloadURL)
	require.NoError(t, err)
	defer dl.Body.Close()
	require.Equal(t, http.StatusNotFound, dl.StatusCode)

	body, _ := io.ReadAll(dl.Body)
	require.Contains(t, string(body), "Link expired or file not found.")
}

func TestUploadTooLarge(t *testing.T) {
	ts, _ := newTestServer(t, func(cfg *config.Config) { cfg.MaxBytes = 64 })
	created := createTransfer(t, ts)

	res := uploadBytes(t, created.UploadURL, bytes.Repeat([]byte("x"), 65), "text/plain", "big.bin")
	defer res.Body.Close()
	require.Equal(t, http.StatusRequestEntityTooLarge, res.StatusCode)

	body, _ := io.ReadAll(res.Body)
	require.Contains(t, string(body), "File too large")

	// Nothing retrievable was created.
	dl, err := http.Get(created.DownloadURL)
	require.NoError(t, err)
	defer dl.Body.Close()
	require.Equal(t, http.StatusNotFound, dl.StatusCode)
}

func TestUploadAtLimitSucceeds(t *testing.T) {
	ts, _ := newTestServer(t, func(cfg *config.Config) { cfg.MaxBytes = 64 })
	created := createTransfer(t, ts)

	res := uploadBytes(t, created.UploadURL, bytes.Repeat([]byte("x"), 64), "", "fits.bin")
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	dl, err := http.Get(created.DownloadURL)
	require.NoError(t, err)
	defer dl.Body.Close()
	require.Equal(t, http.StatusOK, dl.StatusCode)
	// Missing content type defaults to octet-stream.
	require.Equal(t, "application/octet-stream", dl.Header.Get("Content-Type"))
}

func TestExpiredDownload(t *testing.T) {
	ts, store := newTestServer(t, nil)

	old := models.FormatCreatedAt(time.Now().Add(-2 * time.Hour))
	meta := map[string]string{storage.MetaCreatedAt: old, storage.MetaName: "stale.txt"}
	require.NoError(t, store.Put(context.Background(), "staleid", strings.NewReader("stale"), 5, "text/plain", meta))

	dl, err := http.Get(ts.URL + "/d/staleid")
	require.NoError(t, err)
	defer dl.Body.Close()
	require.Equal(t, http.StatusGone, dl.StatusCode)

	body, _ := io.ReadAll(dl.Body)
	require.Contains(t, string(body), "Link expired.")

	// The object is purged; later requests see nothing.
	require.Eventually(t, func() bool {
		again, err := http.Get(ts.URL + "/d/staleid")
		if err != nil {
			return false
		}
		defer again.Body.Close()
		io.Copy(io.Discard, again.Body)
		return again.StatusCode == http.StatusNotFound
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTTLCarriedFromStub(t *testing.T) {
	ts, store := newTestServer(t, nil)

	// A stub written long ago: the upload succeeds, but the TTL basis is the
	// stub's creation time, so the download is already expired.
	old := models.FormatCreatedAt(time.Now().Add(-2 * time.Hour))
	meta := map[string]string{storage.MetaCreatedAt: old}
	require.NoError(t, store.Put(context.Background(), "lateid.stub", strings.NewReader("1"), 1, "", meta))

	res := uploadBytes(t, ts.URL+"/upload/lateid", []byte("late"), "text/plain", "late.txt")
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	dl, err := http.Get(ts.URL + "/d/lateid")
	require.NoError(t, err)
	defer dl.Body.Close()
	require.Equal(t, http.StatusGone, dl.StatusCode)
}

func TestUploadWithoutStubFallsBackToNow(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	res := uploadBytes(t, ts.URL+"/upload/orphanid", []byte("data"), "text/plain", "orphan.txt")
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	dl, err := http.Get(ts.URL + "/d/orphanid")
	require.NoError(t, err)
	defer dl.Body.Close()
	require.Equal(t, http.StatusOK, dl.StatusCode)
}

func preflight(t *testing.T, ts *httptest.Server, target string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodOptions, ts.URL+target, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type, x-filename")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return res
}

func TestPreflightIdempotent(t *testing.T) {
	ts, store := newTestServer(t, nil)

	first := preflight(t, ts, "/api/create")
	first.Body.Close()
	require.Equal(t, http.StatusNoContent, first.StatusCode)
	require.Equal(t, "*", first.Header.Get("Access-Control-Allow-Origin"))
	require.Equal(t, "no-store", first.Header.Get("Cache-Control"))

	second := preflight(t, ts, "/api/create")
	second.Body.Close()
	require.Equal(t, first.StatusCode, second.StatusCode)
	require.Equal(t,
		first.Header.Get("Access-Control-Allow-Origin"),
		second.Header.Get("Access-Control-Allow-Origin"))
	require.Equal(t,
		first.Header.Get("Access-Control-Allow-Methods"),
		second.Header.Get("Access-Control-Allow-Methods"))

	// Preflights must not touch the store.
	require.Equal(t, 0, store.Len())
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	res, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	body, _ := io.ReadAll(res.Body)
	require.Equal(t, "ok", string(body))
	require.Equal(t, "no-store", res.Header.Get("Cache-Control"))
	require.NotEmpty(t, res.Header.Get("X-Request-Id"))
}

func TestRootRedirect(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	for _, target := range []string{"/", "/index.html", "/some/other/page"} {
		res, err := http.Get(ts.URL + target)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, res.StatusCode, target)
		require.Contains(t, res.Header.Get("Content-Type"), "text/html")

		body, _ := io.ReadAll(res.Body)
		res.Body.Close()
		require.Contains(t, string(body), fmt.Sprintf("url=%s", testAppURL), target)
		require.Contains(t, string(body), "location.replace", target)
	}
}

func TestUnknownMethodIs404(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/whatever", nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusNotFound, res.StatusCode)
}
