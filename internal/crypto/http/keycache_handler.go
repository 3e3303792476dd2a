// Package http provides HTTP handlers for key cache administration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	cryptoService "github.com/agentvault/agentvault/internal/crypto/service"
)

// KeyCacheHandler exposes key cache observability and the manual clear operation.
type KeyCacheHandler struct {
	cache  cryptoService.KeyClearer
	logger *slog.Logger
}

// NewKeyCacheHandler creates a new key cache handler.
func NewKeyCacheHandler(cache cryptoService.KeyClearer, logger *slog.Logger) *KeyCacheHandler {
	return &KeyCacheHandler{
		cache:  cache,
		logger: logger,
	}
}

// StatusHandler reports the number of cached derived keys.
// GET /v1/admin/key-cache - admin only.
func (h *KeyCacheHandler) StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"cached_keys": h.cache.Size(),
	})
}

// ClearHandler drops every cached derived key. The next request per caller
// re-derives through the signing oracle.
// POST /v1/admin/key-cache/clear - admin only.
func (h *KeyCacheHandler) ClearHandler(c *gin.Context) {
	evicted := h.cache.Size()
	h.cache.Clear()

	h.logger.Info("key cache cleared by admin request",
		slog.Int("evicted_keys", evicted))

	c.JSON(http.StatusOK, gin.H{
		"evicted_keys": evicted,
	})
}
