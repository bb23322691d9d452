package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/pkg/ctxmeta"
	"github.com/Gunvolt24/partswarm/pkg/httpx"
)

const (
	minTimeoutMs = 100
	maxPeerBody  = 16 << 20
)

func (h *Handler) getPart(c *gin.Context) {
	q := domain.PartQuery{
		PartNumber: c.Param("partNumber"),
		Keywords:   httpx.QueryList(c, "keywords"),
	}
	for _, v := range httpx.QueryList(c, "vendors") {
		q.Vendors = append(q.Vendors, domain.VendorID(v))
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), httpx.ParseTimeout(c, h.timeout, minTimeoutMs))
	defer cancel()

	parts, err := h.lookup.LookupPart(ctx, q)
	if err != nil {
		h.writeLookupError(ctx, c, "part="+q.PartNumber, err)
		return
	}
	c.JSON(http.StatusOK, parts)
}

func (h *Handler) getDatasheet(c *gin.Context) {
	q := domain.DatasheetQuery{
		URL:      c.Query("url"),
		Keywords: httpx.QueryList(c, "keywords"),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), httpx.ParseTimeout(c, h.timeout, minTimeoutMs))
	defer cancel()

	part, err := h.lookup.LookupDatasheet(ctx, q)
	if err != nil {
		h.writeLookupError(ctx, c, "url="+q.URL, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

func (h *Handler) listVendors(c *gin.Context) {
	c.JSON(http.StatusOK, h.lookup.Vendors())
}

// writeLookupError — причины отказов по вендорам только в лог, клиенту - короткий ответ.
func (h *Handler) writeLookupError(ctx context.Context, c *gin.Context, subject string, err error) {
	reqCtx := c.Request.Context()
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		h.log.Warnf(reqCtx, "lookup timed out %s", subject)
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "lookup timed out"})
	case errors.Is(err, context.Canceled):
		// клиент ушёл, отвечать некому
		c.Status(499)
	case errors.Is(err, domain.ErrAllProvidersFailed):
		h.log.Warnf(reqCtx, "no result %s: %v", subject, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "no result found"})
	default:
		h.log.Errorf(reqCtx, "lookup failed %s err=%v", subject, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *Handler) peerQuery(c *gin.Context) {
	var req domain.PeerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Fingerprint == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid peer request"})
		return
	}
	c.JSON(http.StatusOK, h.peers.Answer(c.Request.Context(), req))
}

func (h *Handler) peerPublish(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPeerBody)

	var e domain.CacheEntry
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry"})
		return
	}
	// узел-отправитель уже в контексте (RequestIDMiddleware), логгер добавит его сам
	ctx := ctxmeta.WithFingerprint(c.Request.Context(), string(e.Fingerprint))

	err := h.peers.Accept(ctx, e)
	switch {
	case err == nil:
		c.Status(http.StatusAccepted)
	case errors.Is(err, domain.ErrInvalidEntry):
		h.log.Warnf(ctx, "rejected peer entry: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Errorf(ctx, "accept peer entry: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unavailable"})
	}
}
