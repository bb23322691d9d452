package rest

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/partswarm/internal/ports"
	"github.com/Gunvolt24/partswarm/internal/swarm"
	"github.com/Gunvolt24/partswarm/pkg/httpx"
)

const defaultLookupTimeout = 5 * time.Second

type Handler struct {
	lookup  ports.LookupService
	peers   ports.PeerService
	log     ports.Logger
	timeout time.Duration
}

// NewHandler — peers может быть nil (узел не отвечает пирам).
func NewHandler(lookup ports.LookupService, peers ports.PeerService, log ports.Logger, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	return &Handler{lookup: lookup, peers: peers, log: log, timeout: timeout}
}

// NewRouter — serviceName включает otelgin (пустое значение - без трейсинга).
func NewRouter(h *Handler, serviceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	if serviceName != "" {
		r.Use(otelgin.Middleware(serviceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(200, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.GET("/parts/:partNumber", h.getPart)
	api.GET("/datasheet", h.getDatasheet)
	api.GET("/vendors", h.listVendors)

	if h.peers != nil {
		r.POST(swarm.QueryPath, h.peerQuery)
		r.POST(swarm.PublishPath, h.peerPublish)
	}

	return r
}
