package swarm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/ports"
	"github.com/Gunvolt24/partswarm/pkg/ctxmeta"
)

// Пути peer-протокола.
const (
	QueryPath   = "/swarm/v1/query"
	PublishPath = "/swarm/v1/publish"
)

// NodeHeader — идентификатор узла-отправителя.
const NodeHeader = ctxmeta.HeaderPeerNode

const maxPeerBody = 16 << 20

var (
	_ ports.PeerClient    = (*HTTPPeer)(nil)
	_ ports.PeerPublisher = (*HTTPPublisher)(nil)
)

// HTTPPeer — клиент одного пира по HTTP.
type HTTPPeer struct {
	base   string
	nodeID string
	client *http.Client
}

// NewHTTPPeer — addr вида http://host:port.
func NewHTTPPeer(addr, nodeID string, client *http.Client) *HTTPPeer {
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	return &HTTPPeer{base: strings.TrimRight(addr, "/"), nodeID: nodeID, client: client}
}

func (p *HTTPPeer) Addr() string { return p.base }

func (p *HTTPPeer) Query(ctx context.Context, req domain.PeerRequest) (domain.PeerResponse, error) {
	var resp domain.PeerResponse
	if err := p.post(ctx, QueryPath, req, &resp); err != nil {
		return domain.PeerResponse{}, err
	}
	return resp, nil
}

// Push — отправить запись пиру.
func (p *HTTPPeer) Push(ctx context.Context, e domain.CacheEntry) error {
	return p.post(ctx, PublishPath, e, nil)
}

func (p *HTTPPeer) post(ctx context.Context, path string, in, out any) error {
	buf, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.base+path, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.nodeID != "" {
		req.Header.Set(NodeHeader, p.nodeID)
	}
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		req.Header.Set(ctxmeta.HeaderRequestID, rid)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPeerBody))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("peer %s: http %d", p.base, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("peer %s: decode: %w", p.base, err)
	}
	return nil
}

// HTTPPublisher — рассылка записи всем пирам по HTTP.
type HTTPPublisher struct {
	peers []*HTTPPeer
}

func NewHTTPPublisher(peers []*HTTPPeer) *HTTPPublisher {
	return &HTTPPublisher{peers: peers}
}

// Publish — параллельно всем пирам; ошибки собираются, успешные доставки не откатываются.
func (p *HTTPPublisher) Publish(ctx context.Context, e domain.CacheEntry) error {
	errs := make([]error, len(p.peers))
	var wg sync.WaitGroup
	for i, peer := range p.peers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = peer.Push(ctx, e)
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}
