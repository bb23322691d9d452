package swarm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/swarm"
	"github.com/stretchr/testify/require"
)

func TestHTTPPeer_QueryAndPush(t *testing.T) {
	var pushed atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc(swarm.QueryPath, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "node-a", r.Header.Get(swarm.NodeHeader))
		var req domain.PeerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Fingerprint != fp {
			_ = json.NewEncoder(w).Encode(domain.PeerResponse{})
			return
		}
		e := liveEntry(domain.SourceLocal)
		_ = json.NewEncoder(w).Encode(domain.PeerResponse{Found: true, Entry: &e})
	})
	mux.HandleFunc(swarm.PublishPath, func(w http.ResponseWriter, _ *http.Request) {
		pushed.Add(1)
		w.WriteHeader(http.StatusAccepted)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	peer := swarm.NewHTTPPeer(srv.URL, "node-a", srv.Client())
	ctx := context.Background()

	resp, err := peer.Query(ctx, domain.PeerRequest{Fingerprint: fp, QueryType: domain.QueryTypePart})
	require.NoError(t, err)
	require.True(t, resp.Found)
	require.Equal(t, env, resp.Entry.Envelope)

	resp, err = peer.Query(ctx, domain.PeerRequest{Fingerprint: "other", QueryType: domain.QueryTypePart})
	require.NoError(t, err)
	require.False(t, resp.Found)

	pub := swarm.NewHTTPPublisher([]*swarm.HTTPPeer{peer, peer})
	require.NoError(t, pub.Publish(ctx, liveEntry(domain.SourceLocal)))
	require.EqualValues(t, 2, pushed.Load())
}

func TestHTTPPublisher_CollectsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	pub := swarm.NewHTTPPublisher([]*swarm.HTTPPeer{swarm.NewHTTPPeer(srv.URL, "", srv.Client())})
	require.Error(t, pub.Publish(context.Background(), liveEntry(domain.SourceLocal)))
	require.NoError(t, swarm.NewHTTPPublisher(nil).Publish(context.Background(), liveEntry(domain.SourceLocal)))
}
