//go:generate mockgen -source=../provider.go         -destination=./mock_provider.go         -package=mocks
//go:generate mockgen -source=../codec.go            -destination=./mock_codec.go            -package=mocks
//go:generate mockgen -source=../swarm_cache.go      -destination=./mock_swarm_cache.go      -package=mocks
//go:generate mockgen -source=../lookup_service.go   -destination=./mock_lookup_service.go   -package=mocks
//go:generate mockgen -source=../logger.go           -destination=./mock_logger.go           -package=mocks
//go:generate mockgen -source=../peer_feed.go        -destination=./mock_peer_feed.go        -package=mocks

package mocks
