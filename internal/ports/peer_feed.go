package ports

import "context"

// PeerFeed — входящий поток записей от других узлов Swarm.
// Run блокируется до отмены ctx; Close освобождает соединения с брокером.
type PeerFeed interface {
	Run(ctx context.Context) error
	Close() error
}
