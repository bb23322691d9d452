package kafka

import (
	"encoding/json"
	"fmt"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/segmentio/kafka-go"
)

// nodeHeader — заголовок с идентификатором узла-отправителя.
const nodeHeader = "swarm-node"

// EntryMessage — сообщение топика записей Swarm. Ключ сообщения - fingerprint.
type EntryMessage struct {
	NodeID string            `json:"node_id"`
	Entry  domain.CacheEntry `json:"entry"`
}

func encodeEntryMessage(nodeID string, e domain.CacheEntry) (kafka.Message, error) {
	value, err := json.Marshal(EntryMessage{NodeID: nodeID, Entry: e})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal entry: %w", err)
	}
	return kafka.Message{
		Key:     []byte(e.Fingerprint),
		Value:   value,
		Headers: []kafka.Header{{Key: nodeHeader, Value: []byte(nodeID)}},
	}, nil
}

// senderOf - узел-отправитель из заголовка сообщения.
func senderOf(msg *kafka.Message) string {
	for _, h := range msg.Headers {
		if h.Key == nodeHeader && len(h.Value) > 0 {
			return string(h.Value)
		}
	}
	return ""
}

func decodeEntryMessage(msg *kafka.Message) (EntryMessage, error) {
	var em EntryMessage
	if err := json.Unmarshal(msg.Value, &em); err != nil {
		return EntryMessage{}, fmt.Errorf("%w: invalid json: %v", domain.ErrInvalidEntry, err)
	}
	if s := senderOf(msg); s != "" {
		em.NodeID = s
	}
	if em.Entry.Fingerprint == "" {
		return EntryMessage{}, fmt.Errorf("%w: empty fingerprint", domain.ErrInvalidEntry)
	}
	if len(msg.Key) > 0 && string(msg.Key) != string(em.Entry.Fingerprint) {
		return EntryMessage{}, fmt.Errorf("%w: key does not match fingerprint", domain.ErrInvalidEntry)
	}
	return em, nil
}
