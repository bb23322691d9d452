package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/kafka/mocks"
	"github.com/Gunvolt24/partswarm/internal/policy"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// runAsync запускает Consumer.Run в отдельной горутине и возвращает канал с ошибкой.
func runAsync(ctx context.Context, c *Consumer) <-chan error {
	errCh := make(chan error, 1)
	go func() { errCh <- c.Run(ctx) }()
	return errCh
}

func newTestConsumer(r reader, s entryAcceptor) *Consumer {
	return &Consumer{
		reader: r, service: s, log: nopLogger{},
		nodeID:         "node-a",
		processTimeout: 30 * time.Millisecond,
		backoff:        policy.NewBackoff(5*time.Millisecond, 10*time.Millisecond),
	}
}

func testEntry() domain.CacheEntry {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return domain.CacheEntry{
		Fingerprint: "f00d",
		Envelope:    domain.Envelope{SchemaVersion: 1, VendorID: "mouser", Encoding: domain.EncodingPartsJSON, Payload: []byte(`{"parts":[]}`)},
		CreatedAt:   now,
		ExpiresAt:   now.Add(time.Hour),
		Source:      domain.SourceLocal,
	}
}

func message(t *testing.T, node string, e domain.CacheEntry, offset int64) kafka.Message {
	t.Helper()
	msg, err := encodeEntryMessage(node, e)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	msg.Offset = offset
	return msg
}

// blockUntilCancel — следующий FetchMessage ждёт отмены контекста.
func blockUntilCancel(r *mocks.Mockreader) {
	r.EXPECT().FetchMessage(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (kafka.Message, error) {
			<-ctx.Done()
			return kafka.Message{}, ctx.Err()
		})
}

func stopAndWait(t *testing.T, cancel context.CancelFunc, errCh <-chan error) {
	t.Helper()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("want context.Canceled, got %v", err)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for Run to stop")
	}
}

func readerWithConfig(ctrl *gomock.Controller) *mocks.Mockreader {
	r := mocks.NewMockreader(ctrl)
	rc := kafka.ReaderConfig{Topic: "swarm.entries", GroupID: "node-a", Brokers: []string{"b:9092"}}
	r.EXPECT().Config().Return(rc).AnyTimes()
	return r
}

// Запись пира принимается и коммитится
func TestRun_PeerEntry_AcceptedAndCommitted(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := readerWithConfig(ctrl)
	s := mocks.NewMockentryAcceptor(ctrl)

	e := testEntry()
	r.EXPECT().FetchMessage(gomock.Any()).Return(message(t, "node-b", e, 1), nil)
	s.EXPECT().Accept(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, got domain.CacheEntry) error {
		if got.Fingerprint != e.Fingerprint || !got.CreatedAt.Equal(e.CreatedAt) {
			t.Errorf("unexpected entry %+v", got)
		}
		return nil
	})
	r.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Return(nil)
	blockUntilCancel(r)

	ctx, cancel := context.WithCancel(context.Background())
	stopAndWait(t, cancel, runAsync(ctx, newTestConsumer(r, s)))
}

// Собственная запись пропускается без вызова сервиса
func TestRun_OwnEntry_SkippedAndCommitted(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := readerWithConfig(ctrl)
	s := mocks.NewMockentryAcceptor(ctrl)

	r.EXPECT().FetchMessage(gomock.Any()).Return(message(t, "node-a", testEntry(), 2), nil)
	r.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Return(nil)
	blockUntilCancel(r)

	ctx, cancel := context.WithCancel(context.Background())
	stopAndWait(t, cancel, runAsync(ctx, newTestConsumer(r, s)))
}

// Своя запись отсекается по заголовку, даже если тело не разбирается
func TestRun_OwnHeader_SkipsWithoutDecode(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := readerWithConfig(ctrl)
	s := mocks.NewMockentryAcceptor(ctrl)

	own := kafka.Message{Offset: 4, Value: []byte("not json"), Headers: []kafka.Header{{Key: nodeHeader, Value: []byte("node-a")}}}
	r.EXPECT().FetchMessage(gomock.Any()).Return(own, nil)
	r.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Return(nil)
	blockUntilCancel(r)

	ctx, cancel := context.WithCancel(context.Background())
	stopAndWait(t, cancel, runAsync(ctx, newTestConsumer(r, s)))
}

// Мусор и отвергнутые записи коммитятся (чтобы не ретраить)
func TestRun_InvalidMessages_Committed(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := readerWithConfig(ctrl)
	s := mocks.NewMockentryAcceptor(ctrl)

	gomock.InOrder(
		r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{Offset: 7, Value: []byte("{")}, nil),
		r.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Return(nil),
		r.EXPECT().FetchMessage(gomock.Any()).Return(message(t, "node-b", testEntry(), 8), nil),
		s.EXPECT().Accept(gomock.Any(), gomock.Any()).Return(domain.ErrInvalidEntry),
		r.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Return(nil),
	)
	blockUntilCancel(r)

	ctx, cancel := context.WithCancel(context.Background())
	stopAndWait(t, cancel, runAsync(ctx, newTestConsumer(r, s)))
}

// Временная ошибка сервиса => НЕ коммитим
func TestRun_TemporaryFailure_NoCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := readerWithConfig(ctrl)
	s := mocks.NewMockentryAcceptor(ctrl)

	r.EXPECT().FetchMessage(gomock.Any()).Return(message(t, "node-b", testEntry(), 3), nil)
	s.EXPECT().Accept(gomock.Any(), gomock.Any()).Return(domain.ErrCacheUnavailable)
	r.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Times(0)
	blockUntilCancel(r)

	ctx, cancel := context.WithCancel(context.Background())
	stopAndWait(t, cancel, runAsync(ctx, newTestConsumer(r, s)))
}

// Ошибка FetchMessage => backoff и повтор
func TestRun_FetchError_Retries(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := readerWithConfig(ctrl)
	s := mocks.NewMockentryAcceptor(ctrl)

	gomock.InOrder(
		r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{}, errors.New("broker down")),
		r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{}, errors.New("broker down")),
	)
	blockUntilCancel(r)

	ctx, cancel := context.WithCancel(context.Background())
	stopAndWait(t, cancel, runAsync(ctx, newTestConsumer(r, s)))
}

func TestClose_Once(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	r.EXPECT().Close().Return(nil).Times(1)

	c := newTestConsumer(r, nil)
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestDecodeEntryMessage_KeyMismatch(t *testing.T) {
	msg := message(t, "node-b", testEntry(), 1)
	msg.Key = []byte("other")
	if _, err := decodeEntryMessage(&msg); !errors.Is(err, domain.ErrInvalidEntry) {
		t.Fatalf("want ErrInvalidEntry, got %v", err)
	}

	var em EntryMessage
	_ = json.Unmarshal(msg.Value, &em)
	if em.NodeID != "node-b" {
		t.Fatalf("node id in body: %q", em.NodeID)
	}
}

func TestProducer_PublishWritesKeyedMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)

	e := testEntry()
	w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
		if len(msgs) != 1 || string(msgs[0].Key) != string(e.Fingerprint) {
			t.Errorf("unexpected messages %+v", msgs)
		}
		em, err := decodeEntryMessage(&msgs[0])
		if err != nil || em.NodeID != "node-a" {
			t.Errorf("decode: %v node=%q", err, em.NodeID)
		}
		return nil
	})
	w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("leader not available"))

	p := &Producer{writer: w, topic: "swarm.entries", nodeID: "node-a"}
	if err := p.Publish(context.Background(), e); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := p.Publish(context.Background(), e); err == nil {
		t.Fatal("want error")
	}
}
