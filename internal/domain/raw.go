package domain

import "time"

// RawResult — сырой ответ вендора; структуру тела понимает только нормализатор этого вендора.
type RawResult struct {
	Vendor      VendorID
	Body        []byte
	ContentType string
	ReceivedAt  time.Time
}
