package domain

// PeerRequest — запрос к пиру Swarm.
type PeerRequest struct {
	Fingerprint Fingerprint `json:"fingerprint"`
	QueryType   QueryType   `json:"query_type"`
}

// PeerResponse — ответ пира; Entry заполнен только при Found.
type PeerResponse struct {
	Found bool        `json:"found"`
	Entry *CacheEntry `json:"entry,omitempty"`
}

// VendorStatus — диагностическое состояние вендора для операторов.
type VendorStatus struct {
	Vendor   VendorID `json:"vendor"`
	Priority int      `json:"priority"`
	Breaker  string   `json:"breaker"`
}
