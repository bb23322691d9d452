package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
)

// Fingerprint — детерминированный ключ кэша, производный от нормализованного запроса.
type Fingerprint string

// FingerprintPart — ключ для поиска по партномеру.
// Эквивалентные запросы (регистр/пробелы партномера, порядок/регистр ключевых слов) дают один ключ.
func FingerprintPart(q PartQuery) Fingerprint {
	n := q.Normalize()
	vendors := make([]string, 0, len(n.Vendors))
	for _, v := range n.Vendors {
		vendors = append(vendors, string(v))
	}
	return fingerprint(QueryTypePart, n.PartNumber, n.Keywords, vendors)
}

// FingerprintDatasheet — ключ для поиска даташита.
func FingerprintDatasheet(q DatasheetQuery) Fingerprint {
	n := q.Normalize()
	return fingerprint(QueryTypeDatasheet, n.URL, n.Keywords, nil)
}

// fingerprint — sha256 по полям с префиксом длины (исключает неоднозначность склейки).
func fingerprint(qt QueryType, subject string, keywords, vendors []string) Fingerprint {
	h := sha256.New()
	writeField(h, string(qt))
	writeField(h, subject)
	writeList(h, keywords)
	writeList(h, vendors)
	return Fingerprint(hex.EncodeToString(h.Sum(nil)))
}

func writeList(h hash.Hash, items []string) {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(items)))
	h.Write(n[:])
	for _, it := range items {
		writeField(h, it)
	}
}

func writeField(h hash.Hash, s string) {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(s)))
	h.Write(n[:])
	h.Write([]byte(s))
}
