package normalize

import (
	"strconv"
	"strings"
	"unicode"
)

// parsePrice — "$1.23", "1,23 €", "1 234,50", "USD 0.5". Пустая или мусорная строка - (0, false).
func parsePrice(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	num := b.String()
	if num == "" {
		return 0, false
	}

	lastDot := strings.LastIndex(num, ".")
	lastComma := strings.LastIndex(num, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		// десятичный разделитель - тот, что правее
		if lastComma > lastDot {
			num = strings.ReplaceAll(num, ".", "")
			num = strings.Replace(num, ",", ".", 1)
		} else {
			num = strings.ReplaceAll(num, ",", "")
		}
	case lastComma >= 0:
		// "1,23" - дробь, "1,234" - разряды
		if strings.Count(num, ",") == 1 && len(num)-lastComma-1 != 3 {
			num = strings.Replace(num, ",", ".", 1)
		} else {
			num = strings.ReplaceAll(num, ",", "")
		}
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseQuantity — первые цифры строки: "1,234 In Stock" -> 1234.
func parseQuantity(s string) int64 {
	var b strings.Builder
	started := false
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
			started = true
		case started && (r == ',' || r == '.' || r == ' ' || r == '\u00a0'):
			continue
		case started:
			return atoi(b.String())
		}
	}
	return atoi(b.String())
}

func atoi(s string) int64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
