package inspect

import "strings"

// ShortSignature strips import paths from a go/types signature string.
// e.g. "func(db *example.com/pkg/store.DB) error" -> "func(db *store.DB) error"
func ShortSignature(sig string) string {
	var sb strings.Builder
	start := 0
	for i := 0; i <= len(sig); i++ {
		if i < len(sig) && !isTypeBoundary(sig[i]) {
			continue
		}
		token := sig[start:i]
		if idx := strings.LastIndex(token, "/"); idx >= 0 {
			token = token[idx+1:]
		}
		sb.WriteString(token)
		if i < len(sig) {
			sb.WriteByte(sig[i])
		}
		start = i + 1
	}
	return sb.String()
}

func isTypeBoundary(c byte) bool {
	switch c {
	case ' ', '(', ')', '[', ']', ',', '*':
		return true
	}
	return false
}
