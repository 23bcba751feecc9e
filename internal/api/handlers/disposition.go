package handlers

import (
	"fmt"
	"strings"
)

// contentDisposition builds an RFC 6266 attachment header. The plain
// filename parameter is ASCII-sanitized for older clients; filename* carries
// the percent-encoded UTF-8 original per RFC 5987.
func contentDisposition(name string) string {
	if name == "" {
		return "attachment"
	}
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s",
		sanitizeASCII(name), encodeRFC5987(name))
}

// sanitizeASCII collapses each run of characters outside printable ASCII
// into a single underscore. Quote and backslash go too, so the result can
// sit inside a quoted-string unescaped.
func sanitizeASCII(s string) string {
	var b strings.Builder
	substituted := false
	for _, r := range s {
		if r >= 0x20 && r <= 0x7e && r != '"' && r != '\\' {
			b.WriteRune(r)
			substituted = false
		} else if !substituted {
			b.WriteByte('_')
			substituted = true
		}
	}
	return b.String()
}

// encodeRFC5987 percent-encodes everything outside the attr-char set.
func encodeRFC5987(s string) string {
	const attrChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"
	var b strings.Builder
	for _, c := range []byte(s) {
		if strings.IndexByte(attrChars, c) >= 0 {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}
