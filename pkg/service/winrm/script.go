package winrm

import (
	"encoding/base64"
	"strings"
	"unicode/utf16"
)

// encodePowerShell encodes a script for the -EncodedCommand parameter.
// PowerShell expects base64 over UTF-16LE.
func encodePowerShell(script string) string {
	codes := utf16.Encode([]rune(script))
	raw := make([]byte, len(codes)*2)
	for i, c := range codes {
		raw[i*2] = byte(c)
		raw[i*2+1] = byte(c >> 8)
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// Quote wraps s as a single-quoted PowerShell string literal. Inside
// single quotes PowerShell only interprets the quote itself, which is
// escaped by doubling.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
