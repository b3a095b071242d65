package confstore

import (
	"strconv"
	"strings"
)

// Bytes that cannot appear in a directory name and are written as @<decimal>@.
const invalidKeyChars = " \t\r\n\"$&<>,+=#!()'|{}[]?~`;%\\"

func needsEscape(c byte) bool {
	return c == '/' || c == '.' || c == '@' || c > 127 || strings.IndexByte(invalidKeyChars, c) >= 0
}

// EscapeKey turns arbitrary text into a single valid path segment.
func EscapeKey(text string) string {
	var b strings.Builder
	for i := 0; i < len(text); i++ {
		c := text[i]
		if needsEscape(c) {
			b.WriteByte('@')
			b.WriteString(strconv.Itoa(int(c)))
			b.WriteByte('@')
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// UnescapeKey reverses EscapeKey. Sequences that are not a well formed
// @<decimal byte>@ are kept as they are.
func UnescapeKey(key string) string {
	if strings.IndexByte(key, '@') < 0 {
		return key
	}

	var b strings.Builder
	for i := 0; i < len(key); {
		if key[i] != '@' {
			b.WriteByte(key[i])
			i++
			continue
		}
		end := strings.IndexByte(key[i+1:], '@')
		if end <= 0 {
			b.WriteByte(key[i])
			i++
			continue
		}
		digits := key[i+1 : i+1+end]
		v, err := strconv.ParseUint(digits, 10, 8)
		if err != nil {
			b.WriteByte(key[i])
			i++
			continue
		}
		b.WriteByte(byte(v))
		i += end + 2
	}
	return b.String()
}

// BaseName returns the unescaped final segment of a directory path, or ""
// when the path has no segment after its last slash.
func BaseName(dirPath string) string {
	idx := strings.LastIndexByte(dirPath, '/')
	if idx < 0 {
		return ""
	}
	return UnescapeKey(dirPath[idx+1:])
}
