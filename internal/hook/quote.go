package hook

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// shellQuote single-quotes s for a POSIX shell. Single quotes preserve every
// character literally except the single quote itself, which is written as
// '\'' (close the quote, an escaped quote, reopen).
func shellQuote(s string) (string, error) {
	if !utf8.ValidString(s) || strings.ContainsRune(s, 0) {
		return "", fmt.Errorf("%w: %q", ErrPathEncoding, s)
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'", nil
}
