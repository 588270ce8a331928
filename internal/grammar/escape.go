package grammar

import (
	"bytes"
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/ghettovoice/connuri/internal/constraints"
	"github.com/ghettovoice/connuri/internal/errorutil"
)

// ErrMalformedEscape is returned by [Unescape] on an invalid percent-encoded sequence.
const ErrMalformedEscape Error = "malformed escape sequence"

// Unescape unescapes s by converting each 3-byte encoded substring of the form "% HEXDIG HEXDIG" into the hex-decoded byte.
// A "%" not followed by two hex digits, or a result that is not valid UTF-8, is an error.
// Unlike form decoding, "+" is left as is.
func Unescape[T constraints.Byteseq](s T) (T, error) {
	if len(s) == 0 || !bytes.ContainsRune([]byte(s), '%') {
		if !utf8.Valid([]byte(s)) {
			return s, errtrace.Wrap(ErrMalformedEscape)
		}
		return s, nil
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			b.WriteByte(s[i])
			continue
		}
		if i+2 >= len(s) || !ishex(s[i+1]) || !ishex(s[i+2]) {
			return s, errtrace.Wrap(newMalformedEscapeErr(string(s)[i:min(i+3, len(s))]))
		}
		b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
		i += 2
	}
	if !utf8.Valid(b.Bytes()) {
		return s, errtrace.Wrap(ErrMalformedEscape)
	}
	return T(b.Bytes()), nil
}

func newMalformedEscapeErr(seq string) error {
	return errorutil.NewWrapperError(ErrMalformedEscape, "%q", seq) //errtrace:skip
}

// Escape escapes s by replacing each char matched by shouldEscape callback to the hex form "% HEXDIG HEXDIG".
// The "%" char is always escaped.
func Escape[T constraints.Byteseq](s T, shouldEscape func(c byte) bool) T {
	if len(s) == 0 {
		return s
	}

	if shouldEscape == nil {
		shouldEscape = func(c byte) bool { return !IsCharUnreserved(c) }
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' || shouldEscape(s[i]) {
			b.WriteByte('%')
			b.WriteByte(upperhex[s[i]>>4])
			b.WriteByte(upperhex[s[i]&15])
			continue
		}
		b.WriteByte(s[i])
	}
	return T(b.Bytes())
}

const upperhex = "0123456789ABCDEF"

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// IsAlphanumChar checks alphanum rule.
func IsAlphanumChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

var unreservedChars = [256]bool{
	'-':  true,
	'_':  true,
	'.':  true,
	'~':  true,
	'!':  true,
	'*':  true,
	'\'': true,
	'(':  true,
	')':  true,
}

// IsCharUnreserved checks on unreserved rule.
func IsCharUnreserved(c byte) bool {
	return unreservedChars[c] || IsAlphanumChar(c)
}

var userUnreservedChars = [256]bool{
	'&': true,
	'=': true,
	'+': true,
	'$': true,
	',': true,
	';': true,
}

// IsUserCharUnreserved reports whether c may appear unescaped in the user component.
func IsUserCharUnreserved(c byte) bool {
	return userUnreservedChars[c] || IsCharUnreserved(c)
}

// IsPasswordCharUnreserved reports whether c may appear unescaped in the password component.
func IsPasswordCharUnreserved(c byte) bool {
	return c == ':' || IsUserCharUnreserved(c)
}

// IsHostCharUnreserved reports whether c may appear unescaped in a registered host name.
func IsHostCharUnreserved(c byte) bool {
	return IsCharUnreserved(c)
}

// IsIPLiteralCharUnreserved reports whether c may appear unescaped inside brackets of an IP literal.
func IsIPLiteralCharUnreserved(c byte) bool {
	return c == ':' || IsCharUnreserved(c)
}

var pathUnreservedChars = [256]bool{
	'/': true,
	':': true,
	'@': true,
	'&': true,
	'=': true,
	'+': true,
	'$': true,
	',': true,
	';': true,
}

// IsDBNameCharUnreserved reports whether c may appear unescaped in the dbname component.
func IsDBNameCharUnreserved(c byte) bool {
	return pathUnreservedChars[c] || IsCharUnreserved(c)
}

// IsOptionKeyCharUnreserved reports whether c may appear unescaped in a query option key.
func IsOptionKeyCharUnreserved(c byte) bool {
	return c != '&' && c != '=' && (pathUnreservedChars[c] || c == '?' || IsCharUnreserved(c))
}

// IsOptionValueCharUnreserved reports whether c may appear unescaped in a query option value.
func IsOptionValueCharUnreserved(c byte) bool {
	return c == '=' || IsOptionKeyCharUnreserved(c)
}
