package crypto

import (
	"strconv"
	"strings"
)

// stringLiteralAt reports whether the argument at index i is present and is
// a quoted string literal (as opposed to a variable reference or call),
// spec §4.7's "string literal at position N" check — used for rules like a
// hardcoded encryption key passed directly as a call argument.
func stringLiteralAt(i int) ArgCheck {
	return func(site CallSite) (bool, string) {
		lit, ok := argAt(site, i)
		if !ok || !isStringLiteral(lit) {
			return false, ""
		}
		return true, lit
	}
}

// numericBelow reports whether the argument at index i parses as a number
// below threshold — spec §4.7's "numeric argument at position N below
// threshold T", used for key-size and iteration-count checks below.
func numericBelow(i int, threshold float64) ArgCheck {
	return func(site CallSite) (bool, string) {
		lit, ok := argAt(site, i)
		if !ok {
			return false, ""
		}
		n, ok := parseNumber(lit)
		if !ok || n >= threshold {
			return false, ""
		}
		return true, lit
	}
}

// keywordEqualsFalse reports whether any argument is a `name=false` /
// `name: false` keyword form, spec §4.7's "named keyword argument equal to
// false" — the shape TLS verification disables take in most languages
// ("verify=False", "rejectUnauthorized: false", "InsecureSkipVerify: true").
func keywordEqualsFalse(name string) ArgCheck {
	lowered := strings.ToLower(name)
	return func(site CallSite) (bool, string) {
		for _, a := range site.Args {
			la := strings.ToLower(strings.TrimSpace(a))
			if (strings.HasPrefix(la, lowered+"=") || strings.HasPrefix(la, lowered+":")) &&
				strings.Contains(la, "false") {
				return true, a
			}
		}
		return false, ""
	}
}

// keywordEqualsTrue is keywordEqualsFalse's mirror, for flags whose unsafe
// value is `true` (e.g. Go's tls.Config{InsecureSkipVerify: true}).
func keywordEqualsTrue(name string) ArgCheck {
	lowered := strings.ToLower(name)
	return func(site CallSite) (bool, string) {
		for _, a := range site.Args {
			la := strings.ToLower(strings.TrimSpace(a))
			if (strings.HasPrefix(la, lowered+"=") || strings.HasPrefix(la, lowered+":")) &&
				strings.Contains(la, "true") {
				return true, a
			}
		}
		return false, ""
	}
}

// algorithmsListContainsNone reports whether a JWT-library algorithm
// allowlist argument contains the literal "none" (case-insensitive),
// spec §4.7's "algorithms list contains 'none'" — the classic JWT
// algorithm-confusion bypass.
func algorithmsListContainsNone(i int) ArgCheck {
	return func(site CallSite) (bool, string) {
		lit, ok := argAt(site, i)
		if !ok {
			return false, ""
		}
		if strings.Contains(strings.ToLower(lit), "none") {
			return true, lit
		}
		return false, ""
	}
}

// ivOrNonceLiteralOrZero reports whether the IV/nonce argument at index i
// is a fixed literal rather than a freshly generated value, spec §4.7's
// "IV/nonce argument is a literal or all-zero array" — catches both a
// hardcoded hex string and an explicit zero-filled buffer.
func ivOrNonceLiteralOrZero(i int) ArgCheck {
	return func(site CallSite) (bool, string) {
		lit, ok := argAt(site, i)
		if !ok {
			return false, ""
		}
		trimmed := strings.TrimSpace(lit)
		if isStringLiteral(trimmed) {
			return true, lit
		}
		if looksAllZero(trimmed) {
			return true, lit
		}
		return false, ""
	}
}

// keySizeBelowMinimum reports whether the numeric argument at index i is
// below algo's minimum acceptable key size: RSA 2048, ECC 256, AES 128
// (spec §4.7's per-algorithm key-size floors).
func keySizeBelowMinimum(i int, algo string) ArgCheck {
	minimum, ok := map[string]float64{
		"RSA": 2048,
		"ECC": 256,
		"AES": 128,
	}[strings.ToUpper(algo)]
	if !ok {
		minimum = 128
	}
	return numericBelow(i, minimum)
}

// iterationsBelowMinimum reports whether the numeric argument at index i is
// below kdf's minimum iteration/cost floor: PBKDF2 600,000, bcrypt cost 10,
// scrypt N 16384 (spec §4.7's KDF parameter floors, OWASP 2023 guidance).
func iterationsBelowMinimum(i int, kdf string) ArgCheck {
	minimum, ok := map[string]float64{
		"pbkdf2": 600000,
		"bcrypt": 10,
		"scrypt": 16384,
	}[strings.ToLower(kdf)]
	if !ok {
		minimum = 10000
	}
	return numericBelow(i, minimum)
}

// unconditionalTrueLambda reports whether the argument at index i is a
// callback whose body is just "true" (or "=> true" / "-> True"), spec
// §4.7's "callback body is a lambda returning true unconditionally" —
// the shape a disabled certificate-pinning check takes when a framework
// requires a validator callback but the developer stubs it out.
func unconditionalTrueLambda(i int) ArgCheck {
	return func(site CallSite) (bool, string) {
		lit, ok := argAt(site, i)
		if !ok {
			return false, ""
		}
		body := strings.TrimSpace(lit)
		for _, marker := range []string{"=>", "->", "lambda"} {
			if idx := strings.Index(body, marker); idx >= 0 {
				body = strings.TrimSpace(body[idx+len(marker):])
				break
			}
		}
		body = strings.TrimSuffix(strings.TrimPrefix(body, "{"), "}")
		body = strings.TrimSpace(body)
		return body == "true" || body == "True" || body == "return true" || body == "return True", lit
	}
}

// anyCall matches on callee name alone, for rules with no argument shape to
// check (spec §4.7's "custom" category: presence of the call is itself the
// signal, e.g. any call to a known-broken primitive like MD5 or DES).
func anyCall() ArgCheck { return nil }

func argAt(site CallSite, i int) (string, bool) {
	if i < 0 || i >= len(site.Args) {
		return "", false
	}
	return strings.TrimSpace(site.Args[i]), true
}

func isStringLiteral(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return (first == '"' && last == '"') || (first == '\'' && last == '\'') || (first == '`' && last == '`')
}

func looksAllZero(s string) bool {
	s = strings.Trim(s, `"'`)
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '0' {
			return false
		}
	}
	return true
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(strings.Trim(s, `"'`))
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
