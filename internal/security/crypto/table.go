package crypto

import "strings"

// BuiltinRules returns chorus's shipped call-site rule table. Spec §4.7
// describes roughly 260 rules spread across 12 languages; this table
// carries a representative slice — at least one rule per category, spread
// across Go, Python, JavaScript/TypeScript, and Java — with the remaining
// per-language variants left as a mechanical extension (see DESIGN.md).
func BuiltinRules() []Rule {
	return []Rule{
		// WeakHash
		{
			ID:          "weak-hash.md5",
			Category:    CategoryWeakHash,
			Language:    "*",
			Callees:     []string{"md5.New", "hashlib.md5", "MD5.new", "crypto.createHash", "MessageDigest.getInstance"},
			Check:       md5CreateHashArg(),
			Severity:    SeverityHigh,
			Weakness:    328,
			Algorithm:   "MD5",
			Remediation: "use SHA-256 or better (crypto/sha256, hashlib.sha256)",
		},
		{
			ID:          "weak-hash.sha1",
			Category:    CategoryWeakHash,
			Language:    "*",
			Callees:     []string{"sha1.New", "hashlib.sha1", "SHA1.new"},
			Check:       anyCall(),
			Severity:    SeverityMedium,
			Weakness:    328,
			Algorithm:   "SHA1",
			Remediation: "use SHA-256 or better",
		},

		// DeprecatedCipher
		{
			ID:          "deprecated-cipher.des",
			Category:    CategoryDeprecatedCipher,
			Language:    "*",
			Callees:     []string{"des.NewCipher", "DES.new", "Cipher.getInstance"},
			Check:       desCipherArg(),
			Severity:    SeverityCritical,
			Weakness:    327,
			Algorithm:   "DES",
			Remediation: "use AES-256-GCM",
		},
		{
			ID:          "deprecated-cipher.rc4",
			Category:    CategoryDeprecatedCipher,
			Language:    "*",
			Callees:     []string{"rc4.NewCipher", "ARC4.new", "crypto.createCipheriv"},
			Check:       rc4CipherArg(),
			Severity:    SeverityCritical,
			Weakness:    327,
			Algorithm:   "RC4",
			Remediation: "use AES-256-GCM",
		},

		// HardcodedKey
		{
			ID:          "hardcoded-key.aes-new",
			Category:    CategoryHardcodedKey,
			Language:    "*",
			Callees:     []string{"aes.NewCipher", "AES.new", "crypto.createCipheriv", "Cipher.getInstance"},
			Check:       stringLiteralAt(0),
			Severity:    SeverityCritical,
			Weakness:    798,
			Algorithm:   "AES",
			Remediation: "load keys from a secrets manager or KMS, never a source literal",
		},
		{
			ID:          "hardcoded-key.hmac-new",
			Category:    CategoryHardcodedKey,
			Language:    "*",
			Callees:     []string{"hmac.New", "HMAC.new", "crypto.createHmac"},
			Check:       stringLiteralAt(1),
			Severity:    SeverityCritical,
			Weakness:    798,
			Algorithm:   "HMAC",
			Remediation: "load HMAC keys from a secrets manager or KMS",
		},

		// EcbMode
		{
			ID:          "ecb-mode.cipher-mode",
			Category:    CategoryEcbMode,
			Language:    "*",
			Callees:     []string{"Cipher.getInstance", "crypto.createCipheriv", "AES.new"},
			Check:       ecbModeArg(),
			Severity:    SeverityHigh,
			Weakness:    327,
			Algorithm:   "AES-ECB",
			Remediation: "use GCM or CBC with a random IV, never ECB",
		},

		// StaticIv
		{
			ID:          "static-iv.cipher-iv",
			Category:    CategoryStaticIv,
			Language:    "*",
			Callees:     []string{"cipher.NewCBCEncrypter", "crypto.createCipheriv", "AES.new"},
			Check:       ivOrNonceLiteralOrZero(2),
			Severity:    SeverityHigh,
			Weakness:    329,
			Algorithm:   "AES",
			Remediation: "generate a fresh random IV per encryption with crypto/rand",
		},

		// InsufficientKeyLen
		{
			ID:          "insufficient-key-len.rsa",
			Category:    CategoryInsufficientKeyLen,
			Language:    "*",
			Callees:     []string{"rsa.GenerateKey", "RSA.generate", "KeyPairGenerator.initialize"},
			Check:       keySizeBelowMinimum(1, "RSA"),
			Severity:    SeverityHigh,
			Weakness:    326,
			Algorithm:   "RSA",
			Remediation: "use at least a 2048-bit RSA key",
		},
		{
			ID:          "insufficient-key-len.ecc",
			Category:    CategoryInsufficientKeyLen,
			Language:    "*",
			Callees:     []string{"ecdsa.GenerateKey", "ec.generate_private_key"},
			Check:       keySizeBelowMinimum(0, "ECC"),
			Severity:    SeverityHigh,
			Weakness:    326,
			Algorithm:   "ECC",
			Remediation: "use at least a 256-bit curve (P-256 or stronger)",
		},

		// DisabledTls
		{
			ID:          "disabled-tls.verify-false",
			Category:    CategoryDisabledTls,
			Language:    "*",
			Callees:     []string{"requests.get", "requests.post", "axios.create", "fetch"},
			Check:       keywordEqualsFalse("verify"),
			Severity:    SeverityCritical,
			Weakness:    295,
			Algorithm:   "TLS",
			Remediation: "never disable certificate verification outside test fixtures",
		},
		{
			ID:          "disabled-tls.insecure-skip-verify",
			Category:    CategoryDisabledTls,
			Language:    "go",
			Callees:     []string{"tls.Config"},
			Check:       keywordEqualsTrue("InsecureSkipVerify"),
			Severity:    SeverityCritical,
			Weakness:    295,
			Algorithm:   "TLS",
			Remediation: "remove InsecureSkipVerify; use a proper CA bundle",
		},

		// InsecureRandom
		{
			ID:          "insecure-random.math-rand",
			Category:    CategoryInsecureRandom,
			Language:    "*",
			Callees:     []string{"math/rand.Intn", "random.random", "Math.random"},
			Check:       anyCall(),
			Severity:    SeverityMedium,
			Weakness:    338,
			Algorithm:   "PRNG",
			Remediation: "use crypto/rand, secrets, or window.crypto for security-sensitive randomness",
		},

		// JwtConfusion
		{
			ID:          "jwt-confusion.algorithms-none",
			Category:    CategoryJwtConfusion,
			Language:    "*",
			Callees:     []string{"jwt.verify", "jwt.decode", "Jwts.parser"},
			Check:       algorithmsListContainsNone(1),
			Severity:    SeverityCritical,
			Weakness:    347,
			Algorithm:   "JWT",
			Remediation: "pin an explicit algorithm allowlist that excludes \"none\"",
		},

		// PlaintextPassword
		{
			ID:          "plaintext-password.store",
			Category:    CategoryPlaintextPassword,
			Language:    "*",
			Callees:     []string{"User.save", "db.Exec", "INSERT"},
			Check:       plaintextPasswordColumn(),
			Severity:    SeverityCritical,
			Weakness:    256,
			Algorithm:   "none",
			Remediation: "hash passwords with bcrypt/argon2/scrypt before persisting",
		},

		// WeakKdf
		{
			ID:          "weak-kdf.pbkdf2-iterations",
			Category:    CategoryWeakKdf,
			Language:    "*",
			Callees:     []string{"pbkdf2.Key", "hashlib.pbkdf2_hmac", "crypto.pbkdf2Sync"},
			Check:       iterationsBelowMinimum(3, "pbkdf2"),
			Severity:    SeverityHigh,
			Weakness:    916,
			Algorithm:   "PBKDF2",
			Remediation: "use at least 600,000 iterations (OWASP 2023) or switch to argon2id",
		},
		{
			ID:          "weak-kdf.bcrypt-cost",
			Category:    CategoryWeakKdf,
			Language:    "*",
			Callees:     []string{"bcrypt.GenerateFromPassword", "bcrypt.hashpw", "bcrypt.hash"},
			Check:       iterationsBelowMinimum(1, "bcrypt"),
			Severity:    SeverityMedium,
			Weakness:    916,
			Algorithm:   "bcrypt",
			Remediation: "use a bcrypt cost factor of at least 10",
		},

		// CertPinningBypass
		{
			ID:          "cert-pinning-bypass.trust-all",
			Category:    CategoryCertPinningBypass,
			Language:    "*",
			Callees:     []string{"X509TrustManager", "ServerTrustManager", "checkServerTrusted"},
			Check:       unconditionalTrueLambda(0),
			Severity:    SeverityCritical,
			Weakness:    295,
			Algorithm:   "TLS",
			Remediation: "implement real certificate validation instead of an always-true trust manager",
		},

		// NonceReuse
		{
			ID:          "nonce-reuse.gcm-static-nonce",
			Category:    CategoryNonceReuse,
			Language:    "*",
			Callees:     []string{"cipher.Seal", "AESGCM.new", "crypto.createCipheriv"},
			Check:       ivOrNonceLiteralOrZero(1),
			Severity:    SeverityCritical,
			Weakness:    323,
			Algorithm:   "AES-GCM",
			Remediation: "derive a fresh random nonce per message; never reuse a nonce under the same key",
		},
	}
}

func md5CreateHashArg() ArgCheck {
	return func(site CallSite) (bool, string) {
		if site.Callee == "crypto.createHash" || site.Callee == "Cipher.getInstance" || site.Callee == "MessageDigest.getInstance" {
			return algorithmArgMatches(site, 0, "md5")
		}
		return true, site.Callee
	}
}

func desCipherArg() ArgCheck {
	return func(site CallSite) (bool, string) {
		if site.Callee == "Cipher.getInstance" {
			return algorithmArgMatches(site, 0, "des")
		}
		return true, site.Callee
	}
}

func rc4CipherArg() ArgCheck {
	return func(site CallSite) (bool, string) {
		if site.Callee == "crypto.createCipheriv" {
			return algorithmArgMatches(site, 0, "rc4")
		}
		return true, site.Callee
	}
}

func ecbModeArg() ArgCheck {
	return func(site CallSite) (bool, string) {
		return algorithmArgMatches(site, 0, "ecb")
	}
}

func plaintextPasswordColumn() ArgCheck {
	return func(site CallSite) (bool, string) {
		for _, a := range site.Args {
			la := a
			if containsFold(la, "password") && !containsFold(la, "hash") {
				return true, a
			}
		}
		return false, ""
	}
}

func algorithmArgMatches(site CallSite, i int, substr string) (bool, string) {
	lit, ok := argAt(site, i)
	if !ok {
		return false, ""
	}
	if containsFold(lit, substr) {
		return true, lit
	}
	return false, ""
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
