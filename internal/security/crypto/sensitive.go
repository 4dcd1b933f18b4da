package crypto

import "strings"

// sensitiveFieldNames are substrings that mark a field/column/variable name
// as likely holding sensitive data worth encrypting at rest, spec §4.7's
// MissingEncryption category input.
var sensitiveFieldNames = []string{
	"password", "secret", "token", "ssn", "social_security",
	"credit_card", "creditcard", "cvv", "api_key", "apikey",
	"private_key", "privatekey", "passphrase",
}

// SensitiveFieldSource yields the field/column names a storage-layer
// extractor (contract engine's schema parse, or a future ORM-model
// extractor) has already discovered for one file, so MissingEncryption
// doesn't need its own parallel AST walk.
type SensitiveFieldSource interface {
	FieldNames(path string) []string
}

// LooksSensitive reports whether name plausibly holds sensitive data,
// matched by substring against sensitiveFieldNames.
func LooksSensitive(name string) bool {
	lower := strings.ToLower(name)
	for _, s := range sensitiveFieldNames {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// MissingEncryptionFindings cross-references a file's sensitive field
// names against its encryption call sites: a field name that looks
// sensitive but whose file contains no call matching any HardcodedKey,
// EcbMode, StaticIv, or WeakKdf rule (i.e. no encryption call site was
// recognized at all) is reported as a MissingEncryption finding, spec
// §4.7's only category that fires on an *absence* rather than a
// call-site match.
func MissingEncryptionFindings(path string, src SensitiveFieldSource, encryptionCallSeen bool) []Finding {
	if encryptionCallSeen {
		return nil
	}
	var findings []Finding
	for _, name := range src.FieldNames(path) {
		if !LooksSensitive(name) {
			continue
		}
		findings = append(findings, Finding{
			Category:    CategoryMissingEncryption,
			Severity:    SeverityMedium,
			Confidence:  0.4,
			Weakness:    311,
			Evidence:    name,
			Algorithm:   "none",
			Remediation: "encrypt sensitive fields at rest (e.g. application-level AES-GCM or column-level encryption)",
			PatternID:   "missing-encryption.sensitive-field",
		})
	}
	return findings
}
