// Package crypto implements the cryptographic-failure engine: a table of
// per-language call-site anti-pattern rules, run as an ordinary pipeline
// visitor handler, producing Finding records with context-aware severity,
// a four-factor confidence blend, and a per-project health score.
//
// Grounded on internal/analysis/{go,python,javascript}_analyzer.go's
// per-language call-site visitor shape and internal/regex_analyzer/
// engine.go's compiled-pattern-table-with-cache idiom; extends
// internal/security/file_validator.go rather than replacing it — that
// file validates file *shape*, this package inspects call sites *within*
// already-parsed files.
package crypto

import "github.com/standardbeagle/chorus/internal/model"

// Category is the closed set of 14 crypto anti-pattern categories from
// spec §3.
type Category string

const (
	CategoryWeakHash           Category = "WeakHash"
	CategoryDeprecatedCipher   Category = "DeprecatedCipher"
	CategoryHardcodedKey       Category = "HardcodedKey"
	CategoryEcbMode            Category = "EcbMode"
	CategoryStaticIv           Category = "StaticIv"
	CategoryInsufficientKeyLen Category = "InsufficientKeyLen"
	CategoryDisabledTls        Category = "DisabledTls"
	CategoryInsecureRandom     Category = "InsecureRandom"
	CategoryJwtConfusion       Category = "JwtConfusion"
	CategoryPlaintextPassword  Category = "PlaintextPassword"
	CategoryWeakKdf            Category = "WeakKdf"
	CategoryMissingEncryption  Category = "MissingEncryption"
	CategoryCertPinningBypass  Category = "CertPinningBypass"
	CategoryNonceReuse         Category = "NonceReuse"
)

// Severity is the closed severity enum crypto findings carry, distinct
// from model.Severity (that one is for convention-derived violations;
// crypto severities map onto a 5-point scale the health score weights).
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
	SeverityInfo     Severity = "Info"
)

// Finding is the entity from spec §3 Crypto finding.
type Finding struct {
	Category        Category
	Severity        Severity
	Confidence      float64 // clamped to [0.1, 0.99]
	Weakness        int     // primary weakness-catalog identifier (e.g. CWE number)
	AdditionalWeak  []int
	Location        model.Location
	Evidence        string
	Algorithm       string
	Remediation     string
	RemediationCode string
	Language        string
	Library         string
	PatternID       string
	SecurityContext bool
	ContentHash     [32]byte
}
