package crypto

// CallSite is the normalized shape a Rule's ArgCheck inspects: the callee
// name as written (e.g. "hashlib.md5", "DES.new", "crypto.createCipheriv")
// and the raw source text of each positional argument, extracted from the
// call-expression node's argument list without per-grammar field lookup.
type CallSite struct {
	Callee string
	Args   []string
	Lang   string
}

// ArgCheck inspects a CallSite's arguments and reports whether the
// anti-pattern the owning Rule describes is actually present. A nil
// ArgCheck means the callee name alone is sufficient (e.g. any call to
// Python's `pickle.loads` on untrusted input, or `MD5.New` regardless of
// arguments).
type ArgCheck func(site CallSite) (matched bool, evidence string)

// Rule is one entry in the crypto engine's call-site pattern table, the
// per-language equivalent of internal/regex_analyzer/engine.go's compiled
// pattern table but matched against call identifiers instead of regexes.
type Rule struct {
	ID              string
	Category        Category
	Language        string // pipeline.Language value, or "*" for language-agnostic callee names
	Callees         []string
	Check           ArgCheck
	Severity        Severity
	Weakness        int
	Algorithm       string
	Library         string
	Remediation     string
	RemediationCode string
}

// matchesCallee reports whether name is one of r's tracked callees, doing
// a plain suffix match so "crypto.createHash" rules also catch
// "require('crypto').createHash" and similarly qualified call forms.
func (r Rule) matchesCallee(name string) bool {
	for _, c := range r.Callees {
		if name == c || hasSuffixDotted(name, c) {
			return true
		}
	}
	return false
}

func hasSuffixDotted(name, suffix string) bool {
	if len(name) <= len(suffix) {
		return name == suffix
	}
	return name[len(name)-len(suffix):] == suffix && name[len(name)-len(suffix)-1] == '.'
}
