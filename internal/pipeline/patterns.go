package pipeline

import "regexp"

// patternRule is one compiled string-pattern-pass rule.
type patternRule struct {
	id       string
	category string
	re       *regexp.Regexp
}

// patternRuleSet groups the five rule families the string-pattern pass
// evaluates over extracted literals: SQL (9 rules → DataAccess), route
// paths (6 rules → API), sensitive-data tokens (8 rules → Security),
// environment references (6 rules → Config), log calls (4 rules →
// Logging) — 33 rules total, per the pipeline's structural-query/
// string-pattern split.
type patternRuleSet struct {
	rules []patternRule
}

func (rs patternRuleSet) match(literals []StringLiteral) []PatternMatch {
	var matches []PatternMatch
	for _, lit := range literals {
		for _, r := range rs.rules {
			if r.re.MatchString(lit.Value) {
				matches = append(matches, PatternMatch{RuleID: r.id, Category: r.category, Literal: lit})
			}
		}
	}
	return matches
}

func defaultPatternRuleSet() patternRuleSet {
	return patternRuleSet{rules: append(append(append(append(
		sqlRules(), routeRules()...), sensitiveRules()...), envRules()...), logRules()...)}
}

func sqlRules() []patternRule {
	return []patternRule{
		rule("sql.select", "DataAccess", `(?i)\bselect\b.+\bfrom\b`),
		rule("sql.insert", "DataAccess", `(?i)\binsert\s+into\b`),
		rule("sql.update", "DataAccess", `(?i)\bupdate\b.+\bset\b`),
		rule("sql.delete", "DataAccess", `(?i)\bdelete\s+from\b`),
		rule("sql.join", "DataAccess", `(?i)\b(inner|left|right|full)\s+join\b`),
		rule("sql.where", "DataAccess", `(?i)\bwhere\b.+=`),
		rule("sql.create_table", "DataAccess", `(?i)\bcreate\s+table\b`),
		rule("sql.alter_table", "DataAccess", `(?i)\balter\s+table\b`),
		rule("sql.union", "DataAccess", `(?i)\bunion\s+(all\s+)?select\b`),
	}
}

func routeRules() []patternRule {
	return []patternRule{
		rule("route.leading_slash", "API", `^/[a-zA-Z0-9_\-/]*$`),
		rule("route.param", "API", `^/.*:[a-zA-Z_][a-zA-Z0-9_]*`),
		rule("route.braced_param", "API", `^/.*\{[a-zA-Z_][a-zA-Z0-9_]*\}`),
		rule("route.rest_verb_path", "API", `(?i)^/api/v\d+/`),
		rule("route.wildcard", "API", `^/.*\*`),
		rule("route.trailing_slash_group", "API", `^/[a-zA-Z0-9_\-]+/$`),
	}
}

func sensitiveRules() []patternRule {
	return []patternRule{
		rule("sensitive.aws_access_key", "Security", `AKIA[0-9A-Z]{16}`),
		rule("sensitive.generic_api_key", "Security", `(?i)api[_-]?key["':= ]+[A-Za-z0-9\-_]{16,}`),
		rule("sensitive.bearer_token", "Security", `(?i)bearer\s+[A-Za-z0-9\-_\.]{10,}`),
		rule("sensitive.private_key_header", "Security", `-----BEGIN[ A-Z]*PRIVATE KEY-----`),
		rule("sensitive.password_literal", "Security", `(?i)password["':= ]+\S{4,}`),
		rule("sensitive.jwt", "Security", `^eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+$`),
		rule("sensitive.connection_string", "Security", `(?i)(mongodb|postgres|mysql)://\S+:\S+@`),
		rule("sensitive.slack_webhook", "Security", `https://hooks\.slack\.com/services/\S+`),
	}
}

func envRules() []patternRule {
	return []patternRule{
		rule("env.process_env", "Config", `^[A-Z][A-Z0-9_]{2,}$`),
		rule("env.dotenv_path", "Config", `(?i)^\.env(\.[a-z]+)?$`),
		rule("env.getenv_call_literal", "Config", `(?i)^(DATABASE_URL|API_KEY|SECRET_KEY|PORT)$`),
		rule("env.config_yaml", "Config", `(?i)^config(/[a-z]+)*\.ya?ml$`),
		rule("env.node_env_value", "Config", `(?i)^(development|production|staging|test)$`),
		rule("env.feature_flag_key", "Config", `(?i)^feature[_\-][a-z0-9_\-]+$`),
	}
}

func logRules() []patternRule {
	return []patternRule{
		rule("log.level_prefix", "Logging", `(?i)^\[(debug|info|warn|error|fatal)\]`),
		rule("log.printf_style", "Logging", `%[sdvqxXtT]`),
		rule("log.exception_prefix", "Logging", `(?i)^(error|exception|failed to)[: ]`),
		rule("log.trace_id", "Logging", `(?i)trace[_-]?id`),
	}
}

func rule(id, category, pattern string) patternRule {
	return patternRule{id: id, category: category, re: regexp.MustCompile(pattern)}
}
