package config

import (
	"os"
	"runtime"

	"github.com/standardbeagle/chorus/internal/types"
)

type Config struct {
	Version              int
	Project              Project
	Index                Index
	Performance          Performance
	Analysis             Analysis
	Confidence           Confidence
	Convention           Convention
	Contract             Contract
	Crypto               Crypto
	Store                Store
	FeatureFlags         FeatureFlags
	Include              []string
	Exclude              []string
	PropagationConfigDir string // Directory for propagation configuration files
}

type Project struct {
	Root string
	Name string
}

type Index struct {
	MaxFileSize      int64
	MaxTotalSizeMB   int64
	MaxFileCount     int
	FollowSymlinks   bool
	SmartSizeControl bool
	PriorityMode     string // "recent", "small", "important"
	RespectGitignore bool   // Process .gitignore files for additional exclusions
	WatchMode        bool   // Enable file system watching for automatic reindexing
	WatchDebounceMs  int    // Debounce time for file change events
}

type Performance struct {
	MaxMemoryMB         int // Maximum memory usage in MB
	MaxGoroutines       int // Maximum number of goroutines for indexing
	DebounceMs          int // Debounce time in milliseconds for file change events
	ParallelFileWorkers int // 0 = auto-detect (NumCPU)
	IndexingTimeoutSec  int // Timeout for a full analysis pass in seconds (default: 120)

	StartupDelayMs int // Delay before auto-analysis starts (default: 1500ms)
	// This delay allows a connected client (e.g. an MCP host) to become
	// responsive before CPU-intensive analysis begins. Set to 0 to disable.
}

// Analysis controls the L1 detector pipeline: which detector categories run,
// how deep the visitor walks, and how panics are contained.
type Analysis struct {
	EnabledDetectors    []string // empty means "all registered detectors"
	DisabledDetectors   []string
	MaxPanicsPerFile    int  // detector auto-disabled after this many panics on one file
	EnableNormalizedAST bool // opt-in cross-language normalized AST layer
	WorkerCount         int  // 0 = auto-detect (NumCPU)
}

// Confidence controls the Bayesian scorer's priors and the minimum sample
// floor below which a credible interval is refused rather than reported.
type Confidence struct {
	PriorAlpha        float64 // Beta prior alpha (default 1.0, uniform)
	PriorBeta         float64 // Beta prior beta (default 1.0, uniform)
	CredibleInterval  float64 // e.g. 0.95 for a 95% credible interval
	MinObservations   int     // floor below which InsufficientData is returned
	ClassicalBlendMin int     // observation count at which classical frequentist weight reaches its floor
}

// Convention controls the learning engine's classification thresholds and
// retention policy.
type Convention struct {
	UniversalThreshold  float64 // posterior mean above which a value is Universal
	ContestedMargin     float64 // max posterior-mean gap between top two values to call them Contested
	TrendDelta          float64 // frequency delta beyond which a trend is Rising/Declining rather than Stable
	RetentionWindowDays int     // how long an observation is retained before classified Legacy-eligible
	ExpiryWindowDays    int     // how long a convention is kept once it stops being observed

	// Enforcement minimums: a dominant convention below any of these is
	// skipped rather than enforced.
	MinFiles       int     // minimum distinct files carrying the value
	MinOccurrences int     // minimum total occurrence count
	MinConfidence  float64 // minimum scorer confidence

	// ScopesEnabled opts into directory/package-scoped dominant-convention
	// resolution; off by default, enforcement always resolves at project
	// scope (spec §4.3 Enforcement: "most-specific scope wins... but only
	// when opt-in scopes are enabled").
	ScopesEnabled bool
	// ExcludeTestsFromEnforcement skips violation emission for files
	// matching Crypto.TestPathPatterns, independent of whether test files
	// reach the pipeline at all (spec §4.3 Enforcement: "optionally tests").
	ExcludeTestsFromEnforcement bool
}

// Contract controls the multi-paradigm contract engine: which paradigms are
// extracted and how aggressively breaking changes are flagged.
type Contract struct {
	EnabledParadigms     []string // REST, GraphQL, gRPC, WebSocket, EventDriven, TypedProcedure
	PathSimilarityFloor  float64  // minimum 5-factor similarity score to consider two paths the same contract
	ConfidenceDecayDays  int      // exponential decay half-life for unobserved contracts
	SchemaFirstPreferred bool     // prefer schema-first extraction over code-first when both are present
}

// Crypto controls the cryptographic failure detector: which categories run
// and how context-sensitive the severity adjustment is.
type Crypto struct {
	EnabledCategories  []string // empty means all 14 categories
	TestPathPatterns   []string // paths matched here get a severity discount
	MinConfidence      float64  // findings below this confidence are suppressed
	HealthScoreWeights map[string]float64
}

// Store controls the embedded persistence layer.
type Store struct {
	Path              string // path to the single-file database; empty = in-memory
	BatchSize         int    // rows per batch-writer transaction
	BatchIntervalMs   int    // max time a batch waits before flushing
	RetainObservation bool   // persist raw observations alongside posteriors
}

// FeatureFlags controls experimental features and rollback capabilities
type FeatureFlags struct {
	// Performance and reliability features
	EnableMemoryLimits        bool // Enable memory management and LRU eviction
	EnableGracefulDegradation bool // Enable fallback to basic features on errors

	// Debugging and monitoring features
	EnablePerformanceMonitoring bool // Enable performance metrics collection
	EnableDetailedErrorLogging  bool // Enable detailed error context logging
	EnableFeatureFlagLogging    bool // Log feature flag state on startup

	// AuthoritativeScoreV1 makes the confidence scorer's v1 score (the
	// pre-Bayesian weighted blend) authoritative instead of the v2
	// posterior-blended score, for the migration period where callers
	// still expect v1's enforcement decisions.
	AuthoritativeScoreV1 bool
}

func Load(path string) (*Config, error) {
	return LoadWithRoot(path, "")
}

func LoadWithRoot(path string, rootDir string) (*Config, error) {
	// Determine search directory for config files
	searchDir := "."
	if rootDir != "" {
		searchDir = rootDir
	}

	// Step 1: Load global base config from ~/.chorus.kdl (if exists)
	homeDir, err := os.UserHomeDir()
	var baseConfig *Config
	if err == nil {
		if globalCfg, err := LoadKDL(homeDir); err == nil && globalCfg != nil {
			baseConfig = globalCfg
		}
	}

	// Step 2: Load project-specific config from project directory
	var projectConfig *Config
	if kdlCfg, err := LoadKDL(searchDir); err == nil && kdlCfg != nil {
		projectConfig = kdlCfg
	} else if err != nil {
		return nil, err
	}

	// Step 3: Merge configs (project overrides base, but preserve base exclusions)
	if baseConfig != nil && projectConfig != nil {
		return mergeConfigs(baseConfig, projectConfig), nil
	} else if projectConfig != nil {
		return projectConfig, nil
	} else if baseConfig != nil {
		// Use base config but update project root
		baseConfig.Project.Root = searchDir
		return baseConfig, nil
	}

	// Default config
	// Use current working directory as absolute path for consistency
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "." // Fallback to relative if we can't get absolute
	}

	cfg := &Config{
		Version: 1,
		Project: Project{
			Root: cwd,
		},
		Index: Index{
			MaxFileSize:      types.DefaultMaxFileSize,
			MaxTotalSizeMB:   types.DefaultMaxTotalSizeMB,
			MaxFileCount:     types.DefaultMaxFileCount,
			FollowSymlinks:   false,
			SmartSizeControl: true,     // Enable intelligent size management
			PriorityMode:     "recent", // Prefer recently modified files
			RespectGitignore: true,     // Process .gitignore files by default
			WatchMode:        true,     // Enable file watching by default
			WatchDebounceMs:  300,      // 300ms debounce for file changes
		},
		Performance: Performance{
			MaxMemoryMB:         500,
			MaxGoroutines:       runtime.NumCPU(),
			DebounceMs:          100,
			ParallelFileWorkers: 0,    // 0 = auto-detect (NumCPU)
			IndexingTimeoutSec:  120,  // 120 seconds for large projects
			StartupDelayMs:      1500, // 1.5 second delay to let UI become responsive
		},
		Analysis: Analysis{
			MaxPanicsPerFile:    3, // matches the detector auto-disable threshold
			EnableNormalizedAST: false,
			WorkerCount:         0, // 0 = auto-detect (NumCPU)
		},
		Confidence: Confidence{
			PriorAlpha:        1.0, // uniform Beta prior
			PriorBeta:         1.0,
			CredibleInterval:  0.95,
			MinObservations:   5,
			ClassicalBlendMin: 30,
		},
		Convention: Convention{
			UniversalThreshold:  0.95,
			ContestedMargin:     0.10,
			TrendDelta:          0.05,
			RetentionWindowDays: 180,
			ExpiryWindowDays:    365,
			MinFiles:            5,
			MinOccurrences:      10,
			MinConfidence:       0.7,
		},
		Contract: Contract{
			EnabledParadigms:     []string{"rest", "graphql", "grpc", "websocket", "event_driven", "typed_procedure"},
			PathSimilarityFloor:  0.75,
			ConfidenceDecayDays:  90,
			SchemaFirstPreferred: true,
		},
		Crypto: Crypto{
			MinConfidence: 0.5,
			TestPathPatterns: []string{
				"**/*_test.go", "**/test/**", "**/tests/**", "**/testdata/**",
			},
		},
		Store: Store{
			BatchSize:         500,
			BatchIntervalMs:   200,
			RetainObservation: true,
		},
		FeatureFlags: FeatureFlags{
			// Performance and reliability features - enable core safety features
			EnableMemoryLimits:        true, // Enable memory management
			EnableGracefulDegradation: true, // Enable fallback capabilities

			// Debugging and monitoring features - enable for better diagnostics
			EnablePerformanceMonitoring: true, // Enable performance metrics
			EnableDetailedErrorLogging:  true, // Enable detailed error logging
			EnableFeatureFlagLogging:    true, // Log feature flag state
		},
		Include: []string{},
		Exclude: []string{
			// Git metadata (never indexable)
			"**/.git/**",

			// Hidden directories (catch-all for dot directories)
			"**/.*/**", // All hidden directories

			// Package managers & dependencies
			"**/node_modules/**",
			"**/vendor/**",
			"**/bower_components/**",
			"**/jspm_packages/**",

			// Build artifacts & output
			"**/dist/**",
			"**/build/**",
			"**/out/**",
			"**/target/**", // Rust, Java
			"**/bin/**",
			"**/obj/**",    // .NET
			"**/ui/**",     // Web UI build artifacts
			"**/public/**", // Static assets
			"**/*.min.js",
			"**/*.min.css",
			"**/*.bundle.js",
			"**/*.chunk.js",
			"**/*.min.map", // Source maps for minified files

			// Test files and directories (language-agnostic patterns)
			// Go test files
			"**/*_test.go",
			"**/*_tests.go",
			// Python test files
			"**/*_test.py",
			"**/*_tests.py",
			"**/test_*.py",
			"**/tests_*.py",
			// JavaScript/TypeScript test files (Jest, Vitest, Mocha)
			"**/*.test.js",
			"**/*.test.ts",
			"**/*.test.tsx",
			"**/*.test.jsx",
			"**/*.spec.js",
			"**/*.spec.ts",
			"**/*.spec.tsx",
			"**/*.spec.jsx",
			// Generic test file prefixes (any extension)
			"**/test_*",
			"**/tests_*",
			// Test directories
			"**/__tests__/**",
			"**/test/**",
			"**/tests/**",
			"**/testdata/**",
			"**/__testdata__/**",
			"**/fixtures/**",
			"**/.test/**",
			// Ruby test files
			"**/*_test.rb",
			"**/*_spec.rb",
			// Java test files
			"**/*Test.java",
			"**/*Tests.java",
			"**/*TestCase.java",
			// C# test files
			"**/*Test.cs",
			"**/*Tests.cs",
			"**/*Test.csproj",
			// Rust test files
			"**/tests/**",
			// PHP test files
			"**/*Test.php",
			"**/*TestCase.php",
			// Kotlin test files
			"**/*Test.kt",
			"**/*Tests.kt",
			"**/*TestCase.kt",
			// Swift test files
			"**/*Test.swift",
			// Objective-C test files
			"**/*Test.m",
			"**/*Test.h",

			// Binary files (commonly found in codebases)
			"**/*.avif",  // AVIF image format
			"**/*.webp",  // WebP image format
			"**/*.wasm",  // WebAssembly
			"**/*.woff",  // Web fonts
			"**/*.woff2", // Web fonts (compressed)
			"**/*.ttf",   // TrueType fonts
			"**/*.eot",   // Embedded OpenType fonts
			"**/*.otf",   // OpenType fonts

			// Video & Audio files (binary formats)
			"**/*.mp4",
			"**/*.avi",
			"**/*.mov",
			"**/*.wmv",
			"**/*.flv",
			"**/*.mkv",
			"**/*.webm",
			"**/*.m4v",
			"**/*.mpg",
			"**/*.mpeg",
			"**/*.3gp",
			"**/*.ogv",
			"**/*.mp3",
			"**/*.wav",
			"**/*.flac",
			"**/*.aac",
			"**/*.ogg",
			"**/*.wma",
			"**/*.m4a",
			"**/*.aiff",
			"**/*.ape",

			// Office documents (binary formats)
			"**/*.doc",     // Microsoft Word
			"**/*.docx",    // Microsoft Word (XML)
			"**/*.docm",    // Microsoft Word (macro-enabled)
			"**/*.xls",     // Microsoft Excel
			"**/*.xlsx",    // Microsoft Excel (XML)
			"**/*.xlsm",    // Microsoft Excel (macro-enabled)
			"**/*.xlsb",    // Microsoft Excel (binary)
			"**/*.xlt",     // Microsoft Excel template
			"**/*.xltx",    // Microsoft Excel template (XML)
			"**/*.xltm",    // Microsoft Excel template (macro-enabled)
			"**/*.xlam",    // Microsoft Excel add-in
			"**/*.ppt",     // Microsoft PowerPoint
			"**/*.pptx",    // Microsoft PowerPoint (XML)
			"**/*.pptm",    // Microsoft PowerPoint (macro-enabled)
			"**/*.pps",     // Microsoft PowerPoint show
			"**/*.ppsx",    // Microsoft PowerPoint show (XML)
			"**/*.ppsm",    // Microsoft PowerPoint show (macro-enabled)
			"**/*.pot",     // Microsoft PowerPoint template
			"**/*.potx",    // Microsoft PowerPoint template (XML)
			"**/*.potm",    // Microsoft PowerPoint template (macro-enabled)
			"**/*.odt",     // OpenDocument Text
			"**/*.ods",     // OpenDocument Spreadsheet
			"**/*.odp",     // OpenDocument Presentation
			"**/*.rtf",     // Rich Text Format
			"**/*.pages",   // Apple Pages
			"**/*.numbers", // Apple Numbers
			"**/*.key",     // Apple Keynote

			// Editor temp files (not hidden directories)
			"**/*.swp",
			"**/*.swo",
			"**/*~",

			// Python compiled files
			"**/__pycache__/**", // Python
			"**/*.pyc",

			// OS files
			"**/Thumbs.db",
			"**/desktop.ini",

			// Logs
			"**/logs/**",
			"**/*.log",
		},
	}

	// Enrich exclusions with language-specific build artifacts
	cfg.EnrichExclusionsWithBuildArtifacts()

	return cfg, nil
}

// mergeConfigs merges a base config with a project config
// Project config takes precedence, but base exclusions are preserved
func mergeConfigs(base, project *Config) *Config {
	// Start with a copy of the project config
	merged := *project

	// Merge exclusions: combine base and project exclusions
	if len(base.Exclude) > 0 {
		// Use a map to deduplicate
		excludeMap := make(map[string]bool)

		// Add base exclusions first
		for _, pattern := range base.Exclude {
			excludeMap[pattern] = true
		}

		// Add project exclusions
		for _, pattern := range project.Exclude {
			excludeMap[pattern] = true
		}

		// Convert back to slice
		merged.Exclude = make([]string, 0, len(excludeMap))
		for pattern := range excludeMap {
			merged.Exclude = append(merged.Exclude, pattern)
		}
	}

	// Merge inclusions: project overrides base completely if specified
	if len(project.Include) == 0 && len(base.Include) > 0 {
		merged.Include = base.Include
	}

	// Use project settings for everything else (already copied above)
	// This allows project to override performance settings, search settings, etc.

	return &merged
}

// EnrichExclusionsWithBuildArtifacts detects build output directories from language configs
// and adds them to the exclusion list
func (c *Config) EnrichExclusionsWithBuildArtifacts() {
	if c.Project.Root == "" {
		return // No project root set, skip detection
	}

	detector := NewBuildArtifactDetector(c.Project.Root)
	detectedPatterns := detector.DetectOutputDirectories()

	if len(detectedPatterns) > 0 {
		// Append detected patterns to exclusions
		c.Exclude = append(c.Exclude, detectedPatterns...)
		// Deduplicate
		c.Exclude = DeduplicatePatterns(c.Exclude)
	}
}
