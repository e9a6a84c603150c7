package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/reqext/internal/rules"
)

var (
	// ErrUnknownRule indicates a rule name that is not registered
	ErrUnknownRule = errors.New("unknown rule")

	// ErrInvalidSeverity indicates a rule severity other than off/warn/error
	ErrInvalidSeverity = errors.New("invalid rule severity")

	// ErrEmptyInclude indicates no include patterns were configured
	ErrEmptyInclude = errors.New("empty include patterns")

	// ErrInvalidPattern indicates a glob pattern that does not compile
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrInvalidWorkers indicates a negative worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrInvalidFixPasses indicates a non-positive fix pass limit
	ErrInvalidFixPasses = errors.New("invalid max fix passes")

	// ErrInvalidFormat indicates an unsupported output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidLogLevel indicates an unsupported log level
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// OutputFormats lists the supported report formats.
var OutputFormats = []string{"stylish", "compact", "json"}

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateRules(cfg.Rules); err != nil {
		errs = append(errs, err)
	}

	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}

	if err := validateRun(&cfg.Run); err != nil {
		errs = append(errs, err)
	}

	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}

	if err := validateLog(&cfg.Log); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateRules(ruleCfg map[string]string) error {
	var errs []error

	for name, value := range ruleCfg {
		if _, ok := rules.Lookup(name); !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownRule, name))
			continue
		}
		if _, err := rules.ParseSeverity(value); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrInvalidSeverity, name, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePaths(cfg *PathsConfig) error {
	var errs []error

	if len(cfg.Include) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one include pattern required", ErrEmptyInclude))
	}

	for _, pattern := range append(append([]string{}, cfg.Include...), cfg.Ignore...) {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateRun(cfg *RunConfig) error {
	var errs []error

	// Zero workers means one per CPU
	if cfg.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: workers cannot be negative, got %d", ErrInvalidWorkers, cfg.Workers))
	}

	if cfg.MaxFixPasses <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_fix_passes must be positive, got %d", ErrInvalidFixPasses, cfg.MaxFixPasses))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateOutput(cfg *OutputConfig) error {
	format := strings.ToLower(cfg.Format)
	for _, f := range OutputFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("%w: must be one of %s, got '%s'", ErrInvalidFormat, strings.Join(OutputFormats, ", "), cfg.Format)
}

func validateLog(cfg *LogConfig) error {
	var errs []error

	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: must be debug, info, warn or error, got '%s'", ErrInvalidLogLevel, cfg.Level))
	}

	switch strings.ToLower(cfg.Format) {
	case "", "text", "json", "logfmt":
	default:
		errs = append(errs, fmt.Errorf("%w: log format must be text, json or logfmt, got '%s'", ErrInvalidFormat, cfg.Format))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
// The sentinel errors stay reachable through errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return &validationError{
		msg:  fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - ")),
		errs: errs,
	}
}

type validationError struct {
	msg  string
	errs []error
}

func (e *validationError) Error() string   { return e.msg }
func (e *validationError) Unwrap() []error { return e.errs }
