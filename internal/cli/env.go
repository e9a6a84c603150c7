package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/mvp-joe/reqext/internal/config"
	"github.com/mvp-joe/reqext/internal/discovery"
	"github.com/mvp-joe/reqext/internal/lint"
	"github.com/mvp-joe/reqext/internal/rules"
)

// environment is the loaded configuration shared by every command.
type environment struct {
	rootDir    string
	cfg        *config.Config
	severities map[string]rules.Severity
	logger     *log.Logger
}

// loadEnvironment loads config for rootDir and builds a logger writing to logOut.
func loadEnvironment(rootDir, configFile string, verbose bool, logOut io.Writer) (*environment, error) {
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}

	cfg, err := config.NewLoader(rootDir, opts...).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(logOut, cfg.Log, verbose)
	if err != nil {
		return nil, err
	}

	severities, err := cfg.Severities()
	if err != nil {
		return nil, err
	}

	logger.Debug("configuration loaded", "root", rootDir, "rules", cfg.Rules, "workers", cfg.Run.Workers)

	return &environment{
		rootDir:    rootDir,
		cfg:        cfg,
		severities: severities,
		logger:     logger,
	}, nil
}

func (e *environment) newLinter() (*lint.Linter, error) {
	linter, err := lint.New(
		lint.WithSeverities(e.severities),
		lint.WithMaxFixPasses(e.cfg.Run.MaxFixPasses),
		lint.WithLogger(e.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create linter: %w", err)
	}
	return linter, nil
}

func (e *environment) newDiscovery() (*discovery.FileDiscovery, error) {
	fd, err := discovery.NewFileDiscovery(e.rootDir, e.cfg.Paths.Include, e.cfg.Paths.Ignore)
	if err != nil {
		return nil, fmt.Errorf("failed to create file discovery: %w", err)
	}
	return fd, nil
}
