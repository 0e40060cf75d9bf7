// Package tooling is the embeddable API for journey conversion: initialize
// once, then convert already-fetched journey documents without going
// through the CLI.
package tooling

import (
	"fmt"

	"github.com/deploymenttheory/go-journey-composer/internal/common/jsonutil"
	"github.com/deploymenttheory/go-journey-composer/internal/config"
	"github.com/deploymenttheory/go-journey-composer/internal/journey"
	"github.com/deploymenttheory/go-journey-composer/internal/logger"
	"github.com/deploymenttheory/go-journey-composer/internal/nlp"
	"github.com/deploymenttheory/go-journey-composer/internal/report"
	"github.com/deploymenttheory/go-journey-composer/internal/variables"
)

// InitOptions contains options for initializing the tooling API
type InitOptions struct {
	ConfigFile  string // Path to configuration file
	Debug       bool   // Enable debug logging
	LogFormat   string // Log format: "human" or "json"
	LogFile     string // Path to log file
	SuppressLog bool   // Suppress all logging
}

// ConvertResult contains everything one conversion run produced.
type ConvertResult struct {
	Journey   *journey.Journey
	Lines     []string
	Records   []variables.Record
	Summary   report.Summary
	Artifacts *report.Artifacts
}

var initialized bool

// Initialize initializes the tooling API with the given options
func Initialize(options InitOptions) error {
	if initialized {
		return nil // Already initialized
	}

	configErr := config.Initialize(options.ConfigFile)

	if options.Debug {
		config.Instance.Debug = true
	}
	if options.LogFormat != "" {
		config.Instance.LogFormat = options.LogFormat
	}
	if options.LogFile != "" {
		config.Instance.LogFile = options.LogFile
	}

	if !options.SuppressLog {
		logConfig := logger.LoggerConfig{
			Debug:     config.Instance.Debug,
			LogFormat: config.Instance.LogFormat,
			LogFile:   config.Instance.LogFile,
		}
		if err := logger.InitLogger(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if configErr != nil {
			logger.LogWarn("Configuration initialization warning", map[string]interface{}{
				"error": configErr.Error(),
			})
		}
	}

	initialized = true
	return nil
}

// DefaultOptions returns the default initialization options
func DefaultOptions() InitOptions {
	return InitOptions{
		Debug:     false,
		LogFormat: "human",
	}
}

// Convert runs the full conversion over already-fetched documents. The
// attribute and environment payloads may be nil when the caller has none;
// variables then resolve only as far as the remaining sources allow.
func Convert(journeyDoc, attrsDoc, envsDoc []byte) (*ConvertResult, error) {
	if !initialized {
		if err := Initialize(DefaultOptions()); err != nil {
			return nil, fmt.Errorf("failed to initialize tooling API: %w", err)
		}
	}

	j, err := journey.ParseJourney(journeyDoc)
	if err != nil {
		return nil, err
	}

	attrs := map[string]string{}
	if len(attrsDoc) > 0 {
		if attrs, err = journey.ParseDataAttributes(attrsDoc); err != nil {
			return nil, err
		}
	}

	var envs []journey.Environment
	if len(envsDoc) > 0 {
		if envs, err = journey.ParseEnvironments(envsDoc); err != nil {
			return nil, err
		}
	}

	composer := &nlp.Composer{Sigil: config.Instance.Conversion.Sigil}
	if composer.Sigil == "" {
		composer.Sigil = nlp.DefaultSigil
	}
	lines, err := composer.ComposeJourney(j)
	if err != nil {
		return nil, err
	}

	records, err := variables.Resolve(j, attrs, envs, variables.Options{
		IncludeUnresolved: config.Instance.Conversion.IncludeUnresolved,
	})
	if err != nil {
		return nil, err
	}

	return &ConvertResult{
		Journey: j,
		Lines:   lines,
		Records: records,
		Summary: report.BuildSummary(j, records),
	}, nil
}

// ConvertFile converts a journey JSON file, optionally joined by data
// attribute and environment files, and writes the output artifacts.
func ConvertFile(journeyPath, attrsPath, envsPath string) (*ConvertResult, error) {
	journeyDoc, err := jsonutil.ReadJSONFile(journeyPath)
	if err != nil {
		return nil, err
	}

	var attrsDoc, envsDoc []byte
	if attrsPath != "" {
		if attrsDoc, err = jsonutil.ReadJSONFile(attrsPath); err != nil {
			return nil, err
		}
	}
	if envsPath != "" {
		if envsDoc, err = jsonutil.ReadJSONFile(envsPath); err != nil {
			return nil, err
		}
	}

	result, err := Convert(journeyDoc, attrsDoc, envsDoc)
	if err != nil {
		return nil, err
	}

	name := report.SafeName(result.Journey.Title)
	artifacts, err := report.Write(config.Instance.Output.Dir, name, result.Lines, result.Records, result.Summary)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	return result, nil
}

// Shutdown performs any necessary cleanup before the application exits
func Shutdown() error {
	if initialized {
		logger.LogInfo("Tooling API shutting down", nil)
		logger.Sync()
	}
	return nil
}
