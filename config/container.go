package config

import (
	"fmt"

	"github.com/kbukum/aliasdi/logger"
	"github.com/kbukum/aliasdi/observability"
	"github.com/kbukum/aliasdi/validation"
)

var environments = []string{"development", "staging", "production"}

// ContainerConfig is the file form of a container: its settings plus the
// aliases section handed to the container's Register.
//
// Example:
//
//	name: billing
//	environment: production
//	scope: ext
//	logging:
//	  level: info
//	otel:
//	  enabled: true
//	  endpoint: otel-collector:4318
//	aliases:
//	  config: app/config
//	  store:
//	    module: store/postgres
//	    className: Store
//	    instantiate: true
//	    params:
//	      dsn: postgres://localhost/billing
type ContainerConfig struct {
	Name        string               `yaml:"name" mapstructure:"name" validate:"required,max=64"`
	Environment string               `yaml:"environment" mapstructure:"environment"`
	Debug       bool                 `yaml:"debug" mapstructure:"debug"`
	Scope       string               `yaml:"scope" mapstructure:"scope" validate:"omitempty,ident"`
	Logging     logger.Config        `yaml:"logging" mapstructure:"logging"`
	Telemetry   observability.Config `yaml:"otel" mapstructure:"otel"`

	// Aliases keeps the case of its keys, so it is decoded separately from
	// the settings above.
	Aliases map[string]any `yaml:"aliases" mapstructure:"-"`
}

// ApplyDefaults applies default values to the configuration.
func (c *ContainerConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
}

// Validate validates the settings. The aliases section is validated by the
// container when it is registered.
func (c *ContainerConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := validation.New().
		OneOf("environment", c.Environment, environments).
		Custom(c.Aliases == nil || len(c.Aliases) > 0, "aliases", "must not be empty when present").
		Err(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Telemetry.Validate(); err != nil {
		return fmt.Errorf("config.otel: %w", err)
	}
	return nil
}
