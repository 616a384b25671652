// Package config loads container configuration files.
//
// A file holds the container settings (name, environment, scope name,
// logging) and an aliases section. Settings are loaded through Viper and can
// be overridden from the environment with the ALIASDI_ prefix, optionally
// read from a .env file (ALIASDI_SCOPE, ALIASDI_LOGGING_LEVEL, ...). The
// aliases section is decoded separately so alias names keep their case.
//
// # Usage
//
//	cfg, err := config.LoadContainerConfig("aliasdi.yml")
//	if err != nil {
//	    return err
//	}
//	c, err := di.New(di.WithResolver(modules), di.FromConfig(cfg))
package config
