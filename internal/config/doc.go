// Package config loads changeset log settings. Default() is the baseline;
// Load reads a JSON or TOML file over it and FromEnv overlays CHLOG_*
// variables.
//
// Example:
//
//	cfg, err := config.Load("/etc/chlog.toml")
//	if err != nil {
//	    return err
//	}
//	if err := config.FromEnv(&cfg); err != nil {
//	    return err
//	}
//	rt, err := runtime.Open(runtime.Options{Config: cfg})
package config
