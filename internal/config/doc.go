// Package config loads seqid's server configuration. Default() is the
// baseline, Load(path) overlays a JSON, YAML or TOML file and FromEnv
// overlays SEQID_* variables:
//
//	cfg, err := config.Load("/etc/seqid/seqid.yaml")
//	if err != nil {
//	    return err
//	}
//	config.FromEnv(&cfg)
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
