// Package config loads settings for the uidgen command. It exposes a
// Default() baseline and a Load helper that layers an optional config file,
// UIDGEN_* environment variables and command-line flags on top of it.
//
// Example:
//
//	cfg, err := config.Load("/etc/uidgen.yaml", cmd.Flags())
//	if err != nil {
//	    return err
//	}
//	node, err := cfg.NodeBytes()
package config
