// Package config loads environment-tagged configuration structs, with a
// one-time .env bootstrap and per-type caching so the same config type is
// parsed once per process wherever it is requested.
//
//	var cfg authsession.Config
//	config.MustLoad(&cfg)
package config
