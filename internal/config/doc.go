// Package config loads particlewire.json, the settings shared by the CLI
// and the HTTP server.
//
// # Configuration File Structure
//
//	{
//	  "version": "1.19",
//	  "mappings": {
//	    "embedded": true,
//	    "files": ["mappings.local.json"],
//	    "s3": {"bucket": "tables", "key": "particlewire/mappings.json"}
//	  },
//	  "server": {"host": "localhost", "port": 7460},
//	  "metrics": {"enabled": true, "namespace": "particlewire"},
//	  "tracing": {"tracerName": "particlewire"},
//	  "broadcast": {"writeTimeout": "5s"},
//	  "log": {"level": "info", "format": "text"}
//	}
//
// Mapping sources are merged in order: the embedded table, then files
// (relative to the config file), then the S3 object.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	table, err := cfg.LoadTable(ctx, logger)
package config
