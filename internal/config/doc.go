// Package config provides configuration parsing for the feedback server.
//
// The configuration is stored in feedback.json. Every field is optional;
// missing values take the defaults from New.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "allowedOrigins": ["https://app.example.com"]
//	  },
//	  "paths": {
//	    "websocket": "/ws",
//	    "toast": "/toast",
//	    "report": "/report",
//	    "metrics": "/metrics"
//	  },
//	  "metrics": { "enabled": true, "namespace": "vango", "titles": ["Save failed"] },
//	  "sentry": { "dsn": "", "environment": "production" },
//	  "log": { "level": "info", "format": "text" }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
