// Package commands implements the prospectd command line: "serve" runs the
// HTTP API, "migrate" applies store schema migrations.
//
// Configuration is layered: built-in defaults, then an optional YAML file
// (--config), then the DATABASE_URL, PORT and JWT_SECRET environment
// variables, then the --addr, --store and --dsn flags.
package commands
