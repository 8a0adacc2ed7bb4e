// File: envgrove/config/doc.go

// Package config resolves strongly-typed application configuration from
// layered sources (dotenv, JSON, TOML, YAML files, then the process
// environment) into an immutable, validated object graph with nested
// namespaces, secret masking, and poll-based hot reload.
//
// Fields are declared through an explicit schema rather than struct
// reflection, so the declared type of every field is decided once:
//
//	db := config.NewSchema("DbConfig").
//	    String("HOST", config.Default("localhost")).
//	    Int("PORT", config.Default(5432), config.Min(1), config.Max(65535))
//
//	app := config.NewSchema("AppConfig").
//	    String("APP_NAME", config.Default("demo")).
//	    String("API_KEY", config.Secret()).
//	    Nested("DB", db, config.Prefix("DB_"))
//
//	cfg, err := config.NewBuilder(app).WithFiles(".env").Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	host, _ := cfg.StringValue("DB.HOST")
//
// Source precedence (lowest to highest): declared defaults, files in listed
// order, process environment. A missing file contributes nothing; a missing
// required field aborts construction.
//
// Instances are frozen on construction. Reload replaces every value of an
// instance together through a single atomic snapshot swap, so concurrent
// readers observe either the complete old value set or the complete new
// one, never a mixture. Failed reloads keep the previous values and are
// reported through the logger, never raised.
package config
