// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Layers

Each layer overrides the previous one:

 1. Defaults (local development only)
 2. YAML config file (-c or CONFIG_FILE)
 3. .env file (-env, default ".env", ignored if missing)
 4. Environment variables
 5. CLI flags

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: mysql, postgres or sqlite (default: mysql)
  - DatabaseURL: Full DSN, overrides the DB_* fields
  - DBHost, DBPort, DBUser, DBPassword, DBName: connection parts
  - SecretKey: Flash cookie signing secret (default: "dev")
  - UploadDir: Local directory for candidate media (default: uploads)
  - UploadBucket: gs://bucket to store media in Google Cloud Storage instead
  - LogFile, LogLevel: logging output

# CLI Flags

	-c          YAML config file
	-env        dotenv file
	-p          Server port
	-d          Database URL
	-t          Database type
	-uploads    Upload directory
	-log-level  Log level
	-secret     Flash signing secret

# Environment Variables

	PORT, DATABASE_URL, DATABASE_TYPE,
	DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME,
	SECRET_KEY, UPLOAD_DIR, UPLOAD_BUCKET, GCS_CREDENTIALS_FILE,
	LOG_FILE, LOG_LEVEL

# DSN

Config.DSN builds the driver-specific data source name:

	db, err := sql.Open("mysql", cfg.DSN())
*/
package cliparse
