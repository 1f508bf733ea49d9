package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// loadDotEnv copies variables from a .env file into the process environment.
// Variables that are already set win; a missing file is fine.
func loadDotEnv(path string) {
	_ = godotenv.Load(path)
}

// parseEnv overlays values from environment variables. lookup is
// os.LookupEnv in production and a map in tests.
//
//	PORT              HTTP port (":" is prepended when missing)
//	DATABASE_URL      PostgreSQL DSN
//	JWT_SECRET        token signing secret
//	JWT_EXPIRES_IN    token lifetime ("24h", "30m")
//	GEMINI_API_KEY    generative-AI API key
//	GEMINI_MODEL      model name
//	GEMINI_BASE_URL   API root
//	CORS_ORIGINS      comma separated list
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
//	LOG_LEVEL, LOG_FORMAT
func parseEnv(config *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if port, ok := lookup("PORT"); ok && port != "" {
		if !strings.Contains(port, ":") {
			port = ":" + port
		}
		config.HTTPAddr = port
	}

	str("DATABASE_URL", &config.DatabaseDSN)
	str("JWT_SECRET", &config.SecretKey)
	str("GEMINI_API_KEY", &config.GeminiAPIKey)
	str("GEMINI_MODEL", &config.GeminiModel)
	str("GEMINI_BASE_URL", &config.GeminiBaseURL)
	str("S3_ROOT_USER", &config.S3RootUser)
	str("S3_ROOT_PASSWORD", &config.S3RootPassword)
	str("S3_BUCKET", &config.S3Bucket)
	str("S3_REGION", &config.S3Region)
	str("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	str("LOG_LEVEL", &config.LogLevel)
	str("LOG_FORMAT", &config.LogFormat)

	if v, ok := lookup("JWT_EXPIRES_IN"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("JWT_EXPIRES_IN: %w", err)
		}
		config.AccessTokenValidityDuration = d
	}

	if v, ok := lookup("MAX_UPLOAD_BYTES"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_UPLOAD_BYTES: %w", err)
		}
		config.MaxUploadBytes = n
	}

	if v, ok := lookup("CORS_ORIGINS"); ok && v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		config.CORSOrigins = origins
	}

	return nil
}
