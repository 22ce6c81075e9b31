package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	StorePath   string // bank file path or DSN
	StoreDriver string // csv|sqlite|postgres; inferred from path when empty
	OutputDir   string
	SampleSize  int

	ErrorLog string

	HTTPAddr         string
	AuthSecret       string
	OperatorPassHash string // bcrypt
	CORSOrigins      []string
}

func FromEnv() Config {
	return Config{
		StorePath:        os.Getenv("STORE_PATH"),
		StoreDriver:      os.Getenv("STORE_DRIVER"),
		OutputDir:        envOr("OUTPUT_DIR", "output"),
		SampleSize:       envInt("SAMPLE_SIZE", 40),
		ErrorLog:         envOr("ERROR_LOG", "error_log.txt"),
		HTTPAddr:         envOr("HTTP_ADDR", ":8080"),
		AuthSecret:       envOr("AUTH_HMAC_SECRET", "examgen-dev-key"),
		OperatorPassHash: envOr("OPERATOR_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),
		CORSOrigins:      csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

// Driver resolves the effective store driver, inferring from the store path
// when none is configured.
func (c Config) Driver() string {
	if c.StoreDriver != "" {
		return c.StoreDriver
	}
	switch {
	case strings.HasPrefix(c.StorePath, "postgres://"), strings.HasPrefix(c.StorePath, "postgresql://"):
		return "postgres"
	case strings.HasSuffix(c.StorePath, ".db"), strings.HasSuffix(c.StorePath, ".sqlite"):
		return "sqlite"
	default:
		return "csv"
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil || v < 0 {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
