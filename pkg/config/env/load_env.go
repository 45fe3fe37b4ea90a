package env

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

const PathVar = "ENV_PATH"

// LoadDotEnv loads environment variables from .env files.
// ENV_PATH, when set, replaces the given paths. Outside local mode a missing file is not an error.
func LoadDotEnv(env string, paths ...string) error {
	if p := os.Getenv(PathVar); p != "" {
		paths = []string{p}
	} else {
		slog.Info("ENV_PATH is not set, using default paths", "paths", paths)
	}
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	err := godotenv.Load(paths...)
	if err != nil {
		if env == "local" || env == "" {
			slog.Error("Failed to load environment variables in local mode", "error", err)
			return err
		}
		slog.Debug("Skipping .env ...", "env", env)
	}

	return nil
}
