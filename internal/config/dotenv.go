package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"budgetbuddy-go/pkg/logger"
	"github.com/joho/godotenv"
)

const (
	dotenvFilename = ".env"
	// dotenvPathVar names an explicit file and disables the upward search.
	dotenvPathVar = "DOTENV_PATH"
)

// loadDotEnv applies the nearest .env found walking up from the working
// directory, or the file named by DOTENV_PATH. Variables already present in
// the environment win.
func loadDotEnv(log logger.Logger) error {
	path, err := dotEnvPath()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	loaded, skipped, err := applyDotEnv(path)
	if err != nil {
		return err
	}

	log.Info("dotenv: loaded variables", "count", loaded, "path", path)
	if skipped > 0 {
		log.Info("dotenv: skipped variables already set in env", "count", skipped)
	}
	return nil
}

func dotEnvPath() (string, error) {
	if explicit := os.Getenv(dotenvPathVar); explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%s: %v", dotenvPathVar, err)
		}
		return explicit, nil
	}
	return findDotEnv(dotenvFilename)
}

func findDotEnv(filename string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

func applyDotEnv(path string) (int, int, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return 0, 0, err
	}

	loaded := 0
	skipped := 0
	for key, value := range values {
		if _, exists := os.LookupEnv(key); exists {
			skipped++
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return loaded, skipped, err
		}
		loaded++
	}
	return loaded, skipped, nil
}
