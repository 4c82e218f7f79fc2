package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Variables d'environnement prioritaires sur le yaml (mais pas sur les flags CLI).
const (
	EnvOutputDir  = "LRCSYNC_OUTPUT_DIR"
	EnvPlayerMode = "LRCSYNC_PLAYER_MODE"
	EnvPlayerPath = "LRCSYNC_PLAYER_PATH"
)

// applyEnv charge un éventuel .env à côté du fichier de config puis applique les surcharges.
// godotenv ne remplace pas une variable déjà définie dans l'environnement.
func (c *Config) applyEnv() error {
	dir := filepath.Dir(c.configFilePath)
	if dir == "" {
		dir = "."
	}
	envFile := filepath.Join(dir, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("lecture de %s impossible : %w", envFile, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvOutputDir)); v != "" {
		c.OutputDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPlayerMode)); v != "" {
		c.Player.Mode = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPlayerPath)); v != "" {
		c.Player.Path = v
	}
	return nil
}
