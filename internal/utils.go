package internal

import (
	"github.com/google/uuid"
	"os"
	"path/filepath"
)

const (
	ConfigHomeEnv     = "UE_AGENT_CONFIG_HOME"
	CacheHomeEnv      = "UE_AGENT_CACHE_HOME"
	DefaultConfigDir  = ".ue-agent"
	DefaultCacheDir   = "cache"
	ConfigFileName    = "config.yaml"
	SlugPostfixLength = 8
)

func GenerateUniqueSlug(prefix string) string {
	guid := uuid.New()
	return prefix + guid.String()[:SlugPostfixLength]
}

func GetConfigHome() (string, error) {
	var result string

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	result = filepath.Join(homeDir, DefaultConfigDir)

	if tmp := os.Getenv(ConfigHomeEnv); tmp != "" {
		result = tmp
	}

	return result, nil
}

func GetConfigFile() (string, error) {
	configHome, err := GetConfigHome()
	if err != nil {
		return "", err
	}

	return filepath.Join(configHome, ConfigFileName), nil
}

func GetCacheHome() (string, error) {
	var result string

	configHome, err := GetConfigHome()
	if err != nil {
		return "", err
	}

	result = filepath.Join(configHome, DefaultCacheDir)

	if tmp := os.Getenv(CacheHomeEnv); tmp != "" {
		result = tmp
	}

	return result, nil
}
