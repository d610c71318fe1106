package config

import (
	"github.com/kardolus/ue-agent/internal"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
)

const (
	ModeSimple = "simple"
	ModeReAct  = "react"

	ollamaModel          = "ue-specialist"
	ollamaAgentModel     = "my-ue-model"
	ollamaURL            = "http://localhost:11434"
	ollamaAPIPath        = "/api"
	ollamaGeneratePath   = "/generate"
	ollamaModelsPath     = "/tags"
	ollamaTimeout        = 120
	ollamaUserAgent      = "ue-agent"
	agentTemperature     = 0.1
	agentMaxIterations   = 10
	agentScratchpadMax   = 16 * 1024
	agentHistoryMax      = 16 * 1024
	agentBuildTool       = "UnrealBuildTool"
	agentBuildTimeout    = 300
	agentWorkDir         = "."
	defaultPrompt        = "\n👤 You: "
	defaultFilePerm      = 0644
	defaultConfigDirPerm = 0755
)

//go:generate mockgen -destination=storemocks_test.go -package=config_test github.com/kardolus/ue-agent/config ConfigStore
type ConfigStore interface {
	Read() (Config, error)
	ReadDefaults() Config
	Write(Config) error
}

// Ensure FileIO implements ConfigStore interface
var _ ConfigStore = &FileIO{}

type FileIO struct {
	configFilePath string
}

func New() *FileIO {
	configPath, _ := internal.GetConfigFile()

	return &FileIO{
		configFilePath: configPath,
	}
}

func (f *FileIO) WithConfigPath(configFilePath string) *FileIO {
	f.configFilePath = configFilePath
	return f
}

func (f *FileIO) Read() (Config, error) {
	return parseFile(f.configFilePath)
}

func (f *FileIO) ReadDefaults() Config {
	return Config{
		Model:         ollamaModel,
		URL:           ollamaURL,
		APIPath:       ollamaAPIPath,
		GeneratePath:  ollamaGeneratePath,
		ModelsPath:    ollamaModelsPath,
		Timeout:       ollamaTimeout,
		UserAgent:     ollamaUserAgent,
		CommandPrompt: defaultPrompt,
		Agent: AgentConfig{
			Mode:               ModeSimple,
			Model:              ollamaAgentModel,
			Temperature:        agentTemperature,
			MaxIterations:      agentMaxIterations,
			MaxScratchpadBytes: agentScratchpadMax,
			MaxHistoryBytes:    agentHistoryMax,
			WorkDir:            agentWorkDir,
			BuildTool:          agentBuildTool,
			BuildTimeout:       agentBuildTimeout,
			WriteLogs:          true,
		},
	}
}

func (f *FileIO) Write(config Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.configFilePath), defaultConfigDirPerm); err != nil {
		return err
	}

	return os.WriteFile(f.configFilePath, data, defaultFilePerm)
}

func parseFile(fileName string) (Config, error) {
	var result Config

	buf, err := os.ReadFile(fileName)
	if err != nil {
		return Config{}, err
	}

	if err := yaml.Unmarshal(buf, &result); err != nil {
		return Config{}, err
	}

	return result, nil
}
