package config

type Config struct {
	Model              string      `yaml:"model"`
	URL                string      `yaml:"url"`
	APIPath            string      `yaml:"api_path"`
	GeneratePath       string      `yaml:"generate_path"`
	ModelsPath         string      `yaml:"models_path"`
	Timeout            int         `yaml:"timeout"`
	Temperature        float64     `yaml:"temperature"`
	Stop               []string    `yaml:"stop"`
	UserAgent          string      `yaml:"user_agent"`
	CommandPrompt      string      `yaml:"command_prompt"`
	CommandPromptColor string      `yaml:"command_prompt_color"`
	Debug              bool        `yaml:"debug"`
	Agent              AgentConfig `yaml:"agent"`
}

type AgentConfig struct {
	// "simple" sends free-form input straight to the model, "react" runs the tool loop.
	Mode        string  `yaml:"mode"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`

	// Budgets / guardrails (0 = unlimited, except MaxIterations which defaults to 10)
	MaxIterations int `yaml:"max_iterations"`
	MaxWallTime   int `yaml:"max_wall_time"`
	MaxToolCalls  int `yaml:"max_tool_calls"`
	MaxLLMTokens  int `yaml:"max_llm_tokens"`

	// Prompt size caps in bytes
	MaxScratchpadBytes int `yaml:"max_scratchpad_bytes"`
	MaxHistoryBytes    int `yaml:"max_history_bytes"`

	// Safety/policy
	AllowedTools           []string `yaml:"allowed_tools"`
	RestrictFilesToWorkDir bool     `yaml:"restrict_files_to_work_dir"`
	WorkDir                string   `yaml:"work_dir"`
	DryRun                 bool     `yaml:"dry_run"`

	// Build tool
	BuildTool    string `yaml:"build_tool"`
	BuildTimeout int    `yaml:"build_timeout"`

	// Logging / artifacts
	WriteLogs bool `yaml:"write_logs"`
}
