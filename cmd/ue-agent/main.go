package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/kardolus/ue-agent/agent"
	"github.com/kardolus/ue-agent/agent/core"
	"github.com/kardolus/ue-agent/agent/factory"
	"github.com/kardolus/ue-agent/agent/react"
	"github.com/kardolus/ue-agent/agent/tools"
	agenttypes "github.com/kardolus/ue-agent/agent/types"
	"github.com/kardolus/ue-agent/api/client"
	"github.com/kardolus/ue-agent/api/http"
	"github.com/kardolus/ue-agent/command"
	"github.com/kardolus/ue-agent/config"
	"github.com/kardolus/ue-agent/internal"
	"github.com/kardolus/ue-agent/internal/fsio"
	"github.com/kardolus/ue-agent/repl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	flagAgent          = "agent"
	flagModel          = "model"
	flagURL            = "url"
	flagTimeout        = "timeout"
	flagMaxIterations  = "max-iterations"
	flagWorkDir        = "workdir"
	flagDryRun         = "dry-run"
	flagDebug          = "debug"
	flagConfig         = "config"
	flagShowConfig     = "show-config"
	flagSaveConfig     = "save-config"
	flagSetCompletions = "set-completions"
	flagVersion        = "version"
	flagListModels     = "list-models"
)

var (
	GitCommit  string
	GitVersion string

	v = viper.New()
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "ue-agent [question]",
		Short: "Local Unreal Engine development assistant",
		Long: "A terminal assistant for Unreal Engine projects, backed by a local Ollama model.\n" +
			"Reads, lists, writes and edits files directly, or reasons over project files with tools in agent mode.\n" +
			"Without arguments it starts an interactive session; with arguments it answers once and exits.",
		SilenceUsage: true,
		RunE:         run,
	}

	flags := rootCmd.PersistentFlags()
	flags.Bool(flagAgent, false, "Run requests through the tool-using reasoning loop")
	flags.String(flagModel, "", "Model name to use")
	flags.String(flagURL, "", "Base URL of the inference server")
	flags.Int(flagTimeout, 0, "Inference timeout in seconds")
	flags.Int(flagMaxIterations, 0, "Maximum reasoning iterations per request in agent mode")
	flags.String(flagWorkDir, "", "Directory relative tool paths are resolved against in agent mode")
	flags.Bool(flagDryRun, false, "Report file writes and builds in agent mode instead of doing them")
	flags.Bool(flagDebug, false, "Enable debug output")
	flags.String(flagConfig, "", "Path to the config file")
	flags.Bool(flagShowConfig, false, "Print the effective configuration and exit")
	flags.Bool(flagSaveConfig, false, "Write the effective configuration to the config file and exit")
	flags.String(flagSetCompletions, "", "Generate autocompletion script for your current shell")
	flags.Bool(flagVersion, false, "Display the version information")
	flags.Bool(flagListModels, false, "List the models installed on the inference server")

	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if v.GetBool(flagVersion) {
		fmt.Printf("commit %s, version %s\n", GitCommit, GitVersion)
		return nil
	}

	if shell := v.GetString(flagSetCompletions); shell != "" {
		return config.GenCompletions(cmd, shell, os.Stdout)
	}

	store := config.New()
	if path := v.GetString(flagConfig); path != "" {
		store.WithConfigPath(path)
	}
	cm := config.NewManager(store).WithEnvironment()
	if err := applyFlags(&cm.Config); err != nil {
		return err
	}
	cfg := cm.Config

	logger := internal.InitLogger(cfg.Debug)
	defer func() { _ = logger.Sync() }()
	out := zap.S()

	if v.GetBool(flagShowConfig) {
		s, err := cm.ShowConfig()
		if err != nil {
			return err
		}
		out.Info(s)
		return nil
	}

	if v.GetBool(flagSaveConfig) {
		return cm.Save()
	}

	files := tools.NewFSIOFileOps(fsio.NewRealReader(), fsio.NewRealWriter())
	c := client.New(http.RealCallerFactory, cfg)

	if v.GetBool(flagListModels) {
		models, err := c.ListModels(cmd.Context())
		if err != nil {
			return err
		}
		out.Info("Available models:")
		for _, m := range models {
			out.Info(m)
		}
		return nil
	}

	a, closeAgent, err := newAgent(cfg, c, files)
	if err != nil {
		return err
	}
	defer closeAgent()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dispatcher := command.NewDispatcher(files)

	if len(args) > 0 {
		repl.New(cfg, nil, out, a, dispatcher, core.NewRealClock()).Handle(ctx, strings.Join(args, " "))
		return nil
	}

	reader, closeReader, err := newLineReader(ctx)
	if err != nil {
		return err
	}
	defer closeReader()

	return repl.New(cfg, reader, out, a, dispatcher, core.NewRealClock()).Run(ctx)
}

// applyFlags layers explicitly set flags (or their UE_AGENT_ variables) over the config.
func applyFlags(cfg *config.Config) error {
	if v.IsSet(flagAgent) && v.GetBool(flagAgent) {
		cfg.Agent.Mode = config.ModeReAct
	}
	if v.IsSet(flagModel) {
		if cfg.Agent.Mode == config.ModeReAct {
			cfg.Agent.Model = v.GetString(flagModel)
		} else {
			cfg.Model = v.GetString(flagModel)
		}
	}
	if v.IsSet(flagURL) {
		cfg.URL = strings.TrimRight(v.GetString(flagURL), "/")
	}
	if v.IsSet(flagTimeout) {
		cfg.Timeout = v.GetInt(flagTimeout)
	}
	if v.IsSet(flagMaxIterations) {
		n := v.GetInt(flagMaxIterations)
		if n < 1 {
			return fmt.Errorf("--%s must be at least 1, got %d", flagMaxIterations, n)
		}
		cfg.Agent.MaxIterations = n
	}
	if v.IsSet(flagWorkDir) {
		cfg.Agent.WorkDir = v.GetString(flagWorkDir)
	}
	if v.IsSet(flagDryRun) {
		cfg.Agent.DryRun = v.GetBool(flagDryRun)
	}
	if v.IsSet(flagDebug) {
		cfg.Debug = v.GetBool(flagDebug)
	}
	return nil
}

func newAgent(cfg config.Config, c *client.Client, files tools.Files) (factory.Agent, func(), error) {
	clock := core.NewRealClock()
	noop := func() {}

	opts := []core.BaseOption{
		core.WithWorkDir(cfg.Agent.WorkDir),
		core.WithDryRun(cfg.Agent.DryRun),
		core.WithScratchpadMaxBytes(cfg.Agent.MaxScratchpadBytes),
		core.WithPromptHistoryMaxBytes(cfg.Agent.MaxHistoryBytes),
	}

	if cfg.Agent.Mode != config.ModeReAct {
		a, err := factory.New(factory.ModeSimple, factory.Deps{Clock: clock, Generator: c}, opts...)
		return a, noop, err
	}

	closer := noop
	if cfg.Agent.WriteLogs {
		logs, err := agent.NewLogs()
		if err != nil {
			return nil, noop, fmt.Errorf("agent logs: %w", err)
		}
		opts = append(opts,
			core.WithHumanLogger(logs.HumanLogger, logs.SyncHuman),
			core.WithDebugLogger(logs.DebugLogger, logs.SyncDebug),
		)
		closer = logs.Close
		zap.S().Debugf("agent logs: %s", logs.Dir)
	}

	budget := core.NewDefaultBudget(core.BudgetLimits{
		MaxIterations: cfg.Agent.MaxIterations,
		MaxToolCalls:  cfg.Agent.MaxToolCalls,
		MaxLLMTokens:  cfg.Agent.MaxLLMTokens,
		MaxWallTime:   time.Duration(cfg.Agent.MaxWallTime) * time.Second,
	})
	policy := core.NewDefaultPolicy(core.PolicyLimits{
		AllowedTools:           toolKinds(cfg.Agent.AllowedTools),
		RestrictFilesToWorkDir: cfg.Agent.RestrictFilesToWorkDir,
	})
	builder := tools.NewExecBuilder(cfg.Agent.BuildTool, time.Duration(cfg.Agent.BuildTimeout)*time.Second)
	runner := core.NewDefaultRunner(core.Tools{Files: files, Builder: builder}, clock, budget, policy)
	llm := tools.NewClientLLM(c, cfg.Agent.Model, cfg.Agent.Temperature, react.StopSequence)

	a, err := factory.New(factory.ModeReAct, factory.Deps{
		Clock:  clock,
		LLM:    llm,
		Runner: runner,
		Budget: budget,
	}, opts...)
	if err != nil {
		closer()
		return nil, noop, err
	}
	return a, closer, nil
}

func newLineReader(ctx context.Context) (repl.LineReader, func(), error) {
	if !repl.IsTerminal(int(os.Stdin.Fd())) {
		return repl.NewScannerReader(ctx, os.Stdin), func() {}, nil
	}

	rl, err := repl.NewReadlineReader()
	if err != nil {
		return nil, nil, err
	}
	return rl, func() { _ = rl.Close() }, nil
}

func toolKinds(names []string) []agenttypes.ToolKind {
	var kinds []agenttypes.ToolKind
	for _, n := range names {
		kinds = append(kinds, agenttypes.ToolKind(strings.TrimSpace(n)))
	}
	return kinds
}
