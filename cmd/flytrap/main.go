package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mimosa-flytrap/flytrap/agent"
	"github.com/mimosa-flytrap/flytrap/backend"
	"github.com/mimosa-flytrap/flytrap/chat"
	"github.com/mimosa-flytrap/flytrap/config"
	"github.com/mimosa-flytrap/flytrap/embed"
	"github.com/mimosa-flytrap/flytrap/internal"
	"github.com/mimosa-flytrap/flytrap/internal/fsio"
	"github.com/mimosa-flytrap/flytrap/terminal"
	"github.com/mimosa-flytrap/flytrap/tui"
)

var (
	GitCommit  string
	GitVersion = "dev"
)

var (
	taskFlag    string
	autoFlag    bool
	jsonFlag    bool
	tuiFlag     bool
	configFlag  string
	debugFlag   bool
	chatPrompt  string
	chatRole    string
	flagConfigs = map[string]string{
		"backend":     "backend",
		"model":       "model",
		"temperature": "temperature",
		"agent.auto":  "auto",
	}
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "flytrap",
		Short:         "LLM programming agent with confirmation before destructive commands",
		Long:          "Flytrap sends a task to a language model, parses the JSON action list in its reply and runs the actions: shell commands, file reads and writes, embeddings and messages.",
		RunE:          runAgent,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFlag, "config", "", "Path to a YAML config file")
	flags.BoolVar(&debugFlag, "debug", false, "Print debug output")
	flags.String("backend", "", "Model backend: ollama, ollama-chat, openai or cohere")
	flags.String("model", "", "Model name for the selected backend")
	flags.Float64("temperature", 0, "Sampling temperature")

	rootCmd.Flags().StringVar(&taskFlag, "task", "", "Run a single task and exit")
	rootCmd.Flags().BoolVar(&autoFlag, "auto", false, "Run every shell command without asking (trusted environments only)")
	rootCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print each task report as JSON")
	rootCmd.Flags().BoolVar(&tuiFlag, "tui", false, "Run the interactive loop in a full-screen terminal UI")

	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the configured backend",
		RunE:  runChat,
	}
	chatCmd.Flags().StringVar(&chatPrompt, "prompt", "", "Ask a single question and exit")
	chatCmd.Flags().StringVar(&chatRole, "role", "", "System prompt for the conversation")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration with secrets masked",
		RunE:  runConfig,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("flytrap version %s", GitVersion)
			if GitCommit != "" {
				fmt.Printf(" (commit %s)", GitCommit)
			}
			fmt.Println()
		},
	}

	rootCmd.AddCommand(chatCmd, configCmd, versionCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		stop()
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Manager, config.Config, error) {
	if err := config.LoadDotEnv(config.DefaultDotEnvFile); err != nil {
		return nil, config.Config{}, err
	}

	mgr := config.NewManager(config.WithConfigFile(configFlag))

	keys := map[string]string{}
	for key, name := range flagConfigs {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			keys[key] = name
		}
	}
	if err := mgr.BindFlags(cmd.Flags(), keys); err != nil {
		return nil, config.Config{}, err
	}

	cfg, err := mgr.Load()
	if err != nil {
		return nil, config.Config{}, err
	}

	internal.InitLogger(internal.ConsoleLevels(debugFlag))
	if cfg.NoColor {
		color.NoColor = true
	}
	return mgr, cfg, nil
}

func runConfig(cmd *cobra.Command, _ []string) error {
	mgr, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out, err := mgr.ShowConfig()
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func runChat(cmd *cobra.Command, _ []string) error {
	_, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	client, err := backend.New(cfg)
	if err != nil {
		return err
	}

	role := cfg.Role
	if chatRole != "" {
		role = chatRole
	}

	subject := chat.New(client, os.Stdout,
		chat.WithRole(role),
		chat.WithTemperature(cfg.Temperature),
		chat.WithColor(!color.NoColor),
		chat.WithDebugLogger(zap.S()),
	)

	if chatPrompt != "" {
		return subject.Ask(cmd.Context(), chatPrompt)
	}

	rl, err := newReadline(chat.DefaultPrompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	return subject.Run(cmd.Context(), rl)
}

func runAgent(cmd *cobra.Command, _ []string) error {
	_, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	auto := cfg.Agent.Auto

	client, err := backend.New(cfg)
	if err != nil {
		return err
	}

	logs, err := agent.NewLogs()
	if err != nil {
		zap.S().Warnf("agent logs disabled: %v", err)
		logs = &agent.Logs{}
	}
	defer logs.Close()

	debug := logs.DebugLogger
	if debugFlag {
		debug = zap.S()
	}

	var (
		rl        *terminal.Readline
		queue     tui.Queue
		confirmer agent.Confirmer
	)

	if tuiFlag {
		queue = tui.NewQueue()
		confirmer = tui.NewConfirmer(queue)
	} else {
		rl, err = newReadline(cfg.CommandPrompt)
		if err != nil {
			return err
		}
		defer rl.Close()
		confirmer = agent.NewConsoleConfirmer(rl, os.Stdout, !color.NoColor)
	}

	executor := agent.NewExecutor(capabilities(cfg, confirmer),
		agent.WithAutoMode(auto),
		agent.WithPolicy(agent.NewKeywordPolicy(keywords(cfg))),
		agent.WithShellTimeout(cfg.Agent.ShellTimeout),
		agent.WithShellWorkDir(cfg.Agent.WorkDir),
		agent.WithExecutorLogger(debug),
	)

	session := agent.NewSession(client, executor,
		agent.WithTemperature(cfg.Temperature),
		agent.WithBackendName(client.Name()),
		agent.WithHumanLogger(logs.HumanLogger),
		agent.WithDebugLogger(debug),
	)

	renderer := agent.NewRenderer(os.Stdout, !color.NoColor, jsonFlag)
	ctx := cmd.Context()

	switch {
	case taskFlag != "":
		// A failed backend call is reported, not returned: single-shot
		// mode still exits cleanly.
		renderer.Calling(session.BackendName())
		report, _ := session.RunTask(ctx, taskFlag)
		renderer.Report(report)
		return nil
	case tuiFlag:
		return tui.Run(ctx, session, queue, agent.NewRenderer(os.Stdout, false, false), session.BackendName())
	default:
		renderer.Banner()
		if err := session.RunInteractive(ctx, rl, renderer); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		if !jsonFlag {
			fmt.Println("Exiting.")
		}
		return nil
	}
}

func capabilities(cfg config.Config, confirmer agent.Confirmer) agent.Capabilities {
	argv := cfg.Agent.Shell
	if len(argv) == 0 {
		argv = agent.DefaultShellArgv(runtime.GOOS)
	}

	fs := fsio.NewOS()
	return agent.Capabilities{
		Shell:     agent.NewExecShellRunner(argv),
		Files:     agent.NewFSIOFileOps(fs, fs, cfg.Agent.WorkDir),
		Embedder:  embed.New(cfg.Embed, cfg.UserAgent),
		Confirmer: confirmer,
	}
}

func keywords(cfg config.Config) []string {
	if len(cfg.Agent.DestructiveKeywords) > 0 {
		return cfg.Agent.DestructiveKeywords
	}
	return agent.DefaultDestructiveKeywords(runtime.GOOS)
}

func newReadline(prompt string) (*terminal.Readline, error) {
	var history string
	if home, err := internal.GetConfigHome(); err == nil {
		if err := os.MkdirAll(home, fsio.DirPerm); err == nil {
			history = filepath.Join(home, terminal.HistoryFile)
		}
	}

	return terminal.New(terminal.Options{
		PromptTemplate: prompt,
		HistoryPath:    history,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
	})
}
