package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jai-git4208/portfolio-os/backend/internal/infrastructure/config"
	"github.com/jai-git4208/portfolio-os/backend/internal/infrastructure/logging"
	"github.com/jai-git4208/portfolio-os/backend/internal/seed"
	"github.com/jai-git4208/portfolio-os/backend/internal/shell"
	"github.com/jai-git4208/portfolio-os/backend/internal/terminal"
)

// BuildInfo is printed by the version command
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildTime string
}

type rootOptions struct {
	envFile   string
	seedFile  string
	stepDelay time.Duration
	noColor   bool
	verbose   bool
	commands  []string
}

// NewRootCommand builds the webterm command tree
func NewRootCommand(info BuildInfo) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "webterm",
		Short: "Portfolio terminal in your shell",
		Long: `webterm runs the portfolio terminal locally against a seeded in-memory
filesystem. Nothing typed here touches the real disk.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			loadEnv(opts.envFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTerminal(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env", ".env", "Optional dotenv file")
	root.PersistentFlags().StringVar(&opts.seedFile, "seed", "", "Seed document (yaml, toml or json)")
	root.Flags().DurationVar(&opts.stepDelay, "step-delay", 0, "Delay between simulated output steps")
	root.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	root.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log session activity to stderr")
	root.Flags().StringArrayVarP(&opts.commands, "command", "c", nil, "Run a command and exit (repeatable)")

	root.AddCommand(newSeedCommand(opts), newVersionCommand(info))
	return root
}

func loadEnv(path string) {
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		log.Printf("Ignoring %s: %v", path, err)
	}
}

func runTerminal(cmd *cobra.Command, opts *rootOptions) error {
	cfg := config.LoadOrDefault()
	if opts.seedFile != "" {
		cfg.Terminal.SeedFile = opts.seedFile
	}
	if opts.stepDelay > 0 {
		cfg.Terminal.StepDelay = opts.stepDelay
	}

	doc, err := seed.LoadOrDefault(cfg.Terminal.SeedFile)
	if err != nil {
		return err
	}

	logger := logging.NewNop()
	if opts.verbose {
		logger = logging.NewDevelopment()
	}
	defer logger.Sync()

	tcfg := cfg.Terminal.Manager()
	tcfg.MaxSessions = 1
	tcfg.IdleTimeout = 0
	manager, err := terminal.NewManager(doc, tcfg)
	if err != nil {
		return err
	}
	manager.WithLogger(logger.Component("terminal"))
	defer manager.Close()

	info, err := manager.CreateSession()
	if err != nil {
		return err
	}
	session, err := manager.Session(info.ID)
	if err != nil {
		return err
	}

	repl := NewREPL(session, cmd.OutOrStdout())
	if opts.noColor {
		repl.WithoutColor()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if len(opts.commands) > 0 {
		status := repl.RunLines(ctx, opts.commands...)
		if status == shell.StatusError || status == shell.StatusUnknown {
			return fmt.Errorf("command finished with status %s", status)
		}
		return nil
	}
	return repl.Run(ctx, cmd.InOrStdin())
}

func newSeedCommand(opts *rootOptions) *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Inspect the seed document",
	}

	var format string
	export := &cobra.Command{
		Use:   "export",
		Short: "Print the active seed document",
		Long: `Print the seed document the terminal would start from, either the
file given with --seed or the built-in default. The output can be edited
and passed back with --seed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := seed.LoadOrDefault(opts.seedFile)
			if err != nil {
				return err
			}
			data, err := doc.Encode(format)
			if err != nil {
				return err
			}
			return writeAll(cmd.OutOrStdout(), data)
		},
	}
	export.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml, toml or json")

	validate := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check that a seed document loads and builds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := seed.Load(args[0])
			if err != nil {
				return err
			}
			if _, err := doc.Build(); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "%s: ok (%s@%s)\n", args[0], doc.User, doc.Hostname)
			return nil
		},
	}

	seedCmd.AddCommand(export, validate)
	return seedCmd
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "webterm %s (commit %s, built %s)\n",
				info.Version, info.GitCommit, info.BuildTime)
		},
	}
}

func writeAll(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}
