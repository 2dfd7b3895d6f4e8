package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"

	"github.com/cexll/agentcli-go/pkg/agent"
	"github.com/cexll/agentcli-go/pkg/config"
	"github.com/cexll/agentcli-go/pkg/model/openrouter"
	"github.com/cexll/agentcli-go/pkg/tool"
	toolbuiltin "github.com/cexll/agentcli-go/pkg/tool/builtin"
)

const version = "0.1.0"

type options struct {
	Prompt    string `short:"p" long:"prompt" description:"Prompt to send to the model"`
	Model     string `short:"m" long:"model" description:"Completion model identifier"`
	Config    string `short:"f" long:"config" description:"Path to the YAML settings file"`
	MaxRounds int    `long:"max-rounds" description:"Maximum completion round-trips before aborting"`
	Version   bool   `short:"v" long:"version" description:"Print version and exit"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var opts options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, flagsErr.Message)
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if opts.Version {
		fmt.Fprintln(os.Stdout, "agentcli "+version)
		return 0
	}
	// The prompt requirement is enforced here, not via a go-flags tag, so
	// that -v and -h work on their own.
	if opts.Prompt == "" {
		fmt.Fprintln(os.Stderr, "the required flag `-p, --prompt' was not specified")
		return 2
	}

	runID := uuid.NewString()
	logger := log.New(os.Stderr, "agentcli["+runID[:8]+"] ", log.LstdFlags)

	settings, err := config.Load(opts.Config)
	if err != nil {
		logger.Printf("startup: %v", err)
		return 1
	}
	if opts.Model != "" {
		settings.Model = opts.Model
	}
	if opts.MaxRounds > 0 {
		settings.MaxRounds = opts.MaxRounds
	}

	client, err := openrouter.NewClient(openrouter.Options{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
	if err != nil {
		logger.Printf("startup: %v", err)
		return 1
	}

	registry := tool.NewRegistry()
	builtins := []tool.Tool{
		toolbuiltin.NewReadTool(),
		toolbuiltin.NewWriteTool(),
		toolbuiltin.NewBashToolWithTimeout(settings.CommandTimeout.Std()),
	}
	for _, t := range builtins {
		if err := registry.Register(t); err != nil {
			logger.Printf("startup: register %s: %v", t.Name(), err)
			return 1
		}
	}

	runner, err := agent.New(client, registry, agent.Config{
		MaxRounds: settings.MaxRounds,
		Timeout:   settings.Timeout.Std(),
	}, logger)
	if err != nil {
		logger.Printf("startup: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := runner.Run(ctx, opts.Prompt)
	if err != nil {
		logger.Printf("run failed: %v", err)
		return 1
	}

	// Final text goes to stdout verbatim; everything else stays on stderr.
	if _, err := os.Stdout.WriteString(result.Output); err != nil {
		logger.Printf("write output: %v", err)
		return 1
	}
	return 0
}
