// Command reactagent is a CLI wrapper around the agent package: it loads
// configuration, registers the example tools, runs one prompt to
// completion, and prints the result.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/taipm/reactagent/agent"
	"github.com/taipm/reactagent/config"
	"github.com/taipm/reactagent/tools"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: no .env file loaded: %v\n", err)
	}

	var (
		configPath string
		apiKey     string
		baseURL    string
		model      string
		maxIter    int
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:   "reactagent",
		Short: "Run a tool-augmented ReAct agent against a single prompt",
	}

	runCmd := &cobra.Command{
		Use:   "run [prompt]",
		Short: "Run the agent on a prompt and print its final answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := args[0]

			var engineConfig agent.AgentConfig
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				engineConfig = loaded
			} else {
				key := apiKey
				if key == "" {
					key = os.Getenv("OPENAI_API_KEY")
				}
				engineConfig = agent.NewAgentConfig(key)
			}

			if baseURL != "" {
				engineConfig.BaseURL = baseURL
			}
			if model != "" {
				engineConfig.Model = model
			}
			if maxIter > 0 {
				engineConfig.MaxIterations = maxIter
			}
			if verbose {
				engineConfig.Logger = agent.NewZerologLogger(zerolog.DebugLevel)
			}

			registry := agent.NewRegistry()
			if err := registry.Register(tools.NewCalculator()); err != nil {
				return err
			}
			if err := registry.Register(tools.NewHTTPFetch()); err != nil {
				return err
			}

			engine, err := agent.NewDefaultEngine(engineConfig, registry)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			result, err := engine.RunWithSteps(ctx, prompt)
			if err != nil {
				return err
			}

			fmt.Println(result.Output)
			if result.Structured != nil {
				structuredJSON, _ := json.MarshalIndent(result.Structured, "", "  ")
				fmt.Println(string(structuredJSON))
			}
			return nil
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	runCmd.Flags().StringVar(&apiKey, "api-key", "", "provider API key (defaults to OPENAI_API_KEY)")
	runCmd.Flags().StringVar(&baseURL, "base-url", "", "provider base URL override")
	runCmd.Flags().StringVar(&model, "model", "", "model identifier override")
	runCmd.Flags().IntVar(&maxIter, "max-iterations", 0, "iteration budget override")
	runCmd.Flags().BoolVar(&verbose, "verbose", false, "log engine events to stderr")

	rootCmd.AddCommand(runCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
