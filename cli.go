package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "inspection-agent",
		Short: "Evaluate inspection drafts with LLM comparisons and review boards",
		Long: `inspection-agent evaluates natural-language drafts by asking one or more
OpenAI-compatible chat completion endpoints for an analysis.

Compare mode shows several models side by side with line diffs against the
first model. Jury mode asks a board of weighted roles for scored opinions.
Without a base URL and API key, completions are served by a deterministic
offline stub.`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newEvaluateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the evaluation HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}

			server, err := NewServer(*cfg)
			if err != nil {
				return err
			}

			log.Printf("Starting Inspection Agent API on port %s...", cfg.Port)
			return server.Router().Run(":" + cfg.Port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}

func newEvaluateCmd() *cobra.Command {
	var (
		file    string
		baseURL string
		apiKey  string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Run one evaluation request from a JSON file and print the result",
		Example: `  inspection-agent evaluate --file request.json
  cat request.json | inspection-agent evaluate --file -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := readEvaluationRequest(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			if baseURL != "" || apiKey != "" {
				if request.LLM == nil {
					request.LLM = &LLMConfig{}
				}
				if baseURL != "" {
					request.LLM.BaseURL = baseURL
				}
				if apiKey != "" {
					request.LLM.APIKey = apiKey
				}
			}

			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			catalog, err := LoadCatalog(cfg.CatalogFile)
			if err != nil {
				return err
			}

			dispatcher := NewDispatcher(*cfg, WithDetectors(NewDetectorRegistry(catalog.Detectors)))
			response, err := dispatcher.Evaluate(cmd.Context(), request)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(response)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "evaluation request JSON file, or - for stdin")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "override the completion endpoint base URL")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "override the completion endpoint API key")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readEvaluationRequest(stdin io.Reader, file string) (EvaluationRequest, error) {
	var request EvaluationRequest

	var data []byte
	var err error
	if file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return request, fmt.Errorf("failed to read request: %w", err)
	}

	if err := json.Unmarshal(data, &request); err != nil {
		return request, fmt.Errorf("failed to parse request: %w", err)
	}
	return request, nil
}
