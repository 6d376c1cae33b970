package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-tailor/internal/analysis"
	"github.com/jonathan/profile-tailor/internal/config"
	"github.com/jonathan/profile-tailor/internal/fetch"
	"github.com/jonathan/profile-tailor/internal/llm"
	"github.com/jonathan/profile-tailor/internal/pipeline"
	"github.com/jonathan/profile-tailor/internal/types"
)

var customizeCommand = &cobra.Command{
	Use:   "customize",
	Short: "Tailor a profile to a job description or target role",
	Long: `Runs the full tailoring pipeline: normalize skills, identify editable units,
generate an edit plan, apply it together with the comprehensive rewrite pass,
verify structure and report edit coverage.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runCustomizeCmd,
}

var (
	customizeConfigPath string
	customizeProfile    string
	customizeJob        string
	customizeJobURL     string
	customizeRole       string
	customizeCompany    string
	customizeOutput     string
	customizeAPIKey     string
	customizeInstr      []string
	customizeWorkers    int
	customizeUseBrowser bool
	customizeVerbose    bool
)

func init() {
	customizeCommand.Flags().StringVar(&customizeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	customizeCommand.Flags().StringVarP(&customizeProfile, "profile", "p", "", "Path to profile JSON file")
	customizeCommand.Flags().StringVarP(&customizeJob, "job", "j", "", "Path to analyzed job description JSON file (mutually exclusive with --job-url)")
	customizeCommand.Flags().StringVar(&customizeJobURL, "job-url", "", "URL to fetch and analyze the job posting from (mutually exclusive with --job)")
	customizeCommand.Flags().BoolVar(&customizeUseBrowser, "use-browser", false, "Use a headless browser when fetching SPA job boards")
	customizeCommand.Flags().StringVarP(&customizeRole, "role", "r", "", "Target role (used alone or to override the job description title)")
	customizeCommand.Flags().StringVar(&customizeCompany, "company", "", "Target company name")
	customizeCommand.Flags().StringArrayVar(&customizeInstr, "instruction", nil, "Tailoring instruction for the edit plan (repeatable)")
	customizeCommand.Flags().StringVarP(&customizeOutput, "output", "o", "", "Write the tailored profile JSON to this path (default: stdout)")
	customizeCommand.Flags().IntVar(&customizeWorkers, "workers", 0, "Parallel LLM calls in the rewrite pass")
	customizeCommand.Flags().BoolVarP(&customizeVerbose, "verbose", "v", false, "Print detailed debug information")
	customizeCommand.Flags().StringVar(&customizeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(customizeCommand)
}

func runCustomizeCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := config.Config{
		Profile:     customizeProfile,
		Job:         customizeJob,
		JobURL:      customizeJobURL,
		Role:        customizeRole,
		Company:     customizeCompany,
		APIKey:      customizeAPIKey,
		Concurrency: customizeWorkers,
		UseBrowser:  customizeUseBrowser,
		Verbose:     customizeVerbose,
	}
	if customizeConfigPath != "" {
		loaded, err := config.LoadConfig(customizeConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = cfg.MergeWithDefaults(*loaded)
	}

	if cfg.Profile == "" {
		return fmt.Errorf("--profile is required")
	}
	if cfg.Job == "" && cfg.JobURL == "" && cfg.Role == "" {
		return fmt.Errorf("one of --job, --job-url or --role is required")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set --api-key or GEMINI_API_KEY)")
	}

	profile := &types.Profile{}
	if err := readJSONFile(cfg.Profile, profile); err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	var jd *types.JobDescription
	var client llm.Client
	switch {
	case cfg.Job != "":
		jd = &types.JobDescription{}
		if err := readJSONFile(cfg.Job, jd); err != nil {
			return fmt.Errorf("failed to load job description: %w", err)
		}
		jd.ClampScores()
	case cfg.JobURL != "":
		fetchOpts := fetch.DefaultOptions()
		fetchOpts.AllowBrowser = cfg.UseBrowser
		fetchOpts.Verbose = cfg.Verbose
		posting, err := fetch.JobPosting(ctx, cfg.JobURL, fetchOpts)
		if err != nil {
			return fmt.Errorf("failed to fetch job posting: %w", err)
		}

		client, err = llm.NewClient(ctx, nil, apiKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()

		jd, err = analysis.AnalyzeJobPosting(ctx, client, posting.Text)
		if err != nil {
			return fmt.Errorf("failed to analyze job posting: %w", err)
		}
	}

	instructions := make([]types.Instruction, 0, len(customizeInstr))
	for _, intent := range customizeInstr {
		instructions = append(instructions, types.Instruction{Intent: intent})
	}

	result, err := pipeline.Customize(ctx, pipeline.CustomizeOptions{
		Profile:        profile,
		JobDescription: jd,
		TargetRole:     cfg.Role,
		TargetCompany:  cfg.Company,
		Instructions:   instructions,
		APIKey:         apiKey,
		Client:         client,
		Concurrency:    cfg.Concurrency,
		Verbose:        cfg.Verbose,
	})
	if err != nil {
		return err
	}

	return writeJSONOutput(customizeOutput, result)
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func writeJSONOutput(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Printf("Wrote tailored profile to %s\n", path)
	return nil
}
