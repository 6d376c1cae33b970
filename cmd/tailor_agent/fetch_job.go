package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-tailor/internal/fetch"
)

var fetchJobCommand = &cobra.Command{
	Use:   "fetch-job <url>",
	Short: "Fetch a job posting URL and print its extracted text",
	Long: `Retrieves a job posting and reduces it to plain text using platform-aware
extraction (Greenhouse, Lever, Workday). Pages that render client-side fall
back to a headless browser when --use-browser is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetchJobCmd,
}

var (
	fetchUseBrowser bool
	fetchVerbose    bool
	fetchOutput     string
)

func init() {
	fetchJobCommand.Flags().BoolVar(&fetchUseBrowser, "use-browser", false, "Allow headless browser fallback for SPA job boards (requires Chrome)")
	fetchJobCommand.Flags().BoolVarP(&fetchVerbose, "verbose", "v", false, "Print detailed debug information")
	fetchJobCommand.Flags().StringVarP(&fetchOutput, "output", "o", "", "Write extracted text to this path (default: stdout)")

	rootCmd.AddCommand(fetchJobCommand)
}

func runFetchJobCmd(_ *cobra.Command, args []string) error {
	opts := fetch.DefaultOptions()
	opts.AllowBrowser = fetchUseBrowser
	opts.Verbose = fetchVerbose

	posting, err := fetch.JobPosting(context.Background(), args[0], opts)
	if err != nil {
		return err
	}

	if fetchVerbose {
		fmt.Fprintf(os.Stderr, "Platform: %s (browser: %t)\n", posting.Platform, posting.UsedBrowser)
	}

	if fetchOutput == "" {
		fmt.Println(posting.Text)
		return nil
	}
	if err := os.WriteFile(fetchOutput, []byte(posting.Text), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Printf("Wrote posting text to %s\n", fetchOutput)
	return nil
}
