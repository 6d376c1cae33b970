package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-tailor/internal/skills"
	"github.com/jonathan/profile-tailor/internal/types"
)

var normalizeCommand = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize the technology names in a profile",
	Long: `Canonicalizes every skill name in a profile (e.g. "golang" -> "Go",
"k8s" -> "Kubernetes") and assigns coarse categories, without calling the LLM.`,
	RunE: runNormalizeCmd,
}

var (
	normalizeProfile string
	normalizeOutput  string
)

func init() {
	normalizeCommand.Flags().StringVarP(&normalizeProfile, "profile", "p", "", "Path to profile JSON file")
	normalizeCommand.Flags().StringVarP(&normalizeOutput, "output", "o", "", "Write the normalized profile JSON to this path (default: stdout)")
	_ = normalizeCommand.MarkFlagRequired("profile")

	rootCmd.AddCommand(normalizeCommand)
}

func runNormalizeCmd(_ *cobra.Command, _ []string) error {
	profile := &types.Profile{}
	if err := readJSONFile(normalizeProfile, profile); err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	skills.NormalizeProfileSkills(profile)
	return writeJSONOutput(normalizeOutput, profile)
}
