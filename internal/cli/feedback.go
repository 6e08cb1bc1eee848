package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filepurge/filepurge/internal/recommend"
)

func init() {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Show learned keep/delete preferences",
		Long: "Shows what the preference store has learned from your mark and purge " +
			"decisions: the extensions you most keep and most delete.",
		Run: runFeedback,
	}
	cmd.Flags().IntP("top", "t", 5, "How many extensions to show per side")

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Clear all learned preferences",
		Run:   runFeedbackReset,
	}
	cmd.AddCommand(reset)

	RootCmd.AddCommand(cmd)
}

func runFeedback(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	top, _ := cmd.Flags().GetInt("top")

	feedback, err := recommend.LoadFeedback(cfg.FeedbackPath())
	if err != nil {
		exitErr("load feedback", err)
	}

	stats := feedback.Stats()
	mostKept, mostDeleted := feedback.TopPreferences(top)

	if textOutput() {
		fmt.Printf("choices: %d (kept %d, deleted %d)\n", stats.TotalChoices, stats.Kept, stats.Deleted)
		fmt.Printf("extensions learned: %d, categories learned: %d\n",
			stats.ExtensionsLearned, stats.CategoriesLearned)
		printPreferences("most kept", mostKept)
		printPreferences("most deleted", mostDeleted)
		return
	}

	out := struct {
		Stats       recommend.Stats        `json:"stats"`
		MostKept    []recommend.Preference `json:"most_kept"`
		MostDeleted []recommend.Preference `json:"most_deleted"`
	}{stats, mostKept, mostDeleted}

	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}

func printPreferences(label string, prefs []recommend.Preference) {
	if len(prefs) == 0 {
		return
	}
	fmt.Printf("%s:\n", label)
	for _, p := range prefs {
		fmt.Printf("  .%-8s  keep %3.0f%%  (%d decisions)\n", p.Extension, p.KeepRatio*100, p.Total)
	}
}

func runFeedbackReset(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	feedback, err := recommend.LoadFeedback(cfg.FeedbackPath())
	if err != nil {
		exitErr("load feedback", err)
	}
	if err := feedback.Reset(); err != nil {
		exitErr("reset feedback", err)
	}
	fmt.Println(`{"ok":true,"feedback":"reset"}`)
}
