package cli

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/filepurge/filepurge/internal/fileops"
	"github.com/filepurge/filepurge/internal/model"
	"github.com/filepurge/filepurge/internal/recommend"
	"github.com/filepurge/filepurge/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Act on delete recommendations",
		Long: "Applies delete recommendations of a session. Runs in simulation mode by " +
			"default: nothing is removed until --no-simulate (trash) or --permanent is given. " +
			"System folders and recently accessed files are always skipped.",
		Run: runPurge,
	}

	cmd.Flags().StringP("session", "s", "", "Session ID (default: latest)")
	cmd.Flags().Bool("no-simulate", false, "Actually move files to the trash directory")
	cmd.Flags().Bool("permanent", false, "Permanently delete instead of trashing (implies --no-simulate)")
	cmd.Flags().Bool("force", false, "Ignore the confidence floor")
	cmd.Flags().IntP("limit", "l", 0, "Max files to act on (0 = all)")

	RootCmd.AddCommand(cmd)
}

func runPurge(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	noSim, _ := cmd.Flags().GetBool("no-simulate")
	permanent, _ := cmd.Flags().GetBool("permanent")
	force, _ := cmd.Flags().GetBool("force")
	limit, _ := cmd.Flags().GetInt("limit")

	mode := fileops.Simulate
	if permanent {
		mode = fileops.Permanent
	} else if noSim || !cfg.Simulate() {
		mode = fileops.Trash
	}

	feedback, err := recommend.LoadFeedback(cfg.FeedbackPath())
	if err != nil {
		exitErr("load feedback", err)
	}

	s := openStore(cfg)
	defer s.Close()

	sess := resolveSession(cmd, s)

	results, err := s.ListResults(cmd.Context(), store.ResultFilter{
		SessionID: sess.ID,
		Action:    model.ActionDelete,
		Limit:     limit,
	})
	if err != nil {
		exitErr("list results", err)
	}

	purger := fileops.NewPurger(cfg, mode, force)

	outcomes := make([]fileops.Outcome, 0, len(results))
	for _, r := range results {
		out := purger.Purge(r, sess.ID)
		outcomes = append(outcomes, out)

		// Real deletions are recorded as decisions and feedback; a
		// simulation changes nothing, on disk or in the stores.
		if out.Deleted && mode != fileops.Simulate {
			if err := s.RecordDecision(cmd.Context(), sess.ID, r.Path, model.DecisionDeleted); err != nil {
				exitErr("record decision", err)
			}
			if err := feedback.Record(r.FileRecord, false); err != nil {
				exitErr("record feedback", err)
			}
		}
	}

	summary := fileops.Summarize(mode, outcomes)

	if textOutput() {
		fmt.Printf("mode: %s\ndeleted: %d\nskipped: %d\nfailed: %d\nfreed: %s\n",
			summary.Mode, summary.Deleted, summary.Skipped, summary.Failed,
			humanize.Bytes(uint64(summary.FreedBytes)))
		return
	}

	b, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(b))
}
