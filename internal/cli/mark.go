package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filepurge/filepurge/internal/model"
	"github.com/filepurge/filepurge/internal/recommend"
)

func init() {
	cmd := &cobra.Command{
		Use:   "mark <path>...",
		Short: "Record your keep/delete decision for files",
		Long: "Records what you decided for files of a session. Decisions feed the " +
			"preference store and nudge future recommendations.",
		Args: cobra.MinimumNArgs(1),
		Run:  runMark,
	}

	cmd.Flags().StringP("session", "s", "", "Session ID (default: latest)")
	cmd.Flags().Bool("keep", false, "Mark as kept")
	cmd.Flags().Bool("delete", false, "Mark as deleted")

	RootCmd.AddCommand(cmd)
}

func runMark(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	keep, _ := cmd.Flags().GetBool("keep")
	del, _ := cmd.Flags().GetBool("delete")
	if keep == del {
		exitErr("mark", fmt.Errorf("exactly one of --keep or --delete is required"))
	}

	feedback, err := recommend.LoadFeedback(cfg.FeedbackPath())
	if err != nil {
		exitErr("load feedback", err)
	}

	s := openStore(cfg)
	defer s.Close()

	sess := resolveSession(cmd, s)

	decision := model.DecisionKept
	if del {
		decision = model.DecisionDeleted
	}

	marked := 0
	for _, path := range args {
		r, err := s.GetResult(cmd.Context(), sess.ID, path)
		if err != nil {
			exitErr("mark", err)
		}
		if err := s.RecordDecision(cmd.Context(), sess.ID, path, decision); err != nil {
			exitErr("mark", err)
		}
		if err := feedback.Record(r.FileRecord, keep); err != nil {
			exitErr("record feedback", err)
		}
		marked++
	}

	fmt.Printf(`{"ok":true,"session":%q,"marked":%d,"decision":%q}`+"\n", sess.ID, marked, decision)
}
