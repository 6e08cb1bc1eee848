package cli

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/filepurge/filepurge/internal/recommend"
	"github.com/filepurge/filepurge/internal/store"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show history database and feedback statistics",
		Run:   runStats,
	})
}

func runStats(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	s := openStore(cfg)
	defer s.Close()

	dbStats, err := s.Stats(cmd.Context(), getDBPath(cfg))
	if err != nil {
		exitErr("database stats", err)
	}

	feedback, err := recommend.LoadFeedback(cfg.FeedbackPath())
	if err != nil {
		exitErr("load feedback", err)
	}
	fbStats := feedback.Stats()

	if textOutput() {
		fmt.Printf("database: %s (%s)\n", dbStats.DBPath, humanize.Bytes(uint64(dbStats.DBSizeBytes)))
		fmt.Printf("sessions: %d, results: %d, decisions: %d\n",
			dbStats.Sessions, dbStats.Results, dbStats.Decisions)
		fmt.Printf("pending deletes: %d, anomalies: %d\n", dbStats.PendingDelete, dbStats.Anomalies)
		if len(dbStats.Categories) > 0 {
			fmt.Println("categories:")
			for _, c := range dbStats.Categories {
				fmt.Printf("  %-12s  %5d files  %4d delete recs  %s\n",
					c.Category, c.Count, c.DeleteRecs, humanize.Bytes(uint64(c.TotalBytes)))
			}
		}
		fmt.Printf("feedback: %d choices (kept %d, deleted %d)\n",
			fbStats.TotalChoices, fbStats.Kept, fbStats.Deleted)
		return
	}

	out := struct {
		Database *store.Stats    `json:"database"`
		Feedback recommend.Stats `json:"feedback"`
	}{dbStats, fbStats}

	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}
