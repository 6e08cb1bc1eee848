package cli

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/filepurge/filepurge/internal/model"
	"github.com/filepurge/filepurge/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recommendations from a scan session",
		Long:  "Lists results from the latest session (or --session). Use -f text for a readable table.",
		Run:   runList,
	}

	cmd.Flags().StringP("session", "s", "", "Session ID (default: latest)")
	cmd.Flags().StringP("action", "a", "", "Filter by action: keep or delete")
	cmd.Flags().Bool("anomalies", false, "Only anomalous files")
	cmd.Flags().String("category", "", "Filter by file category")
	cmd.Flags().Float64("min-confidence", 0, "Minimum confidence")
	cmd.Flags().IntP("limit", "l", 50, "Max results")

	RootCmd.AddCommand(cmd)
}

// resolveSession returns the requested session or the latest one.
func resolveSession(cmd *cobra.Command, s *store.SQLiteStore) *model.Session {
	id, _ := cmd.Flags().GetString("session")
	if id != "" {
		sess, err := s.GetSession(cmd.Context(), id)
		if err != nil {
			exitErr("get session", err)
		}
		return sess
	}
	sess, err := s.LatestSession(cmd.Context())
	if err != nil {
		exitErr("latest session", err)
	}
	return sess
}

func runList(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	action, _ := cmd.Flags().GetString("action")
	anomalies, _ := cmd.Flags().GetBool("anomalies")
	category, _ := cmd.Flags().GetString("category")
	minConf, _ := cmd.Flags().GetFloat64("min-confidence")
	limit, _ := cmd.Flags().GetInt("limit")

	s := openStore(cfg)
	defer s.Close()

	sess := resolveSession(cmd, s)

	results, err := s.ListResults(cmd.Context(), store.ResultFilter{
		SessionID:     sess.ID,
		Action:        model.Action(action),
		AnomaliesOnly: anomalies,
		Category:      category,
		MinConfidence: minConf,
		Limit:         limit,
	})
	if err != nil {
		exitErr("list results", err)
	}

	if textOutput() {
		printResultsTable(results)
		return
	}

	if len(results) == 0 {
		fmt.Println("[]")
		return
	}
	b, _ := json.MarshalIndent(results, "", "  ")
	fmt.Println(string(b))
}

func printResultsTable(results []model.Result) {
	if len(results) == 0 {
		fmt.Println("no results")
		return
	}
	fmt.Printf("%-6s  %-5s  %-9s  %-8s  %s\n", "ACTION", "CONF", "SIZE", "ANOMALY", "PATH")
	for _, r := range results {
		anom := "-"
		if r.Anomaly {
			anom = "yes"
		}
		fmt.Printf("%-6s  %.2f   %-9s  %-8s  %s\n",
			r.Action, r.Confidence, humanize.Bytes(uint64(r.SizeBytes)), anom, r.Path)
	}
}
