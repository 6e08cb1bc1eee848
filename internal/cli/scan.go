package cli

import (
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/filepurge/filepurge/internal/model"
	"github.com/filepurge/filepurge/internal/recommend"
	"github.com/filepurge/filepurge/internal/scan"
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a directory and record recommendations",
		Long: "Walks the directory, classifies every file as a keep or delete candidate, " +
			"flags anomalies, and stores the session in the history database.",
		Args: cobra.MaximumNArgs(1),
		Run:  runScan,
	}

	cmd.Flags().Int("max-files", 0, "Override max files to scan")
	cmd.Flags().Int("max-depth", 0, "Override max directory depth")
	cmd.Flags().Bool("results", false, "Print full results instead of the session summary")

	RootCmd.AddCommand(cmd)
}

func runScan(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	if v, _ := cmd.Flags().GetInt("max-files"); v > 0 {
		cfg.MaxFiles = v
	}
	if v, _ := cmd.Flags().GetInt("max-depth"); v > 0 {
		cfg.MaxDepth = v
	}

	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	feedback, err := recommend.LoadFeedback(cfg.FeedbackPath())
	if err != nil {
		exitErr("load feedback", err)
	}
	recommender := recommend.New(feedback)

	started := time.Now().UTC()
	scanner := scan.NewScanner(cfg)
	records, err := scanner.Scan(cmd.Context(), root, func(files int, status string) {
		log.WithField("files", files).Info(status)
	})
	if err != nil {
		exitErr("scan", err)
	}

	recommendations := recommender.RecommendAll(records)

	results := make([]model.Result, len(records))
	sess := &model.Session{
		Root:       root,
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
	}
	st := scanner.Stats()
	sess.FilesScanned = st.FilesScanned
	sess.DirsScanned = st.DirsScanned
	sess.SkippedSystem = st.SkippedSystem
	sess.Errors = st.Errors

	for i := range records {
		results[i] = model.Result{
			FileRecord:     records[i],
			Recommendation: recommendations[i],
		}
		switch recommendations[i].Action {
		case model.ActionKeep:
			sess.KeepCount++
		case model.ActionDelete:
			sess.DeleteCount++
		}
		if recommendations[i].Anomaly {
			sess.AnomalyCount++
		}
	}

	s := openStore(cfg)
	defer s.Close()

	if err := s.SaveSession(cmd.Context(), sess, results); err != nil {
		exitErr("save session", err)
	}

	if full, _ := cmd.Flags().GetBool("results"); full {
		b, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(b))
		return
	}

	b, _ := json.MarshalIndent(sess, "", "  ")
	fmt.Println(string(b))
}
