package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filepurge/filepurge/internal/export"
	"github.com/filepurge/filepurge/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export session results as CSV or JSON",
		Long:  "Exports every result of a session. One CSV row per scanned file.",
		Run:   runExport,
	}

	cmd.Flags().StringP("session", "s", "", "Session ID (default: latest)")
	cmd.Flags().StringP("out", "o", "", "Output file (default: stdout)")
	cmd.Flags().Bool("json", false, "Export JSON instead of CSV")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	outPath, _ := cmd.Flags().GetString("out")
	asJSON, _ := cmd.Flags().GetBool("json")

	s := openStore(cfg)
	defer s.Close()

	sess := resolveSession(cmd, s)

	results, err := s.ListResults(cmd.Context(), store.ResultFilter{
		SessionID: sess.ID,
		Limit:     sess.FilesScanned + 1,
	})
	if err != nil {
		exitErr("list results", err)
	}

	w := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			exitErr("create output file", err)
		}
		defer f.Close()
		w = f
	}

	if asJSON {
		err = export.JSON(w, results)
	} else {
		err = export.CSV(w, results)
	}
	if err != nil {
		exitErr("export", err)
	}

	if outPath != "" {
		fmt.Printf(`{"ok":true,"session":%q,"rows":%d,"file":%q}`+"\n", sess.ID, len(results), outPath)
	}
}
