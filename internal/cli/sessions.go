package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recorded scan sessions",
		Run:   runSessions,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max sessions")

	RootCmd.AddCommand(cmd)
}

func runSessions(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	limit, _ := cmd.Flags().GetInt("limit")

	s := openStore(cfg)
	defer s.Close()

	sessions, err := s.ListSessions(cmd.Context(), limit)
	if err != nil {
		exitErr("list sessions", err)
	}

	if textOutput() {
		if len(sessions) == 0 {
			fmt.Println("no sessions")
			return
		}
		fmt.Printf("%-27s  %-20s  %6s  %6s  %6s  %s\n",
			"ID", "STARTED", "FILES", "KEEP", "DELETE", "ROOT")
		for _, sess := range sessions {
			fmt.Printf("%-27s  %-20s  %6d  %6d  %6d  %s\n",
				sess.ID, sess.StartedAt.Format("2006-01-02 15:04:05"),
				sess.FilesScanned, sess.KeepCount, sess.DeleteCount, sess.Root)
		}
		return
	}

	if len(sessions) == 0 {
		fmt.Println("[]")
		return
	}
	b, _ := json.MarshalIndent(sessions, "", "  ")
	fmt.Println(string(b))
}
