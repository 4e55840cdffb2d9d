package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/riversh/riversh/core/config"
	"github.com/riversh/riversh/core/logger"
)

// logsCmd prints the recorded event log in a readable form.
var logsCmd = &cobra.Command{
	Use:     "logs",
	Aliases: []string{"log"},
	Short:   "Print the recorded shell event log.",
	Args:    cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		fd, err := os.Open(filepath.Join(cfgPath, config.AppLogName))
		if err != nil {
			return err
		}
		defer fd.Close()

		out := cmd.OutOrStdout()
		return logger.ReadJSONLinesLog(fd, func(le *logger.LogEntry) {
			ts := time.UnixMicro(le.TimestampMicros).UTC().Format(time.RFC3339)
			switch {
			case le.SessionStart != nil:
				fmt.Fprintf(out, "%s [%s] session start user=%s\n", ts, le.SessionID, le.SessionStart.User)
			case le.SessionEnd != nil:
				fmt.Fprintf(out, "%s [%s] session end status=%d\n", ts, le.SessionID, le.SessionEnd.Status)
			case le.Statement != nil:
				fmt.Fprintf(out, "%s [%s] statement %q\n", ts, le.SessionID, le.Statement.Text)
			case le.LexError != nil:
				fmt.Fprintf(out, "%s [%s] lex error %q: %s\n", ts, le.SessionID, le.LexError.Line, le.LexError.Error)
			case le.UnknownCommand != nil:
				fmt.Fprintf(out, "%s [%s] unknown command %q: %s\n", ts, le.SessionID, le.UnknownCommand.Command, le.UnknownCommand.Error)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
}
