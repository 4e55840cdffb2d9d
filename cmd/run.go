package cmd

import (
	"bufio"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/riversh/riversh/core"
)

var commandLine string

// runCmd executes a script file or a -c command string without starting
// the line editor.
var runCmd = &cobra.Command{
	Use:   "run [SCRIPT]",
	Short: "Run a script file or a command string non-interactively.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		session, err := core.NewSession(configuration, afero.NewOsFs())
		if err != nil {
			return err
		}

		session.RunInitCommands()

		if commandLine != "" {
			status := session.RunLine(commandLine)
			session.Close()
			os.Exit(status)
		}

		input := os.Stdin
		if len(args) == 1 {
			fd, err := os.Open(args[0])
			if err != nil {
				session.Close()
				return err
			}
			defer fd.Close()
			input = fd
		}

		status := 0
		scanner := bufio.NewScanner(input)
		for scanner.Scan() {
			status = session.RunLine(scanner.Text())
			if session.Shell.Quit {
				break
			}
		}
		scanErr := scanner.Err()
		session.Close()
		if scanErr != nil {
			return scanErr
		}
		os.Exit(status)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&commandLine, "command", "c", "", "command string to run")
	rootCmd.AddCommand(runCmd)
}
