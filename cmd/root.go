package cmd

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/riversh/riversh/core"
	"github.com/riversh/riversh/core/config"
)

var cfgPath string

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(afero.NewOsFs(), cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands:
// an interactive shell session.
var rootCmd = &cobra.Command{
	Use:   "riversh",
	Short: "A small interactive shell",
	Long:  `An interactive command shell with pipelines, redirection and history expansion.`,
	Args:  cobra.ExactArgs(0),
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

		repl, err := core.NewREPL(session)
		if err != nil {
			session.Close()
			return err
		}

		status := repl.Run()
		repl.Close()
		session.Close()
		os.Exit(status)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
