package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tempviz-cli/internal/gui"
	"github.com/KaramelBytes/tempviz-cli/internal/launcher"
)

var menuNoShow bool

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the graphical launcher for the data scripts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m := launcher.NewMenu(launcher.Catalog())
		m.ExtraArgs = childArgs()
		debugf("menu child args: %v", m.ExtraArgs)
		gui.RunLauncher(cmd.Context(), m, launcher.ExecRunner{
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		})
		return nil
	},
}

// childArgs are the flags forwarded to every script started from the menu.
func childArgs() []string {
	var args []string
	if !menuNoShow {
		args = append(args, "--mostrar")
	}
	if cfgFile != "" {
		args = append(args, "--config", cfgFile)
	}
	if debug {
		args = append(args, "--debug")
	}
	return args
}

func init() {
	rootCmd.AddCommand(menuCmd)
	menuCmd.Flags().BoolVar(&menuNoShow, "sem-janela", false, "do not open a chart window after each run")
}
