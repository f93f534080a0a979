package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"listmenu/internal/config"
	"listmenu/internal/eventbus"
)

func newConfigCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := configService(cmd, eventbus.NullBus{})
			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(svc.Path()); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", svc.Path())
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := svc.Save(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "wrote %s\n", svc.Path())
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(app.Out, configService(cmd, eventbus.NullBus{}).Path())
			return nil
		},
	}

	cmd.AddCommand(initCmd, pathCmd)
	return cmd
}
