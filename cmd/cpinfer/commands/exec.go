package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cpinfer/internal/app"
	"go.trai.ch/cpinfer/internal/core/domain"
)

func (c *CLI) newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <class> -- <command> [args...]",
		Short: "Run a command with the classpath of a class in its environment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dash := cmd.ArgsLenAtDash()
			if dash != 1 || len(args) < 2 {
				return domain.ErrNoCommandSpecified
			}

			env, _ := cmd.Flags().GetString("env")
			dir, _ := cmd.Flags().GetString("dir")
			return c.app.Exec(cmd.Context(), args[0], args[1:], app.ExecOptions{
				Options: options(cmd),
				Env:     env,
				WorkDir: dir,
				Stdout:  cmd.OutOrStdout(),
				Stderr:  cmd.ErrOrStderr(),
			})
		},
	}
	addInferenceFlags(cmd)
	cmd.Flags().StringP("env", "e", app.DefaultClasspathEnv, "Environment variable that receives the classpath")
	cmd.Flags().StringP("dir", "d", "", "Working directory of the command")
	return cmd
}
