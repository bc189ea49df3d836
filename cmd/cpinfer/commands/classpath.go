package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/cpinfer/internal/app"
	"go.trai.ch/cpinfer/internal/core/domain"
	"go.trai.ch/zerr"
)

// Output formats of the classpath command.
const (
	FormatPath  = "path"
	FormatLines = "lines"
	FormatJSON  = "json"
)

func (c *CLI) newClasspathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classpath <class>...",
		Short: "Print the classpath needed to load the given classes",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}

			format, _ := cmd.Flags().GetString("format")
			if format != FormatPath && format != FormatLines && format != FormatJSON {
				return zerr.With(zerr.Wrap(domain.ErrUnknownFormat, "use path, lines or json"), "format", format)
			}

			result, err := c.app.Classpath(cmd.Context(), args, options(cmd))
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), result, format)
		},
	}
	addInferenceFlags(cmd)
	cmd.Flags().StringP("format", "f", FormatPath, "Output format: path, lines or json")
	return cmd
}

type jsonDiagnostic struct {
	Unit      string `json:"unit"`
	Reference string `json:"reference,omitempty"`
	Kind      string `json:"kind"`
	Error     string `json:"error"`
}

type jsonTarget struct {
	Target      string           `json:"target"`
	Source      string           `json:"source"`
	Roots       []string         `json:"roots"`
	Diagnostics []jsonDiagnostic `json:"diagnostics,omitempty"`
}

type jsonResult struct {
	Classpath []string     `json:"classpath"`
	Targets   []jsonTarget `json:"targets"`
}

func writeResult(w io.Writer, result *app.Result, format string) error {
	switch format {
	case FormatLines:
		for _, path := range result.Classpath.Paths() {
			if _, err := fmt.Fprintln(w, path); err != nil {
				return zerr.Wrap(err, "failed to write classpath")
			}
		}
		return nil
	case FormatJSON:
		out := jsonResult{
			Classpath: result.Classpath.Paths(),
			Targets:   make([]jsonTarget, 0, len(result.Targets)),
		}
		for _, t := range result.Targets {
			jt := jsonTarget{
				Target: t.Target.String(),
				Source: string(t.Source),
				Roots:  t.Roots,
			}
			if jt.Roots == nil {
				jt.Roots = []string{}
			}
			for _, d := range t.Diagnostics {
				jt.Diagnostics = append(jt.Diagnostics, jsonDiagnostic{
					Unit:      d.Unit.String(),
					Reference: d.Reference,
					Kind:      string(d.Kind()),
					Error:     d.Err.Error(),
				})
			}
			out.Targets = append(out.Targets, jt)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return zerr.Wrap(err, "failed to write classpath")
		}
		return nil
	default:
		if _, err := fmt.Fprintln(w, strings.TrimSpace(result.Classpath.String())); err != nil {
			return zerr.Wrap(err, "failed to write classpath")
		}
		return nil
	}
}
