// Command nodeql is a one-shot CLI that parses and executes a query against
// the demo post/comment/like schema and prints the JSON result, grounded on
// the pack's agentquery/cobraext/command.go (a Cobra command wired to a
// query engine's own parse/execute API). It performs no network transport —
// a single invocation reads one query and exits, consistent with this
// engine's "no network transport" scope.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shyptr/nodeql"
	"github.com/shyptr/nodeql/internal/demo"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		file      string
		requester string
		locale    string
	)

	cmd := &cobra.Command{
		Use:   "nodeql [query]",
		Short: "Parse and execute a query against the demo post/comment/like schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, args, file)
			if err != nil {
				return err
			}

			reg := demo.NewRegistry()
			rctx := demo.NewContext(requester, locale)

			q, err := nodeql.Parse(source, reg, rctx)
			if err != nil {
				return err
			}
			result, err := q.Result()
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the query from a file instead of the argument or stdin")
	cmd.Flags().StringVar(&requester, "requester", "cli", "value the demo context() root call reports as requester")
	cmd.Flags().StringVar(&locale, "locale", "en-US", "value the demo context() root call reports as locale")
	return cmd
}

func readSource(cmd *cobra.Command, args []string, file string) (string, error) {
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	if len(args) == 1 {
		return args[0], nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return string(b), nil
}
