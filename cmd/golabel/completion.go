package main

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

// completionScripts maps a shell to the cobra generator for its script
var completionScripts = map[string]func(*cobra.Command, io.Writer) error{
	"bash":       func(c *cobra.Command, w io.Writer) error { return c.GenBashCompletionV2(w, true) },
	"zsh":        (*cobra.Command).GenZshCompletion,
	"fish":       func(c *cobra.Command, w io.Writer) error { return c.GenFishCompletion(w, true) },
	"powershell": (*cobra.Command).GenPowerShellCompletionWithDesc,
}

// completionCmd skips the root setup so it works without a readable settings file
var completionCmd = &cobra.Command{
	Use:   "completion <shell>",
	Short: "Print a shell completion script",
	Long: `Print the completion script for bash, zsh, fish or powershell.

Load it into the current shell, for example:

  source <(golabel completion bash)
  golabel completion fish | source

or write it once to the shell's completion directory:

  golabel completion zsh > "${fpath[1]}/_golabel"`,
	DisableFlagsInUseLine: true,
	ValidArgs:             slices.Sorted(maps.Keys(completionScripts)),
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	PersistentPreRunE:     func(*cobra.Command, []string) error { return nil },
	RunE:                  runCompletion,
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

func runCompletion(cmd *cobra.Command, args []string) error {
	gen, ok := completionScripts[args[0]]
	if !ok {
		return fmt.Errorf("unsupported shell %q", args[0])
	}
	return gen(cmd.Root(), cmd.OutOrStdout())
}
