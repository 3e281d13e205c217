package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
)

var completionInstall bool

// shellCompletion describes how to generate and install the completion
// script for one shell. target returns the install path below the home
// directory and is nil where automatic install is not supported.
type shellCompletion struct {
	hints        []string
	generate     func(w io.Writer) error
	target       func(home string) string
	afterInstall []string
}

var shellCompletions = map[string]shellCompletion{
	"bash": {
		hints: []string{
			`#   eval "$(tb completion bash)"`,
			"#",
			"# To install permanently:",
			"#   tb completion bash --install",
		},
		generate: func(w io.Writer) error { return rootCmd.GenBashCompletionV2(w, true) },
		target: func(home string) string {
			return filepath.Join(home, ".local", "share", "bash-completion", "completions", "tb")
		},
		afterInstall: []string{"Restart your shell or run: source %[1]s"},
	},
	"zsh": {
		hints: []string{
			`#   eval "$(tb completion zsh)"`,
			"#",
			"# To install permanently:",
			"#   tb completion zsh --install",
		},
		generate: rootCmd.GenZshCompletion,
		target: func(home string) string {
			return filepath.Join(home, ".local", "share", "zsh", "site-functions", "_tb")
		},
		afterInstall: []string{
			"Ensure this directory is in your fpath. Add to ~/.zshrc if needed:",
			"  fpath=(%[2]s $fpath)",
			"  autoload -Uz compinit && compinit",
		},
	},
	"fish": {
		hints: []string{
			"#   tb completion fish | source",
			"#",
			"# To install permanently:",
			"#   tb completion fish --install",
		},
		generate: func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
		target: func(home string) string {
			return filepath.Join(home, ".config", "fish", "completions", "tb.fish")
		},
		afterInstall: []string{"Completions will be available in new fish sessions automatically."},
	},
	"powershell": {
		hints: []string{
			"#   tb completion powershell | Out-String | Invoke-Expression",
			"#",
			"# Add the above command to your PowerShell profile to keep it.",
		},
		generate: rootCmd.GenPowerShellCompletionWithDesc,
	},
}

func supportedShells() []string {
	shells := make([]string, 0, len(shellCompletions))
	for name := range shellCompletions {
		shells = append(shells, name)
	}
	sort.Strings(shells)
	return shells
}

var completionCmd = &cobra.Command{
	Use:   "completion <shell>",
	Short: "Set up shell completions for tb",
	Long: `Set up shell tab-completions for tb commands, flags, and arguments.

Supported shells: bash, fish, powershell, zsh

Quick install (adds completions below your home directory):

  tb completion bash --install
  tb completion zsh --install
  tb completion fish --install

Or print the completion script to stdout (for manual setup):

  tb completion bash
  tb completion powershell`,
	ValidArgs: supportedShells(),
	Args:      cobra.MaximumNArgs(1),
	RunE:      runCompletion,
}

func init() {
	completionCmd.Flags().BoolVar(&completionInstall, "install", false,
		"Install completions for the current user")

	// Replace Cobra's default completion command with ours.
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(completionCmd)
}

func runCompletion(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	shell, ok := shellCompletions[args[0]]
	if !ok {
		return fmt.Errorf("unsupported shell %q (supported: bash, fish, powershell, zsh)", args[0])
	}

	if completionInstall {
		return installCompletion(cmd.OutOrStdout(), args[0], shell)
	}

	// Hints go to stderr so the script on stdout can be piped.
	hints := cmd.ErrOrStderr()
	_, _ = fmt.Fprintln(hints, "# To load completions in your current session:")
	for _, line := range shell.hints {
		_, _ = fmt.Fprintln(hints, line)
	}
	_, _ = fmt.Fprintln(hints, "#")
	return shell.generate(cmd.OutOrStdout())
}

func installCompletion(out io.Writer, name string, shell shellCompletion) error {
	if shell.target == nil {
		return fmt.Errorf("automatic install is not supported for %s; run 'tb completion %s' and add the output to your profile", name, name)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("detecting home directory: %w", err)
	}
	target := shell.target(home)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating completion directory: %w", err)
	}

	if err := writeCompletionFile(target, shell.generate); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "%s completions installed to %s\n", name, target)
	for _, line := range shell.afterInstall {
		_, _ = fmt.Fprintf(out, line+"\n", target, dir)
	}
	return nil
}

// writeCompletionFile creates target and writes the script into it,
// reporting close errors.
func writeCompletionFile(target string, generate func(io.Writer) error) error {
	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("creating completion file %s: %w", target, err)
	}

	writeErr := generate(f)
	closeErr := f.Close()

	if writeErr != nil {
		return writeErr
	}
	if closeErr != nil {
		return fmt.Errorf("closing completion file %s: %w", target, closeErr)
	}
	return nil
}
