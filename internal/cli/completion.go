package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand writes shell completion scripts to the command output.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for graphplot.

To load completions:

Bash:
  $ source <(graphplot completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ graphplot completion bash > /etc/bash_completion.d/graphplot
  # macOS:
  $ graphplot completion bash > $(brew --prefix)/etc/bash_completion.d/graphplot

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ graphplot completion zsh > "${fpath[1]}/_graphplot"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ graphplot completion fish | source

  # To load completions for each session, execute once:
  $ graphplot completion fish > ~/.config/fish/completions/graphplot.fish

PowerShell:
  PS> graphplot completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> graphplot completion powershell > graphplot.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(w)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}
