package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for titlecard.

To load completions:

Bash:
  $ source <(titlecard completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ titlecard completion bash > /etc/bash_completion.d/titlecard
  # macOS:
  $ titlecard completion bash > $(brew --prefix)/etc/bash_completion.d/titlecard

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ titlecard completion zsh > "${fpath[1]}/_titlecard"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ titlecard completion fish | source

  # To load completions for each session, execute once:
  $ titlecard completion fish > ~/.config/fish/completions/titlecard.fish

PowerShell:
  PS> titlecard completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> titlecard completion powershell > titlecard.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// completeStyles completes style keys from the active style table.
func (c *CLI) completeStyles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	reg, err := c.loadRegistry()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var keys []string
	for _, d := range reg.Descriptors() {
		if strings.HasPrefix(strings.ToLower(d.Key), strings.ToLower(toComplete)) {
			keys = append(keys, d.Key+"\t"+d.Name)
		}
	}
	return keys, cobra.ShellCompDirectiveNoFileComp
}
