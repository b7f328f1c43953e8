package main

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [powershell|bash|zsh|fish]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for winget-monitor.

PowerShell:
  PS> winget-monitor completion powershell | Out-String | Invoke-Expression
  # To load completions for every new session, add the output to your profile:
  PS> winget-monitor completion powershell >> $PROFILE

Bash (WSL or Git Bash):
  $ source <(winget-monitor completion bash)

Zsh:
  $ winget-monitor completion zsh > "${fpath[1]}/_winget-monitor"

Fish:
  $ winget-monitor completion fish | source
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"powershell", "bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		default:
			return rootCmd.GenFishCompletion(out, true)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
