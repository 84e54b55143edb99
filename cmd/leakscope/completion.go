package leakscope

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate a completion script for your shell",
		Long: `Generate a completion script for bash, zsh, fish or powershell.

Load it the way your shell expects, for example:

  source <(leakscope completion bash)
  leakscope completion zsh > "${fpath[1]}/_leakscope"
  leakscope completion fish > ~/.config/fish/completions/leakscope.fish`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(_ *cobra.Command, args []string) error {
			return writeCompletion(os.Stdout, args[0])
		},
	}
	rootCmd.AddCommand(cmd)
}

func writeCompletion(w io.Writer, shell string) error {
	switch shell {
	case "bash":
		return rootCmd.GenBashCompletionV2(w, true)
	case "zsh":
		return rootCmd.GenZshCompletion(w)
	case "fish":
		return rootCmd.GenFishCompletion(w, true)
	default:
		return rootCmd.GenPowerShellCompletionWithDesc(w)
	}
}
