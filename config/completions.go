package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

const completionsHelp = `To load completions:

Bash:
  $ source <(ue-agent --set-completions bash)

Zsh:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  $ ue-agent --set-completions zsh > "${fpath[1]}/_ue-agent"

fish:
  $ ue-agent --set-completions fish > ~/.config/fish/completions/ue-agent.fish

PowerShell:
  PS> ue-agent --set-completions powershell | Out-String | Invoke-Expression
`

// GenCompletions writes the completion script for shell to w.
func GenCompletions(command *cobra.Command, shell string, w io.Writer) error {
	root := command.Root()

	switch strings.ToLower(strings.TrimSpace(shell)) {
	case "bash":
		return root.GenBashCompletion(w)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	case "help":
		_, err := io.WriteString(w, completionsHelp)
		return err
	default:
		return fmt.Errorf("unsupported shell %q: use bash, zsh, fish or powershell", shell)
	}
}
