package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Process a single turn",
		Long:  "Process one message and print the reply. Use --session to continue a named session within the process.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runAsk,
	}
	cmd.Flags().StringP("session", "s", "default", "Session identifier")
	cmd.Flags().Bool("json", false, "Print the full turn result as JSON")
	RootCmd.AddCommand(cmd)
}

func runAsk(cmd *cobra.Command, args []string) {
	sessionID, _ := cmd.Flags().GetString("session")
	asJSON, _ := cmd.Flags().GetBool("json")
	message := strings.Join(args, " ")

	logger := newLogger()
	defer logger.Sync()

	g := openGraph(logger)
	defer g.Close()

	eng := newEngine(g, logger)
	result := eng.ProcessTurn(cmd.Context(), sessionID, message)

	if asJSON {
		out := map[string]any{
			"reply":      result.Reply,
			"intent":     result.Intent,
			"corrected":  result.Corrected,
			"expansions": result.Expansions,
			"entities":   result.Entities,
			"stage":      result.Stage,
		}
		b, _ := json.Marshal(out)
		fmt.Println(string(b))
		return
	}
	fmt.Println(result.Reply)
}
