package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive chat session",
		Long:  "Start an interactive chat session. Type 'exit' or press Ctrl-D to quit.",
		Run:   runChat,
	}
	RootCmd.AddCommand(cmd)
}

func runChat(cmd *cobra.Command, args []string) {
	logger := newLogger()
	defer logger.Sync()

	g := openGraph(logger)
	defer g.Close()

	eng := newEngine(g, logger)
	sessionID := ulid.Make().String()

	fmt.Println("fishtalk - ask me about fish, seasons, locations, water conditions, or gear.")
	fmt.Println("Type 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		start := time.Now()
		result := eng.ProcessTurn(cmd.Context(), sessionID, line)
		if debugFlag {
			fmt.Printf("[intent=%s stage=%s %s]\n", result.Intent, result.Stage, time.Since(start).Round(time.Millisecond))
		}
		fmt.Println(result.Reply)
		fmt.Println()
	}
}
