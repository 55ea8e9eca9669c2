package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "entity [name]",
		Short: "Show a knowledge record",
		Long:  "Look up an entity (case-insensitive substring match) and print its record as JSON.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runEntity,
	}
	RootCmd.AddCommand(cmd)
}

func runEntity(cmd *cobra.Command, args []string) {
	name := strings.Join(args, " ")

	logger := newLogger()
	defer logger.Sync()

	g := openGraph(logger)
	defer g.Close()

	rec, err := g.Lookup(cmd.Context(), name)
	if err != nil {
		exitErr("lookup", err)
	}
	if !rec.Found() {
		exitErr("lookup", fmt.Errorf("no entity matches %q", name))
	}

	b, _ := json.MarshalIndent(rec, "", "  ")
	fmt.Println(string(b))
}
