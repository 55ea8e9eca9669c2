package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show knowledge store statistics",
		Run:   runStats,
	}
	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	logger := newLogger()
	defer logger.Sync()

	g := openGraph(logger)
	defer g.Close()

	entities, relations, err := g.Stats(cmd.Context())
	if err != nil {
		exitErr("stats", err)
	}

	b, _ := json.Marshal(map[string]any{
		"db_path":   getDBPath(),
		"entities":  entities,
		"relations": relations,
	})
	fmt.Println(string(b))
}
