package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the knowledge database",
		Long:  "Create the knowledge database and load the fishery graph. Safe to run repeatedly.",
		Run:   runSeed,
	}
	RootCmd.AddCommand(cmd)
}

func runSeed(cmd *cobra.Command, args []string) {
	logger := newLogger()
	defer logger.Sync()

	g := openGraph(logger)
	defer g.Close()

	if err := g.Seed(cmd.Context()); err != nil {
		exitErr("seed", err)
	}

	entities, relations, err := g.Stats(cmd.Context())
	if err != nil {
		exitErr("stats", err)
	}
	fmt.Printf("seeded %s: %d entities, %d relations\n", getDBPath(), entities, relations)
}
