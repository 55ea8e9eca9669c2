// Package cli implements the fishtalk CLI commands.
package cli

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mchowdhury/fishtalk/internal/engine"
	"github.com/mchowdhury/fishtalk/internal/knowledge"
)

var (
	dbPath    string
	debugFlag bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "fishtalk",
	Short: "Conversational fishery advisor",
	Long:  "A rule-based dialogue engine for fishery advice. SQLite-backed knowledge graph, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Knowledge database path (default: $FISHTALK_DB or ~/.fishtalk/knowledge.db)")
	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("FISHTALK_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".fishtalk", "knowledge.db")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	if debugFlag {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		exitErr("init logger", err)
	}
	return logger
}

func openGraph(logger *zap.Logger) *knowledge.SQLiteGraph {
	g, err := knowledge.NewSQLiteGraph(getDBPath(), logger)
	if err != nil {
		exitErr("open knowledge store", err)
	}
	return g
}

func newEngine(g *knowledge.SQLiteGraph, logger *zap.Logger) *engine.Engine {
	return engine.New(g, engine.Config{
		Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		Logger: logger,
	})
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
