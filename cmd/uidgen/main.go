package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lmousom/uid"
	cfgpkg "github.com/lmousom/uid/internal/config"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "uidgen",
		Short:         "Generate time-ordered binary identifiers",
		Long:          "uidgen prints identifiers made of a millisecond timestamp, a node, a counter and optional random bytes.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	generateCmd := &cobra.Command{
		Use:     "generate",
		Short:   "Generate identifiers",
		Aliases: []string{"gen"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := cfgpkg.Load(configPath, cmd.Flags())
			if err != nil {
				fmt.Fprintln(stderr, "uidgen:", err)
				return err
			}

			logger := newLogger(stderr, cfg.Log)
			if err := generate(stdout, logger, cfg); err != nil {
				logger.Error("generate failed", "error", err)
				return err
			}
			return nil
		},
	}
	generateCmd.Flags().String("config", os.Getenv("UIDGEN_CONFIG"), "Config file (yaml, json or toml)")
	generateCmd.Flags().IntP("count", "n", 1, "Number of identifiers to print")
	generateCmd.Flags().IntP("size", "s", uid.Size, "Identifier length in bytes (16-32)")
	generateCmd.Flags().String("node", "", "Node as 12 hex characters, or \"hardware\" (default random)")
	generateCmd.Flags().StringP("output", "o", "hex", "Output: hex|raw")
	generateCmd.Flags().String("log-level", "info", "Log level: debug|info|warn|error")
	generateCmd.Flags().String("log-format", "text", "Log format: text|json")
	rootCmd.AddCommand(generateCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "%s %s\n", uid.Name, uid.Version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd
}

func generate(w io.Writer, logger *slog.Logger, cfg cfgpkg.Config) error {
	node, err := cfg.NodeBytes()
	if err != nil {
		return err
	}
	g, err := uid.New(uid.WithNode(node))
	if err != nil {
		return err
	}
	n := g.Node()
	logger.Debug("generator ready",
		"node", hex.EncodeToString(n[:]),
		"size", cfg.Size,
		"count", cfg.Count,
	)

	out := bufio.NewWriter(w)
	buf := make([]byte, cfg.Size)
	for i := 0; i < cfg.Count; i++ {
		if err := g.Fill(buf); err != nil {
			return err
		}
		switch cfg.Output {
		case "raw":
			_, err = out.Write(buf)
		default:
			_, err = fmt.Fprintln(out, hex.EncodeToString(buf))
		}
		if err != nil {
			return err
		}
	}
	return out.Flush()
}

func newLogger(w io.Writer, cfg cfgpkg.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("component", "uidgen")
}
