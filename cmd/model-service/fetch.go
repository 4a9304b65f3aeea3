package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Populate the models directory and verify the artifacts load, then exit",
	Long: `Fetch makes every artifact available in the models directory exactly as
serve does at startup, without starting any server. Use it to warm the cache
in a container build step or an init container.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _, err := setup(cmd)
		if err != nil {
			return err
		}

		manager, err := newManager(cfg)
		if err != nil {
			return err
		}

		if _, err := manager.LoadAll(cmd.Context()); err != nil {
			return err
		}

		for _, ai := range manager.Registry().List() {
			slog.Info("Artifact ready", "artifact", ai.Name, "path", ai.Path, "size", ai.Size, "source", ai.Source)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
