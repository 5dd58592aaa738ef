package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tlfs/pkg/cache"
	"github.com/matzehuels/tlfs/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered-artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.config.Cache.Backend == config.CacheNone {
				c.ui.info("Caching is disabled")
				return nil
			}
			store, err := c.newCache(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer store.Close()

			if cl, ok := store.(cache.Clearer); ok {
				if err := cl.Clear(cmd.Context()); err != nil {
					return fmt.Errorf("clear cache: %w", err)
				}
			}
			c.ui.success("Cleared the %s cache", c.config.Cache.Backend)
			c.ui.detail("%s", c.cacheLocation())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where artifacts are cached",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(c.Out, c.cacheLocation())
			return nil
		},
	}
}

// cacheLocation names the cache directory, or the Redis server.
func (c *CLI) cacheLocation() string {
	switch c.config.Cache.Backend {
	case config.CacheRedis:
		return c.config.Cache.RedisURL
	case config.CacheNone:
		return "(disabled)"
	default:
		return c.cacheDir()
	}
}
