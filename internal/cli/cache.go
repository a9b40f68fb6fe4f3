package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/apinav/pkg/cache"
	"github.com/matzehuels/apinav/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached artifact and document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if c.cacheBackend() == config.BackendNone {
				printInfo(out, "Cache is disabled")
				return nil
			}

			ch, err := c.config.OpenCache(cmd.Context())
			if err != nil {
				return err
			}
			defer ch.Close()

			clearer, ok := ch.(cache.Clearer)
			if !ok {
				return fmt.Errorf("cache backend %q cannot be cleared", c.config.Cache.Backend)
			}
			n, err := clearer.Clear(cmd.Context())
			if err != nil {
				return err
			}
			printSuccess(out, "Cleared %d cached entries", n)
			printDetail(out, "Backend: %s", c.cacheLocation())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), c.cacheLocation())
			return nil
		},
	}
}

// cacheLocation describes the configured backend: a directory for the file
// cache, an address for the network backends.
func (c *CLI) cacheLocation() string {
	cc := c.config.Cache
	switch cc.Backend {
	case config.BackendFile:
		return cc.Dir
	case config.BackendRedis:
		return "redis://" + cc.RedisAddr
	case config.BackendMongo:
		return cc.MongoURI + "/" + cc.MongoDatabase
	default:
		return cc.Backend
	}
}
