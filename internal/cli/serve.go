package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"honnef.co/go/fluidcard/internal/framestore"
	"honnef.co/go/fluidcard/internal/server"
)

func (a *app) newServeCmd() *cobra.Command {
	var (
		addr    string
		noStore bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve frames and recordings over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = a.cfg.Server.Addr
			}
			opts := []server.Option{
				server.WithLogger(a.log),
				server.WithScale(a.cfg.Render.Scale),
			}
			if !noStore {
				store, err := framestore.Open(a.cfg.Store.Path)
				if err != nil {
					return err
				}
				defer store.Close()
				opts = append(opts, server.WithStore(store))
			}

			srv := server.NewServer(addr, a.cfg.Card, opts...)
			if err := srv.Start(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "listening on http://%s\n", srv.Addr())
			<-cmd.Context().Done()
			a.log.Info("shutting down")
			return srv.Stop()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr)")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "don't expose recordings")
	return cmd
}
