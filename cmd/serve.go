package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local bridge for the browser extension",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = appConfig.Server.Addr
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		srv := server.New(server.Deps{
			Tutor:      newClient(st),
			Levels:     levels(st),
			Counters:   st.Counters(),
			Vocabulary: st.Vocabulary(),
			Logger:     appLogger,
		})
		return srv.ListenAndServe(cmd.Context(), addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, 127.0.0.1:7878)")
}
