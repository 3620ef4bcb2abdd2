package cmd

import (
	"cinema-client/internal/data/credstore"
	"cinema-client/internal/data/gateway"
	"cinema-client/internal/usecase"
	"cinema-client/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// deps is everything the commands need, injected once from main.
type deps struct {
	svc    *usecase.Service
	gw     gateway.Gateway
	creds  credstore.Store
	config *utils.Config
	log    *zap.Logger
}

func Execute(svc *usecase.Service, gw gateway.Gateway, creds credstore.Store, config *utils.Config, logger *zap.Logger) error {
	d := &deps{svc: svc, gw: gw, creds: creds, config: config, log: logger}

	rootCmd := &cobra.Command{
		Use:   "cinema-client",
		Short: "Browse films, pick seats and keep your tickets from the terminal",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	rootCmd.AddCommand(
		newFilmsCmd(d),
		newFilmCmd(d),
		newBookCmd(d),
		newTicketsCmd(d),
		newLoginCmd(d),
		newRegisterCmd(d),
		newLogoutCmd(d),
		newProfileCmd(d),
	)

	return rootCmd.Execute()
}
