package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/payvek/payvek-go/pkg/payvek"
)

var profileCommand = &cobra.Command{
	Use:   "profile",
	Short: "Manage payment profiles",
}

var profileInfoCommand = &cobra.Command{
	Use:     "info <profile-code>",
	Short:   "Fetches profile details and balances",
	Args:    cobra.ExactArgs(1),
	Example: "payvek profile info 5bddmwvd",
	Run:     profileInfo,
}

var profileWithdrawCommand = &cobra.Command{
	Use:     "withdraw <profile-code> <method> <amount>",
	Short:   "Requests a withdrawal from the profile balance",
	Args:    cobra.ExactArgs(3),
	Example: "payvek profile withdraw 5bddmwvd bank 100.00 --iban HR1210010051863000160",
	Run:     profileWithdraw,
}

var (
	withdrawIBAN    string
	withdrawPurpose string
	withdrawModel   string
	withdrawPNB     string
	withdrawID      string
)

func profileWithdrawSetup(cmd *cobra.Command) {
	cmd.Flags().StringVar(&withdrawIBAN, "iban", "", "destination IBAN (required)")
	cmd.Flags().StringVar(&withdrawPurpose, "purpose", "", "payment purpose code")
	cmd.Flags().StringVar(&withdrawModel, "model", "", "reference model")
	cmd.Flags().StringVar(&withdrawPNB, "pnb", "", "reference number")
	cmd.Flags().StringVar(&withdrawID, "id", "", "idempotent withdrawal id")
	_ = cmd.MarkFlagRequired("iban")
}

func profileInfo(_ *cobra.Command, args []string) {
	client, logger := resolveClient()

	res, err := client.GetProfileInfo(context.Background(), args[0])
	if err != nil {
		logger.Error().Err(err).Msg("Unable to get profile info")
		return
	}

	printResponse(res)
}

func profileWithdraw(_ *cobra.Command, args []string) {
	client, logger := resolveClient()

	details := payvek.WithdrawDetails{
		IBAN:    withdrawIBAN,
		Purpose: withdrawPurpose,
		Model:   withdrawModel,
		PNB:     withdrawPNB,
	}

	var opts *payvek.WithdrawOpts
	if withdrawID != "" {
		opts = &payvek.WithdrawOpts{ID: withdrawID}
	}

	res, err := client.ProfileWithdraw(context.Background(), args[0], args[1], args[2], details, opts)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to withdraw")
		return
	}

	printResponse(res)
}
