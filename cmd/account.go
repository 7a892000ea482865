package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/payvek/payvek-go/pkg/payvek"
)

var accountCommand = &cobra.Command{
	Use:   "account",
	Short: "Manage sub-accounts",
}

var accountCreateCommand = &cobra.Command{
	Use:     "create <email> <name>",
	Short:   "Creates a sub-account with a payment profile",
	Args:    cobra.ExactArgs(2),
	Example: `payvek account create owner@example.com "Example d.o.o." --country HR --currency EUR --iban HR12...`,
	Run:     accountCreate,
}

var (
	accountStreet   string
	accountCity     string
	accountCountry  string
	accountCurrency string
	accountMethod   string
	accountIBAN     string
	accountPassword string
)

func accountCreateSetup(cmd *cobra.Command) {
	cmd.Flags().StringVar(&accountStreet, "street", "", "street address (required)")
	cmd.Flags().StringVar(&accountCity, "city", "", "city (required)")
	cmd.Flags().StringVar(&accountCountry, "country", "", "country code (required)")
	cmd.Flags().StringVar(&accountCurrency, "currency", "", "profile currency (required)")
	cmd.Flags().StringVar(&accountMethod, "withdraw-method", "bank", "automatic withdraw method")
	cmd.Flags().StringVar(&accountIBAN, "iban", "", "automatic withdraw IBAN (required)")
	cmd.Flags().StringVar(&accountPassword, "password", "", "when set, creates the account with dashboard access")

	for _, required := range []string{"street", "city", "country", "currency", "iban"} {
		_ = cmd.MarkFlagRequired(required)
	}
}

func accountCreate(_ *cobra.Command, args []string) {
	client, logger := resolveClient()

	params := payvek.CreateAccountParams{
		Email:                           args[0],
		Name:                            args[1],
		Street:                          accountStreet,
		City:                            accountCity,
		Country:                         accountCountry,
		ProfileCurrency:                 accountCurrency,
		ProfileAutomaticWithdrawMethod:  accountMethod,
		ProfileAutomaticWithdrawDetails: payvek.WithdrawDetails{IBAN: accountIBAN},
	}

	var (
		res *payvek.Response
		err error
	)

	if accountPassword != "" {
		res, err = client.CreateAccountWithPassword(context.Background(), params, accountPassword)
	} else {
		res, err = client.CreateAccount(context.Background(), params)
	}

	if err != nil {
		logger.Error().Err(err).Msg("Unable to create account")
		return
	}

	printResponse(res)
}
