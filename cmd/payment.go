package cmd

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/payvek/payvek-go/pkg/payvek"
)

var paymentCommand = &cobra.Command{
	Use:   "payment",
	Short: "Manage payments",
}

var paymentGetCommand = &cobra.Command{
	Use:     "get <payment-code>",
	Short:   "Fetches a payment by its code",
	Args:    cobra.ExactArgs(1),
	Example: "payvek payment get 4mq7e8xh",
	Run:     paymentGet,
}

var paymentOpenCommand = &cobra.Command{
	Use:     "open <profile-code> <amount>",
	Short:   "Opens a payment and prints its checkout URL",
	Args:    cobra.ExactArgs(2),
	Example: "payvek payment open 5bddmwvd 10.00 --email buyer@example.com",
	Run:     paymentOpen,
}

var paymentUpdateCommand = &cobra.Command{
	Use:     "update <payment-code> <src-currency>",
	Short:   "Sets the currency the customer pays with",
	Args:    cobra.ExactArgs(2),
	Example: "payvek payment update 4mq7e8xh BTC",
	Run:     paymentUpdate,
}

var paymentCancelCommand = &cobra.Command{
	Use:     "cancel <payment-code>",
	Short:   "Cancels an unpaid payment",
	Args:    cobra.ExactArgs(1),
	Run:     paymentCancel,
}

var (
	paymentID       string
	paymentEmail    string
	paymentLanguage string
	paymentDesc     string
	statusCallback  string
	srcProtocol     string
)

func paymentOpenSetup(cmd *cobra.Command) {
	cmd.Flags().StringVar(&paymentID, "payment-id", "", "merchant-side payment id (defaults to a random UUID)")
	cmd.Flags().StringVar(&paymentEmail, "email", "", "customer email")
	cmd.Flags().StringVar(&paymentLanguage, "language", "", "checkout page language")
	cmd.Flags().StringVar(&paymentDesc, "description", "", "payment description")
	cmd.Flags().StringVar(&statusCallback, "status-callback", "", "URL notified on payment status changes")
}

func paymentUpdateSetup(cmd *cobra.Command) {
	cmd.Flags().StringVar(&srcProtocol, "src-protocol", "", "payment protocol, e.g. LN for Lightning")
}

func paymentGet(_ *cobra.Command, args []string) {
	client, logger := resolveClient()

	res, err := client.GetPayment(context.Background(), args[0])
	if err != nil {
		logger.Error().Err(err).Msg("Unable to get payment")
		return
	}

	printResponse(res)
}

func paymentOpen(_ *cobra.Command, args []string) {
	client, logger := resolveClient()

	profileCode, amount := args[0], args[1]

	if _, err := decimal.NewFromString(amount); err != nil {
		logger.Error().Err(err).Str("amount", amount).Msg("Invalid amount")
		return
	}

	if paymentID == "" {
		paymentID = uuid.NewString()
	}

	opts := &payvek.OpenPaymentOpts{
		PaymentID:         paymentID,
		Email:             paymentEmail,
		Language:          paymentLanguage,
		Description:       paymentDesc,
		StatusURLCallback: statusCallback,
	}

	url, err := client.OpenPaymentURL(context.Background(), profileCode, amount, opts)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to open payment")
		return
	}

	logger.Info().Str("payment_id", paymentID).Str("payment_url", url).Msg("Payment opened")
}

func paymentUpdate(_ *cobra.Command, args []string) {
	client, logger := resolveClient()

	var opts *payvek.UpdatePaymentOpts
	if srcProtocol != "" {
		opts = &payvek.UpdatePaymentOpts{SrcProtocol: srcProtocol}
	}

	res, err := client.UpdatePayment(context.Background(), args[0], args[1], opts)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to update payment")
		return
	}

	printResponse(res)
}

func paymentCancel(_ *cobra.Command, args []string) {
	client, logger := resolveClient()

	res, err := client.CancelPayment(context.Background(), args[0])
	if err != nil {
		logger.Error().Err(err).Msg("Unable to cancel payment")
		return
	}

	printResponse(res)
}
