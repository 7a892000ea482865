package payvek

import "context"

// WithdrawDetails describe the bank account receiving a withdrawal.
type WithdrawDetails struct {
	IBAN    string `json:"iban"`
	Purpose string `json:"purpose,omitempty"`
	Model   string `json:"model,omitempty"`
	PNB     string `json:"pnb,omitempty"`
}

// WithdrawOpts are the optional profile/withdraw fields.
type WithdrawOpts struct {
	// ID deduplicates withdrawals on the processor side.
	ID    string
	Extra map[string]any
}

// GetProfileInfo fetches profile details and balances.
func (c *Client) GetProfileInfo(ctx context.Context, profileCode string) (*Response, error) {
	body := newBody().set("profile_code", profileCode)

	return c.call(ctx, "profile_info/get", body)
}

// ProfileWithdraw requests a withdrawal from the profile balance.
func (c *Client) ProfileWithdraw(
	ctx context.Context,
	profileCode, method, amount string,
	details WithdrawDetails,
	opts *WithdrawOpts,
) (*Response, error) {
	body := newBody().
		set("profile_code", profileCode).
		set("method", method).
		set("amount", amount).
		set("details", details)

	if opts != nil {
		body.setIfNotEmpty("id", opts.ID)
		body.setExtra(opts.Extra)
	}

	return c.call(ctx, "profile/withdraw", body)
}
