package payvek

import "context"

// CreateAccountParams hold the account/create fields. The first block is
// required, the second optional.
type CreateAccountParams struct {
	Email                           string
	Name                            string
	Street                          string
	City                            string
	Country                         string
	ProfileCurrency                 string
	ProfileAutomaticWithdrawMethod  string
	ProfileAutomaticWithdrawDetails WithdrawDetails

	Type         string
	OIB          string
	VAT          string
	ProfileName  string
	ProfileEmail string
	// ProfileType is accepted by account/create only;
	// account/create_with_password ignores it.
	ProfileType string

	Extra map[string]any
}

func (p CreateAccountParams) body(withProfileType bool) *requestBody {
	body := newBody().
		set("email", p.Email).
		set("name", p.Name).
		set("street", p.Street).
		set("city", p.City).
		set("country", p.Country).
		set("profile_currency", p.ProfileCurrency).
		set("profile_automatic_withdraw_method", p.ProfileAutomaticWithdrawMethod).
		set("profile_automatic_withdraw_details", p.ProfileAutomaticWithdrawDetails)

	body.setIfNotEmpty("type", p.Type)
	body.setIfNotEmpty("oib", p.OIB)
	body.setIfNotEmpty("vat", p.VAT)
	body.setIfNotEmpty("profile_name", p.ProfileName)
	body.setIfNotEmpty("profile_email", p.ProfileEmail)

	if withProfileType {
		body.setIfNotEmpty("profile_type", p.ProfileType)
	}

	body.setExtra(p.Extra)

	return body
}

// CreateAccount creates a sub-account with a payment profile.
func (c *Client) CreateAccount(ctx context.Context, params CreateAccountParams) (*Response, error) {
	return c.call(ctx, "account/create", params.body(true))
}

// CreateAccountWithPassword creates a sub-account with dashboard access.
func (c *Client) CreateAccountWithPassword(ctx context.Context, params CreateAccountParams, password string) (*Response, error) {
	body := params.body(false)
	body.set("password", password)

	return c.call(ctx, "account/create_with_password", body)
}
