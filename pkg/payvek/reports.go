package payvek

import "context"

// ReportsOpts are the optional reports/get fields.
type ReportsOpts struct {
	LocationID string
	Extra      map[string]any
}

// GetReports fetches payment reports for a profile within a datetime range.
// Timestamps use the processor's documented "YYYY-MM-DD hh:mm:ss" format.
func (c *Client) GetReports(ctx context.Context, profileCode, datetimeFrom, datetimeTo string, opts *ReportsOpts) (*Response, error) {
	body := newBody().
		set("profile_code", profileCode).
		set("datetime_from", datetimeFrom).
		set("datetime_to", datetimeTo)

	if opts != nil {
		body.setIfNotEmpty("location_id", opts.LocationID)
		body.setExtra(opts.Extra)
	}

	return c.call(ctx, "reports/get", body)
}
