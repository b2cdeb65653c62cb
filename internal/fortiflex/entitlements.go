package fortiflex

import "context"

type listEntitlementsRequest struct {
	AccountID           *int64 `json:"accountId"`
	ProgramSerialNumber string `json:"programSerialNumber"`
}

type serialNumberRequest struct {
	SerialNumber string `json:"serialNumber"`
}

// ListEntitlements returns the entitlements of an account / program.
// Empty programSN and zero accountID fall back to the configured values;
// an account ID that is still unset is sent as null.
func (c *Client) ListEntitlements(ctx context.Context, token, programSN string, accountID int64) (map[string]any, error) {
	if programSN == "" {
		programSN = c.creds.ProgramSN
	}
	if accountID == 0 {
		accountID = c.creds.AccountID
	}

	req := listEntitlementsRequest{ProgramSerialNumber: programSN}
	if accountID != 0 {
		req.AccountID = &accountID
	}

	c.logger(ctx).Debug().Msg("--> List FortiFlex Entitlements...")
	return c.call(ctx, "entitlements/list", token, req)
}

// RegenerateVMToken regenerates and returns the license token of a VM
// entitlement.
func (c *Client) RegenerateVMToken(ctx context.Context, token, serialNumber string) (map[string]any, error) {
	c.logger(ctx).Debug().Str("serial", serialNumber).Msg("--> FortiFlex VM License Token...")
	return c.call(ctx, "entitlements/vm/token", token, serialNumberRequest{SerialNumber: serialNumber})
}

// ReactivateEntitlement reactivates a stopped VM entitlement.
func (c *Client) ReactivateEntitlement(ctx context.Context, token, serialNumber string) (map[string]any, error) {
	c.logger(ctx).Debug().Str("serial", serialNumber).Msg("--> Reactivate the FortiFlex VM License...")
	return c.call(ctx, "entitlements/reactivate", token, serialNumberRequest{SerialNumber: serialNumber})
}

// StopEntitlement stops a VM entitlement.
func (c *Client) StopEntitlement(ctx context.Context, token, serialNumber string) (map[string]any, error) {
	c.logger(ctx).Debug().Str("serial", serialNumber).Msg("--> Stopping the FortiFlex VM License...")
	return c.call(ctx, "entitlements/stop", token, serialNumberRequest{SerialNumber: serialNumber})
}
