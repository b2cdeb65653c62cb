package fortiflex

import "context"

// ListPrograms returns the FortiFlex programs visible to the API user.
func (c *Client) ListPrograms(ctx context.Context, token string) (map[string]any, error) {
	c.logger(ctx).Debug().Msg("--> List FortiFlex Programs...")
	return c.call(ctx, "programs/list", token, struct{}{})
}
