package fortiflex

import (
	"context"
	"strconv"
)

// Parameter is one (id, value) pair of a configuration. IDs come from the
// product type's parameter table; see ProductTypes.
type Parameter struct {
	ID    int    `json:"id" jsonschema:"parameter id"`
	Value string `json:"value" jsonschema:"parameter value"`
}

type programRequest struct {
	ProgramSerialNumber string `json:"programSerialNumber"`
}

// updateConfigRequest omits an empty name or parameter list so a partial
// update leaves that part of the configuration as it is.
type updateConfigRequest struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name,omitempty"`
	Parameters []Parameter `json:"parameters,omitempty"`
}

type createConfigRequest struct {
	ProgramSerialNumber string      `json:"programSerialNumber"`
	Name                string      `json:"name"`
	ProductTypeID       int         `json:"productTypeId"`
	Parameters          []Parameter `json:"parameters"`
}

type configIDRequest struct {
	ID int64 `json:"id"`
}

// ListConfigs returns the configurations of a program. Empty programSN
// falls back to the configured value.
func (c *Client) ListConfigs(ctx context.Context, token, programSN string) (map[string]any, error) {
	if programSN == "" {
		programSN = c.creds.ProgramSN
	}
	c.logger(ctx).Debug().Msg("--> List FortiFlex Configurations...")
	return c.call(ctx, "configs/list", token, programRequest{ProgramSerialNumber: programSN})
}

// UpdateConfig renames a configuration and/or replaces its parameters.
// An empty name or nil parameter list leaves that part unchanged remotely.
func (c *Client) UpdateConfig(ctx context.Context, token string, id int64, name string, params []Parameter) (map[string]any, error) {
	c.logger(ctx).Debug().Int64("config_id", id).Strs("parameters", parameterNames(params)).Msg("--> Update FortiFlex Configuration...")
	return c.call(ctx, "configs/update", token, updateConfigRequest{
		ID:         id,
		Name:       name,
		Parameters: params,
	})
}

// CreateConfig creates a configuration for a product type in a program.
func (c *Client) CreateConfig(ctx context.Context, token, programSN, name string, productTypeID int, params []Parameter) (map[string]any, error) {
	if programSN == "" {
		programSN = c.creds.ProgramSN
	}
	if params == nil {
		params = []Parameter{}
	}
	c.logger(ctx).Debug().Int("product_type", productTypeID).Strs("parameters", parameterNames(params)).Msg("--> Create FortiFlex Configuration...")
	return c.call(ctx, "configs/create", token, createConfigRequest{
		ProgramSerialNumber: programSN,
		Name:                name,
		ProductTypeID:       productTypeID,
		Parameters:          params,
	})
}

// DisableConfig disables a configuration.
func (c *Client) DisableConfig(ctx context.Context, token string, id int64) (map[string]any, error) {
	c.logger(ctx).Debug().Int64("config_id", id).Msg("--> Disable FortiFlex Configuration...")
	return c.call(ctx, "configs/disable", token, configIDRequest{ID: id})
}

// EnableConfig re-enables a disabled configuration.
func (c *Client) EnableConfig(ctx context.Context, token string, id int64) (map[string]any, error) {
	c.logger(ctx).Debug().Int64("config_id", id).Msg("--> Enable FortiFlex Configuration...")
	return c.call(ctx, "configs/enable", token, configIDRequest{ID: id})
}

// parameterNames labels params with their catalog names for logging.
// IDs missing from the catalog are kept as "id=N".
func parameterNames(params []Parameter) []string {
	out := make([]string, 0, len(params))
	for _, p := range params {
		name := ParameterName(p.ID)
		if name == "" {
			name = "id=" + strconv.Itoa(p.ID)
		}
		out = append(out, name+"="+p.Value)
	}
	return out
}
