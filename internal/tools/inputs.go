package tools

import "winsbygroup.com/flexmcp/internal/fortiflex"

// -------------------------
// Token
// -------------------------

type GenerateTokenInput struct {
	APIUser     string `json:"api_user,omitempty" jsonschema:"API username, defaults to FORTIFLEX_API_USER"`
	APIPassword string `json:"api_password,omitempty" jsonschema:"API password, defaults to FORTIFLEX_API_PASSWORD"`
}

// -------------------------
// Entitlements
// -------------------------

type EntitlementsListInput struct {
	AccessToken string `json:"access_token,omitempty" jsonschema:"bearer token, leave empty to generate one"`
	ProgramSN   string `json:"program_sn,omitempty" jsonschema:"program serial number, defaults to FORTIFLEX_PROGRAM_SN"`
	AccountID   int64  `json:"account_id,omitempty" jsonschema:"account ID, defaults to FORTIFLEX_ACCOUNT_ID"`
}

type SerialNumberInput struct {
	AccessToken  string `json:"access_token,omitempty" jsonschema:"bearer token, leave empty to generate one"`
	SerialNumber string `json:"serial_number" jsonschema:"serial number of the VM entitlement"`
}

// -------------------------
// Configurations
// -------------------------

type ConfigsListInput struct {
	AccessToken string `json:"access_token,omitempty" jsonschema:"bearer token, leave empty to generate one"`
	ProgramSN   string `json:"program_sn,omitempty" jsonschema:"program serial number, defaults to FORTIFLEX_PROGRAM_SN"`
}

type ConfigsUpdateInput struct {
	AccessToken string                `json:"access_token,omitempty" jsonschema:"bearer token, leave empty to generate one"`
	ConfigID    int64                 `json:"config_id" jsonschema:"ID of the configuration to update"`
	Name        string                `json:"name,omitempty" jsonschema:"new configuration name"`
	Parameters  []fortiflex.Parameter `json:"parameters,omitempty" jsonschema:"ordered list of parameter id/value pairs"`
}

type ConfigsCreateInput struct {
	AccessToken   string                `json:"access_token,omitempty" jsonschema:"bearer token, leave empty to generate one"`
	ProgramSN     string                `json:"program_sn,omitempty" jsonschema:"program serial number, defaults to FORTIFLEX_PROGRAM_SN"`
	Name          string                `json:"name" jsonschema:"configuration name"`
	ProductTypeID int                   `json:"product_type_id" jsonschema:"product type ID, see config_parameters"`
	Parameters    []fortiflex.Parameter `json:"parameters,omitempty" jsonschema:"ordered list of parameter id/value pairs"`
}

type ConfigIDInput struct {
	AccessToken string `json:"access_token,omitempty" jsonschema:"bearer token, leave empty to generate one"`
	ConfigID    int64  `json:"config_id" jsonschema:"ID of the configuration"`
}

type ConfigParametersInput struct {
	ProductType string `json:"product_type,omitempty" jsonschema:"product type ID or name, empty lists all"`
}

type ConfigParametersOutput struct {
	ProductTypes []fortiflex.ProductType `json:"productTypes"`
}

// -------------------------
// Programs
// -------------------------

type ProgramsListInput struct {
	AccessToken string `json:"access_token,omitempty" jsonschema:"bearer token, leave empty to generate one"`
}
