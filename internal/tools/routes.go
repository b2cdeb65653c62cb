package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names
const (
	GenerateToken          = "generate_token"
	EntitlementsList       = "entitlements_list"
	EntitlementsVMToken    = "entitlements_vm_token"
	EntitlementsReactivate = "entitlements_reactivate"
	EntitlementsStop       = "entitlements_stop"
	ConfigsList            = "configs_list"
	ConfigsUpdate          = "configs_update"
	ConfigsCreate          = "configs_create"
	ConfigsDisable         = "configs_disable"
	ConfigsEnable          = "configs_enable"
	ProgramsList           = "programs_list"
	ConfigParameters       = "config_parameters"
)

var descriptions = map[string]string{
	GenerateToken:          "Get a FortiFlex token.",
	EntitlementsList:       "Get all existing entitlements on FortiFlex for a given account ID or program serial number.",
	EntitlementsVMToken:    "Regenerate the VM license token from FortiFlex for a given serial number.",
	EntitlementsReactivate: "Reactivate the VM license from FortiFlex for a given serial number.",
	EntitlementsStop:       "Stop the VM license from FortiFlex for a given serial number.",
	ConfigsList:            "List the FortiFlex configurations of a program serial number.",
	ConfigsUpdate:          "Update the name and/or parameters of a FortiFlex configuration.",
	ConfigsCreate:          "Create a FortiFlex configuration for a product type.",
	ConfigsDisable:         "Disable a FortiFlex configuration.",
	ConfigsEnable:          "Enable a disabled FortiFlex configuration.",
	ProgramsList:           "List the FortiFlex programs available to the API user.",
	ConfigParameters:       "Look up FortiFlex product types and their configuration parameter IDs.",
}

var order = []string{
	GenerateToken,
	EntitlementsList,
	EntitlementsVMToken,
	EntitlementsReactivate,
	EntitlementsStop,
	ConfigsList,
	ConfigsUpdate,
	ConfigsCreate,
	ConfigsDisable,
	ConfigsEnable,
	ProgramsList,
	ConfigParameters,
}

func tool(name string) *mcp.Tool {
	return &mcp.Tool{Name: name, Description: descriptions[name]}
}

// Describe returns name/description pairs in registration order.
func Describe() []*mcp.Tool {
	out := make([]*mcp.Tool, 0, len(order))
	for _, name := range order {
		out = append(out, tool(name))
	}
	return out
}

// RegisterTools wires every FortiFlex tool onto the MCP server.
func RegisterTools(s *mcp.Server, h *Handler) {

	// Token
	mcp.AddTool(s, tool(GenerateToken), h.GenerateToken)

	// Entitlements
	mcp.AddTool(s, tool(EntitlementsList), h.EntitlementsList)
	mcp.AddTool(s, tool(EntitlementsVMToken), h.EntitlementsVMToken)
	mcp.AddTool(s, tool(EntitlementsReactivate), h.EntitlementsReactivate)
	mcp.AddTool(s, tool(EntitlementsStop), h.EntitlementsStop)

	// Configurations
	mcp.AddTool(s, tool(ConfigsList), h.ConfigsList)
	mcp.AddTool(s, tool(ConfigsUpdate), h.ConfigsUpdate)
	mcp.AddTool(s, tool(ConfigsCreate), h.ConfigsCreate)
	mcp.AddTool(s, tool(ConfigsDisable), h.ConfigsDisable)
	mcp.AddTool(s, tool(ConfigsEnable), h.ConfigsEnable)

	// Programs
	mcp.AddTool(s, tool(ProgramsList), h.ProgramsList)

	// Parameter reference (offline)
	mcp.AddTool(s, tool(ConfigParameters), h.ConfigParameters)
}
