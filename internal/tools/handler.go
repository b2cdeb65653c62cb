package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"winsbygroup.com/flexmcp/internal/fortiflex"
)

type Handler struct {
	Client *fortiflex.Client
	log    zerolog.Logger
}

func NewHandler(c *fortiflex.Client, logger zerolog.Logger) *Handler {
	return &Handler{
		Client: c,
		log:    logger.With().Str("component", "tools").Logger(),
	}
}

// relay runs one FortiFlex call with a call-scoped logger in ctx. Errors are
// returned unchanged; the SDK reports them to the caller as tool errors.
func (h *Handler) relay(ctx context.Context, tool string, fn func(context.Context) (map[string]any, error)) (*mcp.CallToolResult, map[string]any, error) {
	log := h.log.With().Str("tool", tool).Str("call_id", uuid.NewString()).Logger()
	ctx = log.WithContext(ctx)

	start := time.Now()
	out, err := fn(ctx)
	if err != nil {
		log.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("tool call failed")
		return nil, nil, err
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("tool call")
	return nil, out, nil
}

// generate_token
func (h *Handler) GenerateToken(ctx context.Context, _ *mcp.CallToolRequest, in GenerateTokenInput) (*mcp.CallToolResult, map[string]any, error) {
	return h.relay(ctx, GenerateToken, func(ctx context.Context) (map[string]any, error) {
		return h.Client.GenerateToken(ctx, in.APIUser, in.APIPassword)
	})
}

// entitlements_list
func (h *Handler) EntitlementsList(ctx context.Context, _ *mcp.CallToolRequest, in EntitlementsListInput) (*mcp.CallToolResult, map[string]any, error) {
	return h.relay(ctx, EntitlementsList, func(ctx context.Context) (map[string]any, error) {
		return h.Client.ListEntitlements(ctx, in.AccessToken, in.ProgramSN, in.AccountID)
	})
}

// entitlements_vm_token
func (h *Handler) EntitlementsVMToken(ctx context.Context, _ *mcp.CallToolRequest, in SerialNumberInput) (*mcp.CallToolResult, map[string]any, error) {
	return h.relay(ctx, EntitlementsVMToken, func(ctx context.Context) (map[string]any, error) {
		return h.Client.RegenerateVMToken(ctx, in.AccessToken, in.SerialNumber)
	})
}

// entitlements_reactivate
func (h *Handler) EntitlementsReactivate(ctx context.Context, _ *mcp.CallToolRequest, in SerialNumberInput) (*mcp.CallToolResult, map[string]any, error) {
	return h.relay(ctx, EntitlementsReactivate, func(ctx context.Context) (map[string]any, error) {
		return h.Client.ReactivateEntitlement(ctx, in.AccessToken, in.SerialNumber)
	})
}

// entitlements_stop
func (h *Handler) EntitlementsStop(ctx context.Context, _ *mcp.CallToolRequest, in SerialNumberInput) (*mcp.CallToolResult, map[string]any, error) {
	return h.relay(ctx, EntitlementsStop, func(ctx context.Context) (map[string]any, error) {
		return h.Client.StopEntitlement(ctx, in.AccessToken, in.SerialNumber)
	})
}

// configs_list
func (h *Handler) ConfigsList(ctx context.Context, _ *mcp.CallToolRequest, in ConfigsListInput) (*mcp.CallToolResult, map[string]any, error) {
	return h.relay(ctx, ConfigsList, func(ctx context.Context) (map[string]any, error) {
		return h.Client.ListConfigs(ctx, in.AccessToken, in.ProgramSN)
	})
}

// configs_update
func (h *Handler) ConfigsUpdate(ctx context.Context, _ *mcp.CallToolRequest, in ConfigsUpdateInput) (*mcp.CallToolResult, map[string]any, error) {
	return h.relay(ctx, ConfigsUpdate, func(ctx context.Context) (map[string]any, error) {
		return h.Client.UpdateConfig(ctx, in.AccessToken, in.ConfigID, in.Name, in.Parameters)
	})
}

// configs_create
func (h *Handler) ConfigsCreate(ctx context.Context, _ *mcp.CallToolRequest, in ConfigsCreateInput) (*mcp.CallToolResult, map[string]any, error) {
	return h.relay(ctx, ConfigsCreate, func(ctx context.Context) (map[string]any, error) {
		return h.Client.CreateConfig(ctx, in.AccessToken, in.ProgramSN, in.Name, in.ProductTypeID, in.Parameters)
	})
}

// configs_disable
func (h *Handler) ConfigsDisable(ctx context.Context, _ *mcp.CallToolRequest, in ConfigIDInput) (*mcp.CallToolResult, map[string]any, error) {
	return h.relay(ctx, ConfigsDisable, func(ctx context.Context) (map[string]any, error) {
		return h.Client.DisableConfig(ctx, in.AccessToken, in.ConfigID)
	})
}

// configs_enable
func (h *Handler) ConfigsEnable(ctx context.Context, _ *mcp.CallToolRequest, in ConfigIDInput) (*mcp.CallToolResult, map[string]any, error) {
	return h.relay(ctx, ConfigsEnable, func(ctx context.Context) (map[string]any, error) {
		return h.Client.EnableConfig(ctx, in.AccessToken, in.ConfigID)
	})
}

// programs_list
func (h *Handler) ProgramsList(ctx context.Context, _ *mcp.CallToolRequest, in ProgramsListInput) (*mcp.CallToolResult, map[string]any, error) {
	return h.relay(ctx, ProgramsList, func(ctx context.Context) (map[string]any, error) {
		return h.Client.ListPrograms(ctx, in.AccessToken)
	})
}

// config_parameters answers from the static catalog; no request is sent.
func (h *Handler) ConfigParameters(ctx context.Context, _ *mcp.CallToolRequest, in ConfigParametersInput) (*mcp.CallToolResult, ConfigParametersOutput, error) {
	if in.ProductType == "" {
		return nil, ConfigParametersOutput{ProductTypes: fortiflex.ProductTypes()}, nil
	}

	pt, ok := fortiflex.LookupProductType(in.ProductType)
	if !ok {
		return nil, ConfigParametersOutput{}, fmt.Errorf("unknown product type %q", in.ProductType)
	}
	return nil, ConfigParametersOutput{ProductTypes: []fortiflex.ProductType{pt}}, nil
}
