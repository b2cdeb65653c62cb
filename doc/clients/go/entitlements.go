// sample implementation, do not build or test
//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// apiKeyTransport sets X-API-Key on every request to flexmcp.
type apiKeyTransport struct {
	key string
}

func (a apiKeyTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("X-API-Key", a.key)
	return http.DefaultTransport.RoundTrip(r)
}

// ListEntitlements calls entitlements_list on a flexmcp server started with
// -http. An empty token lets the server generate one from its own credentials.
func ListEntitlements(ctx context.Context, endpoint, apiKey, programSN string) (string, error) {
	client := mcp.NewClient(&mcp.Implementation{Name: "flexmcp-sample", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Transport: apiKeyTransport{key: apiKey}},
	}, nil)
	if err != nil {
		return "", err
	}
	defer cs.Close()

	args := map[string]any{}
	if programSN != "" {
		args["program_sn"] = programSN
	}

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: "entitlements_list", Arguments: args})
	if err != nil {
		return "", err
	}

	var out string
	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			out += tc.Text
		}
	}
	if res.IsError {
		return "", fmt.Errorf("entitlements_list: %s", out)
	}
	return out, nil
}

func main() {
	out, err := ListEntitlements(context.Background(),
		"http://localhost:8080/mcp",
		os.Getenv("FLEXMCP_API_KEY"),
		os.Getenv("FORTIFLEX_PROGRAM_SN"),
	)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out)
}
