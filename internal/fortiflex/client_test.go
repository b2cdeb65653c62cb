package fortiflex_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"winsbygroup.com/flexmcp/internal/fortiflex"
	"winsbygroup.com/flexmcp/internal/testutil"
)

func newClient(u *testutil.Upstream) *fortiflex.Client {
	return fortiflex.New(fortiflex.Credentials{
		APIUser:     "api-user",
		APIPassword: "api-password",
		AccountID:   12345,
		ProgramSN:   "ELAVMS0000000001",
	}, fortiflex.Options{
		APIBaseURI: u.BaseURI(),
		AuthURI:    u.AuthURI(),
		Logger:     zerolog.Nop(),
	})
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestGenerateToken(t *testing.T) {
	ctx := context.Background()

	t.Run("posts password grant with configured credentials", func(t *testing.T) {
		u := testutil.NewUpstream(t)
		c := newClient(u)

		resp, err := c.GenerateToken(ctx, "", "")
		if err != nil {
			t.Fatalf("generate token: %v", err)
		}
		if resp["access_token"] != testutil.TestToken {
			t.Errorf("expected access_token %q, got %v", testutil.TestToken, resp["access_token"])
		}

		req, ok := u.Last(testutil.AuthPath)
		if !ok {
			t.Fatal("expected a request to the auth endpoint")
		}
		want := map[string]any{
			"username":   "api-user",
			"password":   "api-password",
			"client_id":  "flexvm",
			"grant_type": "password",
		}
		if !reflect.DeepEqual(req.Body, want) {
			t.Errorf("unexpected token body %v", req.Body)
		}
		if got := req.Header.Get("Authorization"); got != "" {
			t.Errorf("expected no Authorization header, got %q", got)
		}
		if got := req.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected Content-Type application/json, got %q", got)
		}
		if got := req.Header.Get("Accept"); got != "application/json" {
			t.Errorf("expected Accept application/json, got %q", got)
		}
	})

	t.Run("explicit credentials win over configured ones", func(t *testing.T) {
		u := testutil.NewUpstream(t)
		c := newClient(u)

		if _, err := c.GenerateToken(ctx, "other-user", "other-pass"); err != nil {
			t.Fatalf("generate token: %v", err)
		}
		req, _ := u.Last(testutil.AuthPath)
		if req.Body["username"] != "other-user" || req.Body["password"] != "other-pass" {
			t.Errorf("unexpected credentials in body %v", req.Body)
		}
	})
}

func TestEmptyTokenTriggersGeneration(t *testing.T) {
	ctx := context.Background()

	calls := map[string]func(c *fortiflex.Client) error{
		"entitlements/list": func(c *fortiflex.Client) error {
			_, err := c.ListEntitlements(ctx, "", "", 0)
			return err
		},
		"entitlements/vm/token": func(c *fortiflex.Client) error {
			_, err := c.RegenerateVMToken(ctx, "", "FGVMMLTM00000001")
			return err
		},
		"entitlements/reactivate": func(c *fortiflex.Client) error {
			_, err := c.ReactivateEntitlement(ctx, "", "FGVMMLTM00000001")
			return err
		},
		"entitlements/stop": func(c *fortiflex.Client) error {
			_, err := c.StopEntitlement(ctx, "", "FGVMMLTM00000001")
			return err
		},
		"configs/list": func(c *fortiflex.Client) error {
			_, err := c.ListConfigs(ctx, "", "")
			return err
		},
		"configs/update": func(c *fortiflex.Client) error {
			_, err := c.UpdateConfig(ctx, "", 42, "renamed", nil)
			return err
		},
		"programs/list": func(c *fortiflex.Client) error {
			_, err := c.ListPrograms(ctx, "")
			return err
		},
	}

	for path, call := range calls {
		t.Run(path, func(t *testing.T) {
			u := testutil.NewUpstream(t)
			c := newClient(u)

			if err := call(c); err != nil {
				t.Fatalf("call: %v", err)
			}

			paths := u.Paths()
			want := []string{testutil.AuthPath, testutil.APIPrefix + path}
			if !reflect.DeepEqual(paths, want) {
				t.Fatalf("expected requests %v, got %v", want, paths)
			}

			req, _ := u.Last(path)
			if got := req.Header.Get("Authorization"); got != "Bearer "+testutil.TestToken {
				t.Errorf("expected generated bearer token, got %q", got)
			}
		})
	}
}

func TestPassedTokenSkipsGeneration(t *testing.T) {
	u := testutil.NewUpstream(t)
	c := newClient(u)

	if _, err := c.StopEntitlement(context.Background(), "caller-token", "FGVMMLTM00000001"); err != nil {
		t.Fatalf("stop: %v", err)
	}

	paths := u.Paths()
	if len(paths) != 1 || paths[0] != testutil.APIPrefix+"entitlements/stop" {
		t.Fatalf("expected a single stop request, got %v", paths)
	}
	req, _ := u.Last("entitlements/stop")
	if got := req.Header.Get("Authorization"); got != "Bearer caller-token" {
		t.Errorf("expected caller token, got %q", got)
	}
}

func TestRequestBodies(t *testing.T) {
	ctx := context.Background()
	const tok = "tok"

	t.Run("entitlements list uses configured defaults", func(t *testing.T) {
		u := testutil.NewUpstream(t)
		c := newClient(u)

		if _, err := c.ListEntitlements(ctx, tok, "", 0); err != nil {
			t.Fatalf("list: %v", err)
		}
		req, _ := u.Last("entitlements/list")
		if got := keys(req.Body); !reflect.DeepEqual(got, []string{"accountId", "programSerialNumber"}) {
			t.Fatalf("unexpected fields %v", got)
		}
		if req.Body["accountId"] != float64(12345) {
			t.Errorf("expected accountId 12345, got %v", req.Body["accountId"])
		}
		if req.Body["programSerialNumber"] != "ELAVMS0000000001" {
			t.Errorf("expected configured program SN, got %v", req.Body["programSerialNumber"])
		}
	})

	t.Run("entitlements list sends null account when none configured", func(t *testing.T) {
		u := testutil.NewUpstream(t)
		c := fortiflex.New(fortiflex.Credentials{ProgramSN: "ELAVMS0000000002"}, fortiflex.Options{
			APIBaseURI: u.BaseURI(),
			AuthURI:    u.AuthURI(),
			Logger:     zerolog.Nop(),
		})

		if _, err := c.ListEntitlements(ctx, tok, "", 0); err != nil {
			t.Fatalf("list: %v", err)
		}
		req, _ := u.Last("entitlements/list")
		v, ok := req.Body["accountId"]
		if !ok || v != nil {
			t.Errorf("expected accountId null, got %v (present=%v)", v, ok)
		}
	})

	t.Run("entitlements list arguments override defaults", func(t *testing.T) {
		u := testutil.NewUpstream(t)
		c := newClient(u)

		if _, err := c.ListEntitlements(ctx, tok, "ELAVMS0000000099", 777); err != nil {
			t.Fatalf("list: %v", err)
		}
		req, _ := u.Last("entitlements/list")
		if req.Body["accountId"] != float64(777) || req.Body["programSerialNumber"] != "ELAVMS0000000099" {
			t.Errorf("unexpected body %v", req.Body)
		}
	})

	serialCalls := map[string]func(c *fortiflex.Client) error{
		"entitlements/vm/token": func(c *fortiflex.Client) error {
			_, err := c.RegenerateVMToken(ctx, tok, "FGVMMLTM00000001")
			return err
		},
		"entitlements/reactivate": func(c *fortiflex.Client) error {
			_, err := c.ReactivateEntitlement(ctx, tok, "FGVMMLTM00000001")
			return err
		},
		"entitlements/stop": func(c *fortiflex.Client) error {
			_, err := c.StopEntitlement(ctx, tok, "FGVMMLTM00000001")
			return err
		},
	}
	for path, call := range serialCalls {
		t.Run(path+" sends only serialNumber", func(t *testing.T) {
			u := testutil.NewUpstream(t)
			c := newClient(u)

			if err := call(c); err != nil {
				t.Fatalf("call: %v", err)
			}
			req, _ := u.Last(path)
			want := map[string]any{"serialNumber": "FGVMMLTM00000001"}
			if !reflect.DeepEqual(req.Body, want) {
				t.Errorf("unexpected body %v", req.Body)
			}
		})
	}

	t.Run("configs list sends only programSerialNumber", func(t *testing.T) {
		u := testutil.NewUpstream(t)
		c := newClient(u)

		if _, err := c.ListConfigs(ctx, tok, ""); err != nil {
			t.Fatalf("list configs: %v", err)
		}
		req, _ := u.Last("configs/list")
		want := map[string]any{"programSerialNumber": "ELAVMS0000000001"}
		if !reflect.DeepEqual(req.Body, want) {
			t.Errorf("unexpected body %v", req.Body)
		}
	})

	t.Run("configs update sends id, name and parameters", func(t *testing.T) {
		u := testutil.NewUpstream(t)
		c := newClient(u)

		params := []fortiflex.Parameter{{ID: 1, Value: "2"}, {ID: 2, Value: "UTP"}}
		if _, err := c.UpdateConfig(ctx, tok, 42, "FGT-2CPU", params); err != nil {
			t.Fatalf("update: %v", err)
		}
		req, _ := u.Last("configs/update")
		want := map[string]any{
			"id":   float64(42),
			"name": "FGT-2CPU",
			"parameters": []any{
				map[string]any{"id": float64(1), "value": "2"},
				map[string]any{"id": float64(2), "value": "UTP"},
			},
		}
		if !reflect.DeepEqual(req.Body, want) {
			t.Errorf("unexpected body %v", req.Body)
		}
	})

	t.Run("configs update with only an id sends only id", func(t *testing.T) {
		u := testutil.NewUpstream(t)
		c := newClient(u)

		if _, err := c.UpdateConfig(ctx, tok, 42, "", nil); err != nil {
			t.Fatalf("update: %v", err)
		}
		req, _ := u.Last("configs/update")
		if !reflect.DeepEqual(req.Body, map[string]any{"id": float64(42)}) {
			t.Errorf("unexpected body %v", req.Body)
		}
	})

	t.Run("configs update rename keeps parameters out of the body", func(t *testing.T) {
		u := testutil.NewUpstream(t)
		c := newClient(u)

		if _, err := c.UpdateConfig(ctx, tok, 42, "renamed", nil); err != nil {
			t.Fatalf("update: %v", err)
		}
		req, _ := u.Last("configs/update")
		if got := keys(req.Body); !reflect.DeepEqual(got, []string{"id", "name"}) {
			t.Errorf("unexpected fields %v", got)
		}
	})

	t.Run("configs create sends the full definition", func(t *testing.T) {
		u := testutil.NewUpstream(t)
		c := newClient(u)

		if _, err := c.CreateConfig(ctx, tok, "", "FWB", 3, []fortiflex.Parameter{{ID: 4, Value: "2"}}); err != nil {
			t.Fatalf("create: %v", err)
		}
		req, _ := u.Last("configs/create")
		if got := keys(req.Body); !reflect.DeepEqual(got, []string{"name", "parameters", "productTypeId", "programSerialNumber"}) {
			t.Errorf("unexpected fields %v", got)
		}
		if req.Body["productTypeId"] != float64(3) {
			t.Errorf("expected productTypeId 3, got %v", req.Body["productTypeId"])
		}
	})

	t.Run("configs enable and disable send only id", func(t *testing.T) {
		u := testutil.NewUpstream(t)
		c := newClient(u)

		if _, err := c.DisableConfig(ctx, tok, 7); err != nil {
			t.Fatalf("disable: %v", err)
		}
		if _, err := c.EnableConfig(ctx, tok, 7); err != nil {
			t.Fatalf("enable: %v", err)
		}
		for _, p := range []string{"configs/disable", "configs/enable"} {
			req, _ := u.Last(p)
			if !reflect.DeepEqual(req.Body, map[string]any{"id": float64(7)}) {
				t.Errorf("%s: unexpected body %v", p, req.Body)
			}
		}
	})
}

func TestErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("non-2xx surfaces status and body", func(t *testing.T) {
		u := testutil.NewUpstream(t)
		u.Respond("entitlements/stop", http.StatusBadRequest, `{"status":-1,"message":"Serial number not found"}`)
		c := newClient(u)

		_, err := c.StopEntitlement(ctx, "tok", "BOGUS")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		var httpErr *fortiflex.HTTPError
		if !errors.As(err, &httpErr) {
			t.Fatalf("expected HTTPError, got %T", err)
		}
		if httpErr.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", httpErr.StatusCode)
		}
		if !strings.Contains(httpErr.Body, "Serial number not found") {
			t.Errorf("expected upstream body, got %q", httpErr.Body)
		}
		if !strings.Contains(err.Error(), "400") || !strings.Contains(err.Error(), "Serial number not found") {
			t.Errorf("error text should carry status and body: %q", err.Error())
		}
	})

	t.Run("auth failure stops before the API call", func(t *testing.T) {
		u := testutil.NewUpstream(t)
		u.Respond(testutil.AuthPath, http.StatusUnauthorized, `{"error":"invalid_grant"}`)
		c := newClient(u)

		_, err := c.ListEntitlements(ctx, "", "", 0)
		var httpErr *fortiflex.HTTPError
		if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401 HTTPError, got %v", err)
		}
		if paths := u.Paths(); len(paths) != 1 {
			t.Errorf("expected only the auth request, got %v", paths)
		}
	})

	t.Run("token response without access_token", func(t *testing.T) {
		u := testutil.NewUpstream(t)
		u.Respond(testutil.AuthPath, http.StatusOK, `{"status":"success"}`)
		c := newClient(u)

		_, err := c.ListConfigs(ctx, "", "")
		var unexpected *fortiflex.UnexpectedError
		if !errors.As(err, &unexpected) {
			t.Fatalf("expected UnexpectedError, got %T (%v)", err, err)
		}
	})

	t.Run("non-JSON body is unexpected", func(t *testing.T) {
		u := testutil.NewUpstream(t)
		u.Respond("configs/list", http.StatusOK, `<html>maintenance</html>`)
		c := newClient(u)

		_, err := c.ListConfigs(ctx, "tok", "")
		var unexpected *fortiflex.UnexpectedError
		if !errors.As(err, &unexpected) {
			t.Fatalf("expected UnexpectedError, got %T (%v)", err, err)
		}
	})

	t.Run("network failure is a request error", func(t *testing.T) {
		dead := httptest.NewServer(http.NotFoundHandler())
		url := dead.URL
		dead.Close()

		c := fortiflex.New(fortiflex.Credentials{}, fortiflex.Options{
			APIBaseURI: url + testutil.APIPrefix,
			AuthURI:    url + testutil.AuthPath,
			Logger:     zerolog.Nop(),
		})

		_, err := c.StopEntitlement(ctx, "tok", "FGVMMLTM00000001")
		var reqErr *fortiflex.RequestError
		if !errors.As(err, &reqErr) {
			t.Fatalf("expected RequestError, got %T (%v)", err, err)
		}
	})

	t.Run("cancelled context is a request error", func(t *testing.T) {
		u := testutil.NewUpstream(t)
		c := newClient(u)

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := c.StopEntitlement(cctx, "tok", "FGVMMLTM00000001")
		var reqErr *fortiflex.RequestError
		if !errors.As(err, &reqErr) {
			t.Fatalf("expected RequestError, got %T (%v)", err, err)
		}
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled in chain, got %v", err)
		}
	})
}

// waitForClosed polls until the upstream has no open connections left.
func waitForClosed(t *testing.T, u *testutil.Upstream) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for u.OpenConns() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected all connections closed, %d still open", u.OpenConns())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestCallsCloseTheirConnections(t *testing.T) {
	ctx := context.Background()

	t.Run("with bearer token", func(t *testing.T) {
		u := testutil.NewUpstream(t)
		c := newClient(u)

		for i := 0; i < 10; i++ {
			if _, err := c.StopEntitlement(ctx, "tok", "FGVMMLTM00000001"); err != nil {
				t.Fatalf("call %d: %v", i, err)
			}
		}
		waitForClosed(t, u)
	})

	t.Run("with generated token", func(t *testing.T) {
		u := testutil.NewUpstream(t)
		c := newClient(u)

		for i := 0; i < 5; i++ {
			if _, err := c.ListConfigs(ctx, "", ""); err != nil {
				t.Fatalf("call %d: %v", i, err)
			}
		}
		if got := len(u.Requests()); got != 10 {
			t.Fatalf("expected 10 requests, got %d", got)
		}
		waitForClosed(t, u)
	})

	t.Run("after an upstream error", func(t *testing.T) {
		u := testutil.NewUpstream(t)
		u.Respond("configs/list", http.StatusInternalServerError, `{"message":"boom"}`)
		c := newClient(u)

		for i := 0; i < 5; i++ {
			if _, err := c.ListConfigs(ctx, "tok", ""); err == nil {
				t.Fatalf("call %d: expected error", i)
			}
		}
		waitForClosed(t, u)
	})
}

func TestConfigCallsLogParameterNames(t *testing.T) {
	ctx := context.Background()
	u := testutil.NewUpstream(t)

	var buf bytes.Buffer
	c := fortiflex.New(fortiflex.Credentials{ProgramSN: "ELAVMS0000000001"}, fortiflex.Options{
		APIBaseURI: u.BaseURI(),
		AuthURI:    u.AuthURI(),
		Logger:     zerolog.New(&buf).Level(zerolog.DebugLevel),
	})

	params := []fortiflex.Parameter{{ID: 10, Value: "5"}, {ID: 9999, Value: "x"}}
	if _, err := c.UpdateConfig(ctx, "tok", 42, "", params); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := c.CreateConfig(ctx, "tok", "", "FGT", 1, params); err != nil {
		t.Fatalf("create: %v", err)
	}

	out := buf.String()
	if strings.Count(out, "Number of VDOMs=5") != 2 {
		t.Errorf("expected catalog names in both debug lines, got %q", out)
	}
	if !strings.Contains(out, "id=9999=x") {
		t.Errorf("expected unknown id kept as-is, got %q", out)
	}
}
