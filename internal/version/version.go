package version

import (
	"fmt"
	"strconv"
	"time"
)

// Version is the application version. Can be overridden at build time via:
//
//	go build -ldflags "-X winsbygroup.com/flexmcp/internal/version.Version=1.2.3"
var Version = "1.0"

// RepoURL is the project repository URL. Can be overridden at build time via:
//
//	go build -ldflags "-X winsbygroup.com/flexmcp/internal/version.RepoURL=https://github.com/yourfork/flexmcp"
var RepoURL = "https://github.com/winsbygroup/flexmcp"

// Name is the implementation name reported to MCP clients.
const Name = "mcp-fortiflex"

// Banner prints identifying information about the server.
func Banner() string {
	y := strconv.Itoa(time.Now().Year())
	copyright := "Copyright 2025-" + y + " Winsby Group LLC. All rights reserved."

	return fmt.Sprintf("%s\nFlexmcp (v%s)\n%s\n", product(), Version, copyright)
}

func product() string {
	// http://patorjk.com/software/taag/#p=display&f=Standard&t=Flexmcp (full width)
	// it includes back ticks, which makes this more difficult (replace with `+"`"+`).

	const s = `
  _____   _
 |  ___| | |   ___  __  __  _ __ ___     ___   _ __
 | |_    | |  / _ \ \ \/ / | '_ ` + "`" + ` _ \   / __| | '_ \
 |  _|   | | |  __/  >  <  | | | | | | | (__  | |_) |
 |_|     |_|  \___| /_/\_\ |_| |_| |_|  \___| | .__/
                                              |_|
`
	return s
}
