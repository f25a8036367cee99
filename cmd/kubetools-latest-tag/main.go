// Command kubetools-latest-tag is a diagnostics plugin that flags container
// images which are not pinned to a tag or digest. It is started by the host;
// running it directly only prints go-plugin's handshake error.
package main

import (
	"github.com/itowlson/vscode-kubernetes-tools/pkg/lifecycle"
)

var version = "dev"

func main() {
	lifecycle.Serve(latestTag{}, lifecycle.ServeOpts{Version: version})
}
