// Command kubetools lints Kubernetes manifests, walks the cluster explorer
// tree and inspects the extension API from the command line.
package main

import (
	"context"
	"os"
	"os/signal"
)

// version is set at build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
