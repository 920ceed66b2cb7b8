package main

import (
	"context"

	"ulearning-export/cmd/ulearning-cli/commands"
	"ulearning-export/lib/telemetry"
)

func main() {
	ctx := context.Background()
	telemetry.SetupFromEnv(ctx, "ulearning-cli")
	defer telemetry.Shutdown(ctx)
	commands.ExecuteContext(ctx)
}
