package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:   "bfhl",
		Short: "BFHL computation API",
		Long: `bfhl serves POST /bfhl (fibonacci, prime, hcf, lcm and AI operations)
and GET /health. Configuration is read from the environment (BFHL_* and
the plain PORT, OFFICIAL_EMAIL and GEMINI_API_KEY variables) and from a
.env file in the working directory.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         serve.RunE,
	}

	root.AddCommand(serve, newComputeCmd())
	return root
}
