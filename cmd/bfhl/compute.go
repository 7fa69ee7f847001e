package main

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/deppfellow/bfhl/internal/config"
	"github.com/deppfellow/bfhl/internal/errs"
	"github.com/deppfellow/bfhl/internal/model"
	"github.com/deppfellow/bfhl/internal/server"
	"github.com/deppfellow/bfhl/internal/service"
	"github.com/deppfellow/bfhl/internal/validation"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// errFailureEnvelope makes the process exit non-zero after a failure
// envelope has already been printed.
var errFailureEnvelope = errors.New("request failed")

func newComputeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute [json-body]",
		Short: "Evaluate one /bfhl request body without starting the server",
		Long: `compute runs a request body through the same validation and dispatch as
POST /bfhl and prints the response envelope. The body is read from the
argument, or from stdin when the argument is omitted or "-".`,
		Example: `  bfhl compute '{"fibonacci": 7}'
  echo '{"lcm": [4, 6]}' | bfhl compute`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			log := zerolog.New(cmd.ErrOrStderr()).Level(zerolog.WarnLevel)
			srv, err := server.New(cfg, &log, nil)
			if err != nil {
				return err
			}

			services, err := service.NewServices(srv)
			if err != nil {
				return err
			}

			envelope := compute(cmd.Context(), cfg, services.BFHL, body, &log)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(envelope); err != nil {
				return err
			}

			if !envelope.IsSuccess {
				return errFailureEnvelope
			}
			return nil
		},
	}
	return cmd
}

func readBody(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 1 && args[0] != "-" {
		return []byte(args[0]), nil
	}

	body, err := io.ReadAll(stdin)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read stdin")
	}
	return body, nil
}

// compute evaluates body exactly like the HTTP pipeline and returns the
// envelope the server would have written.
func compute(ctx context.Context, cfg *config.Config, svc *service.BFHLService, body []byte, log *zerolog.Logger) model.Envelope {
	email := cfg.Identity.OfficialEmail

	req := model.NewBFHLRequest(model.Limits{
		MaxFibonacciTerms: cfg.Compute.MaxFibonacciTerms,
		MaxArrayLength:    cfg.Compute.MaxArrayLength,
	})

	if len(strings.TrimSpace(string(body))) == 0 {
		return model.Failure(email, validation.MessageInvalidBody)
	}

	if err := validation.DecodeAndValidate(body, req); err != nil {
		return model.Failure(email, clientMessage(err))
	}

	data, err := svc.Execute(ctx, req.Operation())
	if err != nil {
		log.Error().Err(err).Msg("operation failed")
		return model.Failure(email, clientMessage(err))
	}

	return model.Success(email, data)
}

func clientMessage(err error) string {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) && httpErr.Status < 500 {
		return httpErr.Message
	}
	return errs.MessageInternalError
}
