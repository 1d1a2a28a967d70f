package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/Harshitk-cp/voxbridge/internal/config"
	"github.com/Harshitk-cp/voxbridge/internal/domain"
	"github.com/Harshitk-cp/voxbridge/internal/logging"
	"github.com/Harshitk-cp/voxbridge/internal/provider"
	"github.com/Harshitk-cp/voxbridge/internal/service"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newCreateCmd() *cobra.Command {
	var (
		file   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an agent from a YAML or JSON request file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			if dryRun {
				if err := req.Validate(); err != nil {
					return describe(err)
				}
				payloads, err := provider.Preview(req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), payloads)
			}

			level := logLevel
			if level == "" {
				level = config.LogLevel()
			}
			logger, err := logging.New(level)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			providers, err := config.LoadProviders()
			if err != nil {
				return err
			}
			registry, err := provider.NewRegistry(providers,
				provider.WithObserver(service.NewPhaseLogger(nil, logger)),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			res, err := service.NewAgentService(registry, logger).CreateAgent(ctx, req)
			if err != nil {
				return describe(err)
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "request file, - for stdin")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the provider payloads without sending them")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// readRequest decodes a request file. YAML is a superset of JSON so both
// formats go through the YAML decoder.
func readRequest(stdin io.Reader, path string) (*domain.UnifiedAgentRequest, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}

	var req domain.UnifiedAgentRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parse request: %w", err)
	}
	return &req, nil
}

// describe expands errors whose detail would otherwise be lost on a terminal.
func describe(err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		reasons := make([]string, 0, len(ve.Fields))
		for _, reason := range ve.Fields {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)
		return errors.New(ve.Message + "\n  " + strings.Join(reasons, "\n  "))
	}
	var upErr *domain.UpstreamError
	if errors.As(err, &upErr) {
		return fmt.Errorf("%s phase %s failed: %w", upErr.Provider, upErr.Phase, err)
	}
	return err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
