package cli

import (
	"fmt"

	"github.com/Harshitk-cp/voxbridge/internal/domain"
	"github.com/Harshitk-cp/voxbridge/internal/provider"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInitCmd() *cobra.Command {
	var providerTag string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Print a request file template filled with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := domain.ParseProvider(providerTag)
			if err != nil {
				return fmt.Errorf("%w: %q", err, providerTag)
			}

			out, err := yaml.Marshal(template(p))
			if err != nil {
				return fmt.Errorf("marshal template: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&providerTag, "provider", string(domain.ProviderRetell), "target provider (vapi, retell)")
	return cmd
}

func template(p domain.Provider) *domain.UnifiedAgentRequest {
	d := provider.Defaults
	temperature := d.Temperature
	greeting := d.Greeting

	req := &domain.UnifiedAgentRequest{
		Provider:       p,
		Name:           "My Agent",
		SystemPrompt:   "You are a helpful assistant",
		Temperature:    &temperature,
		InitialMessage: &greeting,
	}

	switch p {
	case domain.ProviderVapi:
		modelProvider, voiceProvider := d.ModelProvider, d.VoiceProvider
		req.Model = d.ModelName
		req.ModelProvider = &modelProvider
		req.VoiceProvider = &voiceProvider
		req.VoiceID = d.VapiVoiceID
	case domain.ProviderRetell:
		language := d.Language
		req.Model = d.S2SModel
		req.VoiceID = d.RetellVoiceID
		req.Language = &language
	}
	return req
}
