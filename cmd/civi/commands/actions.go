package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/civi-client/pkg/civi"
)

// NewActionsCommand creates the actions command.
func NewActionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "actions",
		Short: "List the standard actions of the configured API version",
		Long: `List the standard actions of the configured API version.

The remote side stays authoritative: entities can carry extra actions, and
unknown actions are rejected remotely, not here.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			version := civi.Version(viper.GetString("api-version"))
			if !version.Valid() {
				return fmt.Errorf("%w: %q", civi.ErrUnsupportedVersion, version)
			}

			actions := civi.KnownActions(version)

			output := viper.GetString("output")
			switch output {
			case "json":
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")

				return encoder.Encode(actions)
			case "yaml":
				encoder := yaml.NewEncoder(os.Stdout)

				return encoder.Encode(actions)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Action")

				for _, action := range actions {
					_ = table.Append(action)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}
