package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/civi-client/pkg/civi"
)

// NewCallCommand creates the call command.
func NewCallCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "call ENTITY ACTION [PARAM=VALUE...]",
		Short: "Call an API action on an entity",
		Long: `Call any API action on any entity, e.g.:

  civi call Contact get id=2
  civi call Contact create contact_type=Organization organization_name="pretty org"
  civi call Contact get 'where=[["contact_type","=","Organization"]]' limit=5

Parameter values are decoded as JSON where possible; anything that does not
parse is passed as a plain string. Comparison operators go into the key,
followed by their own = separator: 'age >==18' queries for age >= 18.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[2:])
			if err != nil {
				return err
			}

			api, err := newClient()
			if err != nil {
				return err
			}

			result, err := api.Call(cmd.Context(), args[0], args[1], params)
			if err != nil {
				return err
			}

			return renderResult(result, viper.GetString("output"))
		},
	}
}

// parseParams turns PARAM=VALUE arguments into a call parameter mapping.
// Values are decoded as JSON where possible so numbers, booleans, arrays,
// and objects survive; everything else passes through as a string.
func parseParams(args []string) (civi.Params, error) {
	params := civi.Params{}

	for _, arg := range args {
		key, value, found := splitArg(arg)
		if !found || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected PARAM=VALUE", arg)
		}

		var decoded any
		if err := json.Unmarshal([]byte(value), &decoded); err == nil {
			params[key] = decoded
		} else {
			params[key] = value
		}
	}

	return params, nil
}

// splitArg separates PARAM=VALUE at the first = that does not complete a
// comparison operator, so keys like "age >=" stay intact: 'age >==18'
// yields ("age >=", "18").
func splitArg(arg string) (key, value string, found bool) {
	for i := 0; i < len(arg); i++ {
		if arg[i] != '=' {
			continue
		}

		if i > 0 && (arg[i-1] == '>' || arg[i-1] == '<' || arg[i-1] == '!') {
			continue
		}

		return arg[:i], arg[i+1:], true
	}

	return arg, "", false
}
