package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/civi-client/pkg/civi"
	"github.com/fivetwenty-io/civi-client/pkg/civiclient"
)

// configFromViper assembles the client configuration from flags, config
// file, and CIVI_* environment variables.
func configFromViper() *civi.Config {
	logger := setupLogger(viper.GetBool("verbose"))

	return &civi.Config{
		Version:        civi.Version(viper.GetString("api-version")),
		Transport:      civi.TransportKind(viper.GetString("transport")),
		Endpoint:       viper.GetString("endpoint"),
		APIKey:         viper.GetString("api-key"),
		SiteKey:        viper.GetString("site-key"),
		SkipTLSVerify:  viper.GetBool("skip-ssl-validation"),
		Executable:     viper.GetString("cv"),
		WorkDir:        viper.GetString("cwd"),
		ContextCommand: viper.GetString("context"),
		Logger:         &logger,
	}
}

// newClient builds an API client, prompting for a missing REST API key when
// running interactively.
func newClient() (*civi.API, error) {
	cfg := configFromViper()

	if cfg.Transport == civi.TransportREST && cfg.APIKey == "" {
		key, err := promptAPIKey()
		if err != nil {
			return nil, err
		}

		cfg.APIKey = key
	}

	return civiclient.New(cfg)
}

// promptAPIKey reads the API key from the terminal without echo.
func promptAPIKey() (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", civi.ErrAPIKeyRequired
	}

	fmt.Fprint(os.Stderr, "API key: ")

	key, err := term.ReadPassword(int(syscall.Stdin))

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("reading API key: %w", err)
	}

	return strings.TrimSpace(string(key)), nil
}

// setupLogger configures the zerolog logger for CLI use.
func setupLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}

	return zerolog.New(output).With().Timestamp().Logger().Level(level)
}

// renderResult writes a result in the requested output format.
func renderResult(result *civi.Result, output string) error {
	switch output {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(result.Records())
	case "yaml":
		encoder := yaml.NewEncoder(os.Stdout)

		return encoder.Encode(result.Records())
	default:
		return renderTable(result)
	}
}

// renderTable prints records as a table whose columns are the union of the
// record field names.
func renderTable(result *civi.Result) error {
	records := result.Records()
	if len(records) == 0 {
		fmt.Printf("No records (count %d)\n", result.Count())

		return nil
	}

	columns := columnNames(records)

	header := make([]any, 0, len(columns))
	for _, column := range columns {
		header = append(header, column)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header(header...)

	for _, record := range records {
		row := make([]any, 0, len(columns))
		for _, column := range columns {
			row = append(row, formatCell(record[column]))
		}

		_ = table.Append(row...)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	fmt.Printf("%d of %d record(s)\n", result.Len(), result.Count())

	return nil
}

func columnNames(records []civi.Record) []string {
	seen := make(map[string]bool)

	var columns []string

	for _, record := range records {
		for name := range record {
			if !seen[name] {
				seen[name] = true

				columns = append(columns, name)
			}
		}
	}

	sort.Strings(columns)

	// id first when present
	for i, name := range columns {
		if name == "id" {
			copy(columns[1:i+1], columns[:i])
			columns[0] = "id"

			break
		}
	}

	return columns
}

func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}

		return fmt.Sprintf("%v", v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}

		return string(encoded)
	}
}
