// Package console implements the subprocess transport, running the local
// `cv` tool against a CiviCRM installation.
package console

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fivetwenty-io/civi-client/internal/constants"
	"github.com/fivetwenty-io/civi-client/pkg/civi"
)

var errEmptyOutput = errors.New("subprocess produced no output")

// Transport implements civi.Transport by invoking cv as a subprocess with
// the working directory set to the CiviCRM root.
type Transport struct {
	executable string
	workDir    string
	contextCmd []string
	env        []string
	timeout    time.Duration
	logger     zerolog.Logger
}

// New creates a console transport from the given configuration.
func New(cfg *civi.Config) *Transport {
	executable := cfg.Executable
	if executable == "" {
		executable = constants.DefaultExecutable
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Transport{
		executable: executable,
		workDir:    cfg.WorkDir,
		contextCmd: strings.Fields(cfg.ContextCommand),
		env:        cfg.Env,
		timeout:    cfg.ExecTimeout,
		logger:     logger,
	}
}

// Execute runs one cv invocation and returns its decoded standard output.
func (t *Transport) Execute(ctx context.Context, req *civi.Request) (any, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	args, err := buildArgs(req)
	if err != nil {
		return nil, err
	}

	argv := append([]string{t.executable}, args...)
	if len(t.contextCmd) > 0 {
		argv = append(append([]string{}, t.contextCmd...), argv...)
	}

	t.logger.Debug().
		Strs("argv", argv).
		Str("dir", t.workDir).
		Msg("running command")

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = t.workDir
	cmd.Env = append(os.Environ(), t.env...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitErr := &exec.ExitError{}
		if errors.As(err, &exitErr) {
			return nil, &civi.SubprocessError{
				Command:  strings.Join(argv, " "),
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
			}
		}

		// The process never started: executable missing, bad working
		// directory, or the context cancelled before spawn.
		return nil, &civi.ConnectionError{Endpoint: argv[0], Err: err}
	}

	t.logger.Debug().
		Int("stdout_bytes", stdout.Len()).
		Msg("command finished")

	if stderr.Len() > 0 {
		t.logger.Warn().Str("stderr", strings.TrimSpace(stderr.String())).Msg("command wrote to stderr")
	}

	output := bytes.TrimSpace(stdout.Bytes())
	if len(output) == 0 {
		return nil, &civi.DecodeError{Raw: "", Err: errEmptyOutput}
	}

	var decoded any
	if err := json.Unmarshal(output, &decoded); err != nil {
		return nil, &civi.DecodeError{Raw: string(output), Err: err}
	}

	return decoded, nil
}

// buildArgs assembles the cv argument list. v3 takes key=value pairs, v4 a
// single JSON document; both request structured output.
func buildArgs(req *civi.Request) ([]string, error) {
	call := req.Entity + "." + req.Action

	switch req.Version {
	case civi.V3:
		args := []string{"api3", call}

		pairs, err := v3Pairs(req.Params)
		if err != nil {
			return nil, err
		}

		args = append(args, pairs...)

		return append(args, "--out=json"), nil
	case civi.V4:
		args := []string{"api4", call}

		if len(req.Params) > 0 {
			encoded, err := json.Marshal(req.Params)
			if err != nil {
				return nil, fmt.Errorf("encoding params: %w", err)
			}

			args = append(args, string(encoded))
		}

		return append(args, "--out=json"), nil
	default:
		return nil, fmt.Errorf("%w: %q", civi.ErrUnsupportedVersion, req.Version)
	}
}

// v3Pairs renders wire params as key=value arguments in deterministic
// order. Non-scalar values are JSON-encoded.
func v3Pairs(params civi.Params) ([]string, error) {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))

	for _, key := range keys {
		switch v := params[key].(type) {
		case string:
			pairs = append(pairs, key+"="+v)
		case nil, bool, int, int64, float64:
			pairs = append(pairs, fmt.Sprintf("%s=%v", key, v))
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("encoding param %s: %w", key, err)
			}

			pairs = append(pairs, key+"="+string(encoded))
		}
	}

	return pairs, nil
}
