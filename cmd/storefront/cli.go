// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/z5labs/storefront"
	"github.com/z5labs/storefront/apierr"
	"github.com/z5labs/storefront/job"
	"github.com/z5labs/storefront/param"

	"github.com/joho/godotenv"
)

// callSeparator splits the argument list into multiple calls.
const callSeparator = ","

const usage = `usage: storefront [flags] group/method [key=value ...] [, group/method ...]

Values:
  key=value   send value as a string, an empty value is sent as ""
  key=null    omit key entirely
  key=@path   upload the file at path as a multipart field

Flags:
`

type errorOutput struct {
	Kind    apierr.Kind `json:"kind"`
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Details any         `json:"details,omitempty"`
}

type resultOutput struct {
	Response storefront.Response `json:"response,omitempty"`
	Error    *errorOutput        `json:"error,omitempty"`
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "path to a YAML config file overriding the defaults")
	envPath := fs.String("env", ".env", "dotenv file loaded before the config is rendered, ignored if missing")
	signed := fs.Bool("signed", false, "sign every call, calls to the manage group are always signed")
	concurrency := fs.Int("concurrency", 4, "maximum number of calls in flight")

	err := fs.Parse(args)
	if err != nil {
		return 2
	}

	calls, err := parseCalls(fs.Args(), *signed)
	if err != nil {
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return 2
	}

	err = loadEnv(*envPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	src := configBytes
	if *configPath != "" {
		src, err = os.ReadFile(*configPath)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	failed := false
	ok := job.Run(
		bytes.NewReader(src),
		func(ctx context.Context, cfg job.Config) (*job.App, error) {
			c := cfg.NewClient()
			for _, call := range calls {
				_, err := c.Group(groupOf(call.Method))
				if err != nil {
					return nil, err
				}
			}

			h := job.HandlerFunc(func(ctx context.Context) error {
				results := c.Batch(ctx, calls, storefront.MaxConcurrency(*concurrency))
				failed = anyFailed(results)
				return writeResults(stdout, results)
			})
			return job.NewApp(h), nil
		},
		job.HandleError(job.ErrorHandlerFunc(func(err error) {
			writeError(stderr, err)
		})),
	)
	if !ok || failed {
		return 1
	}
	return 0
}

// loadEnv never overrides variables which are already set.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

func parseCalls(args []string, signed bool) ([]storefront.Call, error) {
	if len(args) == 0 {
		return nil, errors.New("missing method")
	}

	var calls []storefront.Call
	start := 0
	for i := 0; i <= len(args); i++ {
		if i < len(args) && args[i] != callSeparator {
			continue
		}
		call, err := parseCall(args[start:i], signed)
		if err != nil {
			return nil, err
		}
		calls = append(calls, call)
		start = i + 1
	}
	return calls, nil
}

func parseCall(args []string, signed bool) (storefront.Call, error) {
	if len(args) == 0 {
		return storefront.Call{}, errors.New("empty call")
	}

	method := args[0]
	if !strings.Contains(method, "/") || strings.HasSuffix(method, "/") {
		return storefront.Call{}, fmt.Errorf("method must be of the form group/method: %q", method)
	}

	params := make(param.Params, len(args)-1)
	for _, arg := range args[1:] {
		key, raw, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return storefront.Call{}, fmt.Errorf("expected key=value: %q", arg)
		}

		v, err := parseValue(raw)
		if err != nil {
			return storefront.Call{}, err
		}
		params[key] = v
	}

	return storefront.Call{
		Method: method,
		Params: params,
		Signed: signed || groupOf(method) == storefront.GroupManage,
	}, nil
}

func parseValue(raw string) (param.Value, error) {
	switch {
	case raw == "null":
		return param.Null(), nil
	case strings.HasPrefix(raw, "@"):
		f, err := param.NewFile(raw[1:])
		if err != nil {
			return param.Value{}, err
		}
		return param.FileValue(f), nil
	default:
		return param.String(raw), nil
	}
}

func groupOf(method string) string {
	group, _, _ := strings.Cut(method, "/")
	return group
}

func anyFailed(results []storefront.Result) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

func writeResults(w io.Writer, results []storefront.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if len(results) == 1 {
		r := results[0]
		if r.Err != nil {
			return enc.Encode(resultOutput{Error: toErrorOutput(r.Err)})
		}
		return enc.Encode(r.Response)
	}

	out := make([]resultOutput, len(results))
	for i, r := range results {
		out[i] = resultOutput{
			Response: r.Response,
			Error:    toErrorOutput(r.Err),
		}
	}
	return enc.Encode(out)
}

func writeError(w io.Writer, err error) {
	enc := json.NewEncoder(w)
	_ = enc.Encode(resultOutput{Error: toErrorOutput(err)})
}

func toErrorOutput(err error) *errorOutput {
	if err == nil {
		return nil
	}

	var aerr *apierr.Error
	if errors.As(err, &aerr) {
		return &errorOutput{
			Kind:    aerr.Kind,
			Message: aerr.Message,
			Code:    aerr.Code,
			Details: aerr.Details,
		}
	}
	return &errorOutput{
		Message: err.Error(),
	}
}
