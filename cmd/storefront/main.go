// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	_ "embed"
	"os"
)

//go:embed config.yaml
var configBytes []byte

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
