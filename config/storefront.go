// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config defines the configuration types shared by storefront programs.
package config

import "time"

// Storefront configures a storefront API client.
type Storefront struct {
	BaseURL string        `config:"base_url"`
	AuthID  string        `config:"auth_id"`
	APIKey  string        `config:"api_key"`
	Timeout time.Duration `config:"timeout"`
}
