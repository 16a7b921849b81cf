// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Input size ceilings enforced before any model call is made.
const (
	MaxTranscriptLength   = 500000
	MaxContextPackLength  = 100000
	MaxSystemPromptLength = 10000
)

// DefaultProcessTimeout bounds one submission end to end.
const DefaultProcessTimeout = 5 * time.Minute

// GatewayConfig holds settings for the model gateway client.
type GatewayConfig struct {
	// URL is the chat-completions endpoint of the model gateway.
	URL string `json:"url" yaml:"url"`

	// APIKey authenticates the outbound gateway call.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Timeout is the HTTP request timeout. Zero uses the processing bound.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// StoreConfig holds settings for the run store.
type StoreConfig struct {
	// DataDir is the directory holding the SQLite database file.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// BasePath prefixes all API routes (default "/v0").
	BasePath string `json:"base_path" yaml:"base_path"`

	// JWTSecret verifies HS256 bearer tokens. Empty disables the API.
	JWTSecret string `json:"jwt_secret,omitempty" yaml:"jwt_secret,omitempty"`
}

// Config is the root configuration for the engine.
type Config struct {
	Gateway GatewayConfig `json:"gateway" yaml:"gateway"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Server  ServerConfig  `json:"server" yaml:"server"`

	// ProcessTimeout bounds one submission. Zero uses DefaultProcessTimeout.
	ProcessTimeout time.Duration `json:"process_timeout" yaml:"process_timeout"`
}
