package provision

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "S3ReadonlyGroup", cfg.GroupName)
	assert.Equal(t, "S3ReadOnlyUser", cfg.UserName)
	assert.Equal(t, "S3ReadOnlyAccess", cfg.PolicyName)
	assert.Equal(t, ContinueOnDuplicate, cfg.OnDuplicateUser)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultPolicyDocumentIsValidJSON(t *testing.T) {
	var document struct {
		Version   string `json:"Version"`
		Statement []struct {
			Effect   string   `json:"Effect"`
			Action   []string `json:"Action"`
			Resource string   `json:"Resource"`
		} `json:"Statement"`
	}
	require.NoError(t, json.Unmarshal([]byte(DefaultPolicyDocument), &document))

	assert.Equal(t, "2012-10-17", document.Version)
	require.Len(t, document.Statement, 1)
	assert.Equal(t, "Allow", document.Statement[0].Effect)
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := Config{
		GroupName:      "g",
		UserName:       "u",
		PolicyName:     "p",
		PolicyDocument: "{}",
	}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ContinueOnDuplicate, cfg.OnDuplicateUser)
	assert.Equal(t, time.Second, cfg.KeyPollInterval)
	assert.Equal(t, 2*time.Minute, cfg.KeyWaitTimeout)
}

func TestValidateRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"group name", func(c *Config) { c.GroupName = "" }},
		{"user name", func(c *Config) { c.UserName = "" }},
		{"policy name", func(c *Config) { c.PolicyName = "" }},
		{"policy document", func(c *Config) { c.PolicyDocument = "" }},
		{"duplicate policy", func(c *Config) { c.OnDuplicateUser = "retry" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
