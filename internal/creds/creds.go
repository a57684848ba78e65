// Package creds defines the decrypted-credential contract consumed by
// the sync orchestrator. Encryption itself lives outside this module;
// the orchestrator only sees an opaque Decrypt call.
package creds

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Credentials is one exchange API credential set, already decrypted.
type Credentials struct {
	Exchange   string `json:"exchange"`
	APIKey     string `json:"api_key"`
	Secret     string `json:"secret"`
	Passphrase string `json:"passphrase,omitempty"`
}

// Decryptor turns an opaque credential blob into usable credentials.
// Implementations must return an error (never an empty slice with nil
// error) when the blob cannot be decoded.
type Decryptor interface {
	Decrypt(blob []byte) ([]Credentials, error)
}

// PlainJSON decodes an unencrypted JSON credential array. Used by the
// CLI, where at-rest encryption is handled by the surrounding system.
type PlainJSON struct{}

func (PlainJSON) Decrypt(blob []byte) ([]Credentials, error) {
	if len(blob) == 0 {
		return nil, fmt.Errorf("empty credential blob")
	}
	var out []Credentials
	if err := json.Unmarshal(blob, &out); err != nil {
		return nil, fmt.Errorf("decoding credentials: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("credential blob contains no entries")
	}
	for i := range out {
		out[i].Exchange = strings.ToLower(strings.TrimSpace(out[i].Exchange))
		if out[i].Exchange == "" {
			return nil, fmt.Errorf("credential entry %d missing exchange", i)
		}
		if out[i].APIKey == "" || out[i].Secret == "" {
			return nil, fmt.Errorf("credential entry %d (%s) missing key material", i, out[i].Exchange)
		}
	}
	return out, nil
}
