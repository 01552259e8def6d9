package credential

import (
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "mailterm"

// Open returns the system keyring scoped to this application. The
// session store persists the token and user id through it so a session
// survives process restarts.
func Open() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/mailterm/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("mailterm-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}
