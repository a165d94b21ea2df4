package types

import "errors"

// Config holds native-store selection and parameters for opening a session.
type Config struct {
	NativeStore string `json:"native_store" yaml:"native_store"`
	DataDir     string `json:"data_dir" yaml:"data_dir"`
}

// Supported native store names.
const (
	NativeStoreSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrNativeStoreEmpty   = errors.New("native store must not be empty")
	ErrNativeStoreUnknown = errors.New("unknown native store")
)

// knownNativeStores lists the native store backends that Validate accepts.
var knownNativeStores = map[string]bool{
	NativeStoreSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.NativeStore == "" {
		return ErrNativeStoreEmpty
	}
	if !knownNativeStores[c.NativeStore] {
		return ErrNativeStoreUnknown
	}
	return nil
}
