package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:   "valid sqlite config",
			config: Config{NativeStore: NativeStoreSQLite, DataDir: "/tmp/anchorage"},
		},
		{
			name:   "empty data dir allowed",
			config: Config{NativeStore: NativeStoreSQLite},
		},
		{
			name:    "empty native store rejected",
			config:  Config{DataDir: "/tmp/anchorage"},
			wantErr: ErrNativeStoreEmpty,
		},
		{
			name:    "unknown native store rejected",
			config:  Config{NativeStore: "cloud"},
			wantErr: ErrNativeStoreUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
