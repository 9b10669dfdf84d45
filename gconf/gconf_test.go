package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type myConfig struct {
	Number  int64         `json:"number"`
	Text    string        `json:"text"`
	Program swapd.Address `json:"program"`
}

func (c *myConfig) Validate() error {
	if c.Number < 0 {
		return errors.Wrap(errors.ErrInput, "number")
	}
	return c.Program.Validate()
}

func TestSaveLoad(t *testing.T) {
	program := make(swapd.Address, swapd.AddressLength)
	program[0] = 7

	cases := map[string]struct {
		conf        *myConfig
		wantSaveErr *errors.Error
	}{
		"valid": {
			conf: &myConfig{Number: 852151421, Text: "foobar", Program: program},
		},
		"invalid address cannot be saved": {
			conf:        &myConfig{Program: swapd.Address("too short")},
			wantSaveErr: errors.ErrInput,
		},
		"negative number cannot be saved": {
			conf:        &myConfig{Number: -1, Program: program},
			wantSaveErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			err := Save(db, "test", tc.conf)
			require.True(t, tc.wantSaveErr.Is(err), "unexpected save error: %v", err)
			if tc.wantSaveErr != nil {
				err := Load(db, "test", &myConfig{})
				assert.True(t, errors.ErrNotFound.Is(err))
				return
			}
			var got myConfig
			require.NoError(t, Load(db, "test", &got))
			assert.Equal(t, *tc.conf, got)
		})
	}
}

func TestInitConfig(t *testing.T) {
	program := make(swapd.Address, swapd.AddressLength)
	program[31] = 1
	raw, err := json.Marshal(map[string]interface{}{
		"conf": map[string]interface{}{
			"test": map[string]interface{}{
				"number":  5,
				"text":    "hello",
				"program": program,
			},
		},
	})
	require.NoError(t, err)
	var opts swapd.Options
	require.NoError(t, json.Unmarshal(raw, &opts))

	db := store.MemStore()
	require.NoError(t, InitConfig(db, opts, "test", &myConfig{}))

	var got myConfig
	require.NoError(t, Load(db, "test", &got))
	assert.Equal(t, myConfig{Number: 5, Text: "hello", Program: program}, got)

	err = InitConfig(db, opts, "missing", &myConfig{})
	assert.True(t, errors.ErrNotFound.Is(err))
}
