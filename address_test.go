package swapd_test

import (
	"encoding/json"
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/swaptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	addr := swaptest.SeqAddress("alice")

	cases := map[string]struct {
		encoded string
		want    swapd.Address
		wantErr *errors.Error
	}{
		"valid": {
			encoded: addr.String(),
			want:    addr,
		},
		"empty": {
			encoded: "",
			wantErr: errors.ErrEmpty,
		},
		"not base58": {
			encoded: "0OIl",
			wantErr: errors.ErrInput,
		},
		"too short": {
			encoded: base58.Encode(addr[:20]),
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := swapd.ParseAddress(tc.encoded)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAddressJSON(t *testing.T) {
	type holder struct {
		Owner swapd.Address `json:"owner"`
	}
	addr := swaptest.SeqAddress("bob")

	bz, err := json.Marshal(holder{Owner: addr})
	require.NoError(t, err)
	assert.JSONEq(t, `{"owner":"`+addr.String()+`"}`, string(bz))

	var got holder
	require.NoError(t, json.Unmarshal(bz, &got))
	assert.True(t, addr.Equals(got.Owner))

	var empty holder
	require.NoError(t, json.Unmarshal([]byte(`{"owner":""}`), &empty))
	assert.Nil(t, empty.Owner)

	err = json.Unmarshal([]byte(`{"owner":42}`), &empty)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestAddressClone(t *testing.T) {
	addr := swaptest.SeqAddress("carol")
	cpy := addr.Clone()
	assert.True(t, addr.Equals(cpy))
	cpy[0]++
	assert.False(t, addr.Equals(cpy))
	assert.Nil(t, swapd.Address(nil).Clone())
	assert.Equal(t, "(nil)", swapd.Address(nil).String())
}
