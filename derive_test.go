package swapd_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/swaptest"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	program := swaptest.SeqAddress("program")
	maker := swaptest.NewAddress()
	asset := swaptest.SeqAddress("asset")

	Convey("Given a program, a maker and an asset", t, func() {
		addr, bump, err := swapd.Derive(program, "escrow", maker, asset)
		So(err, ShouldBeNil)

		Convey("The address is off curve and well formed", func() {
			So(addr.Validate(), ShouldBeNil)
			So(swapd.IsOnCurve(addr), ShouldBeFalse)
		})

		Convey("Deriving again gives the same result", func() {
			again, againBump, err := swapd.Derive(program, "escrow", maker, asset)
			So(err, ShouldBeNil)
			So(again, ShouldResemble, addr)
			So(againBump, ShouldEqual, bump)
		})

		Convey("The bump reproduces the address", func() {
			seeds := swapd.Seeds("escrow", maker, asset)
			created, err := swapd.CreateDerivedAddress(program, seeds, bump)
			So(err, ShouldBeNil)
			So(created, ShouldResemble, addr)
			So(swapd.VerifyDerivedAddress(program, seeds, addr, bump), ShouldBeNil)
		})

		Convey("Every higher bump lands on the curve", func() {
			seeds := swapd.Seeds("escrow", maker, asset)
			for b := 255; b > int(bump); b-- {
				_, err := swapd.CreateDerivedAddress(program, seeds, uint8(b))
				So(errors.ErrInvalidSeeds.Is(err), ShouldBeTrue)
			}
		})

		Convey("Another program owns another address", func() {
			other, _, err := swapd.Derive(swaptest.SeqAddress("other"), "escrow", maker, asset)
			So(err, ShouldBeNil)
			So(other, ShouldNotResemble, addr)
		})

		Convey("Swapping maker and asset changes the address", func() {
			other, _, err := swapd.Derive(program, "escrow", asset, maker)
			So(err, ShouldBeNil)
			So(other, ShouldNotResemble, addr)
		})
	})
}

func TestDerivedAddressesAreDistinct(t *testing.T) {
	program := swaptest.SeqAddress("program")
	makers := make([]swapd.Address, 8)
	for i := range makers {
		makers[i] = swaptest.SeqAddress(fmt.Sprintf("maker-%d", i))
	}
	assets := make([]swapd.Address, 8)
	for i := range assets {
		assets[i] = swaptest.SeqAddress(fmt.Sprintf("asset-%d", i))
	}

	seen := make(map[string]string)
	for i, m := range makers {
		for j, a := range assets {
			addr, _, err := swapd.Derive(program, "escrow", m, a)
			require.NoError(t, err)
			key := string(addr)
			pair := fmt.Sprintf("maker %d asset %d", i, j)
			if prev, ok := seen[key]; ok {
				t.Fatalf("%s and %s share address %s", prev, pair, addr)
			}
			seen[key] = pair
		}
	}
	assert.Len(t, seen, len(makers)*len(assets))
}

func TestVerifyDerivedAddress(t *testing.T) {
	program := swaptest.SeqAddress("program")
	seeds := swapd.Seeds("escrow", swaptest.SeqAddress("maker"), swaptest.SeqAddress("asset"))
	addr, bump, err := swapd.FindDerivedAddress(program, seeds)
	require.NoError(t, err)

	cases := map[string]struct {
		program swapd.Address
		seeds   [][]byte
		addr    swapd.Address
		bump    uint8
		wantErr *errors.Error
	}{
		"canonical": {
			program: program,
			seeds:   seeds,
			addr:    addr,
			bump:    bump,
		},
		"wrong bump": {
			program: program,
			seeds:   seeds,
			addr:    addr,
			bump:    bump - 1,
			wantErr: errors.ErrInvalidSeeds,
		},
		"wrong address": {
			program: program,
			seeds:   seeds,
			addr:    swaptest.SeqAddress("elsewhere"),
			bump:    bump,
			wantErr: errors.ErrInvalidSeeds,
		},
		"wrong seeds": {
			program: program,
			seeds:   swapd.Seeds("escrow", swaptest.SeqAddress("asset"), swaptest.SeqAddress("maker")),
			addr:    addr,
			bump:    bump,
			wantErr: errors.ErrInvalidSeeds,
		},
		"missing program": {
			seeds:   seeds,
			addr:    addr,
			bump:    bump,
			wantErr: errors.ErrEmpty,
		},
		"too many seeds": {
			program: program,
			seeds:   make([][]byte, swapd.MaxSeeds+1),
			addr:    addr,
			bump:    bump,
			wantErr: errors.ErrInvalidSeeds,
		},
		"seed too long": {
			program: program,
			seeds:   [][]byte{bytes.Repeat([]byte{1}, swapd.MaxSeedLength+1)},
			addr:    addr,
			bump:    bump,
			wantErr: errors.ErrInvalidSeeds,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := swapd.VerifyDerivedAddress(tc.program, tc.seeds, tc.addr, tc.bump)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
			}
		})
	}
}

func TestIsOnCurve(t *testing.T) {
	derived, _, err := swapd.Derive(swaptest.SeqAddress("program"), "label")
	require.NoError(t, err)

	assert.True(t, swapd.IsOnCurve(swaptest.NewAddress()))
	assert.False(t, swapd.IsOnCurve(derived))
	assert.False(t, swapd.IsOnCurve(make([]byte, 31)))
}
