// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package hexutil

import (
	"crypto/rand"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

var sample = []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x46, 0x77, 0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}

func TestEncode(t *testing.T) {
	require.Equal(t, "00112233-4455-4677-8899-aabbccddeeff", Encode(sample, true))
	require.Equal(t, "00112233445546778899aabbccddeeff", Encode(sample, false))
}

func TestDecode(t *testing.T) {
	testCases := []struct {
		name string
		str  string
	}{
		{"dashed", "00112233-4455-4677-8899-aabbccddeeff"},
		{"compact", "00112233445546778899aabbccddeeff"},
		{"upper case", "00112233-4455-4677-8899-AABBCCDDEEFF"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode(tc.str)
			require.NoError(t, err)
			require.Equal(t, sample, got)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	testCases := []struct {
		name string
		str  string
	}{
		{"empty", ""},
		{"bad length", "00112233445546778899aabbccddeef"},
		{"too long", "00112233445546778899aabbccddeeff00"},
		{"misplaced dashes", "0011223-34455-4677-8899-aabbccddeeff"},
		{"trailing dash", "00112233-4455-4677-8899-aabbccddeef-"},
		{"non-hex compact", "zz112233445546778899aabbccddeeff"},
		{"non-hex dashed", "zz112233-4455-4677-8899-aabbccddeeff"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.str)
			require.Error(t, err)
		})
	}
}

func TestValid(t *testing.T) {
	require.True(t, Valid("00112233-4455-4677-8899-aabbccddeeff"))
	require.True(t, Valid("00112233445546778899aabbccddeeff"))
	require.False(t, Valid(""))
	require.False(t, Valid("not-hex"))
	require.False(t, Valid("urn:uuid:00112233-4455-4677-8899-aabbccddeeff"))
}

func TestRoundTrip(t *testing.T) {
	for i := 0; i < 100; i++ {
		b := make([]byte, 16)
		_, err := io.ReadFull(rand.Reader, b)
		require.NoError(t, err)

		dashed, err := Decode(Encode(b, true))
		require.NoError(t, err)
		require.Equal(t, b, dashed)

		compact, err := Decode(Encode(b, false))
		require.NoError(t, err)
		require.Equal(t, b, compact)

		require.Equal(t, Encode(b, true), Encode(dashed, true))
	}
}
