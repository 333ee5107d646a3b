// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package hexutil converts 16-byte UUID values to and from their hex string
// forms.
package hexutil

import (
	"encoding/hex"
	"fmt"
)

const dash = '-'

// Encode returns the lower-case hex form of the 16-byte slice b. When
// withDashes is true the result is the canonical 36-character 8-4-4-4-12
// grouping, otherwise a flat 32-character string.
func Encode(b []byte, withDashes bool) string {
	if !withDashes {
		return hex.EncodeToString(b)
	}

	var buf [36]byte
	hex.Encode(buf[:8], b[0:4])
	buf[8] = dash
	hex.Encode(buf[9:13], b[4:6])
	buf[13] = dash
	hex.Encode(buf[14:18], b[6:8])
	buf[18] = dash
	hex.Encode(buf[19:23], b[8:10])
	buf[23] = dash
	hex.Encode(buf[24:], b[10:16])
	return string(buf[:])
}

// Decode parses the 32-character or the canonical dashed 36-character hex
// form of a UUID into its 16 bytes. Case is ignored.
func Decode(s string) ([]byte, error) {
	switch len(s) {
	case 36:
		if s[8] != dash || s[13] != dash || s[18] != dash || s[23] != dash {
			return nil, fmt.Errorf("misplaced separators in %q", s)
		}
		s = s[:8] + s[9:13] + s[14:18] + s[19:23] + s[24:]
	case 32:
	default:
		return nil, fmt.Errorf("hex string of length %d cannot hold a UUID", len(s))
	}

	b := make([]byte, 16)
	if _, err := hex.Decode(b, []byte(s)); err != nil {
		return nil, err
	}
	return b, nil
}

// Valid reports whether s is a well-formed UUID hex string in either form
// accepted by Decode.
func Valid(s string) bool {
	_, err := Decode(s)
	return err == nil
}
