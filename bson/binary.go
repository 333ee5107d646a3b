// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"bytes"
	"fmt"
)

// Binary represents a BSON binary value: a byte buffer tagged with the
// subtype that identifies what the bytes hold.
type Binary struct {
	Subtype byte
	Data    []byte
}

// Equal compares bp to bp2 and returns true if they are equal.
func (bp Binary) Equal(bp2 Binary) bool {
	if bp.Subtype != bp2.Subtype {
		return false
	}
	return bytes.Equal(bp.Data, bp2.Data)
}

// IsZero returns true if bp is the empty Binary.
func (bp Binary) IsZero() bool {
	return bp.Subtype == 0x00 && len(bp.Data) == 0
}

// UUID converts a binary value carrying the UUID subtype, current or legacy,
// back into a UUID. It returns an error when the subtype or the payload
// length does not describe one.
func (bp Binary) UUID() (UUID, error) {
	if bp.Subtype != TypeBinaryUUID && bp.Subtype != TypeBinaryUUIDOld {
		return NilUUID, fmt.Errorf("binary value with subtype 0x%02x does not hold a UUID", bp.Subtype)
	}
	return FromBytes(bp.Data)
}
