// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/flintforge/deno-bson/internal/hexutil"
)

// ErrInvalidUUID indicates that a value cannot be converted to a UUID. A UUID
// is built from another UUID, a 16-byte slice, or a 32- or 36-character hex
// string.
var ErrInvalidUUID = errors.New("UUID must be built from a UUID, a 16-byte slice, or a 32- or 36-character hex string")

// UUID is the BSON UUID type: a 128-bit RFC 4122 identifier stored in
// documents as a binary value with the UUID subtype.
//
// UUID is a value type. Assignment copies the identity bytes together with
// any cached hex form. Compare instances with Equal rather than ==; the hex
// cache takes no part in identity.
type UUID struct {
	id  [16]byte
	hex string // canonical dashed form, empty unless the source caches
}

// NilUUID is the zero value for UUID.
var NilUUID UUID

var _ encoding.TextMarshaler = UUID{}
var _ encoding.TextUnmarshaler = &UUID{}

// bytesToHex is the hex codec used for rendering. Tests substitute it to
// observe recomputation.
var bytesToHex = hexutil.Encode

// A Source builds UUIDs under explicit configuration: the reader that
// supplies random bytes for generated values and whether built values cache
// their canonical hex form.
type Source struct {
	rand     io.Reader
	cacheHex bool
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithRand sets the reader supplying random bytes for generated UUIDs. The
// version and variant bits of the generated value are fixed afterwards, so
// any reader yields well-formed v4 UUIDs. When unset, a cryptographically
// strong reader is used.
func WithRand(r io.Reader) SourceOption {
	return func(s *Source) { s.rand = r }
}

// WithHexCache makes the source store the canonical dashed hex form on every
// UUID it builds, so rendering it again never recomputes.
func WithHexCache() SourceOption {
	return func(s *Source) { s.cacheHex = true }
}

// NewSource returns a Source with the given options applied.
func NewSource(opts ...SourceOption) *Source {
	s := new(Source)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSource = NewSource()

// seal finishes construction, filling the hex cache when the source asks for
// it. The cache always holds the dashed form.
func (s *Source) seal(id [16]byte) UUID {
	u := UUID{id: id}
	if s.cacheHex {
		u.hex = bytesToHex(u.id[:], true)
	}
	return u
}

// New generates a random version 4 UUID.
func (s *Source) New() (UUID, error) {
	if s.rand == nil {
		gid, err := uuid.NewRandom()
		if err != nil {
			return NilUUID, err
		}
		return s.seal([16]byte(gid)), nil
	}

	var id [16]byte
	if _, err := io.ReadFull(s.rand, id[:]); err != nil {
		return NilUUID, err
	}
	id[6] = (id[6] & 0x0f) | 0x40 // Version 4
	id[8] = (id[8] & 0x3f) | 0x80 // Variant is 10

	return s.seal(id), nil
}

// FromBytes builds a UUID from a byte slice. The slice must hold exactly 16
// bytes; the bytes are copied.
func (s *Source) FromBytes(b []byte) (UUID, error) {
	if len(b) != 16 {
		return NilUUID, fmt.Errorf("%w, got %d bytes", ErrInvalidUUID, len(b))
	}
	var id [16]byte
	copy(id[:], b)
	return s.seal(id), nil
}

// Parse builds a UUID from its hex form, with or without dashes.
func (s *Source) Parse(str string) (UUID, error) {
	b, err := hexutil.Decode(str)
	if err != nil {
		return NilUUID, fmt.Errorf("%w: %v", ErrInvalidUUID, err)
	}
	return s.FromBytes(b)
}

// New generates a random version 4 UUID from the default source.
func New() (UUID, error) {
	return defaultSource.New()
}

// FromBytes builds a UUID from exactly 16 bytes.
func FromBytes(b []byte) (UUID, error) {
	return defaultSource.FromBytes(b)
}

// Parse builds a UUID from a 32- or 36-character hex string.
func Parse(str string) (UUID, error) {
	return defaultSource.Parse(str)
}

// MustParse is like Parse but panics if the string cannot be parsed. It
// simplifies safe initialization of global variables holding UUIDs.
func MustParse(str string) UUID {
	u, err := Parse(str)
	if err != nil {
		panic(err)
	}
	return u
}

// Bytes returns a copy of the UUID's 16 bytes.
func (u UUID) Bytes() []byte {
	b := make([]byte, 16)
	copy(b, u.id[:])
	return b
}

// SetBytes replaces the UUID's identity with the given 16 bytes. A cached
// hex form, when present, is rederived in the same step so the two never
// diverge.
func (u *UUID) SetBytes(b []byte) error {
	if len(b) != 16 {
		return fmt.Errorf("%w, got %d bytes", ErrInvalidUUID, len(b))
	}
	copy(u.id[:], b)
	if u.hex != "" {
		u.hex = bytesToHex(u.id[:], true)
	}
	return nil
}

// Hex returns the canonical lower-case hex form of the UUID,
// xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx. A cached form is returned as is.
func (u UUID) Hex() string {
	if u.hex != "" {
		return u.hex
	}
	return bytesToHex(u.id[:], true)
}

// HexCompact returns the flat 32-character lower-case hex form of the UUID.
func (u UUID) HexCompact() string {
	return bytesToHex(u.id[:], false)
}

func (u UUID) String() string {
	return `UUID("` + u.Hex() + `")`
}

// IsZero returns true if u is the nil UUID.
func (u UUID) IsZero() bool {
	return u.id == NilUUID.id
}

// Equal returns true if two UUIDs hold the same 16 bytes.
func (u UUID) Equal(v UUID) bool {
	return bytes.Equal(u.id[:], v.id[:])
}

// EqualBytes returns true if b is a 16-byte slice holding the same bytes as
// u. Malformed input compares as not equal; the method never fails.
func (u UUID) EqualBytes(b []byte) bool {
	v, err := FromBytes(b)
	if err != nil {
		return false
	}
	return u.Equal(v)
}

// EqualString returns true if str is a hex form of u, with or without
// dashes. Malformed input compares as not equal; the method never fails.
func (u UUID) EqualString(str string) bool {
	v, err := Parse(str)
	if err != nil {
		return false
	}
	return u.Equal(v)
}

// Binary wraps the UUID's bytes in a Binary value carrying the UUID subtype,
// ready for embedding in a document.
func (u UUID) Binary() Binary {
	return Binary{Subtype: TypeBinaryUUID, Data: u.Bytes()}
}

// IsValidHex reports whether str is a well-formed UUID hex string in the
// 32-character or the canonical dashed 36-character form. It never fails on
// malformed input.
func IsValidHex(str string) bool {
	return hexutil.Valid(str)
}

// IsValidBytes reports whether b is a byte-form UUID: exactly 16 bytes whose
// seventh byte carries 4 in its high nibble. The nibble is compared against
// the UUID binary subtype code; the two agree only because both constants
// are 4, which mirrors the behavior of the original library.
func IsValidBytes(b []byte) bool {
	if len(b) != 16 {
		return false
	}
	return b[6]>>4 == TypeBinaryUUID
}

// MarshalText returns the UUID's canonical dashed hex form as UTF-8 text.
// Implementing this allows UUID to be used as a map key when marshalling
// JSON. See https://pkg.go.dev/encoding#TextMarshaler
func (u UUID) MarshalText() ([]byte, error) {
	return []byte(u.Hex()), nil
}

// UnmarshalText populates the UUID from its 32- or 36-character hex form.
// This method also accepts empty input and decodes it as NilUUID.
func (u *UUID) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// MarshalJSON returns the UUID as a JSON string in the canonical dashed hex
// form.
func (u UUID) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Hex())
}

// UnmarshalJSON populates the UUID from a JSON hex string, with or without
// dashes, or from the extended JSON shape
// {"$uuid": "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"}.
//
// A JSON null leaves the value unchanged, keeping parity with the standard
// library.
func (u *UUID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	if len(b) >= 2 && b[0] == '"' {
		return u.UnmarshalText(b[1 : len(b)-1])
	}

	var v struct {
		UUID *string `json:"$uuid"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("failed to parse extended JSON UUID: %w", err)
	}
	if v.UUID == nil {
		return errors.New("not an extended JSON UUID")
	}
	parsed, err := Parse(*v.UUID)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
