package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix allows the encoding to change later.
const (
	DomainProgram = "powcanon/program/v1"
)

// hashWithDomain computes SHA256(domain || 0x00 || data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ProgramID computes the content-addressed ID of a lowered program.
// Two lowerings with the same atom, operands and variable IDs share an ID.
func ProgramID(p *Program) (string, error) {
	canonical, err := MarshalCanonical(p.ToIR())
	if err != nil {
		return "", fmt.Errorf("ProgramID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainProgram, canonical), nil
}

// MustProgramID is like ProgramID but panics on error.
// Use only in tests or when the program is known to be valid.
func MustProgramID(p *Program) string {
	id, err := ProgramID(p)
	if err != nil {
		panic(err)
	}
	return id
}
