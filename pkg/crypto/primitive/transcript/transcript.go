/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package transcript provides Fiat-Shamir transcripts that absorb protocol messages and squeeze
// challenge bytes.
package transcript

import (
	"io"

	"github.com/gtank/merlin"
	"golang.org/x/crypto/sha3"
)

// Transcript absorbs bytes written to it and derives challenge bytes from everything absorbed so far.
type Transcript interface {
	io.Writer
	// ChallengeBytes returns n bytes bound to the absorbed messages.
	ChallengeBytes(n int) []byte
}

// Shake256 is a Transcript over a SHAKE-256 sponge. Written messages are concatenated as is.
type Shake256 struct {
	h sha3.ShakeHash
}

// NewShake256 creates a new SHAKE-256 transcript.
func NewShake256() *Shake256 {
	return &Shake256{h: sha3.NewShake256()}
}

// Write absorbs p.
func (s *Shake256) Write(p []byte) (int, error) {
	return s.h.Write(p)
}

// ChallengeBytes reads the first n bytes of the output stream. The transcript stays writable.
func (s *Shake256) ChallengeBytes(n int) []byte {
	out := make([]byte, n)

	_, _ = s.h.Clone().Read(out)

	return out
}

const (
	defaultMessageLabel   = "msg"
	defaultChallengeLabel = "challenge"
)

// Merlin is a Transcript over a STROBE based merlin transcript. Each Write is appended as one
// labeled message, so message boundaries are part of the transcript.
type Merlin struct {
	t *merlin.Transcript
}

// NewMerlin creates a new merlin transcript with a domain separation label.
func NewMerlin(label string) *Merlin {
	return &Merlin{t: merlin.NewTranscript(label)}
}

// Write appends p as a labeled message.
func (m *Merlin) Write(p []byte) (int, error) {
	m.t.AppendMessage([]byte(defaultMessageLabel), p)

	return len(p), nil
}

// ChallengeBytes extracts n challenge bytes. Extraction advances the transcript state.
func (m *Merlin) ChallengeBytes(n int) []byte {
	return m.t.ExtractBytes([]byte(defaultChallengeLabel), n)
}
