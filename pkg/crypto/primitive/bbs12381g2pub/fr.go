/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/big"

	ml "github.com/IBM/mathlib"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/NuggetsLtd/pairing-crypto/internal/hash2field"
	"github.com/NuggetsLtd/pairing-crypto/pkg/crypto/primitive/transcript"
)

const (
	csID     = "BBS_BLS12381G2_XOF:SHAKE-256_"
	h2sDST   = csID + "H2S_"
	keyDST   = csID + "KEY_"
	sigEDST  = csID + "SIG_E_"
	mTickDST = csID + "SIG_MTICK_"

	// Number of uniform bytes reduced into one scalar.
	expandLen = frUncompressedSize
)

// nolint:gochecknoglobals
var f2192Bytes = []byte{
	0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x1,
	0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0,
	0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0,
	0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0,
}

// BLS12-381 scalar field order r.
// nolint:gochecknoglobals
var groupOrder, _ = new(big.Int).SetString(
	"73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001", 16)

func f2192() *ml.Zr {
	return curve.NewZrFromBytes(f2192Bytes)
}

// frFromWideBytes reduces 48 bytes into a scalar as hi * 2^192 + lo over two 24 byte halves.
func frFromWideBytes(okm []byte) *ml.Zr {
	const (
		eightBytes = 8
		okmMiddle  = 24
	)

	emptyEightBytes := make([]byte, eightBytes)

	elm := curve.NewZrFromBytes(append(emptyEightBytes, okm[:okmMiddle]...))
	elm = elm.Mul(f2192())

	fr := curve.NewZrFromBytes(append(emptyEightBytes, okm[okmMiddle:frUncompressedSize]...))

	return curve.ModAdd(elm, fr, curve.GroupOrder)
}

func frFromOKM(message []byte) *ml.Zr {
	// We pass a null key so error is impossible here.
	h, _ := blake2b.New384(nil) //nolint:errcheck

	// blake2b.digest() does not return an error.
	_, _ = h.Write(message)

	return frFromWideBytes(h.Sum(nil))
}

// parseFr parses a canonical big-endian scalar.
func parseFr(data []byte) (*ml.Zr, error) {
	if len(data) != frCompressedSize {
		return nil, fmt.Errorf("invalid size of scalar: %w", ErrInvalidEncoding)
	}

	if new(big.Int).SetBytes(data).Cmp(groupOrder) >= 0 {
		return nil, fmt.Errorf("scalar is not reduced: %w", ErrInvalidEncoding)
	}

	return curve.NewZrFromBytes(data), nil
}

func isZero(fr *ml.Zr) bool {
	return fr.Equals(curve.NewZrFromInt(0))
}

func minusOne() *ml.Zr {
	return curve.ModSub(curve.NewZrFromInt(0), curve.NewZrFromInt(1), curve.GroupOrder)
}

func frToBytes(frs ...*ml.Zr) []byte {
	bytes := make([]byte, 0, len(frs)*frCompressedSize)

	for _, fr := range frs {
		bytes = append(bytes, fr.Bytes()...)
	}

	return bytes
}

// Hash2scalar convert message represented in bytes to Fr.
func Hash2scalar(message []byte) *ml.Zr {
	return Hash2scalars(message, 1)[0]
}

// Hash2scalars convert messages represented in bytes to Fr.
func Hash2scalars(msg []byte, cnt int) []*ml.Zr {
	return hash2scalars(msg, []byte(h2sDST), cnt)
}

func hash2scalars(msg, dst []byte, cnt int) []*ml.Zr {
	bufLen := cnt * expandLen
	msgLen := len(msg)
	roundSz := 1
	msgLenSz := 4

	msgExt := make([]byte, msgLen+roundSz+msgLenSz)
	// msgExt is a concatenation of: msg || I2OSP(round, 1) || I2OSP(cnt, 4)
	copy(msgExt, msg)
	binary.BigEndian.PutUint32(msgExt[msgLen+1:], uint32(cnt))

	out := make([]*ml.Zr, cnt)

	for round, completed := byte(0), false; !completed; round++ {
		msgExt[msgLen] = round
		buf, _ := hash2field.ExpandMsgXOF(sha3.NewShake256(), msgExt, dst, bufLen) //nolint:errcheck

		ok := true
		for i := 0; i < cnt && ok; i++ {
			out[i] = frFromWideBytes(buf[i*expandLen : (i+1)*expandLen])
			ok = !isZero(out[i])
		}

		completed = ok
	}

	return out
}

// ProofNonce is a nonce for Proof of Knowledge proof.
// The zero value is the default nonce and encodes as 32 zero bytes.
type ProofNonce struct {
	fr *ml.Zr
}

// NewProofNonce samples a fresh ProofNonce from rng.
func NewProofNonce(rng io.Reader) *ProofNonce {
	return &ProofNonce{curve.NewRandomZr(rng)}
}

// ParseProofNonce creates a new ProofNonce from bytes. Empty bytes give the default nonce.
func ParseProofNonce(proofNonceBytes []byte) *ProofNonce {
	if len(proofNonceBytes) == 0 {
		return &ProofNonce{}
	}

	return &ProofNonce{
		frFromOKM(proofNonceBytes),
	}
}

// ToBytes converts ProofNonce into bytes.
func (pn *ProofNonce) ToBytes() []byte {
	if pn == nil || pn.fr == nil {
		return make([]byte, frCompressedSize)
	}

	return pn.fr.Bytes()
}

// Challenge is the Fiat-Shamir challenge of a proof of knowledge.
type Challenge struct {
	fr *ml.Zr
}

// NewChallenge derives a Challenge from the bytes absorbed by the transcript.
func NewChallenge(t transcript.Transcript) (*Challenge, error) {
	fr := frFromWideBytes(t.ChallengeBytes(expandLen))
	if isZero(fr) {
		return nil, errors.New("zero challenge")
	}

	return &Challenge{fr}, nil
}

// ParseChallenge parses a Challenge from its 32 bytes encoding.
func ParseChallenge(challengeBytes []byte) (*Challenge, error) {
	fr, err := parseFr(challengeBytes)
	if err != nil {
		return nil, fmt.Errorf("parse challenge: %w", err)
	}

	if isZero(fr) {
		return nil, fmt.Errorf("zero challenge: %w", ErrInvalidEncoding)
	}

	return &Challenge{fr}, nil
}

// ToBytes converts Challenge into bytes.
func (c *Challenge) ToBytes() []byte {
	return c.fr.Bytes()
}

// Equals reports whether both challenges are the same scalar.
func (c *Challenge) Equals(other *Challenge) bool {
	return other != nil && c.fr.Equals(other.fr)
}
