/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"errors"
	"fmt"

	ml "github.com/IBM/mathlib"
)

// Signature defines BLS signature: sigma_1 = g1^(1/(x+e)) and sigma_2 = B^(1/(x+e)).
type Signature struct {
	Sigma1 *ml.G1
	Sigma2 *ml.G1
}

// NewSignature signs messages with sk. Signing is deterministic: e and m' are derived from the key,
// the messages and sigma_1.
func NewSignature(sk *PrivateKey, gens *MessageGenerators, messages []*SignatureMessage) (*Signature, error) {
	if len(messages) == 0 {
		return nil, errors.New("messages are not defined")
	}

	if len(messages) > gens.Len() {
		return nil, fmt.Errorf("%d messages and %d generators: %w", len(messages), gens.Len(), ErrMismatchedLengths)
	}

	messagesBytes := signatureMessagesBytes(messages)

	e := hash2scalars(append(sk.FR.Bytes(), messagesBytes...), []byte(sigEDST), 1)[0]

	exp := curve.ModAdd(sk.FR, e, curve.GroupOrder)
	if isZero(exp) {
		return nil, ErrDegenerateKey
	}

	exp.InvModP(curve.GroupOrder)

	sigma1 := curve.GenG1.Mul(exp)
	mTick := computeMTick(sigma1, messagesBytes)

	b := computeB(sk.FR, mTick, messages, gens)

	return &Signature{
		Sigma1: sigma1,
		Sigma2: b.Mul(exp),
	}, nil
}

// computeB returns g1^x * WG1^m' * prod H_i^m_i.
func computeB(x, mTick *ml.Zr, messages []*SignatureMessage, gens *MessageGenerators) *ml.G1 {
	const basesOffset = 2

	cb := newCommitmentBuilder[*ml.G1](len(messages) + basesOffset)

	cb.add(curve.GenG1, x)
	cb.add(gens.WG1, mTick)

	for i := range messages {
		cb.add(gens.H[i], messages[i].FR)
	}

	return cb.build()
}

func computeMTick(sigma1 *ml.G1, messagesBytes []byte) *ml.Zr {
	return hash2scalars(append(sigma1.Compressed(), messagesBytes...), []byte(mTickDST), 1)[0]
}

func signatureMessagesBytes(messages []*SignatureMessage) []byte {
	bytes := make([]byte, 0, len(messages)*frCompressedSize)

	for _, m := range messages {
		bytes = append(bytes, m.FR.Bytes()...)
	}

	return bytes
}

// ParseSignature parses a Signature from bytes.
func ParseSignature(sigBytes []byte) (*Signature, error) {
	if len(sigBytes) != bls12381SignatureLen {
		return nil, fmt.Errorf("invalid size of signature: %w", ErrInvalidEncoding)
	}

	sigma1, err := curve.NewG1FromCompressed(sigBytes[:g1CompressedSize])
	if err != nil {
		return nil, fmt.Errorf("deserialize G1 compressed signature: %w: %w", ErrInvalidEncoding, err)
	}

	sigma2, err := curve.NewG1FromCompressed(sigBytes[g1CompressedSize:])
	if err != nil {
		return nil, fmt.Errorf("deserialize G1 compressed signature: %w: %w", ErrInvalidEncoding, err)
	}

	if sigma1.IsInfinity() || sigma2.IsInfinity() {
		return nil, fmt.Errorf("identity signature point: %w", ErrInvalidEncoding)
	}

	return &Signature{
		Sigma1: sigma1,
		Sigma2: sigma2,
	}, nil
}

// ToBytes converts signature to bytes using compression of G1 points.
func (s *Signature) ToBytes() []byte {
	bytes := make([]byte, 0, bls12381SignatureLen)

	bytes = append(bytes, s.Sigma1.Compressed()...)
	bytes = append(bytes, s.Sigma2.Compressed()...)

	return bytes
}

// Verify checks e(sigma_1, X * W^m' * prod Y_i^m_i) == e(sigma_2, g2).
func (s *Signature) Verify(messages []*SignatureMessage, pk *PublicKey, gens *MessageGenerators) bool {
	if len(messages) == 0 || len(messages) > gens.Len() || len(messages) > len(gens.Y) {
		logger.Debugf("verify signature: %d messages and %d generators", len(messages), gens.Len())

		return false
	}

	if s.Sigma1.IsInfinity() || s.Sigma2.IsInfinity() {
		return false
	}

	mTick := computeMTick(s.Sigma1, signatureMessagesBytes(messages))

	cb := newCommitmentBuilder[*ml.G2](len(messages) + 2) //nolint:gomnd

	cb.add(pk.X, curve.NewZrFromInt(1))
	cb.add(gens.W, mTick)

	for i := range messages {
		cb.add(gens.Y[i], messages[i].FR)
	}

	return compareTwoPairings(s.Sigma1, cb.build(), s.Sigma2, curve.GenG2)
}
