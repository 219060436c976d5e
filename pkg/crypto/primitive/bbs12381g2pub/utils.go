/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"encoding/binary"
	"errors"
	"fmt"

	ml "github.com/IBM/mathlib"

	"github.com/NuggetsLtd/pairing-crypto/pkg/crypto/primitive/schnorr"
)

// pokPayload is the prefix of a derived proof: the total messages count and a bitmap of revealed indexes.
type pokPayload struct {
	messagesCount int
	revealed      []int
}

// nolint:gomnd
func parsePoKPayload(bytes []byte) (*pokPayload, error) {
	if len(bytes) < 2 {
		return nil, errors.New("invalid size of PoK payload")
	}

	messagesCount := int(binary.BigEndian.Uint16(bytes))
	payload := &pokPayload{messagesCount: messagesCount}

	lenInBytes := payload.lenInBytes()
	if len(bytes) < lenInBytes {
		return nil, errors.New("invalid size of PoK payload")
	}

	bitmap := bytes[2:lenInBytes]
	revealed := make([]int, 0)

	for i := 0; i < len(bitmap)*8; i++ {
		if bitmap[i/8]&(1<<(7-uint(i%8))) == 0 {
			continue
		}

		if i >= messagesCount {
			return nil, fmt.Errorf("%w: PoK payload bit %d set for %d messages", ErrInvalidEncoding, i, messagesCount)
		}

		revealed = append(revealed, i)
	}

	payload.revealed = revealed

	return payload, nil
}

// nolint:gomnd
func (p *pokPayload) toBytes() ([]byte, error) {
	bytes := make([]byte, p.lenInBytes())

	binary.BigEndian.PutUint16(bytes, uint16(p.messagesCount))

	bitmap := bytes[2:]

	for _, r := range p.revealed {
		if r < 0 || r >= p.messagesCount {
			return nil, errors.New("invalid size of PoK payload")
		}

		bitmap[r/8] |= 1 << (7 - uint(r%8))
	}

	return bytes, nil
}

// nolint:gomnd
func (p *pokPayload) lenInBytes() int {
	return 2 + (p.messagesCount / 8) + 1
}

func newPoKPayload(messagesCount int, revealed []int) *pokPayload {
	return &pokPayload{
		messagesCount: messagesCount,
		revealed:      revealed,
	}
}

// compareTwoPairings checks e(p1, q1) == e(p2, q2).
func compareTwoPairings(p1 *ml.G1, q1 *ml.G2, p2 *ml.G1, q2 *ml.G2) bool {
	p2 = p2.Mul(minusOne())

	p := curve.Pairing2(q1, p1, q2, p2)
	p = curve.FExp(p)

	return p.IsUnity()
}

type commitmentBuilder[P schnorr.Point[P]] struct {
	bases   []P
	scalars []*ml.Zr
}

func newCommitmentBuilder[P schnorr.Point[P]](expectedSize int) *commitmentBuilder[P] {
	return &commitmentBuilder[P]{
		bases:   make([]P, 0, expectedSize),
		scalars: make([]*ml.Zr, 0, expectedSize),
	}
}

func (cb *commitmentBuilder[P]) add(base P, scalar *ml.Zr) {
	cb.bases = append(cb.bases, base)
	cb.scalars = append(cb.scalars, scalar)
}

func (cb *commitmentBuilder[P]) build() P {
	return schnorr.SumOfProducts(cb.bases, cb.scalars)
}
