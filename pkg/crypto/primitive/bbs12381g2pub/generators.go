/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"fmt"

	ml "github.com/IBM/mathlib"
)

// MessageGenerators are the per message generators of a public key for a given messages count.
// W and Y are used by verifiers and provers, WG1 and H by the signer.
type MessageGenerators struct {
	W   *ml.G2
	WG1 *ml.G1
	Y   []*ml.G2
	H   []*ml.G1
}

// NewMessageGenerators selects the generators of the first messagesCount slots of pk.
func NewMessageGenerators(pk *PublicKey, messagesCount int) (*MessageGenerators, error) {
	if messagesCount <= 0 {
		return nil, fmt.Errorf("invalid messages count %d", messagesCount)
	}

	if messagesCount > pk.MessagesCount() || messagesCount > len(pk.H) {
		return nil, fmt.Errorf("%d messages for a key of %d: %w",
			messagesCount, pk.MessagesCount(), ErrMismatchedLengths)
	}

	return &MessageGenerators{
		W:   pk.W,
		WG1: pk.WG1,
		Y:   pk.Y[:messagesCount],
		H:   pk.H[:messagesCount],
	}, nil
}

// Len returns the number of messages the generators cover.
func (g *MessageGenerators) Len() int {
	return len(g.H)
}
