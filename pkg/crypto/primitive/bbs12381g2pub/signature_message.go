/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	ml "github.com/IBM/mathlib"
)

// SignatureMessage defines a message to be used for a signature check.
type SignatureMessage struct {
	FR  *ml.Zr
	Idx int
}

// ParseSignatureMessage parses SignatureMessage from bytes.
func ParseSignatureMessage(message []byte) *SignatureMessage {
	return &SignatureMessage{
		FR: frFromOKM(message),
	}
}

// ParseSignatureMessages parses messages and sets their positions.
func ParseSignatureMessages(messages [][]byte) []*SignatureMessage {
	return messagesToFr(messages)
}

func messagesToFr(messages [][]byte) []*SignatureMessage {
	messagesFr := make([]*SignatureMessage, len(messages))

	for i := range messages {
		messagesFr[i] = ParseSignatureMessage(messages[i])
		messagesFr[i].Idx = i
	}

	return messagesFr
}

// ProofMessage is a message passed to a proof of knowledge. It is one of RevealedMessage, HiddenMessage or
// HiddenMessageExternalBlinding.
type ProofMessage interface {
	message() *SignatureMessage
}

// RevealedMessage is disclosed to the verifier.
type RevealedMessage struct {
	Message *SignatureMessage
}

// HiddenMessage is hidden with a blinding factor sampled by the prover.
type HiddenMessage struct {
	Message *SignatureMessage
}

// HiddenMessageExternalBlinding is hidden with a caller supplied blinding factor. Two proofs using the same
// blinding for the same message produce equal responses for it under the same challenge.
type HiddenMessageExternalBlinding struct {
	Message  *SignatureMessage
	Blinding *ml.Zr
}

func (m RevealedMessage) message() *SignatureMessage               { return m.Message }
func (m HiddenMessage) message() *SignatureMessage                 { return m.Message }
func (m HiddenMessageExternalBlinding) message() *SignatureMessage { return m.Message }

// NewProofMessages wraps messages into proof messages revealing the ones at revealedIndexes.
func NewProofMessages(messages []*SignatureMessage, revealedIndexes []int) []ProofMessage {
	revealed := make(map[int]bool, len(revealedIndexes))
	for _, i := range revealedIndexes {
		revealed[i] = true
	}

	proofMessages := make([]ProofMessage, len(messages))

	for i, m := range messages {
		if revealed[i] {
			proofMessages[i] = RevealedMessage{Message: m}
		} else {
			proofMessages[i] = HiddenMessage{Message: m}
		}
	}

	return proofMessages
}

func proofMessagesToFr(messages []ProofMessage) []*SignatureMessage {
	messagesFr := make([]*SignatureMessage, len(messages))

	for i, m := range messages {
		messagesFr[i] = m.message()
	}

	return messagesFr
}
