/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"errors"
	"fmt"

	ml "github.com/IBM/mathlib"
	"golang.org/x/exp/slices"

	"github.com/NuggetsLtd/pairing-crypto/pkg/crypto/primitive/schnorr"
	"github.com/NuggetsLtd/pairing-crypto/pkg/crypto/primitive/transcript"
)

// PoKOfSignatureProof defines BLS signature proof.
// It is the actual proof that is sent from prover to verifier.
type PoKOfSignatureProof struct {
	Sigma1     *ml.G1
	Sigma2     *ml.G1
	Commitment *ml.G2
	Responses  []*ml.Zr
}

func signatureProofLen(hiddenCount int) int {
	return 2*g1CompressedSize + g2CompressedSize + (pokFixedBasesCount+hiddenCount)*frCompressedSize
}

// ParseSignatureProof parses a signature proof hiding hiddenCount messages.
func ParseSignatureProof(sigProofBytes []byte, hiddenCount int) (*PoKOfSignatureProof, error) {
	if hiddenCount < 0 || len(sigProofBytes) != signatureProofLen(hiddenCount) {
		return nil, fmt.Errorf("invalid size of signature proof: %w", ErrInvalidEncoding)
	}

	offset := 0

	sigma1, err := curve.NewG1FromCompressed(sigProofBytes[offset : offset+g1CompressedSize])
	if err != nil {
		return nil, fmt.Errorf("parse G1 point: %w: %w", ErrInvalidEncoding, err)
	}

	offset += g1CompressedSize

	sigma2, err := curve.NewG1FromCompressed(sigProofBytes[offset : offset+g1CompressedSize])
	if err != nil {
		return nil, fmt.Errorf("parse G1 point: %w: %w", ErrInvalidEncoding, err)
	}

	offset += g1CompressedSize

	commitment, err := curve.NewG2FromCompressed(sigProofBytes[offset : offset+g2CompressedSize])
	if err != nil {
		return nil, fmt.Errorf("parse G2 point: %w: %w", ErrInvalidEncoding, err)
	}

	offset += g2CompressedSize

	responses := make([]*ml.Zr, pokFixedBasesCount+hiddenCount)

	for i := range responses {
		responses[i], err = parseFr(sigProofBytes[offset : offset+frCompressedSize])
		if err != nil {
			return nil, fmt.Errorf("parse response %d: %w", i, err)
		}

		offset += frCompressedSize
	}

	return &PoKOfSignatureProof{
		Sigma1:     sigma1,
		Sigma2:     sigma2,
		Commitment: commitment,
		Responses:  responses,
	}, nil
}

// ToBytes converts PoKOfSignatureProof to bytes.
func (sp *PoKOfSignatureProof) ToBytes() []byte {
	bytes := make([]byte, 0, signatureProofLen(len(sp.Responses)-pokFixedBasesCount))

	bytes = append(bytes, sp.Sigma1.Compressed()...)
	bytes = append(bytes, sp.Sigma2.Compressed()...)
	bytes = append(bytes, sp.Commitment.Compressed()...)
	bytes = append(bytes, frToBytes(sp.Responses...)...)

	return bytes
}

// HiddenCount returns the number of messages hidden by the proof.
func (sp *PoKOfSignatureProof) HiddenCount() int {
	return len(sp.Responses) - pokFixedBasesCount
}

// VerifySignaturePoK checks the proof against the revealed messages (keyed by index), the key generators,
// the nonce and the challenge the prover claims to have derived.
func VerifySignaturePoK(revealedMessages map[int]*SignatureMessage, pk *PublicKey, gens *MessageGenerators,
	proof *PoKOfSignatureProof, nonce *ProofNonce, challenge *Challenge,
	newTranscript func() transcript.Transcript) bool {
	if err := proof.verify(revealedMessages, pk, gens, nonce, challenge, newTranscript); err != nil {
		logger.Debugf("verify signature proof: %v", err)

		return false
	}

	return true
}

// nolint:gocyclo
func (sp *PoKOfSignatureProof) verify(revealedMessages map[int]*SignatureMessage, pk *PublicKey,
	gens *MessageGenerators, nonce *ProofNonce, challenge *Challenge,
	newTranscript func() transcript.Transcript) error {
	if challenge == nil || sp.Sigma1 == nil || sp.Sigma2 == nil || sp.Commitment == nil {
		return errors.New("incomplete proof")
	}

	messagesCount := gens.Len()
	if messagesCount > len(gens.Y) {
		return ErrMismatchedLengths
	}

	revealedIndexes := make([]int, 0, len(revealedMessages))

	for i, m := range revealedMessages {
		if i < 0 || i >= messagesCount {
			return fmt.Errorf("revealed index %d out of range", i)
		}

		if m == nil || m.FR == nil {
			return fmt.Errorf("revealed message %d is not defined", i)
		}

		revealedIndexes = append(revealedIndexes, i)
	}

	slices.Sort(revealedIndexes)

	hiddenCount := messagesCount - len(revealedIndexes)
	if len(sp.Responses) != pokFixedBasesCount+hiddenCount {
		return fmt.Errorf("expected %d responses but got %d", pokFixedBasesCount+hiddenCount, len(sp.Responses))
	}

	if sp.Sigma1.IsInfinity() || sp.Sigma2.IsInfinity() {
		return errors.New("identity signature point")
	}

	bases := make([]*ml.G2, 0, pokFixedBasesCount+hiddenCount)
	bases = append(bases, curve.GenG2, gens.W)

	for i := 0; i < messagesCount; i++ {
		if _, ok := revealedMessages[i]; !ok {
			bases = append(bases, gens.Y[i])
		}
	}

	blindingCommitment, err := schnorr.RecomputeCommitment(curve, bases, sp.Responses, sp.Commitment, challenge.fr)
	if err != nil {
		return err
	}

	t := newTranscript()

	for _, b := range [][]byte{
		sp.Sigma1.Bytes(), sp.Sigma2.Bytes(), sp.Commitment.Bytes(), blindingCommitment.Bytes(), nonce.ToBytes(),
	} {
		if _, err = t.Write(b); err != nil {
			return err
		}
	}

	recomputed, err := NewChallenge(t)
	if err != nil {
		return err
	}

	if !recomputed.Equals(challenge) {
		return errors.New("challenge mismatch")
	}

	cb := newCommitmentBuilder[*ml.G2](len(revealedIndexes) + 2) //nolint:gomnd

	cb.add(pk.X, curve.NewZrFromInt(1))
	cb.add(sp.Commitment, curve.NewZrFromInt(1))

	for _, i := range revealedIndexes {
		cb.add(gens.Y[i], revealedMessages[i].FR)
	}

	if !compareTwoPairings(sp.Sigma1, cb.build(), sp.Sigma2, curve.GenG2) {
		return errors.New("pairing check failed")
	}

	return nil
}
