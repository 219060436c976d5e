/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"errors"
	"fmt"
	"io"

	ml "github.com/IBM/mathlib"

	"github.com/NuggetsLtd/pairing-crypto/pkg/crypto/primitive/schnorr"
)

type pokState int

const (
	pokCommitted pokState = iota
	pokChallengeBound
	pokProofGenerated
)

// Bases committed before the hidden messages: g2 (for t) and W (for m').
const pokFixedBasesCount = 2

// PoKOfSignature is Proof of Knowledge of a Signature that is used by the prover to construct PoKOfSignatureProof.
// It must be fed to a transcript with AddProofContribution before GenerateProof is called.
type PoKOfSignature struct {
	sigma1 *ml.G1
	sigma2 *ml.G1
	j      *ml.G2

	pokVC   *schnorr.ProverCommitted[*ml.G2]
	secrets []*ml.Zr

	state pokState
}

// NewPoKOfSignature re-randomizes the signature and commits to the hidden messages of a proof.
func NewPoKOfSignature(signature *Signature, pk *PublicKey, gens *MessageGenerators, messages []ProofMessage,
	rng io.Reader) (*PoKOfSignature, error) {
	if len(messages) == 0 {
		return nil, errors.New("messages are not defined")
	}

	if len(messages) > gens.Len() || len(messages) > len(gens.Y) {
		return nil, fmt.Errorf("%d messages and %d generators: %w", len(messages), gens.Len(), ErrMismatchedLengths)
	}

	messagesFr := proofMessagesToFr(messages)

	for i, m := range messagesFr {
		if m == nil || m.FR == nil {
			return nil, fmt.Errorf("message %d is not defined", i)
		}
	}

	r, err := nonZeroRandomFr(rng)
	if err != nil {
		return nil, err
	}

	t := curve.NewRandomZr(rng)

	sigma1 := signature.Sigma1.Mul(r)

	sigma2 := signature.Sigma1.Mul(t)
	sigma2.Add(signature.Sigma2)
	sigma2 = sigma2.Mul(r)

	mTick := computeMTick(signature.Sigma1, signatureMessagesBytes(messagesFr))

	expectedSize := pokFixedBasesCount + len(messages)
	committing := schnorr.NewProverCommitting[*ml.G2](curve, expectedSize)
	jBuilder := newCommitmentBuilder[*ml.G2](expectedSize)
	secrets := make([]*ml.Zr, 0, expectedSize)

	commit := func(base *ml.G2, secret, blinding *ml.Zr) error {
		var err error

		if blinding == nil {
			err = committing.CommitRandom(base, rng)
		} else {
			err = committing.Commit(base, blinding)
		}

		if err != nil {
			return err
		}

		jBuilder.add(base, secret)
		secrets = append(secrets, secret)

		return nil
	}

	if err := commit(curve.GenG2, t, nil); err != nil {
		return nil, err
	}

	if err := commit(gens.W, mTick, nil); err != nil {
		return nil, err
	}

	for i, m := range messages {
		var err error

		switch m := m.(type) {
		case RevealedMessage:
			continue
		case HiddenMessage:
			err = commit(gens.Y[i], m.Message.FR, nil)
		case HiddenMessageExternalBlinding:
			if m.Blinding == nil {
				return nil, fmt.Errorf("blinding of message %d is not defined", i)
			}

			err = commit(gens.Y[i], m.Message.FR, m.Blinding)
		default:
			return nil, fmt.Errorf("unsupported proof message %T", m)
		}

		if err != nil {
			return nil, fmt.Errorf("commit message %d: %w", i, err)
		}
	}

	pokVC, err := committing.Finish()
	if err != nil {
		return nil, err
	}

	return &PoKOfSignature{
		sigma1:  sigma1,
		sigma2:  sigma2,
		j:       jBuilder.build(),
		pokVC:   pokVC,
		secrets: secrets,
		state:   pokCommitted,
	}, nil
}

func nonZeroRandomFr(rng io.Reader) (*ml.Zr, error) {
	const attempts = 8

	for i := 0; i < attempts; i++ {
		fr := curve.NewRandomZr(rng)
		if !isZero(fr) {
			return fr, nil
		}
	}

	return nil, errors.New("random source returned only zero scalars")
}

// AddProofContribution writes sigma_1', sigma_2', J and the blinding commitment to w, all uncompressed.
func (pos *PoKOfSignature) AddProofContribution(w io.Writer) error {
	if pos.state != pokCommitted {
		return fmt.Errorf("proof contribution already added: %w", ErrBuilderMisuse)
	}

	for _, b := range [][]byte{pos.sigma1.Bytes(), pos.sigma2.Bytes(), pos.j.Bytes()} {
		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("add proof contribution: %w", err)
		}
	}

	if err := pos.pokVC.AddChallengeContribution(w); err != nil {
		return fmt.Errorf("add proof contribution: %w", err)
	}

	pos.state = pokChallengeBound

	return nil
}

// GenerateProof generates PoKOfSignatureProof proof from PoKOfSignature signature.
func (pos *PoKOfSignature) GenerateProof(challenge *Challenge) (*PoKOfSignatureProof, error) {
	switch pos.state {
	case pokCommitted:
		return nil, fmt.Errorf("proof contribution was not added: %w", ErrBuilderMisuse)
	case pokProofGenerated:
		return nil, fmt.Errorf("proof already generated: %w", ErrBuilderMisuse)
	case pokChallengeBound:
	}

	if challenge == nil {
		return nil, fmt.Errorf("challenge is not defined: %w", ErrBuilderMisuse)
	}

	responses, err := pos.pokVC.GenerateProof(challenge.fr, pos.secrets)
	if err != nil {
		return nil, err
	}

	pos.state = pokProofGenerated
	pos.secrets = nil

	return &PoKOfSignatureProof{
		Sigma1:     pos.sigma1,
		Sigma2:     pos.sigma2,
		Commitment: pos.j,
		Responses:  responses,
	}, nil
}
