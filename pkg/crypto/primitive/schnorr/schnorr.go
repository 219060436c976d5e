/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package schnorr contains a multi-base Schnorr proof of knowledge engine.
//
// A prover commits to a list of bases with ProverCommitting, either with its own random blinding
// factors or with blindings supplied by the caller, then calls Finish to obtain a ProverCommitted.
// The committed value is absorbed into a Fiat-Shamir transcript and, once the challenge is known,
// GenerateProof returns exactly one response per base, in insertion order.
package schnorr

import (
	"io"

	ml "github.com/IBM/mathlib"
	"github.com/pkg/errors"
)

// ErrBuilderMisuse is returned when a builder is used out of order or with inconsistent inputs.
var ErrBuilderMisuse = errors.New("schnorr builder misuse")

// Point is a group element usable as a commitment base (*ml.G1 and *ml.G2).
type Point[P any] interface {
	Add(P)
	Mul(*ml.Zr) P
	Bytes() []byte
}

// ProverCommitting collects bases and blinding factors of a proof of knowledge.
type ProverCommitting[P Point[P]] struct {
	curve           *ml.Curve
	bases           []P
	blindingFactors []*ml.Zr
	finished        bool
}

// NewProverCommitting creates a new ProverCommitting.
func NewProverCommitting[P Point[P]](curve *ml.Curve, sizeHint int) *ProverCommitting[P] {
	return &ProverCommitting[P]{
		curve:           curve,
		bases:           make([]P, 0, sizeHint),
		blindingFactors: make([]*ml.Zr, 0, sizeHint),
	}
}

// CommitRandom appends a base point and a blinding factor sampled from rng.
func (pc *ProverCommitting[P]) CommitRandom(base P, rng io.Reader) error {
	return pc.Commit(base, pc.curve.NewRandomZr(rng))
}

// Commit appends a base point with a caller supplied blinding factor. The same blinding used for the
// same secret in two proofs makes the corresponding responses comparable.
func (pc *ProverCommitting[P]) Commit(base P, blinding *ml.Zr) error {
	if pc.finished {
		return errors.Wrap(ErrBuilderMisuse, "commit after finish")
	}

	if blinding == nil || isZero(pc.curve, blinding) {
		return errors.Wrap(ErrBuilderMisuse, "zero blinding factor")
	}

	pc.bases = append(pc.bases, base)
	pc.blindingFactors = append(pc.blindingFactors, blinding.Copy())

	return nil
}

// Finish computes the commitment to all blinding factors and hands the state over to a ProverCommitted.
// The ProverCommitting can not be used afterwards.
func (pc *ProverCommitting[P]) Finish() (*ProverCommitted[P], error) {
	if pc.finished {
		return nil, errors.Wrap(ErrBuilderMisuse, "finish called twice")
	}

	if len(pc.bases) == 0 {
		return nil, errors.Wrap(ErrBuilderMisuse, "no bases committed")
	}

	pc.finished = true

	committed := &ProverCommitted[P]{
		curve:           pc.curve,
		bases:           pc.bases,
		blindingFactors: pc.blindingFactors,
		commitment:      SumOfProducts(pc.bases, pc.blindingFactors),
	}

	pc.bases, pc.blindingFactors = nil, nil

	return committed, nil
}

// ProverCommitted holds the finished commitment and generates responses once.
type ProverCommitted[P Point[P]] struct {
	curve           *ml.Curve
	bases           []P
	blindingFactors []*ml.Zr
	commitment      P
	used            bool
}

// Commitment returns the sum of base^blinding over all committed bases.
func (pc *ProverCommitted[P]) Commitment() P {
	return pc.commitment
}

// BasesCount returns the number of committed bases.
func (pc *ProverCommitted[P]) BasesCount() int {
	return len(pc.bases)
}

// AddChallengeContribution writes the canonical (uncompressed) encoding of the commitment into w.
func (pc *ProverCommitted[P]) AddChallengeContribution(w io.Writer) error {
	_, err := w.Write(pc.commitment.Bytes())

	return err
}

// GenerateProof computes response_i = blinding_i + challenge * secret_i for every committed base.
// It can be called only once; blinding factors are dropped afterwards.
func (pc *ProverCommitted[P]) GenerateProof(challenge *ml.Zr, secrets []*ml.Zr) ([]*ml.Zr, error) {
	if pc.used {
		return nil, errors.Wrap(ErrBuilderMisuse, "proof already generated")
	}

	if len(secrets) != len(pc.blindingFactors) {
		return nil, errors.Wrapf(ErrBuilderMisuse, "expected %d secrets but got %d",
			len(pc.blindingFactors), len(secrets))
	}

	if challenge == nil || isZero(pc.curve, challenge) {
		return nil, errors.Wrap(ErrBuilderMisuse, "zero challenge")
	}

	pc.used = true

	responses := make([]*ml.Zr, len(pc.blindingFactors))

	for i := range pc.blindingFactors {
		c := pc.curve.ModMul(challenge, secrets[i], pc.curve.GroupOrder)
		responses[i] = pc.curve.ModAdd(pc.blindingFactors[i], c, pc.curve.GroupOrder)
	}

	pc.blindingFactors = nil

	return responses, nil
}

// RecomputeCommitment returns prod base_i^response_i * commitment^-challenge, which equals the
// prover's blinding commitment when the responses are valid for the committed secrets.
func RecomputeCommitment[P Point[P]](curve *ml.Curve, bases []P, responses []*ml.Zr,
	commitment P, challenge *ml.Zr) (P, error) {
	var zero P

	if len(bases) == 0 || len(bases) != len(responses) {
		return zero, errors.Wrapf(ErrBuilderMisuse, "%d bases and %d responses", len(bases), len(responses))
	}

	negChallenge := curve.ModSub(curve.NewZrFromInt(0), challenge, curve.GroupOrder)

	res := SumOfProducts(bases, responses)
	res.Add(commitment.Mul(negChallenge))

	return res, nil
}

// SumOfProducts returns sum of bases[i]^scalars[i]. Both slices must be non-empty and of equal length.
func SumOfProducts[P Point[P]](bases []P, scalars []*ml.Zr) P {
	res := bases[0].Mul(scalars[0])

	for i := 1; i < len(bases); i++ {
		res.Add(bases[i].Mul(scalars[i]))
	}

	return res
}

func isZero(curve *ml.Curve, z *ml.Zr) bool {
	return z.Equals(curve.NewZrFromInt(0))
}
