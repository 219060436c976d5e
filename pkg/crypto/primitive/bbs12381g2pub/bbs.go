/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bbs12381g2pub contains a multi-message signature scheme over BLS12-381 with public keys in G2,
// and non-interactive proofs of knowledge of a signature that disclose a chosen subset of the signed messages.
//
// BBSG2Pub works on byte encodings of keys, signatures and proofs. The lower level types (PrivateKey,
// PublicKey, MessageGenerators, Signature, PoKOfSignature and PoKOfSignatureProof) can be used directly
// when messages are already scalars or when hidden messages have to be linked across proofs.
package bbs12381g2pub

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"io"

	ml "github.com/IBM/mathlib"
	"github.com/bluele/gcache"
	"github.com/hyperledger/aries-framework-go/component/log"
	"golang.org/x/exp/slices"

	"github.com/NuggetsLtd/pairing-crypto/pkg/crypto/primitive/transcript"
)

// nolint:gochecknoglobals
var (
	curve  = ml.Curves[ml.BLS12_381_BBS]
	logger = log.New("pairing-crypto/bbs")
)

const (
	// Signature length.
	bls12381SignatureLen = 2 * g1CompressedSize

	// Number of bytes in G1 X coordinate.
	g1CompressedSize = 48

	// Number of bytes in G2 X(a, b) coordinate.
	g2CompressedSize = 96

	// Number of bytes in scalar compressed form.
	frCompressedSize = 32

	// Number of bytes in scalar uncompressed form.
	frUncompressedSize = 48
)

// BBSG2Pub defines the signature scheme where public key is a point in the field of G2.
type BBSG2Pub struct {
	rng           io.Reader
	newTranscript func() transcript.Transcript
	keyHash       func() hash.Hash
	pubKeys       gcache.Cache
}

// Option configures BBSG2Pub.
type Option func(*BBSG2Pub)

// WithRand sets the random source used for proofs and key generation.
func WithRand(rng io.Reader) Option {
	return func(bbs *BBSG2Pub) {
		bbs.rng = rng
	}
}

// WithTranscript sets the Fiat-Shamir transcript used for proof challenges. Provers and verifiers must agree on it.
func WithTranscript(newTranscript func() transcript.Transcript) Option {
	return func(bbs *BBSG2Pub) {
		bbs.newTranscript = newTranscript
	}
}

// WithKeyHash sets the hash used by HKDF when deriving private keys from seeds.
func WithKeyHash(h func() hash.Hash) Option {
	return func(bbs *BBSG2Pub) {
		bbs.keyHash = h
	}
}

// WithPublicKeyCache keeps up to size parsed and validated public keys. A size of zero or less disables the cache.
func WithPublicKeyCache(size int) Option {
	return func(bbs *BBSG2Pub) {
		if size <= 0 {
			bbs.pubKeys = nil

			return
		}

		bbs.pubKeys = gcache.New(size).LRU().Build()
	}
}

// New creates a new BBSG2Pub.
func New(opts ...Option) *BBSG2Pub {
	bbs := &BBSG2Pub{
		rng:           rand.Reader,
		newTranscript: func() transcript.Transcript { return transcript.NewShake256() },
		keyHash:       sha256.New,
	}

	for _, opt := range opts {
		opt(bbs)
	}

	return bbs
}

// GenerateKeyPair derives a key pair for messagesCount messages from seed and keyInfo. A nil seed is
// replaced by a random one. It returns the public and private key bytes.
func (bbs *BBSG2Pub) GenerateKeyPair(seed, keyInfo []byte, messagesCount int) ([]byte, []byte, error) {
	if seed == nil {
		seed = make([]byte, seedSize)

		if _, err := io.ReadFull(bbs.rng, seed); err != nil {
			return nil, nil, fmt.Errorf("read seed: %w", err)
		}
	}

	privKey, err := NewPrivateKey(bbs.keyHash, seed, keyInfo)
	if err != nil {
		return nil, nil, fmt.Errorf("create private key: %w", err)
	}

	pubKey, err := privKey.PublicKey(messagesCount)
	if err != nil {
		return nil, nil, fmt.Errorf("create public key: %w", err)
	}

	pubKeyBytes, err := pubKey.Marshal()
	if err != nil {
		return nil, nil, fmt.Errorf("marshal public key: %w", err)
	}

	privKeyBytes, err := privKey.Marshal()
	if err != nil {
		return nil, nil, fmt.Errorf("marshal private key: %w", err)
	}

	return pubKeyBytes, privKeyBytes, nil
}

// Verify makes BLS BBS12-381 signature verification.
func (bbs *BBSG2Pub) Verify(messages [][]byte, sigBytes, pubKeyBytes []byte) error {
	if len(messages) == 0 {
		return errors.New("messages are not defined")
	}

	signature, err := ParseSignature(sigBytes)
	if err != nil {
		return fmt.Errorf("parse signature: %w", err)
	}

	pubKey, err := bbs.parsePublicKey(pubKeyBytes)
	if err != nil {
		return fmt.Errorf("parse public key: %w", err)
	}

	gens, err := NewMessageGenerators(pubKey, len(messages))
	if err != nil {
		return fmt.Errorf("build generators from public key: %w", err)
	}

	if !signature.Verify(messagesToFr(messages), pubKey, gens) {
		return errors.New("invalid BLS12-381 signature")
	}

	return nil
}

// Sign signs the one or more messages using private key in compressed form.
func (bbs *BBSG2Pub) Sign(messages [][]byte, privKeyBytes []byte) ([]byte, error) {
	privKey, err := UnmarshalPrivateKey(privKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("unmarshal private key: %w", err)
	}

	if len(messages) == 0 {
		return nil, errors.New("messages are not defined")
	}

	return bbs.SignWithKey(messages, privKey)
}

// SignWithKey signs the one or more messages using the private key.
func (bbs *BBSG2Pub) SignWithKey(messages [][]byte, privKey *PrivateKey) ([]byte, error) {
	if len(messages) > MaxMessagesCount {
		return nil, fmt.Errorf("too many messages: %w", ErrMismatchedLengths)
	}

	signature, err := NewSignature(privKey, privKey.signingGenerators(len(messages)), messagesToFr(messages))
	if err != nil {
		return nil, fmt.Errorf("sign messages: %w", err)
	}

	return signature.ToBytes(), nil
}

// DeriveProof derives a proof of signature with the messages at revealedIndexes disclosed.
func (bbs *BBSG2Pub) DeriveProof(messages [][]byte, sigBytes, nonce, pubKeyBytes []byte,
	revealedIndexes []int) ([]byte, error) {
	return bbs.DeriveProofWithBlindings(messages, sigBytes, nonce, pubKeyBytes, revealedIndexes, nil)
}

// DeriveProofWithBlindings derives a proof like DeriveProof. Hidden messages listed in blindings are
// committed with a blinding factor derived from the given bytes, so the same message hidden with the same
// blinding bytes can be linked across proofs sharing a challenge.
// nolint:funlen
func (bbs *BBSG2Pub) DeriveProofWithBlindings(messages [][]byte, sigBytes, nonce, pubKeyBytes []byte,
	revealedIndexes []int, blindings map[int][]byte) ([]byte, error) {
	messagesCount := len(messages)
	if messagesCount == 0 {
		return nil, errors.New("messages are not defined")
	}

	revealed, err := normalizeRevealedIndexes(revealedIndexes, messagesCount)
	if err != nil {
		return nil, err
	}

	pubKey, err := bbs.parsePublicKey(pubKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	gens, err := NewMessageGenerators(pubKey, messagesCount)
	if err != nil {
		return nil, fmt.Errorf("build generators from public key: %w", err)
	}

	signature, err := ParseSignature(sigBytes)
	if err != nil {
		return nil, fmt.Errorf("parse signature: %w", err)
	}

	messagesFr := messagesToFr(messages)

	if !signature.Verify(messagesFr, pubKey, gens) {
		return nil, errors.New("invalid BLS12-381 signature")
	}

	proofMessages := NewProofMessages(messagesFr, revealed)

	for i, b := range blindings {
		if i < 0 || i >= messagesCount {
			return nil, fmt.Errorf("blinding index %d out of range", i)
		}

		if _, ok := slices.BinarySearch(revealed, i); ok {
			return nil, fmt.Errorf("blinding for revealed message %d", i)
		}

		proofMessages[i] = HiddenMessageExternalBlinding{
			Message:  messagesFr[i],
			Blinding: Hash2scalar(b),
		}
	}

	proof, challenge, err := bbs.DeriveProofFromMessages(proofMessages, signature, pubKey, gens,
		ParseProofNonce(nonce))
	if err != nil {
		return nil, err
	}

	payloadBytes, err := newPoKPayload(messagesCount, revealed).toBytes()
	if err != nil {
		return nil, fmt.Errorf("derive proof: payload to bytes: %w", err)
	}

	signatureProofBytes := append(payloadBytes, challenge.ToBytes()...)
	signatureProofBytes = append(signatureProofBytes, proof.ToBytes()...)

	return signatureProofBytes, nil
}

// DeriveProofFromMessages derives a proof of knowledge of signature over already parsed proof messages.
// It returns the proof and its challenge, which the verifier needs next to the proof.
func (bbs *BBSG2Pub) DeriveProofFromMessages(proofMessages []ProofMessage, signature *Signature, pubKey *PublicKey,
	gens *MessageGenerators, nonce *ProofNonce) (*PoKOfSignatureProof, *Challenge, error) {
	pokSignature, err := NewPoKOfSignature(signature, pubKey, gens, proofMessages, bbs.rng)
	if err != nil {
		return nil, nil, fmt.Errorf("init proof of knowledge signature: %w", err)
	}

	t := bbs.newTranscript()

	if err = pokSignature.AddProofContribution(t); err != nil {
		return nil, nil, fmt.Errorf("derive proof: %w", err)
	}

	if _, err = t.Write(nonce.ToBytes()); err != nil {
		return nil, nil, fmt.Errorf("derive proof: add nonce: %w", err)
	}

	challenge, err := NewChallenge(t)
	if err != nil {
		return nil, nil, fmt.Errorf("derive proof: %w", err)
	}

	proof, err := pokSignature.GenerateProof(challenge)
	if err != nil {
		return nil, nil, fmt.Errorf("derive proof: %w", err)
	}

	return proof, challenge, nil
}

// VerifyProof verifies a signature proof for the revealed messages, given in ascending index order.
func (bbs *BBSG2Pub) VerifyProof(revealedMessages [][]byte, proof, nonce, pubKeyBytes []byte) error {
	payload, err := parsePoKPayload(proof)
	if err != nil {
		return fmt.Errorf("parse signature proof: %w", err)
	}

	if len(payload.revealed) != len(revealedMessages) {
		return fmt.Errorf("expected %d revealed messages but got %d", len(payload.revealed), len(revealedMessages))
	}

	offset := payload.lenInBytes()
	if len(proof) < offset+frCompressedSize {
		return errors.New("parse signature proof: invalid size of signature proof")
	}

	challenge, err := ParseChallenge(proof[offset : offset+frCompressedSize])
	if err != nil {
		return fmt.Errorf("parse signature proof: %w", err)
	}

	signatureProof, err := ParseSignatureProof(proof[offset+frCompressedSize:],
		payload.messagesCount-len(payload.revealed))
	if err != nil {
		return fmt.Errorf("parse signature proof: %w", err)
	}

	pubKey, err := bbs.parsePublicKey(pubKeyBytes)
	if err != nil {
		return fmt.Errorf("parse public key: %w", err)
	}

	gens, err := NewMessageGenerators(pubKey, payload.messagesCount)
	if err != nil {
		return fmt.Errorf("build generators from public key: %w", err)
	}

	revealed := make(map[int]*SignatureMessage, len(payload.revealed))

	for i, idx := range payload.revealed {
		revealed[idx] = ParseSignatureMessage(revealedMessages[i])
		revealed[idx].Idx = idx
	}

	if !bbs.VerifyProofFromMessages(revealed, signatureProof, challenge, pubKey, gens, ParseProofNonce(nonce)) {
		return errors.New("invalid BLS12-381 signature proof")
	}

	return nil
}

// VerifyProofFromMessages verifies a proof of knowledge of signature against revealed messages keyed by index.
func (bbs *BBSG2Pub) VerifyProofFromMessages(revealed map[int]*SignatureMessage, proof *PoKOfSignatureProof,
	challenge *Challenge, pubKey *PublicKey, gens *MessageGenerators, nonce *ProofNonce) bool {
	return VerifySignaturePoK(revealed, pubKey, gens, proof, nonce, challenge, bbs.newTranscript)
}

// ProofMessagesCount returns the total messages count a derived proof was created for.
func ProofMessagesCount(proof []byte) (int, error) {
	payload, err := parsePoKPayload(proof)
	if err != nil {
		return 0, fmt.Errorf("parse signature proof: %w", err)
	}

	return payload.messagesCount, nil
}

func (bbs *BBSG2Pub) parsePublicKey(pubKeyBytes []byte) (*PublicKey, error) {
	if bbs.pubKeys != nil {
		if cached, err := bbs.pubKeys.Get(string(pubKeyBytes)); err == nil {
			if pubKey, ok := cached.(*PublicKey); ok {
				return pubKey, nil
			}
		}
	}

	pubKey, err := UnmarshalPublicKey(pubKeyBytes)
	if err != nil {
		return nil, err
	}

	if err = pubKey.Validate(); err != nil {
		return nil, err
	}

	if bbs.pubKeys != nil {
		if err = bbs.pubKeys.Set(string(pubKeyBytes), pubKey); err != nil {
			logger.Warnf("cache public key: %v", err)
		}
	}

	return pubKey, nil
}

// normalizeRevealedIndexes returns a sorted copy of indexes without duplicates.
func normalizeRevealedIndexes(indexes []int, messagesCount int) ([]int, error) {
	revealed := slices.Clone(indexes)
	slices.Sort(revealed)
	revealed = slices.Compact(revealed)

	for _, i := range revealed {
		if i < 0 || i >= messagesCount {
			return nil, fmt.Errorf("revealed index %d out of range", i)
		}
	}

	if revealed == nil {
		revealed = []int{}
	}

	return revealed, nil
}
