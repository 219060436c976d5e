/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bls defines the byte level API of pairing-based multi-message signatures with selective disclosure.
// The implementation is github.com/NuggetsLtd/pairing-crypto/pkg/crypto/primitive/bbs12381g2pub.
package bls

// Bls signs message vectors and derives and verifies proofs disclosing some of the signed messages.
type Bls interface {
	// GenerateKeyPair derives a key pair for messagesCount messages from seed and keyInfo
	// returns:
	// 		public key bytes, private key bytes and error in case of errors
	GenerateKeyPair(seed, keyInfo []byte, messagesCount int) ([]byte, []byte, error)

	// Sign will sign the messages with the private key
	// returns:
	// 		signature bytes and error in case of errors
	Sign(messages [][]byte, privKeyBytes []byte) ([]byte, error)

	// Verify will verify the signature of the messages against a public key
	// returns:
	// 		error in case of errors or nil if signature verification was successful
	Verify(messages [][]byte, sigBytes, pubKeyBytes []byte) error

	// DeriveProof will derive a proof of the signature disclosing the messages at revealedIndexes
	// returns:
	// 		proof bytes and error in case of errors
	DeriveProof(messages [][]byte, sigBytes, nonce, pubKeyBytes []byte, revealedIndexes []int) ([]byte, error)

	// VerifyProof will verify the proof against the revealed messages in ascending index order
	// returns:
	// 		error in case of errors or nil if proof verification was successful
	VerifyProof(revealedMessages [][]byte, proof, nonce, pubKeyBytes []byte) error
}
