/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package pairingcrypto provides a pairing-based multi-message signature over BLS12-381 with
// zero-knowledge selective disclosure of the signed messages.
//
// Packages for end developer usage
//
// pkg/crypto/primitive/bbs12381g2pub: Key generation, signing, verification, proof derivation and proof
// verification. BBSG2Pub implements the byte oriented pkg/crypto/bls.Bls API, the typed API (PrivateKey,
// PublicKey, MessageGenerators, Signature, PoKOfSignature) is available for callers managing their own
// Fiat-Shamir transcript.
//
// pkg/crypto/primitive/schnorr: Multi-base Schnorr proof of knowledge engine over G1 or G2.
//
// pkg/crypto/primitive/transcript: Fiat-Shamir transcripts (SHAKE256 and Merlin).
//
// cmd/bbs-tool: Command line tool working with JSON requests.
//
// Basic workflow
//
//      1) Create a scheme with bbs12381g2pub.New, passing options.
//      2) Generate a key pair for the number of messages to sign.
//      3) Sign the messages with the private key and hand the signature to the holder.
//      4) The holder derives a proof revealing some messages, bound to a verifier's nonce.
//      5) The verifier checks the proof against the revealed messages and the public key.
package pairingcrypto
