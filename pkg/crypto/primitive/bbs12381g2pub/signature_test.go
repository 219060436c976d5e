/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub_test

import (
	"crypto/sha256"
	"testing"

	ml "github.com/IBM/mathlib"
	"github.com/stretchr/testify/require"

	bbs "github.com/NuggetsLtd/pairing-crypto/pkg/crypto/primitive/bbs12381g2pub"
)

type testKey struct {
	privKey *bbs.PrivateKey
	pubKey  *bbs.PublicKey
	gens    *bbs.MessageGenerators
}

func newTestKey(t *testing.T, seed string, messagesCount int) *testKey {
	t.Helper()

	privKey, err := bbs.NewPrivateKey(sha256.New, []byte(seed), nil)
	require.NoError(t, err)

	pubKey, err := privKey.PublicKey(messagesCount)
	require.NoError(t, err)

	gens, err := bbs.NewMessageGenerators(pubKey, messagesCount)
	require.NoError(t, err)

	return &testKey{privKey: privKey, pubKey: pubKey, gens: gens}
}

func TestSignature(t *testing.T) {
	key := newTestKey(t, "abc", len(testClaims))
	messages := bbs.ParseSignatureMessages(testClaims)

	signature, err := bbs.NewSignature(key.privKey, key.gens, messages)
	require.NoError(t, err)
	require.True(t, signature.Verify(messages, key.pubKey, key.gens))

	t.Run("encoding", func(t *testing.T) {
		sigBytes := signature.ToBytes()
		require.Len(t, sigBytes, 96)

		parsed, err := bbs.ParseSignature(sigBytes)
		require.NoError(t, err)
		require.True(t, parsed.Sigma1.Equals(signature.Sigma1))
		require.True(t, parsed.Sigma2.Equals(signature.Sigma2))
		require.True(t, parsed.Verify(messages, key.pubKey, key.gens))
	})

	t.Run("deterministic", func(t *testing.T) {
		signature2, err := bbs.NewSignature(key.privKey, key.gens, messages)
		require.NoError(t, err)
		require.Equal(t, signature.ToBytes(), signature2.ToBytes())
	})

	t.Run("any modified message fails", func(t *testing.T) {
		for i := range messages {
			modified := append([]*bbs.SignatureMessage{}, messages...)
			modified[i] = bbs.ParseSignatureMessage([]byte("modified"))

			require.False(t, signature.Verify(modified, key.pubKey, key.gens), "message %d", i)
		}
	})

	t.Run("swapped signature points fail", func(t *testing.T) {
		swapped := &bbs.Signature{Sigma1: signature.Sigma2, Sigma2: signature.Sigma1}
		require.False(t, swapped.Verify(messages, key.pubKey, key.gens))
	})

	t.Run("another key fails", func(t *testing.T) {
		other := newTestKey(t, "abcdefgh", len(testClaims))
		require.False(t, signature.Verify(messages, other.pubKey, other.gens))
	})

	t.Run("message count mismatch fails", func(t *testing.T) {
		require.False(t, signature.Verify(messages[:3], key.pubKey, key.gens))
		require.False(t, signature.Verify(nil, key.pubKey, key.gens))
	})

	t.Run("fewer messages than generators", func(t *testing.T) {
		signature3, err := bbs.NewSignature(key.privKey, key.gens, messages[:3])
		require.NoError(t, err)
		require.True(t, signature3.Verify(messages[:3], key.pubKey, key.gens))
	})

	t.Run("more messages than generators", func(t *testing.T) {
		small := newTestKey(t, "abc", 2)

		_, err := bbs.NewSignature(small.privKey, small.gens, messages)
		require.ErrorIs(t, err, bbs.ErrMismatchedLengths)

		require.False(t, signature.Verify(messages, small.pubKey, small.gens))
	})

	t.Run("messages are not defined", func(t *testing.T) {
		_, err := bbs.NewSignature(key.privKey, key.gens, nil)
		require.EqualError(t, err, "messages are not defined")
	})
}

func TestParseSignature(t *testing.T) {
	curve := ml.Curves[ml.BLS12_381_BBS]

	t.Run("invalid size", func(t *testing.T) {
		_, err := bbs.ParseSignature(make([]byte, 112))
		require.ErrorIs(t, err, bbs.ErrInvalidEncoding)
	})

	t.Run("invalid point", func(t *testing.T) {
		sigBytes := make([]byte, 96)
		for i := range sigBytes {
			sigBytes[i] = 0xff
		}

		_, err := bbs.ParseSignature(sigBytes)
		require.ErrorIs(t, err, bbs.ErrInvalidEncoding)
	})

	t.Run("identity point", func(t *testing.T) {
		identity := curve.GenG1.Mul(curve.NewZrFromInt(0))

		sigBytes := append(identity.Compressed(), curve.GenG1.Compressed()...)

		_, err := bbs.ParseSignature(sigBytes)
		require.ErrorIs(t, err, bbs.ErrInvalidEncoding)
	})
}

func TestNewMessageGenerators(t *testing.T) {
	key := newTestKey(t, "abc", 4)

	gens, err := bbs.NewMessageGenerators(key.pubKey, 2)
	require.NoError(t, err)
	require.Equal(t, 2, gens.Len())
	require.True(t, gens.Y[1].Equals(key.pubKey.Y[1]))

	_, err = bbs.NewMessageGenerators(key.pubKey, 5)
	require.ErrorIs(t, err, bbs.ErrMismatchedLengths)

	_, err = bbs.NewMessageGenerators(key.pubKey, 0)
	require.EqualError(t, err, "invalid messages count 0")
}
