/*
SPDX-License-Identifier: Apache-2.0
*/

package hash2field_test

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"

	"github.com/NuggetsLtd/pairing-crypto/internal/hash2field"
)

func TestExpandMessageXMD(t *testing.T) {
	dst := []byte("QUUX-V01-CS02-with-expander-SHA256-128")

	t.Run("RFC 9380 K1 abc", func(t *testing.T) {
		outCnt := 0x20
		out, err := hash2field.ExpandMsgXMD(sha256.New, []byte("abc"), dst, outCnt)
		require.NoError(t, err)
		require.Len(t, out, outCnt)
		require.Equal(t, "d8ccab23b5985ccea865c6c97b6e5b8350e794e603b4b97902f53a8a0d605615", hex.EncodeToString(out))
	})

	t.Run("RFC 9380 K1 abcdef0123456789", func(t *testing.T) {
		outCnt := 0x20
		out, err := hash2field.ExpandMsgXMD(sha256.New, []byte("abcdef0123456789"), dst, outCnt)
		require.NoError(t, err)
		require.Len(t, out, outCnt)
		require.Equal(t, "eff31487c770a893cfb36f912fbfcbff40d5661771ca4b2cb4eafe524333f5c1", hex.EncodeToString(out))
	})

	t.Run("output depends on requested length", func(t *testing.T) {
		out, err := hash2field.ExpandMsgXMD(sha256.New, []byte("abc"), dst, 0x80)
		require.NoError(t, err)
		require.Len(t, out, 0x80)

		short, err := hash2field.ExpandMsgXMD(sha256.New, []byte("abc"), dst, 0x20)
		require.NoError(t, err)
		require.NotEqual(t, short, out[:0x20])
	})

	t.Run("invalid parameters", func(t *testing.T) {
		_, err := hash2field.ExpandMsgXMD(sha256.New, []byte("abc"), make([]byte, 256), 0x20)
		require.EqualError(t, err, "invalid domain length")

		_, err = hash2field.ExpandMsgXMD(sha256.New, []byte("abc"), dst, 256*32)
		require.EqualError(t, err, "invalid output length")

		_, err = hash2field.ExpandMsgXMD(sha256.New, []byte("abc"), dst, 0)
		require.EqualError(t, err, "invalid output length")
	})
}

func TestExpandMessageXOF(t *testing.T) {
	dst := []byte("QUUX-V01-CS02-with-expander-SHAKE256")

	t.Run("RFC 9380 K6 abc", func(t *testing.T) {
		outCnt := 0x20
		out, err := hash2field.ExpandMsgXOF(sha3.NewShake256(), []byte("abc"), dst, outCnt)
		require.NoError(t, err)
		require.Len(t, out, outCnt)
		require.Equal(t, "b39e493867e2767216792abce1f2676c197c0692aed061560ead251821808e07", hex.EncodeToString(out))
	})

	t.Run("RFC 9380 K6 abcdef0123456789", func(t *testing.T) {
		outCnt := 0x20
		out, err := hash2field.ExpandMsgXOF(sha3.NewShake256(), []byte("abcdef0123456789"), dst, outCnt)
		require.NoError(t, err)
		require.Len(t, out, outCnt)
		require.Equal(t, "245389cf44a13f0e70af8665fe5337ec2dcd138890bb7901c4ad9cfceb054b65", hex.EncodeToString(out))
	})

	t.Run("invalid parameters", func(t *testing.T) {
		_, err := hash2field.ExpandMsgXOF(sha3.NewShake256(), []byte("abc"), make([]byte, 256), 0x20)
		require.EqualError(t, err, "invalid domain length")

		_, err = hash2field.ExpandMsgXOF(sha3.NewShake256(), []byte("abc"), dst, 0x10000)
		require.EqualError(t, err, "invalid output length")
	})
}
