/*
SPDX-License-Identifier: Apache-2.0
(https://github.com/kilic/bls12-381/blob/master/LICENSE)

Based on https://github.com/kilic/bls12-381/blob/master/hash_to_field.go
(rev a288617c07f1bd60613c43dbde211b4a911e4791)

Changes:
1) hash function is passed as input for expandMsgXMD() - i.e. don't stick on SHA-256 only.
2) added expand_message_xof (RFC 9380, section 5.3.2).
*/

// Package hash2field implements the expand_message variants used to map byte strings to field elements.
package hash2field

import (
	"errors"
	"hash"

	"golang.org/x/crypto/sha3"
)

const (
	maxDomainLen = 255
	maxOutLen    = 65535
)

var (
	errDomainLen = errors.New("invalid domain length")
	errOutLen    = errors.New("invalid output length")
)

// ExpandMsgXMD expands msg into outLen uniform bytes with a Merkle-Damgard hash function.
func ExpandMsgXMD(f func() hash.Hash, msg, domain []byte, outLen int) ([]byte, error) {
	if len(domain) > maxDomainLen {
		return nil, errDomainLen
	}

	h := f()

	ell := (outLen + h.Size() - 1) / h.Size()
	if ell > maxDomainLen || outLen > maxOutLen || outLen <= 0 {
		return nil, errOutLen
	}

	domainLen := byte(len(domain))

	// DST_prime = DST || I2OSP(len(DST), 1)
	// b_0 = H(Z_pad || msg || l_i_b_str || I2OSP(0, 1) || DST_prime)
	_, _ = h.Write(make([]byte, h.BlockSize()))
	_, _ = h.Write(msg)
	_, _ = h.Write([]byte{byte(outLen >> 8), byte(outLen)}) //nolint:gomnd
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(domain)
	_, _ = h.Write([]byte{domainLen})
	b0 := h.Sum(nil)

	// b_1 = H(b_0 || I2OSP(1, 1) || DST_prime)
	h.Reset()
	_, _ = h.Write(b0)
	_, _ = h.Write([]byte{1})
	_, _ = h.Write(domain)
	_, _ = h.Write([]byte{domainLen})
	bi := h.Sum(nil)

	out := make([]byte, 0, ell*h.Size())
	out = append(out, bi...)

	tmp := make([]byte, h.Size())

	for i := 2; i <= ell; i++ {
		// b_i = H(strxor(b_0, b_(i - 1)) || I2OSP(i, 1) || DST_prime)
		for j := range tmp {
			tmp[j] = b0[j] ^ bi[j]
		}

		h.Reset()
		_, _ = h.Write(tmp)
		_, _ = h.Write([]byte{byte(i)})
		_, _ = h.Write(domain)
		_, _ = h.Write([]byte{domainLen})
		bi = h.Sum(nil)

		out = append(out, bi...)
	}

	return out[:outLen], nil
}

// ExpandMsgXOF expands msg into outLen uniform bytes with an extendable-output function.
// The passed ShakeHash must be fresh, it is written to and read from.
func ExpandMsgXOF(h sha3.ShakeHash, msg, domain []byte, outLen int) ([]byte, error) {
	if len(domain) > maxDomainLen {
		return nil, errDomainLen
	}

	if outLen > maxOutLen || outLen <= 0 {
		return nil, errOutLen
	}

	// msg_prime = msg || I2OSP(len_in_bytes, 2) || DST || I2OSP(len(DST), 1)
	_, _ = h.Write(msg)
	_, _ = h.Write([]byte{byte(outLen >> 8), byte(outLen)}) //nolint:gomnd
	_, _ = h.Write(domain)
	_, _ = h.Write([]byte{byte(len(domain))})

	out := make([]byte, outLen)

	// ShakeHash.Read never fails.
	_, _ = h.Read(out)

	return out, nil
}
