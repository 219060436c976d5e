/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"io"

	ml "github.com/IBM/mathlib"
	"golang.org/x/crypto/hkdf"
)

const (
	seedSize        = frCompressedSize
	generateKeySalt = "BBS-SIG-KEYGEN-SALT-"

	// MaxMessagesCount is the largest number of messages a public key can be generated for.
	MaxMessagesCount = 1<<16 - 1

	messagesCountSize = 2
)

// PrivateKey defines BLS Private Key.
type PrivateKey struct {
	FR *ml.Zr
}

// PublicKey defines the public key for a fixed number of messages. X, W and Y are in G2; WG1 and H are the
// matching G1 points used by the signer.
type PublicKey struct {
	X   *ml.G2
	W   *ml.G2
	Y   []*ml.G2
	WG1 *ml.G1
	H   []*ml.G1
}

// NewPrivateKey derives a PrivateKey from a seed of any length and an optional key info.
func NewPrivateKey(h func() hash.Hash, seed, keyInfo []byte) (*PrivateKey, error) {
	okm, err := generateOKM(seed, keyInfo, h)
	if err != nil {
		return nil, err
	}

	fr := frFromWideBytes(okm)
	if isZero(fr) {
		return nil, ErrDegenerateKey
	}

	return &PrivateKey{FR: fr}, nil
}

// GenerateKeyPair generates a PublicKey for messagesCount messages and its PrivateKey from a seed read from rng.
func GenerateKeyPair(h func() hash.Hash, rng io.Reader, messagesCount int) (*PublicKey, *PrivateKey, error) {
	seed := make([]byte, seedSize)

	if _, err := io.ReadFull(rng, seed); err != nil {
		return nil, nil, fmt.Errorf("read seed: %w", err)
	}

	privKey, err := NewPrivateKey(h, seed, nil)
	if err != nil {
		return nil, nil, err
	}

	pubKey, err := privKey.PublicKey(messagesCount)
	if err != nil {
		return nil, nil, err
	}

	return pubKey, privKey, nil
}

// UnmarshalPrivateKey unmarshals PrivateKey.
func UnmarshalPrivateKey(privKeyBytes []byte) (*PrivateKey, error) {
	if len(privKeyBytes) != frCompressedSize {
		return nil, errors.New("invalid size of private key")
	}

	fr, err := parseFr(privKeyBytes)
	if err != nil {
		return nil, err
	}

	if isZero(fr) {
		return nil, ErrDegenerateKey
	}

	return &PrivateKey{
		FR: fr,
	}, nil
}

// Marshal marshals PrivateKey.
func (k *PrivateKey) Marshal() ([]byte, error) {
	return k.FR.Bytes(), nil
}

// PublicKey returns the Public Key for messagesCount messages generated from the Private Key.
func (k *PrivateKey) PublicKey(messagesCount int) (*PublicKey, error) {
	if messagesCount <= 0 || messagesCount > MaxMessagesCount {
		return nil, fmt.Errorf("invalid messages count %d", messagesCount)
	}

	w, y := k.derivedScalars(messagesCount)

	pubKey := &PublicKey{
		X:   curve.GenG2.Mul(k.FR),
		W:   curve.GenG2.Mul(w),
		WG1: curve.GenG1.Mul(w),
		Y:   make([]*ml.G2, messagesCount),
		H:   make([]*ml.G1, messagesCount),
	}

	for i := range y {
		pubKey.Y[i] = curve.GenG2.Mul(y[i])
		pubKey.H[i] = curve.GenG1.Mul(y[i])
	}

	return pubKey, nil
}

// signingGenerators returns the G1 half of the message generators, which is all the signer needs.
func (k *PrivateKey) signingGenerators(messagesCount int) *MessageGenerators {
	w, y := k.derivedScalars(messagesCount)

	gens := &MessageGenerators{
		WG1: curve.GenG1.Mul(w),
		H:   make([]*ml.G1, messagesCount),
	}

	for i := range y {
		gens.H[i] = curve.GenG1.Mul(y[i])
	}

	return gens
}

// derivedScalars returns w and y_0..y_{n-1}. Each scalar depends only on x and its slot, so keys of different
// sizes agree on their common slots.
func (k *PrivateKey) derivedScalars(messagesCount int) (*ml.Zr, []*ml.Zr) {
	x := k.FR.Bytes()
	input := make([]byte, len(x)+4) //nolint:gomnd
	copy(input, x)

	derive := func(slot int) *ml.Zr {
		binary.BigEndian.PutUint32(input[len(x):], uint32(slot))

		return hash2scalars(input, []byte(keyDST), 1)[0]
	}

	y := make([]*ml.Zr, messagesCount)
	for i := range y {
		y[i] = derive(i + 1)
	}

	return derive(0), y
}

// MessagesCount returns the number of messages the key can sign.
func (pk *PublicKey) MessagesCount() int {
	return len(pk.Y)
}

// Marshal marshals PublicKey as count || X || W || WG1 || Y... || H... with compressed points.
func (pk *PublicKey) Marshal() ([]byte, error) {
	if len(pk.Y) != len(pk.H) || len(pk.Y) > MaxMessagesCount {
		return nil, errors.New("invalid public key generators")
	}

	bytes := make([]byte, messagesCountSize, publicKeyLen(len(pk.Y)))
	binary.BigEndian.PutUint16(bytes, uint16(len(pk.Y)))

	bytes = append(bytes, pk.X.Compressed()...)
	bytes = append(bytes, pk.W.Compressed()...)
	bytes = append(bytes, pk.WG1.Compressed()...)

	for _, y := range pk.Y {
		bytes = append(bytes, y.Compressed()...)
	}

	for _, h := range pk.H {
		bytes = append(bytes, h.Compressed()...)
	}

	return bytes, nil
}

func publicKeyLen(messagesCount int) int {
	return messagesCountSize + 2*g2CompressedSize + g1CompressedSize +
		messagesCount*(g2CompressedSize+g1CompressedSize)
}

// UnmarshalPublicKey parses a PublicKey from bytes.
func UnmarshalPublicKey(pubKeyBytes []byte) (*PublicKey, error) {
	if len(pubKeyBytes) < messagesCountSize {
		return nil, errors.New("invalid size of public key")
	}

	messagesCount := int(binary.BigEndian.Uint16(pubKeyBytes))
	if messagesCount == 0 || len(pubKeyBytes) != publicKeyLen(messagesCount) {
		return nil, errors.New("invalid size of public key")
	}

	r := &pointReader{bytes: pubKeyBytes[messagesCountSize:]}

	pubKey := &PublicKey{
		X:   r.g2(),
		W:   r.g2(),
		WG1: r.g1(),
		Y:   make([]*ml.G2, messagesCount),
		H:   make([]*ml.G1, messagesCount),
	}

	for i := range pubKey.Y {
		pubKey.Y[i] = r.g2()
	}

	for i := range pubKey.H {
		pubKey.H[i] = r.g1()
	}

	if r.err != nil {
		return nil, fmt.Errorf("deserialize public key: %w", r.err)
	}

	return pubKey, nil
}

// Validate checks that no point is the identity and that every G1 generator matches its G2 counterpart.
func (pk *PublicKey) Validate() error {
	if len(pk.Y) == 0 || len(pk.Y) != len(pk.H) {
		return errors.New("invalid public key generators")
	}

	if curve.FExp(curve.Pairing(pk.X, curve.GenG1)).IsUnity() {
		return fmt.Errorf("identity public key: %w", ErrInvalidEncoding)
	}

	if !sameExponent(pk.WG1, pk.W) {
		return fmt.Errorf("mismatched W generators: %w", ErrInvalidEncoding)
	}

	for i := range pk.Y {
		if !sameExponent(pk.H[i], pk.Y[i]) {
			return fmt.Errorf("mismatched generators for message %d: %w", i, ErrInvalidEncoding)
		}
	}

	return nil
}

// sameExponent checks p = g1^a and q = g2^a for some non-zero a.
func sameExponent(p *ml.G1, q *ml.G2) bool {
	if p.IsInfinity() {
		return false
	}

	return compareTwoPairings(p, curve.GenG2, curve.GenG1, q)
}

// pointReader decodes consecutive compressed points and keeps the first error.
type pointReader struct {
	bytes []byte
	err   error
}

func (r *pointReader) next(n int) []byte {
	if r.err != nil {
		return nil
	}

	if len(r.bytes) < n {
		r.err = fmt.Errorf("unexpected end of input: %w", ErrInvalidEncoding)

		return nil
	}

	b := r.bytes[:n]
	r.bytes = r.bytes[n:]

	return b
}

func (r *pointReader) g1() *ml.G1 {
	b := r.next(g1CompressedSize)
	if b == nil {
		return nil
	}

	p, err := curve.NewG1FromCompressed(b)
	if err != nil {
		r.err = fmt.Errorf("%w: %w", ErrInvalidEncoding, err)

		return nil
	}

	return p
}

func (r *pointReader) g2() *ml.G2 {
	b := r.next(g2CompressedSize)
	if b == nil {
		return nil
	}

	p, err := curve.NewG2FromCompressed(b)
	if err != nil {
		r.err = fmt.Errorf("%w: %w", ErrInvalidEncoding, err)

		return nil
	}

	return p
}

func generateOKM(ikm, keyInfo []byte, h func() hash.Hash) ([]byte, error) {
	salt := []byte(generateKeySalt)

	ikmExt := make([]byte, len(ikm)+1)
	copy(ikmExt, ikm)

	info := make([]byte, len(keyInfo)+2) //nolint:gomnd
	copy(info, keyInfo)
	binary.BigEndian.PutUint16(info[len(keyInfo):], frUncompressedSize)

	return newHKDF(h, ikmExt, salt, info, frUncompressedSize)
}

func newHKDF(h func() hash.Hash, ikm, salt, info []byte, length int) ([]byte, error) {
	reader := hkdf.New(h, ikm, salt, info)
	result := make([]byte, length)

	_, err := io.ReadFull(reader, result)
	if err != nil {
		return nil, err
	}

	return result, nil
}
