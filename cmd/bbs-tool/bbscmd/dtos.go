/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbscmd

import (
	"encoding/json"

	"github.com/btcsuite/btcutil/base58"
	"github.com/multiformats/go-multibase"
	"github.com/pkg/errors"
)

// EncodedBytes are bytes written to JSON as a base58btc multibase string ('z' prefix). Strings without
// the 'z' prefix are read as plain base58, so a plain base58 value starting with 'z' is not supported.
type EncodedBytes []byte

// MarshalJSON encodes the bytes as a multibase string.
func (b EncodedBytes) MarshalJSON() ([]byte, error) {
	encoded, err := multibase.Encode(multibase.Base58BTC, b)
	if err != nil {
		return nil, err
	}

	return json.Marshal(encoded)
}

// UnmarshalJSON decodes a multibase or a plain base58 string.
func (b *EncodedBytes) UnmarshalJSON(data []byte) error {
	var encoded string

	if err := json.Unmarshal(data, &encoded); err != nil {
		return err
	}

	decoded, err := decodeBytes(encoded)
	if err != nil {
		return err
	}

	*b = decoded

	return nil
}

func decodeBytes(encoded string) ([]byte, error) {
	if encoded == "" {
		return []byte{}, nil
	}

	if encoded[0] == byte(multibase.Base58BTC) {
		_, decoded, err := multibase.Decode(encoded)
		if err != nil {
			return nil, errors.Wrapf(err, "'%s' is not base58btc multibase encoded", encoded)
		}

		return decoded, nil
	}

	decoded := base58.Decode(encoded)
	if len(decoded) == 0 {
		return nil, errors.Errorf("'%s' is neither multibase nor base58 encoded", encoded)
	}

	return decoded, nil
}

// KeyPair is the output of keygen.
type KeyPair struct {
	PublicKey EncodedBytes `json:"publicKey"`
	SecretKey EncodedBytes `json:"secretKey,omitempty"`
}

// SignRequest is the input of sign.
type SignRequest struct {
	SecretKey EncodedBytes `json:"secretKey"`
	Messages  []string     `json:"messages"`
}

// SignResponse is the output of sign.
type SignResponse struct {
	Signature EncodedBytes `json:"signature"`
}

// VerifyRequest is the input of verify.
type VerifyRequest struct {
	PublicKey EncodedBytes `json:"publicKey"`
	Messages  []string     `json:"messages"`
	Signature EncodedBytes `json:"signature"`
}

// VerifyResponse is the output of verify and verify-proof.
type VerifyResponse struct {
	Verified bool   `json:"verified"`
	Error    string `json:"error,omitempty"`
}

// DeriveProofMessage is a signed message and whether the proof discloses it.
type DeriveProofMessage struct {
	Reveal bool   `json:"reveal"`
	Value  string `json:"value"`
}

// DeriveProofRequest is the input of derive-proof.
type DeriveProofRequest struct {
	PublicKey           EncodedBytes         `json:"publicKey"`
	Messages            []DeriveProofMessage `json:"messages"`
	Signature           EncodedBytes         `json:"signature"`
	PresentationMessage string               `json:"presentationMessage"`
}

// DeriveProofResponse is the output of derive-proof.
type DeriveProofResponse struct {
	Proof EncodedBytes `json:"proof"`
}

// VerifyProofRequest is the input of verify-proof. Messages holds the revealed messages keyed by their index.
type VerifyProofRequest struct {
	PublicKey           EncodedBytes      `json:"publicKey"`
	Proof               EncodedBytes      `json:"proof"`
	PresentationMessage string            `json:"presentationMessage"`
	TotalMessageCount   int               `json:"totalMessageCount"`
	Messages            map[string]string `json:"messages"`
}
