/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"errors"

	"github.com/NuggetsLtd/pairing-crypto/pkg/crypto/primitive/schnorr"
)

var (
	// ErrMismatchedLengths is returned when there are fewer message generators than messages.
	ErrMismatchedLengths = errors.New("mismatched messages and generators")

	// ErrDegenerateKey is returned when a secret scalar or x+e is zero.
	ErrDegenerateKey = errors.New("degenerate key")

	// ErrInvalidEncoding is returned when bytes can not be decoded into points or scalars.
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrBuilderMisuse is returned when a proof is built out of order.
	ErrBuilderMisuse = schnorr.ErrBuilderMisuse
)
