/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbscmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-framework-go/component/log"
	spi "github.com/hyperledger/aries-framework-go/spi/log"

	bbs "github.com/NuggetsLtd/pairing-crypto/pkg/crypto/primitive/bbs12381g2pub"
	mockbls "github.com/NuggetsLtd/pairing-crypto/internal/gomocks/crypto/bls"
)

func execute(t *testing.T, cmd *cobra.Command, input interface{}, args ...string) (string, error) {
	t.Helper()

	if input != nil {
		inputBytes, err := json.Marshal(input)
		require.NoError(t, err)

		cmd.SetIn(bytes.NewReader(inputBytes))
	}

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func executeInto(t *testing.T, cmd *cobra.Command, input, output interface{}, args ...string) {
	t.Helper()

	out, err := execute(t, cmd, input, args...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), output))
}

func TestCommandsContents(t *testing.T) {
	cmds := GetCommands(bbs.New())
	require.Len(t, cmds, 5)

	uses := make([]string, len(cmds))
	for i, cmd := range cmds {
		uses[i] = cmd.Use
	}

	require.Equal(t, []string{"keygen", "sign", "verify", "derive-proof", "verify-proof"}, uses)
	require.Equal(t, "Generate a key pair", cmds[0].Short)
}

func TestSignAndDisclose(t *testing.T) {
	bls := bbs.New()
	messages := []string{"first_name", "surname", "date_of_birth", "father", "mother", "credential_id"}

	var keyPair KeyPair

	executeInto(t, KeygenCmd(bls), nil, &keyPair, "--seed", "abc", "--messages-count", "6")
	require.NotEmpty(t, keyPair.PublicKey)
	require.Len(t, keyPair.SecretKey, 32)

	t.Run("keygen is deterministic for a seed", func(t *testing.T) {
		var keyPair2 KeyPair

		executeInto(t, KeygenCmd(bls), nil, &keyPair2, "--seed", "abc", "-n", "6")
		require.Equal(t, keyPair, keyPair2)
	})

	var signResponse SignResponse

	executeInto(t, SignCmd(bls), &SignRequest{SecretKey: keyPair.SecretKey, Messages: messages}, &signResponse)
	require.Len(t, signResponse.Signature, 96)

	t.Run("verify", func(t *testing.T) {
		var verifyResponse VerifyResponse

		executeInto(t, VerifyCmd(bls), &VerifyRequest{
			PublicKey: keyPair.PublicKey,
			Messages:  messages,
			Signature: signResponse.Signature,
		}, &verifyResponse)
		require.Equal(t, VerifyResponse{Verified: true}, verifyResponse)

		executeInto(t, VerifyCmd(bls), &VerifyRequest{
			PublicKey: keyPair.PublicKey,
			Messages:  append([]string{"last_name"}, messages[1:]...),
			Signature: signResponse.Signature,
		}, &verifyResponse)
		require.Equal(t, VerifyResponse{Error: "invalid BLS12-381 signature"}, verifyResponse)
	})

	deriveRequest := &DeriveProofRequest{
		PublicKey:           keyPair.PublicKey,
		Signature:           signResponse.Signature,
		PresentationMessage: "presentation",
	}

	for i, m := range messages {
		deriveRequest.Messages = append(deriveRequest.Messages, DeriveProofMessage{Reveal: i == 0 || i == 2, Value: m})
	}

	var deriveResponse DeriveProofResponse

	executeInto(t, DeriveProofCmd(bls), deriveRequest, &deriveResponse)
	require.NotEmpty(t, deriveResponse.Proof)

	t.Run("verify proof", func(t *testing.T) {
		var verifyResponse VerifyResponse

		request := &VerifyProofRequest{
			PublicKey:           keyPair.PublicKey,
			Proof:               deriveResponse.Proof,
			PresentationMessage: "presentation",
			TotalMessageCount:   6,
			Messages:            map[string]string{"2": messages[2], "0": messages[0]},
		}

		executeInto(t, VerifyProofCmd(bls), request, &verifyResponse)
		require.Equal(t, VerifyResponse{Verified: true}, verifyResponse)

		request.PresentationMessage = "another presentation"

		executeInto(t, VerifyProofCmd(bls), request, &verifyResponse)
		require.Equal(t, VerifyResponse{Error: "invalid BLS12-381 signature proof"}, verifyResponse)

		request.PresentationMessage = "presentation"
		request.Messages = map[string]string{"0": messages[0], "6": messages[2]}

		executeInto(t, VerifyProofCmd(bls), request, &verifyResponse)
		require.Equal(t, VerifyResponse{Error: "message index 6 out of range of 6 messages"}, verifyResponse)

		request.Messages = map[string]string{"2": messages[2], "0": messages[0]}
		request.TotalMessageCount = 7

		executeInto(t, VerifyProofCmd(bls), request, &verifyResponse)
		require.Equal(t, VerifyResponse{Error: "proof is over 6 messages but 7 messages are declared"}, verifyResponse)

		request.TotalMessageCount = 6
		request.Proof = []byte{0}

		executeInto(t, VerifyProofCmd(bls), request, &verifyResponse)
		require.Equal(t, VerifyResponse{Error: "parse signature proof: invalid size of PoK payload"}, verifyResponse)

		request.Proof = deriveResponse.Proof
		request.Messages = map[string]string{"0": messages[0], "two": messages[2]}

		executeInto(t, VerifyProofCmd(bls), request, &verifyResponse)
		require.False(t, verifyResponse.Verified)
		require.Contains(t, verifyResponse.Error, "invalid message index 'two'")
	})

	t.Run("input file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "request.json")

		requestBytes, err := json.Marshal(&VerifyRequest{
			PublicKey: keyPair.PublicKey,
			Messages:  messages,
			Signature: signResponse.Signature,
		})
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, requestBytes, 0o600))

		var verifyResponse VerifyResponse

		executeInto(t, VerifyCmd(bls), nil, &verifyResponse, "-i", path)
		require.True(t, verifyResponse.Verified)

		t.Setenv(inputEnvKey, path)

		executeInto(t, VerifyCmd(bls), nil, &verifyResponse)
		require.True(t, verifyResponse.Verified)

		_, err = execute(t, VerifyCmd(bls), nil, "--input", filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to read input")
	})
}

func TestDecodeBytes(t *testing.T) {
	raw := []byte{0, 1, 2, 3}

	t.Run("multibase", func(t *testing.T) {
		encoded, err := json.Marshal(EncodedBytes(raw))
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(string(encoded), `"z`))

		var decoded EncodedBytes
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		require.Equal(t, EncodedBytes(raw), decoded)
	})

	t.Run("plain base58", func(t *testing.T) {
		// a leading zero byte encodes as '1', which is not a multibase prefix
		decoded, err := decodeBytes(base58.Encode(raw))
		require.NoError(t, err)
		require.Equal(t, raw, decoded)
	})

	t.Run("plain base58 starting with another multibase prefix", func(t *testing.T) {
		// "fab" is also base16 multibase for 0xab
		decoded, err := decodeBytes("fab")
		require.NoError(t, err)
		require.Equal(t, []byte{0x01, 0xfa, 0xf4}, decoded)
	})

	t.Run("invalid base58btc multibase", func(t *testing.T) {
		_, err := decodeBytes("z0OIl")
		require.Error(t, err)
		require.Contains(t, err.Error(), "'z0OIl' is not base58btc multibase encoded")
	})

	t.Run("empty", func(t *testing.T) {
		decoded, err := decodeBytes("")
		require.NoError(t, err)
		require.Empty(t, decoded)
	})
}

func TestKeygenCmd_Errors(t *testing.T) {
	t.Run("messages count not set", func(t *testing.T) {
		_, err := execute(t, KeygenCmd(bbs.New()), nil)
		require.EqualError(t, err, "Neither messages-count (command line flag) nor BBS_TOOL_MESSAGES_COUNT"+
			" (environment variable) have been set.")
	})

	t.Run("messages count from environment", func(t *testing.T) {
		t.Setenv(messagesCountEnvKey, "2")
		t.Setenv(seedEnvKey, "abc")
		t.Setenv(keyInfoEnvKey, "info")

		var keyPair KeyPair

		executeInto(t, KeygenCmd(bbs.New()), nil, &keyPair)

		pubKey, err := bbs.UnmarshalPublicKey(keyPair.PublicKey)
		require.NoError(t, err)
		require.Equal(t, 2, pubKey.MessagesCount())
	})

	t.Run("invalid messages count", func(t *testing.T) {
		_, err := execute(t, KeygenCmd(bbs.New()), nil, "-n", "two")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to parse messages count 'two'")

		_, err = execute(t, KeygenCmd(bbs.New()), nil, "-n", "0")
		require.EqualError(t, err, "create public key: invalid messages count 0")
	})
}

func TestRequestCmd_Errors(t *testing.T) {
	t.Run("invalid JSON", func(t *testing.T) {
		cmd := SignCmd(bbs.New())
		cmd.SetIn(strings.NewReader("{"))

		_, err := execute(t, cmd, nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to parse sign request")
	})

	t.Run("invalid encoding", func(t *testing.T) {
		cmd := VerifyCmd(bbs.New())
		cmd.SetIn(strings.NewReader(`{"publicKey":"0OIl"}`))

		_, err := execute(t, cmd, nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "is neither multibase nor base58 encoded")
	})

	t.Run("sign error", func(t *testing.T) {
		_, err := execute(t, SignCmd(bbs.New()), &SignRequest{SecretKey: []byte{1, 2}, Messages: []string{"a"}})
		require.EqualError(t, err, "unmarshal private key: invalid size of private key")
	})
}

func TestDeriveProofCmd_Scheme(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	request := &DeriveProofRequest{
		PublicKey:           []byte{1},
		Signature:           []byte{2},
		PresentationMessage: "nonce",
		Messages: []DeriveProofMessage{
			{Value: "a"},
			{Reveal: true, Value: "b"},
			{Value: "c"},
			{Reveal: true, Value: "d"},
		},
	}

	t.Run("revealed indexes passed in request order", func(t *testing.T) {
		scheme := mockbls.NewMockBls(ctrl)
		scheme.EXPECT().DeriveProof(
			[][]byte{[]byte("a"), []byte("b"), []byte("c"), []byte("d")},
			[]byte{2}, []byte("nonce"), []byte{1}, []int{1, 3},
		).Return([]byte{0, 1}, nil)

		var response DeriveProofResponse

		executeInto(t, DeriveProofCmd(scheme), request, &response)
		require.Equal(t, EncodedBytes{0, 1}, response.Proof)
	})

	t.Run("scheme error", func(t *testing.T) {
		scheme := mockbls.NewMockBls(ctrl)
		scheme.EXPECT().DeriveProof(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("derive failed"))

		_, err := execute(t, DeriveProofCmd(scheme), request)
		require.EqualError(t, err, "derive failed")
	})
}

func TestSetLogLevel(t *testing.T) {
	t.Run("valid level", func(t *testing.T) {
		_, err := execute(t, KeygenCmd(bbs.New()), nil, "-n", "1", "--log-level", "DEBUG")
		require.NoError(t, err)
		require.Equal(t, spi.DEBUG, log.GetLevel(""))

		require.NoError(t, setLogLevel("INFO"))
		require.Equal(t, spi.INFO, log.GetLevel(""))
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := execute(t, KeygenCmd(bbs.New()), nil, "-n", "1", "--log-level", "mock")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to parse log level 'mock'")
	})
}
