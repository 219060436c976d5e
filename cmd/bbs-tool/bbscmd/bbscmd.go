/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bbscmd contains the commands of bbs-tool: key generation, signing, signature verification,
// proof derivation and proof verification over JSON requests.
package bbscmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/hyperledger/aries-framework-go/component/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/NuggetsLtd/pairing-crypto/pkg/crypto/bls"
	bbs "github.com/NuggetsLtd/pairing-crypto/pkg/crypto/primitive/bbs12381g2pub"
)

const (
	// input flag.
	inputFlagName      = "input"
	inputEnvKey        = "BBS_TOOL_INPUT"
	inputFlagShorthand = "i"
	inputFlagUsage     = "Path of the JSON request. Reads standard input if not set or set to '-'." +
		" Alternatively, this can be set with the following environment variable: " + inputEnvKey

	// log level.
	logLevelFlagName  = "log-level"
	logLevelEnvKey    = "BBS_TOOL_LOG_LEVEL"
	logLevelFlagUsage = "Log level." +
		" Possible values [INFO] [DEBUG] [ERROR] [WARNING] [CRITICAL] . Defaults to INFO if not set." +
		" Alternatively, this can be set with the following environment variable: " + logLevelEnvKey

	// key generation seed.
	seedFlagName  = "seed"
	seedEnvKey    = "BBS_TOOL_SEED"
	seedFlagUsage = "Seed of the key pair (optional, random if not set)." +
		" Alternatively, this can be set with the following environment variable: " + seedEnvKey

	// key generation info.
	keyInfoFlagName  = "key-info"
	keyInfoEnvKey    = "BBS_TOOL_KEY_INFO"
	keyInfoFlagUsage = "Key info mixed into the key derivation (optional)." +
		" Alternatively, this can be set with the following environment variable: " + keyInfoEnvKey

	// number of messages the public key supports.
	messagesCountFlagName      = "messages-count"
	messagesCountEnvKey        = "BBS_TOOL_MESSAGES_COUNT"
	messagesCountFlagShorthand = "n"
	messagesCountFlagUsage     = "Number of messages the public key can sign." +
		" Alternatively, this can be set with the following environment variable: " + messagesCountEnvKey
)

var logger = log.New("pairing-crypto/bbs-tool") //nolint:gochecknoglobals

// GetCommands returns the bbs-tool commands backed by scheme.
func GetCommands(scheme bls.Bls) []*cobra.Command {
	return []*cobra.Command{
		KeygenCmd(scheme),
		SignCmd(scheme),
		VerifyCmd(scheme),
		DeriveProofCmd(scheme),
		VerifyProofCmd(scheme),
	}
}

// KeygenCmd returns the command generating a key pair.
func KeygenCmd(scheme bls.Bls) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair",
		Long:  `Generate a key pair for a fixed number of messages, optionally from a seed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogLevel(cmd); err != nil {
				return err
			}

			count, err := getUserSetVar(cmd, messagesCountFlagName, messagesCountEnvKey, false)
			if err != nil {
				return err
			}

			messagesCount, err := strconv.Atoi(count)
			if err != nil {
				return fmt.Errorf("failed to parse messages count '%s': %w", count, err)
			}

			seed, err := getOptionalBytes(cmd, seedFlagName, seedEnvKey)
			if err != nil {
				return err
			}

			keyInfo, err := getOptionalBytes(cmd, keyInfoFlagName, keyInfoEnvKey)
			if err != nil {
				return err
			}

			pubKey, privKey, err := scheme.GenerateKeyPair(seed, keyInfo, messagesCount)
			if err != nil {
				return err
			}

			logger.Debugf("generated key pair for %d messages", messagesCount)

			return writeResponse(cmd, &KeyPair{PublicKey: pubKey, SecretKey: privKey})
		},
	}

	createLogLevelFlag(cmd)
	cmd.Flags().String(seedFlagName, "", seedFlagUsage)
	cmd.Flags().String(keyInfoFlagName, "", keyInfoFlagUsage)
	cmd.Flags().StringP(messagesCountFlagName, messagesCountFlagShorthand, "", messagesCountFlagUsage)

	return cmd
}

// SignCmd returns the command signing messages.
func SignCmd(scheme bls.Bls) *cobra.Command {
	return createRequestCmd("sign", "Sign messages",
		func(cmd *cobra.Command, input []byte) (interface{}, error) {
			var request SignRequest

			if err := json.Unmarshal(input, &request); err != nil {
				return nil, fmt.Errorf("failed to parse sign request: %w", err)
			}

			signature, err := scheme.Sign(toBytes(request.Messages), request.SecretKey)
			if err != nil {
				return nil, err
			}

			return &SignResponse{Signature: signature}, nil
		})
}

// VerifyCmd returns the command verifying a signature.
func VerifyCmd(scheme bls.Bls) *cobra.Command {
	return createRequestCmd("verify", "Verify a signature",
		func(cmd *cobra.Command, input []byte) (interface{}, error) {
			var request VerifyRequest

			if err := json.Unmarshal(input, &request); err != nil {
				return nil, fmt.Errorf("failed to parse verify request: %w", err)
			}

			return newVerifyResponse(scheme.Verify(toBytes(request.Messages), request.Signature, request.PublicKey)), nil
		})
}

// DeriveProofCmd returns the command deriving a proof of a signature.
func DeriveProofCmd(scheme bls.Bls) *cobra.Command {
	return createRequestCmd("derive-proof", "Derive a proof disclosing some of the signed messages",
		func(cmd *cobra.Command, input []byte) (interface{}, error) {
			var request DeriveProofRequest

			if err := json.Unmarshal(input, &request); err != nil {
				return nil, fmt.Errorf("failed to parse derive proof request: %w", err)
			}

			messages := make([][]byte, len(request.Messages))
			revealed := make([]int, 0, len(request.Messages))

			for i, m := range request.Messages {
				messages[i] = []byte(m.Value)

				if m.Reveal {
					revealed = append(revealed, i)
				}
			}

			proof, err := scheme.DeriveProof(messages, request.Signature, []byte(request.PresentationMessage),
				request.PublicKey, revealed)
			if err != nil {
				return nil, err
			}

			logger.Debugf("derived proof revealing %d of %d messages", len(revealed), len(messages))

			return &DeriveProofResponse{Proof: proof}, nil
		})
}

// VerifyProofCmd returns the command verifying a proof.
func VerifyProofCmd(scheme bls.Bls) *cobra.Command {
	return createRequestCmd("verify-proof", "Verify a proof against the revealed messages",
		func(cmd *cobra.Command, input []byte) (interface{}, error) {
			var request VerifyProofRequest

			if err := json.Unmarshal(input, &request); err != nil {
				return nil, fmt.Errorf("failed to parse verify proof request: %w", err)
			}

			revealed, err := revealedMessages(request.Messages, request.TotalMessageCount)
			if err != nil {
				return newVerifyResponse(err), nil
			}

			proofMessagesCount, err := bbs.ProofMessagesCount(request.Proof)
			if err != nil {
				return newVerifyResponse(err), nil
			}

			if proofMessagesCount != request.TotalMessageCount {
				return newVerifyResponse(fmt.Errorf("proof is over %d messages but %d messages are declared",
					proofMessagesCount, request.TotalMessageCount)), nil
			}

			return newVerifyResponse(scheme.VerifyProof(revealed, request.Proof, []byte(request.PresentationMessage),
				request.PublicKey)), nil
		})
}

type requestHandler func(cmd *cobra.Command, input []byte) (interface{}, error)

func createRequestCmd(use, short string, handle requestHandler) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  short + ". The JSON request is read from the input file or standard input.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogLevel(cmd); err != nil {
				return err
			}

			input, err := readInput(cmd)
			if err != nil {
				return err
			}

			response, err := handle(cmd, input)
			if err != nil {
				return err
			}

			return writeResponse(cmd, response)
		},
	}

	createLogLevelFlag(cmd)
	cmd.Flags().StringP(inputFlagName, inputFlagShorthand, "", inputFlagUsage)

	return cmd
}

func createLogLevelFlag(cmd *cobra.Command) {
	cmd.Flags().String(logLevelFlagName, "", logLevelFlagUsage)
}

// revealedMessages orders the revealed messages by index.
func revealedMessages(messages map[string]string, totalMessageCount int) ([][]byte, error) {
	indexes := make([]int, 0, len(messages))
	values := make(map[int]string, len(messages))

	for key, value := range messages {
		idx, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid message index '%s': %w", key, err)
		}

		if idx < 0 || idx >= totalMessageCount {
			return nil, fmt.Errorf("message index %d out of range of %d messages", idx, totalMessageCount)
		}

		indexes = append(indexes, idx)
		values[idx] = value
	}

	sort.Ints(indexes)

	revealed := make([][]byte, len(indexes))
	for i, idx := range indexes {
		revealed[i] = []byte(values[idx])
	}

	return revealed, nil
}

func newVerifyResponse(err error) *VerifyResponse {
	if err != nil {
		logger.Debugf("verification failed: %v", err)

		return &VerifyResponse{Error: err.Error()}
	}

	return &VerifyResponse{Verified: true}
}

func toBytes(messages []string) [][]byte {
	bytes := make([][]byte, len(messages))
	for i := range messages {
		bytes[i] = []byte(messages[i])
	}

	return bytes
}

func readInput(cmd *cobra.Command) ([]byte, error) {
	path, err := getUserSetVar(cmd, inputFlagName, inputEnvKey, true)
	if err != nil {
		return nil, err
	}

	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}

	input, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return input, nil
}

func writeResponse(cmd *cobra.Command, response interface{}) error {
	bytes, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bytes))

	return err
}

func getOptionalBytes(cmd *cobra.Command, flagName, envKey string) ([]byte, error) {
	value, err := getUserSetVar(cmd, flagName, envKey, true)
	if err != nil {
		return nil, err
	}

	if value == "" {
		return nil, nil
	}

	return []byte(value), nil
}

func initLogLevel(cmd *cobra.Command) error {
	logLevel, err := getUserSetVar(cmd, logLevelFlagName, logLevelEnvKey, true)
	if err != nil {
		return err
	}

	return setLogLevel(logLevel)
}

func setLogLevel(logLevel string) error {
	if logLevel != "" {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("failed to parse log level '%s' : %w", logLevel, err)
		}

		log.SetLevel("", level)

		logger.Infof("logger level set to %s", logLevel)
	}

	return nil
}

func getUserSetVar(cmd *cobra.Command, flagName, envKey string, isOptional bool) (string, error) {
	if cmd.Flags().Changed(flagName) {
		value, err := cmd.Flags().GetString(flagName)
		if err != nil {
			return "", fmt.Errorf(flagName+" flag not found: %s", err)
		}

		return value, nil
	}

	value, isSet := os.LookupEnv(envKey)

	if isOptional || isSet {
		return value, nil
	}

	return "", errors.New("Neither " + flagName + " (command line flag) nor " + envKey +
		" (environment variable) have been set.")
}
