/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package main is bbs-tool, a command line adapter for key generation, signing and selective disclosure proofs.
package main

import (
	"github.com/hyperledger/aries-framework-go/component/log"
	"github.com/spf13/cobra"

	"github.com/NuggetsLtd/pairing-crypto/cmd/bbs-tool/bbscmd"
	bbs "github.com/NuggetsLtd/pairing-crypto/pkg/crypto/primitive/bbs12381g2pub"
)

const publicKeyCacheSize = 16

func main() {
	rootCmd := &cobra.Command{
		Use: "bbs-tool",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	logger := log.New("pairing-crypto/bbs-tool")

	rootCmd.AddCommand(bbscmd.GetCommands(bbs.New(bbs.WithPublicKeyCache(publicKeyCacheSize)))...)

	if err := rootCmd.Execute(); err != nil {
		logger.Fatalf("Failed to run bbs-tool: %s", err)
	}
}
