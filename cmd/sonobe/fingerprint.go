package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// fingerprintCmd represents the fingerprint command
var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint [vk]",
	Short: "prints the hash of a verifying key, for comparing deployments",
	Run:   cmdFingerprint,
}

func init() {
	rootCmd.AddCommand(fingerprintCmd)
}

func cmdFingerprint(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("missing verifying key path -- sonobe fingerprint -h for help")
		os.Exit(-1)
	}
	vk, err := loadVerifyingKey(filepath.Clean(args[0]))
	if err != nil {
		fmt.Println("can't load verifying key")
		fmt.Println(err)
		os.Exit(-1)
	}
	fp, err := vk.Fingerprint()
	if err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
	fmt.Println(hex.EncodeToString(fp[:]))
}
