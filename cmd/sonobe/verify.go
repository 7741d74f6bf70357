package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/0xKarl98/sonobe/decider"
)

var fVkPath string

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [calldata]",
	Short: "verifies a flat decider proof against a verifying key",
	Run:   cmdVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.PersistentFlags().StringVar(&fVkPath, "vk", "", "specifies full path for verifying key")
	_ = verifyCmd.MarkPersistentFlagRequired("vk")
}

func cmdVerify(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("missing calldata path -- sonobe verify -h for help")
		os.Exit(-1)
	}
	calldataPath := filepath.Clean(args[0])

	vk, err := loadVerifyingKey(fVkPath)
	if err != nil {
		fmt.Println("can't load verifying key")
		fmt.Println(err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %-30s\n", "loaded verifying key", fVkPath)

	calldata, err := loadCalldata(calldataPath)
	if err != nil {
		fmt.Println("can't parse calldata", err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %-30s %-d words\n", "loaded calldata", calldataPath, len(calldata))

	start := time.Now()
	if err := decider.VerifyCalldata(vk, calldata); err != nil {
		fmt.Printf("%-30s %-30s %-30s\n", "proof is invalid", calldataPath, time.Since(start))
		fmt.Println(err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %-30s %-30s\n", "proof is valid", calldataPath, time.Since(start))
}

func loadVerifyingKey(path string) (*decider.VerifyingKey, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var vk decider.VerifyingKey
	if _, err := vk.ReadFrom(f); err != nil {
		return nil, err
	}
	return &vk, nil
}

// loadCalldata reads a JSON array of decimal word strings.
func loadCalldata(path string) ([]*big.Int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var words []string
	if err := json.Unmarshal(raw, &words); err != nil {
		return nil, err
	}
	calldata := make([]*big.Int, len(words))
	for i, w := range words {
		v, ok := new(big.Int).SetString(w, 10)
		if !ok {
			return nil, fmt.Errorf("word %d is not a decimal integer", i)
		}
		calldata[i] = v
	}
	return calldata, nil
}
