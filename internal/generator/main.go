// Package main generates a Go package embedding a concrete decider
// verifying key, so deployments can link the key into the binary instead
// of loading it from disk. The key material comes from a JSON instance
// file holding the coordinates as decimal strings.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/consensys/bavard"
)

type instanceData struct {
	Package  string `json:"package"`
	StateLen int    `json:"stateLen"`
	PPHash   string `json:"ppHash"`

	KZG struct {
		G1    [2]string `json:"g1"`
		G2    [4]string `json:"g2"`
		TauG2 [4]string `json:"tauG2"`
	} `json:"kzg"`

	Groth16 struct {
		Alpha [2]string   `json:"alpha"`
		Beta  [4]string   `json:"beta"`
		Gamma [4]string   `json:"gamma"`
		Delta [4]string   `json:"delta"`
		K     [][2]string `json:"k"`
	} `json:"groth16"`
}

//go:generate go run main.go -config testdata/instance.json -out ../../deciderkey
func main() {
	config := flag.String("config", "", "path to the JSON instance file")
	out := flag.String("out", "", "directory for the generated package")
	flag.Parse()
	if *config == "" || *out == "" {
		flag.Usage()
		os.Exit(1)
	}

	raw, err := os.ReadFile(*config)
	if err != nil {
		panic(err)
	}
	var d instanceData
	if err := json.Unmarshal(raw, &d); err != nil {
		panic(err)
	}
	if d.Package == "" {
		d.Package = filepath.Base(*out)
	}
	// the generated key must match the public-input arity of the circuit
	want := 2 + 2*d.StateLen + 30 + 4
	if len(d.Groth16.K) != want+1 {
		panic(fmt.Sprintf("instance has %d k elements, want %d", len(d.Groth16.K), want+1))
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		panic(err)
	}

	const copyrightHolder = "0xKarl98"
	var bgen = bavard.NewBatchGenerator(copyrightHolder, 2025, "sonobe")

	entries := []bavard.Entry{
		{File: filepath.Join(*out, "vk.go"), Templates: []string{"instance.go.tmpl"}},
	}
	if err := bgen.Generate(d, d.Package, "./templates/", entries...); err != nil {
		panic(err)
	}

	runCmd("gofmt", "-w", *out)
}

func runCmd(name string, arg ...string) {
	fmt.Println(name, strings.Join(arg, " "))
	cmd := exec.Command(name, arg...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic(err)
	}
}
