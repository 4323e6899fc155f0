// plonky2-acir-backend translates an ACIR program into a circuit and
// proves/verifies it. Three proving subcommands, matching argument_parsing.rs,
// plus an info subcommand that prints the supported opcodes:
//
//	prove    -c <circuit.json> -w <witness-stack-prefix> -o <proof>
//	write_vk -b <circuit.json> -o <vk>
//	verify   -k <vk> -p <proof>
//	info
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	circ "github.com/eryxlabs/acir-plonk-backend/pkg/circuit"
	"github.com/eryxlabs/acir-plonk-backend/pkg/prover"
	"github.com/eryxlabs/acir-plonk-backend/pkg/serialization"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "prove":
		err = runProve(os.Args[2:])
	case "write_vk":
		err = runWriteVK(os.Args[2:])
	case "verify":
		err = runVerify(os.Args[2:])
	case "info":
		runInfo()
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("plonky2-acir-backend: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: plonky2-acir-backend <prove|write_vk|verify|info> [flags]")
}

func runProve(args []string) error {
	fs := flag.NewFlagSet("prove", flag.ExitOnError)
	circuitPath := fs.String("c", "", "ACIR program file")
	witnessPath := fs.String("w", "", "witness stack path prefix (a .gz archive is read)")
	outPath := fs.String("o", "", "output proof path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *circuitPath == "" || *witnessPath == "" || *outPath == "" {
		return fmt.Errorf("prove requires -c, -w and -o")
	}

	runID := uuid.New()
	log.Printf("prove[%s]: reading program %s", runID, *circuitPath)
	program, err := serialization.ReadProgram(*circuitPath)
	if err != nil {
		return err
	}

	log.Printf("prove[%s]: reading witness stack %s", runID, *witnessPath)
	values, err := serialization.ReadWitnessStack(*witnessPath)
	if err != nil {
		return err
	}

	p := prover.New(circ.StrategyBitSplit)
	log.Printf("prove[%s]: compiling circuit", runID)
	if err := p.Compile(program); err != nil {
		return err
	}
	log.Printf("prove[%s]: running setup", runID)
	if err := p.Setup(); err != nil {
		return err
	}

	assigned, err := circ.Assign(program, p.Plan(), circ.StrategyBitSplit, values)
	if err != nil {
		return err
	}

	log.Printf("prove[%s]: generating proof", runID)
	proof, err := p.Prove(assigned)
	if err != nil {
		return err
	}

	publicInputs := make([][]byte, len(p.Plan().Public))
	for i, w := range p.Plan().Public {
		publicInputs[i] = []byte(values[w])
	}

	f, err := os.Create(*outPath)
	if err != nil {
		return fmt.Errorf("create proof file: %w", err)
	}
	defer f.Close()
	if err := prover.WriteProofArtifact(f, proof, publicInputs); err != nil {
		return err
	}
	log.Printf("prove[%s]: wrote proof to %s", runID, *outPath)
	return nil
}

func runWriteVK(args []string) error {
	fs := flag.NewFlagSet("write_vk", flag.ExitOnError)
	circuitPath := fs.String("b", "", "ACIR program file")
	outPath := fs.String("o", "", "output verifying-key path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *circuitPath == "" || *outPath == "" {
		return fmt.Errorf("write_vk requires -b and -o")
	}

	program, err := serialization.ReadProgram(*circuitPath)
	if err != nil {
		return err
	}

	p := prover.New(circ.StrategyBitSplit)
	if err := p.Compile(program); err != nil {
		return err
	}
	if err := p.Setup(); err != nil {
		return err
	}

	f, err := os.Create(*outPath)
	if err != nil {
		return fmt.Errorf("create vk file: %w", err)
	}
	defer f.Close()
	return p.WriteVerifyingKey(f)
}

func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	vkPath := fs.String("k", "", "verifying-key path")
	proofPath := fs.String("p", "", "proof path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *vkPath == "" || *proofPath == "" {
		return fmt.Errorf("verify requires -k and -p")
	}

	vkFile, err := os.Open(*vkPath)
	if err != nil {
		return fmt.Errorf("open vk file: %w", err)
	}
	defer vkFile.Close()
	vk, err := prover.ReadVerifyingKey(vkFile)
	if err != nil {
		return err
	}

	proofFile, err := os.Open(*proofPath)
	if err != nil {
		return fmt.Errorf("open proof file: %w", err)
	}
	defer proofFile.Close()
	artifact, err := prover.ReadProofArtifact(proofFile)
	if err != nil {
		return err
	}

	if err := prover.VerifyStandalone(vk, artifact); err != nil {
		fmt.Println("invalid")
		return err
	}
	fmt.Println("valid")
	return nil
}

func runInfo() {
	fmt.Println("supported opcodes: AssertZero, MemoryInit, MemoryOp, Range, And, Xor, Sha256Compression, BrilligCall (no-op), Directive (no-op)")
}
