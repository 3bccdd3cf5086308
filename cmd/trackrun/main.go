// Command trackrun reads a SimulationInput JSON from a file argument (or
// stdin), runs the simulation, and writes the SimulationLog JSON to stdout.
//
// With -schema it instead writes the JSON schema of the input format.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"honnef.co/go/track/internal/sim"
)

func main() {
	log.SetPrefix("trackrun: ")
	log.SetFlags(0)

	var (
		schema bool
		indent bool
	)
	flag.BoolVar(&schema, "schema", false, "print the JSON schema of the input and exit")
	flag.BoolVar(&indent, "indent", false, "indent the output")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: trackrun [-indent] [-schema] [input.json]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if schema {
		data, err := json.MarshalIndent(sim.Schema(), "", "  ")
		if err != nil {
			log.Fatalf("marshal schema: %v", err)
		}
		os.Stdout.Write(append(data, '\n'))
		return
	}

	var (
		data []byte
		err  error
	)
	switch flag.NArg() {
	case 0:
		data, err = io.ReadAll(os.Stdin)
	case 1:
		data, err = os.ReadFile(flag.Arg(0))
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("error reading input: %v", err)
	}

	result, err := sim.RunJSON(data)
	if err != nil {
		log.Fatalf("simulation error: %v", err)
	}

	if indent {
		var buf bytes.Buffer
		if err := json.Indent(&buf, result, "", "  "); err != nil {
			log.Fatalf("indent output: %v", err)
		}
		result = buf.Bytes()
	}
	os.Stdout.Write(append(result, '\n'))
}
