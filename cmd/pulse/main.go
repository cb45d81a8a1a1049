// Pulse prints a triage report for one set of vital signs.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	v "github.com/linnemanlabs/go-core/version"

	"github.com/linnemanlabs/pulse/internal/intake"
	"github.com/linnemanlabs/pulse/internal/triage"
)

const appName = "pulse"
const component = "cli"

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	v.AppName = appName
	v.Component = component

	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	// defaults are the demo patient: fast heart rate with a fever
	var (
		vitals      triage.VitalSigns
		asJSON      bool
		noValidate  bool
		showVersion bool
	)
	fs.IntVar(&vitals.HeartRate, "heart-rate", 130, "heart rate in beats per minute")
	fs.IntVar(&vitals.Oxygen, "oxygen", 96, "oxygen saturation percentage")
	fs.IntVar(&vitals.PainLevel, "pain", 6, "pain level on a 0..10 scale")
	fs.Float64Var(&vitals.Temperature, "temperature", 102.3, "body temperature in degrees Fahrenheit")
	fs.BoolVar(&asJSON, "json", false, "print the result as JSON instead of the text report")
	fs.BoolVar(&noValidate, "no-validate", false, "classify values outside the accepted input ranges")
	fs.BoolVar(&showVersion, "V", false, "Print version+build information and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		return exitUsage
	}

	if showVersion {
		vi := v.Get()
		fmt.Fprintf(stdout, "%s (%s) %s (commit=%s, go=%s)\n", vi.AppName, vi.Component, vi.Version, vi.Commit, vi.GoVersion)
		return exitOK
	}

	if !noValidate {
		if err := intake.Validate(vitals); err != nil {
			fmt.Fprintln(stderr, "invalid vitals:", err)
			return exitInvalid
		}
	}

	result := triage.Classify(vitals)

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(result); err != nil {
			fmt.Fprintln(stderr, "encode result:", err)
			return exitInvalid
		}
		return exitOK
	}

	if err := triage.WriteReport(stdout, result); err != nil {
		fmt.Fprintln(stderr, "write report:", err)
		return exitInvalid
	}
	return exitOK
}
