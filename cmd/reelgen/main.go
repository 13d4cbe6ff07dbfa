// Package main is the entry point for the reelgen CLI
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/james-see/reelgen/pkg/api"
	"github.com/james-see/reelgen/pkg/generator"
	"github.com/james-see/reelgen/pkg/generator/sources"
	"github.com/james-see/reelgen/pkg/tui"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	outputFile string
	midiOutput string
	inputFile  string
	seed       uint64
	ceiling    float64
	serverPort int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reelgen",
	Short: "Turn model pitch predictions into ABC notation reels",
	Long: `reelgen transcribes 256 pitch predictions from a generative model
into a 16 bar reel in ABC notation (D major, sixteenth notes).

Predictions come from a file written by the model or, without --input,
from a seeded random source.

Examples:
  reelgen generate --seed 42
  reelgen generate --input predictions.json -o abc_notation.txt
  reelgen midi --seed 42 -o reel.mid
  reelgen tui
  reelgen serve --port 8080`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage: true,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an ABC reel",
	Long:  `Generates a reel and prints it, or writes it to --output (.abc, .txt, .mid).`,
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

var midiCmd = &cobra.Command{
	Use:   "midi",
	Short: "Generate a reel as a MIDI file",
	Args:  cobra.NoArgs,
	RunE:  runMIDI,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "", "Predictions file (.json or whitespace/comma separated)")
	rootCmd.PersistentFlags().Uint64VarP(&seed, "seed", "s", 0, "Random seed when no input file is given (default: current time)")
	rootCmd.PersistentFlags().Float64Var(&ceiling, "ceiling", sources.DefaultCeiling, "Upper bound of random predictions")

	// generate command
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (default: stdout)")

	// midi command
	midiCmd.Flags().StringVarP(&midiOutput, "output", "o", "", "Output .mid file path (default: reel.mid)")

	// serve command
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(midiCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func getSource(cmd *cobra.Command) generator.Source {
	if inputFile != "" {
		return sources.NewFile(inputFile)
	}
	if !cmd.Flags().Changed("seed") {
		seed = uint64(time.Now().UnixNano())
	}
	return sources.NewRandom(seed).WithCeiling(ceiling)
}

func generateTune(cmd *cobra.Command) (*generator.Tune, error) {
	source := getSource(cmd)
	tune, err := generator.New(source).Generate(context.Background())
	if err != nil {
		return nil, err
	}
	if r, ok := source.(*sources.Random); ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "Generated reel from seed %d\n", r.Seed())
	}
	return tune, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	tune, err := generateTune(cmd)
	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Fprintln(cmd.OutOrStdout(), tune.Document)
		return nil
	}

	if err := generator.ExportFile(tune, outputFile); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outputFile)
	return nil
}

func runMIDI(cmd *cobra.Command, args []string) error {
	output := midiOutput
	if output == "" {
		output = "reel.mid"
	}
	if generator.DetectFormat(output) != generator.FormatMIDI {
		return fmt.Errorf("output %q is not a .mid file", output)
	}

	tune, err := generateTune(cmd)
	if err != nil {
		return err
	}

	if err := generator.NewMIDIConverter().WriteMIDIFile(tune, output); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run()
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}
