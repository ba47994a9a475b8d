// prepseq drives the preprocessing pipeline: parsing a source dataset into
// full tokens, splitting them into sub-tokens, and computing a vocabulary.
package main

import (
	goflag "flag"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var rootCmd = &cobra.Command{
	Use:   "prepseq",
	Short: "Source-code preprocessing pipeline for subword models",
	Long:  `prepseq turns raw source files into synchronized full-token and sub-token sequences and derives vocabularies from them. Stage outputs are cached on disk and only recomputed when their inputs change.`,
}

func main() {
	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(klogFlags)

	rootCmd.PersistentFlags().String("config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().String("dataset", "", "path to the dataset root (overrides config)")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(preprocessCmd)
	rootCmd.AddCommand(vocabCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
