package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/subwordml/prepseq/dataset"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Split the dataset's source files into full tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := runnerFor(cmd)
		if err != nil {
			return err
		}
		if err := r.RunParsing(); err != nil {
			return err
		}
		fmt.Println(summarize(r.Dataset))
		return nil
	},
}

var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Split the dataset's source files into sub-token sequences",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := runnerFor(cmd)
		if err != nil {
			return err
		}
		if err := r.RunUntilPreprocessing(); err != nil {
			return err
		}
		fmt.Println(summarize(r.Dataset))
		return nil
	},
}

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Compute the sub-token vocabulary of the preprocessed dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := runnerFor(cmd)
		if err != nil {
			return err
		}
		if err := r.RunUntilVocab(); err != nil {
			return err
		}
		fmt.Println(summarize(r.Dataset))
		return nil
	},
}

func runnerFor(cmd *cobra.Command) (*dataset.Runner, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return newRunner(cfg)
}

var (
	summaryBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	summaryLabel = lipgloss.NewStyle().Bold(true).Width(14)
)

// summarize renders the dataset's stage locations and their status.
func summarize(d *dataset.Dataset) string {
	row := func(label, path string, ready bool) string {
		status := "pending"
		if ready {
			status = "ready"
		}
		return lipgloss.JoinHorizontal(lipgloss.Top,
			summaryLabel.Render(label), path+"  ["+status+"]")
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		summaryLabel.Render("Dataset")+d.Original().Path(),
		row("Parsed", d.Parsed().Path(), d.Parsed().Ready()),
		row("Preprocessed", d.Preprocessed().Path(), d.Preprocessed().Ready()),
		row("Vocabulary", d.VocabPath(), dataset.PathReady(d.VocabPath())),
	)
	return summaryBox.Render(body)
}
