// Package commands provides the CLI commands for the startup mentor.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	modelFlag    string
	endpointFlag string
	outputFlag   string
	fileFlag     string
	rawFlag      bool
	verboseFlag  bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

var deps = NewDependencies()

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mentor [idea]",
	Short: "Startup idea mentor backed by a local Ollama model",
	Long: `mentor sends your startup idea to a local Ollama server and prints a
structured analysis: problem, target audience, market potential,
competitors, risks and a one-line pitch.

Examples:
  mentor chat                           Start interactive chat
  mentor "An app that books vet visits" Analyze a single idea
  mentor -f idea.txt                    Read the idea from file
  cat idea.txt | mentor                 Read the idea from stdin
  mentor "..." -o analysis.md           Save the analysis to file
  mentor models                         List local models`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Fprintf(cmd.OutOrStdout(), "mentor %s (built %s)\n", Version, BuildTime)
			return nil
		}

		stat, _ := os.Stdin.Stat()
		hasStdin := stat != nil && (stat.Mode()&os.ModeCharDevice) == 0

		idea, ok, err := readIdea(args, fileFlag, os.Stdin, hasStdin)
		if err != nil {
			return err
		}
		if !ok {
			return cmd.Help()
		}

		return runQuery(deps, idea, rawFlag || !isStdoutTTY())
	},
}

// readIdea picks the idea from a file, stdin or the positional argument, in
// that order. ok is false when no input was given.
func readIdea(args []string, file string, stdin io.Reader, hasStdin bool) (idea string, ok bool, err error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	}

	if hasStdin {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), true, nil
	}

	if len(args) > 0 {
		return args[0], true, nil
	}

	return "", false, nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Ollama model to use (e.g., llama3:latest)")
	rootCmd.PersistentFlags().StringVar(&endpointFlag, "endpoint", "", "Ollama chat endpoint (default http://localhost:11434/api/chat)")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Log requests to stderr")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save the analysis to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read the idea from file")
	rootCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print the reply without decoration")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(NewChatCmd(deps))
	rootCmd.AddCommand(NewConfigCmd(deps))
	rootCmd.AddCommand(NewModelsCmd(deps))
}
