package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guimove/placer/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().String("output", "text", "output format: text, json")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	outputFmt, _ := cmd.Flags().GetString("output")
	if outputFmt == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Binary    string `json:"binary"`
			Version   string `json:"version"`
			Commit    string `json:"commit"`
			BuildDate string `json:"build_date"`
		}{version.BinaryName, version.Version, version.Commit, version.BuildDate})
	}

	fmt.Printf("%s %s\n", version.BinaryName, version.Version)
	fmt.Printf("  commit:  %s\n", version.Commit)
	fmt.Printf("  built:   %s\n", version.BuildDate)
	return nil
}
