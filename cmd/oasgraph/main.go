package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/speakeasy-api/oasgraph/cmd/oasgraph/commands"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// getVersionInfo returns version information, prioritizing ldflags values over build info
func getVersionInfo() (string, string, string) {
	if version != "dev" || commit != "none" || date != "unknown" {
		return version, commit, date
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return version, commit, date
	}

	moduleVersion := version
	if buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		moduleVersion = buildInfo.Main.Version
	}

	vcsCommit := commit
	vcsTime := date
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			vcsCommit = setting.Value[:min(7, len(setting.Value))]
		case "vcs.time":
			vcsTime = setting.Value
		}
	}

	return moduleVersion, vcsCommit, vcsTime
}

var rootCmd = &cobra.Command{
	Use:   "oasgraph",
	Short: "Read, resolve and lint Swagger 2.0 API descriptions",
	Long: `Read Swagger 2.0 documents into a cross-referenced model and report what is wrong with them.

Commands:
- validate: read one or more documents, resolve references between them and run the lint rules
- query: select parts of a document with a JSONPath expression

Configuration is read from .oasgraph.yaml in the working directory, or the file given with
--config, and from OASGRAPH_* environment variables. Flags take precedence.`,
	SilenceUsage: true,
}

func init() {
	currentVersion, currentCommit, currentDate := getVersionInfo()
	rootCmd.Version = currentVersion

	var versionTemplate strings.Builder
	versionTemplate.WriteString(`{{printf "%s" .Version}}`)
	if currentCommit != "none" && currentCommit != "" {
		versionTemplate.WriteString("\nBuild: " + currentCommit)
	}
	if currentDate != "unknown" && currentDate != "" {
		versionTemplate.WriteString("\nBuilt: " + currentDate)
	}
	rootCmd.SetVersionTemplate(versionTemplate.String())

	commands.Apply(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
