package cmd

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	m "covagg.dev/pkg/covagg/internal/model"
)

// buildInfo is what the version command reports.
type buildInfo struct {
	Covagg   string
	Go       string
	Snapshot int
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the covagg and snapshot format versions",
		Long: `Displays the covagg build version, the Go version it was built with and the
snapshot format it reads and writes. Shard snapshots only merge when their
format matches.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printVersion(cmd, currentBuildInfo())
		},
	}
}

func currentBuildInfo() buildInfo {
	version := buildInfo{Covagg: "unknown", Go: runtime.Version(), Snapshot: m.SnapshotVersion}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}

	if info.Main.Version != "" {
		version.Covagg = info.Main.Version
	}

	if info.GoVersion != "" {
		version.Go = info.GoVersion
	}

	return version
}

func printVersion(cmd *cobra.Command, info buildInfo) {
	cmd.Printf("covagg version\t%s\n", info.Covagg)
	cmd.Printf("go version\t%s\n", info.Go)
	cmd.Printf("snapshot format\t%d\n", info.Snapshot)
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
