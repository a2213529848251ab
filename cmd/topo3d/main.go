package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "topo3d",
	Short: "An interactive 3D viewer for network topologies",
	Long: `topo3d places the devices of a network topology snapshot in 3D space and lets
you orbit around them, drag nodes, and edit them with a transform gizmo. Snapshots
can be read from a file, reloaded when the file changes, or streamed over a websocket.`,
	Version:      "0.1.0",
	SilenceUsage: true,
}

func init() {
	// GLFW and the native surface must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
