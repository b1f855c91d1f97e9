// Copyright 2020 Anapaya Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package command

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// NewVersion creates a command that displays the version information.
func NewVersion(pather Pather) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			info, ok := debug.ReadBuildInfo()
			if !ok {
				return fmt.Errorf("build information not embedded in binary")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s/%s\n",
				pather.CommandPath(), info.Main.Version, runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}
