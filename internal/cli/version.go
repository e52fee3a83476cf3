// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCommand builds "logiassist version".
func NewVersionCommand(root *RootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data := VersionData{
				Version:   Version,
				GitCommit: GitCommit,
				BuildDate: BuildDate,
				GoVersion: runtime.Version(),
			}
			return report(cmd, root.JSON, "version", data, nil, func(w io.Writer) {
				fmt.Fprintln(w, TitleStyle.Render("logiassist "+Version))
				fmt.Fprintln(w, LabelStyle.Render("Git commit:")+GitCommit)
				fmt.Fprintln(w, LabelStyle.Render("Build date:")+BuildDate)
				fmt.Fprintln(w, LabelStyle.Render("Go:")+data.GoVersion)
			})
		},
	}
}
