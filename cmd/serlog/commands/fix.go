// Copyright (C) 2024 the serlog authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

type replacement struct {
	target string
	repl   string
}

// One-off fixes for firmware sources that fail to compile after the display
// vendor's driver drop. The replacements are literal and deliberately narrow.
var sourceFixes = map[string][]replacement{
	filepath.Join("src", "ImageScreen.cpp"): {
		{
			target: "static void pngDrawCallback(PNGDRAW *pDraw) {",
			repl:   "static int pngDrawCallback(PNGDRAW *pDraw) {",
		},
		{
			target: "*pOut++ = (pixel & 0x1F) << 3;         // B\n  }\n}",
			repl:   "*pOut++ = (pixel & 0x1F) << 3;         // B\n  }\n  return 1;\n}",
		},
	},
	filepath.Join("src", "GDEP133C02.c"): {
		{target: "status == DONE", repl: "status == EPD_DONE"},
		{target: "status != DONE", repl: "status != EPD_DONE"},
		{target: "status = DONE", repl: "status = EPD_DONE"},
		{target: "status = ERROR", repl: "status = EPD_ERROR"},
		{target: "partialWindowUpdateStatus == DONE", repl: "partialWindowUpdateStatus == EPD_DONE"},
		{target: "partialWindowUpdateStatus = DONE", repl: "partialWindowUpdateStatus = EPD_DONE"},
		{target: "partialWindowUpdateStatus = ERROR", repl: "partialWindowUpdateStatus = EPD_ERROR"},
		{
			target: "printf(\"partialWindowUpdateStatus = ERROR \\r\\n\");",
			repl:   "printf(\"partialWindowUpdateStatus = EPD_ERROR \\r\\n\");",
		},
	},
}

func FixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Patch known compile errors in the firmware sources",
		Long: "Apply literal string substitutions to the firmware sources to fix the\n" +
			"PNGdec callback signature in ImageScreen.cpp and the DONE/ERROR status enum\n" +
			"clashes in GDEP133C02.c.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cmd.Flags().GetString("dir")
			if err != nil {
				return err
			}
			for file, fixes := range sourceFixes {
				if err := fixFile(filepath.Join(dir, file), fixes); err != nil {
					return err
				}
			}
			fmt.Println("Fixes applied successfully")
			return nil
		},
	}

	cmd.Flags().StringP("dir", "d", ".", "firmware project root holding the src directory")
	return cmd
}

func fixFile(path string, fixes []replacement) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read '%s': %w", path, err)
	}

	content := string(data)
	for _, fix := range fixes {
		content = strings.ReplaceAll(content, fix.target, fix.repl)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}
	return nil
}
