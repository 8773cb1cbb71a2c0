package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/naota/taglib/internal/id3v2/frames"
	"github.com/naota/taglib/internal/id3v2/header"
	"github.com/naota/taglib/internal/id3v2/tag"
	"github.com/naota/taglib/internal/server"
	"github.com/spf13/cobra"
)

func newInspectCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Print the frames of each file's ID3v2 tag",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, path := range args {
				t, err := tag.ReadFile(path, a.factory)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if asJSON {
					if err := writeJSON(out, map[string]any{"file": path, "tag": server.DescribeTag(t)}); err != nil {
						return err
					}
					continue
				}
				fmt.Fprintf(out, "%s: ID3v2.%d.%d, %d bytes, %d frames\n", path, t.Version, t.Revision, t.Size, len(t.Frames))
				for _, f := range t.Frames {
					fmt.Fprintf(out, "  %s\n", f)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}

func newFrameCmd(a *app) *cobra.Command {
	var version int
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "frame <hex>",
		Short: "Decode a single hex encoded frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := header.Version(version)
			if !v.Supported() {
				return fmt.Errorf("--version must be 2, 3 or 4, got %d", version)
			}
			data, err := hex.DecodeString(strings.Join(strings.Fields(args[0]), ""))
			if err != nil {
				return fmt.Errorf("decode hex: %w", err)
			}
			frame, err := a.factory.CreateFrameVersion(data, v)
			if err != nil {
				return err
			}
			return printFrame(cmd.OutOrStdout(), frame, asJSON)
		},
	}
	cmd.Flags().IntVar(&version, "version", 4, "source tag version (2, 3 or 4)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}

func printFrame(out io.Writer, f frames.Frame, asJSON bool) error {
	if f == nil {
		if asJSON {
			return writeJSON(out, map[string]any{"discarded": true})
		}
		_, err := fmt.Fprintln(out, "discarded: legacy frame has no 2.4 equivalent")
		return err
	}
	if asJSON {
		return writeJSON(out, server.Describe(f))
	}
	_, err := fmt.Fprintln(out, f)
	return err
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
