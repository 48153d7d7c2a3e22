package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/xfrm/pkg/capture"
)

type dumpEntry struct {
	Kind   string `yaml:"kind"`
	Record any    `yaml:"record"`
}

func (a *app) dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <capture-file>",
		Short: "Print every record in a capture file as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open capture file: %w", err)
			}
			defer f.Close()

			r, err := capture.NewReader(f)
			if err != nil {
				return err
			}
			defer r.Close()

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			n := 0
			for {
				frame, err := r.Next()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return fmt.Errorf("frame %d: %w", n, err)
				}
				rec, err := frame.Decode()
				if err != nil {
					return fmt.Errorf("frame %d: %w", n, err)
				}
				if err := enc.Encode(dumpEntry{Kind: frame.Kind.String(), Record: view(rec)}); err != nil {
					return err
				}
				n++
			}
			if err := enc.Close(); err != nil {
				return err
			}
			a.log.Debug("dump finished",
				zap.String("path", args[0]),
				zap.Bool("compressed", r.Compressed()),
				zap.Int("frames", n))
			return nil
		},
	}
}
