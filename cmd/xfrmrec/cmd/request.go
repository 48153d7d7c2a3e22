package cmd

import (
	"encoding/hex"
	"fmt"
	"net/netip"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rawbytedev/xfrm"
	"github.com/rawbytedev/xfrm/pkg/capture"
)

// captureFlags are shared by the commands that build a request.
type captureFlags struct {
	path     string
	compress bool
}

func (f *captureFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.path, "capture", "", "also write the request to this capture file")
	c.Flags().BoolVar(&f.compress, "compress", false, "zstd-compress the capture file")
}

// emit prints r as hex and writes it to the capture file when one was asked
// for.
func (a *app) emit(cmd *cobra.Command, f *captureFlags, r xfrm.Record) error {
	b, err := xfrm.Marshal(r)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(b))
	if f.path == "" {
		return nil
	}

	if err := writeCapture(f.path, capture.Options{Compress: f.compress}, r); err != nil {
		return err
	}
	a.log.Info("capture written",
		zap.String("path", f.path),
		zap.Bool("compressed", f.compress),
		zap.Int("bytes", len(b)))
	return nil
}

// writeCapture creates path holding r as its only frame. The capture writer
// is closed on every path so a compressed stream releases its encoder.
func writeCapture(path string, opts capture.Options, r xfrm.Record) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create capture file: %w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	w, err := capture.NewWriter(out, opts)
	if err != nil {
		return err
	}
	if err := w.Write(r); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func parseIP(flag, s string) (netip.Addr, error) {
	ip, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("--%s: %w", flag, err)
	}
	return ip, nil
}

// parseUint32 accepts decimal or 0x-prefixed hex, as ip-xfrm does for SPIs.
func parseUint32(flag, s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", flag, err)
	}
	return uint32(n), nil
}
