package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rawbytedev/xfrm"
)

var decoders = map[string]func([]byte) (any, error){
	"sa-id": func(b []byte) (any, error) {
		v, err := xfrm.ParseUserSaID(b)
		return viewSaID(v), err
	},
	"sa-info": func(b []byte) (any, error) {
		v, err := xfrm.ParseUserSaInfo(b)
		return viewSaInfo(v), err
	},
	"spi-info": func(b []byte) (any, error) {
		v, err := xfrm.ParseUserSpiInfo(b)
		return viewSpiInfo(v), err
	},
}

func (a *app) decodeCmd() *cobra.Command {
	var typ string
	c := &cobra.Command{
		Use:   "decode --type {sa-id|sa-info|spi-info} <hex>",
		Short: "Decode a hex-encoded record and print it as YAML",
		Long: `Decode a record captured off the wire, for example from
"ip -d xfrm monitor" or a strace dump, and print its fields.

Whitespace and colons in the hex input are ignored.

Example:
  xfrmrec decode --type sa-id 0a0000010000000000000000000000000000000102003200`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decode, ok := decoders[typ]
			if !ok {
				return fmt.Errorf("unknown record type %q", typ)
			}
			b, err := parseHex(args[0])
			if err != nil {
				return err
			}
			v, err := decode(b)
			if err != nil {
				return err
			}
			a.log.Debug("decoded record", zap.String("type", typ), zap.Int("bytes", len(b)))
			return writeYAML(cmd.OutOrStdout(), v)
		},
	}
	c.Flags().StringVarP(&typ, "type", "t", "sa-id", "record type: sa-id, sa-info or spi-info")
	return c
}

func parseHex(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', ':':
			return -1
		}
		return r
	}, s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return b, nil
}
