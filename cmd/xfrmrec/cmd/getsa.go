package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rawbytedev/xfrm"
)

func (a *app) getSACmd() *cobra.Command {
	var (
		dst, spi, proto string
		cf              captureFlags
	)
	c := &cobra.Command{
		Use:   "getsa --dst <ip> --spi <n> [--proto esp|ah|comp]",
		Short: "Build an XFRM_MSG_GETSA lookup request",
		Long: `Build the xfrm_usersa_id payload that names one SA and print it as hex.

Example:
  xfrmrec getsa --dst 2001:db8::1 --spi 0xc0ffee --proto esp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseIP("dst", dst)
			if err != nil {
				return err
			}
			n, err := parseUint32("spi", spi)
			if err != nil {
				return err
			}
			p, err := parseProto(proto)
			if err != nil {
				return err
			}
			id := xfrm.NewUserSaID(d, n, p)
			a.log.Debug("getsa request",
				zap.Stringer("dst", d),
				zap.Uint32("spi", n),
				zap.String("family", familyName(id.Family())))
			return a.emit(cmd, &cf, id)
		},
	}
	c.Flags().StringVar(&dst, "dst", "", "destination address of the SA")
	c.Flags().StringVar(&spi, "spi", "", "SPI, decimal or 0x-prefixed hex")
	c.Flags().StringVar(&proto, "proto", "esp", "IPsec protocol: esp, ah, comp or a number")
	cf.register(c)
	_ = c.MarkFlagRequired("dst")
	_ = c.MarkFlagRequired("spi")
	return c
}
