package cmd

import (
	"fmt"
	"net/netip"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rawbytedev/xfrm"
)

func (a *app) allocSPICmd() *cobra.Command {
	var (
		dst, src, proto, mode string
		minSPI, maxSPI        string
		reqid                 uint32
		cf                    captureFlags
	)
	c := &cobra.Command{
		Use:   "allocspi --dst <ip> [--src <ip>] [--proto esp|ah|comp]",
		Short: "Build an XFRM_MSG_ALLOCSPI request",
		Long: `Build the xfrm_userspi_info payload of an SPI allocation request and
print it as hex. The range comes from the config file unless --min or --max
is given. For comp the upper bound never exceeds 0xffff.

Example:
  xfrmrec allocspi --dst 192.0.2.2 --src 192.0.2.1 --proto esp --reqid 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseIP("dst", dst)
			if err != nil {
				return err
			}
			var s netip.Addr
			if src != "" {
				if s, err = parseIP("src", src); err != nil {
					return err
				}
			}
			p, err := parseProto(proto)
			if err != nil {
				return err
			}
			m, err := parseMode(mode)
			if err != nil {
				return err
			}

			r := a.cfg.SPIRange()
			if cmd.Flags().Changed("min") {
				if r.Min, err = parseUint32("min", minSPI); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("max") {
				if r.Max, err = parseUint32("max", maxSPI); err != nil {
					return err
				}
			}
			if r.Min == 0 || r.Min > r.Max {
				return fmt.Errorf("invalid spi range %#x-%#x", r.Min, r.Max)
			}

			info, err := xfrm.NewUserSaInfo(s, d, 0, p)
			if err != nil {
				return err
			}
			info.Reqid = reqid
			info.Mode = m
			req := xfrm.NewUserSpiInfoWithRange(info, r)
			if req.Max() != r.Max {
				a.log.Info("spi range clamped for comp",
					zap.Uint32("requested_max", r.Max),
					zap.Uint32("max", req.Max()))
			}
			a.log.Debug("allocspi request",
				zap.Stringer("dst", d),
				zap.String("proto", protoName(p)),
				zap.Uint32("reqid", reqid),
				zap.Uint32("min", req.Min()),
				zap.Uint32("max", req.Max()))
			return a.emit(cmd, &cf, req)
		},
	}
	c.Flags().StringVar(&dst, "dst", "", "destination address of the SA")
	c.Flags().StringVar(&src, "src", "", "source address of the SA")
	c.Flags().StringVar(&proto, "proto", "esp", "IPsec protocol: esp, ah, comp or a number")
	c.Flags().StringVar(&mode, "mode", "transport", "transport, tunnel, ro, in_trigger or beet")
	c.Flags().Uint32Var(&reqid, "reqid", 0, "request ID tying the SA to a policy")
	c.Flags().StringVar(&minSPI, "min", "", "lowest SPI (overrides config)")
	c.Flags().StringVar(&maxSPI, "max", "", "highest SPI (overrides config)")
	cf.register(c)
	_ = c.MarkFlagRequired("dst")
	return c
}
