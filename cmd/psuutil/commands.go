package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	psuutils "github.com/NotrixInc/nx-psu-utils"
	"github.com/NotrixInc/nx-psu-utils/busrpc"
	"github.com/NotrixInc/nx-psu-utils/updater"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
)

func (a *app) inventoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inventory",
		Short: "List the PSU inventory paths from the configuration document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range psuutils.LoadInventoryPaths(a.v.GetString("psu-config"), a.logger) {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

func (a *app) serviceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "service PATH INTERFACE",
		Short: "Resolve the service owning INTERFACE at PATH",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, closeFn, err := a.client()
			if err != nil {
				return err
			}
			defer closeFn()

			service, err := c.Service(cmd.Context(), psuutils.ObjectPath(args[0]), args[1])
			if err != nil {
				return err
			}
			if service == "" {
				return fmt.Errorf("no owner for %s at %s", args[1], args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), service)
			return nil
		},
	}
}

func (a *app) getCmd() *cobra.Command {
	var service, typ string
	cmd := &cobra.Command{
		Use:   "get PATH INTERFACE PROPERTY",
		Short: "Read a property, resolving the owning service unless --service is given",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, closeFn, err := a.client()
			if err != nil {
				return err
			}
			defer closeFn()

			ctx := cmd.Context()
			path, iface, property := psuutils.ObjectPath(args[0]), args[1], args[2]
			svc := psuutils.ServiceName(service)
			if svc == "" {
				if svc, err = c.Service(ctx, path, iface); err != nil {
					return err
				}
				if svc == "" {
					return fmt.Errorf("no owner for %s at %s", iface, path)
				}
			}

			out, err := readProperty(ctx, c, typ, svc, path, iface, property)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&service, "service", "", "service name (skips the mapper lookup)")
	cmd.Flags().StringVar(&typ, "type", "", "expected type: string, bool, int64, uint64 or double")
	return cmd
}

// readProperty reads a property as the requested kind, or as whatever it is
// when typ is empty.
func readProperty(ctx context.Context, u psuutils.Utils, typ string, svc psuutils.ServiceName, path psuutils.ObjectPath, iface, property string) (any, error) {
	if typ == "" {
		v, err := u.PropertyValue(ctx, svc, path, iface, property)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	kind, err := psuutils.ParseKind(typ)
	if err != nil {
		return nil, err
	}
	switch kind {
	case psuutils.KindString:
		return psuutils.Property[string](ctx, u, svc, path, iface, property)
	case psuutils.KindBool:
		return psuutils.Property[bool](ctx, u, svc, path, iface, property)
	case psuutils.KindInt64:
		return psuutils.Property[int64](ctx, u, svc, path, iface, property)
	case psuutils.KindUint64:
		return psuutils.Property[uint64](ctx, u, svc, path, iface, property)
	default:
		return psuutils.Property[float64](ctx, u, svc, path, iface, property)
	}
}

func (a *app) versionIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version-id VERSION",
		Short: "Print the 8 hex digit id of a version string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := psuutils.VersionID(args[0])
			if id == "" {
				return errors.New("version is empty")
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func (a *app) scanCmd() *cobra.Command {
	var basePath string
	var watch time.Duration
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan PSU inventory and print the software objects that would be created",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, closeFn, err := a.client()
			if err != nil {
				return err
			}
			defer closeFn()

			out := cmd.OutOrStdout()
			pub := updater.PublisherFunc(func(ctx context.Context, obj updater.SoftwareObject) error {
				_, err := fmt.Fprintf(out, "%s\t%s\t%s\n", obj.Path, obj.Version, obj.InventoryPath)
				return err
			})
			u := updater.New(c, pub, basePath, a.logger)

			if watch <= 0 {
				report, err := u.Scan(cmd.Context())
				a.logger.Info("inventory scanned", "paths", report.Paths, "published", report.Published,
					"not_present", report.NotPresent, "no_owner", report.NoOwner, "failed", report.Failed)
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			err = updater.NewWatcher(u, watch, a.logger).Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&basePath, "base-path", "/xyz/openbmc_project/software", "object path prefix for software objects")
	cmd.Flags().DurationVar(&watch, "watch", 0, "rescan at this interval until interrupted")
	return cmd
}

func (a *app) gatewayCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "gateway",
		Short: "Serve the local object bus to remote psuutil clients over gRPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bus, closeFn, err := a.openBus()
			if err != nil {
				return err
			}
			defer closeFn()

			lis, err := listenAddr(listen)
			if err != nil {
				return err
			}
			srv := grpc.NewServer(busrpc.ServerOptions()...)
			psuutils.NewGatewayServer(bus, a.logger).Register(srv)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				srv.GracefulStop()
			}()

			a.logger.Info("bus gateway listening", "addr", lis.Addr().String())
			return srv.Serve(lis)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "unix:///run/nx-bus-gateway.sock", "listen address (host:port or unix:///path)")
	return cmd
}

func listenAddr(addr string) (net.Listener, error) {
	if p, ok := strings.CutPrefix(addr, "unix://"); ok {
		_ = os.Remove(p)
		return net.Listen("unix", p)
	}
	return net.Listen("tcp", addr)
}
