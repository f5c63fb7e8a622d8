// psuutil inspects PSU inventory and firmware versions on the object bus.
package main

import (
	"fmt"
	"os"
	"strings"

	psuutils "github.com/NotrixInc/nx-psu-utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev" // set by the linker

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	v      *viper.Viper
	logger psuutils.Logger
}

// newRootCmd builds a fresh command tree with its own viper instance so tests
// do not share flag state.
func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: psuutils.NopLogger()}

	cmd := &cobra.Command{
		Use:           "psuutil",
		Short:         "Inspect PSU inventory and firmware versions on the object bus",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = psuutils.NewLogger(cmd.ErrOrStderr(), a.v.GetString("log-level"))
			return nil
		},
	}
	cmd.Version = version

	flags := cmd.PersistentFlags()
	flags.String("psu-config", psuutils.DefaultConfigPath, "PSU configuration document")
	flags.String("bus", "system", `bus to use: "system", "session" or a bus gateway address (empty reads NX_BUS_GATEWAY_ADDR)`)
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	_ = a.v.BindPFlags(flags)

	a.v.SetEnvPrefix("PSUUTIL")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	cmd.AddCommand(
		a.inventoryCmd(),
		a.serviceCmd(),
		a.getCmd(),
		a.versionIDCmd(),
		a.scanCmd(),
		a.gatewayCmd(),
	)
	return cmd
}

// openBus connects to the bus selected by --bus. The returned func closes it.
func (a *app) openBus() (psuutils.Bus, func() error, error) {
	target := strings.TrimSpace(a.v.GetString("bus"))
	switch target {
	case "system":
		b, err := psuutils.ConnectSystemBus()
		if err != nil {
			return nil, nil, fmt.Errorf("connect system bus: %w", err)
		}
		return b, b.Close, nil
	case "session":
		b, err := psuutils.ConnectSessionBus()
		if err != nil {
			return nil, nil, fmt.Errorf("connect session bus: %w", err)
		}
		return b, b.Close, nil
	case "":
		addr, err := psuutils.GatewayAddrFromEnv(os.Getenv)
		if err != nil {
			return nil, nil, err
		}
		target = addr
	}
	g, err := psuutils.DialBusGateway(target, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("dial bus gateway %s: %w", target, err)
	}
	return g, g.Close, nil
}

// client opens the bus and wraps it in a psuutils.Client.
func (a *app) client() (*psuutils.Client, func() error, error) {
	bus, closeFn, err := a.openBus()
	if err != nil {
		return nil, nil, err
	}
	c, err := psuutils.NewClient(psuutils.Dependencies{
		Bus:        bus,
		Logger:     a.logger,
		ConfigPath: a.v.GetString("psu-config"),
	})
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	return c, closeFn, nil
}
