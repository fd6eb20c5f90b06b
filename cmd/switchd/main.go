// Command switchd runs the management console of the EEE switch against an
// in-memory controller simulator.
//
// Usage:
//
//	switchd run [--config switch.yaml]
//	switchd hashpw <password>
//
// run starts the interactive console and the bus dispatch task. On first
// start, when the user store is empty, a default administrator account
// (admin/admin) is created; change its password before exposing the
// console.
//
// hashpw prints the bcrypt hash of a password, for seeding a user store by
// hand.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/misl-switch/mislswitch-go/pkg/audit"
	"github.com/misl-switch/mislswitch-go/pkg/bus"
	"github.com/misl-switch/mislswitch-go/pkg/commands"
	"github.com/misl-switch/mislswitch-go/pkg/config"
	"github.com/misl-switch/mislswitch-go/pkg/console"
	"github.com/misl-switch/mislswitch-go/pkg/controller"
	"github.com/misl-switch/mislswitch-go/pkg/perm"
	"github.com/misl-switch/mislswitch-go/pkg/session"
	"github.com/misl-switch/mislswitch-go/pkg/users"
)

func main() {
	root := &cobra.Command{
		Use:           "switchd",
		Short:         "EEE switch management console",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(runCommand(), hashpwCommand())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "switchd:", err)
		os.Exit(1)
	}
}

func runCommand() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive console and the bus dispatch task",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "switch.yaml", "device configuration file")
	return cmd
}

func hashpwCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hashpw <password>",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := users.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Println(hash)
			return nil
		},
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store, err := users.Open(cfg.UsersFile)
	if err != nil {
		return err
	}
	if store.Len() == 0 {
		if err := store.Add(users.User{
			Username:   "admin",
			FirstName:  "Default",
			LastName:   "Administrator",
			Permission: perm.Administrator,
		}, "admin"); err != nil {
			return fmt.Errorf("bootstrap admin account: %w", err)
		}
		fmt.Println("Created default account admin/admin. Change its password.")
	}

	ring := audit.NewRing(cfg.EventRingSize)
	loggers := []audit.Logger{ring}
	if cfg.AuditLog != "" {
		fl, err := audit.NewFileLogger(cfg.AuditLog)
		if err != nil {
			return err
		}
		defer fl.Close()
		loggers = append(loggers, fl)
	}
	filter := audit.NewFilter(audit.NewMultiLogger(loggers...))

	sim := controller.NewSimulator()
	rom := controller.NewMemoryEEPROM()
	sess := session.New()

	set := &commands.Set{
		Regs: sim, VLANs: sim, MACs: sim, ROM: rom,
		Users: store, Sess: sess,
		Log: filter, Filter: filter, Ring: ring,
		Responder: &bus.Recorder{},
		Out:       os.Stdout,
	}

	busTable, err := set.BuildBusTable()
	if err != nil {
		return err
	}
	set.Assembler = bus.NewAssembler(busTable)

	tree, err := set.BuildTree()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var busMu sync.Mutex
	dispatcher := bus.NewDispatcher(busTable, set.Assembler, set.Responder, &busMu)
	go dispatcher.Run(ctx)

	src, err := console.NewReadlineSource()
	if err != nil {
		return err
	}
	defer src.Close()

	c := console.New(tree, src, os.Stdout, sess, store, filter, cfg.Hostname)
	return c.Run(ctx)
}
