package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/d0ngw/counterd/client"
	c "github.com/d0ngw/counterd/common"
	"github.com/d0ngw/counterd/counter"
	"github.com/d0ngw/counterd/server"
	"github.com/spf13/cobra"
)

var (
	flagConfDir  string
	flagEnv      string
	flagEndpoint string
	flagTimeout  time.Duration
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "counterd",
	Short:         "In-memory named counter service over a ZeroMQ REQ/REP socket",
	SilenceErrors: true,
	SilenceUsage:  true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the counter service until SIGINT or SIGTERM",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := server.LoadConfig(flagConfDir, flagEnv)
		if err != nil {
			return err
		}
		srv, err := server.New(config)
		if err != nil {
			return err
		}
		return srv.Run(c.NewShutdownhook())
	},
}

func actionCmd(action counter.Action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action.String() + " <counter_name>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, action, args[0])
		},
	}
}

func runAction(cmd *cobra.Command, action counter.Action, name string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), flagTimeout)
	defer cancel()

	cli, err := client.Dial(ctx, flagEndpoint)
	if err != nil {
		return err
	}
	defer cli.Close()

	payload, err := counter.EncodeRequest(&counter.Request{Action: action.String(), CounterName: name})
	if err != nil {
		return err
	}
	reply, err := cli.SendRaw(payload)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(reply))
	return nil
}

func init() {
	serveCmd.Flags().StringVar(&flagConfDir, "conf", "", "config directory (default: $"+server.EnvConfDir+" or ./conf)")
	serveCmd.Flags().StringVar(&flagEnv, "env", "dev", "config environment, loads conf_<env>.yaml")

	clientCmds := []*cobra.Command{
		actionCmd(counter.ActionIncr, "Increment a counter, creating it if needed"),
		actionCmd(counter.ActionReset, "Reset an existing counter to 0"),
		actionCmd(counter.ActionGet, "Print the current value of a counter"),
	}
	for _, cmd := range clientCmds {
		cmd.Flags().StringVar(&flagEndpoint, "endpoint", client.DefaultEndpoint, "counter service endpoint")
		cmd.Flags().DurationVar(&flagTimeout, "timeout", 5*time.Second, "request timeout")
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(serveCmd)
}
