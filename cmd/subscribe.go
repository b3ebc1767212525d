/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/samwightt/gqlz/pkg/client"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewSubscribeCmd() *cobra.Command {
	var (
		name  string
		count int
	)

	cmd := &cobra.Command{
		Use:   "subscribe [selection.json]",
		Short: "Stream a subscription over WebSocket",
		Long: `Opens a subscription for a selection and prints every message as one JSON
line, with DateTime and UUID fields decoded. Runs until the server closes
the stream, --count messages have arrived, or the process is interrupted.

The WebSocket URL is --ws-url when set, otherwise --host with http(s)
rewritten to ws(s). The document is sent as the query parameter.`,
		Example: `  # Follow a subscription
  gqlz subscribe selection.json --host https://api.example.com/graphql

  # Take the first message only
  gqlz subscribe selection.json --ws-url wss://api.example.com/live --count 1`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if endpoint.Host == "" && endpoint.WSURL == "" {
				return requireHost()
			}
			opts, err := clientOptions()
			if err != nil {
				return err
			}

			tables, _, err := loadCliForSchema()
			if err != nil {
				return err
			}

			_, sel, err := readSelection(cmd, args)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			stream, err := client.Subscription(tables, endpoint.Host, opts...).Subscribe(ctx, "subscription", sel,
				client.WithOperationName(name),
			)
			if err != nil {
				return err
			}
			defer stream.Close()

			received := 0
			for ev := range stream.Events() {
				if ev.Err != nil {
					return ev.Err
				}
				line, err := json.Marshal(ev.Data)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(line))

				received++
				if count > 0 && received >= count {
					break
				}
			}
			logger.Debug("subscription finished", zap.Int("messages", received))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Operation name")
	cmd.Flags().IntVarP(&count, "count", "c", 0, "Stop after this many messages (0 means no limit)")

	return cmd
}
