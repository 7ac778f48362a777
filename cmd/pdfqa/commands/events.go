package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pdf-qa-be/pkg/events"
	pktNats "pdf-qa-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var natsURL string

func NewEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Tail document and artifact events from NATS",
		Args:  cobra.NoArgs,
		RunE:  runEvents,
	}
	cmd.Flags().StringVar(&natsURL, "nats", "nats://localhost:4222", "NATS server URL")
	return cmd
}

func runEvents(cmd *cobra.Command, args []string) error {
	sub, err := pktNats.NewSubscriber(natsURL)
	if err != nil {
		return err
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	label := color.New(color.FgMagenta, color.Bold)
	err = sub.Subscribe(ctx, pktNats.SubjectPrefix+">", "", func(_ context.Context, event events.Event) error {
		label.Fprintf(out, "[%s] %s ", event.Timestamp().Format("15:04:05"), event.EventType())
		fmt.Fprintln(out, formatPayload(event.Payload()))
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Listening for events, press Ctrl+C to stop.")
	<-ctx.Done()
	return nil
}
