package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lysandre995/gathorapp/core"
)

func (c *cli) eventsCmd() *cobra.Command {
	var upcoming, mine bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Browse platform events",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, ok, err := c.guarded("/events")
			if err != nil || !ok {
				return err
			}

			var events []core.Event
			switch {
			case mine:
				events, err = client.Events.Mine(cmd.Context())
			case upcoming:
				events, err = client.Events.Upcoming(cmd.Context())
			default:
				events, err = client.Events.All(cmd.Context())
			}
			if err != nil {
				return err
			}

			if len(events) == 0 {
				fmt.Fprintln(c.out, "no events")
				return nil
			}
			for _, event := range events {
				fmt.Fprintf(c.out, "%s  %s  %s (%s)\n",
					event.ID, event.EventDate.Format("2006-01-02 15:04"), event.Title, event.Location)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&upcoming, "upcoming", false, "only future events")
	cmd.Flags().BoolVar(&mine, "mine", false, "only events I created")
	return cmd
}

func (c *cli) outingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outings",
		Short: "Browse and join outings",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, ok, err := c.guarded("/outings")
			if err != nil || !ok {
				return err
			}

			outings, err := client.Outings.Upcoming(cmd.Context())
			if err != nil {
				return err
			}
			if len(outings) == 0 {
				fmt.Fprintln(c.out, "no upcoming outings")
				return nil
			}
			for _, outing := range outings {
				marker := " "
				if outing.IsParticipant {
					marker = "*"
				}
				fmt.Fprintf(c.out, "%s %s  %s  %s (%d/%d)\n",
					marker, outing.ID, outing.OutingDate.Format("2006-01-02 15:04"),
					outing.Title, outing.CurrentParticipants, outing.MaxParticipants)
			}
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "join <outing-id>",
			Short: "Join an outing",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, ok, err := c.guarded("/outings")
				if err != nil || !ok {
					return err
				}
				outing, err := client.Outings.Join(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "joined %q (%d/%d)\n", outing.Title, outing.CurrentParticipants, outing.MaxParticipants)
				return nil
			},
		},
		&cobra.Command{
			Use:   "leave <outing-id>",
			Short: "Leave an outing",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, ok, err := c.guarded("/outings")
				if err != nil || !ok {
					return err
				}
				outing, err := client.Outings.Leave(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "left %q\n", outing.Title)
				return nil
			},
		},
	)
	return cmd
}

func (c *cli) vouchersCmd() *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "vouchers",
		Short: "List my vouchers",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, ok, err := c.guarded("/vouchers")
			if err != nil || !ok {
				return err
			}

			var vouchers []core.Voucher
			if activeOnly {
				vouchers, err = client.Vouchers.Active(cmd.Context())
			} else {
				vouchers, err = client.Vouchers.Mine(cmd.Context())
			}
			if err != nil {
				return err
			}

			if len(vouchers) == 0 {
				fmt.Fprintln(c.out, "no vouchers")
				return nil
			}
			for _, voucher := range vouchers {
				title := ""
				if voucher.Reward != nil {
					title = voucher.Reward.Title
				}
				fmt.Fprintf(c.out, "%s  %-8s  %s\n", voucher.ID, voucher.Status, title)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&activeOnly, "active", false, "only redeemable vouchers")

	cmd.AddCommand(&cobra.Command{
		Use:   "redeem <qr-code>",
		Short: "Redeem a voucher by QR code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, ok, err := c.guarded("/vouchers")
			if err != nil || !ok {
				return err
			}
			voucher, err := client.Vouchers.Redeem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "redeemed voucher %s\n", voucher.ID)
			return nil
		},
	})
	return cmd
}

func (c *cli) notificationsCmd() *cobra.Command {
	var unreadOnly bool

	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List my notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, ok, err := c.guarded("/notifications")
			if err != nil || !ok {
				return err
			}

			var notifications []core.Notification
			if unreadOnly {
				notifications, err = client.Notifications.Unread(cmd.Context())
			} else {
				notifications, err = client.Notifications.All(cmd.Context())
			}
			if err != nil {
				return err
			}

			if len(notifications) == 0 {
				fmt.Fprintln(c.out, "no notifications")
				return nil
			}
			for _, notification := range notifications {
				marker := " "
				if !notification.Read {
					marker = "*"
				}
				fmt.Fprintf(c.out, "%s %s  %s  %s\n",
					marker, notification.ID,
					notification.CreatedAt.Format("2006-01-02 15:04"), notification.Title)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "only unread notifications")

	cmd.AddCommand(&cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, ok, err := c.guarded("/notifications")
			if err != nil || !ok {
				return err
			}
			if err := client.Notifications.MarkAllRead(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "all notifications marked read")
			return nil
		},
	})
	return cmd
}

// fetchTimeout bounds the one-shot REST calls issued by commands that then
// keep running, like chat.
func fetchTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, 15*time.Second)
}
