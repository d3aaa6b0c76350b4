package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lysandre995/gathorapp/chat"
	"github.com/lysandre995/gathorapp/core"
)

func (c *cli) chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <outing-id>",
		Short: "Join an outing's chat",
		Long:  "Opens the chat attached to an outing, prints its history, then streams\nlive messages. Type to send; /quit leaves.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, ok, err := c.guarded("/chat")
			if err != nil || !ok {
				return err
			}

			handlers := chat.Handlers{
				OnMessage: func(msg core.ChatMessage) {
					fmt.Fprintf(c.out, "%s %s: %s\n",
						msg.Timestamp.Format("15:04"), senderName(msg.Sender), msg.Content)
				},
				OnTyping: func(event core.TypingEvent) {
					if event.IsTyping {
						fmt.Fprintf(c.out, "(%s is typing)\n", event.UserID)
					}
				},
			}

			openCtx, cancel := fetchTimeout(cmd.Context())
			info, err := client.Chat.Open(openCtx, args[0], handlers)
			cancel()
			if err != nil {
				return err
			}
			defer client.Chat.Close()
			fmt.Fprintf(c.out, "joined chat %s\n", info.ChatID)

			historyCtx, cancel := fetchTimeout(cmd.Context())
			history, err := client.Chat.History(historyCtx)
			cancel()
			if err != nil {
				return err
			}
			for _, msg := range history {
				fmt.Fprintf(c.out, "%s %s: %s\n",
					msg.Timestamp.Format("15:04"), senderName(msg.Sender), msg.Content)
			}

			scanner := bufio.NewScanner(c.in)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "/quit" {
					break
				}
				if err := client.Chat.Send(line); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}
}

func senderName(sender *core.PersonRef) string {
	if sender == nil {
		return "?"
	}
	return sender.Name
}
