// Package commands implements the gathor CLI. Each page-like command asks
// the route guard before rendering, so the terminal behaves like the app:
// guarded pages bounce to the login route when signed out.
package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lysandre995/gathorapp"
	"github.com/lysandre995/gathorapp/core"
)

const version = "0.1.0"

type cli struct {
	configPath string
	out        io.Writer
	in         io.Reader

	client *gathorapp.Client
	reader *bufio.Reader
}

// NewRoot builds the gathor command tree.
func NewRoot() *cobra.Command {
	c := &cli{out: os.Stdout, in: os.Stdin}

	cmd := &cobra.Command{
		Use:           "gathor",
		Short:         "GathorApp command line client",
		Long:          "gathor talks to a GathorApp server: sign in, browse events and outings,\nmanage vouchers and notifications, and join outing chats.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file path (YAML)")

	cmd.AddCommand(
		c.loginCmd(),
		c.registerCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.refreshCmd(),
		c.eventsCmd(),
		c.outingsCmd(),
		c.vouchersCmd(),
		c.notificationsCmd(),
		c.chatCmd(),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gathor version %s\n", version)
		},
	}
}

// ensureClient assembles the client on first use. The navigator prints route
// changes, which is how login/logout/guard redirects surface in a terminal.
func (c *cli) ensureClient() (*gathorapp.Client, error) {
	if c.client != nil {
		return c.client, nil
	}

	settings, err := gathorapp.LoadSettings(c.configPath)
	if err != nil {
		return nil, err
	}
	nav := gathorapp.NavigatorFunc(func(path string) {
		fmt.Fprintf(c.out, "-> %s\n", path)
	})
	client, err := gathorapp.FromSettings(settings, nav)
	if err != nil {
		return nil, err
	}
	c.client = client
	return client, nil
}

// guarded resolves the client and checks the route guard. A denial is not an
// error: the navigator has already announced the login redirect.
func (c *cli) guarded(route string) (*gathorapp.Client, bool, error) {
	client, err := c.ensureClient()
	if err != nil {
		return nil, false, err
	}
	if !client.Guard.Allow(route) {
		fmt.Fprintln(c.out, "sign in first: gathor login")
		return client, false, nil
	}
	return client, true, nil
}

// promptLine reads one line from stdin. A single shared reader keeps
// consecutive prompts from swallowing each other's buffered input.
func (c *cli) promptLine(label string) (string, error) {
	if c.reader == nil {
		c.reader = bufio.NewReader(c.in)
	}
	fmt.Fprintf(c.out, "%s: ", label)
	line, err := c.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

func describeUser(user *core.User) string {
	if user == nil {
		return "(profile not loaded)"
	}
	return fmt.Sprintf("%s <%s> [%s]", user.Name, user.Email, user.Role)
}
