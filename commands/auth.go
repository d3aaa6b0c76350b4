package commands

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/lysandre995/gathorapp"
	"github.com/lysandre995/gathorapp/core"
)

func (c *cli) loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.ensureClient()
			if err != nil {
				return err
			}

			if email == "" {
				if email, err = c.promptLine("Email"); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = c.promptLine("Password"); err != nil {
					return err
				}
			}

			response, err := client.Auth.Login(cmd.Context(), core.Credentials{Email: email, Password: password})
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "signed in as %s\n", describeUser(response.User))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	return cmd
}

func (c *cli) registerCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.ensureClient()
			if err != nil {
				return err
			}

			if name == "" {
				if name, err = c.promptLine("Name"); err != nil {
					return err
				}
			}
			if email == "" {
				if email, err = c.promptLine("Email"); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = c.promptLine("Password"); err != nil {
					return err
				}
			}

			input := core.RegisterInput{Name: name, Email: email, Password: password}
			response, err := client.Auth.Register(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "registered as %s\n", describeUser(response.User))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.ensureClient()
			if err != nil {
				return err
			}
			client.Auth.Logout(cmd.Context())
			fmt.Fprintln(c.out, "signed out")
			return nil
		},
	}
}

func (c *cli) refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the stored refresh token for a new pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.ensureClient()
			if err != nil {
				return err
			}
			if _, err := client.Auth.Refresh(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "session refreshed")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.ensureClient()
			if err != nil {
				return err
			}

			token := client.Auth.Token()
			if token == "" {
				return gathorapp.ErrNotAuthenticated
			}

			fmt.Fprintf(c.out, "%s\n", describeUser(client.Session.CurrentUser()))
			printTokenClaims(c, token)
			return nil
		},
	}
}

// printTokenClaims displays the access token's claims without verifying the
// signature. The server is the only party that needs to verify; here the
// claims are informational.
func printTokenClaims(c *cli, token string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		fmt.Fprintf(c.out, "subject: %s\n", sub)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		fmt.Fprintf(c.out, "token expires: %s\n", exp.Format(time.RFC3339))
		if time.Now().After(exp.Time) {
			fmt.Fprintln(c.out, "token is expired; run: gathor refresh")
		}
	}
}
