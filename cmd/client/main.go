// Package main implements the keepsafe command-line client. Every
// command except register authenticates with the client certificate
// obtained at registration.
package main

import (
	"cmp"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/akazakov/keepsafe/internal/client/api"
	"github.com/akazakov/keepsafe/internal/client/prompt"
	"github.com/akazakov/keepsafe/internal/client/render"
	"github.com/akazakov/keepsafe/internal/models"
)

var (
	version   string
	buildDate string
)

var (
	baseURL  string
	certFile string
	keyFile  string
	caFile   string
)

// newAPIClient loads the client certificate and returns the API client.
func newAPIClient() (*api.Client, error) {
	return api.New(baseURL, certFile, keyFile, caFile)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "keepsafe",
		Short:         "Manage personal secrets stored on a keepsafe server",
		Version:       fmt.Sprintf("%s (built %s)", cmp.Or(version, "dev"), cmp.Or(buildDate, "unknown")),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&baseURL, "url", "https://localhost:8080", "server base URL")
	root.PersistentFlags().StringVar(&certFile, "cert", "client.crt", "path to client cert")
	root.PersistentFlags().StringVar(&keyFile, "key", "client.key", "path to client key")
	root.PersistentFlags().StringVar(&caFile, "ca", "certs/ca.crt", "path to CA cert")

	root.AddCommand(
		newRegisterCmd(),
		newListCmd(),
		newAddCmd(),
		newViewCmd(),
		newEditCmd(),
		newDeleteCmd(),
	)
	return root
}

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <login>",
		Short: "Register a new user and save the issued certificate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := api.Register(baseURL, args[0], caFile, certFile, keyFile)
			if err != nil {
				return err
			}
			color.Green("Registered as %s. Certificate saved to %s.", args[0], certFile)
			fmt.Printf("User ID: %s\nOrg ID:  %s\n", result.UserID, result.OrgID)
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	var offset, limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List secrets, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			result, err := client.ListUserSecrets(offset, limit)
			if err != nil {
				return err
			}
			render.List(cmd.OutOrStdout(), result.UserSecrets, result.TotalCount)
			return nil
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "number of secrets to skip (0-100)")
	cmd.Flags().IntVar(&limit, "limit", 25, "page size (1-100)")
	return cmd
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "add <webLogin|creditCard|secureNote>",
		Short:     "Create a secret of the given type",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"webLogin", "creditCard", "secureNote"},
		RunE: func(cmd *cobra.Command, args []string) error {
			secretType := models.ParseSecretType(args[0])
			if secretType == models.TypeAny {
				return fmt.Errorf("unknown secret type %q", args[0])
			}
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			payload := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()).ForCreate(secretType)
			result, err := client.CreateUserSecret(payload)
			if err != nil {
				return err
			}
			color.Green("Secret created: %s", result.ID)
			return nil
		},
	}
}

func newViewCmd() *cobra.Command {
	var reveal bool
	cmd := &cobra.Command{
		Use:   "view <id>",
		Short: "Show one secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			sec, err := client.GetUserSecret(args[0])
			if err != nil {
				return err
			}
			render.Detail(cmd.OutOrStdout(), sec, reveal)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reveal, "reveal", false, "show masked values in plain text")
	return cmd
}

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id>",
		Short: "Update fields of a secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			sec, err := client.GetUserSecret(args[0])
			if err != nil {
				return err
			}
			secretType := models.ParseSecretType(sec.SecretType)
			fields := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()).ForUpdate(secretType)
			result, err := client.UpdateUserSecret(api.UpdateSecretPayload{
				ID:               sec.ID,
				SecretType:       sec.SecretType,
				UserSecretUpdate: fields,
			})
			if err != nil {
				return err
			}
			color.Green("Secret updated at %s", result.UpdatedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			if _, err := client.DeleteUserSecret(args[0]); err != nil {
				return err
			}
			color.Green("Secret deleted")
			return nil
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
