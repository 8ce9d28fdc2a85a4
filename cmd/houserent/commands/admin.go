package commands

import (
	"fmt"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/cache"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/notify"
	"github.com/spf13/cobra"
)

var (
	adminUsername string
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an active staff account",
	Long: `Create a verified, active staff account that can approve advertisements
and manage categories. No verification mail is sent.

Example:
  houserent create-admin --username root --email root@example.com --password 's3cret'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, err := openStores(cfg)
		if err != nil {
			return err
		}
		defer st.close()

		accounts := accountService(cfg, st, notify.NewLogMailer(cfg.AppBaseURL), cache.Noop{})
		account, err := accounts.CreateAdmin(cmd.Context(), adminUsername, adminEmail, adminPassword)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created admin %q (account %d)\n", adminUsername, account.ID)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "Login name")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Email address")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Password")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
