package users

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mkrecek/todolist/cmd/cli/config"
	"github.com/mkrecek/todolist/cmd/cli/output"
	appconfig "github.com/mkrecek/todolist/internal/config"
	"github.com/mkrecek/todolist/internal/db"
	"github.com/mkrecek/todolist/internal/repo"
	"github.com/spf13/cobra"
)

// ==========================
// CLI Command Init
// ==========================
func InitUsers(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}

	usersCmd.AddCommand(
		listUsersCmd(),
		registerUserCmd(),
		deleteUserCmd(),
		promoteUserCmd(),
	)

	rootCmd.AddCommand(usersCmd)
}

// ==========================
// LIST
// ==========================
func listUsersCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := http.Get(config.APIURL() + "/users/")
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			// The API returns public summaries, not full user records.
			var users []struct {
				Username      string `json:"username"`
				MemberSince   string `json:"member_since"`
				LastSeen      string `json:"last_seen"`
				TodoListCount int    `json:"todolist_count"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
				fmt.Println(err)
				return
			}

			if asJSON {
				b, _ := json.MarshalIndent(users, "", "  ")
				fmt.Println(string(b))
				return
			}

			rows := make([][]interface{}, 0, len(users))
			for _, u := range users {
				rows = append(rows, []interface{}{
					u.Username, u.TodoListCount, u.MemberSince, u.LastSeen,
				})
			}
			output.RenderTable([]string{"Username", "Lists", "Member Since", "Last Seen"}, rows)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON instead of a table")

	return cmd
}

// ==========================
// REGISTER
// ==========================
func registerUserCmd() *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || email == "" {
				return fmt.Errorf("username and email are required")
			}
			if password == "" {
				fmt.Print("Password: ")
				fmt.Scanln(&password)
			}

			payload := map[string]string{
				"username": username,
				"email":    email,
				"password": password,
			}
			body, _ := json.Marshal(payload)

			resp, err := http.Post(config.APIURL()+"/users/", "application/json", strings.NewReader(string(body)))
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusCreated {
				b, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("API error: %s", string(b))
			}

			fmt.Println("User registered successfully. You can now login.")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username for the new account")
	cmd.Flags().StringVar(&email, "email", "", "email for the new account")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")

	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [username]",
		Short: "Delete a user (admin only)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			token, err := config.LoadToken()
			if err != nil {
				fmt.Println("Please login first")
				return
			}

			req, _ := http.NewRequest("DELETE", config.APIURL()+"/user/"+args[0]+"/", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusOK {
				fmt.Println("User deleted")
			} else {
				b, _ := io.ReadAll(resp.Body)
				fmt.Println("Failed to delete user:", string(b))
			}
		},
	}
}

// ==========================
// PROMOTE
// ==========================

// promoteUserCmd talks straight to the database: the first admin cannot be
// created through the API, since only admins may change admin status.
func promoteUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote [username]",
		Short: "Grant admin rights to a user (direct database access)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appconfig.Load()

			conn, err := db.Connect(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer conn.Close()

			if err := repo.NewUserRepo(conn).PromoteToAdmin(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Printf("User %s is now an admin.\n", args[0])
			return nil
		},
	}
}
