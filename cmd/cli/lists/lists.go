package lists

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mkrecek/todolist/cmd/cli/config"
	"github.com/mkrecek/todolist/cmd/cli/output"
	"github.com/mkrecek/todolist/internal/models"
	"github.com/spf13/cobra"
)

// ==========================
// Init Lists
// ==========================
func InitLists(rootCmd *cobra.Command) {

	listsCmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage todolists",
	}

	listsCmd.AddCommand(
		listListsCmd(),
		createListCmd(),
		renameListCmd(),
		deleteListCmd(),
	)

	rootCmd.AddCommand(listsCmd)
}

// ==========================
// LIST
// ==========================
func listListsCmd() *cobra.Command {
	var user string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's todolists",
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" {
				return fmt.Errorf("--user is required")
			}

			resp, err := http.Get(config.APIURL() + "/user/" + user + "/todolists/")
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				b, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("API error: %s", string(b))
			}

			var lists []models.TodoList
			if err := json.NewDecoder(resp.Body).Decode(&lists); err != nil {
				return err
			}

			if asJSON {
				b, _ := json.MarshalIndent(lists, "", "  ")
				fmt.Println(string(b))
				return nil
			}

			rows := make([][]interface{}, 0, len(lists))
			for _, l := range lists {
				rows = append(rows, []interface{}{
					l.ID, l.Title, l.TodoCount, l.OpenCount, l.FinishedCount,
				})
			}
			output.RenderTable([]string{"ID", "Title", "Todos", "Open", "Finished"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "username whose lists to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON instead of a table")

	return cmd
}

// ==========================
// CREATE
// ==========================
func createListCmd() *cobra.Command {
	var user string
	var title string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a todolist",
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" || title == "" {
				return fmt.Errorf("--user and --title are required")
			}

			token, err := config.LoadToken()
			if err != nil {
				return fmt.Errorf("please login first")
			}

			body, _ := json.Marshal(map[string]string{"title": title})

			req, _ := http.NewRequest("POST", config.APIURL()+"/user/"+user+"/todolists/", bytes.NewBuffer(body))
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("Content-Type", "application/json")

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusCreated {
				b, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("API error: %s", string(b))
			}

			var list models.TodoList
			if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
				return err
			}

			fmt.Printf("Created todolist %d: %s\n", list.ID, list.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "username to create the list under")
	cmd.Flags().StringVar(&title, "title", "", "list title")

	return cmd
}

// ==========================
// RENAME
// ==========================
func renameListCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "rename [id]",
		Short: "Rename a todolist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				return fmt.Errorf("--title is required")
			}

			token, err := config.LoadToken()
			if err != nil {
				return fmt.Errorf("please login first")
			}

			body, _ := json.Marshal(map[string]string{"title": title})

			req, _ := http.NewRequest("PUT", config.APIURL()+"/todolist/"+args[0]+"/", bytes.NewBuffer(body))
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("Content-Type", "application/json")

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				b, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("API error: %s", string(b))
			}

			fmt.Println("List renamed")
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new list title")

	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a todolist",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			token, err := config.LoadToken()
			if err != nil {
				fmt.Println("Please login first")
				return
			}

			req, _ := http.NewRequest("DELETE", config.APIURL()+"/todolist/"+args[0]+"/", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusOK {
				fmt.Println("List deleted")
			} else {
				b, _ := io.ReadAll(resp.Body)
				fmt.Println("Failed to delete list:", string(b))
			}
		},
	}
}
