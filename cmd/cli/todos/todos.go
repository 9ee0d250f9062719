package todos

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
// Init Todos
// ==========================
func InitTodos(rootCmd *cobra.Command) {

	todosCmd := &cobra.Command{
		Use:   "todos",
		Short: "Manage todos",
	}

	todosCmd.AddCommand(
		listTodosCmd(),
		addTodoCmd(),
		finishTodoCmd(),
		reopenTodoCmd(),
		deleteTodoCmd(),
	)

	rootCmd.AddCommand(todosCmd)
}

// ==========================
// LIST
// ==========================
func listTodosCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list [list-id]",
		Short: "List todos in a todolist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := http.Get(config.APIURL() + "/todolist/" + args[0] + "/todos/")
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				b, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("API error: %s", string(b))
			}

			var todos []models.Todo
			if err := json.NewDecoder(resp.Body).Decode(&todos); err != nil {
				return err
			}

			if asJSON {
				b, _ := json.MarshalIndent(todos, "", "  ")
				fmt.Println(string(b))
				return nil
			}

			rows := make([][]interface{}, 0, len(todos))
			for _, t := range todos {
				finished := ""
				if t.FinishedAt != nil {
					finished = t.FinishedAt.Format("2006-01-02 15:04")
				}
				rows = append(rows, []interface{}{t.ID, t.Description, t.Status, finished})
			}
			output.RenderTable([]string{"ID", "Description", "Status", "Finished At"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON instead of a table")

	return cmd
}

// ==========================
// ADD
// ==========================
func addTodoCmd() *cobra.Command {
	var user string
	var list string
	var description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a todo to a todolist",
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" || list == "" || description == "" {
				return fmt.Errorf("--user, --list and --description are required")
			}

			token, err := config.LoadToken()
			if err != nil {
				return fmt.Errorf("please login first")
			}

			body, _ := json.Marshal(map[string]string{"description": description})

			req, _ := http.NewRequest("POST",
				config.APIURL()+"/user/"+user+"/todolist/"+list+"/", bytes.NewBuffer(body))
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

			var todo models.Todo
			if err := json.NewDecoder(resp.Body).Decode(&todo); err != nil {
				return err
			}

			fmt.Printf("Added todo %d: %s\n", todo.ID, todo.Description)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "username owning the list")
	cmd.Flags().StringVar(&list, "list", "", "todolist id")
	cmd.Flags().StringVar(&description, "description", "", "todo description")

	return cmd
}

// ==========================
// FINISH / REOPEN
// ==========================
func finishTodoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "finish [id]",
		Short: "Mark a todo as finished",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setFinished(args[0], true)
		},
	}
}

func reopenTodoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reopen [id]",
		Short: "Reopen a finished todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setFinished(args[0], false)
		},
	}
}

func setFinished(id string, finished bool) error {
	token, err := config.LoadToken()
	if err != nil {
		return fmt.Errorf("please login first")
	}

	body, _ := json.Marshal(map[string]bool{"is_finished": finished})

	req, _ := http.NewRequest("PUT", config.APIURL()+"/todo/"+id+"/", bytes.NewBuffer(body))
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

	var todo models.Todo
	if err := json.NewDecoder(resp.Body).Decode(&todo); err != nil {
		return err
	}

	fmt.Printf("Todo %d is now %s\n", todo.ID, todo.Status)
	return nil
}

// ==========================
// DELETE
// ==========================
func deleteTodoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			token, err := config.LoadToken()
			if err != nil {
				fmt.Println("Please login first")
				return
			}

			req, _ := http.NewRequest("DELETE", config.APIURL()+"/todo/"+args[0]+"/", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusOK {
				fmt.Println("Todo deleted")
			} else {
				b, _ := io.ReadAll(resp.Body)
				fmt.Println("Failed to delete todo:", string(b))
			}
		},
	}
}
