package main

import (
	"fmt"
	"os"

	"github.com/mkrecek/todolist/cmd/cli/auth"
	"github.com/mkrecek/todolist/cmd/cli/lists"
	"github.com/mkrecek/todolist/cmd/cli/root"
	"github.com/mkrecek/todolist/cmd/cli/todos"
	"github.com/mkrecek/todolist/cmd/cli/users"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	users.InitUsers(rootCmd)
	lists.InitLists(rootCmd)
	todos.InitTodos(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
