// Smoke-test client: drives a running server through the full board flow
// using the client library.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"taskboard/pkg/client"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "server base URL")
	email := flag.String("email", "demo@example.com", "account email")
	password := flag.String("password", "demo-password", "account password")
	name := flag.String("name", "Demo User", "account name")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := client.New(*addr)
	if err := c.Health(ctx); err != nil {
		log.Fatalf("server not reachable: %v", err)
	}

	// Sign up, or log in if the account already exists.
	if _, err := c.Signup(ctx, *name, *email, *password); err != nil {
		var apiErr *client.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != 400 {
			log.Fatalf("signup failed: %v", err)
		}
		if _, err := c.Login(ctx, *email, *password); err != nil {
			log.Fatalf("login failed: %v", err)
		}
		fmt.Println("logged in as", *email)
	} else {
		fmt.Println("signed up as", *email)
	}

	board, err := c.CreateBoard(ctx, "Smoke Test "+time.Now().Format(time.RFC3339))
	if err != nil {
		log.Fatalf("create board failed: %v", err)
	}
	fmt.Printf("board %d: %s\n", board.ID, board.Name)

	tasks, err := c.BoardTasks(ctx, board.ID)
	if err != nil {
		log.Fatalf("fetch tasks failed: %v", err)
	}
	state := client.NewBoardState(board.ID, tasks)

	for _, content := range []string{"write the report", "review the PR", "ship it"} {
		if _, err := c.AddCard(ctx, state, content); err != nil {
			log.Fatalf("add card failed: %v", err)
		}
	}
	printBoard(state)

	// Drag the first todo card into inProgress.
	moved, err := c.MoveCard(ctx, state,
		client.Position{Column: client.ColumnTodo, Index: 0},
		client.Position{Column: client.ColumnInProgress, Index: 0},
	)
	if err != nil {
		log.Fatalf("move card failed: %v", err)
	}
	fmt.Printf("moved task %d to %s[%d]\n", moved.ID, moved.ColumnID, moved.ColumnOrder)
	printBoard(state)
}

func printBoard(state *client.BoardState) {
	for _, col := range []string{client.ColumnTodo, client.ColumnInProgress, client.ColumnDone} {
		fmt.Printf("%-12s", col+":")
		for _, t := range state.Column(col) {
			fmt.Printf(" [%d:%s]", t.ID, t.Content)
		}
		fmt.Println()
	}
}
