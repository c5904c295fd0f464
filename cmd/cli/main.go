// Command cli is a small interactive client for the transferd API.
//
// Usage:
//
//	cli -addr http://localhost:3000 register <username> [favorite ...]
//	cli -addr http://localhost:3000 login <username>
//	cli -addr http://localhost:3000 users
//	cli -addr http://localhost:3000 -token <token> transfer <from> <to> <value>
//	cli -addr http://localhost:3000 -token <token> transfers
//
// Passwords are read from the terminal without echo.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/dmsantos/transferd/internal/client"
)

func main() {
	addr := flag.String("addr", "http://localhost:3000", "server base URL")
	token := flag.String("token", "", "bearer token for protected commands")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "missing command: register | login | users | transfer | transfers")
		os.Exit(2)
	}

	ctx := context.Background()
	c := client.New(*addr)

	var err error
	switch args[0] {
	case "register":
		err = runRegister(ctx, c, args[1:])
	case "login":
		err = runLogin(ctx, c, args[1:])
	case "users":
		err = runUsers(ctx, c)
	case "transfer":
		err = runTransfer(ctx, c, *token, args[1:])
	case "transfers":
		err = runTransfers(ctx, c, *token)
	default:
		err = fmt.Errorf("unknown command %q", args[0])
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(password), nil
}

func runRegister(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: register <username> [favorite ...]")
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}

	user, err := c.Register(ctx, args[0], password, args[1:])
	if err != nil {
		return err
	}

	fmt.Printf("registered %s (saldo %d)\n", user.Username, user.Saldo)
	return nil
}

func runLogin(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: login <username>")
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}

	result, err := c.Login(ctx, args[0], password)
	if err != nil {
		return err
	}

	fmt.Printf("logged in as %s\ntoken: %s\n", result.User.Username, result.Token)
	return nil
}

func runUsers(ctx context.Context, c *client.Client) error {
	users, err := c.ListUsers(ctx)
	if err != nil {
		return err
	}

	for _, u := range users {
		fmt.Printf("%s\tsaldo=%d\tfavorecidos=%v\n", u.Username, u.Saldo, u.Favorecidos)
	}
	return nil
}

func runTransfer(ctx context.Context, c *client.Client, token string, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: transfer <from> <to> <value>")
	}
	if token == "" {
		return fmt.Errorf("transfer requires -token")
	}

	value, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid value %q", args[2])
	}

	committed, err := c.CreateTransfer(ctx, token, args[0], args[1], value)
	if err != nil {
		return err
	}

	fmt.Printf("transfer %s: %s -> %s value=%d\n", committed.ID, committed.From, committed.To, committed.Value)
	return nil
}

func runTransfers(ctx context.Context, c *client.Client, token string) error {
	if token == "" {
		return fmt.Errorf("transfers requires -token")
	}

	list, err := c.ListTransfers(ctx, token)
	if err != nil {
		return err
	}

	for _, t := range list {
		fmt.Printf("%s\t%s -> %s\tvalue=%d\t%s\n", t.ID, t.From, t.To, t.Value, t.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
