// ABOUTME: Admin CLI for the workbench API
// ABOUTME: Registers accounts, manages sessions, and inspects workspaces over HTTP

package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
)

const banner = `
                      _    _                     _
 __      _____  _ __| | _| |__   ___ _ __   ___| |__
 \ \ /\ / / _ \| '__| |/ / '_ \ / _ \ '_ \ / __| '_ \
  \ V  V / (_) | |  |   <| |_) |  __/ | | | (__| | | |
   \_/\_/ \___/|_|  |_|\_\_.__/ \___|_| |_|\___|_| |_|
`

type userJSON struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
}

type workspaceJSON struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

type memberJSON struct {
	ID          int64     `json:"id"`
	PrincipalID int64     `json:"principalId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

type productJSON struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type sessionJSON struct {
	Token     string         `json:"token"`
	User      userJSON       `json:"user"`
	Workspace *workspaceJSON `json:"workspace"`
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := loadConfig(configPath())
	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}

	client := newAPIClient(cfg.Server.URL, getToken())

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "register":
		err = cmdRegister(client, args)
	case "login":
		err = cmdLogin(client, args)
	case "me":
		err = cmdMe(client)
	case "workspace":
		err = cmdWorkspace(client, args)
	case "members":
		err = cmdMembers(client, args)
	case "products":
		err = cmdProducts(client, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()
	fmt.Println("Usage: workbench-admin <command> [args]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  register --email E --name N        Create an account (prompts for password)")
	fmt.Println("  login --email E                    Log in and cache the session token")
	fmt.Println("  me                                 Show your profile and home workspace")
	fmt.Println("  workspace show <id>                Show a workspace")
	fmt.Println("  workspace rename <id> <name>       Rename a workspace")
	fmt.Println("  members list <workspace-id>        List workspace members")
	fmt.Println("  members add <workspace-id> --email E [--role R]")
	fmt.Println("  members remove <workspace-id> <membership-id>")
	fmt.Println("  products list <workspace-id>       List workspace products")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  WORKBENCH_TOKEN          Session token (overrides the cached one)")
	fmt.Println("  WORKBENCH_ADMIN_CONFIG   Config path (default: ~/.config/workbench/admin.toml)")
	fmt.Println()
}

// parseFlags extracts --key value and --key=value pairs.
func parseFlags(args []string) (map[string]string, []string, error) {
	flags := make(map[string]string)
	var rest []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case strings.HasPrefix(arg, "--") && strings.Contains(arg, "="):
			parts := strings.SplitN(strings.TrimPrefix(arg, "--"), "=", 2)
			flags[parts[0]] = parts[1]
		case strings.HasPrefix(arg, "--"):
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("%s requires a value", arg)
			}
			flags[strings.TrimPrefix(arg, "--")] = args[i+1]
			i++
		default:
			rest = append(rest, arg)
		}
	}
	return flags, rest, nil
}

// promptPassword reads a password from stdin.
func promptPassword() (string, error) {
	fmt.Print("Password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func cmdRegister(client *apiClient, args []string) error {
	flags, _, err := parseFlags(args)
	if err != nil {
		return err
	}
	if flags["email"] == "" || flags["name"] == "" {
		return fmt.Errorf("--email and --name are required")
	}

	password := flags["password"]
	if password == "" {
		if password, err = promptPassword(); err != nil {
			return err
		}
	}

	var sess sessionJSON
	err = client.call(context.Background(), http.MethodPost, "/api/auth/register", map[string]string{
		"email": flags["email"], "password": password, "name": flags["name"],
	}, &sess)
	if err != nil {
		return err
	}

	if err := saveToken(sess.Token); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Print("✓ ")
	fmt.Printf("Registered %s (principal %d)\n", sess.User.Email, sess.User.ID)
	if sess.Workspace != nil {
		fmt.Printf("  Home workspace: %s (id %d)\n", sess.Workspace.Name, sess.Workspace.ID)
	}
	fmt.Println("  Session token cached.")
	return nil
}

func cmdLogin(client *apiClient, args []string) error {
	flags, _, err := parseFlags(args)
	if err != nil {
		return err
	}
	if flags["email"] == "" {
		return fmt.Errorf("--email is required")
	}

	password := flags["password"]
	if password == "" {
		if password, err = promptPassword(); err != nil {
			return err
		}
	}

	var sess sessionJSON
	err = client.call(context.Background(), http.MethodPost, "/api/auth/login", map[string]string{
		"email": flags["email"], "password": password,
	}, &sess)
	if err != nil {
		return err
	}

	if err := saveToken(sess.Token); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Print("✓ ")
	fmt.Printf("Logged in as %s\n", sess.User.Email)
	return nil
}

func cmdMe(client *apiClient) error {
	if client.token == "" {
		return fmt.Errorf("not logged in: run 'workbench-admin login' first")
	}

	ctx := context.Background()

	var me userJSON
	if err := client.call(ctx, http.MethodGet, "/api/me", nil, &me); err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Identity")
	cyan.Println("  --------")
	fmt.Printf("  Principal ID:   %d\n", me.ID)
	fmt.Printf("  Email:          %s\n", me.Email)
	fmt.Printf("  Name:           %s\n", me.Name)
	if me.LastLoginAt != nil {
		fmt.Printf("  Last login:     %s\n", me.LastLoginAt.Format("Jan 02 15:04"))
	}

	var home workspaceJSON
	if err := client.call(ctx, http.MethodGet, "/api/me/workspace", nil, &home); err != nil {
		return err
	}
	fmt.Printf("  Home workspace: %s (id %d)\n", home.Name, home.ID)
	fmt.Println()
	return nil
}

func cmdWorkspace(client *apiClient, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: workspace show|rename <id> [name]")
	}

	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid workspace id: %s", args[1])
	}
	ctx := context.Background()

	switch args[0] {
	case "show":
		var ws workspaceJSON
		if err := client.call(ctx, http.MethodGet, fmt.Sprintf("/api/workspace/%d", id), nil, &ws); err != nil {
			return err
		}
		fmt.Printf("Workspace %d: %s (owner %d, created %s)\n",
			ws.ID, ws.Name, ws.OwnerID, ws.CreatedAt.Format("Jan 02 2006"))
		return nil

	case "rename":
		if len(args) < 3 {
			return fmt.Errorf("usage: workspace rename <id> <name>")
		}
		name := strings.Join(args[2:], " ")

		var ws workspaceJSON
		err := client.call(ctx, http.MethodPatch, fmt.Sprintf("/api/workspace/%d", id), map[string]string{
			"name": name,
		}, &ws)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen)
		green.Print("✓ ")
		fmt.Printf("Renamed workspace %d to %q\n", ws.ID, ws.Name)
		return nil

	default:
		return fmt.Errorf("unknown workspace subcommand: %s", args[0])
	}
}

func cmdMembers(client *apiClient, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: members list|add|remove <workspace-id> [args]")
	}

	workspaceID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid workspace id: %s", args[1])
	}
	ctx := context.Background()

	switch args[0] {
	case "list":
		var members []memberJSON
		path := fmt.Sprintf("/api/workspace/%d/users", workspaceID)
		if err := client.call(ctx, http.MethodGet, path, nil, &members); err != nil {
			return err
		}

		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  ID\tPRINCIPAL\tNAME\tEMAIL\tROLE\tJOINED")
		fmt.Fprintln(w, "  --\t---------\t----\t-----\t----\t------")
		for _, m := range members {
			fmt.Fprintf(w, "  %d\t%d\t%s\t%s\t%s\t%s\n",
				m.ID, m.PrincipalID, m.Name, m.Email, m.Role, m.CreatedAt.Format("Jan 02 15:04"))
		}
		w.Flush()
		fmt.Println()
		return nil

	case "add":
		flags, _, err := parseFlags(args[2:])
		if err != nil {
			return err
		}
		if flags["email"] == "" {
			return fmt.Errorf("--email is required")
		}
		role := flags["role"]
		if role == "" {
			role = "member"
		}

		var m memberJSON
		path := fmt.Sprintf("/api/workspace/%d/users", workspaceID)
		err = client.call(ctx, http.MethodPost, path, map[string]string{
			"email": flags["email"], "role": role,
		}, &m)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen)
		green.Print("✓ ")
		fmt.Printf("Added %s as %s (membership %d)\n", m.Email, m.Role, m.ID)
		return nil

	case "remove":
		if len(args) < 3 {
			return fmt.Errorf("usage: members remove <workspace-id> <membership-id>")
		}
		membershipID, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid membership id: %s", args[2])
		}

		path := fmt.Sprintf("/api/workspace/%d/users/%d", workspaceID, membershipID)
		if err := client.call(ctx, http.MethodDelete, path, nil, nil); err != nil {
			return err
		}

		green := color.New(color.FgGreen)
		green.Print("✓ ")
		fmt.Printf("Removed membership %d\n", membershipID)
		return nil

	default:
		return fmt.Errorf("unknown members subcommand: %s", args[0])
	}
}

func cmdProducts(client *apiClient, args []string) error {
	if len(args) < 2 || args[0] != "list" {
		return fmt.Errorf("usage: products list <workspace-id>")
	}

	workspaceID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid workspace id: %s", args[1])
	}

	var products []productJSON
	path := fmt.Sprintf("/api/workspace/%d/products", workspaceID)
	if err := client.call(context.Background(), http.MethodGet, path, nil, &products); err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tNAME\tPRICE\tSTATUS\tCREATED")
	fmt.Fprintln(w, "  --\t----\t-----\t------\t-------")
	for _, p := range products {
		fmt.Fprintf(w, "  %d\t%s\t%d\t%s\t%s\n",
			p.ID, p.Name, p.Price, p.Status, p.CreatedAt.Format("Jan 02 15:04"))
	}
	w.Flush()
	fmt.Println()
	return nil
}
