// Command taskcli is a terminal client for the task tracker. It keeps a
// session file in the user's config directory and drives the same sync state
// the web dashboard uses.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/aoyama/task-dashboard/internal/client"
)

const defaultServerURL = "http://localhost:8080"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "taskcli: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: taskcli <command> [arguments]

commands:
  register  -name NAME -email EMAIL -password PASSWORD
  login     -email EMAIL -password PASSWORD
  logout
  list      [-search TERM] [-status all|completed|pending]
  add       TITLE
  toggle    TASK_ID
  rm        TASK_ID
  profile   [-name NAME -email EMAIL]`)
}

func serverURL() string {
	if url := os.Getenv("TASK_DASHBOARD_URL"); url != "" {
		return url
	}
	return defaultServerURL
}

func run(command string, args []string) error {
	ctx := context.Background()
	sessions := client.NewFileSessionStore("")

	switch command {
	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		name := fs.String("name", "", "display name")
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		fs.Parse(args)

		sess, err := client.Register(ctx, serverURL(), *name, *email, *password)
		if err != nil {
			return err
		}
		if err := sessions.Save(sess); err != nil {
			return err
		}
		fmt.Printf("Registered and logged in as %s\n", sess.Email)
		return nil

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		fs.Parse(args)

		sess, err := client.Login(ctx, serverURL(), *email, *password)
		if err != nil {
			return err
		}
		if err := sessions.Save(sess); err != nil {
			return err
		}
		fmt.Printf("Logged in as %s\n", sess.Email)
		return nil

	case "logout":
		state, err := loadState(ctx, sessions, false)
		if err != nil {
			return err
		}
		if err := state.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil

	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		search := fs.String("search", "", "filter by title substring")
		status := fs.String("status", "all", "all, completed or pending")
		fs.Parse(args)

		state, err := loadState(ctx, sessions, true)
		if err != nil {
			return err
		}
		state.SearchTerm = *search
		state.FilterStatus = client.Filter(*status)

		tasks := state.FilteredTasks()
		if len(tasks) == 0 {
			fmt.Println("No tasks")
			return nil
		}
		for _, t := range tasks {
			mark := " "
			if t.Completed {
				mark = "x"
			}
			fmt.Printf("[%s] %s  %s\n", mark, t.ID, t.Title)
		}
		return nil

	case "add":
		if len(args) != 1 {
			return fmt.Errorf("usage: taskcli add TITLE")
		}
		state, err := loadState(ctx, sessions, true)
		if err != nil {
			return err
		}
		added, err := state.AddTask(ctx, args[0])
		if err != nil {
			return err
		}
		if !added {
			return fmt.Errorf("title cannot be empty")
		}
		fmt.Printf("Added %q\n", state.Tasks[0].Title)
		return nil

	case "toggle":
		if len(args) != 1 {
			return fmt.Errorf("usage: taskcli toggle TASK_ID")
		}
		state, err := loadState(ctx, sessions, true)
		if err != nil {
			return err
		}
		if err := state.ToggleTask(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("Toggled")
		return nil

	case "rm":
		if len(args) != 1 {
			return fmt.Errorf("usage: taskcli rm TASK_ID")
		}
		state, err := loadState(ctx, sessions, true)
		if err != nil {
			return err
		}
		if err := state.RemoveTask(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted")
		return nil

	case "profile":
		fs := flag.NewFlagSet("profile", flag.ExitOnError)
		name := fs.String("name", "", "new display name")
		email := fs.String("email", "", "new account email")
		fs.Parse(args)

		state, err := loadState(ctx, sessions, true)
		if err != nil {
			return err
		}

		if *name == "" && *email == "" {
			fmt.Printf("Name:  %s\nEmail: %s\n", state.Profile.Name, state.Profile.Email)
			return nil
		}
		if err := state.UpdateProfile(ctx, *name, *email); err != nil {
			return err
		}
		fmt.Println("Profile updated")
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// loadState builds the sync state for the stored session. When load is true
// the initial profile+tasks fetch is performed.
func loadState(ctx context.Context, sessions client.SessionStore, load bool) (*client.State, error) {
	sess, ok, err := sessions.Load()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("not logged in, run: taskcli login")
	}

	api := client.NewHTTPClient(serverURL(), sess.Token)
	state := client.NewState(api, sessions, sess)
	if load {
		if err := state.Load(ctx); err != nil {
			return nil, err
		}
	}
	return state, nil
}
