// Package main is a terminal front end for the realspace client: it loads the
// client config, wires the session and view-models through internal/app and
// runs one command against the API.
//
//	realspace login a@x.com secret1
//	realspace post watched "Dune" "loved it"
//	realspace feed
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/realspace/realspace/internal/app"
	"github.com/realspace/realspace/internal/config"
	"github.com/realspace/realspace/internal/dto"
	"github.com/realspace/realspace/internal/viewmodel"
)

var errUsage = errors.New("usage")

func main() {
	flag.Usage = func() { printUsage(os.Stderr) }
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, flag.Args(), os.Stdout, os.Stderr); err != nil {
		if err != errUsage {
			fmt.Fprintf(os.Stderr, "realspace: %v\n", err)
		}
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
		}
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `Usage: realspace <command> [args]

Commands:
  register <username> <name> <email> <password>
                                    create an account and log in
  login <email> <password>          log in and store the token
  logout                            forget the stored token
  whoami                            show the logged-in user
  feed                              list the friends feed
  post <action> <subject> [body]    post an update (action: watched, read, "went to")
  topics [search]                   list topics, optionally filtered

Settings come from REALSPACE_* environment variables or ./realspace.yaml.`)
}

// run executes one command. Logs go to logOut, results to out.
func run(ctx context.Context, args []string, out, logOut io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	a, err := app.New(cfg, logOut)
	if err != nil {
		return err
	}
	defer a.Close()

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "register":
		if len(rest) != 4 {
			return errUsage
		}
		req := dto.RegisterRequest{Username: rest[0], DisplayName: rest[1], Email: rest[2], Password: rest[3]}
		if !a.Auth.Register(ctx, req) {
			return errors.New(a.Auth.ErrorMessage())
		}
		fmt.Fprintf(out, "registered %s\n", a.Auth.CurrentUser().Username)

	case "login":
		if len(rest) != 2 {
			return errUsage
		}
		if !a.Auth.Login(ctx, viewmodel.LoginForm{Email: rest[0], Password: rest[1]}) {
			return errors.New(a.Auth.ErrorMessage())
		}
		fmt.Fprintf(out, "logged in as %s\n", a.Auth.CurrentUser().Username)

	case "logout":
		return a.Auth.Logout()

	case "whoami":
		if !a.Auth.RestoreSession(ctx) {
			if msg := a.Auth.ErrorMessage(); msg != "" {
				return errors.New(msg)
			}
			return errors.New(viewmodel.MsgLoginAgain)
		}
		u := a.Auth.CurrentUser()
		fmt.Fprintf(out, "%s (@%s) %s\n", u.DisplayName, u.Username, u.ID)

	case "feed":
		if !a.Feed.Load(ctx) {
			return errors.New(a.Feed.ErrorMessage())
		}
		for _, p := range a.Feed.Items() {
			line := fmt.Sprintf("%s  @%s %s %s  (%d likes)", p.ID, p.Author.Username, p.Action, p.Subject, p.LikesCount)
			if p.Content != nil {
				line += "\n    " + *p.Content
			}
			fmt.Fprintln(out, line)
		}

	case "post":
		if len(rest) < 2 || len(rest) > 3 {
			return errUsage
		}
		form := viewmodel.PostForm{Action: rest[0], Subject: rest[1]}
		if len(rest) == 3 {
			form.Body = rest[2]
		}
		if !form.CanPost() {
			return fmt.Errorf("cannot post: action must be one of %s and subject must not be empty",
				strings.Join(viewmodel.PostActions, ", "))
		}
		if !a.Feed.CreatePost(ctx, form) {
			return errors.New(a.Feed.ErrorMessage())
		}
		fmt.Fprintf(out, "posted %s\n", a.Feed.Items()[0].ID)

	case "topics":
		if len(rest) > 1 {
			return errUsage
		}
		if !a.Topics.Load(ctx) {
			return errors.New(a.Topics.ErrorMessage())
		}
		var search string
		if len(rest) == 1 {
			search = rest[0]
		}
		for _, t := range a.Topics.Filtered(search) {
			fmt.Fprintf(out, "%s  %s  %s\n", t.ID, t.Name, t.TopicDescription)
		}

	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
	return nil
}
