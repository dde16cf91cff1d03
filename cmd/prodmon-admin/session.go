package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/term"

	"github.com/sigmaport/prodmon-ui/config"
	"github.com/sigmaport/prodmon-ui/internal/bootstrap"
	domainauth "github.com/sigmaport/prodmon-ui/internal/domain/auth"
	"github.com/sigmaport/prodmon-ui/internal/ports"
)

var errNotSignedIn = errors.New("not signed in; run prodmon-admin login")

// openSession restores the stored session. The CLI never arms the idle timer
// and needs a store that outlives the process.
func openSession(cc *commandContext) (*bootstrap.SessionContainer, error) {
	cfg := cc.Config
	cfg.Session.IdleTimeout = 0
	if cfg.Session.TokenStore == config.TokenStoreMemory {
		cc.Logger.Warn("memory token store cannot outlive a command; using the token file",
			"path", cfg.Session.TokenFile)
		cfg.Session.TokenStore = config.TokenStoreFile
	}

	c, err := bootstrap.BuildSession(cc.Ctx, bootstrap.SessionDeps{Config: &cfg, Logger: cc.Logger})
	if err != nil {
		return nil, err
	}
	c.Session.Init(cc.Ctx)
	return c, nil
}

func withSession(cc *commandContext, fn func(c *bootstrap.SessionContainer) error) error {
	c, err := openSession(cc)
	if err != nil {
		return err
	}
	runErr := fn(c)
	if cerr := c.Close(); cerr != nil {
		runErr = errors.Join(runErr, fmt.Errorf("close session: %w", cerr))
	}
	return runErr
}

// backendError ends the session when the backend refused its credential.
func backendError(cc *commandContext, c *bootstrap.SessionContainer, err error) error {
	if errors.Is(err, ports.ErrUnauthorized) {
		if ierr := c.Session.Invalidate(cc.Ctx, domainauth.EndReasonUnauthorized); ierr != nil {
			cc.Logger.Warn("clear rejected session", "error", ierr)
		}
		return errors.New("the backend rejected the stored session; run prodmon-admin login")
	}
	return err
}

type loginOptions struct {
	Username      string
	PasswordStdin bool
}

func runLogin(cc *commandContext, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts loginOptions
	fs.StringVar(&opts.Username, "username", "", "Username (required)")
	fs.BoolVar(&opts.PasswordStdin, "password-stdin", false, "Read the password from stdin instead of prompting")
	if err := fs.Parse(args); err != nil {
		return err
	}
	opts.Username = strings.TrimSpace(opts.Username)
	if opts.Username == "" {
		return errors.New("-username is required")
	}

	password, err := readPassword(cc, opts.PasswordStdin)
	if err != nil {
		return err
	}

	return withSession(cc, func(c *bootstrap.SessionContainer) error {
		res := c.Session.Login(cc.Ctx, opts.Username, password)
		if !res.Success {
			return fmt.Errorf("login failed: %s", res.Message)
		}
		return writef(cc.Stdout, "Signed in as %s (%s)\n", res.User.Username, res.User.Role)
	})
}

func readPassword(cc *commandContext, fromStdin bool) (string, error) {
	if !fromStdin {
		return cc.readPassword("Password: ")
	}
	line, err := bufio.NewReader(cc.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func terminalPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec // file descriptors fit in int
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; use -password-stdin")
	}
	if err := writef(os.Stderr, "%s", prompt); err != nil {
		return "", err
	}
	b, err := term.ReadPassword(fd)
	_ = writeln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

func runLogout(cc *commandContext, args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withSession(cc, func(c *bootstrap.SessionContainer) error {
		if err := c.Session.Logout(cc.Ctx); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		return writeln(cc.Stdout, "Signed out")
	})
}

func runWhoami(cc *commandContext, args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print the session status as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withSession(cc, func(c *bootstrap.SessionContainer) error {
		st := c.Session.Status(cc.Ctx)
		if *asJSON {
			enc := json.NewEncoder(cc.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		}
		if st.User == nil {
			if st.EndedReason != domainauth.EndReasonNone {
				_ = writef(cc.Stdout, "Last session ended: %s\n", st.EndedReason)
			}
			return errNotSignedIn
		}

		w := tabwriter.NewWriter(cc.Stdout, 0, 4, 2, ' ', 0)
		if err := writef(w, "Username\t%s\n", st.User.Username); err != nil {
			return err
		}
		if err := writef(w, "Role\t%s\n", st.User.Role); err != nil {
			return err
		}
		if err := writef(w, "Groups\t%s\n", groupsLabel(st.User.AllowedGroups)); err != nil {
			return err
		}
		if err := writef(w, "Admin\t%t\n", st.IsAdmin); err != nil {
			return err
		}
		if st.ExpiresAt != nil {
			if err := writef(w, "Expires\t%s\n", st.ExpiresAt.Local().Format(time.RFC3339)); err != nil {
				return err
			}
		}
		return w.Flush()
	})
}

func groupsLabel(groups []string) string {
	if len(groups) == 0 {
		return "-"
	}
	return strings.Join(groups, ", ")
}
