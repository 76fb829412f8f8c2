package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/nguyentantai21042004/wiki-transcript/internal/settings"
)

var errUsage = errors.New("invalid arguments")

// runSettingsCommand applies one hosts/subs/apikey edit and persists it.
func runSettingsCommand(ctx context.Context, reg *settings.Registry, store settings.Store, cmd string, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: %s needs a subcommand", errUsage, cmd)
	}
	sub, args := args[0], args[1:]

	changed, err := applySettingsCommand(reg, cmd, sub, args, out)
	if err != nil || !changed {
		return err
	}
	if err := store.Save(ctx, reg.Snapshot()); err != nil {
		return err
	}
	fmt.Fprintf(out, "saved %s\n", store.Path())
	return nil
}

func applySettingsCommand(reg *settings.Registry, cmd, sub string, args []string, out io.Writer) (bool, error) {
	switch cmd + " " + sub {
	case "hosts list":
		for _, h := range reg.Hosts() {
			fmt.Fprintln(out, h)
		}
		return false, nil

	case "hosts add":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: hosts add NAME", errUsage)
		}
		return true, reg.AddHost(args[0])

	case "hosts remove":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: hosts remove NAME", errUsage)
		}
		return true, reg.RemoveHost(args[0])

	case "subs list":
		for i, p := range reg.Substitutions() {
			fmt.Fprintf(out, "%d\t%q -> %q\n", i, p.Find, p.Replace)
		}
		return false, nil

	case "subs add":
		if len(args) != 2 {
			return false, fmt.Errorf("%w: subs add FIND REPLACE", errUsage)
		}
		idx := reg.AddSubstitution(args[0], args[1])
		fmt.Fprintf(out, "added substitution %d\n", idx)
		return true, nil

	case "subs set":
		if len(args) != 3 {
			return false, fmt.Errorf("%w: subs set INDEX FIND REPLACE", errUsage)
		}
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("%w: index %q", errUsage, args[0])
		}
		return true, reg.SetSubstitution(idx, args[1], args[2])

	case "subs remove":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: subs remove INDEX", errUsage)
		}
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("%w: index %q", errUsage, args[0])
		}
		return true, reg.RemoveSubstitution(idx)

	case "apikey set":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: apikey set KEY", errUsage)
		}
		reg.SetAPIKey(args[0])
		return true, nil

	default:
		return false, fmt.Errorf("%w: unknown command %s %s", errUsage, cmd, sub)
	}
}
