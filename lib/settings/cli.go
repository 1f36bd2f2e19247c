package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnknownConfigKey is returned by ConfigGet for keys missing from the registry.
var ErrUnknownConfigKey = errors.New("unknown config key")

func ConfigShow(w io.Writer) {
	fmt.Fprintf(
		w,
		"%-25s %-35s %-20s %-20s %s\n",
		"JSON KEY",
		"ENV VAR",
		"CURRENT",
		"DEFAULT",
		"DESCRIPTION",
	)

	for _, c := range Registry {
		fmt.Fprintf(
			w,
			"%-25s %-35s %-20v %-20v %s\n",
			c.Key,
			EnvVar(c.Key),
			current.Get(c.Key),
			c.Default,
			c.Description,
		)
	}
}

func ConfigDump(w io.Writer) error {
	out, err := json.MarshalIndent(current.AllSettings(), "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(out))
	return err
}

func ConfigEnv(w io.Writer) {
	fmt.Fprintf(w, "%-35s %s\n", "ENV VAR", "JSON KEY")

	for _, c := range Registry {
		fmt.Fprintf(w, "%-35s %s\n", EnvVar(c.Key), c.Key)
	}
}

func ConfigGet(w io.Writer, key string) error {
	for _, c := range Registry {
		if c.Key == key {
			_, err := fmt.Fprintln(w, current.Get(key))
			return err
		}
	}

	return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
}

// ConfigInit prints a settings.json holding every default, nested the way viper reads it.
func ConfigInit(w io.Writer) error {
	out := map[string]any{}

	for _, c := range Registry {
		setNested(out, c.Key, c.Default)
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

func setNested(out map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	node := out
	for _, p := range parts[:len(parts)-1] {
		child, ok := node[p].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[p] = child
		}
		node = child
	}
	node[parts[len(parts)-1]] = value
}
