package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/colorprofile"
	"github.com/icyhq/icy/internal/brand"
	"github.com/icyhq/icy/internal/tui/theme"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var showFlags struct {
	format string
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved brand profile as JSON or YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, key, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		p, ok, err := st.Load(cmd.Context(), key)
		if err != nil {
			return fmt.Errorf("loading brand profile: %w", err)
		}
		if !ok {
			return fmt.Errorf("no brand profile saved under %s", key)
		}
		out := cmd.OutOrStdout()
		return writeProfile(out, p, showFlags.format, detectProfile(out))
	},
}

func init() {
	showCmd.Flags().StringVarP(&showFlags.format, "format", "o", "yaml", "Output format: json or yaml")
}

// writeProfile encodes p in format and highlights it for the color profile.
func writeProfile(w io.Writer, p brand.Profile, format string, cp colorprofile.Profile) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(p, "", "  ")
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(p)
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	_, err = io.WriteString(w, highlight(string(data), format, cp))
	return err
}

// detectProfile reports the color support of w, assuming none for
// non-file writers.
func detectProfile(w io.Writer) colorprofile.Profile {
	if _, ok := w.(*os.File); !ok {
		return colorprofile.NoTTY
	}
	return colorprofile.Detect(w, os.Environ())
}

// highlight applies syntax highlighting to source. Output without color
// support is returned unchanged.
func highlight(source, language string, cp colorprofile.Profile) string {
	var name string
	switch cp {
	case colorprofile.TrueColor:
		name = "terminal16m"
	case colorprofile.ANSI256:
		name = "terminal256"
	case colorprofile.ANSI:
		name = "terminal16"
	default:
		return source
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return source
	}
	lexer = chroma.Coalesce(lexer)

	formatter := formatters.Get(name)
	if formatter == nil {
		return source
	}

	baseStyle := styles.Get("catppuccin-mocha")
	if baseStyle == nil {
		baseStyle = styles.Fallback
	}
	// Drop token backgrounds so output sits on the terminal's own background.
	bg := chroma.MustParseColour(theme.Current().BgBase)
	style, err := baseStyle.Builder().Transform(func(entry chroma.StyleEntry) chroma.StyleEntry {
		entry.Background = bg
		return entry
	}).Build()
	if err != nil {
		style = baseStyle
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return source
	}
	if strings.HasSuffix(source, "\n") && !strings.HasSuffix(buf.String(), "\n") {
		buf.WriteByte('\n')
	}
	return buf.String()
}
