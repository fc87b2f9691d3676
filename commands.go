package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/qcdb/go-qcdb/lib/catalog"
	"github.com/qcdb/go-qcdb/lib/config"
	"github.com/qcdb/go-qcdb/lib/options"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

type rootFlags struct {
	requires []string
	suggests []string
	plain    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "go-qcdb",
		Short: "Resolve effective option values from defaults, drivers and user input",
		Long: `go-qcdb loads the built-in option catalog, applies the user options from
the config file and the command line, and reports the reconciled values.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&config.CfgFile, "config", "", "config file (default is $HOME/.go-qcdb/config.yaml)")
	pf.StringArrayVar(&flags.requires, "set", nil, "require a user value, as domain.keyword=value (repeatable)")
	pf.StringArrayVar(&flags.suggests, "suggest", nil, "suggest a user value, as domain.keyword=value (repeatable)")
	pf.BoolVar(&flags.plain, "plain", false, "disable styling")

	show := &cobra.Command{
		Use:   "show",
		Short: "List every option with its resolved value and default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, flags)
		},
	}

	get := &cobra.Command{
		Use:   "get DOMAIN KEYWORD",
		Short: "Show one option: resolved value, default and help",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, flags, args[0], args[1])
		},
	}

	export := &cobra.Command{
		Use:   "export",
		Short: "Write the resolved values as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	root.AddCommand(show, get, export)
	return root
}

// buildRegistry loads the catalog and applies user input: the config file
// first, then --set and --suggest in the order given.
func buildRegistry(flags *rootFlags) (*options.Registry, error) {
	if err := config.InitConfig(); err != nil {
		return nil, err
	}
	cfg := config.CurrentConfig()
	verbose := cfg.Verbose

	reg := options.NewRegistry()
	if err := catalog.LoadDefaults(reg); err != nil {
		return nil, err
	}
	if _, err := config.ApplyUserOptions(reg, viper.GetViper(), verbose, cfg.Strict); err != nil {
		return nil, err
	}

	user := []options.AssertOption{options.WithTag(options.TagUser), options.WithVerbose(verbose)}
	for _, s := range flags.requires {
		a, err := config.ParseAssignment(s)
		if err != nil {
			return nil, err
		}
		if err := reg.Require(a.Domain, a.Keyword, a.Value, user...); err != nil {
			return nil, err
		}
	}
	for _, s := range flags.suggests {
		a, err := config.ParseAssignment(s)
		if err != nil {
			return nil, err
		}
		if err := reg.Suggest(a.Domain, a.Keyword, a.Value, user...); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func runShow(cmd *cobra.Command, flags *rootFlags) error {
	reg, err := buildRegistry(flags)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if flags.plain {
		_, err = fmt.Fprintln(out, reg.Render())
		return err
	}
	return renderStyled(out, reg)
}

func renderStyled(w io.Writer, reg *options.Registry) error {
	var b strings.Builder
	for _, domain := range reg.Domains() {
		b.WriteString(headerStyle.Render(options.DomainHeader(domain)))
		b.WriteByte('\n')
		settings, err := reg.Settings(domain)
		if err != nil {
			return err
		}
		for _, opt := range settings {
			b.WriteString(opt.String())
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func runGet(cmd *cobra.Command, flags *rootFlags, domain, keyword string) error {
	reg, err := buildRegistry(flags)
	if err != nil {
		return err
	}
	opt, err := reg.Lookup(domain, keyword)
	if err != nil {
		return err
	}
	value, err := opt.Resolve()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s = %v\n", opt.Keyword(), value)
	fmt.Fprintf(out, "default: %v\n", opt.Seed())
	if opt.Expert() {
		fmt.Fprintln(out, "expert: true")
	}
	if help := opt.Help(); help != "" {
		fmt.Fprintf(out, "\n%s\n", help)
	}
	return nil
}

func runExport(cmd *cobra.Command, flags *rootFlags) error {
	reg, err := buildRegistry(flags)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(reg.Snapshot()); err != nil {
		return err
	}
	return enc.Close()
}
